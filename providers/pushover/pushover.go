// Package pushover sends notifications through the Pushover API.
package pushover

import (
	"context"
	"fmt"
	"net/url"

	"github.com/herald-notify/herald/internal/httpx"
	"github.com/herald-notify/herald/providers"
	"github.com/herald-notify/herald/schema"
)

const (
	name    = "pushover"
	siteURL = "https://pushover.net/"
	baseURL = "https://api.pushover.net/1"
)

type Pushover struct {
	*providers.Base
}

var _ providers.Provider = (*Pushover)(nil)

func New(opts ...providers.Option) (*Pushover, error) {
	p := &Pushover{}
	base, err := providers.NewBase(providers.Definition{
		Name:    name,
		SiteURL: siteURL,
		BaseURL: baseURL,
		Schema: &schema.Object{
			Properties: map[string]schema.Field{
				"user":      schema.OneOrMore(schema.String().CSV()).Title("the user/group key (not e-mail address) of your user (or you)"),
				"message":   schema.String().Title("your message"),
				"token":     schema.String().Title("your application's API token"),
				"title":     schema.String().Title("your message's title, otherwise your app's name is used"),
				"device":    schema.OneOrMore(schema.String().CSV()).Title("your user's device name to send the message directly to that device"),
				"priority":  schema.Integer().Min(-2).Max(2).Title("notification priority"),
				"url":       schema.String().Format("uri").MaxLen(512).Title("a supplementary URL to show with your message"),
				"url_title": schema.String().MaxLen(100).Title("a title for your supplementary URL"),
				"sound":     schema.String().Title("the name of one of the sounds supported by device clients"),
				"timestamp": schema.String().Format("timestamp").Title("a Unix timestamp of your message's date and time"),
				"retry":     schema.Integer().Min(30).Title("how often (in seconds) the Pushover servers will send the same notification"),
				"expire":    schema.Integer().Max(10800).Title("how many seconds your notification will continue to be retried"),
				"callback":  schema.String().Format("uri").Title("a publicly-accessible URL that our servers will send a request to when the user has acknowledged your notification"),
				"html":      schema.Bool().Title("enable HTML formatting"),
				"attachment": schema.String().Format("valid_file").
					Title("an image attachment to send with the message"),
			},
			Required: []string{"user", "message", "token"},
		},
		PathToErrors: []string{"errors"},
	}, p, opts...)
	if err != nil {
		return nil, err
	}
	p.Base = base

	tokenOnly := func() *schema.Object {
		return &schema.Object{
			Properties: map[string]schema.Field{
				"token": schema.String().Title("your application's API token"),
			},
			Required: []string{"token"},
		}
	}
	if err := base.AddResource("sounds", tokenOnly(), p.soundsRequest, nil); err != nil {
		return nil, err
	}
	if err := base.AddResource("limits", tokenOnly(), p.limitsRequest, nil); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pushover) Shape(data map[string]any) (map[string]any, error) {
	if html, ok := data["html"].(bool); ok {
		data["html"] = boolToInt(html)
	}
	return data, nil
}

func (p *Pushover) Send(ctx context.Context, payload map[string]any) (*httpx.Result, error) {
	form := url.Values{}
	var files []httpx.FilePart
	for key, value := range payload {
		if key == "attachment" {
			files = append(files, httpx.FilePart{Field: "attachment", Path: fmt.Sprintf("%v", value)})
			continue
		}
		form.Set(key, fmt.Sprintf("%v", value))
	}
	return p.Client().Post(ctx, httpx.Request{
		URL:       p.BaseURL() + "/messages.json",
		Form:      form,
		Files:     files,
		ErrorPath: p.PathToErrors(),
	})
}

func (p *Pushover) soundsRequest(data map[string]any) httpx.Request {
	return p.tokenRequest("/sounds.json", data)
}

func (p *Pushover) limitsRequest(data map[string]any) httpx.Request {
	return p.tokenRequest("/apps/limits.json", data)
}

func (p *Pushover) tokenRequest(path string, data map[string]any) httpx.Request {
	query := url.Values{}
	query.Set("token", fmt.Sprintf("%v", data["token"]))
	return httpx.Request{
		URL:       p.BaseURL() + path,
		Query:     query,
		ErrorPath: p.PathToErrors(),
	}
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
