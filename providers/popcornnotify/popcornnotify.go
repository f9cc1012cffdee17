// Package popcornnotify sends notifications through the PopcornNotify API.
package popcornnotify

import (
	"context"

	"github.com/herald-notify/herald/internal/httpx"
	"github.com/herald-notify/herald/providers"
	"github.com/herald-notify/herald/schema"
)

const (
	name    = "popcornnotify"
	siteURL = "https://popcornnotify.com/"
	baseURL = "https://popcornnotify.com/notify"
)

type PopcornNotify struct {
	*providers.Base
}

var _ providers.Provider = (*PopcornNotify)(nil)

func New(opts ...providers.Option) (*PopcornNotify, error) {
	p := &PopcornNotify{}
	base, err := providers.NewBase(providers.Definition{
		Name:    name,
		SiteURL: siteURL,
		BaseURL: baseURL,
		Schema: &schema.Object{
			Properties: map[string]schema.Field{
				"api_key":    schema.String().Title("PopcornNotify API key"),
				"message":    schema.String().Title("the message to send"),
				"recipients": schema.OneOrMore(schema.String().Format("email").CSV()).Title("the recipient email address(es) or phone number(s)"),
				"subject":    schema.String().Title("the subject of the email, ignored for text messages"),
			},
			Required: []string{"api_key", "message", "recipients"},
		},
		PathToErrors: []string{"error"},
	}, p, opts...)
	if err != nil {
		return nil, err
	}
	p.Base = base
	return p, nil
}

func (p *PopcornNotify) Shape(data map[string]any) (map[string]any, error) {
	return data, nil
}

func (p *PopcornNotify) Send(ctx context.Context, payload map[string]any) (*httpx.Result, error) {
	return p.Client().Post(ctx, httpx.Request{
		URL:       p.BaseURL(),
		JSON:      payload,
		ErrorPath: p.PathToErrors(),
	})
}
