// Package zulip sends notifications to Zulip streams and users.
package zulip

import (
	"context"
	"fmt"
	"net/url"

	"github.com/herald-notify/herald/internal/httpx"
	"github.com/herald-notify/herald/providers"
	"github.com/herald-notify/herald/schema"
)

const (
	name    = "zulip"
	siteURL = "https://zulipchat.com/api/"
	baseURL = "https://{domain}.zulipchat.com"
)

type Zulip struct {
	*providers.Base
}

var _ providers.Provider = (*Zulip)(nil)

func New(opts ...providers.Option) (*Zulip, error) {
	z := &Zulip{}
	base, err := providers.NewBase(providers.Definition{
		Name:    name,
		SiteURL: siteURL,
		BaseURL: baseURL,
		Schema: &schema.Object{
			Properties: map[string]schema.Field{
				"email":   schema.String().Title("the email address of the bot sending the message"),
				"api_key": schema.String().Title("the api key of the bot"),
				"to":      schema.String().Title("the stream name or user the message should be sent to"),
				"message": schema.String().Wire("content").Title("the content of the message"),
				"type_":   schema.String().Wire("type").Enum("stream", "private").Title("the type of message to be sent, 'private' for a private message and 'stream' for a stream message"),
				"subject": schema.String().Title("the topic for the message, required when the type is 'stream'"),
				"domain":  schema.String().MinLen(1).Title("your Zulip cloud organization name"),
				"server":  schema.String().Title("the server URL of a self-hosted Zulip installation"),
			},
			Required: []string{"email", "api_key", "to", "message"},
			OneOf: []schema.Alternative{
				{Required: []string{"domain"}},
				{Required: []string{"server"}},
			},
			Messages: map[string]string{
				"oneOf": "Only one of 'domain' or 'server' is allowed",
			},
		},
		Defaults:     map[string]any{"type_": "stream"},
		PathToErrors: []string{"msg"},
	}, z, opts...)
	if err != nil {
		return nil, err
	}
	z.Base = base
	return z, nil
}

func (z *Zulip) Shape(data map[string]any) (map[string]any, error) {
	return data, nil
}

func (z *Zulip) Send(ctx context.Context, payload map[string]any) (*httpx.Result, error) {
	body := make(map[string]any, len(payload))
	for k, v := range payload {
		body[k] = v
	}

	target := ""
	if domain, ok := body["domain"]; ok {
		target = providers.ExpandURL(z.BaseURL(), map[string]string{"domain": fmt.Sprintf("%v", domain)})
		delete(body, "domain")
	} else {
		target = fmt.Sprintf("%v", body["server"])
		delete(body, "server")
	}

	auth := &httpx.BasicAuth{
		Username: fmt.Sprintf("%v", body["email"]),
		Password: fmt.Sprintf("%v", body["api_key"]),
	}
	delete(body, "email")
	delete(body, "api_key")

	form := url.Values{}
	for k, v := range body {
		form.Set(k, fmt.Sprintf("%v", v))
	}
	return z.Client().Post(ctx, httpx.Request{
		URL:       target + "/api/v1/messages",
		Form:      form,
		BasicAuth: auth,
		ErrorPath: z.PathToErrors(),
	})
}
