// Package slack sends notifications through Slack incoming webhooks.
package slack

import (
	"context"
	"fmt"

	"github.com/herald-notify/herald/internal/httpx"
	"github.com/herald-notify/herald/providers"
	"github.com/herald-notify/herald/schema"
)

const (
	name    = "slack"
	siteURL = "https://api.slack.com/incoming-webhooks"
	baseURL = "https://hooks.slack.com/services"
)

type Slack struct {
	*providers.Base
}

var _ providers.Provider = (*Slack)(nil)

func New(opts ...providers.Option) (*Slack, error) {
	s := &Slack{}
	base, err := providers.NewBase(providers.Definition{
		Name:    name,
		SiteURL: siteURL,
		BaseURL: baseURL,
		Schema: &schema.Object{
			Properties: map[string]schema.Field{
				"webhook_url": schema.String().Format("uri").Title("your webhook URL"),
				"message":     schema.String().Wire("text").Title("your message"),
				"channel":     schema.String().Title("override the default channel of the webhook"),
				"username":    schema.String().Title("override the displayed bot name"),
				"icon_url":    schema.String().Format("uri").Title("override the bot icon with an image URL"),
				"icon_emoji":  schema.String().Title("override the bot icon with an emoji name"),
				"unfurl_links": schema.Bool().
					Title("avoid or enable automatic attachment creation from URLs"),
			},
			Required: []string{"webhook_url", "message"},
		},
	}, s, opts...)
	if err != nil {
		return nil, err
	}
	s.Base = base
	return s, nil
}

func (s *Slack) Shape(data map[string]any) (map[string]any, error) {
	if emoji, ok := data["icon_emoji"].(string); ok && len(emoji) > 0 && emoji[0] != ':' {
		data["icon_emoji"] = ":" + emoji + ":"
	}
	return data, nil
}

func (s *Slack) Send(ctx context.Context, payload map[string]any) (*httpx.Result, error) {
	body := make(map[string]any, len(payload))
	for k, v := range payload {
		body[k] = v
	}
	target := fmt.Sprintf("%v", body["webhook_url"])
	delete(body, "webhook_url")

	// Slack answers webhook errors with a plain-text body, so there is no
	// error path to walk.
	return s.Client().Post(ctx, httpx.Request{
		URL:  target,
		JSON: body,
	})
}
