// Package telegram sends notifications through the Telegram bot API.
package telegram

import (
	"context"
	"fmt"

	"github.com/herald-notify/herald/internal/httpx"
	"github.com/herald-notify/herald/providers"
	"github.com/herald-notify/herald/schema"
)

const (
	name    = "telegram"
	siteURL = "https://core.telegram.org/bots/api"
	baseURL = "https://api.telegram.org/bot{token}/{method}"
)

type Telegram struct {
	*providers.Base
}

var _ providers.Provider = (*Telegram)(nil)

func New(opts ...providers.Option) (*Telegram, error) {
	chatID := schema.Field{Spec: map[string]any{
		"oneOf": []any{
			map[string]any{"type": "string"},
			map[string]any{"type": "integer"},
		},
		"title": "unique identifier for the target chat or username of the target channel",
	}}

	t := &Telegram{}
	base, err := providers.NewBase(providers.Definition{
		Name:    name,
		SiteURL: siteURL,
		BaseURL: baseURL,
		Schema: &schema.Object{
			Properties: map[string]schema.Field{
				"token":                    schema.String().Title("bot token"),
				"chat_id":                  chatID,
				"message":                  schema.String().Wire("text").Title("text of the message to be sent"),
				"parse_mode":               schema.String().Enum("markdown", "html").Title("send Markdown or HTML, if you want Telegram apps to show bold, italic, fixed-width text or inline URLs in your bot's message"),
				"disable_web_page_preview": schema.Bool().Title("disables link previews for links in this message"),
				"disable_notification":     schema.Bool().Title("sends the message silently"),
				"reply_to_message_id":      schema.Integer().Title("if the message is a reply, ID of the original message"),
			},
			Required: []string{"token", "chat_id", "message"},
		},
		PathToErrors: []string{"description"},
	}, t, opts...)
	if err != nil {
		return nil, err
	}
	t.Base = base

	if err := base.AddResource("updates", &schema.Object{
		Properties: map[string]schema.Field{
			"token": schema.String().Title("bot token"),
		},
		Required: []string{"token"},
	}, t.updatesRequest, extractResult); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Telegram) Shape(data map[string]any) (map[string]any, error) {
	return data, nil
}

func (t *Telegram) Send(ctx context.Context, payload map[string]any) (*httpx.Result, error) {
	body := make(map[string]any, len(payload))
	for k, v := range payload {
		body[k] = v
	}
	token := fmt.Sprintf("%v", body["token"])
	delete(body, "token")

	return t.Client().Post(ctx, httpx.Request{
		URL: providers.ExpandURL(t.BaseURL(), map[string]string{
			"token":  token,
			"method": "sendMessage",
		}),
		JSON:      body,
		ErrorPath: t.PathToErrors(),
	})
}

func (t *Telegram) updatesRequest(data map[string]any) httpx.Request {
	return httpx.Request{
		URL: providers.ExpandURL(t.BaseURL(), map[string]string{
			"token":  fmt.Sprintf("%v", data["token"]),
			"method": "getUpdates",
		}),
		ErrorPath: t.PathToErrors(),
	}
}

func extractResult(parsed any) any {
	if body, ok := parsed.(map[string]any); ok {
		if result, ok := body["result"]; ok {
			return result
		}
	}
	return parsed
}
