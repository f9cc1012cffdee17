// Package icq sends notifications through the ICQ bot API.
package icq

import (
	"context"
	"fmt"
	"net/url"

	"github.com/herald-notify/herald/internal/httpx"
	"github.com/herald-notify/herald/providers"
	"github.com/herald-notify/herald/schema"
)

const (
	name    = "icq"
	siteURL = "https://icq.com/botapi/"
	baseURL = "https://api.icq.net/bot/v1/messages/sendText"
)

type ICQ struct {
	*providers.Base
}

var _ providers.Provider = (*ICQ)(nil)

func New(opts ...providers.Option) (*ICQ, error) {
	i := &ICQ{}
	base, err := providers.NewBase(providers.Definition{
		Name:    name,
		SiteURL: siteURL,
		BaseURL: baseURL,
		Schema: &schema.Object{
			Properties: map[string]schema.Field{
				"token":   schema.String().Title("bot token"),
				"chat_id": schema.String().Wire("chatId").Title("unique ID of the target chat"),
				"message": schema.String().Wire("text").Title("text of the message"),
			},
			Required: []string{"token", "chat_id", "message"},
		},
		PathToErrors: []string{"description"},
	}, i, opts...)
	if err != nil {
		return nil, err
	}
	i.Base = base
	return i, nil
}

func (i *ICQ) Shape(data map[string]any) (map[string]any, error) {
	return data, nil
}

func (i *ICQ) Send(ctx context.Context, payload map[string]any) (*httpx.Result, error) {
	query := url.Values{}
	for k, v := range payload {
		query.Set(k, fmt.Sprintf("%v", v))
	}
	return i.Client().Post(ctx, httpx.Request{
		URL:       i.BaseURL(),
		Query:     query,
		ErrorPath: i.PathToErrors(),
	})
}
