// Package gitter sends notifications to Gitter chat rooms.
package gitter

import (
	"context"
	"fmt"
	"net/url"

	"github.com/herald-notify/herald/internal/httpx"
	"github.com/herald-notify/herald/providers"
	"github.com/herald-notify/herald/schema"
)

const (
	name    = "gitter"
	siteURL = "https://gitter.im"
	baseURL = "https://api.gitter.im/v1"
)

type Gitter struct {
	*providers.Base
}

var _ providers.Provider = (*Gitter)(nil)

func New(opts ...providers.Option) (*Gitter, error) {
	g := &Gitter{}
	base, err := providers.NewBase(providers.Definition{
		Name:    name,
		SiteURL: siteURL,
		BaseURL: baseURL,
		Schema: &schema.Object{
			Properties: map[string]schema.Field{
				"token":   schema.String().Title("access token"),
				"room_id": schema.String().Title("ID of the room to send the notification to"),
				"message": schema.String().Wire("text").Title("body of the message"),
			},
			Required: []string{"token", "room_id", "message"},
		},
		PathToErrors: []string{"errors"},
		Extras: map[string]any{
			"message_url": "https://gitter.im/{room_uri}?at={message_id}",
		},
	}, g, opts...)
	if err != nil {
		return nil, err
	}
	g.Base = base

	if err := base.AddResource("rooms", &schema.Object{
		Properties: map[string]schema.Field{
			"token": schema.String().Title("access token"),
			"q":     schema.String().Title("filter results"),
		},
		Required: []string{"token"},
	}, g.roomsRequest, nil); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Gitter) Shape(data map[string]any) (map[string]any, error) {
	return data, nil
}

func (g *Gitter) Send(ctx context.Context, payload map[string]any) (*httpx.Result, error) {
	body := make(map[string]any, len(payload))
	for k, v := range payload {
		body[k] = v
	}
	token := fmt.Sprintf("%v", body["token"])
	roomID := fmt.Sprintf("%v", body["room_id"])
	delete(body, "token")
	delete(body, "room_id")

	return g.Client().Post(ctx, httpx.Request{
		URL:       fmt.Sprintf("%s/rooms/%s/chatMessages", g.BaseURL(), roomID),
		JSON:      body,
		Headers:   map[string]string{"Authorization": "Bearer " + token},
		ErrorPath: g.PathToErrors(),
	})
}

func (g *Gitter) roomsRequest(data map[string]any) httpx.Request {
	query := url.Values{}
	if q, ok := data["q"]; ok {
		query.Set("q", fmt.Sprintf("%v", q))
	}
	return httpx.Request{
		URL:       g.BaseURL() + "/rooms",
		Query:     query,
		Headers:   map[string]string{"Authorization": "Bearer " + fmt.Sprintf("%v", data["token"])},
		ErrorPath: g.PathToErrors(),
	}
}
