// Package pushbullet sends notifications through the Pushbullet API.
package pushbullet

import (
	"context"
	"fmt"

	"github.com/herald-notify/herald/internal/httpx"
	"github.com/herald-notify/herald/providers"
	"github.com/herald-notify/herald/schema"
)

const (
	name    = "pushbullet"
	siteURL = "https://www.pushbullet.com/"
	baseURL = "https://api.pushbullet.com/v2"
)

type Pushbullet struct {
	*providers.Base
}

var _ providers.Provider = (*Pushbullet)(nil)

func New(opts ...providers.Option) (*Pushbullet, error) {
	p := &Pushbullet{}
	base, err := providers.NewBase(providers.Definition{
		Name:    name,
		SiteURL: siteURL,
		BaseURL: baseURL,
		Schema: &schema.Object{
			Properties: map[string]schema.Field{
				"token":              schema.String().Title("API access token"),
				"message":            schema.String().Wire("body").Title("body of the push"),
				"title":              schema.String().Title("title of the push"),
				"type_":              schema.String().Wire("type").Enum("note", "link").Title("type of the push, one of 'note' or 'link'"),
				"url":                schema.String().Format("uri").Title("URL field, used for type='link' pushes"),
				"source_device_iden": schema.String().Title("device iden of the sending device"),
				"device_iden":        schema.String().Title("device iden of the target device, if sending to a single device"),
				"client_iden":        schema.String().Title("client iden of the target client, sends a push to all users who have granted access to this client"),
				"channel_tag":        schema.String().Title("channel tag of the target channel, sends a push to all people who are subscribed to this channel"),
				"email":              schema.String().Format("email").Title("email address to send the push to"),
				"guid":               schema.String().Title("unique identifier set by the client, used to identify a push in case you receive it from /v2/everything before the call to /v2/pushes has completed"),
			},
			Required: []string{"token", "message"},
		},
		Defaults:     map[string]any{"type_": "note"},
		PathToErrors: []string{"error", "message"},
	}, p, opts...)
	if err != nil {
		return nil, err
	}
	p.Base = base

	if err := base.AddResource("devices", &schema.Object{
		Properties: map[string]schema.Field{
			"token": schema.String().Title("API access token"),
		},
		Required: []string{"token"},
	}, p.devicesRequest, extractDevices); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pushbullet) Shape(data map[string]any) (map[string]any, error) {
	return data, nil
}

func (p *Pushbullet) Send(ctx context.Context, payload map[string]any) (*httpx.Result, error) {
	body := make(map[string]any, len(payload))
	for k, v := range payload {
		body[k] = v
	}
	token := fmt.Sprintf("%v", body["token"])
	delete(body, "token")

	return p.Client().Post(ctx, httpx.Request{
		URL:       p.BaseURL() + "/pushes",
		JSON:      body,
		Headers:   map[string]string{"Access-Token": token},
		ErrorPath: p.PathToErrors(),
	})
}

func (p *Pushbullet) devicesRequest(data map[string]any) httpx.Request {
	return httpx.Request{
		URL:       p.BaseURL() + "/devices",
		Headers:   map[string]string{"Access-Token": fmt.Sprintf("%v", data["token"])},
		ErrorPath: p.PathToErrors(),
	}
}

func extractDevices(parsed any) any {
	if body, ok := parsed.(map[string]any); ok {
		if devices, ok := body["devices"]; ok {
			return devices
		}
	}
	return parsed
}
