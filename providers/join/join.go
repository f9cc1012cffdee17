// Package join sends notifications through the Join API by joaoapps.
package join

import (
	"context"
	"fmt"
	"net/url"

	"github.com/herald-notify/herald/internal/httpx"
	"github.com/herald-notify/herald/providers"
	"github.com/herald-notify/herald/schema"
)

const (
	name    = "join"
	siteURL = "https://joaoapps.com/join/api/"
	baseURL = "https://joinjoaomgcd.appspot.com/_ah/api/messaging/v1"
)

type Join struct {
	*providers.Base
}

var _ providers.Provider = (*Join)(nil)

func New(opts ...providers.Option) (*Join, error) {
	j := &Join{}
	base, err := providers.NewBase(providers.Definition{
		Name:    name,
		SiteURL: siteURL,
		BaseURL: baseURL,
		Schema: &schema.Object{
			Properties: map[string]schema.Field{
				"apikey":    schema.String().Title("user API key"),
				"message":   schema.String().Wire("text").Title("usually used as a Tasker or EventGhost command. Can also be used with URLs and Files to add a description for those elements"),
				"deviceids": schema.OneOrMore(schema.String().CSV()).Title("a comma separated list of device IDs you want to send the push to"),
				"title":     schema.String().Title("if used, will always create a notification on the receiving device with this as the title and text as the notification's text"),
				"icon":      schema.String().Format("uri").Title("notification's icon URL"),
				"smallicon": schema.String().Format("uri").Title("status bar icon URL"),
				"url":       schema.String().Format("uri").Title("a URL you want to open on the device"),
				"image":     schema.String().Format("uri").Title("image URL shown in the notification"),
				"priority":  schema.Integer().Min(-2).Max(2).Title("control how your notification is displayed"),
			},
			Required: []string{"apikey", "message"},
		},
		Defaults:     map[string]any{"deviceids": "group.all"},
		PathToErrors: []string{"errorMessage"},
	}, j, opts...)
	if err != nil {
		return nil, err
	}
	j.Base = base

	if err := base.AddResource("devices", &schema.Object{
		Properties: map[string]schema.Field{
			"apikey": schema.String().Title("user API key"),
		},
		Required: []string{"apikey"},
	}, j.devicesRequest, extractRecords); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *Join) Shape(data map[string]any) (map[string]any, error) {
	return data, nil
}

func (j *Join) Send(ctx context.Context, payload map[string]any) (*httpx.Result, error) {
	query := url.Values{}
	for k, v := range payload {
		query.Set(k, fmt.Sprintf("%v", v))
	}
	return j.Client().Post(ctx, httpx.Request{
		URL:       j.BaseURL() + "/sendPush",
		Query:     query,
		ErrorPath: j.PathToErrors(),
	})
}

func (j *Join) devicesRequest(data map[string]any) httpx.Request {
	query := url.Values{}
	query.Set("apikey", fmt.Sprintf("%v", data["apikey"]))
	return httpx.Request{
		URL:       j.BaseURL() + "/listDevices",
		Query:     query,
		ErrorPath: j.PathToErrors(),
	}
}

func extractRecords(parsed any) any {
	if body, ok := parsed.(map[string]any); ok {
		if records, ok := body["records"]; ok {
			return records
		}
	}
	return parsed
}
