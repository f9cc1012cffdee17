// Package pagerduty triggers events through the PagerDuty Events API v2.
package pagerduty

import (
	"context"

	"github.com/herald-notify/herald/internal/httpx"
	"github.com/herald-notify/herald/providers"
	"github.com/herald-notify/herald/schema"
)

const (
	name    = "pagerduty"
	siteURL = "https://developer.pagerduty.com/docs/events-api-v2/overview/"
	baseURL = "https://events.pagerduty.com/v2/enqueue"
)

// payloadFields move into the nested event payload object on the wire.
var payloadFields = []string{
	"message", "source", "severity", "timestamp", "component", "group",
	"class", "custom_details",
}

type PagerDuty struct {
	*providers.Base
}

var _ providers.Provider = (*PagerDuty)(nil)

func New(opts ...providers.Option) (*PagerDuty, error) {
	p := &PagerDuty{}
	base, err := providers.NewBase(providers.Definition{
		Name:    name,
		SiteURL: siteURL,
		BaseURL: baseURL,
		Schema: &schema.Object{
			Properties: map[string]schema.Field{
				"routing_key":    schema.String().Title("the integration key of the target service"),
				"event_action":   schema.String().Enum("trigger", "acknowledge", "resolve").Title("the type of event"),
				"dedup_key":      schema.String().MaxLen(255).Title("deduplication key for correlating triggers and resolves"),
				"message":        schema.String().MaxLen(1024).Title("a brief text summary of the event"),
				"source":         schema.String().Title("the unique location of the affected system"),
				"severity":       schema.String().Enum("critical", "error", "warning", "info").Title("the perceived severity of the status"),
				"timestamp":      schema.String().Format("iso8601").Title("the time at which the emitting tool detected or generated the event"),
				"component":      schema.String().Title("component of the source machine that is responsible for the event"),
				"group":          schema.String().Title("logical grouping of components of a service"),
				"class":          schema.String().Title("the class/type of the event"),
				"custom_details": schema.Map().Title("additional details about the event"),
				"images":         schema.List(schema.Map()).Title("images to attach to the incident"),
				"links":          schema.List(schema.Map()).Title("links to attach to the incident"),
			},
			Required: []string{"routing_key", "event_action", "message", "source", "severity"},
		},
		PathToErrors: []string{"errors"},
	}, p, opts...)
	if err != nil {
		return nil, err
	}
	p.Base = base
	return p, nil
}

// Shape nests the event description under the payload envelope the Events
// API expects, with message emitted as payload.summary.
func (p *PagerDuty) Shape(data map[string]any) (map[string]any, error) {
	payload := map[string]any{}
	for _, field := range payloadFields {
		if value, ok := data[field]; ok {
			target := field
			if field == "message" {
				target = "summary"
			}
			payload[target] = value
			delete(data, field)
		}
	}
	data["payload"] = payload
	return data, nil
}

func (p *PagerDuty) Send(ctx context.Context, payload map[string]any) (*httpx.Result, error) {
	return p.Client().Post(ctx, httpx.Request{
		URL:       p.BaseURL(),
		JSON:      payload,
		ErrorPath: p.PathToErrors(),
	})
}
