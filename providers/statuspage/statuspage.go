// Package statuspage creates incidents through the Statuspage API.
package statuspage

import (
	"context"
	"fmt"

	"github.com/herald-notify/herald/internal/httpx"
	"github.com/herald-notify/herald/providers"
	"github.com/herald-notify/herald/schema"
)

const (
	name    = "statuspage"
	siteURL = "https://statuspage.io"
	baseURL = "https://api.statuspage.io/v1/pages/{page_id}"
)

type Statuspage struct {
	*providers.Base
}

var _ providers.Provider = (*Statuspage)(nil)

func New(opts ...providers.Option) (*Statuspage, error) {
	s := &Statuspage{}
	base, err := providers.NewBase(providers.Definition{
		Name:    name,
		SiteURL: siteURL,
		BaseURL: baseURL,
		Schema: &schema.Object{
			Properties: map[string]schema.Field{
				"api_key": schema.String().Title("OAuth2 token"),
				"page_id": schema.String().Title("page ID"),
				"message": schema.String().Wire("name").Title("the name of the incident"),
				"status": schema.String().Enum(
					"investigating", "identified", "monitoring", "resolved",
					"scheduled", "in_progress", "verifying", "completed",
				).Title("status of the incident"),
				"body":                  schema.String().Title("the initial message, created as the first incident update"),
				"wants_twitter_update":  schema.Bool().Title("post the new incident to twitter"),
				"impact_override":       schema.String().Enum("none", "minor", "major", "critical").Title("override calculated impact value"),
				"component_ids":         schema.List(schema.String()).Title("list of components whose subscribers should be notified (only applicable for pages with component subscriptions enabled)"),
				"deliver_notifications": schema.Bool().Title("control whether notifications should be delivered for the initial incident update"),
				"scheduled_for":         schema.String().Format("iso8601").Title("time the scheduled maintenance should begin"),
				"scheduled_until":       schema.String().Format("iso8601").Title("time the scheduled maintenance should end"),
				"scheduled_remind_prior": schema.Bool().
					Title("remind subscribers 60 minutes before scheduled start"),
				"scheduled_auto_in_progress": schema.Bool().
					Title("automatically transition incident to 'In Progress' at start"),
				"scheduled_auto_completed": schema.Bool().
					Title("automatically transition incident to 'Completed' at end"),
			},
			Required: []string{"api_key", "page_id", "message"},
			Dependencies: map[string][]string{
				"scheduled_until":            {"scheduled_for"},
				"scheduled_remind_prior":     {"scheduled_for"},
				"scheduled_auto_in_progress": {"scheduled_for"},
				"scheduled_auto_completed":   {"scheduled_for"},
			},
		},
		PathToErrors: []string{"error"},
	}, s, opts...)
	if err != nil {
		return nil, err
	}
	s.Base = base

	if err := base.AddResource("components", &schema.Object{
		Properties: map[string]schema.Field{
			"api_key": schema.String().Title("OAuth2 token"),
			"page_id": schema.String().Title("page ID"),
		},
		Required: []string{"api_key", "page_id"},
	}, s.componentsRequest, nil); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Statuspage) Shape(data map[string]any) (map[string]any, error) {
	return data, nil
}

// Send wraps the incident fields in the {"incident": ...} envelope the API
// expects, keeping the credentials out of it.
func (s *Statuspage) Send(ctx context.Context, payload map[string]any) (*httpx.Result, error) {
	incident := make(map[string]any, len(payload))
	for k, v := range payload {
		incident[k] = v
	}
	apiKey := fmt.Sprintf("%v", incident["api_key"])
	pageID := fmt.Sprintf("%v", incident["page_id"])
	delete(incident, "api_key")
	delete(incident, "page_id")

	return s.Client().Post(ctx, httpx.Request{
		URL:       providers.ExpandURL(s.BaseURL(), map[string]string{"page_id": pageID}) + "/incidents.json",
		JSON:      map[string]any{"incident": incident},
		Headers:   map[string]string{"Authorization": "OAuth " + apiKey},
		ErrorPath: s.PathToErrors(),
	})
}

func (s *Statuspage) componentsRequest(data map[string]any) httpx.Request {
	pageID := fmt.Sprintf("%v", data["page_id"])
	return httpx.Request{
		URL:       providers.ExpandURL(s.BaseURL(), map[string]string{"page_id": pageID}) + "/components.json",
		Headers:   map[string]string{"Authorization": "OAuth " + fmt.Sprintf("%v", data["api_key"])},
		ErrorPath: s.PathToErrors(),
	}
}
