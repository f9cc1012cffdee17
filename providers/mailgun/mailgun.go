// Package mailgun sends email notifications through the Mailgun API.
package mailgun

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/herald-notify/herald/internal/httpx"
	"github.com/herald-notify/herald/providers"
	"github.com/herald-notify/herald/schema"
)

const (
	name    = "mailgun"
	siteURL = "https://documentation.mailgun.com/"
	baseURL = "https://api.mailgun.net/v3/{domain}/messages"
)

type Mailgun struct {
	*providers.Base
}

var _ providers.Provider = (*Mailgun)(nil)

func New(opts ...providers.Option) (*Mailgun, error) {
	m := &Mailgun{}
	base, err := providers.NewBase(providers.Definition{
		Name:    name,
		SiteURL: siteURL,
		BaseURL: baseURL,
		Schema: &schema.Object{
			Properties: map[string]schema.Field{
				"api_key":      schema.String().Title("your Mailgun API key"),
				"domain":       schema.String().Title("your Mailgun sending domain"),
				"from_":        schema.String().Wire("from").Title("email address of the sender"),
				"to":           schema.OneOrMore(schema.String().Format("email").CSV()).Title("email address of the recipient(s)"),
				"message":      schema.String().Wire("text").Title("body of the message, text version"),
				"html":         schema.String().Title("body of the message, HTML version"),
				"subject":      schema.String().Title("message subject"),
				"cc":           schema.OneOrMore(schema.String().Format("email").CSV()).Title("email address of the CC recipient(s)"),
				"bcc":          schema.OneOrMore(schema.String().Format("email").CSV()).Title("email address of the BCC recipient(s)"),
				"attachment":   schema.OneOrMore(schema.String().Format("valid_file")).Title("file attachment(s)"),
				"inline":       schema.OneOrMore(schema.String().Format("valid_file")).Title("inline image attachment(s)"),
				"tag":          schema.OneOrMore(schema.String().MaxLen(128).Format("ascii")).Wire("o:tag").Title("tag string(s)"),
				"dkim":         schema.Bool().Wire("o:dkim").YesNo().Title("enables/disables DKIM signatures on a per-message basis"),
				"deliverytime": schema.String().Format("rfc2822").RFC2822().Wire("o:deliverytime").Title("desired time of delivery, in RFC-2822 format"),
				"testmode":     schema.Bool().Wire("o:testmode").YesNo().Title("enables sending in test mode"),
				"tracking":     schema.Bool().Wire("o:tracking").YesNo().Title("toggles message tracking on a per-message basis"),
				"headers":      schema.Map().Title("any other header to add, prefixed with h: on the wire"),
				"data":         schema.Map().Title("attach custom JSON data to the message, prefixed with v: on the wire"),
			},
			Required: []string{"api_key", "domain", "from_", "to", "message"},
		},
		PathToErrors: []string{"message"},
	}, m, opts...)
	if err != nil {
		return nil, err
	}
	m.Base = base
	return m, nil
}

// Shape folds the grouped headers and data objects into flat prefixed keys:
// h:<name> for headers and v:<name> with JSON-encoded values for data.
func (m *Mailgun) Shape(data map[string]any) (map[string]any, error) {
	if headers, ok := data["headers"].(map[string]any); ok {
		for key, value := range headers {
			data["h:"+key] = value
		}
		delete(data, "headers")
	}
	if custom, ok := data["data"].(map[string]any); ok {
		for key, value := range custom {
			encoded, err := json.Marshal(value)
			if err != nil {
				return nil, fmt.Errorf("encoding custom data %q: %w", key, err)
			}
			data["v:"+key] = string(encoded)
		}
		delete(data, "data")
	}
	return data, nil
}

func (m *Mailgun) Send(ctx context.Context, payload map[string]any) (*httpx.Result, error) {
	body := make(map[string]any, len(payload))
	for k, v := range payload {
		body[k] = v
	}
	apiKey := fmt.Sprintf("%v", body["api_key"])
	domain := fmt.Sprintf("%v", body["domain"])
	delete(body, "api_key")
	delete(body, "domain")

	form := url.Values{}
	var files []httpx.FilePart
	for key, value := range body {
		switch key {
		case "attachment", "inline":
			for _, path := range filePaths(value) {
				files = append(files, httpx.FilePart{Field: key, Path: path})
			}
		default:
			if list, ok := value.([]any); ok {
				for _, item := range list {
					form.Add(key, fmt.Sprintf("%v", item))
				}
				continue
			}
			form.Set(key, fmt.Sprintf("%v", value))
		}
	}

	return m.Client().Post(ctx, httpx.Request{
		URL:       providers.ExpandURL(m.BaseURL(), map[string]string{"domain": domain}),
		Form:      form,
		Files:     files,
		BasicAuth: &httpx.BasicAuth{Username: "api", Password: apiKey},
		ErrorPath: m.PathToErrors(),
	})
}

func filePaths(value any) []string {
	switch v := value.(type) {
	case []any:
		paths := make([]string, 0, len(v))
		for _, item := range v {
			paths = append(paths, fmt.Sprintf("%v", item))
		}
		return paths
	default:
		return []string{fmt.Sprintf("%v", v)}
	}
}
