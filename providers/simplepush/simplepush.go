// Package simplepush sends notifications through the Simplepush API.
package simplepush

import (
	"context"
	"fmt"
	"net/url"

	"github.com/herald-notify/herald/internal/httpx"
	"github.com/herald-notify/herald/providers"
	"github.com/herald-notify/herald/schema"
)

const (
	name    = "simplepush"
	siteURL = "https://simplepush.io/"
	baseURL = "https://api.simplepush.io/send"
)

type Simplepush struct {
	*providers.Base
}

var _ providers.Provider = (*Simplepush)(nil)

func New(opts ...providers.Option) (*Simplepush, error) {
	s := &Simplepush{}
	base, err := providers.NewBase(providers.Definition{
		Name:    name,
		SiteURL: siteURL,
		BaseURL: baseURL,
		Schema: &schema.Object{
			Properties: map[string]schema.Field{
				"key":     schema.String().Title("your Simplepush key"),
				"message": schema.String().Wire("msg").Title("your message"),
				"title":   schema.String().Title("message title"),
				"event":   schema.String().Title("event ID"),
			},
			Required: []string{"key", "message"},
		},
		PathToErrors: []string{"message"},
	}, s, opts...)
	if err != nil {
		return nil, err
	}
	s.Base = base
	return s, nil
}

func (s *Simplepush) Shape(data map[string]any) (map[string]any, error) {
	return data, nil
}

func (s *Simplepush) Send(ctx context.Context, payload map[string]any) (*httpx.Result, error) {
	form := url.Values{}
	for k, v := range payload {
		form.Set(k, fmt.Sprintf("%v", v))
	}
	return s.Client().Post(ctx, httpx.Request{
		URL:       s.BaseURL(),
		Form:      form,
		ErrorPath: s.PathToErrors(),
	})
}
