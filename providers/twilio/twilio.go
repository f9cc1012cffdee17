// Package twilio sends SMS notifications through the Twilio API.
package twilio

import (
	"context"
	"fmt"
	"net/url"

	"github.com/herald-notify/herald/internal/httpx"
	"github.com/herald-notify/herald/providers"
	"github.com/herald-notify/herald/schema"
)

const (
	name    = "twilio"
	siteURL = "https://www.twilio.com/"
	baseURL = "https://api.twilio.com/2010-04-01/Accounts/{account_sid}/Messages.json"
)

type Twilio struct {
	*providers.Base
}

var _ providers.Provider = (*Twilio)(nil)

func New(opts ...providers.Option) (*Twilio, error) {
	t := &Twilio{}
	base, err := providers.NewBase(providers.Definition{
		Name:    name,
		SiteURL: siteURL,
		BaseURL: baseURL,
		Schema: &schema.Object{
			Properties: map[string]schema.Field{
				"account_sid":     schema.String().Title("the unique id of your account"),
				"auth_token":      schema.String().Title("the authentication token of your account"),
				"to":              schema.String().Format("e164").Wire("To").Title("the destination phone number in E.164 format"),
				"from_":           schema.String().Format("e164").Wire("From").Title("a Twilio phone number in E.164 format"),
				"message":         schema.String().MaxLen(1600).Wire("Body").Title("the text body of the message"),
				"media_url":       schema.String().Format("uri").Wire("MediaUrl").Title("the URL of media to include in the message"),
				"status_callback": schema.String().Format("uri").Wire("StatusCallback").Title("a URL where Twilio posts message status events"),
			},
			Required: []string{"account_sid", "auth_token", "to", "message"},
		},
		PathToErrors: []string{"message"},
	}, t, opts...)
	if err != nil {
		return nil, err
	}
	t.Base = base
	return t, nil
}

func (t *Twilio) Shape(data map[string]any) (map[string]any, error) {
	return data, nil
}

func (t *Twilio) Send(ctx context.Context, payload map[string]any) (*httpx.Result, error) {
	data := make(map[string]any, len(payload))
	for k, v := range payload {
		data[k] = v
	}
	sid := fmt.Sprintf("%v", data["account_sid"])
	token := fmt.Sprintf("%v", data["auth_token"])
	delete(data, "account_sid")
	delete(data, "auth_token")

	form := url.Values{}
	for k, v := range data {
		form.Set(k, fmt.Sprintf("%v", v))
	}
	return t.Client().Post(ctx, httpx.Request{
		URL:       providers.ExpandURL(t.BaseURL(), map[string]string{"account_sid": sid}),
		Form:      form,
		BasicAuth: &httpx.BasicAuth{Username: sid, Password: token},
		ErrorPath: t.PathToErrors(),
	})
}
