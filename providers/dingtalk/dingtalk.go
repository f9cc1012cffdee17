// Package dingtalk sends notifications through DingTalk group robots.
package dingtalk

import (
	"context"
	"fmt"
	"net/url"

	"github.com/herald-notify/herald/internal/httpx"
	"github.com/herald-notify/herald/providers"
	"github.com/herald-notify/herald/schema"
)

const (
	name    = "dingtalk"
	siteURL = "https://open.dingtalk.com/document/robots/custom-robot-access"
	baseURL = "https://oapi.dingtalk.com/robot/send"
)

type DingTalk struct {
	*providers.Base
}

var _ providers.Provider = (*DingTalk)(nil)

func New(opts ...providers.Option) (*DingTalk, error) {
	d := &DingTalk{}
	base, err := providers.NewBase(providers.Definition{
		Name:    name,
		SiteURL: siteURL,
		BaseURL: baseURL,
		Schema: &schema.Object{
			Properties: map[string]schema.Field{
				"access_token": schema.String().Title("access token of the custom robot"),
				"message":      schema.String().Title("text content of the message"),
				"msg_type":     schema.String().Enum("text", "markdown").Title("message type"),
				// msg_data carries the typed message body; its text member
				// is required whenever msg_data is present.
				"msg_data": schema.Map().Props(map[string]schema.Field{
					"text":  schema.String().Title("message body"),
					"title": schema.String().Title("title shown in the conversation list"),
				}, "text").Title("structured message data, overrides message when set"),
				"at_mobiles": schema.List(schema.String()).Title("mobile numbers to @-mention"),
				"at_all":     schema.Bool().Title("@-mention everyone in the group"),
			},
			Required: []string{"access_token", "message"},
		},
		Defaults:     map[string]any{"msg_type": "text"},
		PathToErrors: []string{"errmsg"},
	}, d, opts...)
	if err != nil {
		return nil, err
	}
	d.Base = base
	return d, nil
}

func (d *DingTalk) Shape(data map[string]any) (map[string]any, error) {
	return data, nil
}

func (d *DingTalk) Send(ctx context.Context, payload map[string]any) (*httpx.Result, error) {
	data := make(map[string]any, len(payload))
	for k, v := range payload {
		data[k] = v
	}
	token := fmt.Sprintf("%v", data["access_token"])
	msgType := fmt.Sprintf("%v", data["msg_type"])

	content := map[string]any{"content": data["message"]}
	if msgData, ok := data["msg_data"].(map[string]any); ok {
		content = msgData
	}

	body := map[string]any{
		"msgtype": msgType,
		msgType:   content,
	}
	at := map[string]any{}
	if mobiles, ok := data["at_mobiles"]; ok {
		at["atMobiles"] = mobiles
	}
	if all, ok := data["at_all"]; ok {
		at["isAtAll"] = all
	}
	if len(at) > 0 {
		body["at"] = at
	}

	query := url.Values{}
	query.Set("access_token", token)
	return d.Client().Post(ctx, httpx.Request{
		URL:       d.BaseURL(),
		Query:     query,
		JSON:      body,
		ErrorPath: d.PathToErrors(),
	})
}
