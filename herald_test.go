package herald_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herald "github.com/herald-notify/herald"
	"github.com/herald-notify/herald/providers"
)

var builtins = []string{
	"dingtalk", "gitter", "icq", "join", "mailgun", "pagerduty",
	"popcornnotify", "pushbullet", "pushover", "simplepush", "slack",
	"statuspage", "telegram", "twilio", "zulip",
}

func TestAllProviders(t *testing.T) {
	names := herald.AllProviders()
	assert.Equal(t, builtins, names)
	assert.True(t, sort.StringsAreSorted(names))
}

func TestGetNotifier(t *testing.T) {
	p := herald.GetNotifier("pushover")
	require.NotNil(t, p)
	assert.Equal(t, "pushover", p.Name())

	assert.NotNil(t, herald.GetNotifier("PUSHOVER"))
	assert.Nil(t, herald.GetNotifier("carrier-pigeon"))
}

func TestRequireNotifier(t *testing.T) {
	p, err := herald.RequireNotifier("slack")
	require.NoError(t, err)
	assert.Equal(t, "slack", p.Name())

	_, err = herald.RequireNotifier("carrier-pigeon")
	var missing *providers.ErrNoSuchNotifier
	require.True(t, errors.As(err, &missing))
}

func TestEveryBuiltinConstructs(t *testing.T) {
	for _, name := range builtins {
		p, err := herald.RequireNotifier(name)
		require.NoError(t, err, "provider %q", name)
		assert.Equal(t, name, p.Name())
		assert.NotEmpty(t, p.SiteURL())
		assert.NotEmpty(t, p.Required())
		assert.NotEmpty(t, p.Arguments())
		assert.Equal(t, name, p.Metadata()["name"])
	}
}

func TestNotifyUnknownProvider(t *testing.T) {
	_, err := herald.Notify(context.Background(), "carrier-pigeon", nil)
	var missing *providers.ErrNoSuchNotifier
	require.True(t, errors.As(err, &missing))
}

func TestNotifyDispatchesThroughSlack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	resp, err := herald.Notify(context.Background(), "slack", map[string]any{
		"webhook_url": srv.URL,
		"message":     "hello from herald",
	})
	require.NoError(t, err)
	assert.Equal(t, providers.StatusSuccess, resp.Status)
	assert.Equal(t, "slack", resp.Provider)
}
