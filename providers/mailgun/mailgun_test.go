package mailgun_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herald-notify/herald/providers"
	"github.com/herald-notify/herald/providers/mailgun"
)

func baseArgs(extra map[string]any) map[string]any {
	args := map[string]any{
		"api_key": "key-123",
		"domain":  "mail.example.com",
		"from_":   "noreply@example.com",
		"to":      "ops@example.com",
		"message": "all systems nominal",
	}
	for k, v := range extra {
		args[k] = v
	}
	return args
}

func TestNotifySendsForm(t *testing.T) {
	var path string
	var form map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "api", user)
		assert.Equal(t, "key-123", pass)
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Write([]byte(`{"id":"<1@mail.example.com>","message":"Queued. Thank you."}`))
	}))
	defer srv.Close()

	m, err := mailgun.New(providers.WithBaseURL(srv.URL + "/v3/{domain}/messages"))
	require.NoError(t, err)

	resp, err := m.Notify(context.Background(), baseArgs(map[string]any{
		"to":      []any{"ops@example.com", "dev@example.com"},
		"subject": "status",
	}))
	require.NoError(t, err)
	assert.True(t, resp.OK())

	assert.Equal(t, "/v3/mail.example.com/messages", path)
	assert.Equal(t, "noreply@example.com", form["from"][0])
	assert.Equal(t, "ops@example.com,dev@example.com", form["to"][0])
	assert.Equal(t, "all systems nominal", form["text"][0])
	assert.NotContains(t, form, "api_key")
	assert.NotContains(t, form, "domain")
}

func TestNotifyOptionFlagsAndTags(t *testing.T) {
	var form map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Write([]byte(`{"message":"Queued. Thank you."}`))
	}))
	defer srv.Close()

	m, err := mailgun.New(providers.WithBaseURL(srv.URL + "/v3/{domain}/messages"))
	require.NoError(t, err)

	_, err = m.Notify(context.Background(), baseArgs(map[string]any{
		"tag":      []any{"deploys", "alerts"},
		"dkim":     true,
		"testmode": false,
		"headers":  map[string]any{"Reply-To": "support@example.com"},
		"data":     map[string]any{"build": map[string]any{"id": 7}},
	}))
	require.NoError(t, err)

	// tags repeat as separate form values, flags encode as yes/no, grouped
	// headers and data flatten into prefixed keys.
	assert.Equal(t, []string{"deploys", "alerts"}, form["o:tag"])
	assert.Equal(t, "yes", form["o:dkim"][0])
	assert.Equal(t, "no", form["o:testmode"][0])
	assert.Equal(t, "support@example.com", form["h:Reply-To"][0])
	assert.JSONEq(t, `{"id":7}`, form["v:build"][0])
}

func TestNotifyAttachments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.txt")
	require.NoError(t, os.WriteFile(path, []byte("boot ok"), 0o600))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "all systems nominal", r.FormValue("text"))

		file, header, err := r.FormFile("attachment")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "log.txt", header.Filename)
		w.Write([]byte(`{"message":"Queued. Thank you."}`))
	}))
	defer srv.Close()

	m, err := mailgun.New(providers.WithBaseURL(srv.URL + "/v3/{domain}/messages"))
	require.NoError(t, err)

	resp, err := m.Notify(context.Background(), baseArgs(map[string]any{
		"attachment": path,
	}))
	require.NoError(t, err)
	assert.True(t, resp.OK())
}

func TestNotifyRejectsBadRecipient(t *testing.T) {
	m, err := mailgun.New()
	require.NoError(t, err)

	_, err = m.Notify(context.Background(), baseArgs(map[string]any{
		"to": "not-an-address",
	}))
	require.Error(t, err)
	_, ok := err.(*providers.ErrBadArguments)
	assert.True(t, ok)
}
