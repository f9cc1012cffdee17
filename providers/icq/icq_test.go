package icq_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herald-notify/herald/providers"
	"github.com/herald-notify/herald/providers/icq"
)

func TestNotifySendsText(t *testing.T) {
	var query map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{"ok":true,"msgId":"1"}`))
	}))
	defer srv.Close()

	i, err := icq.New(providers.WithBaseURL(srv.URL))
	require.NoError(t, err)

	resp, err := i.Notify(context.Background(), map[string]any{
		"token":   "bot-token",
		"chat_id": "12345",
		"message": "hi",
	})
	require.NoError(t, err)
	assert.True(t, resp.OK())

	assert.Equal(t, "bot-token", query["token"][0])
	assert.Equal(t, "12345", query["chatId"][0])
	assert.Equal(t, "hi", query["text"][0])
}

func TestNotifyErrorDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"Invalid token"}`))
	}))
	defer srv.Close()

	i, err := icq.New(providers.WithBaseURL(srv.URL))
	require.NoError(t, err)

	resp, err := i.Notify(context.Background(), map[string]any{
		"token":   "bad",
		"chat_id": "12345",
		"message": "hi",
	})
	require.NoError(t, err)
	assert.Equal(t, providers.StatusFailure, resp.Status)
	assert.Equal(t, []string{"Invalid token"}, resp.Errors)
}
