package popcornnotify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herald-notify/herald/providers"
	"github.com/herald-notify/herald/providers/popcornnotify"
)

func TestNotifyJoinsRecipients(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	p, err := popcornnotify.New(providers.WithBaseURL(srv.URL))
	require.NoError(t, err)

	resp, err := p.Notify(context.Background(), map[string]any{
		"api_key":    "key1",
		"message":    "hi",
		"recipients": []any{"a@example.com", "b@example.com"},
		"subject":    "ping",
	})
	require.NoError(t, err)
	assert.True(t, resp.OK())

	assert.Equal(t, "a@example.com,b@example.com", body["recipients"])
	assert.Equal(t, "hi", body["message"])
	assert.Equal(t, "ping", body["subject"])
}

func TestNotifyErrorExtraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid API key"}`))
	}))
	defer srv.Close()

	p, err := popcornnotify.New(providers.WithBaseURL(srv.URL))
	require.NoError(t, err)

	resp, err := p.Notify(context.Background(), map[string]any{
		"api_key":    "bad",
		"message":    "hi",
		"recipients": "a@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, providers.StatusFailure, resp.Status)
	assert.Equal(t, []string{"Invalid API key"}, resp.Errors)
}
