package telegram_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herald-notify/herald/providers"
	"github.com/herald-notify/herald/providers/telegram"
)

func TestNotifyMissingChatID(t *testing.T) {
	p, err := telegram.New()
	require.NoError(t, err)

	_, err = p.Notify(context.Background(), map[string]any{
		"token":   "123:abc",
		"message": "hi",
	})
	var bad *providers.ErrBadArguments
	require.True(t, errors.As(err, &bad))
	assert.Contains(t, bad.Message, "'chat_id' is a required property")
}

func TestNotifySendsMessage(t *testing.T) {
	var path string
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"ok":true,"result":{"message_id":7}}`))
	}))
	defer srv.Close()

	p, err := telegram.New(providers.WithBaseURL(srv.URL + "/bot{token}/{method}"))
	require.NoError(t, err)

	resp, err := p.Notify(context.Background(), map[string]any{
		"token":   "123:abc",
		"chat_id": "@mychannel",
		"message": "hi",
	})
	require.NoError(t, err)
	assert.True(t, resp.OK())

	// The token rides in the URL, never in the body; message goes out as text.
	assert.Equal(t, "/bot123:abc/sendMessage", path)
	assert.NotContains(t, body, "token")
	assert.Equal(t, "hi", body["text"])
	assert.Equal(t, "@mychannel", body["chat_id"])
}

func TestNotifyAcceptsNumericChatID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	p, err := telegram.New(providers.WithBaseURL(srv.URL + "/bot{token}/{method}"))
	require.NoError(t, err)

	resp, err := p.Notify(context.Background(), map[string]any{
		"token":   "123:abc",
		"chat_id": 112233,
		"message": "hi",
	})
	require.NoError(t, err)
	assert.True(t, resp.OK())
}

func TestNotifyExtractsDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	}))
	defer srv.Close()

	p, err := telegram.New(providers.WithBaseURL(srv.URL + "/bot{token}/{method}"))
	require.NoError(t, err)

	resp, err := p.Notify(context.Background(), map[string]any{
		"token":   "bad",
		"chat_id": 1,
		"message": "hi",
	})
	require.NoError(t, err)
	assert.Equal(t, providers.StatusFailure, resp.Status)
	assert.Equal(t, []string{"Unauthorized"}, resp.Errors)
}

func TestUpdatesResource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot123:abc/getUpdates", r.URL.Path)
		w.Write([]byte(`{"ok":true,"result":[{"update_id":1}]}`))
	}))
	defer srv.Close()

	p, err := telegram.New(providers.WithBaseURL(srv.URL + "/bot{token}/{method}"))
	require.NoError(t, err)

	res, ok := p.Resource("updates")
	require.True(t, ok)
	out, err := res.Call(context.Background(), map[string]any{"token": "123:abc"})
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"update_id": float64(1)}}, out)
}
