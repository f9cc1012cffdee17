package twilio_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herald-notify/herald/providers"
	"github.com/herald-notify/herald/providers/twilio"
)

func TestNotifySendsSMS(t *testing.T) {
	var path string
	var form map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "AC123", user)
		assert.Equal(t, "secret", pass)
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"SM1","status":"queued"}`))
	}))
	defer srv.Close()

	tw, err := twilio.New(providers.WithBaseURL(srv.URL + "/2010-04-01/Accounts/{account_sid}/Messages.json"))
	require.NoError(t, err)

	resp, err := tw.Notify(context.Background(), map[string]any{
		"account_sid": "AC123",
		"auth_token":  "secret",
		"to":          "+14155552671",
		"from_":       "+14155550000",
		"message":     "your code is 1234",
	})
	require.NoError(t, err)
	assert.True(t, resp.OK())

	assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", path)
	assert.Equal(t, "+14155552671", form["To"][0])
	assert.Equal(t, "+14155550000", form["From"][0])
	assert.Equal(t, "your code is 1234", form["Body"][0])
	assert.NotContains(t, form, "account_sid")
	assert.NotContains(t, form, "auth_token")
}

func TestNotifyRejectsBadPhoneNumber(t *testing.T) {
	tw, err := twilio.New()
	require.NoError(t, err)

	_, err = tw.Notify(context.Background(), map[string]any{
		"account_sid": "AC123",
		"auth_token":  "secret",
		"to":          "call me maybe",
		"message":     "hi",
	})
	var bad *providers.ErrBadArguments
	require.True(t, errors.As(err, &bad))
	assert.Contains(t, bad.Message, "to")
}

func TestNotifyExtractsMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":20003,"message":"Authenticate","status":401}`))
	}))
	defer srv.Close()

	tw, err := twilio.New(providers.WithBaseURL(srv.URL + "/2010-04-01/Accounts/{account_sid}/Messages.json"))
	require.NoError(t, err)

	resp, err := tw.Notify(context.Background(), map[string]any{
		"account_sid": "AC123",
		"auth_token":  "wrong",
		"to":          "+14155552671",
		"message":     "hi",
	})
	require.NoError(t, err)
	assert.Equal(t, providers.StatusFailure, resp.Status)
	assert.Equal(t, []string{"Authenticate"}, resp.Errors)
}
