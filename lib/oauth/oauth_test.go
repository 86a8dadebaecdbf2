package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestParseToken(t *testing.T) {
	token, err := ParseToken(`{"access_token":"abc","refresh_token":"def","expires_in":3600,"token_time":1700000000.5}`)
	require.NoError(t, err)
	require.Equal(t, "abc", token.AccessToken)
	require.Equal(t, "bearer", token.TokenType)
	require.Equal(t, time.Unix(1700003600, 0), token.ExpiresAt())

	_, err = ParseToken(`{}`)
	require.Error(t, err)
	_, err = ParseToken(`not json`)
	require.Error(t, err)
}

func TestExpired(t *testing.T) {
	token := Token{AccessToken: "a", ExpiresIn: 3600, TokenTime: 1700000000}
	require.False(t, token.Expired(time.Unix(1700000000, 0)))
	require.True(t, token.Expired(time.Unix(1700003550, 0)))
	require.True(t, Token{}.Expired(time.Unix(0, 0)))
}

func TestRefresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		require.NoError(t, r.ParseForm())
		require.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		require.Equal(t, "old-refresh", r.PostForm.Get("refresh_token"))

		w.Header().Set("content-type", "application/json")
		w.Write([]byte(`{"access_token":"new-access","expires_in":3600,"token_type":"bearer"}`))
	}))
	defer server.Close()

	now := time.Unix(1700000000, 0)
	token, err := Refresh(context.Background(), resty.New(), RefreshRequest{
		TokenUrl:     server.URL,
		ClientId:     "key",
		ClientSecret: "secret",
		RefreshToken: "old-refresh",
	}, now)
	require.NoError(t, err)
	require.Equal(t, "new-access", token.AccessToken)
	require.Equal(t, "old-refresh", token.RefreshToken)
	require.False(t, token.Expired(now))

	_, err = Refresh(context.Background(), resty.New(), RefreshRequest{
		TokenUrl:     server.URL,
		ClientId:     "key",
		ClientSecret: "wrong",
		RefreshToken: "old-refresh",
	}, now)
	require.Error(t, err)
}
