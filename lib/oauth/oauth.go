package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("leagueexport.lib.oauth")

// Token is an OAuth2 access token in the shape the Yahoo token
// endpoint returns it, plus the time it was issued.
type Token struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	ExpiresIn    int     `json:"expires_in"`
	TokenType    string  `json:"token_type"`
	Guid         string  `json:"xoauth_yahoo_guid,omitempty"`
	TokenTime    float64 `json:"token_time"`
}

func ParseToken(raw string) (Token, error) {
	var token Token
	err := json.Unmarshal([]byte(raw), &token)
	if err != nil {
		return Token{}, fmt.Errorf("parse access token json: %w", err)
	}
	if token.AccessToken == "" && token.RefreshToken == "" {
		return Token{}, fmt.Errorf("access token json has neither access_token nor refresh_token")
	}
	if token.TokenType == "" {
		token.TokenType = "bearer"
	}
	return token, nil
}

func (t Token) Json() (string, error) {
	out, err := json.Marshal(t)
	return string(out), err
}

func (t Token) ExpiresAt() time.Time {
	issued := time.Unix(int64(t.TokenTime), 0)
	return issued.Add(time.Second * time.Duration(t.ExpiresIn))
}

// Expired reports whether the token must be refreshed before use, tokens
// are treated as expired a minute early.
func (t Token) Expired(now time.Time) bool {
	if t.AccessToken == "" || t.TokenTime == 0 {
		return true
	}
	return !now.Add(time.Minute).Before(t.ExpiresAt())
}

type RefreshRequest struct {
	TokenUrl     string
	ClientId     string
	ClientSecret string
	RefreshToken string
	// defaults to "oob" which is what Yahoo uses for installed apps
	RedirectUri string
}

func Refresh(ctx context.Context, client *resty.Client, req RefreshRequest, now time.Time) (Token, error) {
	ctx, span := tracer.Start(ctx, "Refresh")
	defer span.End()

	span.SetAttributes(attribute.String("token_url", req.TokenUrl))

	if req.RefreshToken == "" {
		err := fmt.Errorf("no refresh token available")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Token{}, err
	}
	redirectUri := req.RedirectUri
	if redirectUri == "" {
		redirectUri = "oob"
	}

	var token Token
	res, err := client.R().
		SetContext(ctx).
		SetBasicAuth(req.ClientId, req.ClientSecret).
		SetFormData(map[string]string{
			"grant_type":    "refresh_token",
			"redirect_uri":  redirectUri,
			"refresh_token": req.RefreshToken,
		}).
		SetResult(&token).
		Post(req.TokenUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "token request failed")
		return Token{}, err
	}
	if res.IsError() {
		err = fmt.Errorf("token refresh rejected (%s): %s", res.Status(), res.String())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Token{}, err
	}
	if token.AccessToken == "" {
		err = fmt.Errorf("token refresh returned no access token")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Token{}, err
	}

	// yahoo keeps the refresh token stable but does not always echo it back
	if token.RefreshToken == "" {
		token.RefreshToken = req.RefreshToken
	}
	token.TokenTime = float64(now.Unix())
	return token, nil
}
