package yahoo

import (
	"context"
	"encoding/xml"
	"fmt"
	"leagueexport/lib/oauth"
	"leagueexport/lib/restyutil"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("leagueexport.lib.platforms.yahoo")

const (
	DefaultBaseUrl  = "https://fantasysports.yahooapis.com/fantasy/v2"
	DefaultTokenUrl = "https://api.login.yahoo.com/oauth2/get_token"
	defaultPageSize = 25
)

type Client struct {
	http      *resty.Client
	auth      *resty.Client
	opts      ClientOptions
	leagueKey string
	token     oauth.Token
}

type ClientOptions struct {
	BaseUrl  string
	TokenUrl string
	GameKey  string
	LeagueId string

	ConsumerKey    string
	ConsumerSecret string
	Token          oauth.Token
	// called with the new token every time it is refreshed
	OnTokenRefresh func(oauth.Token) error

	// page size when listing league players, yahoo caps this at 25
	PageSize int
	// stop listing players after this many, 0 means no limit
	MaxPlayers int

	InstrumentOutput restyutil.InstrumentOutput
	Now              func() time.Time
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.GameKey == "" || opts.LeagueId == "" {
		return nil, fmt.Errorf("a game key and league id must be specified")
	}
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.TokenUrl == "" {
		opts.TokenUrl = DefaultTokenUrl
	}
	if opts.PageSize <= 0 || opts.PageSize > defaultPageSize {
		opts.PageSize = defaultPageSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(opts.BaseUrl, "/"))
	client.SetHeader("accept", "application/xml")
	client.SetTimeout(time.Second * 30)
	restyutil.InstrumentClient(client, "yahoo", opts.InstrumentOutput)

	auth := resty.New()
	auth.SetTimeout(time.Second * 30)
	restyutil.InstrumentClient(auth, "yahoo-oauth", opts.InstrumentOutput)

	return &Client{
		http:      client,
		auth:      auth,
		opts:      opts,
		leagueKey: fmt.Sprintf("%s.l.%s", opts.GameKey, opts.LeagueId),
		token:     opts.Token,
	}, nil
}

func (c *Client) LeagueKey() string {
	return c.leagueKey
}

func (c *Client) authorize(ctx context.Context) error {
	if !c.token.Expired(c.opts.Now()) {
		return nil
	}

	token, err := oauth.Refresh(ctx, c.auth, oauth.RefreshRequest{
		TokenUrl:     c.opts.TokenUrl,
		ClientId:     c.opts.ConsumerKey,
		ClientSecret: c.opts.ConsumerSecret,
		RefreshToken: c.token.RefreshToken,
	}, c.opts.Now())
	if err != nil {
		return fmt.Errorf("refresh yahoo access token: %w", err)
	}
	c.token = token

	if c.opts.OnTokenRefresh != nil {
		err = c.opts.OnTokenRefresh(token)
		if err != nil {
			return fmt.Errorf("persist refreshed token: %w", err)
		}
	}
	return nil
}

type apiError struct {
	Description string `xml:"description"`
}

// get fetches a resource path relative to the base url and decodes
// the fantasy_content envelope into out.
func (c *Client) get(ctx context.Context, path string, out *fantasyContent) error {
	ctx, span := tracer.Start(ctx, "get")
	defer span.End()

	span.SetAttributes(attribute.String("path", path))

	err := c.authorize(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "authorize")
		return err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("authorization", fmt.Sprintf("Bearer %s", c.token.AccessToken)).
		Get(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return err
	}

	if res.IsError() {
		var apiErr apiError
		description := res.Status()
		if xml.Unmarshal(res.Body(), &apiErr) == nil && apiErr.Description != "" {
			description = apiErr.Description
		}
		err = fmt.Errorf("yahoo %s: %s", path, description)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	err = xml.Unmarshal(res.Body(), out)
	if err != nil {
		err = fmt.Errorf("decode yahoo %s: %w", path, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
