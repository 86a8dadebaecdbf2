package fantasypros

import (
	"bytes"
	"context"
	"fmt"
	"leagueexport/lib/fantasy"
	"leagueexport/lib/htmlutil"
	"leagueexport/lib/restyutil"
	"leagueexport/lib/textutil"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("leagueexport.lib.scrapers.fantasypros")

const (
	DefaultBaseUrl = "https://www.fantasypros.com"
	DefaultScoring = "half-ppr"
	DefaultLimit   = 10

	playerColumn = "Player"
	pointsColumn = "TTL"
)

type Client struct {
	http    *resty.Client
	opts    ClientOptions
	baseUrl *url.URL
}

type ClientOptions struct {
	BaseUrl string
	// the scoring variant in the leaders url, ex. "ppr", "half-ppr"
	Scoring string
	// how many leaders to return, in leaderboard order
	Limit int
	// routes requests through the cloudflare bypass transport
	CloudflareBypass bool

	InstrumentOutput restyutil.InstrumentOutput
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Scoring == "" {
		opts.Scoring = DefaultScoring
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)
	restyutil.InstrumentClient(client, "fantasypros", opts.InstrumentOutput)

	return &Client{http: client, opts: opts, baseUrl: baseUrl}, nil
}

func (c *Client) leadersUrl(year, week int) string {
	link := *c.baseUrl
	link.Path = fmt.Sprintf("/nfl/reports/leaders/%s.php", c.opts.Scoring)
	query := url.Values{}
	query.Set("year", strconv.Itoa(year))
	query.Set("start", strconv.Itoa(week))
	query.Set("end", strconv.Itoa(week))
	link.RawQuery = query.Encode()
	return link.String()
}

// GetTopScorers returns the leading scorers of a single week in the order the
// leaderboard lists them. The ordering is the leaderboard's, it is not re-sorted.
func (c *Client) GetTopScorers(ctx context.Context, year, week int) ([]fantasy.ExternalRow, error) {
	ctx, span := tracer.Start(ctx, "GetTopScorers")
	defer span.End()

	link := c.leadersUrl(year, week)
	span.SetAttributes(attribute.String("url", link))

	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, err
	}
	if res.IsError() {
		err = fmt.Errorf("fetch %s: %s", link, res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse html")
		return nil, err
	}

	rows, err := ParseLeaders(doc, c.opts.Limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("rows", len(rows)))
	slog.DebugContext(ctx, "scraped leaders", "year", year, "week", week, "rows", len(rows))
	return rows, nil
}

// ParseLeaders reads the leaders table of the page, the column layout is
// validated before any row is read.
func ParseLeaders(doc *goquery.Document, limit int) ([]fantasy.ExternalRow, error) {
	tableSel := doc.Find("table#data")
	if tableSel.Length() == 0 {
		tableSel = doc.Find("table")
	}
	if tableSel.Length() == 0 {
		return nil, &fantasy.MalformedArtifactError{
			Source: "fantasypros",
			Reason: "no leaders table on page",
		}
	}

	table := htmlutil.ReadTable(tableSel.First())
	playerIdx := table.Column(playerColumn)
	pointsIdx := table.Column(pointsColumn)
	if playerIdx < 0 || pointsIdx < 0 {
		return nil, &fantasy.MalformedArtifactError{
			Source:   "fantasypros",
			Expected: []string{playerColumn, pointsColumn},
			Found:    table.Header,
			Reason:   "leaders table is missing columns",
		}
	}

	var result []fantasy.ExternalRow
	for i, row := range table.Rows {
		if limit > 0 && len(result) >= limit {
			break
		}
		if len(row) <= playerIdx || len(row) <= pointsIdx {
			return nil, &fantasy.MalformedArtifactError{
				Source: "fantasypros",
				Reason: fmt.Sprintf("row %d has %d cells, header has %d", i+1, len(row), len(table.Header)),
			}
		}

		name := row[playerIdx]
		anchor := table.Cells[i][playerIdx].Find("a.player-name")
		if anchor.Length() > 0 {
			name = htmlutil.CleanText(anchor.First())
		}
		name = textutil.CleanDisplayName(name)

		points, err := strconv.ParseFloat(strings.TrimSpace(row[pointsIdx]), 64)
		if err != nil {
			return nil, &fantasy.MalformedArtifactError{
				Source: "fantasypros",
				Reason: fmt.Sprintf("row %d has non-numeric %s %q", i+1, pointsColumn, row[pointsIdx]),
			}
		}

		result = append(result, fantasy.ExternalRow{
			Name:   name,
			Points: points,
		})
	}

	return result, nil
}
