package fantasypros

import (
	"context"
	"errors"
	"leagueexport/lib/fantasy"
	"leagueexport/lib/telemetry"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	_ "embed"
)

//go:embed testdata/leaders.html
var leadersHtml string

func TestGetTopScorers(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/fantasypros")
	defer cleanup()

	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.String()
		w.Header().Set("content-type", "text/html")
		w.Write([]byte(leadersHtml))
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{
		BaseUrl: server.URL,
		Limit:   3,
	})
	if err != nil {
		t.Fatal(err)
	}

	rows, err := client.GetTopScorers(context.Background(), 2024, 6)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "/nfl/reports/leaders/half-ppr.php?end=6&start=6&year=2024", requested)

	expected := []fantasy.ExternalRow{
		{Name: "Lamar Jackson", Points: 35.2},
		{Name: "Ja'Marr Chase", Points: 30.1},
		{Name: "Bijan Robinson", Points: 24.5},
	}
	if diff := cmp.Diff(expected, rows); diff != "" {
		t.Fatal(diff)
	}
}

func TestGetTopScorersHttpError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	if err != nil {
		t.Fatal(err)
	}
	_, err = client.GetTopScorers(context.Background(), 2024, 6)
	require.Error(t, err)
}

func TestParseLeadersMalformed(t *testing.T) {
	cases := []struct {
		name string
		html string
	}{
		{
			name: "no table",
			html: `<html><body><p>maintenance</p></body></html>`,
		},
		{
			name: "renamed column",
			html: `<table><thead><tr><th>Player</th><th>Total</th></tr></thead>
				<tbody><tr><td>A</td><td>1</td></tr></tbody></table>`,
		},
		{
			name: "non-numeric points",
			html: `<table><thead><tr><th>Player</th><th>TTL</th></tr></thead>
				<tbody><tr><td>A</td><td>BYE</td></tr></tbody></table>`,
		},
		{
			name: "short row",
			html: `<table><thead><tr><th>Rank</th><th>Player</th><th>TTL</th></tr></thead>
				<tbody><tr><td>1</td></tr></tbody></table>`,
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(test.html))
			if err != nil {
				t.Fatal(err)
			}
			_, err = ParseLeaders(doc, 10)

			var malformed *fantasy.MalformedArtifactError
			require.True(t, errors.As(err, &malformed), "expected malformed artifact error, got %v", err)
			require.Equal(t, "fantasypros", malformed.Source)
		})
	}
}

func TestParseLeadersLimit(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(leadersHtml))
	if err != nil {
		t.Fatal(err)
	}

	rows, err := ParseLeaders(doc, 10)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.Equal(t, "Derrick Henry", rows[3].Name)

	rows, err = ParseLeaders(doc, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
