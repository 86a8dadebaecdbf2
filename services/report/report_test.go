package report

import (
	"bytes"
	"leagueexport/lib/fantasy"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func ptr(v int) *int {
	return &v
}

func TestFileName(t *testing.T) {
	require.Equal(t, "playerList.csv", FileName(KindPlayerList, 6))
	require.Equal(t, "week6TopScoringPlayers.csv", FileName(KindTopScorers, 6))
	require.Equal(t, "week6PowerRankings.csv", FileName(KindPowerRankings, 6))
	require.Equal(t, "week12Transactions.csv", FileName(KindTransactions, 12))
	for _, kind := range Kinds {
		require.NotEmpty(t, Header(kind))
	}
}

func TestTopScorerRows(t *testing.T) {
	rows := TopScorerRows([]fantasy.ScoredPlayerRow{
		{DisplayName: "Alice", PlayerKey: "K1", Points: 35.2},
		{DisplayName: "Lamar Jackson", PlayerKey: "449.p.30123", Points: 31.856, Manager: "Touchdown Tsunami"},
	})
	require.Equal(t, [][]string{
		{"Alice", "35.20", "Free Agent"},
		{"Lamar Jackson", "31.86", "Touchdown Tsunami"},
	}, rows)
}

func TestPowerRankingRows(t *testing.T) {
	standings := []fantasy.TeamStanding{
		{TeamID: "3", TeamName: "Blitz Brigade", Rank: 1, PointsFor: 701.4, PointsAgainst: 612, Wins: 5, Losses: 1},
		{TeamID: "9", TeamName: "Expansion Team", Rank: 2, PointsFor: 650, PointsAgainst: 640.25, Wins: 3, Losses: 2, Ties: 1},
	}
	deltas := []fantasy.RankDelta{
		{TeamID: "3", CurrentRank: 1, PreviousRank: ptr(3), Change: ptr(2)},
		{TeamID: "9", CurrentRank: 2},
	}
	require.Equal(t, [][]string{
		{"1", "Blitz Brigade", "2", "5-1-0", "701.40", "612.00", "3"},
		{"2", "Expansion Team", "NEW", "3-2-1", "650.00", "640.25", "9"},
	}, PowerRankingRows(standings, deltas))
}

func TestTransactionRows(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	rows := TransactionRows([]fantasy.TransactionEvent{{
		TeamName:        "Blitz Brigade",
		Action:          fantasy.ActionAdd,
		PlayerName:      "Jauan Jennings",
		TransactionType: "add/drop",
		Timestamp:       time.Date(2024, 10, 9, 12, 5, 9, 0, time.UTC),
	}}, loc)
	require.Equal(t, [][]string{
		{"Blitz Brigade", "add", "Jauan Jennings", "add/drop", "Oct 09 2024 08:05:09"},
	}, rows)
}

func TestRender(t *testing.T) {
	buff := bytes.NewBuffer(nil)
	err := Render(buff, TopScorersHeader, [][]string{
		{"Alice", "35.20", "Free Agent"},
		{"Ja'Marr Chase", "30.10", "Team, With Comma"},
	})
	require.NoError(t, err)
	require.Equal(t,
		"Player Name,Fantasy Points,Manager\n"+
			"Alice,35.20,Free Agent\n"+
			"Ja'Marr Chase,30.10,\"Team, With Comma\"\n",
		buff.String(),
	)

	err = Render(bytes.NewBuffer(nil), TopScorersHeader, [][]string{{"Alice", "35.20"}})
	require.Error(t, err)
}

func TestWriteFileIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", FileName(KindTopScorers, 6))
	rows := [][]string{{"Alice", "35.20", "Free Agent"}}

	require.NoError(t, WriteFile(path, TopScorersHeader, rows))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, WriteFile(path, TopScorersHeader, rows))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, first, second)

	// overwrites instead of appending
	require.NoError(t, WriteFile(path, TopScorersHeader, nil))
	third, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "Player Name,Fantasy Points,Manager\n", string(third))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestWriteFileKeepsArtifactOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, PlayerListFile)
	require.NoError(t, WriteFile(path, PlayerListHeader, [][]string{{"Alice", "K1"}}))

	err := WriteFile(path, PlayerListHeader, [][]string{{"Bob"}})
	require.Error(t, err)

	players, err := ReadPlayerListFile(path)
	require.NoError(t, err)
	require.Equal(t, []fantasy.PlayerRecord{{DisplayName: "Alice", PlayerKey: "K1"}}, players)
}

func TestParsePowerRankingsRoundTrip(t *testing.T) {
	standings := []fantasy.TeamStanding{
		{TeamID: "3", TeamName: "Blitz Brigade", Rank: 1, PointsFor: 701.4, PointsAgainst: 612, Wins: 5, Losses: 1},
		{TeamID: "9", TeamName: "Expansion Team", Rank: 2, PointsFor: 650, PointsAgainst: 640.25, Wins: 3, Losses: 2, Ties: 1},
	}
	path := filepath.Join(t.TempDir(), FileName(KindPowerRankings, 5))
	require.NoError(t, WriteFile(path, PowerRankingsHeader, PowerRankingRows(standings, nil)))

	parsed, err := ReadPowerRankingsFile(path)
	require.NoError(t, err)
	require.Equal(t, standings, parsed)
}

func TestPowerRankingRowsUnranked(t *testing.T) {
	standings := []fantasy.TeamStanding{
		{TeamID: "3", TeamName: "Blitz Brigade"},
		{TeamID: "9", TeamName: "Expansion Team"},
	}
	rows := PowerRankingRows(standings, []fantasy.RankDelta{{TeamID: "3"}, {TeamID: "9"}})
	require.Equal(t, [][]string{
		{"", "Blitz Brigade", "", "0-0-0", "0.00", "0.00", "3"},
		{"", "Expansion Team", "", "0-0-0", "0.00", "0.00", "9"},
	}, rows)

	path := filepath.Join(t.TempDir(), FileName(KindPowerRankings, 1))
	require.NoError(t, WriteFile(path, PowerRankingsHeader, rows))
	parsed, err := ReadPowerRankingsFile(path)
	require.NoError(t, err)
	require.Equal(t, standings, parsed)
}

func TestParseMalformed(t *testing.T) {
	testCases := []struct {
		name     string
		contents string
	}{
		{name: "empty", contents: ""},
		{name: "wrong header", contents: "Rank,Team,Change\n1,a,0\n"},
		{name: "short row", contents: strings.Join(PowerRankingsHeader, ",") + "\n1,a,0\n"},
		{name: "bad rank", contents: strings.Join(PowerRankingsHeader, ",") + "\nfirst,a,0,1-0-0,1,1,3\n"},
		{name: "bad record", contents: strings.Join(PowerRankingsHeader, ",") + "\n1,a,0,1-0,1,1,3\n"},
		{name: "bad points", contents: strings.Join(PowerRankingsHeader, ",") + "\n1,a,0,1-0-0,lots,1,3\n"},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParsePowerRankings(strings.NewReader(test.contents), "week5PowerRankings.csv")
			require.Error(t, err)
			require.True(t, IsMalformed(err), err.Error())
		})
	}

	_, err := ReadPowerRankingsFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
	require.False(t, IsMalformed(err))
}
