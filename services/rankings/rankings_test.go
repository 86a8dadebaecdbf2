package rankings

import (
	"leagueexport/lib/fantasy"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func ptr(v int) *int {
	return &v
}

var week5 = []fantasy.TeamStanding{
	{TeamID: "1", TeamName: "Touchdown Tsunami", Rank: 1},
	{TeamID: "2", TeamName: "Gridiron Gurus", Rank: 2},
	{TeamID: "3", TeamName: "Blitz Brigade", Rank: 3},
}

func TestComputeDelta(t *testing.T) {
	week6 := []fantasy.TeamStanding{
		{TeamID: "3", TeamName: "Blitz Brigade", Rank: 1},
		{TeamID: "1", TeamName: "Touchdown Tsunami", Rank: 2},
		// renamed teams still match by id
		{TeamID: "2", TeamName: "Guru Gridiron", Rank: 3},
		{TeamID: "4", TeamName: "Expansion Team", Rank: 4},
	}

	expected := []fantasy.RankDelta{
		{TeamID: "3", CurrentRank: 1, PreviousRank: ptr(3), Change: ptr(2)},
		{TeamID: "1", CurrentRank: 2, PreviousRank: ptr(1), Change: ptr(-1)},
		{TeamID: "2", CurrentRank: 3, PreviousRank: ptr(2), Change: ptr(-1)},
		{TeamID: "4", CurrentRank: 4},
	}
	if diff := cmp.Diff(expected, ComputeDelta(week6, week5)); diff != "" {
		t.Fatal(diff)
	}
}

func TestComputeDeltaIdentical(t *testing.T) {
	for _, d := range ComputeDelta(week5, week5) {
		require.NotNil(t, d.Change)
		require.Equal(t, 0, *d.Change)
	}
}

func TestComputeDeltaNoPrevious(t *testing.T) {
	deltas := ComputeDelta(week5, nil)
	require.Len(t, deltas, len(week5))
	for _, d := range deltas {
		require.Nil(t, d.PreviousRank)
		require.Nil(t, d.Change)
		require.Equal(t, NewEntry, FormatChange(d))
	}

	require.Empty(t, ComputeDelta(nil, week5))
}

func TestFormatChange(t *testing.T) {
	require.Equal(t, "2", FormatChange(fantasy.RankDelta{Change: ptr(2)}))
	require.Equal(t, "-3", FormatChange(fantasy.RankDelta{Change: ptr(-3)}))
	require.Equal(t, "0", FormatChange(fantasy.RankDelta{Change: ptr(0)}))
}

func TestSortByRank(t *testing.T) {
	standings := []fantasy.TeamStanding{
		{TeamID: "b", Rank: 2},
		{TeamID: "c", Rank: 1},
		{TeamID: "a", Rank: 2},
	}
	SortByRank(standings)
	require.Equal(t, "c", standings[0].TeamID)
	require.Equal(t, "a", standings[1].TeamID)
	require.Equal(t, "b", standings[2].TeamID)
}

func TestUnranked(t *testing.T) {
	standings := []fantasy.TeamStanding{
		{TeamID: "b", Rank: 0},
		{TeamID: "c", Rank: 2},
		{TeamID: "a", Rank: 0},
		{TeamID: "d", Rank: 1},
	}
	SortByRank(standings)
	var order []string
	for _, s := range standings {
		order = append(order, s.TeamID)
	}
	require.Equal(t, []string{"d", "c", "a", "b"}, order)

	require.Equal(t, "", FormatRank(0))
	require.Equal(t, "3", FormatRank(3))

	// no movement is reported into or out of an unranked week
	deltas := ComputeDelta(
		[]fantasy.TeamStanding{{TeamID: "a", Rank: 1}, {TeamID: "b", Rank: 0}},
		[]fantasy.TeamStanding{{TeamID: "a", Rank: 0}, {TeamID: "b", Rank: 2}},
	)
	for _, d := range deltas {
		require.Nil(t, d.PreviousRank)
		require.Nil(t, d.Change)
	}
}
