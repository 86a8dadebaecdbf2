// Package rankings derives week-over-week movement of the power rankings.
package rankings

import (
	"leagueexport/lib/fantasy"
	"sort"
	"strconv"
)

// Unranked is the rank of a team before the first week is scored.
const Unranked = 0

// ComputeDelta matches current against previous by team id. Teams absent
// from previous, or unranked in either week, get a nil PreviousRank and
// Change. Output follows the order of current.
func ComputeDelta(current, previous []fantasy.TeamStanding) []fantasy.RankDelta {
	prior := make(map[string]int, len(previous))
	for _, s := range previous {
		if s.Rank == Unranked {
			continue
		}
		prior[s.TeamID] = s.Rank
	}

	out := make([]fantasy.RankDelta, len(current))
	for i, s := range current {
		delta := fantasy.RankDelta{
			TeamID:      s.TeamID,
			CurrentRank: s.Rank,
		}
		if rank, ok := prior[s.TeamID]; ok && s.Rank != Unranked {
			previousRank := rank
			change := rank - s.Rank
			delta.PreviousRank = &previousRank
			delta.Change = &change
		}
		out[i] = delta
	}
	return out
}

const NewEntry = "NEW"

// FormatChange renders a change as a signed integer, or NewEntry when the
// team has no prior rank.
func FormatChange(d fantasy.RankDelta) string {
	if d.Change == nil {
		return NewEntry
	}
	return strconv.Itoa(*d.Change)
}

// FormatRank renders an unranked team as an empty string.
func FormatRank(rank int) string {
	if rank == Unranked {
		return ""
	}
	return strconv.Itoa(rank)
}

// SortByRank orders standings by rank, unranked teams last, ties broken by
// team id.
func SortByRank(standings []fantasy.TeamStanding) {
	sort.SliceStable(standings, func(i, j int) bool {
		iUnranked, jUnranked := standings[i].Rank == Unranked, standings[j].Rank == Unranked
		if iUnranked != jUnranked {
			return jUnranked
		}
		if standings[i].Rank != standings[j].Rank {
			return standings[i].Rank < standings[j].Rank
		}
		return standings[i].TeamID < standings[j].TeamID
	})
}
