// Package report renders the weekly artifacts as fixed-header CSV files
// and reads previously rendered ones back.
package report

import (
	"fmt"
	"leagueexport/lib/fantasy"
	"leagueexport/services/rankings"
	"strconv"
	"time"
)

type Kind string

const (
	KindPlayerList    Kind = "player-list"
	KindTopScorers    Kind = "top-scorers"
	KindPowerRankings Kind = "power-rankings"
	KindTransactions  Kind = "transactions"
)

// Kinds lists every report in generation order.
var Kinds = []Kind{KindPlayerList, KindTopScorers, KindPowerRankings, KindTransactions}

var (
	PlayerListHeader    = []string{"Player Name", "Player Key"}
	TopScorersHeader    = []string{"Player Name", "Fantasy Points", "Manager"}
	PowerRankingsHeader = []string{"Rank", "Team Name", "Change", "Record", "Points For", "Points Against", "Team ID"}
	TransactionsHeader  = []string{"Team Name", "Action", "Player Name", "transactionType", "Date"}
)

const (
	PlayerListFile = "playerList.csv"
	DateLayout     = "Jan 02 2006 15:04:05"
	FreeAgent      = "Free Agent"
)

func Header(kind Kind) []string {
	switch kind {
	case KindPlayerList:
		return PlayerListHeader
	case KindTopScorers:
		return TopScorersHeader
	case KindPowerRankings:
		return PowerRankingsHeader
	case KindTransactions:
		return TransactionsHeader
	}
	return nil
}

// FileName is the artifact name of a report for a week, the player list is
// not tied to a week.
func FileName(kind Kind, week int) string {
	switch kind {
	case KindPlayerList:
		return PlayerListFile
	case KindTopScorers:
		return fmt.Sprintf("week%dTopScoringPlayers.csv", week)
	case KindPowerRankings:
		return fmt.Sprintf("week%dPowerRankings.csv", week)
	case KindTransactions:
		return fmt.Sprintf("week%dTransactions.csv", week)
	}
	return ""
}

func FormatPoints(points float64) string {
	return strconv.FormatFloat(points, 'f', 2, 64)
}

func PlayerListRows(players []fantasy.PlayerRecord) [][]string {
	rows := make([][]string, len(players))
	for i, p := range players {
		rows[i] = []string{p.DisplayName, p.PlayerKey}
	}
	return rows
}

func TopScorerRows(scored []fantasy.ScoredPlayerRow) [][]string {
	rows := make([][]string, len(scored))
	for i, s := range scored {
		manager := s.Manager
		if manager == "" {
			manager = FreeAgent
		}
		rows[i] = []string{s.DisplayName, FormatPoints(s.Points), manager}
	}
	return rows
}

// PowerRankingRows renders standings with the delta of the same team,
// teams without a delta render as new entries.
func PowerRankingRows(standings []fantasy.TeamStanding, deltas []fantasy.RankDelta) [][]string {
	byTeam := make(map[string]fantasy.RankDelta, len(deltas))
	for _, d := range deltas {
		byTeam[d.TeamID] = d
	}

	rows := make([][]string, len(standings))
	for i, s := range standings {
		change := rankings.FormatChange(byTeam[s.TeamID])
		if s.Rank == rankings.Unranked {
			change = ""
		}
		rows[i] = []string{
			rankings.FormatRank(s.Rank),
			s.TeamName,
			change,
			s.Record(),
			FormatPoints(s.PointsFor),
			FormatPoints(s.PointsAgainst),
			s.TeamID,
		}
	}
	return rows
}

// TransactionRows renders timestamps in loc.
func TransactionRows(events []fantasy.TransactionEvent, loc *time.Location) [][]string {
	rows := make([][]string, len(events))
	for i, e := range events {
		rows[i] = []string{
			e.TeamName,
			string(e.Action),
			e.PlayerName,
			e.TransactionType,
			e.Timestamp.In(loc).Format(DateLayout),
		}
	}
	return rows
}
