// Package fantasy holds the league entities shared by the sources,
// the pipeline stages and the report renderer.
package fantasy

import (
	"fmt"
	"time"
)

// PlayerRecord is a player as known to the league, unique by PlayerKey.
// DisplayName is not guaranteed unique.
type PlayerRecord struct {
	DisplayName string
	PlayerKey   string
}

// ExternalRow is one entry of a third-party scoring leaderboard,
// identified only by its display name.
type ExternalRow struct {
	Name   string
	Points float64
}

type ScoredPlayerRow struct {
	DisplayName string
	PlayerKey   string
	Points      float64
	// empty when the player is not on a roster
	Manager string
}

type TeamStanding struct {
	TeamID        string
	TeamName      string
	Rank          int
	PointsFor     float64
	PointsAgainst float64
	Wins          int
	Losses        int
	Ties          int
}

// Record renders the W-L-T record.
func (s TeamStanding) Record() string {
	return fmt.Sprintf("%d-%d-%d", s.Wins, s.Losses, s.Ties)
}

// RankDelta is the movement of a team between two periods. PreviousRank and
// Change are both nil when the team has no entry in the previous period.
type RankDelta struct {
	TeamID       string
	CurrentRank  int
	PreviousRank *int
	Change       *int
}

type ActionType string

const (
	ActionAdd   ActionType = "add"
	ActionDrop  ActionType = "drop"
	ActionTrade ActionType = "trade"
)

func ParseActionType(s string) (ActionType, error) {
	switch ActionType(s) {
	case ActionAdd, ActionDrop, ActionTrade:
		return ActionType(s), nil
	}
	return "", fmt.Errorf("unknown transaction action %q", s)
}

// TransactionEvent is one player movement within a league transaction.
type TransactionEvent struct {
	TeamName        string
	Action          ActionType
	PlayerName      string
	TransactionType string
	Timestamp       time.Time
}

type WeekBounds struct {
	Week  int
	Start time.Time
	End   time.Time
}

// Period identifies one scoring week of a season.
type Period struct {
	Year int
	Week int
}

func (p Period) Key() string {
	return fmt.Sprintf("%d-w%d", p.Year, p.Week)
}

func (p Period) String() string {
	return p.Key()
}

// Previous returns the prior week of the same season, ok is false for week 1.
func (p Period) Previous() (prev Period, ok bool) {
	if p.Week <= 1 {
		return Period{}, false
	}
	return Period{Year: p.Year, Week: p.Week - 1}, true
}

// Transaction is a league transaction as reported by the league, before
// it is split into one event per player.
type Transaction struct {
	Key       string
	Type      string
	Timestamp time.Time
	Players   []TransactionPlayer
}

type TransactionPlayer struct {
	Name                string
	Action              ActionType
	SourceTeamName      string
	DestinationTeamName string
}
