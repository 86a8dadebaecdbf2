package pipeline

import (
	"context"
	"fmt"
	"leagueexport/lib/fantasy"
)

// LeagueSource is the fantasy league the reports are generated for.
type LeagueSource interface {
	GetLeaguePlayers(ctx context.Context) ([]fantasy.PlayerRecord, error)
	GetLeagueStandings(ctx context.Context) ([]fantasy.TeamStanding, error)
	GetLeagueTransactions(ctx context.Context) ([]fantasy.Transaction, error)
	// returns an empty string when nobody owns the player
	GetPlayerOwnership(ctx context.Context, playerKey string) (string, error)
	GetMatchupWeekBounds(ctx context.Context, week int) (fantasy.WeekBounds, error)
}

// ScoreSource is the external leaderboard, rows are expected best first.
type ScoreSource interface {
	GetTopScorers(ctx context.Context, year, week int) ([]fantasy.ExternalRow, error)
}

type SnapshotStore interface {
	Push(ctx context.Context, period fantasy.Period, standings []fantasy.TeamStanding) error
	Pull(ctx context.Context, period fantasy.Period) ([]fantasy.TeamStanding, error)
}

type OverrideSource interface {
	Map(ctx context.Context) (map[string]string, error)
}

// SourceFetchError wraps a failure of a league or leaderboard call.
type SourceFetchError struct {
	Source string
	Op     string
	Err    error
}

func (e *SourceFetchError) Error() string {
	return fmt.Sprintf("fetch %s %s: %s", e.Source, e.Op, e.Err.Error())
}

func (e *SourceFetchError) Unwrap() error {
	return e.Err
}

func fetchError(source, op string, err error) error {
	return &SourceFetchError{Source: source, Op: op, Err: err}
}
