// Package snapshots keeps the standings of every period so the next
// period's rank movement can be computed without re-reading rendered
// artifacts.
package snapshots

import (
	"context"
	"database/sql"
	"errors"
	"leagueexport/lib/fantasy"
	"leagueexport/lib/timezone"
	"leagueexport/services/snapshots/db"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/snapshots")

// ErrMissingPriorState is returned by Pull when nothing was pushed for the
// period.
var ErrMissingPriorState = errors.New("no snapshot stored for period")

type PeriodSummary struct {
	Period    fantasy.Period
	Teams     int
	CreatedAt time.Time
}

type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

// Push replaces the snapshot of a period with standings.
func (s Store) Push(ctx context.Context, period fantasy.Period, standings []fantasy.TeamStanding) error {
	ctx, span := tracer.Start(ctx, "Push")
	defer span.End()

	span.SetAttributes(
		attribute.String("period", period.Key()),
		attribute.Int("teams", len(standings)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	err = txqry.DeletePeriod(ctx, period.Key())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	now := timezone.Now().Unix()
	for _, standing := range standings {
		err = txqry.CreateStanding(ctx, db.CreateStandingParams{
			Period:        period.Key(),
			Year:          int64(period.Year),
			Week:          int64(period.Week),
			TeamID:        standing.TeamID,
			TeamName:      standing.TeamName,
			Rank:          int64(standing.Rank),
			PointsFor:     standing.PointsFor,
			PointsAgainst: standing.PointsAgainst,
			Wins:          int64(standing.Wins),
			Losses:        int64(standing.Losses),
			Ties:          int64(standing.Ties),
			CreatedAt:     now,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	err = tx.Commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// Pull returns the standings of a period ordered by rank.
func (s Store) Pull(ctx context.Context, period fantasy.Period) ([]fantasy.TeamStanding, error) {
	ctx, span := tracer.Start(ctx, "Pull")
	defer span.End()

	span.SetAttributes(attribute.String("period", period.Key()))

	rows, err := s.qry.GetPeriod(ctx, period.Key())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrMissingPriorState
	}

	out := make([]fantasy.TeamStanding, len(rows))
	for i, r := range rows {
		out[i] = fantasy.TeamStanding{
			TeamID:        r.TeamID,
			TeamName:      r.TeamName,
			Rank:          int(r.Rank),
			PointsFor:     r.PointsFor,
			PointsAgainst: r.PointsAgainst,
			Wins:          int(r.Wins),
			Losses:        int(r.Losses),
			Ties:          int(r.Ties),
		}
	}
	return out, nil
}

func (s Store) ListPeriods(ctx context.Context) ([]PeriodSummary, error) {
	ctx, span := tracer.Start(ctx, "ListPeriods")
	defer span.End()

	rows, err := s.qry.ListPeriods(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := make([]PeriodSummary, len(rows))
	for i, r := range rows {
		out[i] = PeriodSummary{
			Period: fantasy.Period{Year: int(r.Year), Week: int(r.Week)},
			Teams:  int(r.Teams),
		}
		// sqlite reports aggregates without a declared type
		switch created := r.CreatedAt.(type) {
		case int64:
			out[i].CreatedAt = time.Unix(created, 0).In(timezone.Location)
		case float64:
			out[i].CreatedAt = time.Unix(int64(created), 0).In(timezone.Location)
		}
	}
	return out, nil
}
