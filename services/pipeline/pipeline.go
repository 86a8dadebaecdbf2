// Package pipeline generates the weekly reports, each one independently
// of the others.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"leagueexport/lib/fantasy"
	"leagueexport/services/linker"
	"leagueexport/services/report"
	"leagueexport/services/transactions"
	"log/slog"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("services/pipeline")
var meter = otel.Meter("services/pipeline")

const (
	sourceLeague      = "league"
	sourceLeaderboard = "leaderboard"
	DefaultTopN       = 10
)

type Options struct {
	OutputDir  string
	TopN       int
	JoinPolicy linker.Policy
	// fail the top scorers report when a leaderboard name cannot be joined
	Strict bool
	// ignore the cached player list
	RefreshPlayers bool
	// zero keeps the league's week bounds as they are,
	// see transactions.DefaultOffset
	Offset transactions.Offset
	// timezone of rendered dates
	Location *time.Location
}

type Params struct {
	League    LeagueSource
	Scores    ScoreSource
	Snapshots SnapshotStore
	Overrides OverrideSource
	Options   Options
}

type Pipeline struct {
	league    LeagueSource
	scores    ScoreSource
	snapshots SnapshotStore
	overrides OverrideSource
	opts      Options

	generated metric.Int64Counter
	failed    metric.Int64Counter
	rows      metric.Int64Counter
}

// Result describes one generated report.
type Result struct {
	Kind report.Kind
	Path string
	Rows int
	// leaderboard rows skipped by the top scorers report
	Unresolved []*linker.UnresolvedKeyError
	Ambiguous  []*linker.AmbiguousKeyError
}

func New(params Params) (*Pipeline, error) {
	if params.League == nil {
		return nil, fmt.Errorf("a league source must be specified")
	}
	opts := params.Options
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	if opts.JoinPolicy == "" {
		opts.JoinPolicy = linker.PolicyErrorOnAmbiguous
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	generated, err := meter.Int64Counter(
		"leagueexport.reports.generated",
		metric.WithDescription("The amount of reports written."),
	)
	if err != nil {
		return nil, err
	}
	failed, err := meter.Int64Counter(
		"leagueexport.reports.failed",
		metric.WithDescription("The amount of reports that failed to generate."),
	)
	if err != nil {
		return nil, err
	}
	rows, err := meter.Int64Counter(
		"leagueexport.report.rows",
		metric.WithDescription("The amount of rows written across all reports."),
	)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		league:    params.League,
		scores:    params.Scores,
		snapshots: params.Snapshots,
		overrides: params.Overrides,
		opts:      opts,
		generated: generated,
		failed:    failed,
		rows:      rows,
	}, nil
}

func (p *Pipeline) path(kind report.Kind, week int) string {
	return filepath.Join(p.opts.OutputDir, report.FileName(kind, week))
}

// Run generates each of kinds in order. A failing report does not stop the
// others, all failures are returned joined.
func (p *Pipeline) Run(ctx context.Context, period fantasy.Period, kinds []report.Kind) ([]Result, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	span.SetAttributes(attribute.String("period", period.Key()))

	var results []Result
	var errs []error
	for _, kind := range kinds {
		result, err := p.Generate(ctx, kind, period)
		attrs := metric.WithAttributes(attribute.String("report", string(kind)))
		if err != nil {
			p.failed.Add(ctx, 1, attrs)
			slog.ErrorContext(ctx, "report failed", "report", kind, "period", period.Key(), "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", kind, err))
			continue
		}
		p.generated.Add(ctx, 1, attrs)
		p.rows.Add(ctx, int64(result.Rows), attrs)
		slog.InfoContext(ctx, "report written", "report", kind, "path", result.Path, "rows", result.Rows)
		results = append(results, result)
	}

	err := errors.Join(errs...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return results, err
}

func (p *Pipeline) Generate(ctx context.Context, kind report.Kind, period fantasy.Period) (Result, error) {
	switch kind {
	case report.KindPlayerList:
		return p.PlayerList(ctx)
	case report.KindTopScorers:
		return p.TopScorers(ctx, period)
	case report.KindPowerRankings:
		return p.PowerRankings(ctx, period)
	case report.KindTransactions:
		return p.Transactions(ctx, period)
	}
	return Result{}, fmt.Errorf("unknown report %q", kind)
}

func (p *Pipeline) write(kind report.Kind, week int, rows [][]string) (Result, error) {
	path := p.path(kind, week)
	err := report.WriteFile(path, report.Header(kind), rows)
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: kind, Path: path, Rows: len(rows)}, nil
}
