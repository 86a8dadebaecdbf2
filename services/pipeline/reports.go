package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"leagueexport/lib/fantasy"
	"leagueexport/services/linker"
	"leagueexport/services/rankings"
	"leagueexport/services/report"
	"leagueexport/services/snapshots"
	"leagueexport/services/transactions"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func (p *Pipeline) PlayerList(ctx context.Context) (Result, error) {
	ctx, span := tracer.Start(ctx, "PlayerList")
	defer span.End()

	players, err := p.league.GetLeaguePlayers(ctx)
	if err != nil {
		err = fetchError(sourceLeague, "players", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	return p.write(report.KindPlayerList, 0, report.PlayerListRows(players))
}

// players reads the cached player list, it is fetched and cached again
// when missing, unreadable or a refresh was asked for.
func (p *Pipeline) players(ctx context.Context) ([]fantasy.PlayerRecord, error) {
	path := p.path(report.KindPlayerList, 0)
	if !p.opts.RefreshPlayers {
		players, err := report.ReadPlayerListFile(path)
		if err == nil {
			slog.DebugContext(ctx, "using cached player list", "path", path, "players", len(players))
			return players, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			slog.WarnContext(ctx, "ignoring cached player list", "path", path, "err", err)
		}
	}

	players, err := p.league.GetLeaguePlayers(ctx)
	if err != nil {
		return nil, fetchError(sourceLeague, "players", err)
	}
	err = report.WriteFile(path, report.PlayerListHeader, report.PlayerListRows(players))
	if err != nil {
		slog.WarnContext(ctx, "failed to cache player list", "path", path, "err", err)
	}
	return players, nil
}

func (p *Pipeline) TopScorers(ctx context.Context, period fantasy.Period) (Result, error) {
	ctx, span := tracer.Start(ctx, "TopScorers")
	defer span.End()

	span.SetAttributes(attribute.String("period", period.Key()))

	fail := func(err error) (Result, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	if p.scores == nil {
		return fail(fmt.Errorf("no leaderboard source configured"))
	}

	leaders, err := p.scores.GetTopScorers(ctx, period.Year, period.Week)
	if err != nil {
		return fail(fetchError(sourceLeaderboard, "top scorers", err))
	}
	leaders = linker.Truncate(leaders, p.opts.TopN)

	players, err := p.players(ctx)
	if err != nil {
		return fail(err)
	}

	var overrides map[string]string
	if p.overrides != nil {
		overrides, err = p.overrides.Map(ctx)
		if err != nil {
			return fail(err)
		}
	}

	joined, err := linker.Join(players, leaders, linker.JoinOptions{
		Policy:    p.opts.JoinPolicy,
		Overrides: overrides,
		Strict:    p.opts.Strict,
	})
	if err != nil {
		return fail(err)
	}
	for _, unresolved := range joined.Unresolved {
		slog.WarnContext(ctx, "skipped leaderboard row", "err", unresolved)
	}
	for _, ambiguous := range joined.Ambiguous {
		slog.WarnContext(ctx, "skipped leaderboard row", "err", ambiguous)
	}

	for i, row := range joined.Rows {
		manager, err := p.league.GetPlayerOwnership(ctx, row.PlayerKey)
		if err != nil {
			return fail(fetchError(sourceLeague, "ownership", err))
		}
		joined.Rows[i].Manager = manager
	}

	result, err := p.write(report.KindTopScorers, period.Week, report.TopScorerRows(joined.Rows))
	if err != nil {
		return fail(err)
	}
	result.Unresolved = joined.Unresolved
	result.Ambiguous = joined.Ambiguous
	return result, nil
}

// previousStandings returns the standings of the prior week, from the
// snapshot store or else the prior week's artifact. Missing or unreadable
// prior state gives nil.
func (p *Pipeline) previousStandings(ctx context.Context, period fantasy.Period) []fantasy.TeamStanding {
	prev, ok := period.Previous()
	if !ok {
		return nil
	}

	if p.snapshots != nil {
		standings, err := p.snapshots.Pull(ctx, prev)
		if err == nil {
			return standings
		}
		if !errors.Is(err, snapshots.ErrMissingPriorState) {
			slog.WarnContext(ctx, "failed to read snapshot", "period", prev.Key(), "err", err)
		}
	}

	path := p.path(report.KindPowerRankings, prev.Week)
	standings, err := report.ReadPowerRankingsFile(path)
	if err != nil {
		slog.WarnContext(ctx, "no prior standings, every team will be new", "period", prev.Key(), "err", err)
		return nil
	}
	return standings
}

func (p *Pipeline) PowerRankings(ctx context.Context, period fantasy.Period) (Result, error) {
	ctx, span := tracer.Start(ctx, "PowerRankings")
	defer span.End()

	span.SetAttributes(attribute.String("period", period.Key()))

	standings, err := p.league.GetLeagueStandings(ctx)
	if err != nil {
		err = fetchError(sourceLeague, "standings", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	rankings.SortByRank(standings)

	previous := p.previousStandings(ctx, period)
	deltas := rankings.ComputeDelta(standings, previous)

	result, err := p.write(report.KindPowerRankings, period.Week, report.PowerRankingRows(standings, deltas))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	if p.snapshots != nil {
		err = p.snapshots.Push(ctx, period, standings)
		if err != nil {
			slog.WarnContext(ctx, "failed to store snapshot", "period", period.Key(), "err", err)
		}
	}
	return result, nil
}

func (p *Pipeline) Transactions(ctx context.Context, period fantasy.Period) (Result, error) {
	ctx, span := tracer.Start(ctx, "Transactions")
	defer span.End()

	span.SetAttributes(attribute.String("period", period.Key()))

	fail := func(err error) (Result, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	bounds, err := p.league.GetMatchupWeekBounds(ctx, period.Week)
	if err != nil {
		return fail(fetchError(sourceLeague, "week bounds", err))
	}
	txs, err := p.league.GetLeagueTransactions(ctx)
	if err != nil {
		return fail(fetchError(sourceLeague, "transactions", err))
	}

	events := transactions.FilterByWeek(
		transactions.Expand(txs),
		bounds.Start,
		bounds.End,
		p.opts.Offset,
	)
	result, err := p.write(report.KindTransactions, period.Week, report.TransactionRows(events, p.opts.Location))
	if err != nil {
		return fail(err)
	}
	return result, nil
}
