package yahoo

import (
	"context"
	"fmt"
	"leagueexport/lib/fantasy"
	"leagueexport/lib/timezone"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// GetLeaguePlayers pages through every player available in the league.
func (c *Client) GetLeaguePlayers(ctx context.Context) ([]fantasy.PlayerRecord, error) {
	ctx, span := tracer.Start(ctx, "GetLeaguePlayers")
	defer span.End()

	var result []fantasy.PlayerRecord
	for start := 0; ; start += c.opts.PageSize {
		var content fantasyContent
		err := c.get(ctx, fmt.Sprintf(
			"/league/%s/players;start=%d;count=%d",
			c.leagueKey, start, c.opts.PageSize,
		), &content)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "list players")
			return nil, err
		}

		for _, p := range content.League.Players {
			result = append(result, fantasy.PlayerRecord{
				DisplayName: p.FullName,
				PlayerKey:   p.PlayerKey,
			})
		}

		if c.opts.MaxPlayers > 0 && len(result) >= c.opts.MaxPlayers {
			result = result[:c.opts.MaxPlayers]
			break
		}
		if len(content.League.Players) < c.opts.PageSize {
			break
		}
	}

	span.SetAttributes(attribute.Int("players", len(result)))
	slog.DebugContext(ctx, "fetched league players", "count", len(result))
	return result, nil
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func (c *Client) GetLeagueStandings(ctx context.Context) ([]fantasy.TeamStanding, error) {
	ctx, span := tracer.Start(ctx, "GetLeagueStandings")
	defer span.End()

	var content fantasyContent
	err := c.get(ctx, fmt.Sprintf("/league/%s/standings", c.leagueKey), &content)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "get standings")
		return nil, err
	}

	result := make([]fantasy.TeamStanding, len(content.League.Teams))
	for i, t := range content.League.Teams {
		// rank is empty before the first week is scored
		rank := 0
		if strings.TrimSpace(t.Rank) != "" {
			rank, err = strconv.Atoi(strings.TrimSpace(t.Rank))
			if err != nil {
				return nil, fmt.Errorf("team %s has invalid rank %q: %w", t.TeamKey, t.Rank, err)
			}
		}
		pointsFor, err := parseFloat(t.PointsFor)
		if err != nil {
			return nil, fmt.Errorf("team %s has invalid points for %q: %w", t.TeamKey, t.PointsFor, err)
		}
		pointsAgainst, err := parseFloat(t.PointsAgainst)
		if err != nil {
			return nil, fmt.Errorf("team %s has invalid points against %q: %w", t.TeamKey, t.PointsAgainst, err)
		}

		result[i] = fantasy.TeamStanding{
			TeamID:        t.TeamId,
			TeamName:      t.Name,
			Rank:          rank,
			PointsFor:     pointsFor,
			PointsAgainst: pointsAgainst,
			Wins:          t.Wins,
			Losses:        t.Losses,
			Ties:          t.Ties,
		}
	}

	span.SetAttributes(attribute.Int("teams", len(result)))
	return result, nil
}

func (c *Client) GetLeagueTransactions(ctx context.Context) ([]fantasy.Transaction, error) {
	ctx, span := tracer.Start(ctx, "GetLeagueTransactions")
	defer span.End()

	var content fantasyContent
	err := c.get(ctx, fmt.Sprintf("/league/%s/transactions", c.leagueKey), &content)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "get transactions")
		return nil, err
	}

	var result []fantasy.Transaction
	for _, t := range content.League.Transactions {
		tx := fantasy.Transaction{
			Key:       t.TransactionKey,
			Type:      t.Type,
			Timestamp: time.Unix(t.Timestamp, 0).In(timezone.Location),
		}
		for _, p := range t.Players {
			action, err := fantasy.ParseActionType(p.TransactionData.Type)
			if err != nil {
				slog.WarnContext(
					ctx, "skipping transaction player with unknown action",
					"transaction", t.TransactionKey,
					"player", p.FullName,
					"err", err,
				)
				continue
			}
			tx.Players = append(tx.Players, fantasy.TransactionPlayer{
				Name:                p.FullName,
				Action:              action,
				SourceTeamName:      p.TransactionData.SourceTeamName,
				DestinationTeamName: p.TransactionData.DestinationTeamName,
			})
		}
		result = append(result, tx)
	}

	span.SetAttributes(attribute.Int("transactions", len(result)))
	return result, nil
}

// GetPlayerOwnership returns the name of the team that rosters the player,
// it is empty for free agents and players on waivers.
func (c *Client) GetPlayerOwnership(ctx context.Context, playerKey string) (string, error) {
	ctx, span := tracer.Start(ctx, "GetPlayerOwnership")
	defer span.End()

	span.SetAttributes(attribute.String("player_key", playerKey))

	var content fantasyContent
	err := c.get(ctx, fmt.Sprintf(
		"/league/%s/players;player_keys=%s/ownership",
		c.leagueKey, playerKey,
	), &content)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "get ownership")
		return "", err
	}

	for _, p := range content.League.Players {
		if p.PlayerKey != playerKey {
			continue
		}
		if p.Ownership.OwnershipType != "team" {
			return "", nil
		}
		return p.Ownership.OwnerTeamName, nil
	}

	err = fmt.Errorf("player %s not found in league %s", playerKey, c.leagueKey)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return "", err
}

// GetMatchupWeekBounds returns the first and last day of a scoring week,
// both at midnight in the league timezone.
func (c *Client) GetMatchupWeekBounds(ctx context.Context, week int) (fantasy.WeekBounds, error) {
	ctx, span := tracer.Start(ctx, "GetMatchupWeekBounds")
	defer span.End()

	span.SetAttributes(attribute.Int("week", week))

	var content fantasyContent
	err := c.get(ctx, fmt.Sprintf("/league/%s/scoreboard;week=%d", c.leagueKey, week), &content)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "get scoreboard")
		return fantasy.WeekBounds{}, err
	}
	if len(content.League.Matchups) == 0 {
		err = fmt.Errorf("no matchups scheduled for week %d", week)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fantasy.WeekBounds{}, err
	}

	m := content.League.Matchups[0]
	start, err := timezone.ParseDate(m.WeekStart)
	if err != nil {
		return fantasy.WeekBounds{}, fmt.Errorf("parse week start %q: %w", m.WeekStart, err)
	}
	end, err := timezone.ParseDate(m.WeekEnd)
	if err != nil {
		return fantasy.WeekBounds{}, fmt.Errorf("parse week end %q: %w", m.WeekEnd, err)
	}

	return fantasy.WeekBounds{Week: week, Start: start, End: end}, nil
}
