package snapshots

import (
	"context"
	"leagueexport/lib/fantasy"
	"leagueexport/lib/testutil"
	"leagueexport/services/snapshots/db"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:      "services/snapshots",
		DbSchemas: []string{db.Schema},
	})
	defer cleanup()
	store := NewStore(setup.DB)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	week5 := fantasy.Period{Year: 2024, Week: 5}
	week6 := fantasy.Period{Year: 2024, Week: 6}

	{
		_, err := store.Pull(ctx, week5)
		require.ErrorIs(t, err, ErrMissingPriorState)

		periods, err := store.ListPeriods(ctx)
		require.NoError(t, err)
		require.Empty(t, periods)
	}
	{
		err := store.Push(ctx, week5, []fantasy.TeamStanding{
			{TeamID: "2", TeamName: "Gridiron Gurus", Rank: 2, PointsFor: 600.5, PointsAgainst: 580, Wins: 3, Losses: 2},
			{TeamID: "1", TeamName: "Touchdown Tsunami", Rank: 1, PointsFor: 640, PointsAgainst: 500.25, Wins: 4, Losses: 1},
		})
		require.NoError(t, err)

		// a second push for the same period replaces the first one
		err = store.Push(ctx, week5, []fantasy.TeamStanding{
			{TeamID: "1", TeamName: "Touchdown Tsunami", Rank: 2, PointsFor: 640, PointsAgainst: 500.25, Wins: 4, Losses: 1},
			{TeamID: "3", TeamName: "Blitz Brigade", Rank: 1, PointsFor: 700, PointsAgainst: 480, Wins: 4, Losses: 0, Ties: 1},
		})
		require.NoError(t, err)

		err = store.Push(ctx, week6, []fantasy.TeamStanding{
			{TeamID: "1", TeamName: "Touchdown Tsunami", Rank: 1},
		})
		require.NoError(t, err)
	}
	{
		standings, err := store.Pull(ctx, week5)
		require.NoError(t, err)
		require.Equal(t, []fantasy.TeamStanding{
			{TeamID: "3", TeamName: "Blitz Brigade", Rank: 1, PointsFor: 700, PointsAgainst: 480, Wins: 4, Losses: 0, Ties: 1},
			{TeamID: "1", TeamName: "Touchdown Tsunami", Rank: 2, PointsFor: 640, PointsAgainst: 500.25, Wins: 4, Losses: 1},
		}, standings)

		periods, err := store.ListPeriods(ctx)
		require.NoError(t, err)
		require.Len(t, periods, 2)
		require.Equal(t, week5, periods[0].Period)
		require.Equal(t, 2, periods[0].Teams)
		require.Equal(t, week6, periods[1].Period)
		require.Equal(t, 1, periods[1].Teams)
		require.False(t, periods[1].CreatedAt.IsZero())
	}
}
