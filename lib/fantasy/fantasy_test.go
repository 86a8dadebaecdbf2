package fantasy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPeriod(t *testing.T) {
	p := Period{Year: 2024, Week: 6}
	require.Equal(t, "2024-w6", p.Key())

	prev, ok := p.Previous()
	require.True(t, ok)
	require.Equal(t, Period{Year: 2024, Week: 5}, prev)

	_, ok = Period{Year: 2024, Week: 1}.Previous()
	require.False(t, ok)
}

func TestRecord(t *testing.T) {
	s := TeamStanding{Wins: 4, Losses: 1, Ties: 0}
	require.Equal(t, "4-1-0", s.Record())
}

func TestParseActionType(t *testing.T) {
	for _, valid := range []string{"add", "drop", "trade"} {
		a, err := ParseActionType(valid)
		require.NoError(t, err)
		require.Equal(t, ActionType(valid), a)
	}
	_, err := ParseActionType("commish")
	require.Error(t, err)
}
