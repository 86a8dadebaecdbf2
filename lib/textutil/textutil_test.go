package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanDisplayName(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"Lamar Jackson (BAL - QB)", "Lamar Jackson"},
		{"  Ja'Marr   Chase ", "Ja'Marr Chase"},
		{"Kenneth Walker III (SEA - RB)", "Kenneth Walker III"},
		{"A.J. Brown", "A.J. Brown"},
		{"Chris Godwin\n(TB - WR)", "Chris Godwin"},
	}
	for _, test := range cases {
		require.Equal(t, test.expected, CleanDisplayName(test.input))
	}
}

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "aj brown", NormalizeName(" A.J.  Brown\n"))
	require.Equal(t, NormalizeName("DK Metcalf"), NormalizeName("D.K. Metcalf"))
}
