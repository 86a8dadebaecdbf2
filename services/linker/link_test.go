package linker

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestCreateImplicitLinks(t *testing.T) {
	testCases := []struct {
		left  []string
		right []string
		// if ImplicitLink.Correlation == 0
		// the test will not assert the correlation to be equal
		expected []ImplicitLink
	}{
		{
			left:  []string{"Lamar Jackson", "Josh Allen", "Joe Burrow"},
			right: []string{"Lamar Jackson", "Josh Allen"},
			expected: []ImplicitLink{
				{Left: "Josh Allen", Right: "Josh Allen", Correlation: 1},
				{Left: "Lamar Jackson", Right: "Lamar Jackson", Correlation: 1},
			},
		},
		{
			left:  []string{"DK Metcalf", "Josh Allen", "Kenneth Walker"},
			right: []string{"D.K. Metcalf", "Josh Allen", "Kenneth Walker III"},
			expected: []ImplicitLink{
				{Left: "DK Metcalf", Right: "D.K. Metcalf"},
				{Left: "Josh Allen", Right: "Josh Allen", Correlation: 1},
				{Left: "Kenneth Walker", Right: "Kenneth Walker III"},
			},
		},
		{
			left:     []string{"foo", "bar", "baz"},
			right:    []string{},
			expected: nil,
		},
		{
			left:     []string{},
			right:    []string{},
			expected: nil,
		},
		{
			left:  []string{"Gabe Davis"},
			right: []string{"Gabriel Davis", "Zay Jones", "Mike Evans"},
			expected: []ImplicitLink{
				{Left: "Gabe Davis", Right: "Gabriel Davis"},
			},
		},
	}

	for _, test := range testCases {
		links := CreateImplicitLinks(test.left, test.right)
		diff := cmp.Diff(
			test.expected,
			links,
			cmpopts.SortSlices(func(a, b ImplicitLink) bool {
				return a.Left < b.Left
			}),
			cmpopts.IgnoreFields(ImplicitLink{}, "Correlation"),
		)
		if diff != "" {
			t.Fatal(diff)
		}
		for _, l := range test.expected {
			if l.Correlation == 0 {
				continue
			}
			for _, actual := range links {
				if actual.Left == l.Left && actual.Correlation != l.Correlation {
					t.Fatalf("expected correlation %f for %s, got %f", l.Correlation, l.Left, actual.Correlation)
				}
			}
		}
	}
}
