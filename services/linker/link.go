package linker

import (
	"leagueexport/lib/textutil"

	"github.com/antzucaro/matchr"
)

type ImplicitLink struct {
	Left        string
	Right       string
	Correlation float64
}

func similarity(left, right string) float64 {
	return matchr.JaroWinkler(textutil.NormalizeName(left), textutil.NormalizeName(right), false)
}

// CreateImplicitLinks pairs each name of the shorter list with at most one
// name of the other list, exact matches first, then the most similar
// remaining name. Links are only suggestions, nothing joins on them.
func CreateImplicitLinks(leftList, rightList []string) []ImplicitLink {
	swapped := false
	if len(rightList) < len(leftList) {
		leftList, rightList = rightList, leftList
		swapped = true
	}

	var result []ImplicitLink
	matchedLeft := make(map[string]struct{})
	matchedRight := make(map[string]struct{})

	link := func(left, right string, correlation float64) {
		l := ImplicitLink{Left: left, Right: right, Correlation: correlation}
		if swapped {
			l.Left, l.Right = right, left
		}
		result = append(result, l)
		matchedLeft[left] = struct{}{}
		matchedRight[right] = struct{}{}
	}

	for _, left := range leftList {
		for _, right := range rightList {
			if _, ok := matchedRight[right]; ok {
				continue
			}
			if left == right {
				link(left, right, 1)
				break
			}
		}
	}

	for _, left := range leftList {
		if _, ok := matchedLeft[left]; ok {
			continue
		}

		var mostSimilarity float64
		var mostSimilarRight string
		for _, right := range rightList {
			if _, ok := matchedRight[right]; ok {
				continue
			}
			s := similarity(left, right)
			if s > mostSimilarity {
				mostSimilarity = s
				mostSimilarRight = right
			}
		}

		if mostSimilarity > 0 {
			link(left, mostSimilarRight, mostSimilarity)
		}
	}

	return result
}
