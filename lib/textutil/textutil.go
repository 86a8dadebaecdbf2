package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// leaderboards append the pro team and position, ex. "Lamar Jackson (BAL - QB)"
var teamSuffixRegex = regexp.MustCompile(`\s*\([A-Z]{2,4}\s*-\s*[A-Z,/]+\)\s*$`)

// NormalizeName folds a display name for similarity comparisons only,
// it is never used to decide a join.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = strings.ReplaceAll(name, ".", "")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	return name
}

// CleanDisplayName collapses whitespace and drops a trailing team/position suffix
// while keeping the case and punctuation of the name intact.
func CleanDisplayName(name string) string {
	name = teamSuffixRegex.ReplaceAllString(name, "")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	return strings.Trim(name, " \n\t")
}
