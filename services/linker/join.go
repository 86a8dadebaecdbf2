package linker

import (
	"errors"
	"fmt"
	"leagueexport/lib/fantasy"
	"sort"
	"strings"
)

type Policy string

const (
	// PolicyFirstMatch keeps the first league player with the name.
	PolicyFirstMatch Policy = "first-match"
	// PolicyErrorOnAmbiguous flags a name that maps to several league
	// players instead of picking one.
	PolicyErrorOnAmbiguous Policy = "error-on-ambiguous"
)

const (
	DefaultSuggestionThreshold = 0.75
	maxSuggestions             = 3
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "":
		return PolicyErrorOnAmbiguous, nil
	case PolicyFirstMatch, PolicyErrorOnAmbiguous:
		return Policy(s), nil
	}
	return "", fmt.Errorf("unknown join policy %q", s)
}

var (
	ErrUnresolvedKey = errors.New("unresolved join key")
	ErrAmbiguousKey  = errors.New("ambiguous join key")
)

type Suggestion struct {
	fantasy.PlayerRecord
	Correlation float64
}

// UnresolvedKeyError is a leaderboard name with no matching league player.
type UnresolvedKeyError struct {
	Name   string
	Points float64
	// set when an override pointed at a key the league does not know
	OverrideKey string
	Suggestions []Suggestion
}

func (e *UnresolvedKeyError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "no league player named %q", e.Name)
	if e.OverrideKey != "" {
		fmt.Fprintf(&sb, " (override key %q is not in the player list)", e.OverrideKey)
	}
	if len(e.Suggestions) > 0 {
		names := make([]string, len(e.Suggestions))
		for i, s := range e.Suggestions {
			names[i] = fmt.Sprintf("%s [%s]", s.DisplayName, s.PlayerKey)
		}
		fmt.Fprintf(&sb, ", did you mean %s?", strings.Join(names, ", "))
	}
	return sb.String()
}

func (e *UnresolvedKeyError) Is(target error) bool {
	return target == ErrUnresolvedKey
}

// AmbiguousKeyError is a leaderboard name shared by several league players.
type AmbiguousKeyError struct {
	Name       string
	Points     float64
	PlayerKeys []string
}

func (e *AmbiguousKeyError) Error() string {
	return fmt.Sprintf("name %q matches %d league players: %s", e.Name, len(e.PlayerKeys), strings.Join(e.PlayerKeys, ", "))
}

func (e *AmbiguousKeyError) Is(target error) bool {
	return target == ErrAmbiguousKey
}

type JoinOptions struct {
	Policy Policy
	// external display name -> player key, consulted before name matching
	Overrides map[string]string
	// fail on the first unresolved or ambiguous name instead of skipping it
	Strict              bool
	SuggestionThreshold float64
}

type JoinResult struct {
	Rows       []fantasy.ScoredPlayerRow
	Unresolved []*UnresolvedKeyError
	Ambiguous  []*AmbiguousKeyError
}

// Truncate keeps the first n rows, n <= 0 keeps nothing.
func Truncate(rows []fantasy.ExternalRow, n int) []fantasy.ExternalRow {
	if n <= 0 {
		return nil
	}
	if n > len(rows) {
		n = len(rows)
	}
	return rows[:n]
}

// Join attaches a league player key to every leaderboard row by exact
// display name. Output rows keep the leaderboard order and always carry a
// key present in primary. Manager is left empty for the caller to fill.
func Join(primary []fantasy.PlayerRecord, secondary []fantasy.ExternalRow, opts JoinOptions) (JoinResult, error) {
	if opts.Policy == "" {
		opts.Policy = PolicyErrorOnAmbiguous
	}
	if opts.SuggestionThreshold <= 0 {
		opts.SuggestionThreshold = DefaultSuggestionThreshold
	}

	byName := make(map[string][]fantasy.PlayerRecord)
	byKey := make(map[string]fantasy.PlayerRecord, len(primary))
	for _, p := range primary {
		byName[p.DisplayName] = append(byName[p.DisplayName], p)
		byKey[p.PlayerKey] = p
	}

	result := JoinResult{}
	for _, row := range secondary {
		var match fantasy.PlayerRecord
		var unresolved *UnresolvedKeyError

		if key, ok := opts.Overrides[row.Name]; ok {
			record, known := byKey[key]
			if known {
				match = record
			} else {
				unresolved = &UnresolvedKeyError{Name: row.Name, Points: row.Points, OverrideKey: key}
			}
		} else {
			candidates := byName[row.Name]
			switch {
			case len(candidates) == 0:
				unresolved = &UnresolvedKeyError{Name: row.Name, Points: row.Points}
			case len(candidates) == 1 || opts.Policy == PolicyFirstMatch:
				match = candidates[0]
			default:
				keys := make([]string, len(candidates))
				for i, c := range candidates {
					keys[i] = c.PlayerKey
				}
				ambiguous := &AmbiguousKeyError{Name: row.Name, Points: row.Points, PlayerKeys: keys}
				if opts.Strict {
					return JoinResult{}, ambiguous
				}
				result.Ambiguous = append(result.Ambiguous, ambiguous)
				continue
			}
		}

		if unresolved != nil {
			unresolved.Suggestions = Suggest(row.Name, primary, opts.SuggestionThreshold)
			if opts.Strict {
				return JoinResult{}, unresolved
			}
			result.Unresolved = append(result.Unresolved, unresolved)
			continue
		}

		result.Rows = append(result.Rows, fantasy.ScoredPlayerRow{
			DisplayName: match.DisplayName,
			PlayerKey:   match.PlayerKey,
			Points:      row.Points,
		})
	}
	return result, nil
}

// Suggest returns the league players whose name is most similar to name,
// best first.
func Suggest(name string, primary []fantasy.PlayerRecord, threshold float64) []Suggestion {
	var out []Suggestion
	for _, p := range primary {
		s := similarity(name, p.DisplayName)
		if s < threshold {
			continue
		}
		out = append(out, Suggestion{PlayerRecord: p, Correlation: s})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Correlation > out[j].Correlation
	})
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}
