// Package transactions turns league transactions into the week's
// per-player movements.
package transactions

import (
	"fmt"
	"leagueexport/lib/fantasy"
	"time"
)

// Offset widens the reported week before filtering. Leagues report weeks
// starting and ending a day before their actual transaction cutoff.
type Offset struct {
	Start time.Duration
	End   time.Duration
}

var DefaultOffset = Offset{Start: 24 * time.Hour, End: 24 * time.Hour}

// ParseOffset reads durations such as "24h", empty strings keep the
// default for that side.
func ParseOffset(start, end string) (Offset, error) {
	offset := DefaultOffset
	if start != "" {
		d, err := time.ParseDuration(start)
		if err != nil {
			return Offset{}, fmt.Errorf("week start offset: %w", err)
		}
		offset.Start = d
	}
	if end != "" {
		d, err := time.ParseDuration(end)
		if err != nil {
			return Offset{}, fmt.Errorf("week end offset: %w", err)
		}
		offset.End = d
	}
	return offset, nil
}

// Bounds returns the effective inclusive interval. Whole days of an offset
// are calendar days in the location of the bound, the remainder is added
// as elapsed time.
func (o Offset) Bounds(weekStart, weekEnd time.Time) (start, end time.Time) {
	return shift(weekStart, o.Start), shift(weekEnd, o.End)
}

func shift(t time.Time, d time.Duration) time.Time {
	const day = 24 * time.Hour
	return t.AddDate(0, 0, int(d/day)).Add(d % day)
}

// FilterByWeek keeps the events with start <= timestamp <= end after
// applying offset. Order is preserved.
func FilterByWeek(events []fantasy.TransactionEvent, weekStart, weekEnd time.Time, offset Offset) []fantasy.TransactionEvent {
	start, end := offset.Bounds(weekStart, weekEnd)

	var out []fantasy.TransactionEvent
	for _, e := range events {
		if e.Timestamp.Before(start) || e.Timestamp.After(end) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Expand emits one event per player of every transaction. The team is the
// one the player left, or the one they joined when they came from waivers
// or free agency.
func Expand(txs []fantasy.Transaction) []fantasy.TransactionEvent {
	var out []fantasy.TransactionEvent
	for _, tx := range txs {
		for _, p := range tx.Players {
			team := p.SourceTeamName
			if team == "" {
				team = p.DestinationTeamName
			}
			out = append(out, fantasy.TransactionEvent{
				TeamName:        team,
				Action:          p.Action,
				PlayerName:      p.Name,
				TransactionType: tx.Type,
				Timestamp:       tx.Timestamp,
			})
		}
	}
	return out
}
