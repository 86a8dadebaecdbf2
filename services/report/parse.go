package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"leagueexport/lib/fantasy"
	"leagueexport/services/rankings"
	"os"
	"slices"
	"strconv"
	"strings"
)

func readTable(r io.Reader, source string, header []string) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &fantasy.MalformedArtifactError{Source: source, Reason: err.Error()}
	}
	if len(records) == 0 {
		return nil, &fantasy.MalformedArtifactError{Source: source, Expected: header, Reason: "empty file"}
	}
	if !slices.Equal(records[0], header) {
		return nil, &fantasy.MalformedArtifactError{Source: source, Expected: header, Found: records[0]}
	}

	rows := records[1:]
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, &fantasy.MalformedArtifactError{
				Source: source,
				Reason: fmt.Sprintf("row %d has %d fields, expected %d", i+1, len(row), len(header)),
			}
		}
	}
	return rows, nil
}

func ParsePlayerList(r io.Reader, source string) ([]fantasy.PlayerRecord, error) {
	rows, err := readTable(r, source, PlayerListHeader)
	if err != nil {
		return nil, err
	}
	out := make([]fantasy.PlayerRecord, len(rows))
	for i, row := range rows {
		out[i] = fantasy.PlayerRecord{DisplayName: row[0], PlayerKey: row[1]}
	}
	return out, nil
}

func parseRecord(record string) (wins, losses, ties int, err error) {
	parts := strings.Split(record, "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("record %q is not W-L-T", record)
	}
	values := make([]int, 3)
	for i, p := range parts {
		values[i], err = strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("record %q is not W-L-T", record)
		}
	}
	return values[0], values[1], values[2], nil
}

// ParsePowerRankings reads standings back from a rendered power rankings
// artifact, the Change column is ignored.
func ParsePowerRankings(r io.Reader, source string) ([]fantasy.TeamStanding, error) {
	rows, err := readTable(r, source, PowerRankingsHeader)
	if err != nil {
		return nil, err
	}

	out := make([]fantasy.TeamStanding, len(rows))
	for i, row := range rows {
		malformed := func(err error) error {
			return &fantasy.MalformedArtifactError{
				Source: source,
				Reason: fmt.Sprintf("row %d: %s", i+1, err.Error()),
			}
		}

		rank := rankings.Unranked
		if row[0] != "" {
			rank, err = strconv.Atoi(row[0])
			if err != nil {
				return nil, malformed(err)
			}
		}
		wins, losses, ties, err := parseRecord(row[3])
		if err != nil {
			return nil, malformed(err)
		}
		pointsFor, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return nil, malformed(err)
		}
		pointsAgainst, err := strconv.ParseFloat(row[5], 64)
		if err != nil {
			return nil, malformed(err)
		}

		out[i] = fantasy.TeamStanding{
			TeamID:        row[6],
			TeamName:      row[1],
			Rank:          rank,
			PointsFor:     pointsFor,
			PointsAgainst: pointsAgainst,
			Wins:          wins,
			Losses:        losses,
			Ties:          ties,
		}
	}
	return out, nil
}

func readFile[T any](path string, parse func(io.Reader, string) (T, error)) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer f.Close()
	return parse(f, path)
}

// ReadPlayerListFile returns an error matching os.ErrNotExist when there is
// no cached player list.
func ReadPlayerListFile(path string) ([]fantasy.PlayerRecord, error) {
	return readFile(path, ParsePlayerList)
}

func ReadPowerRankingsFile(path string) ([]fantasy.TeamStanding, error) {
	return readFile(path, ParsePowerRankings)
}

// IsMalformed reports whether err is a malformed artifact error.
func IsMalformed(err error) bool {
	var target *fantasy.MalformedArtifactError
	return errors.As(err, &target)
}
