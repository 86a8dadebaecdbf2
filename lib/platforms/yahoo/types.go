package yahoo

import "encoding/xml"

// the subset of the fantasy_content document the export reads,
// field paths follow the league resource collections.
type fantasyContent struct {
	XMLName xml.Name `xml:"fantasy_content"`
	League  league   `xml:"league"`
}

type league struct {
	LeagueKey    string        `xml:"league_key"`
	Name         string        `xml:"name"`
	Players      []player      `xml:"players>player"`
	Teams        []team        `xml:"standings>teams>team"`
	Transactions []transaction `xml:"transactions>transaction"`
	Week         int           `xml:"scoreboard>week"`
	Matchups     []matchup     `xml:"scoreboard>matchups>matchup"`
}

type player struct {
	PlayerKey       string          `xml:"player_key"`
	FullName        string          `xml:"name>full"`
	Ownership       ownership       `xml:"ownership"`
	TransactionData transactionData `xml:"transaction_data"`
}

type ownership struct {
	OwnershipType string `xml:"ownership_type"`
	OwnerTeamKey  string `xml:"owner_team_key"`
	OwnerTeamName string `xml:"owner_team_name"`
}

type transactionData struct {
	Type                string `xml:"type"`
	SourceType          string `xml:"source_type"`
	SourceTeamKey       string `xml:"source_team_key"`
	SourceTeamName      string `xml:"source_team_name"`
	DestinationType     string `xml:"destination_type"`
	DestinationTeamKey  string `xml:"destination_team_key"`
	DestinationTeamName string `xml:"destination_team_name"`
}

type team struct {
	TeamKey       string `xml:"team_key"`
	TeamId        string `xml:"team_id"`
	Name          string `xml:"name"`
	Rank          string `xml:"team_standings>rank"`
	PointsFor     string `xml:"team_standings>points_for"`
	PointsAgainst string `xml:"team_standings>points_against"`
	Wins          int    `xml:"team_standings>outcome_totals>wins"`
	Losses        int    `xml:"team_standings>outcome_totals>losses"`
	Ties          int    `xml:"team_standings>outcome_totals>ties"`
}

type transaction struct {
	TransactionKey string   `xml:"transaction_key"`
	Type           string   `xml:"type"`
	Status         string   `xml:"status"`
	Timestamp      int64    `xml:"timestamp"`
	Players        []player `xml:"players>player"`
}

type matchup struct {
	Week      int    `xml:"week"`
	WeekStart string `xml:"week_start"`
	WeekEnd   string `xml:"week_end"`
}
