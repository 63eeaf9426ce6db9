package model

import (
	"strings"
	"time"
)

const Season = "2024-25"

// SeasonYear returns the year a season starts in, "2024-25" -> "2024".
func SeasonYear(season string) string {
	season = strings.TrimSpace(season)
	if i := strings.IndexAny(season, "-/"); i > 0 {
		return season[:i]
	}
	return season
}

// PlayerData is the document written to player_data.js and served by /api/players.
type PlayerData struct {
	LastUpdated     string   `json:"lastUpdated"`
	DataSource      string   `json:"dataSource"`
	Season          string   `json:"season"`
	UpdateFrequency string   `json:"updateFrequency"`
	TotalPlayers    int      `json:"totalPlayers"`
	LeaguesCovered  int      `json:"leaguesCovered"`
	Undervalued     []Player `json:"undervalued"`
	TopPerformers   []Player `json:"topPerformers"`
	RisingStars     []Player `json:"risingStars"`
	HiddenGems      []Player `json:"hiddenGems"`
	Bargains        []Player `json:"bargains,omitempty"`

	// Every player of the run, used by the CSV, JSON, and SQLite exports.
	Players []Player `json:"-"`
}

// Updated parses LastUpdated, returning the zero time if it is not set.
func (d *PlayerData) Updated() time.Time {
	t, err := time.Parse(time.RFC3339, d.LastUpdated)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Run is a saved refresh of the player data.
type Run struct {
	ID           int32     `json:"id"`
	Source       string    `json:"source"`
	Season       string    `json:"season"`
	TotalPlayers int       `json:"totalPlayers"`
	Created      time.Time `json:"created"`
}

// PlayerHistory is what is stored about a player across runs. Players are
// keyed by their normalized name.
type PlayerHistory struct {
	Key         string     `json:"key"`
	Name        string     `json:"name"`
	Team        string     `json:"team"`
	League      string     `json:"league"`
	Position    Position   `json:"position"`
	Age         int        `json:"age"`
	MarketValue float64    `json:"market_value_eur_m"`
	FairValue   float64    `json:"fair_value_eur_m"`
	Created     time.Time  `json:"created"`
	Updated     time.Time  `json:"updated,omitempty"`
	Changes     []Change   `json:"changes"`
	Values      []RunValue `json:"values"`
}

// RunValue is the valuation of a player in one run.
type RunValue struct {
	RunID             int32     `json:"run_id"`
	Created           time.Time `json:"created"`
	MarketValue       float64   `json:"market_value_eur_m"`
	FairValue         float64   `json:"fair_value_eur_m"`
	UndervaluationPct float64   `json:"undervaluation_pct"`
	XGIPer90          float64   `json:"xgi_per_90"`
}
