package footballdata

import (
	"time"

	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/RealRedbaron07/scoutlens-app/valuation"
)

// football-data.org does not report minutes, assume 75 per appearance.
const minutesPerMatch = 75

type scorersResponse struct {
	Count   int      `json:"count"`
	Scorers []scorer `json:"scorers"`
}

type scorer struct {
	Player struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		DateOfBirth string `json:"dateOfBirth"`
		Nationality string `json:"nationality"`
		Position    string `json:"position"`
		Section     string `json:"section"`
	} `json:"player"`
	Team struct {
		Name      string `json:"name"`
		ShortName string `json:"shortName"`
	} `json:"team"`
	PlayedMatches *int `json:"playedMatches"`
	Goals         *int `json:"goals"`
	Assists       *int `json:"assists"`
	Penalties     *int `json:"penalties"`
}

func (s *scorer) toPlayer(league *model.League, now time.Time) model.Player {
	pos := model.ParsePosition(s.Player.Position)
	if pos == model.POS_UNKNOWN {
		pos = model.ParsePosition(s.Player.Section)
	}

	games := max(valueOrZero(s.PlayedMatches), 1)
	goals := valueOrZero(s.Goals)
	assists := valueOrZero(s.Assists)
	penalties := valueOrZero(s.Penalties)

	p := model.Player{
		Name:        s.Player.Name,
		Team:        s.Team.Name,
		Position:    pos,
		Age:         model.AgeFromBirthDate(s.Player.DateOfBirth, now),
		Nationality: s.Player.Nationality,
		Goals:       goals,
		Assists:     assists,
		Penalties:   penalties,
		XG:          valuation.ScorerExpectedGoals(goals, penalties),
		XA:          valuation.ScorerExpectedAssists(assists),
		Games:       games,
		Minutes:     games * minutesPerMatch,
		Source:      "football-data.org",
	}
	p.SetLeague(league)
	return p
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
