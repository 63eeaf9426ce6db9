package apifootball

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/RealRedbaron07/scoutlens-app/platforms"
	"github.com/RealRedbaron07/scoutlens-app/platforms/internal/fetch"
	"github.com/RealRedbaron07/scoutlens-app/valuation"
	"github.com/itbasis/go-clock"
)

const (
	APIFootballURL = "https://v3.football.api-sports.io"

	headerAPIKey = "x-apisports-key"

	requestDelay = 1 * time.Second
)

type Client interface {
	LoadTopScorers(ctx context.Context, league *model.League, season string) ([]model.Player, error)
}

type client struct {
	url string
	key string
	req *fetch.Requester
}

func New(key string, clock clock.Clock) (Client, error) {
	if key == "" {
		return nil, fmt.Errorf("api-football: %w", platforms.ErrMissingAPIKey)
	}
	c := &client{
		url: APIFootballURL,
		key: key,
		req: fetch.New(platforms.SourceAPIFootball, clock, requestDelay, fetch.DefaultRetryPolicy),
	}
	return c, nil
}

func NewForTest(url, key string, clock clock.Clock) Client {
	return &client{
		url: url,
		key: key,
		req: fetch.New(platforms.SourceAPIFootball, clock, 0, fetch.NoRetry),
	}
}

func (c *client) LoadTopScorers(ctx context.Context, league *model.League, season string) ([]model.Player, error) {
	if league.APIFootballID == 0 {
		return nil, fmt.Errorf("%s is not covered by api-football", league)
	}

	var parsed topScorersResponse
	url := fmt.Sprintf("%s/players/topscorers?league=%d&season=%s", c.url, league.APIFootballID, model.SeasonYear(season))
	if err := c.req.GetJSON(ctx, url, map[string]string{headerAPIKey: c.key}, &parsed); err != nil {
		return nil, fmt.Errorf("error loading top scorers for %s: %w", league.Key, err)
	}
	if msg := parsed.errorMessage(); msg != "" {
		return nil, fmt.Errorf("api-football returned an error for %s: %s", league.Key, msg)
	}

	result := make([]model.Player, 0, len(parsed.Response))
	for _, e := range parsed.Response {
		if len(e.Statistics) == 0 || e.Player.Name == "" {
			continue
		}
		result = append(result, e.toPlayer(league))
	}
	return result, nil
}

type topScorersResponse struct {
	// An empty list when the request worked, an object of messages when it did not.
	Errors   json.RawMessage `json:"errors"`
	Results  int             `json:"results"`
	Response []entry         `json:"response"`
}

func (r *topScorersResponse) errorMessage() string {
	var messages map[string]string
	if err := json.Unmarshal(r.Errors, &messages); err != nil || len(messages) == 0 {
		return ""
	}
	parts := make([]string, 0, len(messages))
	for k, v := range messages {
		parts = append(parts, fmt.Sprintf("%s: %s", k, v))
	}
	slices.Sort(parts)
	return strings.Join(parts, ", ")
}

type entry struct {
	Player struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		Age         *int   `json:"age"`
		Nationality string `json:"nationality"`
	} `json:"player"`
	Statistics []struct {
		Team struct {
			Name string `json:"name"`
		} `json:"team"`
		Games struct {
			Appearences *int   `json:"appearences"`
			Minutes     *int   `json:"minutes"`
			Position    string `json:"position"`
		} `json:"games"`
		Goals struct {
			Total   *int `json:"total"`
			Assists *int `json:"assists"`
		} `json:"goals"`
		Penalty struct {
			Scored *int `json:"scored"`
		} `json:"penalty"`
	} `json:"statistics"`
}

func (e *entry) toPlayer(league *model.League) model.Player {
	s := e.Statistics[0]
	goals := valueOrZero(s.Goals.Total)
	assists := valueOrZero(s.Goals.Assists)

	age := valueOrZero(e.Player.Age)
	if age <= 0 {
		age = model.DefaultAge
	}

	p := model.Player{
		Name:        e.Player.Name,
		Team:        s.Team.Name,
		Position:    model.ParsePosition(s.Games.Position),
		Age:         age,
		Nationality: e.Player.Nationality,
		Goals:       goals,
		Assists:     assists,
		Penalties:   valueOrZero(s.Penalty.Scored),
		XG:          valuation.FallbackExpectedGoals(goals),
		XA:          valuation.FallbackExpectedAssists(assists),
		Games:       max(valueOrZero(s.Games.Appearences), 1),
		Minutes:     max(valueOrZero(s.Games.Minutes), 1),
		Source:      "api-football",
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
