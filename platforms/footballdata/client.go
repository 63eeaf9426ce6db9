package footballdata

import (
	"context"
	"fmt"
	"time"

	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/RealRedbaron07/scoutlens-app/platforms"
	"github.com/RealRedbaron07/scoutlens-app/platforms/internal/fetch"
	"github.com/itbasis/go-clock"
)

const (
	FootballDataURL = "https://api.football-data.org"

	headerAuthToken = "X-Auth-Token"

	// The free tier allows 10 requests a minute.
	requestDelay = 6 * time.Second
)

type Client interface {
	// LoadScorers returns the top scorers of a league, at most limit of them.
	LoadScorers(ctx context.Context, league *model.League, limit int) ([]model.Player, error)
}

type client struct {
	url   string
	key   string
	clock clock.Clock
	req   *fetch.Requester
}

func New(key string, clock clock.Clock) (Client, error) {
	if key == "" {
		return nil, fmt.Errorf("football-data.org: %w", platforms.ErrMissingAPIKey)
	}
	c := &client{
		url:   FootballDataURL,
		key:   key,
		clock: clock,
		req:   fetch.New(platforms.SourceFootballData, clock, requestDelay, fetch.DefaultRetryPolicy),
	}
	return c, nil
}

func NewForTest(url, key string, clock clock.Clock) Client {
	return &client{
		url:   url,
		key:   key,
		clock: clock,
		req:   fetch.New(platforms.SourceFootballData, clock, 0, fetch.NoRetry),
	}
}

func (c *client) LoadScorers(ctx context.Context, league *model.League, limit int) ([]model.Player, error) {
	if league.FootballDataCode == "" {
		return nil, fmt.Errorf("%s is not covered by football-data.org", league)
	}

	var parsed scorersResponse
	url := fmt.Sprintf("%s/v4/competitions/%s/scorers?limit=%d", c.url, league.FootballDataCode, limit)
	if err := c.req.GetJSON(ctx, url, map[string]string{headerAuthToken: c.key}, &parsed); err != nil {
		return nil, fmt.Errorf("error loading scorers for %s: %w", league.FootballDataCode, err)
	}

	now := c.clock.Now()
	result := make([]model.Player, 0, len(parsed.Scorers))
	for _, s := range parsed.Scorers {
		if s.Player.Name == "" {
			continue
		}
		result = append(result, s.toPlayer(league, now))
	}
	return result, nil
}
