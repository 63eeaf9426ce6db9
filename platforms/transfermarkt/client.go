package transfermarkt

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/RealRedbaron07/scoutlens-app/platforms"
	"github.com/RealRedbaron07/scoutlens-app/platforms/internal/fetch"
	"github.com/itbasis/go-clock"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const (
	TransfermarktURL = "https://transfermarkt-api.fly.dev"

	requestDelay = 500 * time.Millisecond

	// Players worth less than this, in millions, are dropped.
	minMarketValue = 1.0
)

type Club struct {
	ID   string
	Name string
}

type Client interface {
	LoadClubs(ctx context.Context, league *model.League) ([]Club, error)
	LoadClubPlayers(ctx context.Context, league *model.League, club Club) ([]model.Player, error)
	// LoadLeaguePlayers loads the squads of the first maxClubs clubs of the
	// league. Clubs that fail to load are skipped. The result is sorted by
	// market value, highest first.
	LoadLeaguePlayers(ctx context.Context, league *model.League, maxClubs int) ([]model.Player, error)
}

type client struct {
	url   string
	clock clock.Clock
	req   *fetch.Requester
}

func New(clock clock.Clock) (Client, error) {
	c := &client{
		url:   TransfermarktURL,
		clock: clock,
		req:   fetch.New(platforms.SourceTransfermarkt, clock, requestDelay, fetch.DefaultRetryPolicy),
	}
	return c, nil
}

func NewForTest(url string, clock clock.Clock) Client {
	return &client{
		url:   url,
		clock: clock,
		req:   fetch.New(platforms.SourceTransfermarkt, clock, 0, fetch.NoRetry),
	}
}

func (c *client) LoadClubs(ctx context.Context, league *model.League) ([]Club, error) {
	if league.TransfermarktID == "" {
		return nil, fmt.Errorf("%s is not covered by transfermarkt", league)
	}

	body, err := c.req.Get(ctx, fmt.Sprintf("%s/competitions/%s/clubs", c.url, league.TransfermarktID), nil)
	if err != nil {
		return nil, fmt.Errorf("error loading clubs for %s: %w", league.TransfermarktID, err)
	}

	clubs := jsoniter.Get(body, "clubs")
	if clubs.ValueType() != jsoniter.ArrayValue {
		return nil, fmt.Errorf("error parsing clubs for %s: no clubs in response", league.TransfermarktID)
	}

	result := make([]Club, 0, clubs.Size())
	for i := 0; i < clubs.Size(); i++ {
		club := Club{
			ID:   clubs.Get(i, "id").ToString(),
			Name: clubs.Get(i, "name").ToString(),
		}
		if club.ID == "" {
			continue
		}
		result = append(result, club)
	}
	return result, nil
}

func (c *client) LoadClubPlayers(ctx context.Context, league *model.League, club Club) ([]model.Player, error) {
	body, err := c.req.Get(ctx, fmt.Sprintf("%s/clubs/%s/players", c.url, club.ID), nil)
	if err != nil {
		return nil, fmt.Errorf("error loading players for club %s: %w", club.ID, err)
	}

	players := jsoniter.Get(body, "players")
	if players.ValueType() != jsoniter.ArrayValue {
		return nil, fmt.Errorf("error parsing players for club %s: no players in response", club.ID)
	}

	now := c.clock.Now()
	result := make([]model.Player, 0, players.Size())
	for i := 0; i < players.Size(); i++ {
		p, ok := toPlayer(players.Get(i), league, club, now)
		if !ok {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (c *client) LoadLeaguePlayers(ctx context.Context, league *model.League, maxClubs int) ([]model.Player, error) {
	clubs, err := c.LoadClubs(ctx, league)
	if err != nil {
		return nil, err
	}
	if maxClubs > 0 && len(clubs) > maxClubs {
		clubs = clubs[:maxClubs]
	}

	result := make([]model.Player, 0, len(clubs)*25)
	for _, club := range clubs {
		players, err := c.LoadClubPlayers(ctx, league, club)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logrus.WithFields(logrus.Fields{
				"league": league.Key,
				"club":   club.Name,
			}).WithError(err).Warn("skipping club")
			continue
		}
		result = append(result, players...)
	}

	slices.SortStableFunc(result, func(a, b model.Player) int {
		switch {
		case a.MarketValue > b.MarketValue:
			return -1
		case a.MarketValue < b.MarketValue:
			return 1
		default:
			return 0
		}
	})
	return result, nil
}

func toPlayer(p jsoniter.Any, league *model.League, club Club, now time.Time) (model.Player, bool) {
	name := p.Get("name").ToString()
	mv := ParseMarketValue(p.Get("marketValue"))
	if name == "" || mv < minMarketValue {
		return model.Player{}, false
	}

	age := p.Get("age").ToInt()
	if age <= 0 {
		age = model.AgeFromBirthDate(p.Get("dateOfBirth").ToString(), now)
	}

	nationality := p.Get("nationality")
	if nationality.ValueType() == jsoniter.ArrayValue {
		nationality = nationality.Get(0)
	}

	player := model.Player{
		Name:        name,
		Team:        club.Name,
		Position:    model.ParsePosition(p.Get("position").ToString()),
		Age:         age,
		Nationality: nationality.ToString(),
		MarketValue: mv,
		ValueSource: model.ValueSourceTransfermarkt,
		Source:      "transfermarkt",
	}
	player.SetLeague(league)
	return player, true
}
