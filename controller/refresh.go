package controller

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/RealRedbaron07/scoutlens-app/match"
	"github.com/RealRedbaron07/scoutlens-app/metrics"
	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/RealRedbaron07/scoutlens-app/output"
	"github.com/RealRedbaron07/scoutlens-app/platforms"
	"github.com/RealRedbaron07/scoutlens-app/valuation"
	"github.com/sirupsen/logrus"
)

const (
	// Understat lists every player that appeared, drop the ones with too few minutes.
	DefaultUnderstatMinMinutes = 450

	scorersLimit = 30

	// Transfermarkt is slow, only the biggest clubs of a league and their most
	// valuable players are loaded.
	transfermarktClubs     = 8
	transfermarktPerLeague = 30

	// Market entries without stats are only added to the combined output
	// when they are worth at least this much.
	minUnmatchedValue = 50
)

type RefreshOptions struct {
	Source string
	// Explicit leagues take precedence over AllTiers, which takes precedence
	// over Tier. With none of them set the source's default leagues are used.
	Leagues  []*model.League
	Tier     int
	AllTiers bool
	Season   string
	// Players with fewer minutes are dropped. Zero uses the source's default.
	MinMinutes int
	// Persist the run to the database.
	Save bool

	// Empty values use the controller's Config.
	Formats   []output.Format
	OutputDir string
	// Recorded in the header of player_data.js.
	Command string
}

type RefreshResult struct {
	Data  *model.PlayerData
	Files []string
	// Nil unless the run was saved.
	Run *model.Run
}

func (c *controller) Refresh(ctx context.Context, opts RefreshOptions) (*RefreshResult, error) {
	opts, err := c.withDefaults(opts)
	if err != nil {
		return nil, err
	}

	start := c.clock.Now()
	log := logrus.WithField("source", opts.Source)
	log.WithField("season", opts.Season).Info("refresh starting")

	players, err := c.load(ctx, opts)
	if err == nil && len(players) == 0 {
		err = fmt.Errorf("%w from %s", ErrNoPlayers, opts.Source)
	}
	if err != nil {
		metrics.ObserveRefresh(opts.Source, 0, c.clock.Now(), err)
		return nil, err
	}

	now := c.clock.Now()
	data := buildPlayerData(opts.Source, opts.Season, players, now)
	result := &RefreshResult{Data: data}

	if opts.Save {
		run := &model.Run{Source: opts.Source, Season: opts.Season, TotalPlayers: data.TotalPlayers}
		if err := c.db.SaveRun(ctx, run, data.Players); err != nil {
			log.WithError(err).Warn("unable to save run")
		} else {
			result.Run = run
		}
	}

	files, err := output.WriteAll(ctx, opts.OutputDir, opts.Formats, data, output.Header{Generated: now, Command: opts.Command})
	if err != nil {
		metrics.ObserveRefresh(opts.Source, 0, now, err)
		return nil, err
	}
	result.Files = files

	c.setCurrent(data)
	metrics.ObserveRefresh(opts.Source, data.TotalPlayers, now, nil)

	log.WithFields(logrus.Fields{
		"players":     data.TotalPlayers,
		"undervalued": len(data.Undervalued),
		"files":       strings.Join(files, ","),
		"took":        c.clock.Now().Sub(start),
	}).Info("refresh finished")
	return result, nil
}

func (c *controller) withDefaults(opts RefreshOptions) (RefreshOptions, error) {
	if opts.Source == "" {
		opts.Source = platforms.SourceFootballData
	}
	if !slices.Contains(platforms.Sources, opts.Source) {
		return opts, fmt.Errorf("%w: %s", ErrUnknownSource, opts.Source)
	}
	if opts.Tier < 0 || opts.Tier > 4 {
		return opts, fmt.Errorf("tier must be between 1 and 4, got %d", opts.Tier)
	}
	if opts.Save && c.db == nil {
		return opts, ErrNoDatabase
	}
	if opts.Season == "" {
		opts.Season = model.Season
	}
	if opts.MinMinutes <= 0 && opts.Source == platforms.SourceUnderstat {
		opts.MinMinutes = DefaultUnderstatMinMinutes
	}
	if len(opts.Formats) == 0 {
		opts.Formats = c.cfg.Formats
	}
	if opts.OutputDir == "" {
		opts.OutputDir = c.cfg.OutputDir
	}
	return opts, nil
}

// selectLeagues returns the leagues to load, dropping the ones the source does not cover.
func selectLeagues(opts RefreshOptions) []*model.League {
	var candidates []*model.League
	switch {
	case len(opts.Leagues) > 0:
		candidates = opts.Leagues
	case opts.AllTiers:
		candidates = model.AllLeagues()
	case opts.Tier > 0:
		candidates = model.LeaguesForTier(opts.Tier)
	case opts.Source == platforms.SourceFootballData || opts.Source == platforms.SourceCombined:
		candidates = model.AllLeagues()
	default:
		candidates = model.LeaguesForTier(1)
	}

	result := make([]*model.League, 0, len(candidates))
	for _, l := range candidates {
		if covers(opts.Source, l) {
			result = append(result, l)
		} else if len(opts.Leagues) > 0 {
			logrus.WithFields(logrus.Fields{"source": opts.Source, "league": l.Key}).Warn("league is not covered by source")
		}
	}
	return result
}

func covers(source string, l *model.League) bool {
	switch source {
	case platforms.SourceFootballData, platforms.SourceCombined:
		return l.FootballDataCode != ""
	case platforms.SourceAPIFootball:
		return l.APIFootballID != 0
	case platforms.SourceFBref:
		return l.FBrefID != 0
	case platforms.SourceUnderstat:
		return l.UnderstatID != ""
	case platforms.SourceTransfermarkt:
		return l.TransfermarktID != ""
	default:
		return false
	}
}

func (c *controller) load(ctx context.Context, opts RefreshOptions) ([]model.Player, error) {
	leagues := selectLeagues(opts)
	if len(leagues) == 0 {
		return nil, fmt.Errorf("%w: no selected league is covered by %s", ErrNoPlayers, opts.Source)
	}

	var players []model.Player
	var err error
	switch opts.Source {
	case platforms.SourceFootballData:
		players, err = c.loadFootballData(ctx, leagues)
	case platforms.SourceAPIFootball:
		players, err = c.loadAPIFootball(ctx, leagues, opts.Season)
	case platforms.SourceFBref:
		players, err = c.loadFBref(ctx, leagues)
	case platforms.SourceUnderstat:
		players, err = c.loadUnderstat(ctx, leagues, opts.Season)
	case platforms.SourceTransfermarkt:
		players, err = c.loadTransfermarkt(ctx, leagues)
	case platforms.SourceCombined:
		players, err = c.loadCombined(ctx, leagues)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownSource, opts.Source)
	}
	if err != nil {
		return nil, err
	}
	return filterMinutes(players, opts.MinMinutes, opts.Source), nil
}

// eachLeague loads every league, logging and skipping the leagues that fail.
// Only a cancelled context stops the loop.
func eachLeague(ctx context.Context, source string, leagues []*model.League, load func(l *model.League) ([]model.Player, error)) ([]model.Player, error) {
	result := make([]model.Player, 0, len(leagues)*scorersLimit)
	for _, l := range leagues {
		players, err := load(l)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logrus.WithFields(logrus.Fields{
				"source": source,
				"league": l.Key,
			}).WithError(err).Warn("skipping league")
			continue
		}
		logrus.WithFields(logrus.Fields{
			"source":  source,
			"league":  l.Key,
			"players": len(players),
		}).Debug("league loaded")
		result = append(result, players...)
	}
	return result, nil
}

func (c *controller) loadScorers(ctx context.Context, leagues []*model.League) ([]model.Player, error) {
	if c.sources.FootballData == nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, platforms.SourceFootballData)
	}
	return eachLeague(ctx, platforms.SourceFootballData, leagues, func(l *model.League) ([]model.Player, error) {
		return c.sources.FootballData.LoadScorers(ctx, l, scorersLimit)
	})
}

func (c *controller) loadFootballData(ctx context.Context, leagues []*model.League) ([]model.Player, error) {
	players, err := c.loadScorers(ctx, leagues)
	if err != nil {
		return nil, err
	}
	match.ApplyReference(players, match.ReferenceIndex())
	return valueAll(players, valuation.ScorersModel), nil
}

func (c *controller) loadAPIFootball(ctx context.Context, leagues []*model.League, season string) ([]model.Player, error) {
	if c.sources.APIFootball == nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, platforms.SourceAPIFootball)
	}
	players, err := eachLeague(ctx, platforms.SourceAPIFootball, leagues, func(l *model.League) ([]model.Player, error) {
		return c.sources.APIFootball.LoadTopScorers(ctx, l, season)
	})
	if err != nil {
		return nil, err
	}
	return valueAll(players, valuation.TopScorersModel), nil
}

func (c *controller) loadFBref(ctx context.Context, leagues []*model.League) ([]model.Player, error) {
	if c.sources.FBref == nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, platforms.SourceFBref)
	}
	players, err := eachLeague(ctx, platforms.SourceFBref, leagues, func(l *model.League) ([]model.Player, error) {
		return c.sources.FBref.LoadStandardStats(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	return valueAll(players, valuation.StatsTableModel), nil
}

func (c *controller) loadUnderstat(ctx context.Context, leagues []*model.League, season string) ([]model.Player, error) {
	if c.sources.Understat == nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, platforms.SourceUnderstat)
	}
	// The client skips the leagues it fails to load.
	players, err := c.sources.Understat.LoadLeagues(ctx, leagues, season)
	if err != nil {
		return nil, fmt.Errorf("error loading understat leagues: %w", err)
	}
	return valueAll(players, valuation.UnderstatModel), nil
}

func (c *controller) loadMarketValues(ctx context.Context, leagues []*model.League) ([]model.Player, error) {
	if c.sources.Transfermarkt == nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, platforms.SourceTransfermarkt)
	}
	return eachLeague(ctx, platforms.SourceTransfermarkt, leagues, func(l *model.League) ([]model.Player, error) {
		players, err := c.sources.Transfermarkt.LoadLeaguePlayers(ctx, l, transfermarktClubs)
		if err != nil {
			return nil, err
		}
		// Sorted by market value already.
		if len(players) > transfermarktPerLeague {
			players = players[:transfermarktPerLeague]
		}
		return players, nil
	})
}

func (c *controller) loadTransfermarkt(ctx context.Context, leagues []*model.League) ([]model.Player, error) {
	players, err := c.loadMarketValues(ctx, leagues)
	if err != nil {
		return nil, err
	}
	match.ApplyReference(players, match.ReferenceIndex())
	for i := range players {
		p := &players[i]
		valuation.ComputeRates(p)
		p.FairValue = valuation.Round(valuation.MarketAdjustedFairValue(p.MarketValue, p.Age), 1)
		valuation.SetUndervaluation(p)
	}
	return players, nil
}

// loadCombined values football-data.org scorers against Transfermarkt market values.
func (c *controller) loadCombined(ctx context.Context, leagues []*model.League) ([]model.Player, error) {
	stats, err := c.loadScorers(ctx, leagues)
	if err != nil {
		return nil, err
	}
	market, err := c.loadMarketValues(ctx, leagues)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*model.League, len(leagues))
	for _, l := range leagues {
		byName[l.Name] = l
	}
	entries := make([]match.Entry, 0, len(market))
	for _, p := range market {
		entries = append(entries, match.Entry{
			Name:        p.Name,
			Team:        p.Team,
			League:      byName[p.League],
			Position:    p.Position,
			Age:         p.Age,
			Nationality: p.Nationality,
			MarketValue: p.MarketValue,
		})
	}

	idx := match.NewIndex(entries)
	players := match.Merge(stats, idx, minUnmatchedValue)
	matched := 0
	for _, p := range players {
		if p.ValueSource == model.ValueSourceTransfermarkt {
			matched++
		}
	}
	logrus.WithFields(logrus.Fields{
		"source":  platforms.SourceCombined,
		"stats":   len(stats),
		"market":  idx.Len(),
		"matched": matched,
	}).Info("merged market values")

	// Only the transfer fees are taken from the reference table.
	match.ApplyReference(players, match.ReferenceIndex())
	return players, nil
}

func valueAll(players []model.Player, m valuation.Model) []model.Player {
	for i := range players {
		m.Value(&players[i])
	}
	return players
}

// filterMinutes keeps players with at least min minutes. Transfermarkt only
// reports market values, so its players are all kept, and so are the market
// only rows a combined load adds.
func filterMinutes(players []model.Player, min int, source string) []model.Player {
	if min <= 0 || source == platforms.SourceTransfermarkt {
		return players
	}
	result := players[:0]
	for _, p := range players {
		marketOnly := p.Minutes == 0 && p.ValueSource == model.ValueSourceTransfermarkt
		if marketOnly || p.Minutes >= min {
			result = append(result, p)
		}
	}
	return result
}
