package controller

import (
	"cmp"
	"slices"
	"time"

	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/RealRedbaron07/scoutlens-app/platforms"
)

const (
	RisingStarMaxAge = 23
	// Fair value has to beat the fee paid by this factor to count as a bargain.
	BargainFactor = 1.2
)

// rules decides which players make it into the categories of a source and
// how many of them.
type rules struct {
	dataSource      string
	updateFrequency string

	undervaluedPct float64
	// Minimum minutes for the undervalued and top performer lists.
	minMinutes int
	// Only players that scored make the undervalued, rising star, and hidden gem lists.
	requireGoals bool
	// Rank by market value instead of xGI/90, for sources without stats.
	byMarketValue bool
	// Rising stars also need more than this xGI/90.
	risingMinXGI float64
	// When set, hidden gems are the players undervalued by more than this
	// percentage, wherever they play.
	gemsUndervaluedPct float64

	undervalued int
	performers  int
	rising      int
	gems        int
	bargains    int
}

var sourceRules = map[string]rules{
	platforms.SourceFootballData: {
		dataSource:      "football-data.org + Transfermarkt values",
		updateFrequency: "daily",
		undervaluedPct:  15,
		undervalued:     20,
		performers:      15,
		rising:          15,
		gems:            20,
		bargains:        10,
	},
	platforms.SourceAPIFootball: {
		dataSource:      "api-football",
		updateFrequency: "daily",
		undervaluedPct:  20,
		undervalued:     15,
		performers:      10,
		rising:          10,
		gems:            10,
		bargains:        10,
	},
	platforms.SourceFBref: {
		dataSource:      "fbref",
		updateFrequency: "weekly",
		undervaluedPct:  25,
		minMinutes:      600,
		undervalued:     20,
		performers:      15,
		rising:          15,
		gems:            20,
		bargains:        10,
	},
	// Understat only covers the top five leagues.
	platforms.SourceUnderstat: {
		dataSource:         "understat",
		updateFrequency:    "daily",
		undervaluedPct:     0,
		risingMinXGI:       0.25,
		gemsUndervaluedPct: 30,
		undervalued:        30,
		performers:         15,
		rising:             15,
		gems:               20,
		bargains:           10,
	},
	platforms.SourceTransfermarkt: {
		dataSource:      "transfermarkt.com (live)",
		updateFrequency: "daily",
		undervaluedPct:  10,
		byMarketValue:   true,
		undervalued:     20,
		performers:      15,
		rising:          15,
		gems:            20,
		bargains:        10,
	},
	platforms.SourceCombined: {
		dataSource:      "Transfermarkt + Football-Data.org",
		updateFrequency: "daily",
		undervaluedPct:  15,
		requireGoals:    true,
		undervalued:     20,
		performers:      15,
		rising:          15,
		gems:            20,
		bargains:        10,
	},
}

// buildPlayerData numbers the players and ranks them into the categories.
// Players keep the order they were loaded in, every ranking is stable.
func buildPlayerData(source, season string, players []model.Player, now time.Time) *model.PlayerData {
	r, found := sourceRules[source]
	if !found {
		r = sourceRules[platforms.SourceFootballData]
	}

	all := make([]model.Player, len(players))
	copy(all, players)
	leagues := make(map[string]bool)
	for i := range all {
		all[i].ID = i + 1
		leagues[all[i].League] = true
	}

	rank := byXGI
	if r.byMarketValue {
		rank = byMarketValue
	}
	scored := func(p *model.Player) bool {
		return !r.requireGoals || p.Goals > 0
	}
	gemRank, gem := rank, (*model.Player).IsHiddenGem
	if r.gemsUndervaluedPct > 0 {
		gemRank = byUndervaluation
		gem = func(p *model.Player) bool {
			return p.UndervaluationPct > r.gemsUndervaluedPct
		}
	}

	return &model.PlayerData{
		LastUpdated:     now.UTC().Format(time.RFC3339),
		DataSource:      r.dataSource,
		Season:          season,
		UpdateFrequency: r.updateFrequency,
		TotalPlayers:    len(all),
		LeaguesCovered:  len(leagues),
		Undervalued: top(all, r.undervalued, byUndervaluation, func(p *model.Player) bool {
			return p.UndervaluationPct > r.undervaluedPct && p.Minutes >= r.minMinutes && scored(p)
		}),
		TopPerformers: top(all, r.performers, rank, func(p *model.Player) bool {
			return p.Minutes >= r.minMinutes && (r.byMarketValue || p.XGIPer90 > 0)
		}),
		RisingStars: top(all, r.rising, rank, func(p *model.Player) bool {
			return p.Age <= RisingStarMaxAge && (r.risingMinXGI == 0 || p.XGIPer90 > r.risingMinXGI) && scored(p)
		}),
		HiddenGems: top(all, r.gems, gemRank, func(p *model.Player) bool {
			return gem(p) && scored(p)
		}),
		Bargains: top(all, r.bargains, byFeeGain, isBargain),
		Players:  all,
	}
}

func isBargain(p *model.Player) bool {
	return p.TransferFeePaid > 0 && p.FairValue > p.TransferFeePaid*BargainFactor
}

// top returns at most limit of the players that keep accepts, in rank order.
func top(players []model.Player, limit int, rank func(a, b model.Player) int, keep func(p *model.Player) bool) []model.Player {
	result := make([]model.Player, 0, limit)
	for i := range players {
		if keep(&players[i]) {
			result = append(result, players[i])
		}
	}
	slices.SortStableFunc(result, rank)
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// All rankings put the highest value first.

func byUndervaluation(a, b model.Player) int {
	return cmp.Compare(b.UndervaluationPct, a.UndervaluationPct)
}

func byXGI(a, b model.Player) int {
	return cmp.Compare(b.XGIPer90, a.XGIPer90)
}

func byMarketValue(a, b model.Player) int {
	return cmp.Compare(b.MarketValue, a.MarketValue)
}

func byFeeGain(a, b model.Player) int {
	return cmp.Compare(b.FairValue-b.TransferFeePaid, a.FairValue-a.TransferFeePaid)
}
