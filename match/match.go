// Package match joins players from different sources by name.
package match

import (
	"slices"
	"strings"

	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/RealRedbaron07/scoutlens-app/valuation"
)

// Entry is a market value for a named player. Everything except the name and
// the market value is optional.
type Entry struct {
	Name        string
	Team        string
	League      *model.League
	Position    model.Position
	Age         int
	Nationality string
	MarketValue float64
	FeePaid     float64
}

// Index finds entries by player name. Lookups try, in order, an exact match of
// the normalized name, a whole word containment match in either direction,
// and finally a match on a last name that only one entry has.
type Index struct {
	entries  map[string]*Entry
	keys     []string
	lastName map[string][]string
}

func NewIndex(entries []Entry) *Index {
	idx := &Index{
		entries:  make(map[string]*Entry, len(entries)),
		keys:     make([]string, 0, len(entries)),
		lastName: make(map[string][]string),
	}

	for i := range entries {
		k := model.NormalizeName(entries[i].Name)
		if k == "" {
			continue
		}
		if _, found := idx.entries[k]; found {
			// Keep the first entry for a name.
			continue
		}
		idx.entries[k] = &entries[i]
		idx.keys = append(idx.keys, k)
		ln := model.LastName(k)
		idx.lastName[ln] = append(idx.lastName[ln], k)
	}
	slices.Sort(idx.keys)
	return idx
}

func (idx *Index) Len() int {
	return len(idx.keys)
}

// Lookup returns the entry for name along with the normalized key it was stored under.
func (idx *Index) Lookup(name string) (*Entry, string, bool) {
	k := model.NormalizeName(name)
	if k == "" {
		return nil, "", false
	}

	if e, found := idx.entries[k]; found {
		return e, k, true
	}

	for _, key := range idx.keys {
		if containsWords(key, k) || containsWords(k, key) {
			return idx.entries[key], key, true
		}
	}

	candidates := idx.lastName[model.LastName(k)]
	if len(candidates) == 1 {
		return idx.entries[candidates[0]], candidates[0], true
	}

	return nil, "", false
}

// Entries returns the entries in name order.
func (idx *Index) Entries() []*Entry {
	result := make([]*Entry, 0, len(idx.keys))
	for _, k := range idx.keys {
		result = append(result, idx.entries[k])
	}
	return result
}

func containsWords(s, sub string) bool {
	return strings.Contains(" "+s+" ", " "+sub+" ")
}

// ApplyReference sets the market value, and the fee paid, of every player
// found in the index. Players that already have a market value keep it.
func ApplyReference(players []model.Player, idx *Index) int {
	found := 0
	for i := range players {
		p := &players[i]
		e, _, ok := idx.Lookup(p.Name)
		if !ok {
			continue
		}
		found++
		if p.MarketValue <= 0 {
			p.MarketValue = e.MarketValue
			p.ValueSource = model.ValueSourceReference
		}
		if p.TransferFeePaid <= 0 {
			p.TransferFeePaid = e.FeePaid
		}
	}
	return found
}

// Merge combines per player statistics with Transfermarkt market values.
// Players with a matched market value use it, the others get an estimate. All
// players are valued with the tiered model. Market entries that matched no
// player but are worth at least minUnmatchedValue are appended as fairly
// valued players.
func Merge(stats []model.Player, market *Index, minUnmatchedValue float64) []model.Player {
	used := make(map[string]bool)
	result := make([]model.Player, 0, len(stats)+8)

	for _, p := range stats {
		games := max(p.Games, 1)
		gaPerGame := float64(p.Goals+p.Assists) / float64(games)

		if e, key, ok := market.Lookup(p.Name); ok {
			used[key] = true
			p.MarketValue = e.MarketValue
			p.ValueSource = model.ValueSourceTransfermarkt
			if p.Nationality == "" {
				p.Nationality = e.Nationality
			}
			if p.Position == model.POS_UNKNOWN || p.Position == "" {
				p.Position = e.Position
			}
			if p.TransferFeePaid <= 0 {
				p.TransferFeePaid = e.FeePaid
			}
		} else {
			p.MarketValue = valuation.Round(valuation.TieredMarketEstimate(gaPerGame, p.Age), 1)
			p.ValueSource = model.ValueSourceEstimated
		}

		valuation.ComputeRates(&p)
		p.FairValue = valuation.Round(valuation.TieredFairValue(gaPerGame, p.Age, p.LeagueMultiplier), 1)
		valuation.SetUndervaluation(&p)
		result = append(result, p)
	}

	for _, k := range market.keys {
		e := market.entries[k]
		if used[k] || e.MarketValue < minUnmatchedValue {
			continue
		}
		p := model.Player{
			Name:        e.Name,
			Team:        e.Team,
			Position:    e.Position,
			Age:         e.Age,
			Nationality: e.Nationality,
			MarketValue: e.MarketValue,
			FairValue:   e.MarketValue,
			ValueSource: model.ValueSourceTransfermarkt,
		}
		if p.Age == 0 {
			p.Age = model.DefaultAge
		}
		p.SetLeague(e.League)
		result = append(result, p)
	}

	return result
}
