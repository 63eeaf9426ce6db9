package controller

import (
	"reflect"
	"testing"

	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/RealRedbaron07/scoutlens-app/platforms"
	"github.com/RealRedbaron07/scoutlens-app/testutils"
)

func player(name string, tier, age, goals int, xgi, pct, fair, fee float64) model.Player {
	return model.Player{
		Name:              name,
		League:            "League " + name,
		Tier:              tier,
		Age:               age,
		Goals:             goals,
		XGIPer90:          xgi,
		UndervaluationPct: pct,
		FairValue:         fair,
		MarketValue:       fair / (1 + pct/100),
		TransferFeePaid:   fee,
	}
}

func TestBuildPlayerData(t *testing.T) {
	players := []model.Player{
		player("A", 1, 30, 5, 0.4, 40, 50, 0),
		player("B", 2, 21, 0, 0.9, 60, 20, 10),
		player("C", 3, 23, 2, 0.6, 15, 12, 12),
		player("D", 1, 24, 1, 0.9, 16, 80, 30),
	}

	tests := map[string]struct {
		source      string
		undervalued []string
		performers  []string
		rising      []string
		gems        []string
		bargains    []string
	}{
		"football-data": {
			source:      platforms.SourceFootballData,
			undervalued: []string{"B", "A", "D"},
			performers:  []string{"B", "D", "C", "A"},
			rising:      []string{"B", "C"},
			gems:        []string{"B", "C"},
			bargains:    []string{"D", "B"},
		},
		"combined needs goals": {
			source:      platforms.SourceCombined,
			undervalued: []string{"A", "D"},
			performers:  []string{"B", "D", "C", "A"},
			rising:      []string{"C"},
			gems:        []string{"C"},
			bargains:    []string{"D", "B"},
		},
		"understat": {
			source:      platforms.SourceUnderstat,
			undervalued: []string{"B", "A", "D", "C"},
			performers:  []string{"B", "D", "C", "A"},
			rising:      []string{"B", "C"},
			gems:        []string{"B", "A"},
			bargains:    []string{"D", "B"},
		},
		"api-football threshold": {
			source:      platforms.SourceAPIFootball,
			undervalued: []string{"B", "A"},
			performers:  []string{"B", "D", "C", "A"},
			rising:      []string{"B", "C"},
			gems:        []string{"B", "C"},
			bargains:    []string{"D", "B"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			d := buildPlayerData(tc.source, model.Season, players, testutils.TestNow)

			if d.TotalPlayers != 4 || d.LeaguesCovered != 4 {
				t.Errorf("wanted: '4 4', got: '%d %d'", d.TotalPlayers, d.LeaguesCovered)
			}
			checks := map[string][2][]string{
				"undervalued": {tc.undervalued, names(d.Undervalued)},
				"performers":  {tc.performers, names(d.TopPerformers)},
				"rising":      {tc.rising, names(d.RisingStars)},
				"gems":        {tc.gems, names(d.HiddenGems)},
				"bargains":    {tc.bargains, names(d.Bargains)},
			}
			for k, v := range checks {
				if !reflect.DeepEqual(v[0], v[1]) {
					t.Errorf("%s - wanted: '%v', got: '%v'", k, v[0], v[1])
				}
			}
		})
	}

	// The input is not renumbered in place.
	if players[0].ID != 0 {
		t.Errorf("wanted: '0', got: '%d'", players[0].ID)
	}
}

func TestBuildPlayerData_limits(t *testing.T) {
	players := make([]model.Player, 0, 40)
	for i := 0; i < 40; i++ {
		players = append(players, player("P", 2, 20, 1, float64(i)/10, float64(20+i), 10, 0))
	}

	d := buildPlayerData(platforms.SourceFootballData, model.Season, players, testutils.TestNow)
	if len(d.Undervalued) != 20 || len(d.TopPerformers) != 15 || len(d.RisingStars) != 15 || len(d.HiddenGems) != 20 {
		t.Errorf("unexpected sizes: %d %d %d %d", len(d.Undervalued), len(d.TopPerformers), len(d.RisingStars), len(d.HiddenGems))
	}
	if d.Undervalued[0].ID != 40 || d.TopPerformers[0].ID != 40 {
		t.Errorf("wanted: '40', got: '%d %d'", d.Undervalued[0].ID, d.TopPerformers[0].ID)
	}
	if d.Bargains == nil || len(d.Bargains) != 0 {
		t.Errorf("expected no bargains, got: '%v'", d.Bargains)
	}
}

func TestBuildPlayerData_understatTopLeagues(t *testing.T) {
	players := []model.Player{
		player("Bukayo Saka", 1, 23, 6, 0.5, 45, 30, 0),
		player("Ethan Nwaneri", 1, 21, 1, 0.1, 5, 10, 0),
	}

	d := buildPlayerData(platforms.SourceUnderstat, model.Season, players, testutils.TestNow)
	if got := names(d.HiddenGems); !reflect.DeepEqual([]string{"Bukayo Saka"}, got) {
		t.Errorf("gems - wanted: '[Bukayo Saka]', got: '%v'", got)
	}
	if len(d.Undervalued) != 2 {
		t.Errorf("undervalued - wanted: '2', got: '%d'", len(d.Undervalued))
	}
	if got := names(d.RisingStars); !reflect.DeepEqual([]string{"Bukayo Saka"}, got) {
		t.Errorf("rising - wanted: '[Bukayo Saka]', got: '%v'", got)
	}
}

func TestBuildPlayerData_empty(t *testing.T) {
	d := buildPlayerData("unknown", model.Season, nil, testutils.TestNow)
	if d.DataSource != sourceRules[platforms.SourceFootballData].dataSource {
		t.Errorf("wanted: '%s', got: '%s'", sourceRules[platforms.SourceFootballData].dataSource, d.DataSource)
	}
	if d.Undervalued == nil || d.TopPerformers == nil || d.RisingStars == nil || d.HiddenGems == nil {
		t.Errorf("expected empty lists, got: '%+v'", d)
	}
}
