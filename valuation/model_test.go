package valuation

import (
	"testing"

	"github.com/RealRedbaron07/scoutlens-app/model"
)

func TestModelValue(t *testing.T) {
	tests := map[string]struct {
		m                 Model
		p                 model.Player
		expectedFair      float64
		expectedMarket    float64
		expectedPct       float64
		expectedXGI       float64
		expectedValueFrom string
	}{
		"scorer with a reference value": {
			m: ScorersModel,
			p: model.Player{
				Position: model.POS_FW, Age: 24, LeagueMultiplier: 2.0,
				Goals: 20, Assists: 5, Minutes: 1875,
				XG: ScorerExpectedGoals(20, 4), XA: ScorerExpectedAssists(5),
				MarketValue: 180, ValueSource: model.ValueSourceReference,
			},
			expectedFair:      123.0,
			expectedMarket:    180,
			expectedPct:       -31.7,
			expectedValueFrom: model.ValueSourceReference,
		},
		"scorer with an estimated value": {
			m: ScorersModel,
			p: model.Player{
				Position: model.POS_MF, Age: 22, LeagueMultiplier: 1.4,
				Goals: 5, Assists: 5, Minutes: 1500,
				XG: ScorerExpectedGoals(5, 0), XA: ScorerExpectedAssists(5),
			},
			expectedFair:      56.7,
			expectedMarket:    22.4,
			expectedPct:       153.1,
			expectedValueFrom: model.ValueSourceEstimated,
		},
		"top scorer valued on goal involvements": {
			m: TopScorersModel,
			p: model.Player{
				Position: model.POS_FW, Age: 27, LeagueMultiplier: 2.0,
				Goals: 10, Assists: 0, Minutes: 900,
				XG: FallbackExpectedGoals(10), XA: FallbackExpectedAssists(0),
			},
			expectedFair:      90.9,
			expectedMarket:    53,
			expectedPct:       71.5,
			expectedXGI:       1.0,
			expectedValueFrom: model.ValueSourceEstimated,
		},
		"stats table valued on the exact xgi rate": {
			m: StatsTableModel,
			p: model.Player{
				Position: model.POS_FW, Age: 27, LeagueMultiplier: 2.0,
				Minutes: 900, XG: 4.0, XA: 1.54,
				MarketValue: 40, ValueSource: model.ValueSourceTransfermarkt,
			},
			expectedFair:      50.4,
			expectedMarket:    40,
			expectedPct:       26,
			expectedXGI:       0.55,
			expectedValueFrom: model.ValueSourceTransfermarkt,
		},
		"understat fair value floor": {
			m: UnderstatModel,
			p: model.Player{
				Position: model.POS_GK, Age: 35, LeagueMultiplier: 0.3,
				Minutes: 300,
			},
			expectedFair:      0.5,
			expectedMarket:    2,
			expectedPct:       -75,
			expectedValueFrom: model.ValueSourceEstimated,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			p := tc.p
			tc.m.Value(&p)

			if p.FairValue != tc.expectedFair {
				t.Errorf("fair value - wanted: '%v', got: '%v'", tc.expectedFair, p.FairValue)
			}
			if p.MarketValue != tc.expectedMarket {
				t.Errorf("market value - wanted: '%v', got: '%v'", tc.expectedMarket, p.MarketValue)
			}
			if p.UndervaluationPct != tc.expectedPct {
				t.Errorf("undervaluation - wanted: '%v', got: '%v'", tc.expectedPct, p.UndervaluationPct)
			}
			if tc.expectedXGI != 0 && p.XGIPer90 != tc.expectedXGI {
				t.Errorf("xgi per 90 - wanted: '%v', got: '%v'", tc.expectedXGI, p.XGIPer90)
			}
			if p.ValueSource != tc.expectedValueFrom {
				t.Errorf("value source - wanted: '%v', got: '%v'", tc.expectedValueFrom, p.ValueSource)
			}
			if p.UndervaluationEUR != Round(p.FairValue-p.MarketValue, 1) {
				t.Errorf("undervaluation eur - got: '%v'", p.UndervaluationEUR)
			}
		})
	}
}

func TestMarketModelEstimate(t *testing.T) {
	p := &model.Player{
		Position: model.POS_FW, Age: 27, LeagueMultiplier: 1.0,
		Goals: 9, Assists: 0, Minutes: 810,
	}

	tests := map[string]struct {
		m        MarketModel
		minutes  int
		expected float64
	}{
		"scorers":             {m: ScorersModel.Market, minutes: 810, expected: 23},
		"top scorers":         {m: TopScorersModel.Market, minutes: 810, expected: 28},
		"stats table":         {m: StatsTableModel.Market, minutes: 810, expected: 27.5},
		"below minimum":       {m: StatsTableModel.Market, minutes: 399, expected: 2},
		"scorers no minimum":  {m: ScorersModel.Market, minutes: 0, expected: 100},
		"understat below min": {m: UnderstatModel.Market, minutes: 449, expected: 2},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			pp := *p
			pp.Minutes = tc.minutes
			if a := tc.m.Estimate(&pp); a != tc.expected {
				t.Errorf("wanted: '%v', got: '%v'", tc.expected, a)
			}
		})
	}
}

func TestComputeRates(t *testing.T) {
	p := &model.Player{Goals: 12, XG: 9.6, XA: 4.4, Minutes: 1800}
	ComputeRates(p)

	if p.XGIPer90 != 0.7 {
		t.Errorf("xgi per 90 - wanted: 0.7, got: %v", p.XGIPer90)
	}
	if p.XGPer90 != 0.48 {
		t.Errorf("xg per 90 - wanted: 0.48, got: %v", p.XGPer90)
	}
	if p.XAPer90 != 0.22 {
		t.Errorf("xa per 90 - wanted: 0.22, got: %v", p.XAPer90)
	}
	if p.GoalsPer90 != 0.6 {
		t.Errorf("goals per 90 - wanted: 0.6, got: %v", p.GoalsPer90)
	}
	if p.Overperformance != 2.4 {
		t.Errorf("overperformance - wanted: 2.4, got: %v", p.Overperformance)
	}
}

func TestExpectedStatEstimates(t *testing.T) {
	if a := ScorerExpectedGoals(20, 4); a != 17.44 {
		t.Errorf("scorer xG - wanted: 17.44, got: %v", a)
	}
	if a := ScorerExpectedAssists(5); a != 4.25 {
		t.Errorf("scorer xA - wanted: 4.25, got: %v", a)
	}
	if a := FallbackExpectedGoals(10); a != 8.5 {
		t.Errorf("fallback xG - wanted: 8.5, got: %v", a)
	}
	if a := FallbackExpectedAssists(10); a != 9 {
		t.Errorf("fallback xA - wanted: 9, got: %v", a)
	}
}
