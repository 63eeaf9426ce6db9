package valuation

import (
	"math"

	"github.com/RealRedbaron07/scoutlens-app/model"
)

// MarketModel estimates a market value from output when no real market
// value is available.
//
//	value = Intercept + BaseWeight × position base + per90(goals + AssistWeight × assists) × Slope × league × age
//
// clamped to [Min, Max]. Players under MinMinutes get Floor.
type MarketModel struct {
	MinMinutes   int
	Floor        float64
	Intercept    float64
	BaseWeight   float64
	Slope        float64
	AssistWeight float64
	Min          float64
	Max          float64
}

func (m MarketModel) Estimate(p *model.Player) float64 {
	if p.Minutes < m.MinMinutes {
		return m.Floor
	}
	per90 := Per90(float64(p.Goals)+m.AssistWeight*float64(p.Assists), p.Minutes)
	v := m.Intercept + m.BaseWeight*PositionBase(p.Position) + per90*m.Slope*p.LeagueMultiplier*AgeMultiplier(p.Age)
	return Round(Clamp(v, m.Min, m.Max), 1)
}

// Model is the set of constants used to value the players of one data source.
type Model struct {
	Name string
	// Upper bound of the performance ratio.
	Cap          float64
	MinFairValue float64
	// Use real goals and assists instead of xG and xA for the performance
	// ratio and the reported xGI per 90.
	UseGoalInvolvements bool
	Market              MarketModel
}

var (
	// football-data.org top scorers: no minutes, no xG.
	ScorersModel = Model{
		Name: "scorers",
		Cap:  CapStandard,
		Market: MarketModel{
			Intercept:    5,
			Slope:        18,
			AssistWeight: 0.7,
			Min:          2,
			Max:          100,
		},
	}

	// API-Football top scorers.
	TopScorersModel = Model{
		Name:                "top-scorers",
		Cap:                 CapStrict,
		UseGoalInvolvements: true,
		Market: MarketModel{
			MinMinutes:   450,
			Floor:        2,
			Intercept:    3,
			Slope:        25,
			AssistWeight: 0.7,
			Min:          1,
			Max:          150,
		},
	}

	// FBref standard stats tables.
	StatsTableModel = Model{
		Name: "stats-table",
		Cap:  CapStandard,
		Market: MarketModel{
			MinMinutes:   400,
			Floor:        2,
			BaseWeight:   0.3,
			Slope:        20,
			AssistWeight: 0.7,
			Min:          1,
			Max:          180,
		},
	}

	// Understat league pages.
	UnderstatModel = Model{
		Name:         "understat",
		Cap:          CapStrict,
		MinFairValue: 0.5,
		Market: MarketModel{
			MinMinutes:   450,
			Floor:        2,
			Intercept:    3,
			Slope:        25,
			AssistWeight: 0.7,
			Min:          1,
			Max:          150,
		},
	}
)

// Value fills in the derived metrics, the fair value, and the undervaluation
// of p. A market value already set on p is kept, otherwise it is estimated.
func (m Model) Value(p *model.Player) {
	ComputeRates(p)

	// The per 90 rate on p is rounded for display, value on the exact one.
	xgi := Per90(p.XGI(), p.Minutes)
	if m.UseGoalInvolvements {
		xgi = Per90(float64(p.Goals+p.Assists), p.Minutes)
		p.XGIPer90 = Round(xgi, 2)
	}

	fair := FairValue(xgi, p.Position, p.Age, p.LeagueMultiplier, m.Cap)
	p.FairValue = Round(math.Max(fair, m.MinFairValue), 1)

	if p.MarketValue <= 0 {
		p.MarketValue = m.Market.Estimate(p)
		p.ValueSource = model.ValueSourceEstimated
	}
	SetUndervaluation(p)
}

// ComputeRates fills in the per 90 metrics and the overperformance of p.
func ComputeRates(p *model.Player) {
	p.XGIPer90 = Round(Per90(p.XGI(), p.Minutes), 2)
	p.XGPer90 = Round(Per90(p.XG, p.Minutes), 2)
	p.XAPer90 = Round(Per90(p.XA, p.Minutes), 2)
	p.GoalsPer90 = Round(Per90(float64(p.Goals), p.Minutes), 2)
	p.Overperformance = Round(float64(p.Goals)-p.XG, 2)
}

// SetUndervaluation derives the undervaluation fields from the fair and market values.
func SetUndervaluation(p *model.Player) {
	p.UndervaluationPct = Round(UndervaluationPct(p.FairValue, p.MarketValue), 1)
	p.UndervaluationEUR = Round(p.FairValue-p.MarketValue, 1)
}

// ScorerExpectedGoals estimates xG from goals, valuing penalties at 0.76.
func ScorerExpectedGoals(goals, penalties int) float64 {
	return Round(float64(goals-penalties)*0.9+float64(penalties)*0.76, 2)
}

func ScorerExpectedAssists(assists int) float64 {
	return Round(float64(assists)*0.85, 2)
}

// FallbackExpectedGoals is used for sources without any expected stats.
func FallbackExpectedGoals(goals int) float64 {
	return Round(float64(goals)*0.85, 2)
}

func FallbackExpectedAssists(assists int) float64 {
	return Round(float64(assists)*0.9, 2)
}
