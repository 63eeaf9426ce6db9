// Package valuation holds the arithmetic used to turn player output into a
// fair value. Everything here is pure; callers decide which Model applies to
// which data source.
package valuation

import (
	"math"

	"github.com/RealRedbaron07/scoutlens-app/model"
)

const (
	MinPerformanceRatio = 0.5

	// Upper bounds on the performance ratio.
	CapStandard = 3.5
	CapStrict   = 3.0
)

// AgeMultiplier rewards youth and discounts players past their peak.
func AgeMultiplier(age int) float64 {
	switch {
	case age <= 20:
		return 1.4
	case age <= 22:
		return 1.35
	case age <= 24:
		return 1.3
	case age <= 26:
		return 1.15
	case age <= 28:
		return 1.0
	case age <= 30:
		return 0.8
	case age <= 32:
		return 0.6
	default:
		return 0.4
	}
}

// PositionBase is the fair value, in millions, of an average performer at the position.
func PositionBase(pos model.Position) float64 {
	switch pos {
	case model.POS_FW:
		return 25
	case model.POS_MF:
		return 20
	case model.POS_DF:
		return 15
	case model.POS_GK:
		return 8
	default:
		return 20
	}
}

// PositionAverageXGI is the expected goal involvement per 90 of an average
// player at the position.
func PositionAverageXGI(pos model.Position) float64 {
	switch pos {
	case model.POS_FW:
		return 0.55
	case model.POS_MF:
		return 0.35
	case model.POS_DF:
		return 0.15
	case model.POS_GK:
		return 0.02
	default:
		return 0.35
	}
}

// Per90 scales v to a per 90 minute rate. Fewer than 90 minutes count as one
// full match so small samples do not explode.
func Per90(v float64, minutes int) float64 {
	return v / math.Max(float64(minutes)/90, 1)
}

// PerformanceRatio compares a player's xGI per 90 to the position average and
// clamps the result to [MinPerformanceRatio, cap].
func PerformanceRatio(xgiPer90 float64, pos model.Position, cap float64) float64 {
	return Clamp(xgiPer90/PositionAverageXGI(pos), MinPerformanceRatio, cap)
}

// FairValue is position base × performance ratio × age multiplier × league multiplier.
func FairValue(xgiPer90 float64, pos model.Position, age int, leagueMultiplier, cap float64) float64 {
	return PositionBase(pos) * PerformanceRatio(xgiPer90, pos, cap) * AgeMultiplier(age) * leagueMultiplier
}

// UndervaluationPct is how far, in percent of the market value, the fair value
// lies above the market value. Negative values mean overvalued.
func UndervaluationPct(fair, market float64) float64 {
	if market <= 0 {
		return 0
	}
	return (fair - market) / market * 100
}

// TieredFairValue values a player from goal involvements per game when no
// minutes are known. The result is capped at 200.
func TieredFairValue(gaPerGame float64, age int, leagueMultiplier float64) float64 {
	var base float64
	switch {
	case gaPerGame >= 1.3:
		base = 100
	case gaPerGame >= 1.0:
		base = 70
	case gaPerGame >= 0.8:
		base = 50
	case gaPerGame >= 0.6:
		base = 35
	case gaPerGame >= 0.45:
		base = 22
	default:
		base = 12
	}
	return math.Min(base*AgeMultiplier(age)*leagueMultiplier, 200)
}

// TieredMarketEstimate estimates a market value from goal involvements per
// game, capped at 80.
func TieredMarketEstimate(gaPerGame float64, age int) float64 {
	return math.Min((10+gaPerGame*30)*AgeMultiplier(age), 80)
}

// MarketAdjustedFairValue derives a fair value from a known market value when
// no performance data is available.
func MarketAdjustedFairValue(market float64, age int) float64 {
	switch {
	case age <= 23:
		return market * 1.15
	case age <= 27:
		return market
	default:
		return market * 0.95
	}
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Round rounds half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
