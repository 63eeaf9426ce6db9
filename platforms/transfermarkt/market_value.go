package transfermarkt

import (
	"strconv"
	"strings"

	"github.com/RealRedbaron07/scoutlens-app/valuation"
	jsoniter "github.com/json-iterator/go"
)

// ParseMarketValue converts a market value in any of the formats the proxy
// uses into millions of euros. Returns 0 when the value is missing or cannot
// be parsed.
func ParseMarketValue(v jsoniter.Any) float64 {
	switch v.ValueType() {
	case jsoniter.NumberValue:
		return fromEuros(v.ToFloat64())
	case jsoniter.StringValue:
		return ParseMarketValueString(v.ToString())
	default:
		return 0
	}
}

// ParseMarketValueString parses values like "€45.00m", "€800k", "€1.20bn",
// or "75000000" into millions of euros.
func ParseMarketValueString(s string) float64 {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("€", "", "eur", "", " ", "").Replace(s)
	// A single comma is a decimal separator ("€45,50m") unless three digits
	// follow it ("800,000").
	if i := strings.Index(s, ","); i >= 0 && strings.Count(s, ",") == 1 && !strings.Contains(s, ".") &&
		len(strings.TrimRight(s[i+1:], "bnmkth.")) != 3 {
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	if s == "" || s == "-" {
		return 0
	}

	multiplier := 0.0
	switch {
	case strings.HasSuffix(s, "bn"):
		s, multiplier = strings.TrimSuffix(s, "bn"), 1000
	case strings.HasSuffix(s, "m"):
		s, multiplier = strings.TrimSuffix(s, "m"), 1
	case strings.HasSuffix(s, "th."):
		s, multiplier = strings.TrimSuffix(s, "th."), 0.001
	case strings.HasSuffix(s, "k"):
		s, multiplier = strings.TrimSuffix(s, "k"), 0.001
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	if multiplier == 0 {
		return fromEuros(v)
	}
	return valuation.Round(v*multiplier, 3)
}

// Plain numbers over 1000 are whole euros, anything smaller is already in millions.
func fromEuros(v float64) float64 {
	if v > 1000 {
		return valuation.Round(v/1_000_000, 3)
	}
	return v
}
