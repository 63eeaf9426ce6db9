package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultAge = 25

	ValueSourceTransfermarkt = "transfermarkt"
	ValueSourceReference     = "reference"
	ValueSourceEstimated     = "estimated"
)

// Player is a single row of the output. All money values are in millions of euros.
type Player struct {
	ID                int      `json:"id"`
	Name              string   `json:"name"`
	Team              string   `json:"team"`
	League            string   `json:"league"`
	Country           string   `json:"country,omitempty"`
	Tier              int      `json:"tier"`
	Position          Position `json:"position"`
	Age               int      `json:"age"`
	Nationality       string   `json:"nationality"`
	FairValue         float64  `json:"fair_value_eur_m"`
	MarketValue       float64  `json:"market_value_eur_m"`
	ValueSource       string   `json:"value_source,omitempty"`
	UndervaluationPct float64  `json:"undervaluation_pct"`
	UndervaluationEUR float64  `json:"undervaluation_eur_m"`
	XGIPer90          float64  `json:"xgi_per_90"`
	XGPer90           float64  `json:"xg_per_90"`
	XAPer90           float64  `json:"xa_per_90"`
	GoalsPer90        float64  `json:"goals_per_90"`
	Overperformance   float64  `json:"overperformance"`
	Goals             int      `json:"goals"`
	Assists           int      `json:"assists"`
	Penalties         int      `json:"penalties,omitempty"`
	XG                float64  `json:"xG"`
	XA                float64  `json:"xA"`
	Minutes           int      `json:"minutes_played"`
	Games             int      `json:"games"`
	TransferFeePaid   float64  `json:"transfer_fee_paid_eur_m,omitempty"`
	Source            string   `json:"source,omitempty"`

	// Not serialized, looked up from the league registry while normalizing.
	LeagueMultiplier float64 `json:"-"`
}

// XGI is the sum of expected goals and expected assists.
func (p *Player) XGI() float64 {
	return p.XG + p.XA
}

// IsHiddenGem reports whether the player plays outside of the top five leagues.
func (p *Player) IsHiddenGem() bool {
	return p.Tier >= 2
}

// SetLeague copies the league information onto the player.
func (p *Player) SetLeague(l *League) {
	if l == nil {
		return
	}
	p.League = l.Name
	p.Country = l.Country
	p.Tier = l.Tier
	p.LeagueMultiplier = l.Multiplier
}

func (p *Player) FormattedMarketValue() string {
	return FormatMillions(p.MarketValue)
}

func (p *Player) FormattedFairValue() string {
	return FormatMillions(p.FairValue)
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (%s, %s) fair %s / market %s", p.Name, p.Team, p.Position, p.FormattedFairValue(), p.FormattedMarketValue())
}

// FormatMillions formats a value in millions of euros, e.g. "€12.5m".
func FormatMillions(v float64) string {
	if v >= 1000 {
		return fmt.Sprintf("€%.2fbn", v/1000)
	}
	return fmt.Sprintf("€%.1fm", v)
}

// AgeFromBirthDate returns the age in whole years on the given day, or
// DefaultAge when the birth date cannot be parsed.
func AgeFromBirthDate(birthDate string, now time.Time) int {
	if birthDate == "" {
		return DefaultAge
	}
	if len(birthDate) > 10 {
		birthDate = birthDate[:10]
	}
	d, err := time.Parse(time.DateOnly, birthDate)
	if err != nil {
		return DefaultAge
	}

	age := now.Year() - d.Year()
	if now.Month() < d.Month() || (now.Month() == d.Month() && now.Day() < d.Day()) {
		age--
	}
	return age
}

type Change struct {
	Time         time.Time `json:"time"`
	PropertyName string    `json:"property"`
	OldValue     string    `json:"old"`
	NewValue     string    `json:"new"`
}

func (c *Change) String() string {
	return fmt.Sprintf("%s changed from '%s' to '%s'", c.PropertyName, c.OldValue, c.NewValue)
}

// Take a full name, like "Vinicius Junior Jr." and return "Vinicius Junior".
func TrimNameSuffix(fullName string) string {
	suffixList := []string{
		" Jr.",
		" Jr",
		" Sr.",
		" Sr",
		" III",
		" II",
		" IV",
	}

	fullName = strings.TrimSpace(fullName)
	for _, s := range suffixList {
		fullName = strings.TrimSuffix(fullName, s)
	}

	return strings.TrimSpace(fullName)
}
