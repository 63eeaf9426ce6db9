package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownLeague = errors.New("unknown league")

// League describes a competition, how strongly it is weighted when valuing
// players, and how each data source identifies it. Source ids are empty (or
// zero) when the source does not cover the league.
type League struct {
	Key        string
	Name       string
	Country    string
	Tier       int
	Multiplier float64

	FootballDataCode string
	TransfermarktID  string
	APIFootballID    int
	UnderstatID      string
	FBrefID          int
	FBrefSlug        string
}

func (l *League) String() string {
	return l.Name
}

func (l *League) Equals(o *League) bool {
	if o == nil {
		return false
	}
	return l == o || l.Key == o.Key
}

var (
	// Tier 1
	LEAGUE_EPL        = &League{Key: "EPL", Name: "Premier League", Country: "England", Tier: 1, Multiplier: 2.0, FootballDataCode: "PL", TransfermarktID: "GB1", APIFootballID: 39, UnderstatID: "EPL", FBrefID: 9, FBrefSlug: "Premier-League"}
	LEAGUE_LALIGA     = &League{Key: "La_Liga", Name: "La Liga", Country: "Spain", Tier: 1, Multiplier: 1.4, FootballDataCode: "PD", TransfermarktID: "ES1", APIFootballID: 140, UnderstatID: "La_liga", FBrefID: 12, FBrefSlug: "La-Liga"}
	LEAGUE_BUNDESLIGA = &League{Key: "Bundesliga", Name: "Bundesliga", Country: "Germany", Tier: 1, Multiplier: 1.3, FootballDataCode: "BL1", TransfermarktID: "L1", APIFootballID: 78, UnderstatID: "Bundesliga", FBrefID: 20, FBrefSlug: "Bundesliga"}
	LEAGUE_SERIEA     = &League{Key: "Serie_A", Name: "Serie A", Country: "Italy", Tier: 1, Multiplier: 1.2, FootballDataCode: "SA", TransfermarktID: "IT1", APIFootballID: 135, UnderstatID: "Serie_A", FBrefID: 11, FBrefSlug: "Serie-A"}
	LEAGUE_LIGUE1     = &League{Key: "Ligue_1", Name: "Ligue 1", Country: "France", Tier: 1, Multiplier: 1.1, FootballDataCode: "FL1", TransfermarktID: "FR1", APIFootballID: 61, UnderstatID: "Ligue_1", FBrefID: 13, FBrefSlug: "Ligue-1"}

	// Tier 2
	LEAGUE_EREDIVISIE    = &League{Key: "Eredivisie", Name: "Eredivisie", Country: "Netherlands", Tier: 2, Multiplier: 0.7, FootballDataCode: "DED", TransfermarktID: "NL1", APIFootballID: 88, FBrefID: 23, FBrefSlug: "Eredivisie"}
	LEAGUE_PRIMEIRA      = &League{Key: "Primeira_Liga", Name: "Primeira Liga", Country: "Portugal", Tier: 2, Multiplier: 0.65, FootballDataCode: "PPL", TransfermarktID: "PO1", APIFootballID: 94, FBrefID: 32, FBrefSlug: "Primeira-Liga"}
	LEAGUE_BELGIUM       = &League{Key: "Belgian_Pro_League", Name: "Belgian Pro League", Country: "Belgium", Tier: 2, Multiplier: 0.55, TransfermarktID: "BE1", APIFootballID: 144, FBrefID: 37, FBrefSlug: "Belgian-Pro-League"}
	LEAGUE_SCOTLAND      = &League{Key: "Scottish_Premiership", Name: "Scottish Premiership", Country: "Scotland", Tier: 2, Multiplier: 0.5, TransfermarktID: "SC1", APIFootballID: 179, FBrefID: 40, FBrefSlug: "Scottish-Premiership"}
	LEAGUE_AUSTRIA       = &League{Key: "Austrian_Bundesliga", Name: "Austrian Bundesliga", Country: "Austria", Tier: 2, Multiplier: 0.45, TransfermarktID: "A1", APIFootballID: 218, FBrefID: 56, FBrefSlug: "Austrian-Bundesliga"}
	LEAGUE_SWITZERLAND   = &League{Key: "Swiss_Super_League", Name: "Swiss Super League", Country: "Switzerland", Tier: 2, Multiplier: 0.45, TransfermarktID: "C1", APIFootballID: 207, FBrefID: 57, FBrefSlug: "Swiss-Super-League"}
	LEAGUE_CHAMPIONSHIP  = &League{Key: "Championship", Name: "Championship", Country: "England", Tier: 3, Multiplier: 0.6, FootballDataCode: "ELC", TransfermarktID: "GB2", APIFootballID: 40, FBrefID: 10, FBrefSlug: "Championship"}
	LEAGUE_LALIGA2       = &League{Key: "La_Liga_2", Name: "La Liga 2", Country: "Spain", Tier: 3, Multiplier: 0.4, TransfermarktID: "ES2", APIFootballID: 141, FBrefID: 17, FBrefSlug: "Segunda-Division"}
	LEAGUE_BUNDESLIGA2   = &League{Key: "2_Bundesliga", Name: "2. Bundesliga", Country: "Germany", Tier: 3, Multiplier: 0.45, TransfermarktID: "L2", APIFootballID: 79, FBrefID: 33, FBrefSlug: "2-Bundesliga"}
	LEAGUE_SERIEB        = &League{Key: "Serie_B", Name: "Serie B", Country: "Italy", Tier: 3, Multiplier: 0.35, TransfermarktID: "IT2", APIFootballID: 136, FBrefID: 18, FBrefSlug: "Serie-B"}
	LEAGUE_LIGUE2        = &League{Key: "Ligue_2", Name: "Ligue 2", Country: "France", Tier: 3, Multiplier: 0.35, TransfermarktID: "FR2", APIFootballID: 62, FBrefID: 60, FBrefSlug: "Ligue-2"}
	LEAGUE_MLS           = &League{Key: "MLS", Name: "MLS", Country: "USA", Tier: 3, Multiplier: 0.4, TransfermarktID: "MLS1", APIFootballID: 253, FBrefID: 22, FBrefSlug: "Major-League-Soccer"}
	LEAGUE_BRASILEIRAO   = &League{Key: "Brasileirao", Name: "Brasileirão", Country: "Brazil", Tier: 3, Multiplier: 0.5, FootballDataCode: "BSA", TransfermarktID: "BRA1", APIFootballID: 71, FBrefID: 24, FBrefSlug: "Serie-A"}
	LEAGUE_ARGENTINA     = &League{Key: "Argentine_Primera", Name: "Liga Profesional", Country: "Argentina", Tier: 3, Multiplier: 0.45, TransfermarktID: "AR1N", APIFootballID: 128, FBrefID: 21, FBrefSlug: "Primera-Division"}
	LEAGUE_J1            = &League{Key: "J1_League", Name: "J1 League", Country: "Japan", Tier: 4, Multiplier: 0.35, TransfermarktID: "JAP1", APIFootballID: 98, FBrefID: 25, FBrefSlug: "J1-League"}
	LEAGUE_KLEAGUE       = &League{Key: "K_League_1", Name: "K League 1", Country: "South Korea", Tier: 4, Multiplier: 0.3, TransfermarktID: "RSK1", APIFootballID: 292, FBrefID: 55, FBrefSlug: "K-League-1"}
	LEAGUE_SAUDI         = &League{Key: "Saudi_Pro_League", Name: "Saudi Pro League", Country: "Saudi Arabia", Tier: 4, Multiplier: 0.4, TransfermarktID: "SA1", APIFootballID: 307, FBrefID: 70, FBrefSlug: "Saudi-Professional-League"}
	LEAGUE_TURKEY        = &League{Key: "Super_Lig", Name: "Süper Lig", Country: "Turkey", Tier: 4, Multiplier: 0.45, TransfermarktID: "TR1", APIFootballID: 203, FBrefID: 26, FBrefSlug: "Super-Lig"}
	LEAGUE_GREECE        = &League{Key: "Greek_Super_League", Name: "Super League Greece", Country: "Greece", Tier: 4, Multiplier: 0.35, TransfermarktID: "GR1", APIFootballID: 197, FBrefID: 27, FBrefSlug: "Super-League-Greece"}
	LEAGUE_CZECHIA       = &League{Key: "Czech_First_League", Name: "Czech First League", Country: "Czech Republic", Tier: 4, Multiplier: 0.3, TransfermarktID: "TS1", APIFootballID: 345, FBrefID: 66, FBrefSlug: "Czech-First-League"}
	LEAGUE_DENMARK       = &League{Key: "Danish_Superliga", Name: "Danish Superliga", Country: "Denmark", Tier: 4, Multiplier: 0.35, TransfermarktID: "DK1", APIFootballID: 119, FBrefID: 50, FBrefSlug: "Danish-Superliga"}
	LEAGUE_NORWAY        = &League{Key: "Eliteserien", Name: "Eliteserien", Country: "Norway", Tier: 4, Multiplier: 0.35, TransfermarktID: "NO1", APIFootballID: 103, FBrefID: 28, FBrefSlug: "Eliteserien"}
	LEAGUE_SWEDEN        = &League{Key: "Allsvenskan", Name: "Allsvenskan", Country: "Sweden", Tier: 4, Multiplier: 0.35, TransfermarktID: "SE1", APIFootballID: 113, FBrefID: 29, FBrefSlug: "Allsvenskan"}
	LEAGUE_CROATIA       = &League{Key: "HNL", Name: "HNL", Country: "Croatia", Tier: 4, Multiplier: 0.3, TransfermarktID: "KR1", APIFootballID: 210, FBrefID: 63, FBrefSlug: "Hrvatska-NL"}
	LEAGUE_SERBIA        = &League{Key: "Serbian_SuperLiga", Name: "Serbian SuperLiga", Country: "Serbia", Tier: 4, Multiplier: 0.3, TransfermarktID: "SER1", APIFootballID: 286, FBrefID: 54, FBrefSlug: "Serbian-SuperLiga"}
	LEAGUE_UKRAINE       = &League{Key: "Ukrainian_Premier_League", Name: "Ukrainian Premier League", Country: "Ukraine", Tier: 4, Multiplier: 0.35, TransfermarktID: "UKR1", APIFootballID: 333, FBrefID: 39, FBrefSlug: "Ukrainian-Premier-League"}
)

// The registry order is the order leagues are fetched in.
var leagues = []*League{
	LEAGUE_EPL, LEAGUE_LALIGA, LEAGUE_BUNDESLIGA, LEAGUE_SERIEA, LEAGUE_LIGUE1,
	LEAGUE_EREDIVISIE, LEAGUE_PRIMEIRA, LEAGUE_BELGIUM, LEAGUE_SCOTLAND, LEAGUE_AUSTRIA, LEAGUE_SWITZERLAND,
	LEAGUE_CHAMPIONSHIP, LEAGUE_LALIGA2, LEAGUE_BUNDESLIGA2, LEAGUE_SERIEB, LEAGUE_LIGUE2, LEAGUE_MLS, LEAGUE_BRASILEIRAO, LEAGUE_ARGENTINA,
	LEAGUE_J1, LEAGUE_KLEAGUE, LEAGUE_SAUDI, LEAGUE_TURKEY, LEAGUE_GREECE, LEAGUE_CZECHIA, LEAGUE_DENMARK,
	LEAGUE_NORWAY, LEAGUE_SWEDEN, LEAGUE_CROATIA, LEAGUE_SERBIA, LEAGUE_UKRAINE,
}

// AllLeagues returns every known league, top tier first.
func AllLeagues() []*League {
	result := make([]*League, len(leagues))
	copy(result, leagues)
	return result
}

// LeaguesForTier returns the leagues of a single tier.
func LeaguesForTier(tier int) []*League {
	result := make([]*League, 0, 12)
	for _, l := range leagues {
		if l.Tier == tier {
			result = append(result, l)
		}
	}
	return result
}

// ParseLeague looks a league up by key, name, or football-data code. Case,
// spaces, dashes and underscores are ignored.
func ParseLeague(s string) (*League, error) {
	k := leagueKey(s)
	if k == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownLeague)
	}
	for _, l := range leagues {
		if leagueKey(l.Key) == k || leagueKey(l.Name) == k || (l.FootballDataCode != "" && leagueKey(l.FootballDataCode) == k) {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownLeague, s)
}

// LeagueByFootballDataCode returns nil when no league has the code.
func LeagueByFootballDataCode(code string) *League {
	for _, l := range leagues {
		if l.FootballDataCode != "" && strings.EqualFold(l.FootballDataCode, code) {
			return l
		}
	}
	return nil
}

func leagueKey(s string) string {
	r := strings.NewReplacer("_", "", "-", "", " ", "", ".", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(s)))
}
