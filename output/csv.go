package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/RealRedbaron07/scoutlens-app/model"
)

var csvColumns = []string{
	"id", "name", "team", "league", "country", "tier", "position", "age", "nationality",
	"minutes_played", "games", "goals", "assists", "penalties", "xG", "xA",
	"xgi_per_90", "xg_per_90", "xa_per_90", "goals_per_90", "overperformance",
	"market_value_eur_m", "value_source", "fair_value_eur_m",
	"undervaluation_pct", "undervaluation_eur_m", "transfer_fee_paid_eur_m", "source",
}

func WriteCSV(w io.Writer, players []model.Player) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return err
	}
	for i := range players {
		if err := cw.Write(csvRow(&players[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(p *model.Player) []string {
	return []string{
		strconv.Itoa(p.ID),
		p.Name,
		p.Team,
		p.League,
		p.Country,
		strconv.Itoa(p.Tier),
		string(p.Position),
		strconv.Itoa(p.Age),
		p.Nationality,
		strconv.Itoa(p.Minutes),
		strconv.Itoa(p.Games),
		strconv.Itoa(p.Goals),
		strconv.Itoa(p.Assists),
		strconv.Itoa(p.Penalties),
		formatFloat(p.XG),
		formatFloat(p.XA),
		formatFloat(p.XGIPer90),
		formatFloat(p.XGPer90),
		formatFloat(p.XAPer90),
		formatFloat(p.GoalsPer90),
		formatFloat(p.Overperformance),
		formatFloat(p.MarketValue),
		p.ValueSource,
		formatFloat(p.FairValue),
		formatFloat(p.UndervaluationPct),
		formatFloat(p.UndervaluationEUR),
		formatFloat(p.TransferFeePaid),
		p.Source,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
