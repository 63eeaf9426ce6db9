package output

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/RealRedbaron07/scoutlens-app/model"
	_ "github.com/glebarez/go-sqlite"
)

const sqliteSchema = `
DROP TABLE IF EXISTS players;
DROP TABLE IF EXISTS run_info;
CREATE TABLE players (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	team TEXT,
	league TEXT,
	country TEXT,
	tier INTEGER,
	position TEXT,
	age INTEGER,
	nationality TEXT,
	minutes_played INTEGER,
	games INTEGER,
	goals INTEGER,
	assists INTEGER,
	penalties INTEGER,
	xg REAL,
	xa REAL,
	xgi_per_90 REAL,
	xg_per_90 REAL,
	xa_per_90 REAL,
	goals_per_90 REAL,
	overperformance REAL,
	market_value_eur_m REAL,
	value_source TEXT,
	fair_value_eur_m REAL,
	undervaluation_pct REAL,
	undervaluation_eur_m REAL,
	transfer_fee_paid_eur_m REAL,
	source TEXT
);
CREATE TABLE run_info (
	last_updated TEXT,
	data_source TEXT,
	season TEXT,
	total_players INTEGER
);`

const insertPlayer = `INSERT INTO players (
	id, name, team, league, country, tier, position, age, nationality,
	minutes_played, games, goals, assists, penalties, xg, xa,
	xgi_per_90, xg_per_90, xa_per_90, goals_per_90, overperformance,
	market_value_eur_m, value_source, fair_value_eur_m,
	undervaluation_pct, undervaluation_eur_m, transfer_fee_paid_eur_m, source
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// WriteSQLite replaces the players table of the database at path with the
// players of the run.
func WriteSQLite(ctx context.Context, path string, data *model.PlayerData) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("error opening sqlite database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("error creating sqlite tables: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting sqlite transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertPlayer)
	if err != nil {
		return fmt.Errorf("error preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := range data.Players {
		p := &data.Players[i]
		_, err := stmt.ExecContext(ctx,
			p.ID, p.Name, p.Team, p.League, p.Country, p.Tier, string(p.Position), p.Age, p.Nationality,
			p.Minutes, p.Games, p.Goals, p.Assists, p.Penalties, p.XG, p.XA,
			p.XGIPer90, p.XGPer90, p.XAPer90, p.GoalsPer90, p.Overperformance,
			p.MarketValue, p.ValueSource, p.FairValue,
			p.UndervaluationPct, p.UndervaluationEUR, p.TransferFeePaid, p.Source)
		if err != nil {
			return fmt.Errorf("error inserting %s: %w", p.Name, err)
		}
	}

	_, err = tx.ExecContext(ctx, "INSERT INTO run_info (last_updated, data_source, season, total_players) VALUES (?, ?, ?, ?)",
		data.LastUpdated, data.DataSource, data.Season, data.TotalPlayers)
	if err != nil {
		return fmt.Errorf("error inserting run info: %w", err)
	}

	return tx.Commit()
}
