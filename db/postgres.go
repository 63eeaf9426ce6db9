package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const DefaultRunLimit = 20

var (
	ErrPlayerNotFound error = errors.New("player not found")
)

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (db *postgresDB) Close() {
	db.pool.Close()
}

func (db *postgresDB) SaveRun(ctx context.Context, run *model.Run, players []model.Player) error {
	const insertRun = `INSERT INTO runs (source, season, total_players, created)
		VALUES (@source, @season, @totalPlayers, @created) RETURNING id, created`

	const insertRunPlayer = `INSERT INTO run_players (
		run_id,
		player,
		market_value_eur_m,
		fair_value_eur_m,
		undervaluation_pct,
		xgi_per_90
	) VALUES (
		@runID,
		@player,
		@marketValue,
		@fairValue,
		@undervaluationPct,
		@xgiPer90
	)`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{
		"source":       run.Source,
		"season":       run.Season,
		"totalPlayers": run.TotalPlayers,
		"created":      timestamp(db.clock),
	}
	var created pgtype.Timestamptz
	if err := tx.QueryRow(ctx, insertRun, args).Scan(&run.ID, &created); err != nil {
		return fmt.Errorf("error inserting run: %w", err)
	}
	run.Created = created.Time

	seen := make(map[string]bool, len(players))
	for i := range players {
		p := &players[i]
		key := model.NormalizeName(p.Name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		if err := db.savePlayer(ctx, tx, key, p); err != nil {
			return err
		}

		args := pgx.NamedArgs{
			"runID":             run.ID,
			"player":            key,
			"marketValue":       p.MarketValue,
			"fairValue":         p.FairValue,
			"undervaluationPct": p.UndervaluationPct,
			"xgiPer90":          p.XGIPer90,
		}
		if _, err := tx.Exec(ctx, insertRunPlayer, args); err != nil {
			return fmt.Errorf("error inserting run value for %s: %w", p.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error commiting run: %w", err)
	}
	return nil
}

func (db *postgresDB) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	const query = `SELECT id, source, season, total_players, created FROM runs
		ORDER BY created DESC, id DESC LIMIT @limit`

	if limit <= 0 {
		limit = DefaultRunLimit
	}
	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("error querying runs: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Run, error) {
		var r model.Run
		var created pgtype.Timestamptz
		err := row.Scan(&r.ID, &r.Source, &r.Season, &r.TotalPlayers, &created)
		r.Created = created.Time
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning runs: %w", err)
	}
	return results, nil
}

func (db *postgresDB) GetPlayerHistory(ctx context.Context, name string) (*model.PlayerHistory, error) {
	key := model.NormalizeName(name)
	h, err := getPlayer(ctx, db.pool, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, name)
		}
		return nil, err
	}

	if h.Changes, err = getChanges(ctx, db.pool, key); err != nil {
		return nil, fmt.Errorf("error looking up player changes for %s: %w", key, err)
	}
	if h.Values, err = db.getRunValues(ctx, key); err != nil {
		return nil, fmt.Errorf("error looking up run values for %s: %w", key, err)
	}
	return h, nil
}

func (db *postgresDB) savePlayer(ctx context.Context, tx pgx.Tx, key string, p *model.Player) error {
	old, err := getPlayer(ctx, tx, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// This is an insert
			if err := db.insertPlayer(ctx, tx, key, p); err != nil {
				return fmt.Errorf("error inserting player: %w", err)
			}
			return nil
		}
		return fmt.Errorf("error reading player %s: %w", key, err)
	}

	// This is an update, see what, if anything changed
	changes := calculateChanges(db.clock, old, p)
	if len(changes) == 0 {
		return nil
	}
	return db.updatePlayer(ctx, tx, key, p, changes)
}

func getPlayer(ctx context.Context, q querier, key string) (*model.PlayerHistory, error) {
	const query = `SELECT key, name, team, league, position, age,
						market_value_eur_m, fair_value_eur_m, created, updated
					FROM players WHERE key=@key`

	row := q.QueryRow(ctx, query, pgx.NamedArgs{"key": key})
	return scanPlayer(row)
}

func scanPlayer(row pgx.Row) (*model.PlayerHistory, error) {
	var result model.PlayerHistory
	var pos DBPosition
	var created, updated pgtype.Timestamptz
	err := row.Scan(
		&result.Key,
		&result.Name,
		&result.Team,
		&result.League,
		&pos,
		&result.Age,
		&result.MarketValue,
		&result.FairValue,
		&created,
		&updated)
	if err != nil {
		return nil, err
	}

	result.Position = pos.position
	result.Created = created.Time
	result.Updated = updated.Time
	return &result, nil
}

func getChanges(ctx context.Context, q querier, key string) ([]model.Change, error) {
	const query = `SELECT created, prop, old, new FROM player_changes WHERE player=@key ORDER BY created DESC, id DESC`

	rows, err := q.Query(ctx, query, pgx.NamedArgs{"key": key})
	if err != nil {
		return nil, err
	}
	changes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Change, error) {
		var created pgtype.Timestamptz
		c := model.Change{}
		err := row.Scan(&created, &c.PropertyName, &c.OldValue, &c.NewValue)
		c.Time = created.Time
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning player change: %w", err)
	}
	return changes, nil
}

func (db *postgresDB) getRunValues(ctx context.Context, key string) ([]model.RunValue, error) {
	const query = `SELECT r.id, r.created, p.market_value_eur_m, p.fair_value_eur_m,
						p.undervaluation_pct, p.xgi_per_90
					FROM run_players AS p INNER JOIN runs AS r ON p.run_id=r.id
					WHERE p.player=@key ORDER BY r.created DESC, r.id DESC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"key": key})
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.RunValue, error) {
		var v model.RunValue
		var created pgtype.Timestamptz
		err := row.Scan(&v.RunID, &created, &v.MarketValue, &v.FairValue, &v.UndervaluationPct, &v.XGIPer90)
		v.Created = created.Time
		return v, err
	})
}

func (db *postgresDB) insertPlayer(ctx context.Context, tx pgx.Tx, key string, p *model.Player) error {
	const query = `INSERT INTO players (
		key,
		name,
		team,
		league,
		position,
		age,
		market_value_eur_m,
		fair_value_eur_m,
		created
	) VALUES (
		@key,
		@name,
		@team,
		@league,
		@position,
		@age,
		@marketValue,
		@fairValue,
		@created
	)`

	args := namedArgsForPlayer(key, p, db.clock)
	args["created"] = timestamp(db.clock)
	if _, err := tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error inserting player(%s): %w", key, err)
	}
	return nil
}

func (db *postgresDB) updatePlayer(ctx context.Context, tx pgx.Tx, key string, p *model.Player, changes []model.Change) error {
	const update = `UPDATE players
		SET name=@name,
			team=@team,
			league=@league,
			position=@position,
			age=@age,
			market_value_eur_m=@marketValue,
			fair_value_eur_m=@fairValue,
			updated=@updated
		WHERE key=@key`

	const insertChange = `INSERT INTO player_changes(
		player,
		created,
		prop,
		old,
		new
	) VALUES (
		@playerKey,
		@created,
		@prop,
		@old,
		@new
	)`

	if _, err := tx.Exec(ctx, update, namedArgsForPlayer(key, p, db.clock)); err != nil {
		return fmt.Errorf("error updating player (%s): %w", key, err)
	}

	for _, change := range changes {
		if _, err := tx.Exec(ctx, insertChange, namedArgsForPlayerChange(key, &change)); err != nil {
			return fmt.Errorf("error inserting player change: %w", err)
		}
	}
	return nil
}

func calculateChanges(clock clock.Clock, old *model.PlayerHistory, p *model.Player) []model.Change {
	changes := make([]model.Change, 0, 2)

	changes = checkChange(changes, clock, "Team", old.Team, p.Team)
	changes = checkChange(changes, clock, "League", old.League, p.League)
	changes = checkChange(changes, clock, "Position", string(old.Position), string(p.Position))
	changes = checkChangeFloat(changes, clock, "MarketValue", old.MarketValue, p.MarketValue)
	changes = checkChangeFloat(changes, clock, "FairValue", old.FairValue, p.FairValue)
	changes = checkChange(changes, clock, "Age", strconv.Itoa(old.Age), strconv.Itoa(p.Age))
	return changes
}

func checkChange(changes []model.Change, clock clock.Clock, prop, old, new string) []model.Change {
	if old != new {
		c := model.Change{
			Time:         clock.Now().UTC(),
			PropertyName: prop,
			OldValue:     old,
			NewValue:     new,
		}
		changes = append(changes, c)
	}
	return changes
}

func checkChangeFloat(changes []model.Change, clock clock.Clock, prop string, old, new float64) []model.Change {
	return checkChange(changes, clock, prop, strconv.FormatFloat(old, 'f', 1, 64), strconv.FormatFloat(new, 'f', 1, 64))
}

func namedArgsForPlayer(key string, p *model.Player, clock clock.Clock) pgx.NamedArgs {
	return pgx.NamedArgs{
		"key":         key,
		"name":        p.Name,
		"team":        p.Team,
		"league":      p.League,
		"position":    &DBPosition{position: p.Position},
		"age":         p.Age,
		"marketValue": p.MarketValue,
		"fairValue":   p.FairValue,
		"updated":     timestamp(clock),
	}
}

func namedArgsForPlayerChange(key string, c *model.Change) pgx.NamedArgs {
	return pgx.NamedArgs{
		"playerKey": key,
		"created": pgtype.Timestamptz{
			Time:             c.Time,
			InfinityModifier: pgtype.Finite,
			Valid:            true,
		},
		"prop": c.PropertyName,
		"old":  c.OldValue,
		"new":  c.NewValue,
	}
}

func timestamp(clock clock.Clock) pgtype.Timestamptz {
	return pgtype.Timestamptz{
		Time:             clock.Now().UTC(),
		InfinityModifier: pgtype.Finite,
		Valid:            true,
	}
}

type DBPosition struct {
	position model.Position
}

func (p *DBPosition) ScanText(v pgtype.Text) error {
	p.position = model.ParsePosition(v.String)
	return nil
}

func (p *DBPosition) TextValue() (pgtype.Text, error) {
	pos := p.position
	if pos == "" {
		pos = model.POS_UNKNOWN
	}
	return pgtype.Text{
		String: string(pos),
		Valid:  true,
	}, nil
}
