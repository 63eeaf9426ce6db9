package db

import (
	"context"

	"github.com/RealRedbaron07/scoutlens-app/model"
)

type DB interface {
	// SaveRun stores a refresh along with the valuation of every player in it.
	// Players are created the first time they are seen, after that changes to
	// their team, league, position, and values are recorded.
	SaveRun(ctx context.Context, run *model.Run, players []model.Player) error

	// Lists the most recent runs, at most limit of them. The most recent run is returned first.
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)

	// GetPlayerHistory looks a player up by name. The name is normalized, so
	// "Martin Ødegaard" and "martin odegaard" find the same player.
	GetPlayerHistory(ctx context.Context, name string) (*model.PlayerHistory, error)

	Close()
}
