package mockdb

import (
	"context"

	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/stretchr/testify/mock"
)

type DB struct {
	mock.Mock
}

func (db *DB) SaveRun(ctx context.Context, run *model.Run, players []model.Player) error {
	args := db.Called(ctx, run, players)
	return args.Error(0)
}

func (db *DB) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	args := db.Called(ctx, limit)

	var r []model.Run
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Run)
	}
	return r, args.Error(1)
}

func (db *DB) GetPlayerHistory(ctx context.Context, name string) (*model.PlayerHistory, error) {
	args := db.Called(ctx, name)

	var h *model.PlayerHistory
	if args.Get(0) != nil {
		h = args.Get(0).(*model.PlayerHistory)
	}
	return h, args.Error(1)
}

func (db *DB) Close() {
	db.Called()
}
