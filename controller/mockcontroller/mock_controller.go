package mockcontroller

import (
	"context"
	"sync"

	"github.com/RealRedbaron07/scoutlens-app/controller"
	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/RealRedbaron07/scoutlens-app/rumors"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) Refresh(ctx context.Context, opts controller.RefreshOptions) (*controller.RefreshResult, error) {
	args := c.Called(ctx, opts)

	var r *controller.RefreshResult
	if args.Get(0) != nil {
		r = args.Get(0).(*controller.RefreshResult)
	}
	return r, args.Error(1)
}

func (c *C) Current() (*model.PlayerData, error) {
	args := c.Called()

	var d *model.PlayerData
	if args.Get(0) != nil {
		d = args.Get(0).(*model.PlayerData)
	}
	return d, args.Error(1)
}

func (c *C) RunScheduledRefresh(schedule string, opts controller.RefreshOptions, shutdown chan bool, wg *sync.WaitGroup) error {
	args := c.Called(schedule, opts, shutdown, wg)
	return args.Error(0)
}

func (c *C) ListRumors(ctx context.Context) ([]model.Rumor, error) {
	args := c.Called(ctx)
	return rumorsArg(args, 0), args.Error(1)
}

func (c *C) ActiveRumors(ctx context.Context) ([]model.Rumor, error) {
	args := c.Called(ctx)
	return rumorsArg(args, 0), args.Error(1)
}

func (c *C) AddRumor(ctx context.Context, r rumors.NewRumor) (model.Rumor, error) {
	args := c.Called(ctx, r)
	return args.Get(0).(model.Rumor), args.Error(1)
}

func (c *C) UpdateRumor(ctx context.Context, id string, assignments ...string) (model.Rumor, error) {
	args := c.Called(ctx, id, assignments)
	return args.Get(0).(model.Rumor), args.Error(1)
}

func (c *C) CleanRumors(ctx context.Context) (int, error) {
	args := c.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (c *C) FetchRumors(ctx context.Context) (int, error) {
	args := c.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (c *C) PlayerHistory(ctx context.Context, name string) (*model.PlayerHistory, error) {
	args := c.Called(ctx, name)

	var h *model.PlayerHistory
	if args.Get(0) != nil {
		h = args.Get(0).(*model.PlayerHistory)
	}
	return h, args.Error(1)
}

func (c *C) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	args := c.Called(ctx, limit)

	var r []model.Run
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Run)
	}
	return r, args.Error(1)
}

func rumorsArg(args mock.Arguments, i int) []model.Rumor {
	var r []model.Rumor
	if args.Get(i) != nil {
		r = args.Get(i).([]model.Rumor)
	}
	return r
}
