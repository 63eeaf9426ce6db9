package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	DefaultRefreshSchedule = "0 6 * * *"

	refreshTimeout = 20 * time.Minute
)

// RunScheduledRefresh refreshes the data, and then the rumors, every time the
// cron schedule fires until shutdown is closed. It returns right away, the
// scheduler runs in the background and calls wg.Done once stopped.
func (c *controller) RunScheduledRefresh(schedule string, opts RefreshOptions, shutdown chan bool, wg *sync.WaitGroup) error {
	if schedule == "" {
		schedule = DefaultRefreshSchedule
	}

	cr := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	id, err := cr.AddFunc(schedule, func() { c.scheduledRefresh(opts) })
	if err != nil {
		return fmt.Errorf("invalid refresh schedule '%s': %w", schedule, err)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()

		cr.Start()
		logrus.WithFields(logrus.Fields{
			"schedule": schedule,
			"next":     cr.Entry(id).Next.Format(time.DateTime),
		}).Info("refresh scheduler started")

		<-shutdown
		// Wait for a running refresh to finish.
		<-cr.Stop().Done()
		logrus.Info("refresh scheduler stopped")
	}()
	return nil
}

func (c *controller) scheduledRefresh(opts RefreshOptions) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if _, err := c.Refresh(ctx, opts); err != nil {
		logrus.WithField("source", opts.Source).WithError(err).Error("scheduled refresh failed")
	}

	if _, err := c.CleanRumors(ctx); err != nil {
		logrus.WithError(err).Error("scheduled rumor clean failed")
	}
	if _, err := c.FetchRumors(ctx); err != nil && !errors.Is(err, ErrSourceUnavailable) {
		logrus.WithError(err).Error("scheduled rumor fetch failed")
	}
}
