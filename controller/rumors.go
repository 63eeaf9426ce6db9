package controller

import (
	"context"
	"fmt"

	"github.com/RealRedbaron07/scoutlens-app/metrics"
	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/RealRedbaron07/scoutlens-app/rumors"
	"github.com/sirupsen/logrus"
)

// At most this many new rumors are taken from a single feed per fetch.
const rumorsPerFeed = 5

func (c *controller) ListRumors(ctx context.Context) ([]model.Rumor, error) {
	return c.tracker.List()
}

func (c *controller) ActiveRumors(ctx context.Context) ([]model.Rumor, error) {
	return c.tracker.Active()
}

func (c *controller) AddRumor(ctx context.Context, r rumors.NewRumor) (model.Rumor, error) {
	return c.tracker.Add(r)
}

func (c *controller) UpdateRumor(ctx context.Context, id string, assignments ...string) (model.Rumor, error) {
	return c.tracker.Update(id, assignments...)
}

func (c *controller) CleanRumors(ctx context.Context) (int, error) {
	removed, err := c.tracker.Clean()
	if err != nil {
		return 0, err
	}
	logrus.WithField("removed", removed).Info("cleaned expired rumors")
	return removed, nil
}

func (c *controller) FetchRumors(ctx context.Context) (int, error) {
	if c.sources.News == nil {
		return 0, fmt.Errorf("%w: news feeds", ErrSourceUnavailable)
	}

	now := c.clock.Now()
	candidates := make([]model.Rumor, 0, len(c.cfg.Feeds)*rumorsPerFeed)
	for _, feed := range c.cfg.Feeds {
		items, err := c.sources.News.LoadItems(ctx, feed)
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			logrus.WithField("feed", feed.Name).WithError(err).Warn("skipping feed")
			continue
		}

		found := 0
		for _, item := range items {
			if found == rumorsPerFeed {
				break
			}
			r, ok := rumors.FromNewsItem(item, now)
			if !ok {
				continue
			}
			candidates = append(candidates, r)
			found++
		}
		logrus.WithFields(logrus.Fields{"feed": feed.Name, "items": len(items), "rumors": found}).Debug("feed read")
	}

	added, err := c.tracker.Import(candidates)
	if err != nil {
		return 0, err
	}
	metrics.RumorsImported.Add(float64(added))
	logrus.WithFields(logrus.Fields{"candidates": len(candidates), "added": added}).Info("imported rumors")
	return added, nil
}
