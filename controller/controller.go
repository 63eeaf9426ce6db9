package controller

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/RealRedbaron07/scoutlens-app/db"
	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/RealRedbaron07/scoutlens-app/output"
	"github.com/RealRedbaron07/scoutlens-app/platforms/apifootball"
	"github.com/RealRedbaron07/scoutlens-app/platforms/fbref"
	"github.com/RealRedbaron07/scoutlens-app/platforms/footballdata"
	"github.com/RealRedbaron07/scoutlens-app/platforms/newsfeed"
	"github.com/RealRedbaron07/scoutlens-app/platforms/transfermarkt"
	"github.com/RealRedbaron07/scoutlens-app/platforms/understat"
	"github.com/RealRedbaron07/scoutlens-app/rumors"
	"github.com/itbasis/go-clock"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoPlayers         = errors.New("no players were loaded")
	ErrNoData            = errors.New("no player data has been loaded yet")
	ErrNoDatabase        = errors.New("no database is configured")
	ErrUnknownSource     = errors.New("unknown source")
	ErrSourceUnavailable = errors.New("source is not configured")
)

// C encapsulates business logic without worrying about any web or cli layers
type C interface {
	// Refresh fetches, values, and ranks the players of a source, then writes
	// the requested output files. The result becomes the current data.
	Refresh(ctx context.Context, opts RefreshOptions) (*RefreshResult, error)
	// Current returns the data of the last successful refresh.
	Current() (*model.PlayerData, error)
	RunScheduledRefresh(schedule string, opts RefreshOptions, shutdown chan bool, wg *sync.WaitGroup) error

	ListRumors(ctx context.Context) ([]model.Rumor, error)
	ActiveRumors(ctx context.Context) ([]model.Rumor, error)
	AddRumor(ctx context.Context, r rumors.NewRumor) (model.Rumor, error)
	// Updates a rumor with a list of "field=value" assignments.
	UpdateRumor(ctx context.Context, id string, assignments ...string) (model.Rumor, error)
	// Removes the expired rumors, returning how many were removed.
	CleanRumors(ctx context.Context) (int, error)
	// Reads the news feeds and adds the transfer stories not tracked yet.
	FetchRumors(ctx context.Context) (int, error)

	// Both need a database, ErrNoDatabase is returned otherwise.
	PlayerHistory(ctx context.Context, name string) (*model.PlayerHistory, error)
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)
}

// Sources holds the data source clients. A nil client means the source is not
// configured, refreshing from it returns ErrSourceUnavailable.
type Sources struct {
	FootballData  footballdata.Client
	APIFootball   apifootball.Client
	FBref         fbref.Client
	Understat     understat.Client
	Transfermarkt transfermarkt.Client
	News          newsfeed.Client
}

type Config struct {
	// Where the output files are written when a refresh does not name a directory.
	OutputDir string
	Formats   []output.Format
	Feeds     []newsfeed.Feed
}

type controller struct {
	clock   clock.Clock
	sources Sources
	tracker *rumors.Tracker
	db      db.DB
	cfg     Config

	mu      sync.RWMutex
	current *model.PlayerData
}

// New creates a controller. The db is optional and may be nil.
func New(clock clock.Clock, sources Sources, tracker *rumors.Tracker, db db.DB, cfg Config) (C, error) {
	if tracker == nil {
		return nil, errors.New("a rumor tracker is required")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if len(cfg.Formats) == 0 {
		cfg.Formats = []output.Format{output.FormatJS}
	}
	if len(cfg.Feeds) == 0 {
		cfg.Feeds = newsfeed.DefaultFeeds
	}

	c := &controller{
		clock:   clock,
		sources: sources,
		tracker: tracker,
		db:      db,
		cfg:     cfg,
	}
	c.restore()
	return c, nil
}

func (c *controller) Current() (*model.PlayerData, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return nil, ErrNoData
	}
	return c.current, nil
}

func (c *controller) setCurrent(d *model.PlayerData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = d
}

// restore picks up the JSON export of an earlier run so a restarted server
// has data to serve before its first refresh.
func (c *controller) restore() {
	path := filepath.Join(c.cfg.OutputDir, output.FileJSON)
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	d, err := output.ReadJSON(f)
	if err != nil {
		logrus.WithField("path", path).WithError(err).Warn("ignoring saved player data")
		return
	}
	c.setCurrent(d)
	logrus.WithFields(logrus.Fields{"path": path, "players": d.TotalPlayers}).Info("restored player data")
}

func (c *controller) PlayerHistory(ctx context.Context, name string) (*model.PlayerHistory, error) {
	if c.db == nil {
		return nil, ErrNoDatabase
	}
	return c.db.GetPlayerHistory(ctx, name)
}

func (c *controller) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if c.db == nil {
		return nil, ErrNoDatabase
	}
	runs, err := c.db.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing runs: %w", err)
	}
	return runs, nil
}
