package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/RealRedbaron07/scoutlens-app/config"
	"github.com/RealRedbaron07/scoutlens-app/controller"
	"github.com/RealRedbaron07/scoutlens-app/db"
	"github.com/RealRedbaron07/scoutlens-app/platforms"
	"github.com/RealRedbaron07/scoutlens-app/platforms/apifootball"
	"github.com/RealRedbaron07/scoutlens-app/platforms/fbref"
	"github.com/RealRedbaron07/scoutlens-app/platforms/footballdata"
	"github.com/RealRedbaron07/scoutlens-app/platforms/newsfeed"
	"github.com/RealRedbaron07/scoutlens-app/platforms/transfermarkt"
	"github.com/RealRedbaron07/scoutlens-app/platforms/understat"
	"github.com/RealRedbaron07/scoutlens-app/rumors"
	"github.com/itbasis/go-clock"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app holds what every command shares. cfg is loaded before a command runs
// unless it has been set already.
type app struct {
	cfg   *config.Config
	clock clock.Clock
	out   io.Writer

	// Replaced in tests.
	newSources func(footballDataKey, apiFootballKey string) controller.Sources
	newNews    func() (newsfeed.Client, error)
}

func main() {
	a := &app{clock: clock.New(), out: os.Stdout}
	a.newSources = a.liveSources
	a.newNews = func() (newsfeed.Client, error) { return newsfeed.New(a.clock) }

	if err := newRootCmd(a).Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func newRootCmd(a *app) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "scoutlens",
		Short:         "Find undervalued football players",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			if a.cfg != nil {
				return nil
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.out)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages")

	root.AddCommand(newFetchCmd(a), newRumorsCmd(a), newServeCmd(a))

	return root
}

// liveSources creates a client for every source that can be used. A source
// without an api key is left out with a warning.
func (a *app) liveSources(footballDataKey, apiFootballKey string) controller.Sources {
	var s controller.Sources
	var err error

	if s.FootballData, err = footballdata.New(footballDataKey, a.clock); err != nil {
		logSourceSkipped(platforms.SourceFootballData, err)
	}
	if s.APIFootball, err = apifootball.New(apiFootballKey, a.clock); err != nil {
		logSourceSkipped(platforms.SourceAPIFootball, err)
	}
	if s.FBref, err = fbref.New(a.clock); err != nil {
		logSourceSkipped(platforms.SourceFBref, err)
	}
	if s.Understat, err = understat.New(); err != nil {
		logSourceSkipped(platforms.SourceUnderstat, err)
	}
	if s.Transfermarkt, err = transfermarkt.New(a.clock); err != nil {
		logSourceSkipped(platforms.SourceTransfermarkt, err)
	}
	if s.News, err = a.newNews(); err != nil {
		logSourceSkipped("news", err)
	}
	return s
}

func logSourceSkipped(source string, err error) {
	entry := logrus.WithField("source", source)
	if errors.Is(err, platforms.ErrMissingAPIKey) {
		entry.Warn("no api key, source disabled")
		return
	}
	entry.WithError(err).Warn("error creating client, source disabled")
}

// openDB connects to postgres when it is configured, otherwise it returns nil.
func (a *app) openDB(ctx context.Context) (db.DB, error) {
	if a.cfg.PostgresConnString == "" {
		return nil, nil
	}
	d, err := db.New(ctx, a.cfg.PostgresConnString, a.clock)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to DB: %w", err)
	}
	return d, nil
}

func (a *app) newController(sources controller.Sources, d db.DB, outputDir string) (controller.C, error) {
	cfg := controller.Config{OutputDir: outputDir}
	if outputDir == "" {
		cfg.OutputDir = a.cfg.OutputDir
	}
	if a.cfg.NewsFeeds != "" {
		cfg.Feeds = newsfeed.ParseFeeds(a.cfg.NewsFeeds)
	}

	tracker := rumors.New(a.cfg.RumorsFile, a.clock)
	ctrl, err := controller.New(a.clock, sources, tracker, d, cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating a new controller: %w", err)
	}
	return ctrl, nil
}

func commandLine() string {
	return "scoutlens " + strings.Join(os.Args[1:], " ")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
