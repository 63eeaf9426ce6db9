package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/RealRedbaron07/scoutlens-app/controller"
	"github.com/RealRedbaron07/scoutlens-app/platforms"
	"github.com/RealRedbaron07/scoutlens-app/ratelimit"
	"github.com/RealRedbaron07/scoutlens-app/web"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		port     int
		source   string
		schedule string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the player data and refresh it on a schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == 0 {
				port = a.cfg.Port
			}
			if !cmd.Flags().Changed("schedule") {
				schedule = a.cfg.RefreshSchedule
			}

			ctx := cmd.Context()
			d, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			if d != nil {
				defer d.Close()
			}

			ctrl, err := a.newController(a.newSources(a.cfg.FootballDataKey, a.cfg.APIFootballKey), d, "")
			if err != nil {
				return err
			}

			limiter, closeLimiter := a.newLimiter(ctx)
			defer closeLimiter()

			server, err := web.NewServer(port, ctrl, web.Options{
				Limiter:       limiter,
				RateWindow:    ratelimit.DefaultWindow,
				AdminUser:     a.cfg.AdminUser,
				AdminPassword: a.cfg.AdminPassword,
			})
			if err != nil {
				return err
			}

			shutdown := make(chan bool)
			wg := &sync.WaitGroup{}

			// Setup a handler to catch ctrl-c signals and properly shutdown everything.
			intChannel := make(chan os.Signal, 2)
			signal.Notify(intChannel, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-intChannel
				close(shutdown)

				if err := waitTimeout(wg, 10*time.Second); err != nil {
					logrus.Error("timed out waiting for proper shutdown")
					os.Exit(255)
				}
			}()

			if schedule != "" {
				opts := controller.RefreshOptions{
					Source:  source,
					Season:  a.cfg.Season,
					Command: "scheduled refresh",
				}
				if err := ctrl.RunScheduledRefresh(schedule, opts, shutdown, wg); err != nil {
					return err
				}
			} else {
				logrus.Info("scheduled refresh is disabled")
			}

			// Start the web server
			wg.Add(1)
			go server.ListenAndServe(shutdown, wg)

			// Wait for everything to stop.
			wg.Wait()
			logrus.Info("server shutdown")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&port, "port", 0, "port to listen on (default from PORT or 3000)")
	flags.StringVar(&source, "source", platforms.SourceFootballData, "source of the scheduled refresh")
	flags.StringVar(&schedule, "schedule", "", "cron schedule of the refresh, empty disables it (default from REFRESH_SCHEDULE)")
	return cmd
}

// newLimiter uses redis when it is configured and reachable, and limits in
// memory otherwise.
func (a *app) newLimiter(ctx context.Context) (ratelimit.Limiter, func()) {
	if a.cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		l, err := ratelimit.NewRedis(ctx, a.cfg.RedisURL, a.cfg.RateLimit, ratelimit.DefaultWindow)
		if err == nil {
			logrus.Info("rate limiting with redis")
			return l, func() { l.Close() }
		}
		logrus.WithError(err).Warn("redis is unavailable, rate limiting in memory")
	}
	return ratelimit.NewMemory(a.clock, a.cfg.RateLimit, ratelimit.DefaultWindow), func() {}
}
