package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/RealRedbaron07/scoutlens-app/controller"
	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/RealRedbaron07/scoutlens-app/ratelimit"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

//go:embed templates
var templates embed.FS

// Options configures the parts of the server that are not handled by the controller.
type Options struct {
	// Limits the /api routes. A nil limiter disables rate limiting.
	Limiter    ratelimit.Limiter
	RateWindow time.Duration

	// The /admin routes are only mounted when both are set.
	AdminUser     string
	AdminPassword string
}

type Server struct {
	server *http.Server
}

func NewServer(port int, ctrl controller.C, opts Options) (*Server, error) {
	if ctrl == nil {
		return nil, fmt.Errorf("a controller is required")
	}
	if opts.RateWindow <= 0 {
		opts.RateWindow = ratelimit.DefaultWindow
	}

	render := newRender()
	router := getRouter(ctrl, render, opts)

	s := &Server{
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		},
	}
	return s, nil
}

func (s *Server) ListenAndServe(shutdown chan bool, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()

		// Wait for the shutdown signal and safely close the server.
		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			logrus.WithError(err).Fatal("fatal error shutting down server")
		}
	}()

	logrus.Infof("web server is listening on %s", s.server.Addr)
	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logrus.WithError(err).Fatal("fatal error with server")
	}
}

func newRender() *render.Render {
	return render.New(render.Options{
		Directory: "templates",
		Layout:    "layout",
		FileSystem: &render.EmbedFileSystem{
			FS: templates,
		},
		Funcs: []template.FuncMap{
			{
				"date":     dateFormatter,
				"millions": model.FormatMillions,
				"pct":      pctFormatter,
				"per90":    per90Formatter,
			},
		},
	})
}

func dateFormatter(t time.Time) string {
	if t.IsZero() {
		return "Never"
	}
	return t.UTC().Format("2006-01-02 15:04 UTC")
}

func pctFormatter(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}

func per90Formatter(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
