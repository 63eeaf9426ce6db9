package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/RealRedbaron07/scoutlens-app/controller"
	"github.com/RealRedbaron07/scoutlens-app/db"
	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/RealRedbaron07/scoutlens-app/output"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 100
	indexListSize    = 10
)

type errorResponse struct {
	Error string `json:"error"`
}

type refreshResponse struct {
	DataSource   string     `json:"dataSource"`
	TotalPlayers int        `json:"totalPlayers"`
	Files        []string   `json:"files"`
	Run          *model.Run `json:"run,omitempty"`
}

type indexPage struct {
	Data    *model.PlayerData
	Updated time.Time
	Rumors  []model.Rumor
}

func jsonError(render *render.Render, w http.ResponseWriter, status int, err error) {
	render.JSON(w, status, errorResponse{Error: err.Error()})
}

func rootHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := indexPage{}

		d, err := ctrl.Current()
		if err != nil && !errors.Is(err, controller.ErrNoData) {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}
		if d != nil {
			page.Data = shorten(d, indexListSize)
			page.Updated = d.Updated()
		}

		rumors, err := ctrl.ActiveRumors(r.Context())
		if err != nil {
			// The page is still useful without the rumors.
			logrus.WithError(err).Warn("error listing rumors")
		}
		page.Rumors = rumors

		render.HTML(w, http.StatusOK, "index", page)
	}
}

// shorten returns a copy of d with every category cut to n players.
func shorten(d *model.PlayerData, n int) *model.PlayerData {
	cut := func(p []model.Player) []model.Player {
		if len(p) > n {
			return p[:n]
		}
		return p
	}

	s := *d
	s.Undervalued = cut(d.Undervalued)
	s.TopPerformers = cut(d.TopPerformers)
	s.RisingStars = cut(d.RisingStars)
	s.HiddenGems = cut(d.HiddenGems)
	s.Bargains = cut(d.Bargains)
	return &s
}

func notFoundHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.HTML(w, http.StatusNotFound, "404", fmt.Sprintf("%s was not found", r.URL.Path))
	}
}

func playersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := ctrl.Current()
		if err != nil {
			if errors.Is(err, controller.ErrNoData) {
				jsonError(render, w, http.StatusServiceUnavailable, err)
			} else {
				jsonError(render, w, http.StatusInternalServerError, err)
			}
			return
		}
		render.JSON(w, http.StatusOK, d)
	}
}

func playerDataJSHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := ctrl.Current()
		if err != nil {
			if errors.Is(err, controller.ErrNoData) {
				render.Text(w, http.StatusServiceUnavailable, err.Error())
			} else {
				render.Text(w, http.StatusInternalServerError, err.Error())
			}
			return
		}

		w.Header().Set("Content-Type", "application/javascript; charset=UTF-8")
		w.WriteHeader(http.StatusOK)
		if err := output.WriteJS(w, d, output.Header{Generated: d.Updated(), Command: "scoutlens serve"}); err != nil {
			logrus.WithError(err).Error("error writing player_data.js")
		}
	}
}

func playerHistoryHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		h, err := ctrl.PlayerHistory(r.Context(), key)
		if err != nil {
			switch {
			case errors.Is(err, controller.ErrNoDatabase):
				jsonError(render, w, http.StatusServiceUnavailable, err)
			case errors.Is(err, db.ErrPlayerNotFound):
				jsonError(render, w, http.StatusNotFound, err)
			default:
				jsonError(render, w, http.StatusInternalServerError, err)
			}
			return
		}
		render.JSON(w, http.StatusOK, h)
	}
}

func rumorsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rumors, err := ctrl.ActiveRumors(r.Context())
		if err != nil {
			jsonError(render, w, http.StatusInternalServerError, err)
			return
		}
		if rumors == nil {
			rumors = []model.Rumor{}
		}
		render.JSON(w, http.StatusOK, rumors)
	}
}

func runsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultRunsLimit
		if l := r.URL.Query().Get("limit"); l != "" {
			n, err := strconv.Atoi(l)
			if err != nil || n <= 0 {
				jsonError(render, w, http.StatusBadRequest, fmt.Errorf("invalid limit: %s", l))
				return
			}
			limit = min(n, maxRunsLimit)
		}

		runs, err := ctrl.ListRuns(r.Context(), limit)
		if err != nil {
			if errors.Is(err, controller.ErrNoDatabase) {
				jsonError(render, w, http.StatusServiceUnavailable, err)
			} else {
				jsonError(render, w, http.StatusInternalServerError, err)
			}
			return
		}
		if runs == nil {
			runs = []model.Run{}
		}
		render.JSON(w, http.StatusOK, runs)
	}
}

func refreshHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			jsonError(render, w, http.StatusBadRequest, err)
			return
		}

		opts := controller.RefreshOptions{
			Source:  r.Form.Get("source"),
			Command: "POST /admin/refresh",
		}
		for _, l := range r.Form["league"] {
			league, err := model.ParseLeague(l)
			if err != nil {
				jsonError(render, w, http.StatusBadRequest, err)
				return
			}
			opts.Leagues = append(opts.Leagues, league)
		}
		if t := r.Form.Get("tier"); t != "" {
			tier, err := strconv.Atoi(t)
			if err != nil || tier < 1 || tier > 4 {
				jsonError(render, w, http.StatusBadRequest, fmt.Errorf("invalid tier: %s", t))
				return
			}
			opts.Tier = tier
		}

		res, err := ctrl.Refresh(r.Context(), opts)
		if err != nil {
			switch {
			case errors.Is(err, controller.ErrUnknownSource):
				jsonError(render, w, http.StatusBadRequest, err)
			case errors.Is(err, controller.ErrSourceUnavailable):
				jsonError(render, w, http.StatusServiceUnavailable, err)
			default:
				jsonError(render, w, http.StatusInternalServerError, err)
			}
			return
		}

		render.JSON(w, http.StatusOK, refreshResponse{
			DataSource:   res.Data.DataSource,
			TotalPlayers: res.Data.TotalPlayers,
			Files:        res.Files,
			Run:          res.Run,
		})
	}
}
