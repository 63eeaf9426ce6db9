package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/RealRedbaron07/scoutlens-app/controller"
	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/RealRedbaron07/scoutlens-app/output"
	"github.com/RealRedbaron07/scoutlens-app/platforms"
	"github.com/spf13/cobra"
)

const summarySize = 10

type fetchFlags struct {
	source     string
	apiKey     string
	season     string
	leagues    []string
	tier       int
	allTiers   bool
	minMinutes int
	outputs    []string
	outDir     string
	save       bool
}

func newFetchCmd(a *app) *cobra.Command {
	f := &fetchFlags{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch, value, and rank players, then write the output files",
		Example: `  scoutlens fetch
  scoutlens fetch --source understat --league EPL --league La_Liga --output all
  scoutlens fetch --source combined --all-tiers --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.refreshOptions(a)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			d, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			if d != nil {
				defer d.Close()
			}

			fdKey, afKey := a.cfg.FootballDataKey, a.cfg.APIFootballKey
			if f.apiKey != "" {
				if opts.Source == platforms.SourceAPIFootball {
					afKey = f.apiKey
				} else {
					fdKey = f.apiKey
				}
			}

			ctrl, err := a.newController(a.newSources(fdKey, afKey), d, opts.OutputDir)
			if err != nil {
				return err
			}

			res, err := ctrl.Refresh(ctx, opts)
			if err != nil {
				return err
			}
			printSummary(a.out, res)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.source, "source", platforms.SourceFootballData, "data source: "+strings.Join(platforms.Sources, "|"))
	flags.StringVar(&f.apiKey, "api-key", "", "api key of the source, overrides the environment")
	flags.StringVar(&f.season, "season", "", "season, e.g. 2024-25 (default from SEASON or "+model.Season+")")
	flags.StringArrayVar(&f.leagues, "league", nil, "league key, may be repeated")
	flags.IntVar(&f.tier, "tier", 0, "fetch the leagues of a tier (1-4)")
	flags.BoolVar(&f.allTiers, "all-tiers", false, "fetch every league the source covers")
	flags.IntVar(&f.minMinutes, "min-minutes", 0, "drop players with fewer minutes (default depends on the source)")
	flags.StringSliceVar(&f.outputs, "output", nil, "output format: js|json|csv|sqlite|all, may be repeated (default js)")
	flags.StringVar(&f.outDir, "out-dir", "", "directory of the output files (default from OUTPUT_DIR)")
	flags.BoolVar(&f.save, "save", false, "save the run to postgres (needs POSTGRES_CONN_STR)")

	return cmd
}

func (f *fetchFlags) refreshOptions(a *app) (controller.RefreshOptions, error) {
	opts := controller.RefreshOptions{
		Source:     strings.ToLower(strings.TrimSpace(f.source)),
		Tier:       f.tier,
		AllTiers:   f.allTiers,
		Season:     f.season,
		MinMinutes: f.minMinutes,
		Save:       f.save,
		OutputDir:  f.outDir,
		Command:    commandLine(),
	}
	if opts.Season == "" {
		opts.Season = a.cfg.Season
	}
	if opts.OutputDir == "" {
		opts.OutputDir = a.cfg.OutputDir
	}

	for _, l := range f.leagues {
		league, err := model.ParseLeague(l)
		if err != nil {
			return opts, err
		}
		opts.Leagues = append(opts.Leagues, league)
	}

	formats, err := output.ParseFormats(f.outputs)
	if err != nil {
		return opts, err
	}
	opts.Formats = formats
	return opts, nil
}

func printSummary(w io.Writer, res *controller.RefreshResult) {
	d := res.Data
	fmt.Fprintf(w, "%s, season %s: %d players from %d leagues\n", d.DataSource, d.Season, d.TotalPlayers, d.LeaguesCovered)
	for _, f := range res.Files {
		fmt.Fprintf(w, "wrote %s\n", f)
	}
	if res.Run != nil {
		fmt.Fprintf(w, "saved run %d\n", res.Run.ID)
	}
	if len(d.Undervalued) == 0 {
		return
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYER\tTEAM\tLEAGUE\tAGE\tMARKET\tFAIR\tGAP")
	for i, p := range d.Undervalued {
		if i == summarySize {
			break
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%+.1f%%\n", p.Name, p.Team, p.League, p.Age, p.FormattedMarketValue(), p.FormattedFairValue(), p.UndervaluationPct)
	}
	tw.Flush()
}
