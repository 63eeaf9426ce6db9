package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/RealRedbaron07/scoutlens-app/controller"
	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/RealRedbaron07/scoutlens-app/rumors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRumorsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rumors",
		Short: "Track transfer rumors",
	}

	// The rumor commands only need the news feeds.
	rumorController := func() (controller.C, error) {
		var sources controller.Sources
		news, err := a.newNews()
		if err != nil {
			logrus.WithError(err).Warn("news feeds are disabled")
		} else {
			sources.News = news
		}
		return a.newController(sources, nil, "")
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every rumor, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctrl, err := rumorController()
				if err != nil {
					return err
				}
				list, err := ctrl.ListRumors(cmd.Context())
				if err != nil {
					return err
				}
				printRumors(a.out, list)
				return nil
			},
		},
		newRumorsAddCmd(a, rumorController),
		&cobra.Command{
			Use:   "update <id> <field=value>...",
			Short: "Update fields of a rumor",
			Long:  "Update fields of a rumor. Fields: player, from, to, fee, status, confidence, source, date, verified, expires.",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctrl, err := rumorController()
				if err != nil {
					return err
				}
				r, err := ctrl.UpdateRumor(cmd.Context(), args[0], args[1:]...)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "updated %s\n", r.ID)
				printRumors(a.out, []model.Rumor{r})
				return nil
			},
		},
		&cobra.Command{
			Use:   "clean",
			Short: "Remove expired rumors",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctrl, err := rumorController()
				if err != nil {
					return err
				}
				removed, err := ctrl.CleanRumors(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "removed %d expired rumors\n", removed)
				return nil
			},
		},
		&cobra.Command{
			Use:   "fetch",
			Short: "Add the transfer stories of the news feeds",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctrl, err := rumorController()
				if err != nil {
					return err
				}
				added, err := ctrl.FetchRumors(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "added %d rumors\n", added)
				return nil
			},
		},
	)
	return cmd
}

func newRumorsAddCmd(a *app, rumorController func() (controller.C, error)) *cobra.Command {
	var (
		status     string
		n          rumors.NewRumor
		expires    int
		confidence int
	)

	cmd := &cobra.Command{
		Use:   "add <player> <from> <to> <fee>",
		Short: "Add a rumor",
		Example: `  scoutlens rumors add "Florian Wirtz" "Bayer Leverkusen" "Liverpool" "€150m" --status hot --source "The Athletic"`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := model.ParseRumorStatus(status)
			if err != nil {
				return err
			}
			n.Player, n.From, n.To, n.Fee = args[0], args[1], args[2], args[3]
			n.Status = s
			n.ExpiresInDays = expires
			if cmd.Flags().Changed("confidence") {
				n.Confidence = &confidence
			}

			ctrl, err := rumorController()
			if err != nil {
				return err
			}
			r, err := ctrl.AddRumor(cmd.Context(), n)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "added %s\n", r.ID)
			printRumors(a.out, []model.Rumor{r})
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&status, "status", string(model.RUMOR_WARM), "hot|warm|cold")
	flags.IntVar(&confidence, "confidence", 0, "0-100 (default depends on the status)")
	flags.StringVar(&n.Source, "source", "", "who reported the rumor")
	flags.IntVar(&expires, "expires-in-days", rumors.DefaultExpiresInDays, "days until the rumor expires")
	flags.BoolVar(&n.Verified, "verified", false, "the source is reliable")
	return cmd
}

func printRumors(w io.Writer, list []model.Rumor) {
	if len(list) == 0 {
		fmt.Fprintln(w, "no rumors")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPLAYER\tFROM\tTO\tFEE\tSTATUS\tCONF\tSOURCE\tDATE\tEXPIRES")
	for _, r := range list {
		player := r.Player
		if r.Verified {
			player += " ✓"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d%%\t%s\t%s\t%s\n", r.ID, player, r.From, r.To, r.Fee, r.Status, r.Confidence, r.Source, r.Date, r.Expires)
	}
	tw.Flush()
}
