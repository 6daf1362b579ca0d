package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AngelCh415/creator-payout/internal/app"
	"github.com/AngelCh415/creator-payout/internal/calculator"
	"github.com/AngelCh415/creator-payout/internal/config"
	"github.com/AngelCh415/creator-payout/internal/engine"
	"github.com/AngelCh415/creator-payout/internal/models"
)

// cli carries state shared by every subcommand of one invocation.
type cli struct {
	format  string
	verbose bool

	cfg config.Config
	app *app.App
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "creatorctl",
		Short: "Estimate creator payouts and manage saved creators",
		Long: `creatorctl estimates a creator's fair per-post payout from average
engagement, prices proposed CPM deals, renders offer text, and manages the
saved creator collection and captured leads.

Storage and pricing come from the same CONFIG_FILE / environment as the server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.app != nil {
				return c.app.Close()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.format, "format", "table", "Output format: table, json")
	root.PersistentFlags().BoolVar(&c.verbose, "verbose", false, "Log storage activity to stderr")

	root.AddCommand(
		newEstimateCmd(c),
		newReverseCmd(c),
		newOfferCmd(c),
		newCreatorsCmd(c),
		newLeadsCmd(c),
		newExportCmd(c),
		newImportCmd(c),
	)
	return root
}

// open builds the storage-backed app on first use.
func (c *cli) open(cmd *cobra.Command) (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	level := slog.LevelError
	if c.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a, err := app.New(cmd.Context(), c.cfg, log)
	if err != nil {
		return nil, err
	}
	c.app = a
	return a, nil
}

func (c *cli) model() engine.Model { return engine.NewModel(c.cfg.Pricing) }

func (c *cli) jsonOut() bool { return strings.EqualFold(c.format, "json") }

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// inputFlags are the calculator fields shared by estimate, reverse and offer.
type inputFlags struct {
	views, likes, comments, shares string
	campaignType, pkg, offer       string
	revShare                       float64
}

func (f *inputFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.views, "views", "", "Average views per post")
	fl.StringVar(&f.likes, "likes", "", "Average likes per post")
	fl.StringVar(&f.comments, "comments", "", "Average comments per post")
	fl.StringVar(&f.shares, "shares", "", "Average shares per post")
	fl.StringVar(&f.campaignType, "type", string(models.LinkInBio), "Campaign type: link, mention")
	fl.StringVar(&f.pkg, "package", string(models.Single), "Payment package: single, pack3, pack5")
	fl.StringVar(&f.offer, "offer", "", "What brands currently offer per video")
	fl.Float64Var(&f.revShare, "rev-share", models.DefaultRevShare, "Creator revenue share percent (10-30)")
}

func (f *inputFlags) workspace() *calculator.Workspace {
	ws := calculator.New()
	ws.Views, ws.Likes, ws.Comments, ws.Shares = f.views, f.likes, f.comments, f.shares
	ws.CampaignType = models.ParseCampaignType(f.campaignType)
	ws.PaymentPackage = models.ParsePaymentPackage(f.pkg)
	ws.RevenueSharePercent = models.ClampRevShare(f.revShare)
	ws.CurrentOffer = f.offer
	return ws
}
