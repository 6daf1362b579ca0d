package main

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AngelCh415/creator-payout/internal/calculator"
	"github.com/AngelCh415/creator-payout/internal/models"
	"github.com/AngelCh415/creator-payout/internal/offer"
	"github.com/AngelCh415/creator-payout/internal/store"
)

type draftFlags struct {
	inputFlags
	name, email, tiktok, instagram, youtube string
}

func (f *draftFlags) register(cmd *cobra.Command) {
	f.inputFlags.register(cmd)
	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "", "Creator name (required)")
	fl.StringVar(&f.email, "email", "", "Contact email")
	fl.StringVar(&f.tiktok, "tiktok", "", "TikTok profile URL")
	fl.StringVar(&f.instagram, "instagram", "", "Instagram profile URL")
	fl.StringVar(&f.youtube, "youtube", "", "YouTube channel URL")
}

func (f *draftFlags) draft() models.CreatorDraft {
	s := f.workspace().Settings()
	return models.CreatorDraft{
		Name:                f.name,
		Email:               f.email,
		TikTokURL:           f.tiktok,
		InstagramURL:        f.instagram,
		YouTubeURL:          f.youtube,
		Metrics:             s.Metrics,
		CampaignType:        s.CampaignType,
		PaymentPackage:      s.PaymentPackage,
		RevenueSharePercent: s.RevenueSharePercent,
	}
}

func newCreatorsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "creators",
		Aliases: []string{"crm"},
		Short:   "Manage saved creators",
	}
	cmd.AddCommand(
		newCreatorsAddCmd(c),
		newCreatorsListCmd(c),
		newCreatorsShowCmd(c),
		newCreatorsUpdateCmd(c),
		newCreatorsDeleteCmd(c),
		newCreatorsReplayCmd(c),
	)
	return cmd
}

func newCreatorsAddCmd(c *cli) *cobra.Command {
	f := &draftFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a new creator",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			rec, err := a.Store.Create(cmd.Context(), f.draft())
			if err != nil {
				return err
			}
			return printRecord(c, cmd, rec)
		},
	}
	f.register(cmd)
	return cmd
}

func newCreatorsUpdateCmd(c *cli) *cobra.Command {
	f := &draftFlags{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a saved creator with the given fields",
		Long:  "Replace every field of a saved creator. Fields left out are cleared or reset to defaults.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			rec, err := a.Store.Update(cmd.Context(), args[0], f.draft())
			if err != nil {
				return err
			}
			return printRecord(c, cmd, rec)
		},
	}
	f.register(cmd)
	return cmd
}

func newCreatorsDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved creator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			return a.Store.Delete(cmd.Context(), args[0])
		},
	}
}

func newCreatorsShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one saved creator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			rec, ok := a.Store.Get(args[0])
			if !ok {
				return store.ErrNotFound
			}
			return printRecord(c, cmd, rec)
		},
	}
}

func newCreatorsListCmd(c *cli) *cobra.Command {
	var campaignType, tier, q, sortBy string
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved creators with their replayed estimate",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			v := url.Values{}
			v.Set("campaign_type", campaignType)
			v.Set("tier", tier)
			v.Set("q", q)
			v.Set("sort", sortBy)
			v.Set("limit", strconv.Itoa(limit))
			v.Set("offset", strconv.Itoa(offset))
			page := a.Report.Query(v)
			out := cmd.OutOrStdout()
			if c.jsonOut() {
				return writeJSON(out, page)
			}
			tw := table(out)
			fmt.Fprintln(tw, "ID\tNAME\tTYPE\tVIEWS\tPAYOUT\tCPM\tPACKAGE\tTOTAL\tTIER")
			for _, r := range page.Rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					r.Creator.ID, r.Creator.Name, r.Creator.CampaignType,
					offer.Count(r.Creator.Metrics.Views), offer.Currency(r.Result.Payout),
					offer.CPM(r.Result.CPM), r.Creator.PaymentPackage.Label(),
					offer.Currency(r.Total), r.Tier)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "%d of %d creators\n", len(page.Rows), page.Total)
			return err
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&campaignType, "type", "", "Filter by campaign types (comma separated)")
	fl.StringVar(&tier, "tier", "", "Filter by tiers (comma separated)")
	fl.StringVar(&q, "q", "", "Filter by name substring")
	fl.StringVar(&sortBy, "sort", "", "Sort by payout, name or created")
	fl.IntVar(&limit, "limit", 100, "Maximum rows")
	fl.IntVar(&offset, "offset", 0, "Rows to skip")
	return cmd
}

func newCreatorsReplayCmd(c *cli) *cobra.Command {
	var withOffer bool
	cmd := &cobra.Command{
		Use:   "replay <id>",
		Short: "Load a saved creator into the calculator and estimate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			settings, err := a.Store.LoadForReplay(args[0])
			if err != nil {
				return err
			}
			rec, _ := a.Store.Get(args[0])
			ws := calculator.New()
			ws.Apply(settings)
			est := ws.Estimate(a.Model)
			a.Recorder.ObserveEstimate(ws.CampaignType)
			out := cmd.OutOrStdout()
			if c.jsonOut() {
				return writeJSON(out, map[string]any{"creator": rec, "estimate": est})
			}
			if withOffer {
				_, err := fmt.Fprint(out, offer.ComposeFor(rec.Name, est.Result, est.Result.CPM, settings.Metrics.Views, settings.PaymentPackage))
				return err
			}
			tw := table(out)
			fmt.Fprintf(tw, "Creator\t%s\n", rec.Name)
			fmt.Fprintf(tw, "Payout\t%s\n", offer.Currency(est.Result.Payout))
			fmt.Fprintf(tw, "CPM\t%s\n", offer.CPM(est.Result.CPM))
			fmt.Fprintf(tw, "Revenue share\t%s (%s)\n", offer.Percent(est.RevShare), est.Tier)
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&withOffer, "offer", false, "Print the offer text instead")
	return cmd
}

func printRecord(c *cli, cmd *cobra.Command, rec models.CreatorRecord) error {
	out := cmd.OutOrStdout()
	if c.jsonOut() {
		return writeJSON(out, rec)
	}
	tw := table(out)
	fmt.Fprintf(tw, "ID\t%s\n", rec.ID)
	fmt.Fprintf(tw, "Name\t%s\n", rec.Name)
	if rec.Email != "" {
		fmt.Fprintf(tw, "Email\t%s\n", rec.Email)
	}
	for _, l := range [][2]string{{"TikTok", rec.TikTokURL}, {"Instagram", rec.InstagramURL}, {"YouTube", rec.YouTubeURL}} {
		if l[1] != "" {
			fmt.Fprintf(tw, "%s\t%s\n", l[0], l[1])
		}
	}
	fmt.Fprintf(tw, "Views\t%s\n", offer.Count(rec.Metrics.Views))
	fmt.Fprintf(tw, "Campaign\t%s\n", rec.CampaignType.Label())
	fmt.Fprintf(tw, "Package\t%s\n", rec.PaymentPackage.Label())
	fmt.Fprintf(tw, "Revenue share\t%s\n", offer.Percent(rec.RevenueSharePercent))
	return tw.Flush()
}
