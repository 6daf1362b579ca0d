package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AngelCh415/creator-payout/internal/engine"
	"github.com/AngelCh415/creator-payout/internal/offer"
)

func newEstimateCmd(c *cli) *cobra.Command {
	in := &inputFlags{}
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the fair payout for one post",
		Example: `  creatorctl estimate --views 100000 --likes 4000 --comments 120 --shares 80
  creatorctl estimate --views 50000 --type mention --rev-share 20 --offer 150`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := in.workspace()
			m := c.model()
			est := ws.Estimate(m)
			out := cmd.OutOrStdout()
			if c.jsonOut() {
				return writeJSON(out, est)
			}
			res := est.Result
			tw := table(out)
			for _, row := range offer.Breakdown(res, ws.CampaignType, est.RevShare, m.AvgLTV()) {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Label, row.Value, row.Hint)
			}
			fmt.Fprintf(tw, "CPM\t%s\t\n", offer.CPM(res.CPM))
			fmt.Fprintf(tw, "CAC\t%s\t\n", offer.Money(res.CAC))
			fmt.Fprintf(tw, "Range\t%s - %s\tper video\n", offer.Currency(est.Low), offer.Currency(est.High))
			fmt.Fprintf(tw, "Tier\t%s\t\n", est.Tier)
			if err := tw.Flush(); err != nil {
				return err
			}
			if est.Overpriced {
				fmt.Fprintln(out, "Warning: payout exceeds 35% of modeled revenue")
			}
			if est.Underpaid {
				fmt.Fprintln(out, "You are likely underpaid")
			} else {
				fmt.Fprintln(out, "You are fairly paid")
			}
			return nil
		},
	}
	in.register(cmd)
	return cmd
}

func newReverseCmd(c *cli) *cobra.Command {
	in := &inputFlags{}
	var cpm string
	cmd := &cobra.Command{
		Use:   "reverse",
		Short: "Price a proposed CPM against modeled revenue",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := in.workspace()
			metrics := ws.Metrics()
			res := c.model().Evaluate(metrics, ws.CampaignType, ws.RevShare())
			rev := engine.Solve(engine.ParseMetric(cpm), metrics.Views, res.Revenue)
			out := cmd.OutOrStdout()
			if c.jsonOut() {
				return writeJSON(out, rev)
			}
			tw := table(out)
			fmt.Fprintf(tw, "Revenue\t%s\n", offer.Currency(res.Revenue))
			fmt.Fprintf(tw, "Implied payout\t%s\n", offer.Money(rev.ImpliedPayout))
			fmt.Fprintf(tw, "Profit per video\t%s\n", offer.Money(rev.ProfitPerVideo))
			fmt.Fprintf(tw, "ROAS\t%s\n", offer.Ratio(rev.ROAS))
			fmt.Fprintf(tw, "Profit\t%s\n", offer.OptionalPercent(rev.ProfitPercent))
			return tw.Flush()
		},
	}
	in.register(cmd)
	cmd.Flags().StringVar(&cpm, "cpm", "", "Proposed CPM")
	return cmd
}

func newOfferCmd(c *cli) *cobra.Command {
	in := &inputFlags{}
	var share bool
	cmd := &cobra.Command{
		Use:   "offer",
		Short: "Render offer text for the given metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := in.workspace()
			est := ws.Estimate(c.model())
			out := cmd.OutOrStdout()
			if share {
				_, err := fmt.Fprintln(out, offer.ShareText(est.Result.Payout))
				return err
			}
			_, err := fmt.Fprint(out, offer.Compose(est.Result, est.Result.CPM, ws.Metrics().Views, ws.PaymentPackage))
			return err
		},
	}
	in.register(cmd)
	cmd.Flags().BoolVar(&share, "share", false, "Print the short share text instead")
	return cmd
}
