package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AngelCh415/creator-payout/internal/offer"
)

func newLeadsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "Capture and list report emails",
	}

	var email string
	var payout float64
	add := &cobra.Command{
		Use:   "add",
		Short: "Capture one email with the payout it was shown",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			lead, err := a.Leads.Capture(cmd.Context(), email, payout)
			if err != nil {
				return err
			}
			if c.jsonOut() {
				return writeJSON(cmd.OutOrStdout(), lead)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "captured %s (%s)\n", lead.Email, offer.Currency(float64(lead.Payout)))
			return err
		},
	}
	add.Flags().StringVar(&email, "email", "", "Email address (required)")
	add.Flags().Float64Var(&payout, "payout", 0, "Payout shown to the creator")

	list := &cobra.Command{
		Use:   "list",
		Short: "List captured leads",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			leads := a.Leads.List(cmd.Context())
			out := cmd.OutOrStdout()
			if c.jsonOut() {
				return writeJSON(out, leads)
			}
			tw := table(out)
			fmt.Fprintln(tw, "EMAIL\tPAYOUT\tCAPTURED")
			for _, l := range leads {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Email, offer.Currency(float64(l.Payout)),
					time.UnixMilli(l.TS).UTC().Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}
