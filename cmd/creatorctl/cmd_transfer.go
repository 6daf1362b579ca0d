package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AngelCh415/creator-payout/internal/transfer"
)

func newExportCmd(c *cli) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every saved creator as a signed bundle",
		Long: `Write every saved creator as a JSON bundle. When EXPORT_SECRET is set the
HMAC-SHA256 signature is written next to the bundle as <out>.sig.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			body, sig, err := transfer.Export(a.Store.List(), a.Cfg.ExportSecret, time.Now())
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err := cmd.OutOrStdout().Write(body)
				return err
			}
			if err := os.WriteFile(out, body, 0o644); err != nil {
				return fmt.Errorf("write bundle: %w", err)
			}
			if sig != "" {
				if err := os.WriteFile(out+".sig", []byte(sig+"\n"), 0o644); err != nil {
					return fmt.Errorf("write signature: %w", err)
				}
			}
			_, err = fmt.Fprintf(cmd.ErrOrStderr(), "exported %d creators to %s\n", len(a.Store.List()), out)
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Bundle file (default stdout)")
	return cmd
}

func newImportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "import <path|url>",
		Short: "Merge creators from a bundle file or URL",
		Long: `Merge creators from a bundle by id. Files are read with an optional
<path>.sig sidecar, URLs with the X-Signature response header.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			n, err := a.Importer.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if c.jsonOut() {
				return writeJSON(cmd.OutOrStdout(), map[string]int{"imported": n})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d creators\n", n)
			return err
		},
	}
}
