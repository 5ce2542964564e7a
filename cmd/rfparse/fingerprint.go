package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/rfparse/pkgs/canonical"
)

func newFingerprintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint PATH...",
		Short: "Print a digest of the data of each file",
		Long: "Print a digest of the data of each file. Formatting, comments and empty\n" +
			"lines do not affect the digest.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files := args
			if len(args) != 1 || args[0] != "-" {
				var err error
				if files, err = a.collectFiles(args); err != nil {
					return err
				}
			}
			for _, path := range files {
				f, err := a.parse(cmd, path, a.cfg)
				if err != nil {
					return err
				}
				digest, err := canonical.Fingerprint(f)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", digest, path)
			}
			return nil
		},
	}
}
