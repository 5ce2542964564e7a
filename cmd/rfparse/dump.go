package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/rfparse/pkgs/dump"
)

func newDumpCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Write the model of a file as YAML, JSON or CBOR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Format
			}
			if !slices.Contains(dump.Formats, dump.Format(format)) {
				return &CLIError{
					Type:    "usage",
					Message: fmt.Sprintf("unknown dump format %q", format),
					Hint:    fmt.Sprintf("Use one of %v", dump.Formats),
				}
			}
			f, err := a.parse(cmd, args[0], a.cfg)
			if err != nil {
				return err
			}
			return dump.Write(cmd.OutOrStdout(), f, dump.Format(format))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", "", "Output format: yaml, json or cbor (default from config)")
	return cmd
}
