package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/rfparse/pkgs/model"
)

func newFmtCmd(a *app) *cobra.Command {
	var (
		check     bool
		separator string
	)
	cmd := &cobra.Command{
		Use:   "fmt PATH...",
		Short: "Normalize separators and line endings",
		Long: "Normalize the separators between cells and the line endings of test data\n" +
			"files in place. Indentation and pipe separated lines are kept.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := a.collectFiles(args)
			if err != nil {
				return err
			}
			// Formatting needs the separators a data-only model drops.
			full := *a.cfg
			full.DataOnly = false

			out := cmd.OutOrStdout()
			var changed []string
			for _, path := range files {
				original, err := os.ReadFile(path)
				if err != nil {
					return inputError(path, err)
				}
				f, err := a.parse(cmd, path, &full)
				if err != nil {
					return err
				}
				model.Normalize(f, model.WithSeparator(separator))
				var formatted bytes.Buffer
				if err := f.SaveTo(&formatted); err != nil {
					return err
				}
				if bytes.Equal(original, formatted.Bytes()) {
					continue
				}
				changed = append(changed, path)
				if check {
					_, _ = fmt.Fprintf(out, "would reformat %s\n", path)
					continue
				}
				if err := f.Save(path); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "reformatted %s\n", path)
			}
			if check && len(changed) > 0 {
				return &CLIError{
					Type:    "format",
					Message: fmt.Sprintf("%s would be reformatted", plural(len(changed), "file")),
					Hint:    "Run 'rfparse fmt' without --check to rewrite them",
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "Report files that would change without writing them")
	cmd.Flags().StringVar(&separator, "separator", "    ", "Separator written between cells")
	return cmd
}
