package main

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/aledsdavies/rfparse/pkgs/lexer"
)

func newTokensCmd(a *app) *cobra.Command {
	var tokenizeVariables bool
	cmd := &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the tokens of a file as a table",
		Long:  "Print the tokens of a file as a table. Use - to read from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := readInput(cmd, path)
			if err != nil {
				return err
			}
			opts := []lexer.LexerOpt{
				lexer.WithFileKind(a.cfg.FileKind(path)),
				lexer.WithLanguages(a.cfg.Languages...),
			}
			if a.cfg.DataOnly {
				opts = append(opts, lexer.WithDataOnly())
			}
			if tokenizeVariables {
				opts = append(opts, lexer.WithTokenizeVariables())
			}
			if a.debug {
				opts = append(opts, lexer.WithLogger(a.logger))
			}
			tokens, err := lexer.GetTokens(data, opts...)
			if err != nil {
				return &CLIError{Type: "language", Message: err.Error(), Hint: languageHint(err)}
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Line", "Col", "Type", "Value", "Error"})
			table.SetAutoWrapText(false)
			table.SetBorder(false)
			for _, t := range tokens {
				table.Append([]string{
					strconv.Itoa(t.Line),
					strconv.Itoa(t.Col),
					t.Type.String(),
					strconv.Quote(t.Value),
					t.Error,
				})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().BoolVar(&tokenizeVariables, "tokenize-variables", false, "Split arguments and names around variables")
	return cmd
}
