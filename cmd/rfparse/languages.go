package main

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/aledsdavies/rfparse/pkgs/languages"
)

func newLanguagesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "languages [NAME]",
		Short: "List supported languages or show the translations of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := languages.Default()
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetAutoWrapText(false)
			table.SetBorder(false)

			if len(args) == 0 {
				table.SetHeader([]string{"Code", "Name"})
				for _, lang := range registry.All() {
					table.Append([]string{lang.Code, lang.Name})
				}
				table.Render()
				return nil
			}

			lang, err := registry.Lookup(args[0])
			if err != nil {
				return &CLIError{Type: "language", Message: err.Error(), Hint: suggestLanguage(registry, args[0])}
			}
			table.SetHeader([]string{"Kind", "English", lang.Name})
			for _, section := range languages.SectionNames {
				if translated, ok := lang.Headers[section]; ok {
					table.Append([]string{"section", section, translated})
				}
			}
			settings := make([]string, 0, len(lang.Settings))
			for setting := range lang.Settings {
				settings = append(settings, setting)
			}
			sort.Strings(settings)
			for _, setting := range settings {
				table.Append([]string{"setting", setting, lang.Settings[setting]})
			}
			table.Render()
			return nil
		},
	}
}

// suggestLanguage proposes the closest known language code or name.
func suggestLanguage(registry *languages.Registry, name string) string {
	var targets []string
	codes := make(map[string]string)
	for _, lang := range registry.All() {
		targets = append(targets, lang.Code, lang.Name)
		codes[lang.Code] = lang.Code
		codes[lang.Name] = lang.Code
	}

	ranks := fuzzy.RankFindFold(name, targets)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return fmt.Sprintf("Did you mean '%s'?", codes[ranks[0].Target])
	}
	best, bestDistance := "", 4
	for _, target := range targets {
		if d := fuzzy.LevenshteinDistance(name, target); d < bestDistance {
			best, bestDistance = target, d
		}
	}
	if best != "" {
		return fmt.Sprintf("Did you mean '%s'?", codes[best])
	}
	return "Run 'rfparse languages' to list supported languages"
}

var languageName = regexp.MustCompile(`^Language '(.*)' not found`)

// languageHint suggests a language for an unknown language error.
func languageHint(err error) string {
	m := languageName.FindStringSubmatch(err.Error())
	if m == nil {
		return ""
	}
	return suggestLanguage(languages.Default(), m[1])
}
