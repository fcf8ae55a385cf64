package main

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"lintel/internal/analyzer"
	"lintel/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the available lint rules",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	rulesCmd.Flags().Bool("recommended", false, "list recommended rules only")
}

type ruleOutput struct {
	Name        string `json:"name"`
	Group       string `json:"group"`
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Recommended bool   `json:"recommended"`
	Fix         string `json:"fix,omitempty"`
	Docs        string `json:"docs"`
}

func runRules(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	onlyRecommended, err := cmd.Flags().GetBool("recommended")
	if err != nil {
		return fmt.Errorf("failed to get recommended flag: %w", err)
	}

	reg := rules.NewRegistry(rules.Options{})
	var list []analyzer.Metadata
	for m := range reg.Rules() {
		if onlyRecommended && !m.Recommended {
			continue
		}
		list = append(list, m)
	}
	slices.SortFunc(list, func(a, b analyzer.Metadata) int {
		return cmp.Or(cmp.Compare(a.Group, b.Group), cmp.Compare(a.Name, b.Name))
	})

	switch format {
	case "pretty":
		return renderRulesPretty(os.Stdout, list, useColor(cmd, os.Stdout))
	case "json":
		out := make([]ruleOutput, 0, len(list))
		for _, m := range list {
			r := ruleOutput{
				Name:        m.Key().String(),
				Group:       m.Group,
				Category:    m.Category.String(),
				Severity:    m.Severity.String(),
				Recommended: m.Recommended,
				Docs:        m.Docs,
			}
			if m.HasFix {
				r.Fix = m.Fix.String()
			}
			out = append(out, r)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func renderRulesPretty(w io.Writer, list []analyzer.Metadata, useColor bool) error {
	heading := color.New(color.Bold)
	mark := color.New(color.FgGreen)
	if useColor {
		heading.EnableColor()
		mark.EnableColor()
	} else {
		heading.DisableColor()
		mark.DisableColor()
	}

	nameWidth := 0
	for _, m := range list {
		nameWidth = max(nameWidth, runewidth.StringWidth(m.Name))
	}
	group := ""
	for _, m := range list {
		if m.Group != group {
			if group != "" {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			group = m.Group
			if _, err := heading.Fprintf(w, "%s (%s)\n", rules.GroupTitle(group), group); err != nil {
				return err
			}
		}
		flags := "  "
		if m.Recommended {
			flags = mark.Sprint("*") + " "
		}
		if m.HasFix {
			flags += "fix "
		} else {
			flags += "    "
		}
		if _, err := fmt.Fprintf(w, "  %s%s  %-7s  %s\n", flags, runewidth.FillRight(m.Name, nameWidth), m.Severity, m.Docs); err != nil {
			return err
		}
	}
	if len(list) > 0 {
		if _, err := fmt.Fprintf(w, "\n%s recommended, fix: has a fix\n", mark.Sprint("*")); err != nil {
			return err
		}
	}
	return nil
}
