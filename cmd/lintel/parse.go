package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lintel/internal/diagfmt"
	"lintel/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.js>",
	Short: "Parse a JavaScript file and print its syntax tree",
	Long:  `Parse builds the lossless syntax tree of a file and prints it, bogus nodes and trivia included`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().Bool("trivia", false, "print trivia text instead of its kind")
	parseCmd.Flags().Bool("stats", false, "print green node allocation counts to stderr")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	trivia, err := cmd.Flags().GetBool("trivia")
	if err != nil {
		return fmt.Errorf("failed to get trivia flag: %w", err)
	}
	stats, err := cmd.Flags().GetBool("stats")
	if err != nil {
		return fmt.Errorf("failed to get stats flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if result.Bag.Len() > 0 && !isQuiet(cmd) {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 2,
		})
	}
	if stats {
		fmt.Fprintf(os.Stderr, "green: %d nodes, %d tokens, %d cache hits\n", result.Nodes, result.Tokens, result.Hits)
	}

	switch format {
	case "pretty":
		err = diagfmt.FormatTreePretty(os.Stdout, result.Root, diagfmt.TreeOpts{Color: useColor(cmd, os.Stdout), Trivia: trivia})
	case "json":
		err = diagfmt.FormatTreeJSON(os.Stdout, result.Root)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errReported
	}
	return nil
}
