package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"lintel/internal/diag"
	"lintel/internal/diagfmt"
	"lintel/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.js|directory|->...",
	Short: "Lint JavaScript files",
	Long:  `Parse and analyze JavaScript files or every *.js, *.mjs and *.cjs file under a directory. "-" reads standard input.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	addRuleFlags(checkCmd)
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	checkCmd.Flags().String("path-mode", "auto", "how paths are printed (auto|absolute|relative|basename)")
	checkCmd.Flags().Bool("with-notes", true, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", true, "include fix suggestions in output")
	checkCmd.Flags().Bool("preview", false, "show the text each fix would produce")
	checkCmd.Flags().Bool("cache", false, "reuse results from the on-disk cache")
	checkCmd.Flags().Bool("clear-cache", false, "drop the on-disk cache before checking")
	checkCmd.Flags().Bool("warnings-as-errors", false, "exit non-zero on warnings")
	checkCmd.Flags().Bool("timings", false, "show phase timings")
	checkCmd.Flags().String("stdin-name", "stdin.js", "file name used for input read from -")
	checkCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
}

type checkFlags struct {
	format           string
	pathMode         diagfmt.PathMode
	notes            bool
	suggest          bool
	preview          bool
	cache            bool
	clearCache       bool
	warningsAsErrors bool
	timings          bool
	stdinName        string
	ui               uiMode
	jobs             int
	maxDiagnostics   int
}

func readCheckFlags(cmd *cobra.Command) (checkFlags, error) {
	var (
		f   checkFlags
		err error
	)
	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch f.format {
	case "pretty", "short", "json":
	default:
		return f, fmt.Errorf("unknown format %q (expected pretty|short|json)", f.format)
	}
	pathMode, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return f, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	var ok bool
	if f.pathMode, ok = diagfmt.ParsePathMode(pathMode); !ok {
		return f, fmt.Errorf("unknown path mode %q", pathMode)
	}
	if f.notes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return f, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if f.suggest, err = cmd.Flags().GetBool("suggest"); err != nil {
		return f, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	if f.preview, err = cmd.Flags().GetBool("preview"); err != nil {
		return f, fmt.Errorf("failed to get preview flag: %w", err)
	}
	if f.cache, err = cmd.Flags().GetBool("cache"); err != nil {
		return f, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if f.clearCache, err = cmd.Flags().GetBool("clear-cache"); err != nil {
		return f, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if f.warningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
		return f, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if f.timings, err = cmd.Flags().GetBool("timings"); err != nil {
		return f, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if f.stdinName, err = cmd.Flags().GetString("stdin-name"); err != nil {
		return f, fmt.Errorf("failed to get stdin-name flag: %w", err)
	}
	ui, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(ui); err != nil {
		return f, err
	}
	if f.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if f.maxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return f, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return f, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	flags, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}
	st, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}
	quiet := isQuiet(cmd)

	opts := driver.Options{
		Registry: st.registry,
		Analysis: st.analysis,
		Config:   st.config,
		Jobs:     flags.jobs,
		Timings:  flags.timings,
		Salt:     st.salt,
	}
	if flags.cache || flags.clearCache {
		cache, err := driver.OpenDiskCache("lintel")
		if err != nil {
			return fmt.Errorf("cache: %w", err)
		}
		if flags.clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("cache: %w", err)
			}
		}
		if flags.cache {
			opts.Cache = cache
		}
	}

	ctx, span := commandSpan(cmd)
	defer span.End("")

	started := time.Now()
	var res *driver.CheckResult
	switch {
	case len(args) == 1 && args[0] == "-":
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		res, err = driver.CheckSource(ctx, flags.stdinName, content, opts)
		if err != nil {
			return err
		}
	case flags.format == "pretty" && !quiet && shouldUseTUI(flags.ui):
		res, err = runWithUI(ctx, "checking", nil, func(ctx context.Context, sink driver.ProgressSink) (*driver.CheckResult, error) {
			o := opts
			o.Progress = sink
			return driver.Check(ctx, args, o)
		})
		if err != nil {
			return err
		}
	default:
		if res, err = driver.Check(ctx, args, opts); err != nil {
			return err
		}
	}
	elapsed := time.Since(started)

	if !quiet {
		for _, s := range res.Skipped {
			fmt.Fprintf(os.Stderr, "skipped %s: %s\n", s.Path, s.Reason)
		}
	}
	if err := writeDiagnostics(cmd, os.Stdout, res, flags); err != nil {
		return err
	}
	if !quiet && flags.format == "pretty" {
		if err := printSummary(os.Stderr, res, elapsed); err != nil {
			return err
		}
	}
	if flags.timings {
		printTimings(os.Stderr, res.Timings(), res.Cache)
	}

	if res.HasErrors() || (flags.warningsAsErrors && res.Count(diag.SevWarning) > 0) {
		return errReported
	}
	return nil
}

func writeDiagnostics(cmd *cobra.Command, w *os.File, res *driver.CheckResult, flags checkFlags) error {
	bag := res.Diagnostics(flags.maxDiagnostics)
	switch flags.format {
	case "short":
		return diagfmt.Short(w, bag, res.FileSet, diagfmt.ShortOpts{PathMode: flags.pathMode})
	case "json":
		return diagfmt.JSON(w, bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         flags.pathMode,
			Max:              flags.maxDiagnostics,
			IncludeNotes:     flags.notes,
			IncludeFixes:     flags.suggest,
			IncludePreviews:  flags.preview,
		})
	default:
		diagfmt.Pretty(w, bag, res.FileSet, diagfmt.PrettyOpts{
			Color:       useColor(cmd, w),
			Context:     1,
			PathMode:    flags.pathMode,
			Width:       uint8(min(terminalWidth(w), 255)),
			ShowNotes:   flags.notes,
			ShowFixes:   flags.suggest,
			ShowPreview: flags.preview,
		})
		return nil
	}
}
