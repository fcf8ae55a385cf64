package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lintel/internal/driver"
	"lintel/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.js|directory>...",
	Short: "Apply rule fixes to JavaScript files",
	Long:  "Run the analyzer, apply the fixes rules offer according to the chosen strategy, and write the files back.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFix,
}

func init() {
	addRuleFlags(fixCmd)
	fixCmd.Flags().Bool("all", false, "apply all safe fixes (default)")
	fixCmd.Flags().Bool("once", false, "apply a single fix per file")
	fixCmd.Flags().Bool("unsafe", false, "also apply fixes that may change behavior")
	fixCmd.Flags().Bool("diff", false, "print a diff instead of writing files")
	fixCmd.Flags().Int("max-iterations", 0, "re-analysis rounds per file (0=default)")
	fixCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
}

func readApplyMode(cmd *cobra.Command) (fix.ApplyMode, error) {
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return 0, err
	}
	once, err := cmd.Flags().GetBool("once")
	if err != nil {
		return 0, err
	}
	unsafe, err := cmd.Flags().GetBool("unsafe")
	if err != nil {
		return 0, err
	}
	switch {
	case once && (all || unsafe):
		return 0, fmt.Errorf("--once cannot be combined with --all or --unsafe")
	case once:
		return fix.ApplyModeOnce, nil
	case unsafe:
		return fix.ApplyModeUnsafe, nil
	default:
		return fix.ApplyModeAll, nil
	}
}

func runFix(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	mode, err := readApplyMode(cmd)
	if err != nil {
		return err
	}
	showDiff, err := cmd.Flags().GetBool("diff")
	if err != nil {
		return err
	}
	maxIterations, err := cmd.Flags().GetInt("max-iterations")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	ui, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	st, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}

	opts := driver.FixOptions{
		Options: driver.Options{
			Registry: st.registry,
			Analysis: st.analysis,
			Config:   st.config,
			Jobs:     jobs,
		},
		Mode:          mode,
		MaxIterations: maxIterations,
		Write:         !showDiff,
	}

	ctx, span := commandSpan(cmd)
	defer span.End("")

	var results []driver.FixFileResult
	if !isQuiet(cmd) && !showDiff && shouldUseTUI(ui) {
		results, err = runWithUI(ctx, "fixing", nil, func(ctx context.Context, sink driver.ProgressSink) ([]driver.FixFileResult, error) {
			o := opts
			o.Progress = sink
			return driver.FixFiles(ctx, args, o)
		})
	} else {
		results, err = driver.FixFiles(ctx, args, opts)
	}
	if err != nil {
		return err
	}

	failed := false
	for _, r := range results {
		if r.Err != nil {
			failed = true
			if errors.Is(r.Err, fix.ErrSyntax) {
				fmt.Fprintf(os.Stderr, "%s: not fixed, the file has syntax errors\n", r.Path)
			} else {
				fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
			}
			continue
		}
		if showDiff {
			if r.Changed() {
				if _, err := io.WriteString(os.Stdout, fix.Diff(r.Path, r.Before, r.Result.Text)); err != nil {
					return err
				}
			}
			continue
		}
		if isQuiet(cmd) {
			continue
		}
		if err := printFixResult(os.Stdout, r); err != nil {
			return err
		}
	}
	if failed {
		return errReported
	}
	return nil
}

func printFixResult(w io.Writer, r driver.FixFileResult) error {
	res := r.Result
	if res == nil || (len(res.Applied) == 0 && len(res.Skipped) == 0) {
		return nil
	}
	if len(res.Applied) > 0 {
		if _, err := fmt.Fprintf(w, "%s: applied %d fix(es) in %d pass(es):\n", r.Path, len(res.Applied), res.Iterations); err != nil {
			return err
		}
		for _, item := range res.Applied {
			if _, err := fmt.Fprintf(w, "  %s [%s] at %s (%s)\n", item.Title, item.Rule, item.Range, item.Applicability); err != nil {
				return err
			}
		}
	}
	if len(res.Skipped) > 0 {
		if _, err := fmt.Fprintf(w, "%s: skipped fixes:\n", r.Path); err != nil {
			return err
		}
		for _, skip := range res.Skipped {
			if _, err := fmt.Fprintf(w, "  %s [%s]: %s\n", skip.Title, skip.Rule, skip.Reason); err != nil {
				return err
			}
		}
	}
	return nil
}
