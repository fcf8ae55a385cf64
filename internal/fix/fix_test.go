package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lintel/internal/analyzer"
	"lintel/internal/diag"
	"lintel/internal/fix"
	"lintel/internal/parser"
	"lintel/internal/rules"
	"lintel/internal/source"
)

func only(t *testing.T, names ...string) analyzer.Options {
	t.Helper()
	var opts analyzer.Options
	for _, n := range names {
		f, err := analyzer.ParseRuleFilter(n)
		require.NoError(t, err)
		opts.Filter.EnabledRules = append(opts.Filter.EnabledRules, f)
	}
	return opts
}

func TestApplyUnsafeFixes(t *testing.T) {
	reg := rules.NewRegistry(rules.Options{})
	res, err := fix.Apply("x == 1; y != 2; debugger;", reg, fix.ApplyOptions{
		Mode:     fix.ApplyModeUnsafe,
		Analysis: only(t, "suspicious"),
	})
	require.NoError(t, err)
	assert.Equal(t, "x === 1; y !== 2; ", res.Text)
	require.Len(t, res.Applied, 3)
	assert.Equal(t, "suspicious/noDoubleEquals", res.Applied[0].Rule)
	assert.Equal(t, "suspicious/noDebugger", res.Applied[2].Rule)
	assert.Equal(t, 3, res.Iterations)
	assert.True(t, res.Changed())
}

func TestApplyAllSafeOnly(t *testing.T) {
	reg := rules.NewRegistry(rules.Options{})
	res, err := fix.Apply("x == 1; debugger;", reg, fix.ApplyOptions{
		Mode:     fix.ApplyModeAll,
		Analysis: only(t, "suspicious"),
	})
	require.NoError(t, err)
	assert.Equal(t, "x == 1; ", res.Text)
	require.Len(t, res.Applied, 1)
	assert.Equal(t, diag.FixAlways, res.Applied[0].Applicability)
}

func TestApplyAllSkipsMaybeIncorrect(t *testing.T) {
	reg := rules.NewRegistry(rules.Options{})
	src := "var a = 1; a;"

	res, err := fix.Apply(src, reg, fix.ApplyOptions{Mode: fix.ApplyModeAll, Analysis: only(t, "style/noVar")})
	require.ErrorIs(t, err, fix.ErrNoFixes)
	assert.Equal(t, src, res.Text)

	res, err = fix.Apply(src, reg, fix.ApplyOptions{Mode: fix.ApplyModeUnsafe, Analysis: only(t, "style/noVar")})
	require.NoError(t, err)
	assert.Equal(t, "const a = 1; a;", res.Text)
	assert.Equal(t, diag.FixMaybeIncorrect, res.Applied[0].Applicability)
}

func TestApplyOncePrefersSafe(t *testing.T) {
	reg := rules.NewRegistry(rules.Options{})
	res, err := fix.Apply("x == 1; debugger;", reg, fix.ApplyOptions{
		Mode:     fix.ApplyModeOnce,
		Analysis: only(t, "suspicious"),
	})
	require.NoError(t, err)
	// noDoubleEquals is reported first but noDebugger is the safe fix
	assert.Equal(t, "x == 1; ", res.Text)
	assert.Len(t, res.Applied, 1)
}

func TestApplyIterationLimit(t *testing.T) {
	reg := rules.NewRegistry(rules.Options{})
	res, err := fix.Apply("a == 1; b == 2;", reg, fix.ApplyOptions{
		Mode:          fix.ApplyModeUnsafe,
		MaxIterations: 1,
		Analysis:      only(t, "suspicious/noDoubleEquals"),
	})
	require.ErrorIs(t, err, fix.ErrIterationLimit)
	assert.Equal(t, "a === 1; b == 2;", res.Text)
}

func TestApplyRejectsSyntaxErrors(t *testing.T) {
	_, err := fix.Apply("if (", rules.NewRegistry(rules.Options{}), fix.ApplyOptions{Mode: fix.ApplyModeAll})
	require.ErrorIs(t, err, fix.ErrSyntax)
}

func TestTextEdits(t *testing.T) {
	edits := fix.TextEdits(3, "abc", "abXc")
	require.Len(t, edits, 1)
	assert.Equal(t, source.Span{File: 3, Start: 2, End: 2}, edits[0].Span)
	assert.Equal(t, "X", edits[0].NewText)
	assert.Empty(t, edits[0].OldText)

	// a delete next to an insert becomes one guarded replacement
	edits = fix.TextEdits(0, "abc", "aXc")
	require.Len(t, edits, 1)
	assert.Equal(t, fix.ReplaceSpan(source.Span{Start: 1, End: 2}, "X", "b"), edits[0])

	before := "a;\ndebugger;\nb;"
	edits = fix.TextEdits(0, before, "a;\nb;")
	require.Len(t, edits, 1)
	assert.Empty(t, edits[0].NewText)
	assert.Equal(t, before[edits[0].Span.Start:edits[0].Span.End], edits[0].OldText)

	for _, c := range []struct{ before, after string }{
		{"x == 1", "x === 1"},
		{"if (!a) {b;} else {c;}", "if (a) {c;} else {b;}"},
		{"a;\ndebugger;\nb;", "a;\nb;"},
		{"", "let x;"},
	} {
		got, err := fix.ApplyEdits(c.before, fix.TextEdits(0, c.before, c.after))
		require.NoError(t, err)
		assert.Equal(t, c.after, got)
	}
}

func TestApplyEditsChecks(t *testing.T) {
	_, err := fix.ApplyEdits("abcdef", []diag.FixEdit{
		fix.ReplaceSpan(source.Span{Start: 1, End: 4}, "x", ""),
		fix.DeleteSpan(source.Span{Start: 3, End: 5}, ""),
	})
	require.ErrorIs(t, err, fix.ErrEditConflict)

	_, err = fix.ApplyEdits("abc", []diag.FixEdit{fix.DeleteSpan(source.Span{Start: 0, End: 1}, "z")})
	require.ErrorIs(t, err, fix.ErrGuardMismatch)

	_, err = fix.ApplyEdits("abc", []diag.FixEdit{fix.DeleteSpan(source.Span{Start: 2, End: 9}, "")})
	require.ErrorIs(t, err, fix.ErrEditOutOfRange)

	got, err := fix.ApplyEdits("abc", []diag.FixEdit{
		fix.InsertText(source.Span{Start: 3}, "!"),
		fix.ReplaceSpan(source.Span{Start: 0, End: 1}, "A", "a"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Abc!", got)
}

func TestActionFix(t *testing.T) {
	src := "x == 1"
	res := parser.ParseText(src)
	var fixes []diag.Fix
	analyzer.Analyze(res.Root, rules.NewRegistry(rules.Options{}), only(t, "suspicious/noDoubleEquals"),
		func(s analyzer.Signal) analyzer.ControlFlow {
			for _, a := range s.Actions() {
				f, err := fix.ActionFix(0, src, a)
				require.NoError(t, err)
				fixes = append(fixes, f)
			}
			return analyzer.Continue
		})
	require.Len(t, fixes, 1)
	assert.Equal(t, "Use ===", fixes[0].Title)
	assert.Equal(t, diag.FixMaybeIncorrect, fixes[0].Applicability)
	got, err := fix.ApplyEdits(src, fixes[0].Edits)
	require.NoError(t, err)
	assert.Equal(t, "x === 1", got)
}

func TestDiff(t *testing.T) {
	assert.Empty(t, fix.Diff("a.js", "same\n", "same\n"))

	out := fix.Diff("a.js", "a;\nb;\nc;\n", "a;\nx;\nc;\n")
	assert.Contains(t, out, "--- a.js\n+++ a.js\n")
	assert.Contains(t, out, "-b;\n")
	assert.Contains(t, out, "+x;\n")
	assert.Contains(t, out, " a;\n")

	long := "1\n2\n3\n4\n5\n6\n7\nold\n"
	out = fix.Diff("b.js", long, "1\n2\n3\n4\n5\n6\n7\nnew\n")
	assert.Contains(t, out, "@@ -6 @@\n 6\n 7\n-old\n+new\n")
	assert.NotContains(t, out, " 1\n")
}
