package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lintel/internal/analyzer"
	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/mutation"
	"lintel/internal/parser"
	"lintel/internal/source"
	"lintel/internal/syntax"
)

// stmtRule reports every expression statement.
type stmtRule struct {
	name     string
	semantic bool
	sawModel *[]bool
}

func (r stmtRule) Metadata() analyzer.Metadata {
	return analyzer.Metadata{
		Group:    "test",
		Name:     r.name,
		Category: analyzer.CategoryLint,
		Severity: diag.SevWarning,
		HasFix:   true,
	}
}

func (r stmtRule) Query() analyzer.Query[ast.ExpressionStatement] {
	kinds := syntax.KindSetOf(syntax.ExpressionStatement)
	if r.semantic {
		return analyzer.Semantic(kinds, ast.CastExpressionStatement)
	}
	return analyzer.Ast(kinds, ast.CastExpressionStatement)
}

func (r stmtRule) Run(ctx *analyzer.RuleContext[ast.ExpressionStatement]) []string {
	if r.sawModel != nil {
		*r.sawModel = append(*r.sawModel, ctx.Model() != nil)
	}
	return []string{ctx.Query().String()}
}

func (r stmtRule) Diagnostic(ctx *analyzer.RuleContext[ast.ExpressionStatement], s string) (analyzer.RuleDiagnostic, bool) {
	return analyzer.NewDiagnostic(ctx.Query().Range(), r.name+": "+s), true
}

func (r stmtRule) Action(ctx *analyzer.RuleContext[ast.ExpressionStatement], _ string) (analyzer.RuleAction, bool) {
	m := ctx.Mutation()
	m.RemoveNode(ctx.Node())
	return analyzer.RuleAction{Message: "remove statement", Mutation: m}, true
}

func register(t *testing.T, rules ...stmtRule) *analyzer.Registry {
	t.Helper()
	reg := analyzer.NewRegistry()
	for _, r := range rules {
		require.NoError(t, analyzer.Register[ast.ExpressionStatement, string](reg, r))
	}
	return reg
}

type finding struct {
	Category string
	Message  string
	Range    source.TextRange
	Severity diag.Severity
}

func run(t *testing.T, src string, reg *analyzer.Registry, opts analyzer.Options) []finding {
	t.Helper()
	res := parser.ParseText(src)
	require.False(t, res.HasErrors(), "parse errors: %v", res.Diagnostics)
	var out []finding
	analyzer.Analyze(res.Root, reg, opts, func(s analyzer.Signal) analyzer.ControlFlow {
		d, ok := s.Diagnostic()
		require.True(t, ok)
		out = append(out, finding{d.Category, d.Message, d.Range, d.Severity})
		return analyzer.Continue
	})
	return out
}

func messages(fs []finding) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Message
	}
	return out
}

func TestRegistrationOrderPerNode(t *testing.T) {
	reg := register(t, stmtRule{name: "first"}, stmtRule{name: "second"})
	got := run(t, "a; b;", reg, analyzer.Options{})
	assert.Equal(t, []string{"first: a;", "second: a;", "first: b;", "second: b;"}, messages(got))
	assert.Equal(t, "lint/test/first", got[0].Category)
	assert.Equal(t, diag.SevWarning, got[0].Severity)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	reg := register(t, stmtRule{name: "dup"})
	err := analyzer.Register[ast.ExpressionStatement, string](reg, stmtRule{name: "dup"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test/dup")
	assert.Equal(t, 1, reg.Len())
}

func TestSyntaxPhaseRunsBeforeSemantic(t *testing.T) {
	var syntaxSaw, semanticSaw []bool
	reg := register(t,
		stmtRule{name: "late", semantic: true, sawModel: &semanticSaw},
		stmtRule{name: "early", sawModel: &syntaxSaw},
	)
	got := run(t, "a; b;", reg, analyzer.Options{})
	assert.Equal(t, []string{"early: a;", "early: b;", "late: a;", "late: b;"}, messages(got))
	assert.Equal(t, []bool{false, false}, syntaxSaw)
	assert.Equal(t, []bool{true, true}, semanticSaw)
}

func TestBreakStopsWalk(t *testing.T) {
	reg := register(t, stmtRule{name: "r"})
	res := parser.ParseText("a; b; c;")
	calls := 0
	broke := analyzer.Analyze(res.Root, reg, analyzer.Options{}, func(analyzer.Signal) analyzer.ControlFlow {
		calls++
		return analyzer.Break
	})
	assert.True(t, broke)
	assert.Equal(t, 1, calls)
}

func TestRangeFilterSkipsOutsideNodes(t *testing.T) {
	reg := register(t, stmtRule{name: "r"})
	rng := source.NewRange(4, 6) // inside "b;"
	got := run(t, "a;  b;  c;", reg, analyzer.Options{Filter: analyzer.AnalysisFilter{Range: &rng}})
	assert.Equal(t, []string{"r: b;"}, messages(got))
}

func TestBogusSubtreeSkipped(t *testing.T) {
	res := parser.ParseText("a; b;")
	second := nthKind(t, res.Root, syntax.ExpressionStatement, 1)
	m := mutation.Begin(res.Root)
	m.ReplaceNode(second, syntax.NewGreenNode(syntax.BogusStatement, []syntax.GreenElement{
		syntax.NodeElement(second.Green()),
	}))
	root, err := m.Commit()
	require.NoError(t, err)

	reg := register(t, stmtRule{name: "r"})
	var got []string
	analyzer.Analyze(root, reg, analyzer.Options{}, func(s analyzer.Signal) analyzer.ControlFlow {
		d, _ := s.Diagnostic()
		got = append(got, d.Message)
		return analyzer.Continue
	})
	assert.Equal(t, []string{"r: a;"}, got)
}

func nthKind(t *testing.T, root syntax.SyntaxNode, k syntax.Kind, i int) syntax.SyntaxNode {
	t.Helper()
	for n := range root.Descendants() {
		if n.Kind() == k {
			if i == 0 {
				return n
			}
			i--
		}
	}
	t.Fatalf("no %s #%d", k, i)
	return syntax.SyntaxNode{}
}

func TestSuppressionComment(t *testing.T) {
	reg := register(t, stmtRule{name: "one"}, stmtRule{name: "two"})
	src := "a;\n// lintel-ignore lint/test/one: known\nb;\nc;"
	got := run(t, src, reg, analyzer.Options{})
	assert.Equal(t, []string{"one: a;", "two: a;", "two: b;", "one: c;", "two: c;"}, messages(got))
}

func TestSuppressionByGroupAndAll(t *testing.T) {
	reg := register(t, stmtRule{name: "one"}, stmtRule{name: "two"})
	got := run(t, "/* lintel-ignore lint/test: generated */ a;\n// lintel-ignore lint: vendored\nb;", reg, analyzer.Options{})
	assert.Empty(t, got)
}

func TestMalformedSuppressions(t *testing.T) {
	reg := register(t, stmtRule{name: "one"})
	cases := []struct {
		src  string
		want string
	}{
		{"// lintel-ignore lint/test/one\na;", "missing an explanation"},
		{"// lintel-ignore: why\na;", "names no rule"},
		{"// lintel-ignore lint/test/nope: why\na;", "unknown lint rule"},
		{"// lintel-ignore style: why\na;", "unknown suppression category"},
	}
	for _, c := range cases {
		got := run(t, c.src, reg, analyzer.Options{})
		require.Len(t, got, 2, c.src)
		assert.Equal(t, diag.CategorySuppressionParse, got[0].Category, c.src)
		assert.Contains(t, got[0].Message, c.want, c.src)
		// a malformed comment suppresses nothing
		assert.Equal(t, "one: a;", got[1].Message, c.src)
	}
}

func TestOrdinaryCommentsIgnored(t *testing.T) {
	reg := register(t, stmtRule{name: "one"})
	got := run(t, "// lintel-ignored is just prose\na;", reg, analyzer.Options{})
	assert.Equal(t, []string{"one: a;"}, messages(got))
}

func TestUnusedSuppression(t *testing.T) {
	reg := register(t, stmtRule{name: "one"}, stmtRule{name: "two"})
	src := "// lintel-ignore lint/test/one: fine\na;\nfunction f() {\n// lintel-ignore lint/test/two: stale\nreturn 1;\n}"
	opts := analyzer.Options{Filter: analyzer.AnalysisFilter{ReportUnusedSuppressions: true}}
	got := run(t, src, reg, opts)

	require.NotEmpty(t, got)
	last := got[len(got)-1]
	assert.Equal(t, diag.CategorySuppressionUnused, last.Category)
	assert.Contains(t, last.Message, "lint/test/two")
	assert.Equal(t, []string{"two: a;"}, messages(got[:len(got)-1]))

	// a disabled rule's suppression is not reported
	opts.Filter.DisabledRules = []analyzer.RuleFilter{{Group: "test", Rule: "two"}}
	got = run(t, src, reg, opts)
	assert.Empty(t, got)
}

func TestFilterSelectsRules(t *testing.T) {
	reg := register(t, stmtRule{name: "one"}, stmtRule{name: "two"})

	only := analyzer.Options{Filter: analyzer.AnalysisFilter{EnabledRules: []analyzer.RuleFilter{{Group: "test", Rule: "two"}}}}
	assert.Equal(t, []string{"two: a;"}, messages(run(t, "a;", reg, only)))

	skip := analyzer.Options{Filter: analyzer.AnalysisFilter{DisabledRules: []analyzer.RuleFilter{{Group: "test"}}}}
	assert.Empty(t, run(t, "a;", reg, skip))

	syntaxOnly := analyzer.Options{Filter: analyzer.AnalysisFilter{Categories: analyzer.CategorySyntax}}
	assert.Empty(t, run(t, "a;", reg, syntaxOnly))
}

func TestSeverityOverride(t *testing.T) {
	reg := register(t, stmtRule{name: "one"})
	opts := analyzer.Options{Severity: map[analyzer.RuleKey]diag.Severity{{Group: "test", Name: "one"}: diag.SevError}}
	got := run(t, "a;", reg, opts)
	require.Len(t, got, 1)
	assert.Equal(t, diag.SevError, got[0].Severity)
}

func TestDeterministic(t *testing.T) {
	reg := register(t, stmtRule{name: "one"}, stmtRule{name: "two", semantic: true})
	src := "a; { b; } function f() { c; }\n// lintel-ignore lint/test/one: x\nd;"
	first := run(t, src, reg, analyzer.Options{})
	second := run(t, src, reg, analyzer.Options{})
	assert.Equal(t, first, second)
	assert.Len(t, first, 7)
}

func TestActionsMutateTheSnapshot(t *testing.T) {
	reg := register(t, stmtRule{name: "one"})
	res := parser.ParseText("a; b;")
	var texts []string
	analyzer.Analyze(res.Root, reg, analyzer.Options{}, func(s analyzer.Signal) analyzer.ControlFlow {
		for _, a := range s.Actions() {
			assert.Equal(t, "test/one", a.Rule)
			root, err := a.Mutation.Commit()
			require.NoError(t, err)
			texts = append(texts, root.Text())
		}
		return analyzer.Continue
	})
	// each action sees the original tree, not the other's edit
	assert.Equal(t, []string{"b;", "a; "}, texts)
}

func TestEngineExposesModel(t *testing.T) {
	reg := register(t, stmtRule{name: "one"})
	res := parser.ParseText("let a; a;")
	e := analyzer.New(reg, analyzer.Options{})
	e.Analyze(res.Root, func(analyzer.Signal) analyzer.ControlFlow { return analyzer.Continue })
	require.NotNil(t, e.Model())
	_, ok := e.Model().GlobalScope().Binding("a")
	assert.True(t, ok)
	assert.Equal(t, 1, e.Signals())
}

func TestParseRuleFilter(t *testing.T) {
	f, err := analyzer.ParseRuleFilter("lint/style/noVar")
	require.NoError(t, err)
	assert.Equal(t, analyzer.RuleFilter{Group: "style", Rule: "noVar"}, f)
	assert.True(t, f.Matches(analyzer.RuleKey{Group: "style", Name: "noVar"}))

	g, err := analyzer.ParseRuleFilter("suspicious")
	require.NoError(t, err)
	assert.True(t, g.Matches(analyzer.RuleKey{Group: "suspicious", Name: "noDebugger"}))

	_, err = analyzer.ParseRuleFilter("a/b/c")
	assert.Error(t, err)

	k, err := analyzer.ParseRuleKey("style/noVar")
	require.NoError(t, err)
	assert.Equal(t, "lint/style/noVar", k.Category())
	_, err = analyzer.ParseRuleKey("style")
	assert.Error(t, err)
}
