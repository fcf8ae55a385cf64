// Package diag defines the diagnostic model shared by the lexer, the parser,
// the analyzer and the fix engine.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Hint, Info, Warning or Error (severity.go).
//   - Code: compact numeric identifier with a stable string form (codes.go).
//     Lexer and parser errors use LEX/SYN codes; rule findings use LintRule
//     and carry the rule name in Category.
//   - Category: slash-separated name such as "parse" or
//     "lint/style/noNegationElse". Suppression comments and configuration
//     address diagnostics by category.
//   - Primary span plus optional Notes.
//   - Fixes: text edits with an Applicability telling automated tooling
//     whether the edit may be applied without review.
//
// Package diag does no formatting beyond the golden/short single-line form
// used in tests. Rendering lives in internal/diagfmt; applying fixes lives in
// internal/fix.
//
// # Emitting diagnostics
//
// Producers report through a Reporter. ReportBuilder chains notes and fixes
// before Emit; BagReporter collects into a Bag, which sorts and deduplicates
// deterministically so output order is stable across runs.
package diag
