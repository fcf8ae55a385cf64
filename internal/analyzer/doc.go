// Package analyzer runs lint rules over a syntax tree.
//
// An Engine walks the tree once per Phase. The syntax phase dispatches
// rules that query plain nodes and builds the semantic model as it goes;
// the semantic phase dispatches rules that need bindings and references.
// Rules are registered in a Registry keyed by phase and node kind, and each
// match produces Signals that are handed to the caller's emit callback.
//
// Rules never see each other's edits: every action is a mutation of the
// same snapshot the rule was run on.
package analyzer
