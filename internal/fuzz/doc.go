// Package fuzztests houses Go fuzz harnesses for the front of the pipeline
// (source -> lexer -> parser) and for the fix loop. Every harness checks the
// lossless invariants on arbitrary input besides guarding against panics and
// hangs.
package fuzztests
