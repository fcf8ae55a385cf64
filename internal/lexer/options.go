package lexer

import (
	"lintel/internal/diag"
	"lintel/internal/source"
)

type Options struct {
	Reporter diag.Reporter // nil ignores errors; lexing continues either way
}

func (lx *Lexer) errLex(code diag.Code, r source.TextRange, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, source.SpanOf(lx.file.ID, r), msg).Emit()
	}
}
