package lexer

import (
	"stcheck/internal/diag"
	"stcheck/internal/source"
)

// Options configures a Lexer.
type Options struct {
	// Reporter receives lexical diagnostics. A nil Reporter is replaced by
	// diag.NopReporter; scanning always continues either way.
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
}
