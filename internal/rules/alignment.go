package rules

import (
	"stcheck/internal/ast"
	"stcheck/internal/diag"
	"stcheck/internal/source"
)

// AlignmentFormatting checks the declaration layout convention: one leading
// tab per declaration line, exactly one space around ':', 'AT' and ':=',
// and the multi-line initializer shape
//
//	instance : FB_Thing := FB_Thing(
//		Param  := 1,
//		Param2 := 2
//	);
//
// with one extra tab per argument line, a trailing comma on all but the
// last argument and the closing parenthesis back at the declaration's own
// indentation. The parser accepts any whitespace; everything here reads the
// raw indent table and the punctuation spans it preserved.
type AlignmentFormatting struct{}

func (AlignmentFormatting) Code() diag.Code               { return diag.RuleMisalignedDeclaration }
func (AlignmentFormatting) DefaultSeverity() diag.Severity { return diag.SevWarning }
func (AlignmentFormatting) Doc() string {
	return "declarations must follow the tab-indented, single-space alignment layout"
}

func (r AlignmentFormatting) CheckBlock(ctx *Context, _ *ast.Unit, blk *ast.DeclBlock) {
	for _, d := range blk.Decls {
		r.checkDecl(ctx, d)
	}
}

func (r AlignmentFormatting) checkDecl(ctx *Context, d *ast.Decl) {
	declIndent := ctx.Indent(d.Name.Span.Start)
	if declIndent != "\t" {
		ctx.Report(d.Span,
			"declaration of '"+d.Name.Text+"' must start with exactly one tab")
	}

	if !d.ColonSpan.Empty() {
		r.checkSpacing(ctx, d.ColonSpan, "':'")
	}
	if !d.AtSpan.Empty() {
		r.checkSpacing(ctx, d.AtSpan, "'AT'")
	}
	if !d.AssignSpan.Empty() {
		r.checkSpacing(ctx, d.AssignSpan, "':='")
	}

	if d.Init != nil && d.Init.Call != nil {
		r.checkInitCall(ctx, d, declIndent)
	}
}

// checkSpacing verifies exactly one space on each side of the token at sp.
func (r AlignmentFormatting) checkSpacing(ctx *Context, sp source.Span, what string) {
	content := ctx.File.Content

	okBefore := sp.Start >= 1 && content[sp.Start-1] == ' ' &&
		(sp.Start < 2 || (content[sp.Start-2] != ' ' && content[sp.Start-2] != '\t'))
	okAfter := int(sp.End) < len(content) && content[sp.End] == ' ' &&
		(int(sp.End)+1 >= len(content) || content[sp.End+1] != ' ')

	if !okBefore || !okAfter {
		ctx.Report(sp, "expected exactly one space around "+what)
	}
}

// checkInitCall verifies the multi-line initializer layout. Single-line
// calls are left alone.
func (r AlignmentFormatting) checkInitCall(ctx *Context, d *ast.Decl, declIndent string) {
	call := d.Init.Call
	if call.LParen.Empty() || call.RParen.Empty() {
		return
	}
	openLine := ctx.File.LineOf(call.LParen.Start)
	closeLine := ctx.File.LineOf(call.RParen.Start)
	if openLine == closeLine {
		return
	}

	if call.LParen.Start != call.TypeName.Span.End {
		ctx.Report(call.LParen,
			"no space between initializer type and '('")
	}

	argIndent := declIndent + "\t"
	prevLine := openLine
	for i := range call.Args {
		arg := &call.Args[i]
		argLine := ctx.File.LineOf(arg.Span.Start)
		if argLine == prevLine {
			ctx.Report(arg.Span, "each initializer argument must be on its own line")
		} else if ctx.Indents[argLine] != argIndent {
			ctx.Report(arg.Span,
				"initializer argument must be indented one tab past the declaration")
		}
		prevLine = argLine

		last := i == len(call.Args)-1
		switch {
		case !last && !arg.Comma:
			ctx.Report(arg.Span, "missing ',' after initializer argument")
		case last && arg.Comma:
			ctx.Report(arg.Span, "remove the ',' after the last initializer argument")
		}
	}

	if closeLine == prevLine && len(call.Args) > 0 {
		ctx.Report(call.RParen, "closing ');' must be on its own line")
	} else if ctx.Indents[closeLine] != declIndent {
		ctx.Report(call.RParen,
			"closing ');' must align with the declaration's indentation")
	}
}
