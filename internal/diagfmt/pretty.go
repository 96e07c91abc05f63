package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"stcheck/internal/diag"
	"stcheck/internal/source"
)

// PrettyOptions controls the human-readable renderer.
type PrettyOptions struct {
	// Color enables ANSI colors. The caller decides based on terminal
	// detection and flags.
	Color bool
	// ShowSource prints the offending line with a caret marker.
	ShowSource bool
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	pathColor    = color.New(color.Bold)
	caretColor   = color.New(color.FgGreen, color.Bold)
)

// Pretty writes diagnostics as path:line:col lines with an optional source
// excerpt, the way a compiler reports to a terminal.
func Pretty(w io.Writer, fileSet *source.FileSet, diags []diag.Diagnostic, opts PrettyOptions) error {
	for i := range diags {
		if err := prettyOne(w, fileSet, &diags[i], opts); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, fileSet *source.FileSet, d *diag.Diagnostic, opts PrettyOptions) error {
	file := fileSet.Get(d.Primary.File)
	pos := file.LineCol(d.Primary.Start)

	sev := d.Severity.String()
	loc := fmt.Sprintf("%s:%d:%d", file.Path, pos.Line, pos.Col)
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
		loc = pathColor.Sprint(loc)
	}

	if _, err := fmt.Fprintf(w, "%s: %s [%s] %s: %s\n",
		loc, sev, d.Code.ID(), d.Code.String(), d.Message); err != nil {
		return err
	}

	if opts.ShowSource {
		if err := prettySource(w, file, d.Primary, pos, opts); err != nil {
			return err
		}
	}

	for _, n := range d.Notes {
		npos := file.LineCol(n.Span.Start)
		if _, err := fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
			file.Path, npos.Line, npos.Col, n.Msg); err != nil {
			return err
		}
	}
	for _, fix := range d.Fixes {
		if _, err := fmt.Fprintf(w, "  fix: %s\n", fix.Title); err != nil {
			return err
		}
	}
	return nil
}

// prettySource prints the offending line and a caret run underneath. The
// caret column is computed with display widths so tabs and wide runes do
// not skew the marker.
func prettySource(w io.Writer, file *source.File, sp source.Span, pos source.LineCol, opts PrettyOptions) error {
	line := file.GetLine(pos.Line)
	if line == "" {
		return nil
	}

	gutter := fmt.Sprintf("%5d | ", pos.Line)
	if _, err := fmt.Fprintf(w, "%s%s\n", gutter, expandTabs(line)); err != nil {
		return err
	}

	startIdx := int(pos.Col) - 1
	if startIdx > len(line) {
		startIdx = len(line)
	}
	pad := runewidth.StringWidth(expandTabs(line[:startIdx]))

	width := 1
	end := file.LineCol(sp.End)
	if endIdx := int(end.Col) - 1; end.Line == pos.Line && endIdx > startIdx {
		if endIdx > len(line) {
			endIdx = len(line)
		}
		width = runewidth.StringWidth(line[startIdx:endIdx])
	}
	if width < 1 {
		width = 1
	}

	carets := strings.Repeat("^", width)
	if opts.Color {
		carets = caretColor.Sprint(carets)
	}
	_, err := fmt.Fprintf(w, "%s%s%s\n",
		strings.Repeat(" ", len(gutter)), strings.Repeat(" ", pad), carets)
	return err
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}
