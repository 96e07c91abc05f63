package diagfmt

import (
	"encoding/json"
	"io"

	"stcheck/internal/diag"
	"stcheck/internal/source"
)

// jsonDiagnostic is the wire shape of one diagnostic. Positions are 1-based.
type jsonDiagnostic struct {
	Severity string     `json:"severity"`
	ID       string     `json:"id"`
	Rule     string     `json:"rule"`
	Path     string     `json:"path"`
	Start    jsonPos    `json:"start"`
	End      jsonPos    `json:"end"`
	Message  string     `json:"message"`
	Fixes    []jsonFix  `json:"fixes,omitempty"`
	Notes    []jsonNote `json:"notes,omitempty"`
}

type jsonPos struct {
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
}

type jsonNote struct {
	Start   jsonPos `json:"start"`
	Message string  `json:"message"`
}

type jsonFix struct {
	Title string     `json:"title"`
	Edits []jsonEdit `json:"edits"`
}

type jsonEdit struct {
	Start   jsonPos `json:"start"`
	End     jsonPos `json:"end"`
	NewText string  `json:"newText"`
}

type jsonReport struct {
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

// JSON writes diagnostics as one indented JSON document.
func JSON(w io.Writer, fileSet *source.FileSet, diags []diag.Diagnostic) error {
	report := jsonReport{Diagnostics: make([]jsonDiagnostic, 0, len(diags))}

	for i := range diags {
		d := &diags[i]
		file := fileSet.Get(d.Primary.File)
		start, end := fileSet.Resolve(d.Primary)

		jd := jsonDiagnostic{
			Severity: d.Severity.String(),
			ID:       d.Code.ID(),
			Rule:     d.Code.String(),
			Path:     file.Path,
			Start:    jsonPos{Line: start.Line, Column: start.Col},
			End:      jsonPos{Line: end.Line, Column: end.Col},
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			npos := file.LineCol(n.Span.Start)
			jd.Notes = append(jd.Notes, jsonNote{
				Start:   jsonPos{Line: npos.Line, Column: npos.Col},
				Message: n.Msg,
			})
		}
		for _, fix := range d.Fixes {
			jf := jsonFix{Title: fix.Title}
			for _, e := range fix.Edits {
				es, ee := fileSet.Resolve(e.Span)
				jf.Edits = append(jf.Edits, jsonEdit{
					Start:   jsonPos{Line: es.Line, Column: es.Col},
					End:     jsonPos{Line: ee.Line, Column: ee.Col},
					NewText: e.NewText,
				})
			}
			jd.Fixes = append(jd.Fixes, jf)
		}
		report.Diagnostics = append(report.Diagnostics, jd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
