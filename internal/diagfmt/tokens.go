package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"stcheck/internal/source"
	"stcheck/internal/token"
)

// TokensPretty writes one token per line for lexer inspection.
func TokensPretty(w io.Writer, file *source.File, toks []token.Token) error {
	for _, t := range toks {
		pos := file.LineCol(t.Span.Start)
		text := t.Text
		if len(text) > 40 {
			text = text[:37] + "..."
		}
		if _, err := fmt.Fprintf(w, "%4d:%-3d %-16s %q\n",
			pos.Line, pos.Col, t.Kind.String(), text); err != nil {
			return err
		}
	}
	return nil
}

type jsonToken struct {
	Kind   string `json:"kind"`
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
	Text   string `json:"text,omitempty"`
}

// TokensJSON writes the token stream as a JSON array.
func TokensJSON(w io.Writer, file *source.File, toks []token.Token) error {
	out := make([]jsonToken, 0, len(toks))
	for _, t := range toks {
		pos := file.LineCol(t.Span.Start)
		out = append(out, jsonToken{
			Kind: t.Kind.String(), Line: pos.Line, Column: pos.Col, Text: t.Text,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
