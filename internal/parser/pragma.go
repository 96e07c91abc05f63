package parser

import (
	"strings"

	"stcheck/internal/ast"
	"stcheck/internal/token"
)

// parsePragma extracts key and value from an attribute pragma token:
// {attribute 'key' := 'value'} or {attribute 'key'}. Unrecognized pragma
// forms keep only Raw.
func parsePragma(tok token.Token) ast.Pragma {
	pr := ast.Pragma{Raw: tok.Text, Span: tok.Span}

	body := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(tok.Text, "{"), "}"))
	rest, ok := cutKeyword(body, "attribute")
	if !ok {
		return pr
	}

	key, rest, ok := takeQuoted(rest)
	if !ok {
		return pr
	}
	pr.Key = key

	rest = strings.TrimSpace(rest)
	if after, found := strings.CutPrefix(rest, ":="); found {
		if val, _, ok := takeQuoted(after); ok {
			pr.Value = val
		}
	}
	return pr
}

// cutKeyword strips a leading keyword (case-insensitive) followed by a
// word boundary.
func cutKeyword(s, kw string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < len(kw) || !strings.EqualFold(s[:len(kw)], kw) {
		return "", false
	}
	rest := s[len(kw):]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' && rest[0] != '\'' {
		return "", false
	}
	return rest, true
}

// takeQuoted returns the content of the first '...' literal and the text
// after it.
func takeQuoted(s string) (string, string, bool) {
	open := strings.IndexByte(s, '\'')
	if open < 0 {
		return "", "", false
	}
	close := strings.IndexByte(s[open+1:], '\'')
	if close < 0 {
		return "", "", false
	}
	return s[open+1 : open+1+close], s[open+close+2:], true
}
