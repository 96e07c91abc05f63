// Package token defines lexical token kinds for structured text source.
// Invariants:
//   - Token.Text is exactly the original source slice, casing preserved.
//   - Token.Span matches Text (Start..End, byte offsets).
//   - Keywords are recognized case-insensitively; END_IF and end_if are the
//     same Kind with different Text.
//   - Comments and {attribute ...} pragmas are real tokens, not trivia: the
//     rule layer needs their text and position.
//   - Elementary type names (BOOL, INT, LREAL, ...) are identifiers. They are
//     recognized by rules, not by the lexer.
package token
