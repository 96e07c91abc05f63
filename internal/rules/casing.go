package rules

import "strings"

// Identifier characters are ASCII; the lexer guarantees it.

func isUpperByte(b byte) bool { return b >= 'A' && b <= 'Z' }
func isLowerByte(b byte) bool { return b >= 'a' && b <= 'z' }
func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

// isPascalCase: leading uppercase letter, then letters and digits only.
func isPascalCase(s string) bool {
	if s == "" || !isUpperByte(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		b := s[i]
		if !isUpperByte(b) && !isLowerByte(b) && !isDigitByte(b) {
			return false
		}
	}
	return true
}

// isCamelCase: leading lowercase letter, then letters and digits only.
func isCamelCase(s string) bool {
	if s == "" || !isLowerByte(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		b := s[i]
		if !isUpperByte(b) && !isLowerByte(b) && !isDigitByte(b) {
			return false
		}
	}
	return true
}

// isAllCaps: leading uppercase letter, then uppercase letters, digits and
// underscores.
func isAllCaps(s string) bool {
	if s == "" || !isUpperByte(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		b := s[i]
		if !isUpperByte(b) && !isDigitByte(b) && b != '_' {
			return false
		}
	}
	return true
}

// classNameOK accepts PascalCase, plus a single internal underscore when the
// trailing segment is a type suffix written in caps and digits
// (AnalogValue_LREAL).
func classNameOK(s string) bool {
	if isPascalCase(s) {
		return true
	}
	head, tail, found := strings.Cut(s, "_")
	if !found || head == "" || tail == "" {
		return false
	}
	if !isPascalCase(head) {
		return false
	}
	for i := 0; i < len(tail); i++ {
		if !isUpperByte(tail[i]) && !isDigitByte(tail[i]) {
			return false
		}
	}
	return true
}

// pascalFix rewrites an identifier into PascalCase: underscores removed,
// each segment's first letter raised.
func pascalFix(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	upNext := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' {
			upNext = true
			continue
		}
		if upNext && isLowerByte(c) {
			c -= 'a' - 'A'
		}
		upNext = false
		b.WriteByte(c)
	}
	return b.String()
}

// camelFix rewrites an identifier into camelCase.
func camelFix(s string) string {
	p := pascalFix(s)
	if p == "" {
		return p
	}
	if isUpperByte(p[0]) {
		return string(p[0]+'a'-'A') + p[1:]
	}
	return p
}

// allCapsFix rewrites an identifier into ALL_CAPS_WITH_UNDERSCORES,
// inserting an underscore before each interior word boundary.
func allCapsFix(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUpperByte(c) && i > 0 && (isLowerByte(s[i-1]) || isDigitByte(s[i-1])) {
			b.WriteByte('_')
		}
		if isLowerByte(c) {
			c -= 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}
