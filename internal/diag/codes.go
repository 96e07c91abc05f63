package diag

import (
	"fmt"
)

// Code identifies one kind of diagnostic. Lexical codes live in the 1xxx
// range, structural parse codes in 2xxx, convention rule codes in 3xxx and
// I/O codes in 4xxx.
type Code uint16

const (
	// UnknownCode is the fallback for unclassified diagnostics.
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar          Code = 1001
	LexUnterminatedString   Code = 1002
	LexUnterminatedComment  Code = 1003
	LexUnterminatedPragma   Code = 1004
	LexBadNumber            Code = 1005
	LexInvalidEncoding      Code = 1006

	// Structural parse
	SynUnexpectedToken      Code = 2001
	SynMismatchedTerminator Code = 2002
	SynExpectIdentifier     Code = 2003
	SynUnknownSection       Code = 2004
	SynUnterminatedUnit     Code = 2005
	SynExpectType           Code = 2006
	SynExpectSemicolon      Code = 2007
	SynMultipleBaseTypes    Code = 2008
	SynSectionNotAllowed    Code = 2009
	SynExpectColon          Code = 2010
	SynDuplicateEnumMember  Code = 2011

	// Convention rules
	RuleClassNaming               Code = 3001
	RuleInterfaceNaming           Code = 3002
	RulePrivateVariableCasing     Code = 3003
	RuleConstantAndEnumCasing     Code = 3004
	RulePointerNaming             Code = 3005
	RuleClassBodyEmpty            Code = 3006
	RuleMissingNoExplicitCall     Code = 3007
	RuleMethodArgumentCount       Code = 3008
	RulePossibleDualPurposeMethod Code = 3009
	RuleCompoundMethodName        Code = 3010
	RulePreferGuardClause         Code = 3011
	RuleMisalignedDeclaration     Code = 3012
	RuleInternalError             Code = 3999

	// I/O
	IOLoadFileError Code = 4001
)

var codeNames = map[Code]string{
	UnknownCode: "Unknown",

	LexUnknownChar:         "UnknownCharacter",
	LexUnterminatedString:  "UnterminatedString",
	LexUnterminatedComment: "UnterminatedComment",
	LexUnterminatedPragma:  "UnterminatedPragma",
	LexBadNumber:           "MalformedNumber",
	LexInvalidEncoding:     "InvalidEncoding",

	SynUnexpectedToken:      "ParseError",
	SynMismatchedTerminator: "MismatchedTerminator",
	SynExpectIdentifier:     "ExpectedIdentifier",
	SynUnknownSection:       "UnknownSection",
	SynUnterminatedUnit:     "UnterminatedUnit",
	SynExpectType:           "ExpectedType",
	SynExpectSemicolon:      "ExpectedSemicolon",
	SynMultipleBaseTypes:    "MultipleBaseTypes",
	SynSectionNotAllowed:    "SectionNotAllowed",
	SynExpectColon:          "ExpectedColon",
	SynDuplicateEnumMember:  "DuplicateEnumMember",

	RuleClassNaming:               "ClassNaming",
	RuleInterfaceNaming:           "InterfaceNaming",
	RulePrivateVariableCasing:     "PrivateVariableCasing",
	RuleConstantAndEnumCasing:     "ConstantAndEnumCasing",
	RulePointerNaming:             "PointerNaming",
	RuleClassBodyEmpty:            "ClassBodyEmpty",
	RuleMissingNoExplicitCall:     "MissingNoExplicitCallAttribute",
	RuleMethodArgumentCount:       "MethodArgumentCount",
	RulePossibleDualPurposeMethod: "PossibleDualPurposeMethod",
	RuleCompoundMethodName:        "CompoundMethodName",
	RulePreferGuardClause:         "PreferGuardClause",
	RuleMisalignedDeclaration:     "MisalignedDeclaration",
	RuleInternalError:             "RuleInternalError",

	IOLoadFileError: "LoadFileError",
}

// String returns the stable rule/diagnostic name, e.g. "ClassNaming".
// Config files key rule overrides by this name.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", uint16(c))
}

// ID returns the short prefixed identifier, e.g. "STC3001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("STC%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

// CodeByName resolves a rule/diagnostic name back to its Code.
func CodeByName(name string) (Code, bool) {
	for c, n := range codeNames {
		if n == name {
			return c, true
		}
	}
	return UnknownCode, false
}
