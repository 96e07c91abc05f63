package token

import "strings"

var keywords = map[string]Kind{
	"PROGRAM":            KwProgram,
	"END_PROGRAM":        KwEndProgram,
	"FUNCTION_BLOCK":     KwFunctionBlock,
	"END_FUNCTION_BLOCK": KwEndFunctionBlock,
	"CLASS":              KwClass,
	"END_CLASS":          KwEndClass,
	"INTERFACE":          KwInterface,
	"END_INTERFACE":      KwEndInterface,
	"METHOD":             KwMethod,
	"END_METHOD":         KwEndMethod,
	"PROPERTY":           KwProperty,
	"END_PROPERTY":       KwEndProperty,
	"VAR":                KwVar,
	"VAR_INPUT":          KwVarInput,
	"VAR_OUTPUT":         KwVarOutput,
	"VAR_IN_OUT":         KwVarInOut,
	"END_VAR":            KwEndVar,
	"CONSTANT":           KwConstant,
	"PERSISTENT":         KwPersistent,
	"RETAIN":             KwRetain,
	"EXTENDS":            KwExtends,
	"IMPLEMENTS":         KwImplements,
	"AT":                 KwAt,
	"POINTER":            KwPointer,
	"REFERENCE":          KwReference,
	"TO":                 KwTo,
	"ARRAY":              KwArray,
	"OF":                 KwOf,
	"IF":                 KwIf,
	"THEN":               KwThen,
	"ELSIF":              KwElsif,
	"ELSE":               KwElse,
	"END_IF":             KwEndIf,
	"CASE":               KwCase,
	"END_CASE":           KwEndCase,
	"RETURN":             KwReturn,
	"EXIT":               KwExit,
	"FOR":                KwFor,
	"END_FOR":            KwEndFor,
	"WHILE":              KwWhile,
	"END_WHILE":          KwEndWhile,
	"REPEAT":             KwRepeat,
	"END_REPEAT":         KwEndRepeat,
	"DO":                 KwDo,
	"UNTIL":              KwUntil,
	"BY":                 KwBy,
	"NOT":                KwNot,
	"AND":                KwAnd,
	"OR":                 KwOr,
	"XOR":                KwXor,
	"MOD":                KwMod,
	"TRUE":               KwTrue,
	"FALSE":              KwFalse,
	"ABSTRACT":           KwAbstract,
	"FINAL":              KwFinal,
	"PUBLIC":             KwPublic,
	"PRIVATE":            KwPrivate,
	"PROTECTED":          KwProtected,
	"INTERNAL":           KwInternal,
}

// LookupKeyword returns the keyword kind for an identifier, if it is one.
// Keywords are matched case-insensitively; the caller keeps the original
// spelling in Token.Text for casing rules.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[strings.ToUpper(ident)]
	return k, ok
}
