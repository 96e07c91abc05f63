package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwProgram represents the 'PROGRAM' keyword.
	KwProgram
	// KwEndProgram represents the 'END_PROGRAM' keyword.
	KwEndProgram
	// KwFunctionBlock represents the 'FUNCTION_BLOCK' keyword.
	KwFunctionBlock
	// KwEndFunctionBlock represents the 'END_FUNCTION_BLOCK' keyword.
	KwEndFunctionBlock
	// KwClass represents the 'CLASS' keyword.
	KwClass
	// KwEndClass represents the 'END_CLASS' keyword.
	KwEndClass
	// KwInterface represents the 'INTERFACE' keyword.
	KwInterface
	// KwEndInterface represents the 'END_INTERFACE' keyword.
	KwEndInterface
	// KwMethod represents the 'METHOD' keyword.
	KwMethod
	// KwEndMethod represents the 'END_METHOD' keyword.
	KwEndMethod
	// KwProperty represents the 'PROPERTY' keyword.
	KwProperty
	// KwEndProperty represents the 'END_PROPERTY' keyword.
	KwEndProperty

	// KwVar represents the 'VAR' keyword.
	KwVar
	// KwVarInput represents the 'VAR_INPUT' keyword.
	KwVarInput
	// KwVarOutput represents the 'VAR_OUTPUT' keyword.
	KwVarOutput
	// KwVarInOut represents the 'VAR_IN_OUT' keyword.
	KwVarInOut
	// KwEndVar represents the 'END_VAR' keyword.
	KwEndVar
	// KwConstant represents the 'CONSTANT' section qualifier.
	KwConstant
	// KwPersistent represents the 'PERSISTENT' section qualifier.
	KwPersistent
	// KwRetain represents the 'RETAIN' section qualifier.
	KwRetain

	// KwExtends represents the 'EXTENDS' keyword.
	KwExtends
	// KwImplements represents the 'IMPLEMENTS' keyword.
	KwImplements
	// KwAt represents the 'AT' keyword.
	KwAt
	// KwPointer represents the 'POINTER' keyword.
	KwPointer
	// KwReference represents the 'REFERENCE' keyword.
	KwReference
	// KwTo represents the 'TO' keyword.
	KwTo
	// KwArray represents the 'ARRAY' keyword.
	KwArray
	// KwOf represents the 'OF' keyword.
	KwOf

	// KwIf represents the 'IF' keyword.
	KwIf
	// KwThen represents the 'THEN' keyword.
	KwThen
	// KwElsif represents the 'ELSIF' keyword.
	KwElsif
	// KwElse represents the 'ELSE' keyword.
	KwElse
	// KwEndIf represents the 'END_IF' keyword.
	KwEndIf
	// KwCase represents the 'CASE' keyword.
	KwCase
	// KwEndCase represents the 'END_CASE' keyword.
	KwEndCase
	// KwReturn represents the 'RETURN' keyword.
	KwReturn
	// KwExit represents the 'EXIT' keyword.
	KwExit
	// KwFor represents the 'FOR' keyword.
	KwFor
	// KwEndFor represents the 'END_FOR' keyword.
	KwEndFor
	// KwWhile represents the 'WHILE' keyword.
	KwWhile
	// KwEndWhile represents the 'END_WHILE' keyword.
	KwEndWhile
	// KwRepeat represents the 'REPEAT' keyword.
	KwRepeat
	// KwEndRepeat represents the 'END_REPEAT' keyword.
	KwEndRepeat
	// KwDo represents the 'DO' keyword.
	KwDo
	// KwUntil represents the 'UNTIL' keyword.
	KwUntil
	// KwBy represents the 'BY' keyword.
	KwBy

	// KwNot represents the 'NOT' operator keyword.
	KwNot
	// KwAnd represents the 'AND' operator keyword.
	KwAnd
	// KwOr represents the 'OR' operator keyword.
	KwOr
	// KwXor represents the 'XOR' operator keyword.
	KwXor
	// KwMod represents the 'MOD' operator keyword.
	KwMod
	// KwTrue represents the 'TRUE' literal keyword.
	KwTrue
	// KwFalse represents the 'FALSE' literal keyword.
	KwFalse

	// KwAbstract represents the 'ABSTRACT' modifier.
	KwAbstract
	// KwFinal represents the 'FINAL' modifier.
	KwFinal
	// KwPublic represents the 'PUBLIC' access modifier.
	KwPublic
	// KwPrivate represents the 'PRIVATE' access modifier.
	KwPrivate
	// KwProtected represents the 'PROTECTED' access modifier.
	KwProtected
	// KwInternal represents the 'INTERNAL' access modifier.
	KwInternal

	// IntLit represents an integer literal, including based forms like 16#FF.
	IntLit
	// RealLit represents a floating point literal.
	RealLit
	// TimeLit represents a duration/date literal such as T#5s or DT#....
	TimeLit
	// StringLit represents a single-quoted string literal.
	StringLit
	// DirectAddr represents a direct address such as %IX0.0 or %Q*.
	DirectAddr

	// CommentLine represents a '//' comment, retained as a token.
	CommentLine
	// CommentBlock represents a '(* *)' comment, retained as a token.
	CommentBlock
	// Pragma represents a '{...}' attribute pragma, retained as a token.
	Pragma

	// Assign represents the ':=' operator.
	Assign // :=
	// Arrow represents the '=>' output-assignment operator.
	Arrow // =>
	// Colon represents the ':' punctuation.
	Colon // :
	// Semicolon represents the ';' punctuation.
	Semicolon // ;
	// Comma represents the ',' punctuation.
	Comma // ,
	// Dot represents the '.' punctuation.
	Dot // .
	// DotDot represents the '..' subrange operator.
	DotDot // ..
	// LParen represents the '(' punctuation.
	LParen // (
	// RParen represents the ')' punctuation.
	RParen // )
	// LBracket represents the '[' punctuation.
	LBracket // [
	// RBracket represents the ']' punctuation.
	RBracket // ]
	// Plus represents the '+' operator.
	Plus // +
	// Minus represents the '-' operator.
	Minus // -
	// Star represents the '*' operator.
	Star // *
	// Slash represents the '/' operator.
	Slash // /
	// Eq represents the '=' comparison operator.
	Eq // =
	// NotEq represents the '<>' comparison operator.
	NotEq // <>
	// Lt represents the '<' comparison operator.
	Lt // <
	// LtEq represents the '<=' comparison operator.
	LtEq // <=
	// Gt represents the '>' comparison operator.
	Gt // >
	// GtEq represents the '>=' comparison operator.
	GtEq // >=
	// Caret represents the '^' pointer dereference operator.
	Caret // ^
	// Hash represents a stray '#' outside a typed literal.
	Hash // #

	kindCount
)

var kindNames = [...]string{
	Invalid:            "Invalid",
	EOF:                "EOF",
	Ident:              "Ident",
	KwProgram:          "PROGRAM",
	KwEndProgram:       "END_PROGRAM",
	KwFunctionBlock:    "FUNCTION_BLOCK",
	KwEndFunctionBlock: "END_FUNCTION_BLOCK",
	KwClass:            "CLASS",
	KwEndClass:         "END_CLASS",
	KwInterface:        "INTERFACE",
	KwEndInterface:     "END_INTERFACE",
	KwMethod:           "METHOD",
	KwEndMethod:        "END_METHOD",
	KwProperty:         "PROPERTY",
	KwEndProperty:      "END_PROPERTY",
	KwVar:              "VAR",
	KwVarInput:         "VAR_INPUT",
	KwVarOutput:        "VAR_OUTPUT",
	KwVarInOut:         "VAR_IN_OUT",
	KwEndVar:           "END_VAR",
	KwConstant:         "CONSTANT",
	KwPersistent:       "PERSISTENT",
	KwRetain:           "RETAIN",
	KwExtends:          "EXTENDS",
	KwImplements:       "IMPLEMENTS",
	KwAt:               "AT",
	KwPointer:          "POINTER",
	KwReference:        "REFERENCE",
	KwTo:               "TO",
	KwArray:            "ARRAY",
	KwOf:               "OF",
	KwIf:               "IF",
	KwThen:             "THEN",
	KwElsif:            "ELSIF",
	KwElse:             "ELSE",
	KwEndIf:            "END_IF",
	KwCase:             "CASE",
	KwEndCase:          "END_CASE",
	KwReturn:           "RETURN",
	KwExit:             "EXIT",
	KwFor:              "FOR",
	KwEndFor:           "END_FOR",
	KwWhile:            "WHILE",
	KwEndWhile:         "END_WHILE",
	KwRepeat:           "REPEAT",
	KwEndRepeat:        "END_REPEAT",
	KwDo:               "DO",
	KwUntil:            "UNTIL",
	KwBy:               "BY",
	KwNot:              "NOT",
	KwAnd:              "AND",
	KwOr:               "OR",
	KwXor:              "XOR",
	KwMod:              "MOD",
	KwTrue:             "TRUE",
	KwFalse:            "FALSE",
	KwAbstract:         "ABSTRACT",
	KwFinal:            "FINAL",
	KwPublic:           "PUBLIC",
	KwPrivate:          "PRIVATE",
	KwProtected:        "PROTECTED",
	KwInternal:         "INTERNAL",
	IntLit:             "IntLit",
	RealLit:            "RealLit",
	TimeLit:            "TimeLit",
	StringLit:          "StringLit",
	DirectAddr:         "DirectAddr",
	CommentLine:        "CommentLine",
	CommentBlock:       "CommentBlock",
	Pragma:             "Pragma",
	Assign:             ":=",
	Arrow:              "=>",
	Colon:              ":",
	Semicolon:          ";",
	Comma:              ",",
	Dot:                ".",
	DotDot:             "..",
	LParen:             "(",
	RParen:             ")",
	LBracket:           "[",
	RBracket:           "]",
	Plus:               "+",
	Minus:              "-",
	Star:               "*",
	Slash:              "/",
	Eq:                 "=",
	NotEq:              "<>",
	Lt:                 "<",
	LtEq:               "<=",
	Gt:                 ">",
	GtEq:               ">=",
	Caret:              "^",
	Hash:               "#",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
