// Package highlight provides the line lexers and color themes behind the
// themed tokenizer: scope-typed spans produced per line, and themes that map
// those scopes to styles.
package highlight

import "strings"

// TokenType represents the semantic type of a span.
type TokenType uint16

// Token types for syntax highlighting.
// These follow TextMate/VS Code scope naming conventions at a high level.
const (
	TokenNone TokenType = iota

	// Comments
	TokenComment
	TokenCommentLine
	TokenCommentBlock
	TokenCommentDoc

	// Strings
	TokenString
	TokenStringQuoted
	TokenStringInterpolated
	TokenStringRegexp
	TokenStringEscape

	// Numbers
	TokenNumber
	TokenNumberInteger
	TokenNumberFloat
	TokenNumberHex
	TokenNumberOctal
	TokenNumberBinary

	// Keywords
	TokenKeyword
	TokenKeywordControl     // if, else, for, while, switch, case, return, break, continue
	TokenKeywordOperator    // new, delete, typeof, instanceof
	TokenKeywordOther       // package, import, export, from
	TokenKeywordDeclaration // var, let, const, func, type, struct, interface

	// Operators and punctuation
	TokenOperator
	TokenPunctuation
	TokenPunctuationBracket
	TokenPunctuationDelimiter

	// Identifiers
	TokenIdentifier
	TokenVariable
	TokenVariableParameter
	TokenConstant
	TokenConstantLanguage // true, false, nil, null

	// Functions
	TokenFunction
	TokenFunctionCall
	TokenFunctionBuiltin

	// Types
	TokenTypeName
	TokenTypeBuiltin

	// Storage
	TokenStorage
	TokenStorageModifier // public, private, static, const

	// Markup (for markdown, HTML, etc.)
	TokenMarkup
	TokenMarkupHeading
	TokenMarkupBold
	TokenMarkupItalic
	TokenMarkupStrike
	TokenMarkupQuote
	TokenMarkupList
	TokenMarkupLink
	TokenMarkupCode

	// Invalid/Error
	TokenInvalid
	TokenInvalidIllegal

	TokenMeta // Meta information (decorators, attributes, preprocessor)

	tokenTypeCount
)

// String returns the scope name of a token type.
func (t TokenType) String() string {
	if t < tokenTypeCount {
		return tokenTypeNames[t]
	}
	return "unknown"
}

// Scope returns the TextMate-style scope name for this token type.
// TokenNone maps to "source", the scope of unclassified text.
func (t TokenType) Scope() string {
	if t == TokenNone {
		return "source"
	}
	return t.String()
}

// Parent returns the token type of the enclosing scope, or TokenNone for
// top-level scopes. For example TokenKeywordControl's parent is TokenKeyword.
func (t TokenType) Parent() TokenType {
	name := t.String()
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return TokenNone
	}
	return TokenTypeFromString(name[:idx])
}

// IsComment returns true if this is a comment token.
func (t TokenType) IsComment() bool {
	return t >= TokenComment && t <= TokenCommentDoc
}

// IsString returns true if this is a string token.
func (t TokenType) IsString() bool {
	return t >= TokenString && t <= TokenStringEscape
}

// IsKeyword returns true if this is a keyword token.
func (t TokenType) IsKeyword() bool {
	return t >= TokenKeyword && t <= TokenKeywordDeclaration
}

// TokenTypeFromString converts a scope string to a TokenType.
// Unknown trailing segments are dropped until a known scope remains,
// so "comment.line.double-slash.go" resolves to TokenCommentLine.
func TokenTypeFromString(scope string) TokenType {
	for scope != "" {
		if t, ok := scopeToToken[scope]; ok {
			return t
		}
		idx := strings.LastIndexByte(scope, '.')
		if idx < 0 {
			break
		}
		scope = scope[:idx]
	}
	return TokenNone
}

// Span is a typed byte range [Start, End) within one line.
type Span struct {
	Type  TokenType
	Start int
	End   int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// LexerState represents the lexer's state for continuation across lines.
type LexerState uint32

// Common lexer states.
const (
	LexerStateNormal LexerState = iota
	LexerStateBlockComment
	LexerStateStringDouble
	LexerStateStringSingle
	LexerStateStringBacktick
)

var tokenTypeNames = [tokenTypeCount]string{
	TokenNone: "none",

	TokenComment:      "comment",
	TokenCommentLine:  "comment.line",
	TokenCommentBlock: "comment.block",
	TokenCommentDoc:   "comment.block.documentation",

	TokenString:             "string",
	TokenStringQuoted:       "string.quoted",
	TokenStringInterpolated: "string.interpolated",
	TokenStringRegexp:       "string.regexp",
	TokenStringEscape:       "string.escape",

	TokenNumber:        "constant.numeric",
	TokenNumberInteger: "constant.numeric.integer",
	TokenNumberFloat:   "constant.numeric.float",
	TokenNumberHex:     "constant.numeric.hex",
	TokenNumberOctal:   "constant.numeric.octal",
	TokenNumberBinary:  "constant.numeric.binary",

	TokenKeyword:            "keyword",
	TokenKeywordControl:     "keyword.control",
	TokenKeywordOperator:    "keyword.operator",
	TokenKeywordOther:       "keyword.other",
	TokenKeywordDeclaration: "keyword.declaration",

	TokenOperator:             "keyword.operator.symbol",
	TokenPunctuation:          "punctuation",
	TokenPunctuationBracket:   "punctuation.bracket",
	TokenPunctuationDelimiter: "punctuation.delimiter",

	TokenIdentifier:        "variable.other",
	TokenVariable:          "variable",
	TokenVariableParameter: "variable.parameter",
	TokenConstant:          "constant",
	TokenConstantLanguage:  "constant.language",

	TokenFunction:        "entity.name.function",
	TokenFunctionCall:    "entity.name.function.call",
	TokenFunctionBuiltin: "support.function",

	TokenTypeName:    "entity.name.type",
	TokenTypeBuiltin: "support.type",

	TokenStorage:         "storage",
	TokenStorageModifier: "storage.modifier",

	TokenMarkup:        "markup",
	TokenMarkupHeading: "markup.heading",
	TokenMarkupBold:    "markup.bold",
	TokenMarkupItalic:  "markup.italic",
	TokenMarkupStrike:  "markup.strikethrough",
	TokenMarkupQuote:   "markup.quote",
	TokenMarkupList:    "markup.list",
	TokenMarkupLink:    "markup.underline.link",
	TokenMarkupCode:    "markup.inline.raw",

	TokenInvalid:        "invalid",
	TokenInvalidIllegal: "invalid.illegal",

	TokenMeta: "meta",
}

// scopeToToken maps scope strings to token types.
var scopeToToken = func() map[string]TokenType {
	m := make(map[string]TokenType, len(tokenTypeNames))
	for i, name := range tokenTypeNames {
		if name != "" && TokenType(i) != TokenNone {
			m[name] = TokenType(i)
		}
	}
	return m
}()
