package highlight

const (
	bracketPattern   = `[{}()\[\]]`
	delimiterPattern = `[.,;:]`
	operatorPattern  = `[-+*/%=<>!&|^~?]+`
)

// GoHighlighter returns a highlighter for Go.
func GoHighlighter() *RuleHighlighter {
	h := NewRuleHighlighter("go", []string{".go"})

	h.AddMultiLine("/*", "*/", TokenCommentBlock, LexerStateBlockComment)
	h.AddMultiLine("`", "`", TokenString, LexerStateStringBacktick)

	h.AddRule(`//.*$`, TokenCommentLine)
	h.AddRule(`"(?:[^"\\]|\\.)*"`, TokenString)
	h.AddRule(`'(?:[^'\\]|\\.)'`, TokenString)
	h.AddRule(`\b0[xX][0-9a-fA-F]+\b`, TokenNumberHex)
	h.AddRule(`\b0[oO][0-7]+\b`, TokenNumberOctal)
	h.AddRule(`\b0[bB][01]+\b`, TokenNumberBinary)
	h.AddRule(`\b\d+\.?\d*(?:[eE][+-]?\d+)?\b`, TokenNumber)
	h.AddRule(bracketPattern, TokenPunctuationBracket)
	h.AddRule(delimiterPattern, TokenPunctuationDelimiter)
	h.AddRule(operatorPattern, TokenOperator)

	h.AddKeywords(TokenKeywordControl,
		"if", "else", "for", "range", "switch", "case", "default",
		"break", "continue", "return", "goto", "fallthrough", "select")
	h.AddKeywords(TokenKeywordDeclaration,
		"func", "var", "const", "type", "struct", "interface", "map", "chan")
	h.AddKeywords(TokenKeywordOther,
		"package", "import", "defer", "go")
	h.AddKeywords(TokenConstantLanguage,
		"true", "false", "nil", "iota")
	h.AddKeywords(TokenTypeBuiltin,
		"int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
		"float32", "float64", "complex64", "complex128",
		"bool", "byte", "rune", "string", "error", "any")
	h.AddKeywords(TokenFunctionBuiltin,
		"make", "new", "len", "cap", "append", "copy", "delete",
		"close", "panic", "recover", "print", "println",
		"real", "imag", "complex", "min", "max", "clear")

	return h.MarkCalls()
}

// PythonHighlighter returns a highlighter for Python.
func PythonHighlighter() *RuleHighlighter {
	h := NewRuleHighlighter("python", []string{".py", ".pyw", ".pyi"})

	h.AddMultiLine(`"""`, `"""`, TokenString, LexerStateStringDouble)
	h.AddMultiLine(`'''`, `'''`, TokenString, LexerStateStringSingle)

	h.AddRule(`#.*$`, TokenCommentLine)
	h.AddRule(`"(?:[^"\\]|\\.)*"`, TokenString)
	h.AddRule(`'(?:[^'\\]|\\.)*'`, TokenString)
	h.AddRule(`\b0[xX][0-9a-fA-F]+\b`, TokenNumberHex)
	h.AddRule(`\b0[oO][0-7]+\b`, TokenNumberOctal)
	h.AddRule(`\b0[bB][01]+\b`, TokenNumberBinary)
	h.AddRule(`\b\d+\.?\d*(?:[eE][+-]?\d+)?j?\b`, TokenNumber)
	h.AddRule(`@\w+`, TokenMeta)
	h.AddRule(bracketPattern, TokenPunctuationBracket)
	h.AddRule(delimiterPattern, TokenPunctuationDelimiter)

	h.AddKeywords(TokenKeywordControl,
		"if", "elif", "else", "for", "while", "break", "continue",
		"return", "try", "except", "finally", "raise", "with", "as",
		"match", "case")
	h.AddKeywords(TokenKeywordDeclaration,
		"def", "class", "lambda", "async", "await")
	h.AddKeywords(TokenKeywordOther,
		"import", "from", "global", "nonlocal", "pass", "yield",
		"assert", "del", "in", "is", "not", "and", "or")
	h.AddKeywords(TokenConstantLanguage,
		"True", "False", "None")
	h.AddKeywords(TokenTypeBuiltin,
		"int", "float", "str", "bool", "list", "dict", "set", "tuple",
		"bytes", "bytearray", "complex", "frozenset", "type", "object")
	h.AddKeywords(TokenFunctionBuiltin,
		"print", "len", "range", "enumerate", "zip", "map", "filter",
		"open", "input", "isinstance", "sorted", "reversed", "sum",
		"min", "max", "abs", "round", "repr", "super")

	return h.MarkCalls()
}

// JavaScriptHighlighter returns a highlighter for JavaScript/TypeScript.
func JavaScriptHighlighter() *RuleHighlighter {
	h := NewRuleHighlighter("javascript", []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"})

	h.AddMultiLine("/*", "*/", TokenCommentBlock, LexerStateBlockComment)
	h.AddMultiLine("`", "`", TokenStringInterpolated, LexerStateStringBacktick)

	h.AddRule(`//.*$`, TokenCommentLine)
	h.AddRule(`"(?:[^"\\]|\\.)*"`, TokenString)
	h.AddRule(`'(?:[^'\\]|\\.)*'`, TokenString)
	h.AddRule(`\b0[xX][0-9a-fA-F]+\b`, TokenNumberHex)
	h.AddRule(`\b0[oO][0-7]+\b`, TokenNumberOctal)
	h.AddRule(`\b0[bB][01]+\b`, TokenNumberBinary)
	h.AddRule(`\b\d+\.?\d*(?:[eE][+-]?\d+)?\b`, TokenNumber)
	h.AddRule(`@\w+`, TokenMeta)
	h.AddRule(bracketPattern, TokenPunctuationBracket)
	h.AddRule(delimiterPattern, TokenPunctuationDelimiter)
	h.AddRule(operatorPattern, TokenOperator)

	h.AddKeywords(TokenKeywordControl,
		"if", "else", "for", "while", "do", "switch", "case", "default",
		"break", "continue", "return", "throw", "try", "catch", "finally")
	h.AddKeywords(TokenKeywordDeclaration,
		"function", "var", "let", "const", "class", "extends", "async", "await",
		"type", "interface", "enum", "namespace", "module", "declare")
	h.AddKeywords(TokenKeywordOther,
		"import", "export", "from", "as", "new", "delete",
		"typeof", "instanceof", "in", "of", "this", "super", "static",
		"yield", "debugger")
	h.AddKeywords(TokenConstantLanguage,
		"true", "false", "null", "undefined", "NaN", "Infinity")
	h.AddKeywords(TokenStorageModifier,
		"public", "private", "protected", "readonly", "abstract", "override")
	h.AddKeywords(TokenFunctionBuiltin,
		"console", "require")

	return h.MarkCalls()
}

// RustHighlighter returns a highlighter for Rust.
func RustHighlighter() *RuleHighlighter {
	h := NewRuleHighlighter("rust", []string{".rs"})

	h.AddMultiLine("/*", "*/", TokenCommentBlock, LexerStateBlockComment)

	h.AddRule(`//.*$`, TokenCommentLine)
	h.AddRule(`"(?:[^"\\]|\\.)*"`, TokenString)
	h.AddRule(`r#*"[^"]*"#*`, TokenString)
	h.AddRule(`#!?\[.*?\]`, TokenMeta)
	h.AddRule(`\b0[xX][0-9a-fA-F_]+\b`, TokenNumberHex)
	h.AddRule(`\b\d[\d_]*\.?[\d_]*(?:[eE][+-]?[\d_]+)?(?:f32|f64|i\d+|u\d+|isize|usize)?\b`, TokenNumber)
	h.AddRule(bracketPattern, TokenPunctuationBracket)
	h.AddRule(delimiterPattern, TokenPunctuationDelimiter)

	h.AddKeywords(TokenKeywordControl,
		"if", "else", "match", "for", "while", "loop", "break", "continue",
		"return", "yield")
	h.AddKeywords(TokenKeywordDeclaration,
		"fn", "let", "mut", "const", "static", "struct", "enum", "trait",
		"impl", "type", "mod")
	h.AddKeywords(TokenKeywordOther,
		"use", "crate", "super", "self", "Self", "pub", "where", "as",
		"async", "await", "dyn", "move", "ref", "unsafe", "extern")
	h.AddKeywords(TokenConstantLanguage,
		"true", "false", "None", "Some", "Ok", "Err")
	h.AddKeywords(TokenTypeBuiltin,
		"i8", "i16", "i32", "i64", "i128", "isize",
		"u8", "u16", "u32", "u64", "u128", "usize",
		"f32", "f64", "bool", "char", "str", "String",
		"Vec", "Box", "Option", "Result")

	return h.MarkCalls()
}

// MarkdownHighlighter returns a highlighter for Markdown.
func MarkdownHighlighter() *RuleHighlighter {
	h := NewRuleHighlighter("markdown", []string{".md", ".markdown"})

	// Order matters: more specific patterns first.
	h.AddRule("^#{1,6}\\s+.*$", TokenMarkupHeading)
	h.AddRule("^```.*$", TokenMarkupCode)
	h.AddRule("\\*\\*[^*]+\\*\\*", TokenMarkupBold)
	h.AddRule("__[^_]+__", TokenMarkupBold)
	h.AddRule("\\*[^*]+\\*", TokenMarkupItalic)
	h.AddRule("_[^_]+_", TokenMarkupItalic)
	h.AddRule("~~[^~]+~~", TokenMarkupStrike)
	h.AddRule("`[^`]+`", TokenMarkupCode)
	h.AddRule("^>\\s+.*$", TokenMarkupQuote)
	h.AddRule("^\\s*[-*+]\\s+", TokenMarkupList)
	h.AddRule("^\\s*\\d+\\.\\s+", TokenMarkupList)
	h.AddRule("\\[[^\\]]+\\]\\([^)]+\\)", TokenMarkupLink)

	return h
}

// RegisterBuiltinHighlighters registers all built-in highlighters.
func RegisterBuiltinHighlighters(r *Registry) {
	r.Register(GoHighlighter())
	r.Register(PythonHighlighter())
	r.Register(JavaScriptHighlighter())
	r.Register(RustHighlighter())
	r.Register(MarkdownHighlighter())
}
