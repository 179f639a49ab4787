package highlight

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule defines a highlighting rule.
type Rule struct {
	// Pattern is the regex pattern to match.
	Pattern *regexp.Regexp

	// TokenType is the type to assign to matches.
	TokenType TokenType
}

// multiLineRule defines rules for multi-line constructs.
type multiLineRule struct {
	start     string
	end       string
	tokenType TokenType
	state     LexerState
}

// RuleHighlighter is a regex and keyword based line lexer.
//
// Rules are applied in registration order; the first rule to claim a byte
// range wins. Identifiers not claimed by a rule are checked against the
// keyword table.
type RuleHighlighter struct {
	language   string
	extensions []string
	rules      []Rule
	keywords   map[string]TokenType
	multiLine  []multiLineRule
	callRule   bool
}

// NewRuleHighlighter creates a new rule highlighter.
func NewRuleHighlighter(language string, extensions []string) *RuleHighlighter {
	return &RuleHighlighter{
		language:   language,
		extensions: extensions,
		keywords:   make(map[string]TokenType),
	}
}

// AddRule adds a highlighting rule. It panics if pattern does not compile.
func (h *RuleHighlighter) AddRule(pattern string, tokenType TokenType) *RuleHighlighter {
	h.rules = append(h.rules, Rule{
		Pattern:   regexp.MustCompile(pattern),
		TokenType: tokenType,
	})
	return h
}

// AddKeywords adds keywords with a specific token type.
func (h *RuleHighlighter) AddKeywords(tokenType TokenType, keywords ...string) *RuleHighlighter {
	for _, kw := range keywords {
		h.keywords[kw] = tokenType
	}
	return h
}

// AddMultiLine adds a multi-line construct rule. It panics if start or end
// is empty or state is LexerStateNormal.
func (h *RuleHighlighter) AddMultiLine(start, end string, tokenType TokenType, state LexerState) *RuleHighlighter {
	if start == "" || end == "" || state == LexerStateNormal {
		panic("highlight: invalid multi-line rule for " + h.language)
	}
	h.multiLine = append(h.multiLine, multiLineRule{
		start:     start,
		end:       end,
		tokenType: tokenType,
		state:     state,
	})
	return h
}

// MarkCalls makes identifiers directly followed by '(' function calls.
func (h *RuleHighlighter) MarkCalls() *RuleHighlighter {
	h.callRule = true
	return h
}

// Language returns the language name.
func (h *RuleHighlighter) Language() string {
	return h.language
}

// FileExtensions returns the supported file extensions.
func (h *RuleHighlighter) FileExtensions() []string {
	return h.extensions
}

// HighlightLine tokenizes a single line.
func (h *RuleHighlighter) HighlightLine(line string, prevState LexerState) ([]Span, LexerState) {
	if prevState == LexerStateNormal {
		return h.highlightNormal(line)
	}

	rule, ok := h.ruleForState(prevState)
	if !ok {
		return h.highlightNormal(line)
	}

	idx := strings.Index(line, rule.end)
	if idx < 0 {
		if line == "" {
			return nil, prevState
		}
		return []Span{{Type: rule.tokenType, Start: 0, End: len(line)}}, prevState
	}

	endIdx := idx + len(rule.end)
	spans := []Span{{Type: rule.tokenType, Start: 0, End: endIdx}}
	rest, state := h.highlightNormal(line[endIdx:])
	for _, s := range rest {
		s.Start += endIdx
		s.End += endIdx
		spans = append(spans, s)
	}
	return spans, state
}

// highlightNormal highlights a line in normal state.
func (h *RuleHighlighter) highlightNormal(line string) ([]Span, LexerState) {
	var spans []Span
	covered := make([]bool, len(line))
	state := LexerStateNormal

	// The earliest multi-line opener claims the rest of its construct.
	for {
		best, bestIdx := -1, len(line)
		for i, rule := range h.multiLine {
			idx := indexUncovered(line, rule.start, covered)
			if idx >= 0 && idx < bestIdx {
				best, bestIdx = i, idx
			}
		}
		if best < 0 {
			break
		}
		rule := h.multiLine[best]
		bodyStart := bestIdx + len(rule.start)
		if endIdx := strings.Index(line[bodyStart:], rule.end); endIdx >= 0 {
			end := bodyStart + endIdx + len(rule.end)
			spans = append(spans, Span{Type: rule.tokenType, Start: bestIdx, End: end})
			markCovered(covered, bestIdx, end)
			continue
		}
		spans = append(spans, Span{Type: rule.tokenType, Start: bestIdx, End: len(line)})
		markCovered(covered, bestIdx, len(line))
		state = rule.state
		break
	}

	for _, rule := range h.rules {
		for _, match := range rule.Pattern.FindAllStringIndex(line, -1) {
			start, end := match[0], match[1]
			if end > start && !isCovered(covered, start, end) {
				spans = append(spans, Span{Type: rule.TokenType, Start: start, End: end})
				markCovered(covered, start, end)
			}
		}
	}

	spans = append(spans, h.findIdentifiers(line, covered)...)

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].Start < spans[j].Start
	})

	return spans, state
}

func (h *RuleHighlighter) ruleForState(state LexerState) (multiLineRule, bool) {
	for _, rule := range h.multiLine {
		if rule.state == state {
			return rule, true
		}
	}
	return multiLineRule{}, false
}

// findIdentifiers finds identifiers in uncovered text and classifies them.
func (h *RuleHighlighter) findIdentifiers(line string, covered []bool) []Span {
	var spans []Span

	i := 0
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		if covered[i] || !(unicode.IsLetter(r) || r == '_') {
			i += size
			continue
		}

		start := i
		for i < len(line) && !covered[i] {
			r, size = utf8.DecodeRuneInString(line[i:])
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
				break
			}
			i += size
		}

		tokenType := TokenIdentifier
		if kwType, ok := h.keywords[line[start:i]]; ok {
			tokenType = kwType
		} else if h.callRule && i < len(line) && line[i] == '(' {
			tokenType = TokenFunctionCall
		}
		spans = append(spans, Span{Type: tokenType, Start: start, End: i})
	}

	return spans
}

// indexUncovered returns the first index of substr in line whose range is not
// already covered, or -1.
func indexUncovered(line, substr string, covered []bool) int {
	offset := 0
	for {
		idx := strings.Index(line[offset:], substr)
		if idx < 0 {
			return -1
		}
		idx += offset
		if !isCovered(covered, idx, idx+len(substr)) {
			return idx
		}
		offset = idx + 1
	}
}

func isCovered(covered []bool, start, end int) bool {
	for i := start; i < end && i < len(covered); i++ {
		if covered[i] {
			return true
		}
	}
	return false
}

func markCovered(covered []bool, start, end int) {
	for i := start; i < end && i < len(covered); i++ {
		covered[i] = true
	}
}
