package highlight

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Highlighter defines the interface for line lexers.
type Highlighter interface {
	// HighlightLine tokenizes a single line and returns its typed spans.
	// prevState is the lexer state from the previous line (for multi-line
	// constructs). Spans are sorted by Start and do not overlap; gaps between
	// them are unclassified text.
	HighlightLine(line string, prevState LexerState) ([]Span, LexerState)

	// Language returns the language this highlighter supports.
	Language() string

	// FileExtensions returns the file extensions this highlighter handles.
	FileExtensions() []string
}

// CheckedHighlighter is a Highlighter whose line lexing can fail, such as a
// scripted lexer. Callers that can report errors use HighlightLineChecked.
type CheckedHighlighter interface {
	Highlighter
	HighlightLineChecked(line string, prevState LexerState) ([]Span, LexerState, error)
}

// Registry manages available highlighters.
type Registry struct {
	mu sync.RWMutex

	// byLanguage maps language names to highlighters
	byLanguage map[string]Highlighter

	// byExtension maps file extensions to highlighters
	byExtension map[string]Highlighter
}

// NewRegistry creates a new, empty highlighter registry.
func NewRegistry() *Registry {
	return &Registry{
		byLanguage:  make(map[string]Highlighter),
		byExtension: make(map[string]Highlighter),
	}
}

// DefaultRegistry returns a registry with the built-in highlighters.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterBuiltinHighlighters(r)
	return r
}

// Register adds a highlighter to the registry, replacing any highlighter
// previously registered for the same language or extensions.
func (r *Registry) Register(h Highlighter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byLanguage[strings.ToLower(h.Language())] = h
	for _, ext := range h.FileExtensions() {
		r.byExtension[normalizeExt(ext)] = h
	}
}

// GetByLanguage returns a highlighter for the given language.
func (r *Registry) GetByLanguage(language string) (Highlighter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.byLanguage[strings.ToLower(language)]
	return h, ok
}

// GetByExtension returns a highlighter for the given file extension.
func (r *Registry) GetByExtension(ext string) (Highlighter, bool) {
	if ext == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.byExtension[normalizeExt(ext)]
	return h, ok
}

// ForPath returns the highlighter matching the extension of path.
func (r *Registry) ForPath(path string) (Highlighter, bool) {
	return r.GetByExtension(filepath.Ext(path))
}

// Languages returns all registered language names, sorted.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	langs := make([]string, 0, len(r.byLanguage))
	for lang := range r.byLanguage {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
