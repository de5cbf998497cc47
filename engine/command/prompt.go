package command

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// DefaultPromptLimit caps the number of runes a prompt holds.
const DefaultPromptLimit = 256

// Prompt is the editable line of text a frontend collects before submitting it as a command.
type Prompt struct {
	mu    sync.Mutex
	buf   []rune
	limit int
}

// NewPrompt creates an empty prompt holding at most limit runes. A non-positive limit uses DefaultPromptLimit.
//
// Parameters:
//   - limit: the maximum number of runes
//
// Returns:
//   - *Prompt: the prompt
func NewPrompt(limit int) *Prompt {
	if limit <= 0 {
		limit = DefaultPromptLimit
	}
	return &Prompt{limit: limit}
}

// Insert appends a printable rune. Control characters and input past the limit are dropped.
//
// Parameters:
//   - r: the rune to append
func (p *Prompt) Insert(r rune) {
	if r == utf8.RuneError || !unicode.IsPrint(r) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.buf) < p.limit {
		p.buf = append(p.buf, r)
	}
}

// Backspace removes the last rune, if any.
func (p *Prompt) Backspace() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n := len(p.buf); n > 0 {
		p.buf = p.buf[:n-1]
	}
}

// Text returns the current contents.
func (p *Prompt) Text() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return string(p.buf)
}

// Submit returns the trimmed contents and clears the prompt.
//
// Returns:
//   - string: the submitted text, possibly empty
func (p *Prompt) Submit() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	text := strings.TrimSpace(string(p.buf))
	p.buf = p.buf[:0]
	return text
}
