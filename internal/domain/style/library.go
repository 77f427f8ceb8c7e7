package style

import (
	"fmt"
	"strings"
	"sync"

	stylekiterrors "github.com/alexisbeaulieu97/stylekit/pkg/errors"
)

// Library is a named collection of styles. Lookups hand out independent
// copies so callers can never mutate the stored definitions.
type Library struct {
	mu     sync.RWMutex
	styles map[string]*Style
	order  []string
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{styles: make(map[string]*Style)}
}

// Add stores a copy of s under s.Name.
func (l *Library) Add(s *Style) error {
	if s == nil {
		return stylekiterrors.NewValidationError("style", "style is nil", nil)
	}
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return stylekiterrors.NewValidationError("style.name", "style name is required", nil)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.styles[name]; exists {
		return stylekiterrors.NewValidationError("style.name", fmt.Sprintf("duplicate style %q", name), nil)
	}
	stored := s.Clone()
	stored.Name = name
	l.styles[name] = stored
	l.order = append(l.order, name)
	return nil
}

// Lookup returns a copy of the named style.
func (l *Library) Lookup(name string) (*Style, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s, ok := l.styles[name]
	if !ok {
		return nil, stylekiterrors.NewResolveError("style", name)
	}
	return s.Clone(), nil
}

// Has reports whether a style with the given name exists.
func (l *Library) Has(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.styles[name]
	return ok
}

// Names lists style names in insertion order.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.order...)
}

// Len returns the number of styles.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.order)
}
