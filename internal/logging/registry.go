package logging

import (
	"sync"
	"time"

	"loggingtalk/internal/procexec"
	"loggingtalk/internal/style"
)

// Matcher reports whether a log argument belongs to a category.
type Matcher func(value any) bool

// TypeMatcher matches values whose dynamic type is T. When T is an interface
// type, every implementation matches.
func TypeMatcher[T any]() Matcher {
	return func(value any) bool {
		_, ok := value.(T)
		return ok
	}
}

// Path is a filesystem path passed as a log argument. The default registry
// shows paths in cyan.
type Path string

// String returns the path text.
func (p Path) String() string {
	return string(p)
}

type registryEntry struct {
	name  string
	match Matcher
	style style.Style
}

// Registry is an ordered table of argument categories and their styles. The
// first matching entry wins, so broad categories registered early shadow
// narrower ones registered later.
type Registry struct {
	mu      sync.RWMutex
	entries []registryEntry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry returns a registry styling timestamps in yellow, paths in
// cyan and command lines dimmed.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("time", TypeMatcher[time.Time](), style.Style{Color: style.Yellow})
	r.Register("path", TypeMatcher[Path](), style.Style{Color: style.Cyan})
	r.Register("command_line", TypeMatcher[procexec.CommandLine](), style.Style{Dim: true})
	return r
}

// Register appends a category. A nil matcher is ignored.
func (r *Registry) Register(name string, match Matcher, st style.Style) {
	if r == nil || match == nil {
		return
	}
	r.mu.Lock()
	r.entries = append(r.entries, registryEntry{name: name, match: match, style: st})
	r.mu.Unlock()
}

// Resolve returns the style of the first category value belongs to.
func (r *Registry) Resolve(value any) (style.Style, bool) {
	if r == nil {
		return style.Style{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.entries {
		if entry.match(value) {
			return entry.style, true
		}
	}
	return style.Style{}, false
}

// Names lists the registered category names in resolution order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.entries))
	for i, entry := range r.entries {
		names[i] = entry.name
	}
	return names
}

// activate prepares an argument for a sink that emits escapes.
func (r *Registry) activate(arg any) any {
	switch v := arg.(type) {
	case style.Styled:
		return v.Activate()
	case style.Activated:
		return v
	}
	if st, ok := r.Resolve(arg); ok {
		return st.Activate(arg)
	}
	return arg
}
