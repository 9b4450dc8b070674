package options

import "sync"

// Recognized drawing option keys.
const (
	// KeyBackend selects the rendering syntax, BackendDot or
	// BackendMermaid.
	KeyBackend = "backend"

	// KeyUseHierarchy selects the hierarchical layout (clustered by
	// dotted name segments, engine "dot") over the force-directed one
	// (engine "fdp").
	KeyUseHierarchy = "use_hierarchy"

	// KeyWidth and KeyHeight give the drawing size in pixels.
	KeyWidth  = "width"
	KeyHeight = "height"
)

// Values recognized under KeyBackend.
const (
	BackendDot     = "dot"
	BackendMermaid = "mermaid"
)

const defaultSize = 800

// Store is a thread-safe settings map with typed, defaulted reads.
type Store struct {
	mu     sync.RWMutex
	values map[string]any
}

// New returns a store seeded with the drawing defaults.
func New() *Store {
	return &Store{values: map[string]any{
		KeyBackend:      BackendDot,
		KeyUseHierarchy: true,
		KeyWidth:        defaultSize,
		KeyHeight:       defaultSize,
	}}
}

// Drawing is the process-wide store the draw package reads when no
// explicit store is supplied.
var Drawing = New()

// Set stores one option value, replacing any previous one.
func (s *Store) Set(key string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]any)
	}
	s.values[key] = v
}

// Get returns the raw option value and whether it was present.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// String reads a string option, returning fallback when the key is
// absent or holds another type.
func (s *Store) String(key, fallback string) string {
	if v, ok := s.Get(key); ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return fallback
}

// Bool reads a boolean option, returning fallback when the key is
// absent or holds another type.
func (s *Store) Bool(key string, fallback bool) bool {
	if v, ok := s.Get(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return fallback
}

// Int reads an integer option, returning fallback when the key is
// absent or holds another type.
func (s *Store) Int(key string, fallback int) int {
	if v, ok := s.Get(key); ok {
		if n, ok := v.(int); ok {
			return n
		}
	}
	return fallback
}
