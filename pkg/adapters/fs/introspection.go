package fs

import (
	"sort"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Reads       int      `json:"reads"`
	Writes      int      `json:"writes"`
	Copies      int      `json:"copies"`
	CopiedBytes int64    `json:"copied_bytes"`
	LastError   string   `json:"last_error,omitempty"`
	Serializers []string `json:"serializers"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	serializers := make([]string, 0, len(s.serializers))
	for ext := range s.serializers {
		serializers = append(serializers, ext)
	}
	sort.Strings(serializers)

	return StoreState{
		Reads:       s.reads,
		Writes:      s.writes,
		Copies:      s.copies,
		CopiedBytes: s.copied,
		LastError:   s.lastErr,
		Serializers: serializers,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
