package convert

import (
	"time"

	"github.com/aretw0/introspection"

	"github.com/aretw0/koconv/pkg/core"
)

// ConverterState exposes internal state for observability.
type ConverterState struct {
	SourceDir string                      `json:"source_dir"`
	Target    string                      `json:"target"`
	ParentDir string                      `json:"parent_dir"`
	Policy    core.Policy                 `json:"policy"`
	Overrides map[core.Branch]core.Policy `json:"policy_overrides,omitempty"`
	URLMode   core.URLMode                `json:"url_mode"`
	Runs      int                         `json:"runs"`
	LastRun   *time.Time                  `json:"last_run,omitempty"`
	LastError string                      `json:"last_error,omitempty"`
	Outcomes  []Outcome                   `json:"outcomes,omitempty"`
	Store     any                         `json:"store,omitempty"`
}

// State implements introspection.Introspectable.
func (c *Converter) State() any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	state := ConverterState{
		SourceDir: c.layout.SourceDir,
		Target:    c.layout.Target,
		ParentDir: c.layout.ParentDir,
		Policy:    c.opts.policies.For(""),
		Overrides: c.opts.policies.Overrides,
		URLMode:   c.opts.urlMode,
		Runs:      c.runs,
		LastRun:   c.lastRun,
	}
	if c.lastErr != nil {
		state.LastError = c.lastErr.Error()
	}
	if c.last != nil {
		state.Outcomes = c.last.snapshot()
	}
	if intro, ok := c.opts.store.(introspection.Introspectable); ok {
		state.Store = intro.State()
	}
	return state
}

// ComponentType implements introspection.Component.
func (c *Converter) ComponentType() string {
	return "converter"
}

var _ introspection.Introspectable = (*Converter)(nil)
var _ introspection.Component = (*Converter)(nil)
