package convert

import (
	"log/slog"

	"github.com/aretw0/koconv/pkg/core"
)

// options holds the internal configuration of a Converter.
type options struct {
	store    core.Store
	logger   *slog.Logger
	policies core.PolicySet
	urlMode  core.URLMode
	names    core.SpecNames
	contexts core.Contexts
}

// Option defines a functional option for configuring a Converter.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		store:    nil, // filesystem store, built in New
		logger:   nil,
		policies: core.PolicySet{Default: core.PolicyBestEffort},
		urlMode:  core.URLTruncate,
		names:    core.DefaultSpecNames(),
		contexts: core.DefaultContexts(),
	}
}

// WithStore allows injecting a custom storage adapter (e.g. a fault injecting
// wrapper in tests). If provided, the default filesystem store is skipped.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithLogger sets the logger for the converter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPolicy sets the default error policy of every branch.
func WithPolicy(p core.Policy) Option {
	return func(o *options) {
		o.policies.Default = p
	}
}

// WithBranchPolicy overrides the error policy of a single branch.
func WithBranchPolicy(b core.Branch, p core.Policy) Option {
	return func(o *options) {
		if o.policies.Overrides == nil {
			o.policies.Overrides = make(map[core.Branch]core.Policy)
		}
		o.policies.Overrides[b] = p
	}
}

// WithURLMode chooses what happens to server url segments past the
// implementation name.
func WithURLMode(m core.URLMode) Option {
	return func(o *options) {
		o.urlMode = m
	}
}

// WithSpecNames changes the generated specification file names.
func WithSpecNames(names core.SpecNames) Option {
	return func(o *options) {
		if names.Service != "" {
			o.names.Service = names.Service
		}
		if names.Deployment != "" {
			o.names.Deployment = names.Deployment
		}
	}
}

// WithContexts changes the JSON-LD @context URIs.
func WithContexts(c core.Contexts) Option {
	return func(o *options) {
		if c.Object != "" {
			o.contexts.Object = c.Object
		}
		if c.Implementation != "" {
			o.contexts.Implementation = c.Implementation
		}
	}
}
