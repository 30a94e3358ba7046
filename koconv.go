package koconv

import (
	"context"
	"log/slog"

	"github.com/aretw0/koconv/pkg/convert"
	"github.com/aretw0/koconv/pkg/core"
)

// --- Types ---

// Converter is a public alias for the conversion service.
type Converter = convert.Converter

// Report is a public alias for the result of a run.
type Report = convert.Report

// Policy is a public alias for the branch error policy.
type Policy = core.Policy

// Branch is a public alias for a conversion output branch.
type Branch = core.Branch

const (
	PolicyBestEffort = core.PolicyBestEffort
	PolicyCollect    = core.PolicyCollect
	PolicyFailFast   = core.PolicyFailFast
)

// --- Configuration ---

// Option defines a functional option for configuring a conversion.
type Option = convert.Option

// WithLogger sets the logger for the converter.
func WithLogger(logger *slog.Logger) Option {
	return convert.WithLogger(logger)
}

// WithStore allows injecting a custom storage adapter.
func WithStore(store core.Store) Option {
	return convert.WithStore(store)
}

// WithPolicy sets the default error policy for every branch.
func WithPolicy(p Policy) Option {
	return convert.WithPolicy(p)
}

// WithBranchPolicy overrides the error policy of one branch.
func WithBranchPolicy(b Branch, p Policy) Option {
	return convert.WithBranchPolicy(b, p)
}

// WithURLMode keeps (core.URLReplace) or drops (core.URLTruncate) server url
// segments after the implementation name.
func WithURLMode(m core.URLMode) Option {
	return convert.WithURLMode(m)
}

// --- Factory ---

// New creates a Converter for one version folder.
func New(sourceDir, target string, opts ...Option) (*Converter, error) {
	return convert.New(sourceDir, target, opts...)
}

// Convert runs a single conversion.
func Convert(ctx context.Context, sourceDir, target string, opts ...Option) (*Report, error) {
	c, err := New(sourceDir, target, opts...)
	if err != nil {
		return nil, err
	}
	return c.Run(ctx)
}
