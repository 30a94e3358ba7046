package core

import "errors"

// Fatal errors abort a conversion before any output is written.
var (
	ErrVersionMetadata = errors.New("cannot load version metadata")
	ErrModelMetadata   = errors.New("cannot load model metadata")
	ErrServiceSpec     = errors.New("cannot load service specification")
	ErrInvalidArkID    = errors.New("arkId must have at least 3 slash-delimited segments")
	ErrInvalidTarget   = errors.New("invalid target implementation name")
	ErrNoServer        = errors.New("service specification declares no server url")
)

// ErrBranchFailed wraps every write or copy failure reported by a branch.
var ErrBranchFailed = errors.New("conversion branch failed")
