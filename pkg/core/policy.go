package core

import (
	"fmt"
	"strings"
)

// Branch names one independent output of a conversion.
type Branch string

const (
	BranchTopLevel       Branch = "top-level-metadata"
	BranchImplementation Branch = "implementation-metadata"
	BranchPayload        Branch = "payload"
	BranchServiceSpec    Branch = "service-specification"
	BranchDeploymentSpec Branch = "deployment-specification"
)

// Branches lists every branch in the order they are started.
func Branches() []Branch {
	return []Branch{
		BranchTopLevel,
		BranchImplementation,
		BranchPayload,
		BranchServiceSpec,
		BranchDeploymentSpec,
	}
}

// Policy decides what a branch failure does to the rest of the run.
type Policy string

const (
	// PolicyBestEffort logs the failure and lets the run succeed.
	PolicyBestEffort Policy = "best-effort"
	// PolicyCollect logs the failure, lets siblings finish, and fails the run.
	PolicyCollect Policy = "collect"
	// PolicyFailFast cancels the siblings that have not written yet and fails the run.
	PolicyFailFast Policy = "fail-fast"
)

// ParsePolicy accepts the names used in configuration. Empty means best-effort.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyBestEffort:
		return PolicyBestEffort, nil
	case PolicyCollect:
		return PolicyCollect, nil
	case PolicyFailFast:
		return PolicyFailFast, nil
	}
	return "", fmt.Errorf("unknown error policy %q", s)
}

// PolicySet is a default policy plus per-branch overrides.
type PolicySet struct {
	Default   Policy
	Overrides map[Branch]Policy
}

// For returns the policy that governs b.
func (p PolicySet) For(b Branch) Policy {
	if pol, ok := p.Overrides[b]; ok && pol != "" {
		return pol
	}
	if p.Default == "" {
		return PolicyBestEffort
	}
	return p.Default
}

// ParseBranch accepts a branch name as used in configuration keys.
func ParseBranch(s string) (Branch, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, b := range Branches() {
		if string(b) == name {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown branch %q", s)
}
