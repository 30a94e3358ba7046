package core_test

import (
	"testing"

	"github.com/aretw0/koconv/pkg/core"
)

func TestPolicySet_For(t *testing.T) {
	set := core.PolicySet{
		Default: core.PolicyCollect,
		Overrides: map[core.Branch]core.Policy{
			core.BranchPayload: core.PolicyFailFast,
		},
	}

	if got := set.For(core.BranchPayload); got != core.PolicyFailFast {
		t.Errorf("payload: expected fail-fast, got %s", got)
	}
	if got := set.For(core.BranchTopLevel); got != core.PolicyCollect {
		t.Errorf("top-level: expected collect, got %s", got)
	}

	var zero core.PolicySet
	if got := zero.For(core.BranchServiceSpec); got != core.PolicyBestEffort {
		t.Errorf("zero value: expected best-effort, got %s", got)
	}
}

func TestParsePolicy(t *testing.T) {
	cases := map[string]core.Policy{
		"":            core.PolicyBestEffort,
		"best-effort": core.PolicyBestEffort,
		"COLLECT":     core.PolicyCollect,
		" fail-fast ": core.PolicyFailFast,
	}
	for in, want := range cases {
		got, err := core.ParsePolicy(in)
		if err != nil {
			t.Fatalf("ParsePolicy(%q) failed: %v", in, err)
		}
		if got != want {
			t.Errorf("ParsePolicy(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := core.ParsePolicy("retry"); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestParseBranch(t *testing.T) {
	for _, b := range core.Branches() {
		got, err := core.ParseBranch(string(b))
		if err != nil || got != b {
			t.Errorf("ParseBranch(%q) = %q, %v", b, got, err)
		}
	}
	if _, err := core.ParseBranch("nope"); err == nil {
		t.Error("expected error for unknown branch")
	}
}
