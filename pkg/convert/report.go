package convert

import (
	"encoding/json"
	"sync"

	"github.com/aretw0/koconv/pkg/core"
)

// Status is the final state of one branch.
type Status string

const (
	StatusPending Status = "pending"
	StatusWritten Status = "written"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Outcome records what one branch did.
type Outcome struct {
	Branch core.Branch
	Path   string
	Status Status
	Err    error
}

// MarshalJSON renders Err as a string.
func (o Outcome) MarshalJSON() ([]byte, error) {
	out := struct {
		Branch core.Branch `json:"branch"`
		Path   string      `json:"path"`
		Status Status      `json:"status"`
		Error  string      `json:"error,omitempty"`
	}{Branch: o.Branch, Path: o.Path, Status: o.Status}
	if o.Err != nil {
		out.Error = o.Err.Error()
	}
	return json.Marshal(out)
}

// Report is the result of one conversion run. Outcomes follow core.Branches order.
type Report struct {
	Layout   core.Layout `json:"layout"`
	Outcomes []Outcome   `json:"outcomes"`

	mu sync.Mutex
}

func newReport(plan core.Plan) *Report {
	paths := map[core.Branch]string{
		core.BranchTopLevel:       plan.TopLevelPath,
		core.BranchImplementation: plan.ImplementationPath,
		core.BranchPayload:        plan.PayloadPath,
		core.BranchServiceSpec:    plan.ServicePath,
		core.BranchDeploymentSpec: plan.DeploymentPath,
	}
	r := &Report{Layout: plan.Layout}
	for _, b := range core.Branches() {
		r.Outcomes = append(r.Outcomes, Outcome{Branch: b, Path: paths[b], Status: StatusPending})
	}
	return r
}

func (r *Report) set(i int, status Status, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Outcomes[i].Status = status
	r.Outcomes[i].Err = err
}

// Failed returns the outcomes whose branch failed.
func (r *Report) Failed() []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

// Written returns the paths that were written, in branch order.
func (r *Report) Written() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var paths []string
	for _, o := range r.Outcomes {
		if o.Status == StatusWritten {
			paths = append(paths, o.Path)
		}
	}
	return paths
}

func (r *Report) snapshot() []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Outcome(nil), r.Outcomes...)
}
