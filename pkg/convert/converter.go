// Package convert migrates a Knowledge Object version folder into the
// two-tier object/implementation layout.
//
// A run has two phases. The load phase reads the version descriptor, the
// model descriptor and the service specification; any failure there is fatal
// and happens before a single output exists. The write phase fans out one
// goroutine per output (branch) and always joins them before returning, so
// every file is either durably written or reported as failed.
package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/koconv/pkg/adapters/fs"
	"github.com/aretw0/koconv/pkg/core"
)

// Converter converts one version folder into one implementation.
type Converter struct {
	layout core.Layout
	opts   *options

	mu      sync.RWMutex
	runs    int
	lastRun *time.Time
	plan    *core.Plan
	last    *Report
	lastErr error
}

// New creates a Converter for sourceDir and the target implementation name.
func New(sourceDir, target string, opts ...Option) (*Converter, error) {
	layout, err := core.NewLayout(sourceDir, target)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.store == nil {
		o.store = fs.NewStore(fs.Config{Logger: o.logger})
	}

	return &Converter{layout: layout, opts: o}, nil
}

// Layout returns the directories this converter reads and writes.
func (c *Converter) Layout() core.Layout {
	return c.layout
}

type task struct {
	branch core.Branch
	path   string
	run    func(ctx context.Context) error
}

// Run performs the conversion. A nil error with a non-nil Report can still
// carry failed outcomes when their branches use the best-effort policy.
func (c *Converter) Run(ctx context.Context) (report *Report, err error) {
	defer func() { c.record(report, err) }()

	plan, spec, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.plan = &plan
	c.mu.Unlock()

	report = newReport(plan)
	implDir := c.layout.ImplementationDir()
	if err := c.opts.store.EnsureDir(ctx, implDir); err != nil {
		return report, fmt.Errorf("cannot create implementation directory: %w", err)
	}

	store := c.opts.store
	tasks := []task{
		{core.BranchTopLevel, plan.TopLevelPath, func(ctx context.Context) error {
			return store.WriteJSON(ctx, plan.TopLevelPath, plan.TopLevel)
		}},
		{core.BranchImplementation, plan.ImplementationPath, func(ctx context.Context) error {
			return store.WriteJSON(ctx, plan.ImplementationPath, plan.Implementation)
		}},
		{core.BranchPayload, plan.PayloadPath, func(ctx context.Context) error {
			return store.Copy(ctx, plan.PayloadSource, plan.PayloadPath)
		}},
		{core.BranchServiceSpec, plan.ServicePath, func(ctx context.Context) error {
			return store.WriteYAML(ctx, plan.ServicePath, spec)
		}},
		{core.BranchDeploymentSpec, plan.DeploymentPath, func(ctx context.Context) error {
			return store.WriteYAML(ctx, plan.DeploymentPath, plan.Deployment)
		}},
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, t := range tasks {
		g.Go(func() error {
			return c.runTask(gctx, report, i, t)
		})
	}

	var collected []error
	if err := g.Wait(); err != nil {
		collected = append(collected, err)
	} else if err := ctx.Err(); err != nil {
		return report, err
	}

	// Collect-policy failures are reported even when a fail-fast branch
	// ended the run.
	for _, o := range report.Failed() {
		if c.opts.policies.For(o.Branch) == core.PolicyCollect {
			collected = append(collected, o.Err)
		}
	}
	return report, errors.Join(collected...)
}

// runTask executes one branch and applies its policy. Only fail-fast
// failures are returned to the group.
func (c *Converter) runTask(ctx context.Context, report *Report, i int, t task) error {
	log := c.opts.logger.With("branch", string(t.branch), "path", t.path)

	if err := ctx.Err(); err != nil {
		log.Warn("branch skipped", "reason", err)
		report.set(i, StatusSkipped, err)
		return nil
	}

	log.Info("writing output")
	err := t.run(ctx)
	if err == nil {
		report.set(i, StatusWritten, nil)
		return nil
	}
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		log.Warn("branch skipped", "reason", err)
		report.set(i, StatusSkipped, err)
		return nil
	}

	err = fmt.Errorf("%w: %s: %w", core.ErrBranchFailed, t.branch, err)
	report.set(i, StatusFailed, err)

	policy := c.opts.policies.For(t.branch)
	log.Error("branch failed", "policy", string(policy), "error", err)
	if policy == core.PolicyFailFast {
		return err
	}
	return nil
}

// load is the fatal phase: nothing has been written when it fails.
func (c *Converter) load(ctx context.Context) (core.Plan, core.ServiceSpec, error) {
	store := c.opts.store
	log := c.opts.logger

	log.Debug("loading version metadata", "path", c.layout.VersionMetadataPath())
	version, err := store.LoadVersion(ctx, c.layout.VersionMetadataPath())
	if err != nil {
		return core.Plan{}, nil, fmt.Errorf("%w: %w", core.ErrVersionMetadata, err)
	}

	log.Debug("loading model metadata", "path", c.layout.ModelMetadataPath())
	model, err := store.LoadModel(ctx, c.layout.ModelMetadataPath())
	if err != nil {
		return core.Plan{}, nil, fmt.Errorf("%w: %w", core.ErrModelMetadata, err)
	}

	plan, err := core.NewPlan(c.layout, version, model, c.opts.names, c.opts.contexts)
	if err != nil {
		return core.Plan{}, nil, err
	}

	log.Debug("loading service specification", "path", plan.ServiceSource)
	spec, err := store.LoadServiceSpec(ctx, plan.ServiceSource)
	if err != nil {
		return core.Plan{}, nil, fmt.Errorf("%w: %w", core.ErrServiceSpec, err)
	}
	url, err := spec.ServerURL()
	if err != nil {
		return core.Plan{}, nil, fmt.Errorf("%w: %s: %w", core.ErrServiceSpec, plan.ServiceSource, err)
	}
	rewritten := core.RewriteServerURL(url, c.layout.Target, c.opts.urlMode)
	patched, err := spec.WithServerURL(rewritten)
	if err != nil {
		return core.Plan{}, nil, fmt.Errorf("%w: %w", core.ErrServiceSpec, err)
	}
	log.Debug("rewrote server url", "from", url, "to", rewritten)

	return plan, patched, nil
}

// WatchDirs lists the directories whose changes affect the output: the
// version folder, its model folder, and once a run has resolved them the
// folders of the service specification and the payload.
func (c *Converter) WatchDirs() []string {
	dirs := []string{c.layout.SourceDir, filepath.Join(c.layout.SourceDir, core.ModelDir)}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.plan != nil {
		dirs = append(dirs, filepath.Dir(c.plan.ServiceSource), filepath.Dir(c.plan.PayloadSource))
	}
	return dirs
}

func (c *Converter) record(report *Report, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	c.runs++
	c.lastRun = &now
	c.last = report
	c.lastErr = err
}
