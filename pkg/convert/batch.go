package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/koconv/pkg/core"
)

// DefaultTargetSuffix names batch implementations when no target is given:
// version folder v1 becomes implementation v1-impl beside it.
const DefaultTargetSuffix = "-impl"

// Job is one version folder to convert.
type Job struct {
	SourceDir string
	Target    string
}

// Discover expands a doublestar pattern into conversion jobs. A match may be
// a version folder or its metadata.json; folders without both descriptors
// are skipped. When target is empty each job is named after its folder plus
// DefaultTargetSuffix.
func Discover(pattern, target string) ([]Job, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	seen := make(map[string]bool)
	var jobs []Job
	for _, m := range matches {
		dir := m
		if filepath.Base(m) == core.MetadataFile {
			dir = filepath.Dir(m)
		}
		dir = filepath.Clean(dir)
		if seen[dir] || !isVersionDir(dir) {
			continue
		}
		seen[dir] = true

		name := target
		if name == "" {
			name = filepath.Base(dir) + DefaultTargetSuffix
		}
		jobs = append(jobs, Job{SourceDir: dir, Target: name})
	}

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].SourceDir < jobs[j].SourceDir })
	return jobs, nil
}

func isVersionDir(dir string) bool {
	for _, p := range []string{
		filepath.Join(dir, core.MetadataFile),
		filepath.Join(dir, core.ModelDir, core.MetadataFile),
	} {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			return false
		}
	}
	return true
}

// RunBatch converts jobs one after another. A failing job does not stop the
// batch; every error is returned joined, after all jobs ran.
func RunBatch(ctx context.Context, jobs []Job, opts ...Option) ([]*Report, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		reports []*Report
		errs    []error
	)
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		logger.Info("converting version folder", "source", job.SourceDir, "target", job.Target)
		c, err := New(job.SourceDir, job.Target, opts...)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", job.SourceDir, err))
			continue
		}
		report, err := c.Run(ctx)
		if report != nil {
			reports = append(reports, report)
		}
		if err != nil {
			logger.Error("conversion failed", "source", job.SourceDir, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", job.SourceDir, err))
		}
	}
	return reports, errors.Join(errs...)
}
