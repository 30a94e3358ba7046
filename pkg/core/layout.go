package core

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Layout is the explicit configuration of one conversion: where the old
// version folder is, which implementation it becomes, and the object
// directory the new layout is written into.
type Layout struct {
	SourceDir string
	Target    string
	ParentDir string
}

// NewLayout validates the target name and derives the object directory as the
// parent of the source version folder. The source is made absolute first so
// that "." still has a real parent.
func NewLayout(sourceDir, target string) (Layout, error) {
	if err := ValidateTarget(target); err != nil {
		return Layout{}, err
	}
	src, err := filepath.Abs(sourceDir)
	if err != nil {
		return Layout{}, fmt.Errorf("cannot resolve source directory %q: %w", sourceDir, err)
	}
	parent := filepath.Dir(src)
	if parent == src {
		return Layout{}, fmt.Errorf("source directory %q has no parent", src)
	}

	l := Layout{
		SourceDir: src,
		Target:    target,
		ParentDir: parent,
	}
	// Outputs must never land inside the folder being read.
	if l.ImplementationDir() == src {
		return Layout{}, fmt.Errorf("%w: %q is the source version folder", ErrInvalidTarget, target)
	}
	return l, nil
}

// ValidateTarget rejects names that cannot be used both as an identifier and
// as a single directory name.
func ValidateTarget(target string) error {
	switch {
	case strings.TrimSpace(target) == "":
		return fmt.Errorf("%w: empty", ErrInvalidTarget)
	case target == "." || target == "..":
		return fmt.Errorf("%w: %q", ErrInvalidTarget, target)
	case strings.ContainsAny(target, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidTarget, target)
	}
	return nil
}

// ImplementationDir is <parent>/<target>.
func (l Layout) ImplementationDir() string {
	return filepath.Join(l.ParentDir, l.Target)
}

// VersionMetadataPath is <src>/metadata.json.
func (l Layout) VersionMetadataPath() string {
	return filepath.Join(l.SourceDir, MetadataFile)
}

// ModelMetadataPath is <src>/model/metadata.json.
func (l Layout) ModelMetadataPath() string {
	return filepath.Join(l.SourceDir, ModelDir, MetadataFile)
}

// source resolves a slash-delimited path relative to the version folder.
func (l Layout) source(rel string) string {
	return filepath.Join(l.SourceDir, filepath.FromSlash(rel))
}

// output resolves a slash-delimited path relative to the object directory.
func (l Layout) output(rel string) string {
	return filepath.Join(l.ParentDir, filepath.FromSlash(rel))
}
