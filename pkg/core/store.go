package core

import "context"

// Store is the port the converter reads descriptors from and writes the new
// layout through. Adhering to it keeps the conversion logic independent of
// the filesystem, which makes fault injection in tests straightforward.
type Store interface {
	// LoadVersion parses a version-level metadata.json.
	LoadVersion(ctx context.Context, path string) (VersionDescriptor, error)

	// LoadModel parses a model-level metadata.json.
	LoadModel(ctx context.Context, path string) (ModelDescriptor, error)

	// LoadServiceSpec parses a YAML service specification.
	LoadServiceSpec(ctx context.Context, path string) (ServiceSpec, error)

	// EnsureDir creates a directory and its parents. Existing directories are fine.
	EnsureDir(ctx context.Context, path string) error

	// WriteJSON writes v as indented JSON, replacing any existing file.
	WriteJSON(ctx context.Context, path string, v any) error

	// WriteYAML writes v as YAML, replacing any existing file.
	WriteYAML(ctx context.Context, path string, v any) error

	// Copy copies a file, replacing the destination and creating its parents.
	Copy(ctx context.Context, src, dst string) error
}
