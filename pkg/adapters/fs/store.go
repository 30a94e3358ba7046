package fs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aretw0/koconv/pkg/core"
)

// Config holds the configuration for the filesystem store.
type Config struct {
	Logger   *slog.Logger
	FileMode os.FileMode // mode of written documents, default 0644
	DirMode  os.FileMode // mode of created directories, default 0755
}

// Store implements core.Store on the local filesystem. Every write goes
// through a temp file and a rename.
type Store struct {
	config      Config
	serializers map[string]Serializer

	mu      sync.RWMutex
	reads   int
	writes  int
	copies  int
	copied  int64
	lastErr string
}

// NewStore creates a filesystem-backed store.
func NewStore(config Config) *Store {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.FileMode == 0 {
		config.FileMode = 0644
	}
	if config.DirMode == 0 {
		config.DirMode = 0755
	}
	return &Store{
		config:      config,
		serializers: DefaultSerializers(),
	}
}

// serializerFor picks a serializer by extension, falling back to fallback.
func (s *Store) serializerFor(path, fallback string) Serializer {
	if ser, ok := s.serializers[strings.ToLower(filepath.Ext(path))]; ok {
		return ser
	}
	return s.serializers[fallback]
}

func (s *Store) read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.config.Logger.Debug("reading file", "path", path)
	data, err := os.ReadFile(path)
	if err != nil {
		s.recordErr(err)
		return nil, err
	}
	s.mu.Lock()
	s.reads++
	s.mu.Unlock()
	return data, nil
}

// LoadVersion implements core.Store.
func (s *Store) LoadVersion(ctx context.Context, path string) (core.VersionDescriptor, error) {
	var v core.VersionDescriptor
	data, err := s.read(ctx, path)
	if err != nil {
		return v, err
	}
	if err := s.serializerFor(path, ".json").Decode(data, &v); err != nil {
		return v, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return v, nil
}

// LoadModel implements core.Store.
func (s *Store) LoadModel(ctx context.Context, path string) (core.ModelDescriptor, error) {
	var m core.ModelDescriptor
	data, err := s.read(ctx, path)
	if err != nil {
		return m, err
	}
	if err := s.serializerFor(path, ".json").Decode(data, &m); err != nil {
		return m, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return m, nil
}

// LoadServiceSpec implements core.Store. JSON specifications parse as YAML.
func (s *Store) LoadServiceSpec(ctx context.Context, path string) (core.ServiceSpec, error) {
	data, err := s.read(ctx, path)
	if err != nil {
		return nil, err
	}
	doc, err := ParseServiceDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// EnsureDir implements core.Store.
func (s *Store) EnsureDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(path, s.config.DirMode); err != nil {
		s.recordErr(err)
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// WriteJSON implements core.Store.
func (s *Store) WriteJSON(ctx context.Context, path string, v any) error {
	return s.write(ctx, path, s.serializers[".json"], v)
}

// WriteYAML implements core.Store.
func (s *Store) WriteYAML(ctx context.Context, path string, v any) error {
	return s.write(ctx, path, s.serializers[".yaml"], v)
}

func (s *Store) write(ctx context.Context, path string, ser Serializer, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := ser.Encode(v)
	if err != nil {
		s.recordErr(err)
		return fmt.Errorf("failed to serialize %s: %w", path, err)
	}

	s.config.Logger.Debug("writing file", "path", path, "bytes", len(data))
	if err := writeFileAtomic(path, data, s.config.FileMode); err != nil {
		s.recordErr(err)
		return err
	}

	s.mu.Lock()
	s.writes++
	s.mu.Unlock()
	return nil
}

// Copy implements core.Store. The destination keeps the source's permissions.
func (s *Store) Copy(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		s.recordErr(err)
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		s.recordErr(err)
		return err
	}
	if info.IsDir() {
		err := fmt.Errorf("cannot copy directory %s", src)
		s.recordErr(err)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), s.config.DirMode); err != nil {
		s.recordErr(err)
		return fmt.Errorf("failed to create directories: %w", err)
	}

	s.config.Logger.Debug("copying file", "from", src, "to", dst)
	var n int64
	err = writeAtomic(dst, info.Mode().Perm(), func(w io.Writer) error {
		var copyErr error
		n, copyErr = io.Copy(w, in)
		return copyErr
	})
	if err != nil {
		s.recordErr(err)
		return err
	}

	s.mu.Lock()
	s.copies++
	s.copied += n
	s.mu.Unlock()
	return nil
}

func (s *Store) recordErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err.Error()
}

var _ core.Store = (*Store)(nil)
