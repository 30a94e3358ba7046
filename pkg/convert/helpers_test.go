package convert_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/koconv/pkg/adapters/fs"
	"github.com/aretw0/koconv/pkg/core"
)

const (
	versionJSON = `{
  "arkId": "ark:/99999/fk4test/v0.1.0",
  "title": "Test Object",
  "description": "Scores a risk",
  "contributors": "Jane Doe",
  "citations": [{"citation_title": "Paper", "citation_at": "https://example.org"}],
  "keywords": ["risk", "score"],
  "service": "service-specification.yaml"
}`
	modelJSON = `{
  "resource": "resource/content.js",
  "adapterType": "JAVASCRIPT",
  "functionName": "content"
}`
	serviceSpecYAML = `openapi: 3.0.0
info:
  title: Test Object
servers:
  - url: /99999/fk4test/v0.1.0
paths:
  /content:
    post:
      summary: run
`
	payloadJS = "function content(inputs) { return inputs; }\n"
)

// newFixture lays out <root>/fk4test/v0.1.0 in the old single-version layout
// and returns the version folder.
func newFixture(t *testing.T) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), "fk4test", "v0.1.0")
	put(t, filepath.Join(src, "metadata.json"), versionJSON)
	put(t, filepath.Join(src, "model", "metadata.json"), modelJSON)
	put(t, filepath.Join(src, "model", "resource", "content.js"), payloadJS)
	put(t, filepath.Join(src, "service-specification.yaml"), serviceSpecYAML)
	return src
}

func put(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// listDir returns the entry names of dir.
func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var errInjected = errors.New("injected failure")

// faultStore wraps the filesystem store. Writes to paths in fail return
// errInjected; writes to paths in block wait until their context is done;
// writes to paths in gate wait until the channel is closed. onFail, when set,
// sees every injected failure.
type faultStore struct {
	*fs.Store
	fail   map[string]bool
	block  map[string]bool
	gate   map[string]chan struct{}
	onFail func(path string)
}

func newFaultStore() *faultStore {
	return &faultStore{
		Store: fs.NewStore(fs.Config{Logger: quietLogger()}),
		fail:  map[string]bool{},
		block: map[string]bool{},
		gate:  map[string]chan struct{}{},
	}
}

func (s *faultStore) check(ctx context.Context, path string) error {
	if g, ok := s.gate[path]; ok {
		select {
		case <-g:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if s.fail[path] {
		if s.onFail != nil {
			s.onFail(path)
		}
		return errInjected
	}
	if s.block[path] {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (s *faultStore) WriteJSON(ctx context.Context, path string, v any) error {
	if err := s.check(ctx, path); err != nil {
		return err
	}
	return s.Store.WriteJSON(ctx, path, v)
}

func (s *faultStore) WriteYAML(ctx context.Context, path string, v any) error {
	if err := s.check(ctx, path); err != nil {
		return err
	}
	return s.Store.WriteYAML(ctx, path, v)
}

func (s *faultStore) Copy(ctx context.Context, src, dst string) error {
	if err := s.check(ctx, dst); err != nil {
		return err
	}
	return s.Store.Copy(ctx, src, dst)
}

var _ core.Store = (*faultStore)(nil)
