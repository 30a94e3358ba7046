package core_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/koconv/pkg/core"
)

func strPtr(s string) *string { return &s }

func sampleVersion() core.VersionDescriptor {
	return core.VersionDescriptor{
		ArkID:        "ark:/99999/fk4test/v0.1.0",
		Title:        "Test Object",
		Description:  strPtr("A test knowledge object"),
		Contributors: json.RawMessage(`"Jane Doe"`),
		Citations:    json.RawMessage(`[{"title":"Paper"}]`),
		Keywords:     json.RawMessage(`["a","b"]`),
		Service:      "service-specification.yaml",
	}
}

func sampleModel() core.ModelDescriptor {
	return core.ModelDescriptor{
		Resource:     "resource/content.js",
		AdapterType:  "JAVASCRIPT",
		FunctionName: "content",
	}
}

func TestObjectID(t *testing.T) {
	tests := []struct {
		name    string
		arkID   string
		want    string
		wantErr bool
	}{
		{"three segments", "naan/name/version", "name-version", false},
		{"ark prefix", "ark:/99999/fk4test/v0.1.0", "99999-fk4test", false},
		{"two segments", "naan/name", "", true},
		{"empty", "", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := core.ObjectID(tc.arkID)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, core.ErrInvalidArkID))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPayloadName(t *testing.T) {
	assert.Equal(t, "script.js", core.PayloadName("code/script.js"))
	assert.Equal(t, "script.js", core.PayloadName("script.js"))
	assert.Equal(t, "a/b/c.js", core.PayloadName("a/b/c.js"))
}

func TestBuildTopLevel(t *testing.T) {
	v := sampleVersion()
	v.ArkID = "naan/name/version"

	top, err := core.BuildTopLevel(v, "impl", core.ObjectContext)
	require.NoError(t, err)

	assert.Equal(t, "name-version", top.ID)
	assert.Equal(t, core.TypeKnowledgeObject, top.Type)
	assert.Equal(t, "naan/name/version", top.Identifier)
	assert.Equal(t, []string{"name-version/impl"}, top.HasImplementation)
	assert.Equal(t, []string{core.ObjectContext}, top.Context)
	assert.JSONEq(t, `"Jane Doe"`, string(top.Contributors))

	_, err = core.BuildTopLevel(core.VersionDescriptor{ArkID: "short"}, "impl", core.ObjectContext)
	assert.ErrorIs(t, err, core.ErrInvalidArkID)
}

func TestBuildImplementation(t *testing.T) {
	impl := core.BuildImplementation(sampleVersion(), sampleModel(), "js-impl", core.DefaultSpecNames(), core.ImplementationContext)

	assert.Equal(t, "js-impl", impl.ID)
	assert.Equal(t, "js-impl", impl.Identifier)
	assert.Equal(t, core.TypeImplementation, impl.Type)
	assert.Equal(t, "Test Object Implementation", impl.Title)
	assert.Equal(t, "js-impl/service-specification.yaml", impl.HasServiceSpecification)
	assert.Equal(t, "js-impl/deployment-specification.yaml", impl.HasDeploymentSpecification)
	assert.Equal(t, "js-impl/content.js", impl.HasPayload)
	assert.Equal(t, []string{core.ImplementationContext}, impl.Context)
}

func TestBuildDeploymentSpec(t *testing.T) {
	spec := core.BuildDeploymentSpec(sampleModel())

	require.Len(t, spec.Endpoints, 1)
	ep, ok := spec.Endpoints["/content"]
	require.True(t, ok, "endpoint must be keyed by /functionName")
	assert.Equal(t, core.Endpoint{AdapterType: "JAVASCRIPT", Artifact: "content.js", Entry: "content"}, ep)
}

func TestRewriteServerURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		mode core.URLMode
		want string
	}{
		{"absolute truncates", "https://host/v1/oldname/extra", core.URLTruncate, "https://host/v1/newimpl"},
		{"absolute replaces", "https://host/v1/oldname/extra", core.URLReplace, "https://host/v1/newimpl/extra"},
		{"relative ark path", "/99999/fk4test/v0.1.0", core.URLTruncate, "/99999/fk4test/newimpl"},
		{"relative with suffix", "/99999/fk4test/v0.1.0/more", core.URLTruncate, "/99999/fk4test/newimpl"},
		{"short relative", "/v1", core.URLTruncate, "/v1/newimpl"},
		{"host only", "https://host", core.URLTruncate, "https://host/newimpl"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, core.RewriteServerURL(tc.url, "newimpl", tc.mode))
		})
	}
}

func TestParseURLMode(t *testing.T) {
	m, err := core.ParseURLMode("")
	require.NoError(t, err)
	assert.Equal(t, core.URLTruncate, m)

	m, err = core.ParseURLMode("Replace")
	require.NoError(t, err)
	assert.Equal(t, core.URLReplace, m)

	_, err = core.ParseURLMode("pad")
	assert.Error(t, err)
}

func TestNewPlan(t *testing.T) {
	base := t.TempDir()
	at := func(rel string) string { return filepath.Join(base, filepath.FromSlash(rel)) }

	l, err := core.NewLayout(at("objects/fk4test/v0.1.0")+string(filepath.Separator), "js-impl")
	require.NoError(t, err)
	assert.Equal(t, at("objects/fk4test"), l.ParentDir)

	plan, err := core.NewPlan(l, sampleVersion(), sampleModel(), core.DefaultSpecNames(), core.DefaultContexts())
	require.NoError(t, err)

	assert.Equal(t, at("objects/fk4test/metadata.json"), plan.TopLevelPath)
	assert.Equal(t, at("objects/fk4test/js-impl/metadata.json"), plan.ImplementationPath)
	assert.Equal(t, at("objects/fk4test/v0.1.0/model/resource/content.js"), plan.PayloadSource)
	assert.Equal(t, at("objects/fk4test/js-impl/content.js"), plan.PayloadPath)
	assert.Equal(t, at("objects/fk4test/v0.1.0/service-specification.yaml"), plan.ServiceSource)
	assert.Equal(t, at("objects/fk4test/js-impl/service-specification.yaml"), plan.ServicePath)
	assert.Equal(t, at("objects/fk4test/js-impl/deployment-specification.yaml"), plan.DeploymentPath)
}

func TestNewLayout_RejectsTargets(t *testing.T) {
	for _, target := range []string{"", " ", ".", "..", "a/b", `a\b`, "v1"} {
		_, err := core.NewLayout("src/v1", target)
		assert.ErrorIs(t, err, core.ErrInvalidTarget, "target %q", target)
	}
}

func TestNewLayout_RelativeSource(t *testing.T) {
	objectDir := filepath.Join(t.TempDir(), "fk4test")
	versionDir := filepath.Join(objectDir, "v0.1.0")
	require.NoError(t, os.MkdirAll(versionDir, 0755))

	t.Run("From Inside the Version Folder", func(t *testing.T) {
		t.Chdir(versionDir)
		for _, src := range []string{".", "./", "." + string(filepath.Separator)} {
			l, err := core.NewLayout(src, "impl")
			require.NoError(t, err, "source %q", src)

			// Resolve symlinked temp dirs the same way Getwd reports them.
			wd, err := os.Getwd()
			require.NoError(t, err)
			assert.Equal(t, wd, l.SourceDir)
			assert.Equal(t, filepath.Dir(wd), l.ParentDir)
			assert.NotEqual(t, l.SourceDir, l.ParentDir)
			assert.Equal(t, filepath.Join(filepath.Dir(wd), "impl"), l.ImplementationDir())
		}

		_, err := core.NewLayout(".", filepath.Base(versionDir))
		assert.ErrorIs(t, err, core.ErrInvalidTarget)
	})

	t.Run("Bare Folder Name", func(t *testing.T) {
		t.Chdir(objectDir)
		wd, err := os.Getwd()
		require.NoError(t, err)

		l, err := core.NewLayout("v0.1.0", "impl")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(wd, "v0.1.0"), l.SourceDir)
		assert.Equal(t, wd, l.ParentDir)
	})

	t.Run("Filesystem Root", func(t *testing.T) {
		_, err := core.NewLayout(string(filepath.Separator), "impl")
		assert.Error(t, err)
	})
}

func TestBuildImplementation_Description(t *testing.T) {
	v := sampleVersion()

	v.Description = strPtr("")
	data, err := json.Marshal(core.BuildImplementation(v, sampleModel(), "impl", core.DefaultSpecNames(), core.ImplementationContext))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"description":""`)

	v.Description = nil
	data, err = json.Marshal(core.BuildImplementation(v, sampleModel(), "impl", core.DefaultSpecNames(), core.ImplementationContext))
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"description"`)
}
