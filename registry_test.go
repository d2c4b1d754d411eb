package gal_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gal"
	"github.com/gogpu/gal/backend/null"
)

var errNoAdapter = errors.New("no adapter")

// failing is a backend whose renderer never initializes.
func failing(id string, priority int) gal.Plugin {
	return gal.Plugin{
		ID:       id,
		Priority: priority,
		Create: func(gal.Config) (gal.Renderer, error) {
			return nil, errNoAdapter
		},
	}
}

func TestRegistryOrder(t *testing.T) {
	reg, err := gal.NewRegistry(null.Plugin(), failing("b", 5), failing("a", 5), failing("gpu", 50))
	require.NoError(t, err)

	var ids []string
	for _, p := range reg.Plugins() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"gpu", "a", "b", "null"}, ids)
	assert.Equal(t, []string{"gpu", "a", "b", null.Name}, reg.Names())

	reg.Unregister("gpu")
	assert.Len(t, reg.Plugins(), 3)
}

func TestRegistryRegister(t *testing.T) {
	reg, err := gal.NewRegistry()
	require.NoError(t, err)

	assert.ErrorIs(t, reg.Register(gal.Plugin{ID: "x"}), gal.ErrInvalidArgument)

	tests := []struct {
		constraint string
		want       error
	}{
		{"", nil},
		{"^1.0.0", nil},
		{">= 1.0, < 2", nil},
		{"^2.0.0", gal.ErrIncompatibleVersion},
		{"< 1.0.0", gal.ErrIncompatibleVersion},
		{"not a version", gal.ErrIncompatibleVersion},
	}
	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			p := failing("v", 0)
			p.RequiredVersion = tt.constraint
			err := reg.Register(p)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}

	p, ok := reg.Lookup("v")
	require.True(t, ok)
	assert.Equal(t, "v", p.Name, "name defaults to the id")
}

func TestRegistryLookup(t *testing.T) {
	reg, err := gal.NewRegistry(null.Plugin())
	require.NoError(t, err)

	for _, name := range []string{"null", "Test", "test", "TEST"} {
		p, ok := reg.Lookup(name)
		assert.True(t, ok, name)
		assert.Equal(t, null.ID, p.ID)
	}
	_, ok := reg.Lookup("vulkan")
	assert.False(t, ok)

	r, err := reg.CreateRenderer("test")
	require.NoError(t, err)
	defer r.Destroy()
	assert.Equal(t, null.Name, r.Name())

	_, err = reg.CreateRenderer("vulkan")
	assert.ErrorIs(t, err, gal.ErrBackendNotFound)
	_, err = reg.CreateRenderer("null", gal.WithHeap(3, 1))
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)
}

func TestRegistryDefault(t *testing.T) {
	reg, err := gal.NewRegistry(null.Plugin(), failing("gpu", 10))
	require.NoError(t, err)

	r, err := reg.Default()
	require.NoError(t, err, "falls back past the failing backend")
	defer r.Destroy()
	assert.Equal(t, null.Name, r.Name())

	cfg := gal.DefaultConfig()
	cfg.Backend = "gpu"
	_, err = reg.Default(gal.WithConfig(cfg))
	assert.ErrorIs(t, err, errNoAdapter, "an explicit backend is not replaced")

	reg.Unregister(null.ID)
	_, err = reg.Default()
	assert.ErrorIs(t, err, gal.ErrBackendNotFound)
	assert.ErrorIs(t, err, errNoAdapter)

	empty, err := gal.NewRegistry()
	require.NoError(t, err)
	_, err = empty.Default()
	assert.ErrorIs(t, err, gal.ErrBackendNotFound)
}

func TestParseManifest(t *testing.T) {
	m, err := gal.ParseManifest([]byte(`
id = "vk"
name = "Vulkan"
required_version = "^1.0"
priority = 20
library = "libgalvk.so"
`))
	require.NoError(t, err)
	assert.Equal(t, gal.Manifest{ID: "vk", Name: "Vulkan", RequiredVersion: "^1.0", Priority: 20, Library: "libgalvk.so"}, m)

	_, err = gal.ParseManifest([]byte(`id = "vk"`))
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)
	_, err = gal.ParseManifest([]byte(`id = `))
	assert.Error(t, err)
}

func TestProbe(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	write("future"+gal.ManifestExt, "id = \"future\"\nrequired_version = \"^9\"\nlibrary = \"future.so\"\n")
	write("broken"+gal.ManifestExt, "id = \"broken\"\n")
	write("README.md", "not a manifest")

	reg, err := gal.NewRegistry(null.Plugin())
	require.NoError(t, err)
	err = reg.Probe(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, gal.ErrIncompatibleVersion)
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "future"+gal.ManifestExt)
	assert.Len(t, reg.Plugins(), 1, "nothing registered from a failed probe")

	require.NoError(t, reg.Probe(t.TempDir()), "an empty directory is not an error")
}
