package refcode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCodes(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "refcodes.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	g := New(writeCodes(t, "alpha\nbeta\n\n  gamma  \n"))

	assert.Equal(t, 3, g.Len())
	assert.True(t, g.Check("alpha"))
	assert.True(t, g.Check("beta"))
	assert.True(t, g.Check("gamma"))
	assert.False(t, g.Check("delta"))
}

func TestMissingFileFailsOpen(t *testing.T) {
	g := New(filepath.Join(t.TempDir(), "absent.txt"))

	assert.Equal(t, 0, g.Len())
	assert.False(t, g.Check("anything"))
}

func TestCheckIsNotConsuming(t *testing.T) {
	g := New(writeCodes(t, "alpha"))

	assert.True(t, g.Check("alpha"))
	assert.True(t, g.Check("alpha"))
}

func TestAdmitAppendsFileAndSet(t *testing.T) {
	path := writeCodes(t, "alpha")
	g := New(path)

	require.NoError(t, g.Admit("beta"))
	assert.True(t, g.Check("beta"))

	// A gate built fresh from the same file sees the admitted code too.
	again := New(path)
	assert.True(t, again.Check("alpha"))
	assert.True(t, again.Check("beta"))
}

func TestAdmitCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.txt")
	g := New(path)

	require.NoError(t, g.Admit("alpha"))
	assert.True(t, g.Check("alpha"))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "alpha")
}

func TestReloadReplacesSet(t *testing.T) {
	path := writeCodes(t, "alpha")
	g := New(path)
	require.True(t, g.Check("alpha"))

	require.NoError(t, os.WriteFile(path, []byte("beta\n"), 0o644))
	require.NoError(t, g.Reload())

	assert.False(t, g.Check("alpha"))
	assert.True(t, g.Check("beta"))
}
