package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev := userHomeDir
	userHomeDir = func() (string, error) { return dir, nil }
	t.Cleanup(func() { userHomeDir = prev })
	t.Setenv(EnvToken, "")
	return dir
}

func TestLookupLoggedOut(t *testing.T) {
	withHome(t)
	c, err := Lookup()
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Equal(t, "", Token())
}

func TestSaveLookupClear(t *testing.T) {
	home := withHome(t)

	require.NoError(t, Save("Bearer abc.def"))

	fi, err := os.Stat(filepath.Join(home, ".menuadmin", "credentials.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	c, err := Lookup()
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "abc.def", c.Token)
	assert.Equal(t, SourceFile, c.Source)
	assert.False(t, c.SavedAt.IsZero())

	require.NoError(t, Clear())
	require.NoError(t, Clear(), "clearing twice is not an error")
	assert.Equal(t, "", Token())
}

func TestEnvOverridesFile(t *testing.T) {
	withHome(t)
	require.NoError(t, Save("from-file"))
	t.Setenv(EnvToken, "bearer from-env")

	c, err := Lookup()
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.Token)
	assert.Equal(t, SourceEnv, c.Source)
}

func TestSaveRejectsEmpty(t *testing.T) {
	withHome(t)
	assert.Error(t, Save("   "))
	assert.Error(t, Save("Bearer  "))
}

func TestCorruptCredentialsFile(t *testing.T) {
	home := withHome(t)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".menuadmin"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".menuadmin", "credentials.json"), []byte("{"), 0o600))

	_, err := Lookup()
	assert.Error(t, err)
	assert.Equal(t, "", Token())
}
