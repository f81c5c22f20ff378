package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/ragar/ragarctl/internal/config"
)

func TestCredentialStore_RoundTrip(t *testing.T) {
	t.Setenv(appconfig.HomeEnv, t.TempDir())

	store, err := Load()
	require.NoError(t, err)
	assert.False(t, store.IsAuthenticated())
	assert.False(t, store.Credentials().Valid())

	store.SetLogin("http://admin.ragar.io", "ops", "tok-123")
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reloaded, err := Load()
	require.NoError(t, err)
	assert.True(t, reloaded.IsAuthenticated())
	assert.Equal(t, "tok-123", reloaded.Get(TokenKey))
	assert.Equal(t, "Bearer tok-123", reloaded.Credentials().Authorization())
	assert.Equal(t, "ops", reloaded.Get(UsernameKey))

	reloaded.Clear()
	require.NoError(t, reloaded.Save())
	cleared, err := Load()
	require.NoError(t, err)
	assert.False(t, cleared.IsAuthenticated())
}

func TestCredentialStore_CorruptFile(t *testing.T) {
	t.Setenv(appconfig.HomeEnv, t.TempDir())
	path, err := GetCredentialsPath()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err = Load()
	assert.Error(t, err)
}
