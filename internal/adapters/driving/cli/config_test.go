package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/opencourse-labs/virta/internal/adapters/driven/config/file"
)

func setupTestConfig(t *testing.T) func() {
	t.Helper()

	cleanup := setupTestServices()

	store, err := configfile.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	configStore = store

	return cleanup
}

func TestConfigCmd_SetAndGet(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "set", "llm.model", "gpt-4o-mini"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()
	require.NoError(t, rootCmd.Execute())

	buf.Reset()
	rootCmd.SetArgs([]string{"config", "get", "llm.model"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "gpt-4o-mini")
}

func TestConfigCmd_SetParsesTypes(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "set", "answer.match_limit", "7"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, 7, configStore.GetInt("answer.match_limit"))
}

func TestConfigCmd_GetMasksAPIKey(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	require.NoError(t, configStore.Set("llm.api_key", "sk-verysecretkey123"))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "get", "llm.api_key"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()
	require.NoError(t, rootCmd.Execute())

	assert.NotContains(t, buf.String(), "verysecretkey")
	assert.Contains(t, buf.String(), "...")
}

func TestConfigCmd_GetUnsetKey(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "get", "nope"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	assert.Error(t, err)
}

func TestConfigCmd_Path(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "path"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, buf.String(), "config.toml")
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "****", maskSecret("short"))
	assert.Equal(t, "sk-v...y123", maskSecret("sk-verysecretkey123"))
}
