package configs

import (
	"testing"

	"github.com/inklinehq/Inkline-CLI/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempAppPath(t *testing.T) {
	t.Helper()
	originalAppPath := utils.APP_PATH
	utils.APP_PATH = t.TempDir()
	t.Cleanup(func() {
		utils.APP_PATH = originalAppPath
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	useTempAppPath(t)

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, utils.USER_AGENT, config.UserAgent)
	assert.NotEmpty(t, config.SavePath)
	assert.Error(t, config.ValidateApi())
	assert.Error(t, config.ValidateUploads())
	assert.Error(t, config.ValidateAuth())
}

func TestConfigRoundTrip(t *testing.T) {
	useTempAppPath(t)

	saved := DefaultConfig()
	saved.ApiBaseUrl = "https://blog.example.com"
	saved.AuthBaseUrl = "https://auth.example.com"
	saved.CloudName = "demo"
	saved.UploadPreset = "unsigned"
	saved.OverwriteFiles = true
	require.NoError(t, SaveConfig(saved))

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://blog.example.com", loaded.ApiBaseUrl)
	assert.Equal(t, "demo", loaded.CloudName)
	assert.True(t, loaded.OverwriteFiles)
	assert.NoError(t, loaded.ValidateApi())
	assert.NoError(t, loaded.ValidateUploads())
	assert.NoError(t, loaded.ValidateAuth())
}
