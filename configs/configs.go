package configs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inklinehq/Inkline-CLI/utils"
)

type Config struct {
	// ApiBaseUrl is the origin of the content API that owns
	// posts and comments
	ApiBaseUrl string `json:"api_base_url"`

	// AuthBaseUrl is the origin of the hosted identity provider
	AuthBaseUrl string `json:"auth_base_url"`

	// CloudName and UploadPreset identify the media host account
	// used for unsigned uploads
	CloudName    string `json:"cloud_name"`
	UploadPreset string `json:"upload_preset"`

	// SavePath will be used as the base path for saved posts
	SavePath string `json:"save_path"`

	// OverwriteFiles is a flag to overwrite existing files
	// If false, the download process will be skipped if the file already exists
	OverwriteFiles bool `json:"overwrite_files"`

	// UserAgent is the user agent to be used for all requests
	UserAgent string `json:"user_agent"`
}

func configFilePath() string {
	return filepath.Join(utils.APP_PATH, "config.json")
}

// DefaultConfig returns the config used before the user has
// saved their own.
func DefaultConfig() *Config {
	return &Config{
		SavePath:  filepath.Join(utils.APP_PATH, "saved"),
		UserAgent: utils.USER_AGENT,
	}
}

// LoadConfig reads the saved config, falling back to defaults for
// anything missing or when no config has been saved yet.
func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	configPath := configFilePath()
	if !utils.PathExists(configPath) {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf(
			"error %d: unable to read the config file, more info => %v",
			utils.OS_ERROR,
			err,
		)
	}
	if err := utils.LoadJsonFromBytes(data, config); err != nil {
		return nil, err
	}

	if config.UserAgent == "" {
		config.UserAgent = utils.USER_AGENT
	}
	if config.SavePath == "" {
		config.SavePath = filepath.Join(utils.APP_PATH, "saved")
	}
	return config, nil
}

// SaveConfig persists the config to the app directory.
func SaveConfig(config *Config) error {
	data, err := json.MarshalIndent(config, "", "    ")
	if err != nil {
		return fmt.Errorf(
			"error %d: unable to marshal the config, more info => %v",
			utils.JSON_ERROR,
			err,
		)
	}

	if err := os.MkdirAll(utils.APP_PATH, 0755); err != nil {
		return fmt.Errorf(
			"error %d: unable to create the app directory, more info => %v",
			utils.OS_ERROR,
			err,
		)
	}
	if err := os.WriteFile(configFilePath(), data, 0644); err != nil {
		return fmt.Errorf(
			"error %d: unable to save the config, more info => %v",
			utils.OS_ERROR,
			err,
		)
	}
	return nil
}

// ValidateApi checks that the parts of the config the current
// command needs are present.
func (c *Config) ValidateApi() error {
	if strings.TrimSpace(c.ApiBaseUrl) == "" {
		return fmt.Errorf(
			"input error %d: no content API configured, run the configure command first",
			utils.INPUT_ERROR,
		)
	}
	return nil
}

func (c *Config) ValidateUploads() error {
	if strings.TrimSpace(c.CloudName) == "" || strings.TrimSpace(c.UploadPreset) == "" {
		return fmt.Errorf(
			"input error %d: no media host configured, run the configure command with --cloud-name and --upload-preset first",
			utils.INPUT_ERROR,
		)
	}
	return nil
}

func (c *Config) ValidateAuth() error {
	if strings.TrimSpace(c.AuthBaseUrl) == "" {
		return fmt.Errorf(
			"input error %d: no identity provider configured, run the configure command with --auth-url first",
			utils.INPUT_ERROR,
		)
	}
	return nil
}
