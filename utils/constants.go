package utils

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	VERSION = "1.2.0"
	Title   = "Inkline CLI"
)

// Error code constants used in the "error %d:" message format
const (
	DEV_ERROR = iota + 1000
	UNEXPECTED_ERROR
	OS_ERROR
	INPUT_ERROR
	CONNECTION_ERROR
	RESPONSE_ERROR
	DOWNLOAD_ERROR
	JSON_ERROR
	HTML_ERROR
	UPLOAD_ERROR
	AUTH_ERROR
)

const (
	RETRY_COUNTER            = 4
	MAX_CONCURRENT_DOWNLOADS = 5
	MAX_API_CALLS            = 5
	DOWNLOAD_TIMEOUT         = 300 // in seconds
)

// Sites/collaborators this program talks to
const (
	INKLINE    = "inkline"
	CLOUDINARY = "cloudinary"
	AUTH       = "auth"
)

func GetUserAgent() string {
	var userAgent = map[string]string{
		"linux":  "Mozilla/5.0 (X11; Linux x86_64)",
		"darwin": "Mozilla/5.0 (Macintosh; Intel Mac OS X 12_6)",
	}
	userAgentOS := userAgent[runtime.GOOS]
	if userAgentOS == "" {
		userAgentOS = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
	}
	return userAgentOS + " AppleWebKit/537.36 (KHTML, like Gecko) Chrome/106.0.0.0 Safari/537.36"
}

func GetAppPath() string {
	homePath, err := os.UserHomeDir()
	if err != nil {
		panic("failed to get user home directory: " + err.Error())
	}
	var appDir = map[string]string{
		"windows": "AppData/Roaming/Inkline-CLI",
		"linux":   ".config/Inkline-CLI",
		"darwin":  "Library/Preferences/Inkline-CLI",
	}
	appDirOS := appDir[runtime.GOOS]
	if appDirOS == "" {
		appDirOS = ".config/Inkline-CLI"
	}
	return filepath.Join(homePath, appDirOS)
}

var (
	USER_AGENT = GetUserAgent()
	APP_PATH   = GetAppPath()
)
