package identity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/inklinehq/Inkline-CLI/utils"
)

// Session is what gets persisted between runs: the cookie value and
// a cached copy of the user it belonged to when it was last verified.
type Session struct {
	SessionValue string    `json:"session_value"`
	User         *User     `json:"user"`
	SavedAt      time.Time `json:"saved_at"`
}

func sessionFilePath() string {
	return filepath.Join(utils.APP_PATH, "session.json")
}

// LoadSession reads the persisted session. A missing file means
// the user is signed out and is not an error.
func LoadSession() (*Session, error) {
	sessionPath := sessionFilePath()
	if !utils.PathExists(sessionPath) {
		return nil, nil
	}

	data, err := os.ReadFile(sessionPath)
	if err != nil {
		return nil, fmt.Errorf(
			"auth error %d: unable to read the saved session, more info => %v",
			utils.OS_ERROR,
			err,
		)
	}

	var session Session
	if err := utils.LoadJsonFromBytes(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SaveSession persists the session to the app directory. The file is
// only readable by the current user since the cookie value grants
// access to the account.
func SaveSession(session *Session) error {
	session.SavedAt = time.Now()
	data, err := json.MarshalIndent(session, "", "    ")
	if err != nil {
		return fmt.Errorf(
			"auth error %d: unable to marshal the session, more info => %v",
			utils.JSON_ERROR,
			err,
		)
	}

	if err := os.MkdirAll(utils.APP_PATH, 0755); err != nil {
		return fmt.Errorf(
			"auth error %d: unable to create the app directory, more info => %v",
			utils.OS_ERROR,
			err,
		)
	}
	if err := os.WriteFile(sessionFilePath(), data, 0600); err != nil {
		return fmt.Errorf(
			"auth error %d: unable to save the session, more info => %v",
			utils.OS_ERROR,
			err,
		)
	}
	return nil
}

// ClearSession signs the user out locally by removing the
// persisted session. Clearing an already-absent session is fine.
func ClearSession() error {
	err := os.Remove(sessionFilePath())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf(
			"auth error %d: unable to remove the saved session, more info => %v",
			utils.OS_ERROR,
			err,
		)
	}
	return nil
}
