package utils

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// Alert shows a notification on the user's system with the given title and message.
func Alert(title, message string) error {
	if err := beeep.Alert(title, message, ""); err != nil {
		return fmt.Errorf(
			"error %d: unable to show notification => %v",
			UNEXPECTED_ERROR,
			err,
		)
	}
	return nil
}

// AlertWithoutErr is the same as Alert but
// if an error occurs, it will log it instead of returning it.
func AlertWithoutErr(title, message string) {
	if err := Alert(title, message); err != nil {
		LogError(err, "", false, ERROR)
	}
}
