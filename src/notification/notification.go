package notification

import (
	"log"

	"github.com/ncruces/zenity"
)

// dialog is swapped in tests.
var dialog = func(title, message string) error {
	return zenity.Error(message, zenity.Title(title), zenity.ErrorIcon)
}

// ShowBlockingError logs the error and shows a modal alert until the user
// dismisses it. Used for failures the user has to fix outside the app, just
// before the process exits.
func ShowBlockingError(title, message string) {
	log.Printf("%s: %s", title, message)
	if err := dialog(title, message); err != nil && err != zenity.ErrCanceled {
		log.Printf("notification: alert could not be shown: %v", err)
	}
}
