//go:build !js && !wasm
// +build !js,!wasm

package gdialog

import (
	"errors"
	"os"

	"github.com/sqweek/dialog"
)

var ErrCancelled = errors.New("dialog cancelled")

// PickEngine asks for the engine executable.
func PickEngine(title string) (string, error) {
	path, err := dialog.File().Title(title).Load()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", ErrCancelled
	}
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}

// ShowError pops a native message box; used when no window exists yet.
func ShowError(title, format string, args ...interface{}) {
	dialog.Message(format, args...).Title(title).Error()
}
