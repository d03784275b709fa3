//go:build js && wasm
// +build js,wasm

package gdialog

import (
	"errors"
	"fmt"
	"syscall/js"
)

var ErrCancelled = errors.New("dialog cancelled")

// PickEngine is unavailable: the browser build only talks websocket.
func PickEngine(title string) (string, error) {
	return "", errors.New("engine executables cannot be started from the browser")
}

func ShowError(title, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if alert := js.Global().Get("alert"); alert.Truthy() {
		alert.Invoke(title + ": " + msg)
	}
}
