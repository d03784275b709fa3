//go:build js && wasm

package gclipboard

import (
	"errors"
	"syscall/js"
)

var errUnavailable = errors.New("navigator.clipboard not available")

// WriteAll starts an async navigator.clipboard.writeText; the promise result
// is not awaited.
func WriteAll(text string) error {
	nav := js.Global().Get("navigator")
	if !nav.Truthy() {
		return errUnavailable
	}
	cb := nav.Get("clipboard")
	if !cb.Truthy() || !cb.Get("writeText").Truthy() {
		return errUnavailable
	}
	cb.Call("writeText", text)
	return nil
}
