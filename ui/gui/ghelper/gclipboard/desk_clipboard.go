//go:build !js && !wasm
// +build !js,!wasm

package gclipboard

import "github.com/atotto/clipboard"

// WriteAll replaces the system clipboard text.
func WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
