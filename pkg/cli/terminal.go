package cli

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether f is attached to a terminal, which the
// full-screen wizard needs.
func IsInteractive(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
