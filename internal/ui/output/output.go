// Package output decides how pipdeps writes to the console: whether a person is watching and
// which colors the terminal gets.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Interactive reports whether w is a terminal outside of CI. Only writers backed by a file
// descriptor can be terminals.
func Interactive(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	if ci := os.Getenv("CI"); ci == "true" || ci == "1" {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // descriptors fit in an int
}

// ColorProfile returns the color profile for w. NO_COLOR and non-interactive writers get Ascii,
// so redirected output never carries escape codes.
func ColorProfile(w io.Writer) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" || !Interactive(w) {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a termenv.Output for w using ColorProfile. A nil writer selects os.Stderr.
func New(w io.Writer) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w,
		termenv.WithProfile(ColorProfile(w)),
		termenv.WithTTY(Interactive(w)),
	)
}
