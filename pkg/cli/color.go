package cli

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/dispatch/internal/config"
)

const (
	colorRed    = "31"
	colorGreen  = "32"
	colorYellow = "33"
)

var colorEnabled = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

// paint wraps s in an ANSI color when stdout is a terminal. Test mode
// always renders plain text so output stays deterministic.
func paint(color, s string) string {
	if config.IsTestMode || !colorEnabled {
		return s
	}
	return "\x1b[" + color + "m" + s + "\x1b[0m"
}
