package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ConfigureColor sets the global lipgloss color profile.
// mode is "auto", "always" or "never"; noColor (the --no-color flag or
// NO_COLOR) wins over everything. In auto mode color is only used when w is
// a terminal.
func ConfigureColor(mode string, noColor bool, w io.Writer) {
	lipgloss.SetColorProfile(colorProfile(mode, noColor, isTerminal(w)))
}

func colorProfile(mode string, noColor, tty bool) termenv.Profile {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	switch mode {
	case "always":
		return termenv.ANSI
	case "never":
		return termenv.Ascii
	}
	if !tty {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
