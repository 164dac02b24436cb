package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DividerWidth is the default width for divider lines.
const DividerWidth = 64

// PhaseDisplay renders one line per generation phase (read, generate, write).
type PhaseDisplay struct {
	w     io.Writer
	quiet bool
}

// NewPhaseDisplay creates a new phase display writing to w. A quiet display
// only renders failures.
func NewPhaseDisplay(w io.Writer, quiet bool) *PhaseDisplay {
	return &PhaseDisplay{w: w, quiet: quiet}
}

// RenderStart renders a phase that is about to run.
// Shows: ◐ Reading source file /srv/metrics-source.json
func (pd *PhaseDisplay) RenderStart(name, detail string) {
	if pd.quiet {
		return
	}
	style := lipgloss.NewStyle().Foreground(ColorSecondary)
	fmt.Fprintf(pd.w, "%s %s\n", style.Render(SymbolProgress), withDetail(name, detail))
}

// RenderSuccess renders a completed phase.
// Shows: ● Generated dashboard (0.01s)
func (pd *PhaseDisplay) RenderSuccess(name string, duration time.Duration) {
	if pd.quiet {
		return
	}
	fmt.Fprintln(pd.w, FormatPhase(SymbolComplete, ColorSuccess, name, formatDuration(duration)))
}

// RenderFailed renders a failed phase.
// Shows: ✗ Generating dashboard (0.00s)
func (pd *PhaseDisplay) RenderFailed(name string, duration time.Duration) {
	fmt.Fprintln(pd.w, FormatPhase(SymbolFail, ColorError, name, formatDuration(duration)))
}

// RenderSkipped renders a skipped phase.
// Shows: ⊘ Writing dashboard (validate only)
func (pd *PhaseDisplay) RenderSkipped(name string, reason string) {
	if pd.quiet {
		return
	}
	symbolStyle := lipgloss.NewStyle().Foreground(ColorWarning)
	reasonStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	if reason != "" {
		fmt.Fprintf(pd.w, "%s %s %s\n", symbolStyle.Render(SymbolSkipped), name, reasonStyle.Render("("+reason+")"))
		return
	}
	fmt.Fprintf(pd.w, "%s %s\n", symbolStyle.Render(SymbolSkipped), name)
}

// ThinDivider renders a thin horizontal line.
func (pd *PhaseDisplay) ThinDivider() {
	if pd.quiet {
		return
	}
	style := lipgloss.NewStyle().Foreground(ColorMuted)
	fmt.Fprintf(pd.w, "%s\n", style.Render(strings.Repeat("─", DividerWidth)))
}

// FormatPhase returns a formatted phase line as a string.
func FormatPhase(symbol string, symbolColor lipgloss.Color, name string, timing string) string {
	symbolStyle := lipgloss.NewStyle().Foreground(symbolColor)
	timingStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	if timing == "" {
		return fmt.Sprintf("%s %s", symbolStyle.Render(symbol), name)
	}
	return fmt.Sprintf("%s %s %s", symbolStyle.Render(symbol), name, timingStyle.Render("("+timing+")"))
}

func withDetail(name, detail string) string {
	if detail == "" {
		return name
	}
	return name + " " + lipgloss.NewStyle().Foreground(ColorInfo).Render(detail)
}

func formatDuration(d time.Duration) string {
	secs := d.Seconds()
	if secs < 0.1 {
		return fmt.Sprintf("%.2fs", secs)
	}
	return fmt.Sprintf("%.1fs", secs)
}
