package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RowSummary describes one dashboard row for the breakdown table.
type RowSummary struct {
	ID        int
	Title     string
	Panels    int
	Collapsed bool
}

// GenerateSummary holds what a run produced.
type GenerateSummary struct {
	Source    string
	Output    string // empty when nothing was written
	Panels    int
	Rows      int
	Breakdown []RowSummary
}

// SummaryRenderer formats generation results for terminal display.
type SummaryRenderer struct {
	successStyle lipgloss.Style
	pathStyle    lipgloss.Style
	mutedStyle   lipgloss.Style
	headerStyle  lipgloss.Style
}

// NewSummaryRenderer creates a new summary renderer with default styles.
func NewSummaryRenderer() *SummaryRenderer {
	return &SummaryRenderer{
		successStyle: lipgloss.NewStyle().Foreground(ColorSuccess),
		pathStyle:    lipgloss.NewStyle().Foreground(ColorInfo),
		mutedStyle:   lipgloss.NewStyle().Foreground(ColorMuted),
		headerStyle:  lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
	}
}

// RenderGenerateSummary renders the success block shown after a run.
func RenderGenerateSummary(s GenerateSummary, verbose bool) string {
	return NewSummaryRenderer().Render(s, verbose)
}

// Render generates the formatted summary string.
func (r *SummaryRenderer) Render(s GenerateSummary, verbose bool) string {
	var sb strings.Builder

	headline := "Dashboard generated successfully!"
	if s.Output == "" {
		headline = "Dashboard is valid"
	}
	sb.WriteString(r.successStyle.Render(SymbolSuccess + " " + headline))
	sb.WriteString("\n")

	r.line(&sb, "Source", r.pathStyle.Render(s.Source))
	if s.Output != "" {
		r.line(&sb, "Output", r.pathStyle.Render(s.Output))
	}
	r.line(&sb, "Total panels", strconv.Itoa(s.Panels))
	r.line(&sb, "Total rows", strconv.Itoa(s.Rows))

	if verbose && len(s.Breakdown) > 0 {
		sb.WriteString("\n")
		sb.WriteString(r.renderBreakdown(s.Breakdown))
	}

	return sb.String()
}

func (r *SummaryRenderer) line(sb *strings.Builder, label, value string) {
	fmt.Fprintf(sb, "  - %s: %s\n", label, value)
}

// renderBreakdown renders a fixed-width table of rows.
func (r *SummaryRenderer) renderBreakdown(rows []RowSummary) string {
	var sb strings.Builder

	sb.WriteString(r.headerStyle.Render("  ID    ROW                              PANELS"))
	sb.WriteString("\n")

	for _, row := range rows {
		title := row.Title
		if row.Collapsed {
			title += " " + r.mutedStyle.Render("(collapsed)")
		}
		sb.WriteString("  ")
		sb.WriteString(padRight(strconv.Itoa(row.ID), 6))
		sb.WriteString(padRight(title, 33))
		sb.WriteString(strconv.Itoa(row.Panels))
		sb.WriteString("\n")
	}

	return sb.String()
}

// padRight pads s to width visible cells, ignoring ANSI escape sequences.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-visible)
}
