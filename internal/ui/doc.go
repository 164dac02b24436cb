// Package ui renders dashgen's terminal output using Lip Gloss.
//
// PhaseDisplay prints one line per phase of a run (reading the source,
// generating the dashboard, writing it). RenderGenerateSummary prints the
// closing success block with panel and row totals, plus a per-row table in
// verbose mode.
//
// Colors are ANSI codes so they follow the terminal theme. ConfigureColor
// picks the Lip Gloss profile from the color setting, the --no-color flag,
// NO_COLOR, and whether stdout is a terminal.
package ui
