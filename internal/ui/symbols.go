package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Generation finished
	SymbolFail     = "✗" // Phase failed
	SymbolProgress = "◐" // Phase in progress
	SymbolComplete = "●" // Phase done
	SymbolSkipped  = "⊘" // Phase skipped, e.g. writing during validate
)
