package types

import "time"

// Tally is the running count a batch command reports: every file either
// succeeds, is skipped, or errors; nothing is dropped without a line.
type Tally struct {
	Processed int `json:"processed"`
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
}

// CommandResult is the uniform result envelope for CLI commands.
type CommandResult struct {
	Command   string    `json:"command"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Tally     Tally     `json:"tally"`
	Warnings  []string  `json:"warnings,omitempty"`
	Paths     []string  `json:"paths,omitempty"`
	// Stats carries the aggregate catalog counters for commands that
	// rebuild the catalog.
	Stats *CatalogStats `json:"stats,omitempty"`
}
