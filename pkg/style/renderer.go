package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/iconforge/pkg/types"
)

// Renderer defines the interface for rendering command output
type Renderer interface {
	RenderResult(result *types.CommandResult) string
	RenderCatalogStats(stats types.CatalogStats) string
	RenderError(err error) string
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct {
	width int
}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{
		width: 80, // Default width, can be updated
	}
}

// SetWidth updates the terminal width for rendering
func (r *TerminalRenderer) SetWidth(width int) {
	r.width = width
}

// RenderResult renders a command's tally and final message.
func (r *TerminalRenderer) RenderResult(result *types.CommandResult) string {
	var b strings.Builder

	b.WriteString(r.renderTally(result.Tally) + "\n")

	for _, warning := range result.Warnings {
		b.WriteString(fmt.Sprintf("%s %s\n", WarningIndicator, MutedStyle.Render(warning)))
	}

	if result.Message != "" {
		indicator := SuccessIndicator
		if result.Tally.Errors > 0 {
			indicator = WarningIndicator
		}
		b.WriteString(fmt.Sprintf("%s %s\n", indicator, NormalStyle.Render(result.Message)))
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderTally renders the processed/generated/skipped/errors counters.
func (r *TerminalRenderer) renderTally(tally types.Tally) string {
	parts := []string{
		fmt.Sprintf("%s processed", Bold(fmt.Sprint(tally.Processed))),
		fmt.Sprintf("%s generated", SuccessStyle.Render(fmt.Sprint(tally.Generated))),
	}
	if tally.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%s skipped", WarningStyle.Render(fmt.Sprint(tally.Skipped))))
	}
	if tally.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%s errors", ErrorStyle.Render(fmt.Sprint(tally.Errors))))
	}
	return strings.Join(parts, MutedStyle.Render(" · "))
}

// RenderCatalogStats renders the aggregate catalog's derived counters.
func (r *TerminalRenderer) RenderCatalogStats(stats types.CatalogStats) string {
	var b strings.Builder
	b.WriteString(SubtitleStyle.Render("Catalog") + "\n")
	b.WriteString(ListItemStyle.Render(fmt.Sprintf("%s components, %s unique icons",
		Bold(fmt.Sprint(stats.Total)), Bold(fmt.Sprint(stats.UniqueIcons)))) + "\n")

	for _, variant := range sortedKeys(stats.ByVariant) {
		line := fmt.Sprintf("%s %s", MutedStyle.Render(variant), fmt.Sprint(stats.ByVariant[variant]))
		b.WriteString(ListItemStyle.Render(line) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderError renders an error message
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, ErrorStyle.Render(err.Error()))
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
