// Package render turns a roadmap document into human-readable output:
// a fixed-width plain-text table and a paginated PDF.
package render

import (
	"fmt"
	"strings"

	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/roadmap"
)

const separatorWidth = 60

// Table renders the document as a fixed-width plain-text block. It is a pure
// function: identical documents produce byte-identical output, and missing
// fields render as empty strings or zeros.
func Table(doc roadmap.Document) string {
	heavy := strings.Repeat("=", separatorWidth)
	light := strings.Repeat("-", separatorWidth)

	var lines []string
	lines = append(lines, "\n"+heavy)
	title := doc.Title
	if title == "" {
		title = "GenAI Roadmap"
	}
	lines = append(lines, title)
	lines = append(lines, fmt.Sprintf("Duration: %d days | Total Hours: %d", doc.DurationDays, doc.TotalEstimatedHours))
	lines = append(lines, heavy)

	for _, level := range doc.Levels {
		lines = append(lines, fmt.Sprintf("\nLevel %d: %s (Est. %d hrs)", level.Level, level.Title, level.EstimatedHours))
		lines = append(lines, light)
		for _, topic := range level.Topics {
			lines = append(lines, fmt.Sprintf("- Topic: %s", topic.Topic))
			lines = append(lines, fmt.Sprintf("  Activity: %s", topic.Activity))
			lines = append(lines, fmt.Sprintf("  Est. Hours: %d", topic.EstimatedHours))
			lines = append(lines, fmt.Sprintf("  Justification: %s\n", topic.Justification))
		}
	}

	lines = append(lines, heavy+"\n")
	return strings.Join(lines, "\n")
}
