// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-editor/internal/completion"
	"github.com/jonathan/resume-editor/internal/editor"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/jonathan/resume-editor/internal/validation"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the width of the completion bar
	barWidth = 30
)

// Printer handles formatted output for the status commands
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDocument outputs a human-readable summary of the saved document.
func (p *Printer) PrintDocument(doc *types.Document) {
	if doc == nil {
		return
	}

	orDash := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "-"
		}
		return s
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(doc.Name)))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", orDash(doc.Title)))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", orDash(doc.Email)))
	sb.WriteString(fmt.Sprintf("Phone:    %s\n", orDash(doc.Phone)))
	sb.WriteString(fmt.Sprintf("Theme:    %s\n", doc.Theme))
	sb.WriteString("\n")

	if len(doc.Skills) > 0 {
		count := min(len(doc.Skills), maxItemsToShow)
		sb.WriteString(fmt.Sprintf("Skills:   %s", strings.Join(doc.Skills[:count], ", ")))
		if len(doc.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf(" (+%d more)", len(doc.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(doc.Education) > 0 {
		sb.WriteString("Education:\n")
		for _, e := range doc.Education[:min(len(doc.Education), 3)] {
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", orDash(e.Degree), orDash(e.School)))
		}
		if len(doc.Education) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Education)-3))
		}
	}

	if len(doc.Experience) > 0 {
		sb.WriteString("Experience:\n")
		for _, e := range doc.Experience[:min(len(doc.Experience), 3)] {
			sb.WriteString(fmt.Sprintf("  • %s at %s (%d bullets)\n", orDash(e.Role), orDash(e.Company), len(e.Bullets)))
		}
		if len(doc.Experience) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Experience)-3))
		}
	}

	p.printBox("RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCompletion outputs the completion percentage and its checklist.
func (p *Printer) PrintCompletion(percent int, checklist []completion.Requirement) {
	filledCells := percent * barWidth / 100
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s%s] %d%%\n\n",
		strings.Repeat("█", filledCells), strings.Repeat("░", barWidth-filledCells), percent))

	for _, req := range checklist {
		mark := "✗"
		if req.Satisfied {
			mark = "✓"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", mark, req.Label))
	}

	p.printBox("COMPLETION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation outputs field validation results.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(results []validation.Result) {
	var failed []validation.Result
	for _, r := range results {
		if !r.Valid() {
			failed = append(failed, r)
		}
	}

	if len(failed) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ ALL FIELDS VALID")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d invalid fields:\n\n", len(failed)))
	for i, r := range failed {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", r.ID))
		sb.WriteString(fmt.Sprintf("  %s\n", r.Message))
		if i < len(failed)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("FIELD VALIDATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExportStatus outputs whether the document can be exported.
func (p *Printer) PrintExportStatus(status editor.ExportStatus) {
	if status.Ready {
		p.printBox("EXPORT", "Ready to export")
		return
	}

	var sb strings.Builder
	for _, line := range wrap(status.Message, boxWidth-4) {
		sb.WriteString(line + "\n")
	}
	p.printBox("EXPORT BLOCKED", strings.TrimSuffix(sb.String(), "\n"))
}

// wrap breaks text into lines of at most width runes on word boundaries
func wrap(text string, width int) []string {
	var lines []string
	var line string
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len([]rune(line))+1+len([]rune(word)) > width:
			lines = append(lines, line)
			line = word
		default:
			line += " " + word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
