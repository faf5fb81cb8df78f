// Package completion estimates how complete a resume document is.
package completion

import (
	"math"
	"strings"

	"github.com/jonathan/resume-editor/internal/types"
)

// Requirement is one checklist item.
type Requirement struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Satisfied bool   `json:"satisfied"`
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Checklist evaluates every requirement against doc.
func Checklist(doc *types.Document) []Requirement {
	return []Requirement{
		{Key: "name", Label: "Name", Satisfied: filled(doc.Name)},
		{Key: "title", Label: "Professional title", Satisfied: filled(doc.Title)},
		{Key: "email", Label: "Email", Satisfied: filled(doc.Email)},
		{Key: "phone", Label: "Phone", Satisfied: filled(doc.Phone)},
		{Key: "summary", Label: "Summary", Satisfied: filled(doc.Summary)},
		{Key: "history", Label: "Education or experience entry", Satisfied: len(doc.Education) > 0 || len(doc.Experience) > 0},
		{Key: "skills", Label: "Skills", Satisfied: len(doc.Skills) > 0},
	}
}

// Compute returns the percentage of satisfied requirements, rounded to the
// nearest integer.
func Compute(doc *types.Document) int {
	reqs := Checklist(doc)
	satisfied := 0
	for _, r := range reqs {
		if r.Satisfied {
			satisfied++
		}
	}
	return int(math.Round(100 * float64(satisfied) / float64(len(reqs))))
}
