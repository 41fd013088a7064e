package components

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/Rorical/QuickAct/ui/styles"
)

// Segment is one run of a word-level comparison.
type Segment struct {
	Type diffmatchpatch.Operation
	Text string
}

// DiffSegments compares original and corrected after semantic cleanup.
func DiffSegments(original, corrected string) []Segment {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(original, corrected, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	segments := make([]Segment, 0, len(diffs))
	for _, d := range diffs {
		segments = append(segments, Segment{Type: d.Type, Text: d.Text})
	}
	return segments
}

// CountChanges counts edits, pairing a deletion with the insertion that replaces it.
func CountChanges(segments []Segment) int {
	n := 0
	for i := 0; i < len(segments); i++ {
		switch segments[i].Type {
		case diffmatchpatch.DiffEqual:
			continue
		case diffmatchpatch.DiffDelete:
			if i+1 < len(segments) && segments[i+1].Type == diffmatchpatch.DiffInsert {
				i++
			}
		}
		n++
	}
	return n
}

// RenderDiff highlights insertions and strikes through deletions.
func RenderDiff(original, corrected string) string {
	var b strings.Builder
	for _, s := range DiffSegments(original, corrected) {
		switch s.Type {
		case diffmatchpatch.DiffInsert:
			b.WriteString(styles.InsertStyle().Render(s.Text))
		case diffmatchpatch.DiffDelete:
			b.WriteString(styles.DeleteStyle().Render(s.Text))
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}
