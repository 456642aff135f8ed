package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryReportLines(t *testing.T) {
	r := SummaryReport{Segments: []ChunkSummary{
		{Index: 0, Summary: "First part."},
		{Index: 1, Err: errors.New("timeout")},
		{Index: 2},
		{Index: 3, Summary: "Last part."},
	}}
	assert.Equal(t, 1, r.Failed())
	assert.Equal(t, []string{
		"- First part.",
		"- [chunk 2 failed: timeout]",
		"- Last part.",
	}, r.Lines())
}

func TestSummaryReportEmpty(t *testing.T) {
	r := SummaryReport{Empty: true}
	assert.Zero(t, r.Failed())
	assert.Equal(t, []string{"- Nothing to summarize."}, r.Lines())
}

func TestDocumentBodyText(t *testing.T) {
	assert.Equal(t, "main", Document{MainText: "main", Text: "all"}.BodyText())
	assert.Equal(t, "all", Document{Text: "all"}.BodyText())
}
