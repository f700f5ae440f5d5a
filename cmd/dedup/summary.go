package main

import (
	"strconv"

	"github.com/dustin/go-humanize"

	"dedup/internal/resolver"
)

func renderSummary(runID string, summary resolver.Summary) string {
	rows := [][]string{
		{"Run", runID},
		{"Outcome", string(summary.Outcome)},
		{"Records", strconv.Itoa(summary.Records)},
		{"Groups", strconv.Itoa(summary.Groups)},
		{"Duplicate groups", strconv.Itoa(summary.DuplicateGroups)},
		{"Kept", strconv.Itoa(summary.Kept)},
		{"Removed", strconv.Itoa(summary.Removed)},
		{"Moved", strconv.Itoa(summary.Moved)},
		{"Previewed", strconv.Itoa(summary.Previewed)},
		{"Sent warnings", strconv.Itoa(summary.Warnings)},
		{"Reclaimed", humanize.Bytes(uint64(max(summary.Bytes, 0)))},
	}
	return renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
}
