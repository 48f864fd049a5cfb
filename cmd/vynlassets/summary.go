package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"vynlassets/internal/assets"
)

var titleCaser = cases.Title(language.English)

type summaryRow struct {
	section string
	done    int
	missing int
	bytes   int64
}

// renderReport summarizes a run per section: one row for the friends images,
// one per album, and one for the profile image.
func renderReport(report *assets.Report) string {
	var order []string
	rows := make(map[string]*summaryRow)
	for _, entry := range report.Entries {
		section := sectionFor(entry)
		row, ok := rows[section]
		if !ok {
			row = &summaryRow{section: section}
			rows[section] = row
			order = append(order, section)
		}
		switch entry.Outcome {
		case assets.OutcomeCopied, assets.OutcomePlanned:
			row.done++
			row.bytes += entry.Bytes
		case assets.OutcomeMissing:
			row.missing++
		}
	}

	doneHeader := "Copied"
	if report.DryRun {
		doneHeader = "Planned"
	}

	spec := tableSpec{
		title:   fmt.Sprintf("%s run %s", titleCaser.String(report.Operation), shortID(report.RunID)),
		headers: []string{"Section", doneHeader, "Missing", "Size"},
		aligns:  []columnAlignment{alignLeft, alignRight, alignRight, alignRight},
	}
	for _, section := range order {
		row := rows[section]
		spec.rows = append(spec.rows, []string{
			row.section,
			strconv.Itoa(row.done),
			strconv.Itoa(row.missing),
			formatBytes(row.bytes, report.DryRun),
		})
	}
	spec.footer = []string{
		"Total " + report.Duration().Round(time.Millisecond).String(),
		strconv.Itoa(report.Count(assets.OutcomeCopied) + report.Count(assets.OutcomePlanned)),
		strconv.Itoa(report.Count(assets.OutcomeMissing)),
		formatBytes(report.Bytes(), report.DryRun),
	}
	return renderTable(spec)
}

func sectionFor(entry assets.Entry) string {
	switch entry.Kind {
	case assets.KindFriend:
		return "Top 8 images"
	case assets.KindProfile:
		return "Profile image"
	default:
		if entry.Album == "" {
			return titleCaser.String(string(entry.Kind))
		}
		return "Album " + titleCaser.String(entry.Album)
	}
}

func formatBytes(n int64, dryRun bool) string {
	if dryRun {
		return "-"
	}
	return humanize.IBytes(uint64(n))
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
