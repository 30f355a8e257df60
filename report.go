package filerenamer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
)

const (
	entryIndent = 2
	nameWidth   = 40
)

func formatEntry(entry ReportEntry) string {
	var symbol rune
	var symbolColor color.Attribute
	switch entry.Outcome {
	case OutcomeRenamed:
		symbol = '✓'
		symbolColor = color.FgGreen
	case OutcomePlanned:
		symbol = '→'
		symbolColor = color.FgBlue
	case OutcomeFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	line := fmt.Sprintf("%*s%s %-*s → %s",
		entryIndent, "",
		color.New(symbolColor).Sprint(string(symbol)),
		nameWidth, entry.OriginalName,
		entry.NewName)

	switch entry.Outcome {
	case OutcomeSkipped:
		line += color.New(color.Faint).Sprintf(" (%s)", entry.Reason)
	case OutcomeFailed:
		line += color.New(color.FgRed).Sprintf(" (%s)", entry.Error)
	}
	return line
}

// WriteReport prints one line per entry followed by a summary. Skipped
// entries are only listed when verbose is set.
func WriteReport(w io.Writer, report *Report, verbose bool) {
	if report.Mode == ModePreview {
		_, _ = fmt.Fprintln(w, color.New(color.Bold).Sprint("DRY RUN MODE - No files will be modified"))
	}

	for _, entry := range report.Entries {
		if entry.Outcome == OutcomeSkipped && !verbose {
			continue
		}
		_, _ = fmt.Fprintln(w, formatEntry(entry))
	}

	if report.Mode == ModePreview {
		_, _ = fmt.Fprintf(w, "\nWould rename: %d, unchanged: %d, invalid: %d\n",
			report.Count(OutcomePlanned), report.Count(OutcomeSkipped), report.Count(OutcomeFailed))
		return
	}

	_, _ = fmt.Fprintf(w, "\nRenamed: %d, skipped: %d, failed: %d\n",
		report.Count(OutcomeRenamed), report.Count(OutcomeSkipped), report.Count(OutcomeFailed))
}

func WriteReportJSON(w io.Writer, report *Report) error {
	return json.NewEncoder(w).Encode(report)
}
