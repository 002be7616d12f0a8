package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/chris-regnier/thankful/internal/entry"
	"github.com/chris-regnier/thankful/internal/streak"
	"github.com/gosuri/uitable"
)

const timestampLayout = "2006-01-02 15:04"

// FormatEntrySaved formats a save confirmation message.
func FormatEntrySaved(w io.Writer, e entry.Entry) {
	fmt.Fprintf(w, "Saved entry for %s (%s)\n", e.Key(), e.UpdatedAt.Local().Format(timestampLayout))
}

// FormatEntryDeleted formats a deletion confirmation message.
func FormatEntryDeleted(w io.Writer, date time.Time) {
	fmt.Fprintf(w, "Deleted entry for %s.\n", entry.FormatDate(date))
}

// FormatEntryFull formats an entry with a metadata header. The label is the
// human date ("Today", "Yesterday", or the long form). Content is rendered as
// markdown with the given glamour style.
func FormatEntryFull(w io.Writer, e entry.Entry, label string, markdownStyle string, width int) {
	fmt.Fprintf(w, "%s (%s)\n", label, e.Key())
	fmt.Fprintf(w, "Entry: %s\n", e.ID)
	fmt.Fprintf(w, "Created: %s\n", e.CreatedAt.Local().Format(timestampLayout))
	fmt.Fprintf(w, "Modified: %s\n", e.UpdatedAt.Local().Format(timestampLayout))
	fmt.Fprintln(w)
	if e.Content == "" {
		fmt.Fprintln(w, "(empty)")
		return
	}
	fmt.Fprintln(w, RenderMarkdown(e.Content, width, markdownStyle))
}

// FormatEntryList formats a list of entries as an aligned table, one entry
// per row.
func FormatEntryList(w io.Writer, entries []entry.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range entries {
		tbl.AddRow(e.Key(), e.ID, e.Preview(60))
	}
	fmt.Fprintln(w, tbl)
}

// FormatStatus formats the journaling streak summary.
func FormatStatus(w io.Writer, st streak.Status) {
	today := "not yet written"
	if st.Today {
		today = "written"
	}
	days := "days"
	if st.Streak == 1 {
		days = "day"
	}
	fmt.Fprintf(w, "Today: %s\n", today)
	fmt.Fprintf(w, "Streak: %d %s\n", st.Streak, days)
	fmt.Fprintf(w, "Entries this year: %d\n", st.Total)
}

// FormatJSON writes any value as JSON to the writer.
func FormatJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// EntrySummary is a JSON representation for list output.
type EntrySummary struct {
	Date      string    `json:"date"`
	ID        string    `json:"id"`
	Preview   string    `json:"preview"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToSummaries converts entries to summary format for JSON list output.
func ToSummaries(entries []entry.Entry) []EntrySummary {
	summaries := make([]EntrySummary, len(entries))
	for i, e := range entries {
		summaries[i] = EntrySummary{
			Date:      e.Key(),
			ID:        e.ID,
			Preview:   e.Preview(60),
			UpdatedAt: e.UpdatedAt,
		}
	}
	return summaries
}

// DeleteResult is a JSON representation for delete output.
type DeleteResult struct {
	Date    string `json:"date"`
	Deleted bool   `json:"deleted"`
}

// ShareResult is a JSON representation for share output.
type ShareResult struct {
	Date   string `json:"date"`
	Text   string `json:"text"`
	Copied bool   `json:"copied"`
}
