// package formatter provides functions to export a user's review history to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/whataflick/flick/internal/tasks"
)

// ExportToCSV converts review entries to CSV with columns: ID, Movie, Year, Rating, Comment, Created, Poster
func ExportToCSV(entries []tasks.ReviewEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Movie", "Year", "Rating", "Comment", "Created", "Poster"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range entries {
		record := []string{
			entry.Review.ID,
			entry.Review.Movie.Title,
			yearField(entry.Review.Movie.ReleaseYear),
			strconv.FormatFloat(entry.Review.Rating, 'f', 1, 64),
			entry.Review.Comment,
			entry.Review.CreatedAt.Format("2006-01-02"),
			entry.PosterURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts review entries to a Markdown table preceded by a count line.
func ExportToMarkdown(entries []tasks.ReviewEntry) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# Review history\n\n%d reviews\n\n", len(entries))
	buf.WriteString("| Movie | Year | Rating | Comment | Created |\n")
	buf.WriteString("|---|---|---|---|---|\n")

	for _, entry := range entries {
		fmt.Fprintf(&buf, "| %s | %s | %.1f | %s | %s |\n",
			escapePipes(entry.Review.Movie.Title),
			yearField(entry.Review.Movie.ReleaseYear),
			entry.Review.Rating,
			escapePipes(entry.Review.Comment),
			entry.Review.CreatedAt.Format("2006-01-02"),
		)
	}

	return buf.Bytes()
}

// ExportToText converts review entries to an aligned plain-text listing.
func ExportToText(entries []tasks.ReviewEntry) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Review history (%d reviews)\n\n", len(entries))
	for i, entry := range entries {
		fmt.Fprintf(&buf, "%3d. %-40s %4.1f★  %s\n",
			i+1,
			entry.Review.Movie.Title,
			entry.Review.Rating,
			entry.Review.CreatedAt.Format("2006-01-02"),
		)
		if entry.Review.Comment != "" {
			fmt.Fprintf(&buf, "     %q\n", entry.Review.Comment)
		}
	}

	return buf.Bytes()
}

// Export renders entries in the named format: "csv", "markdown"/"md", or "txt".
func Export(entries []tasks.ReviewEntry, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "csv":
		return ExportToCSV(entries)
	case "markdown", "md":
		return ExportToMarkdown(entries), nil
	case "txt", "text", "":
		return ExportToText(entries), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteFile writes rendered output to path, creating parent directories.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

func yearField(year int) string {
	if year == 0 {
		return "-"
	}
	return strconv.Itoa(year)
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
