package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/loadday/internal/notebook"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// StatusResult describes the local state of one day
type StatusResult struct {
	CheckedAt    time.Time      `json:"checked_at"`
	Year         int            `json:"year"`
	Day          string         `json:"day"`
	State        notebook.State `json:"state"`
	Notebook     string         `json:"notebook"`
	Input        string         `json:"input"`
	InputPresent bool           `json:"input_present"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *StatusResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *StatusResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *StatusResult) error {
	fmt.Fprintf(w, "Day %s (%d): %s\n", result.Day, result.Year, result.State)

	switch result.State {
	case notebook.StateAbsent:
		fmt.Fprintln(w, "  Next run creates the notebook with part 1.")
	case notebook.StateCreated:
		fmt.Fprintf(w, "  Notebook: %s\n", result.Notebook)
		fmt.Fprintln(w, "  Next run fills in part 2.")
	case notebook.StatePatched:
		fmt.Fprintf(w, "  Notebook: %s\n", result.Notebook)
	}

	if result.InputPresent {
		fmt.Fprintf(w, "  Input: %s\n", result.Input)
	} else {
		fmt.Fprintln(w, "  Input: missing")
	}
	return nil
}
