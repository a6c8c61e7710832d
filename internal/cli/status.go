package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/pfrederiksen/loadday/internal/notebook"
	"github.com/pfrederiksen/loadday/internal/storage"
	"github.com/spf13/cobra"
)

func newStatusCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether the day's notebook is absent, created or patched",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := OutputFormat(strings.ToLower(opts.format))
			if format != FormatText && format != FormatJSON {
				return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
			}

			result, err := status(opts)
			if err != nil {
				return err
			}
			return WriteOutput(cmd.OutOrStdout(), result, format)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	return cmd
}

// status inspects the local files of the selected day without touching the network
func status(opts *options) (*StatusResult, error) {
	p, err := opts.puzzle()
	if err != nil {
		return nil, err
	}

	store, err := storage.New(opts.cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	result := &StatusResult{
		CheckedAt: now().UTC(),
		Year:      p.Year,
		Day:       p.Day.Pad(),
		State:     notebook.StateAbsent,
		Notebook:  store.NotebookPath(p.Day),
		Input:     store.InputPath(p.Day),
	}

	if _, err := os.Stat(result.Input); err == nil {
		result.InputPresent = true
	}

	exists, err := store.NotebookExists(p.Day)
	if err != nil {
		return nil, err
	}
	if !exists {
		return result, nil
	}

	data, err := store.LoadNotebook(p.Day)
	if err != nil {
		return nil, err
	}
	state, err := notebook.Inspect(data)
	if err != nil {
		return nil, fmt.Errorf("inspecting %s: %w", result.Notebook, err)
	}
	result.State = state
	return result, nil
}
