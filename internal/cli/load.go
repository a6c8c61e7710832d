package cli

import (
	"context"
	"fmt"

	"github.com/pfrederiksen/loadday/internal/logger"
	"github.com/pfrederiksen/loadday/internal/notebook"
	"github.com/pfrederiksen/loadday/internal/puzzle"
	"github.com/pfrederiksen/loadday/internal/scraper"
	"github.com/pfrederiksen/loadday/internal/storage"
)

// Fetcher retrieves a puzzle's input and description parts
type Fetcher interface {
	FetchInput(ctx context.Context, p puzzle.Puzzle) ([]byte, error)
	FetchDescriptions(ctx context.Context, p puzzle.Puzzle) ([]string, error)
}

// Load creates the day's notebook on the first run and patches in the part 2
// description on later runs. It returns the resulting notebook state.
func Load(ctx context.Context, f Fetcher, store *storage.Storage, p puzzle.Puzzle) (notebook.State, error) {
	descriptions, err := f.FetchDescriptions(ctx, p)
	if err != nil {
		return "", err
	}
	logger.Debug("Fetched descriptions", logger.Fields{"parts": len(descriptions)})

	exists, err := store.NotebookExists(p.Day)
	if err != nil {
		return "", err
	}
	if !exists {
		return create(ctx, f, store, p, descriptions)
	}
	return patch(store, p, descriptions)
}

func create(ctx context.Context, f Fetcher, store *storage.Storage, p puzzle.Puzzle, descriptions []string) (notebook.State, error) {
	part1, err := scraper.Part(descriptions, 1)
	if err != nil {
		return "", err
	}

	input, err := f.FetchInput(ctx, p)
	if err != nil {
		return "", err
	}
	if err := store.SaveInput(p.Day, input); err != nil {
		return "", err
	}
	logger.Info("Saved input", logger.Fields{
		"path":  store.InputPath(p.Day),
		"bytes": len(input),
	})

	data, err := notebook.New(p.Day, part1).Marshal()
	if err != nil {
		return "", err
	}
	if err := store.SaveNotebook(p.Day, data); err != nil {
		return "", err
	}
	logger.IncrCounter("notebook.created")
	return notebook.StateCreated, nil
}

func patch(store *storage.Storage, p puzzle.Puzzle, descriptions []string) (notebook.State, error) {
	part2, err := scraper.Part(descriptions, 2)
	if err != nil {
		return "", fmt.Errorf("notebook exists but part 2 is not available yet: %w", err)
	}

	data, err := store.LoadNotebook(p.Day)
	if err != nil {
		return "", err
	}
	patched, err := notebook.Patch(data, notebook.TagPart2, part2)
	if err != nil {
		return "", fmt.Errorf("patching %s: %w", store.NotebookPath(p.Day), err)
	}
	if err := store.SaveNotebook(p.Day, patched); err != nil {
		return "", err
	}
	logger.IncrCounter("notebook.patched")
	return notebook.StatePatched, nil
}
