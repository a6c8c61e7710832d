package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/loadday/internal/puzzle"
)

const inputsDir = "inputs"

// Storage handles the local files of a puzzle workspace: inputs/DD.txt and DD.ipynb
type Storage struct {
	dataDir string
}

// New creates a new Storage instance rooted at dataDir
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(filepath.Join(dataDir, inputsDir), 0755); err != nil {
		return nil, fmt.Errorf("creating inputs directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Dir returns the workspace directory
func (s *Storage) Dir() string {
	return s.dataDir
}

// InputPath returns the path to the day's raw input file
func (s *Storage) InputPath(day puzzle.Day) string {
	return filepath.Join(s.dataDir, inputsDir, day.Pad()+".txt")
}

// NotebookPath returns the path to the day's notebook
func (s *Storage) NotebookPath(day puzzle.Day) string {
	return filepath.Join(s.dataDir, day.Pad()+".ipynb")
}

// SaveInput writes the raw input verbatim
func (s *Storage) SaveInput(day puzzle.Day, body []byte) error {
	if err := writeFile(s.InputPath(day), body); err != nil {
		return fmt.Errorf("writing input: %w", err)
	}
	return nil
}

// NotebookExists reports whether the day's notebook has been created
func (s *Storage) NotebookExists(day puzzle.Day) (bool, error) {
	_, err := os.Stat(s.NotebookPath(day))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("checking notebook: %w", err)
}

// LoadNotebook reads the day's notebook
func (s *Storage) LoadNotebook(day puzzle.Day) ([]byte, error) {
	data, err := os.ReadFile(s.NotebookPath(day))
	if err != nil {
		return nil, fmt.Errorf("reading notebook: %w", err)
	}
	return data, nil
}

// SaveNotebook writes the day's notebook, replacing any previous version
func (s *Storage) SaveNotebook(day puzzle.Day, data []byte) error {
	if err := writeFile(s.NotebookPath(day), data); err != nil {
		return fmt.Errorf("writing notebook: %w", err)
	}
	return nil
}

// writeFile writes through a temp file so readers never see a partial file
func writeFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
