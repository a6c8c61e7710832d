package notebook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pfrederiksen/loadday/internal/puzzle"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	CellMarkdown = "markdown"
	CellCode     = "code"

	// TagKey is the cell metadata key holding a cell's tag
	TagKey = "function"

	TagPart1 = "day-desc-1"
	TagPart2 = "day-desc-2"
)

var (
	ErrMalformed    = errors.New("malformed notebook")
	ErrCellNotFound = errors.New("tagged cell not found")
)

// part2Placeholder fills the part 2 cell until the second description is known
var part2Placeholder = []string{"# Here goes Part 2 Code\n", "**Do not change**"}

const loaderTemplate = `with open("inputs/%s.txt") as infile:
    for line in infile.read().splitlines():
        pass`

// Cell is one notebook cell
type Cell struct {
	CellType       string                 `json:"cell_type"`
	ExecutionCount *int                   `json:"execution_count,omitempty"`
	Metadata       map[string]interface{} `json:"metadata"`
	Outputs        []interface{}          `json:"outputs,omitempty"`
	Source         []string               `json:"source"`
}

// MarshalJSON writes code cells with execution_count and outputs even when
// they are null or empty, and markdown cells without them.
func (c Cell) MarshalJSON() ([]byte, error) {
	metadata := c.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	source := c.Source
	if source == nil {
		source = []string{}
	}

	if c.CellType != CellCode {
		return compact(struct {
			CellType string                 `json:"cell_type"`
			Metadata map[string]interface{} `json:"metadata"`
			Source   []string               `json:"source"`
		}{c.CellType, metadata, source})
	}

	outputs := c.Outputs
	if outputs == nil {
		outputs = []interface{}{}
	}
	return compact(struct {
		CellType       string                 `json:"cell_type"`
		ExecutionCount *int                   `json:"execution_count"`
		Metadata       map[string]interface{} `json:"metadata"`
		Outputs        []interface{}          `json:"outputs"`
		Source         []string               `json:"source"`
	}{c.CellType, c.ExecutionCount, metadata, outputs, source})
}

// Notebook is an nbformat 4 document
type Notebook struct {
	Cells         []Cell                 `json:"cells"`
	Metadata      map[string]interface{} `json:"metadata"`
	NBFormat      int                    `json:"nbformat"`
	NBFormatMinor int                    `json:"nbformat_minor"`
}

// template builds the four-cell layout: part 1 description, loader code,
// part 2 description, part 2 code. A fresh value is returned on every call.
func template() *Notebook {
	return &Notebook{
		Cells: []Cell{
			{CellType: CellMarkdown, Metadata: map[string]interface{}{TagKey: TagPart1}, Source: []string{}},
			{CellType: CellCode, Metadata: map[string]interface{}{}, Outputs: []interface{}{}, Source: []string{}},
			{CellType: CellMarkdown, Metadata: map[string]interface{}{TagKey: TagPart2}, Source: append([]string(nil), part2Placeholder...)},
			{CellType: CellCode, Metadata: map[string]interface{}{}, Outputs: []interface{}{}, Source: []string{}},
		},
		Metadata:      map[string]interface{}{},
		NBFormat:      4,
		NBFormatMinor: 4,
	}
}

// LoaderCode returns the boilerplate that reads the day's input file
func LoaderCode(day puzzle.Day) string {
	return fmt.Sprintf(loaderTemplate, day.Pad())
}

// SourceLines splits text into notebook source lines. Every line but the
// last keeps its newline.
func SourceLines(text string) []string {
	if text == "" {
		return []string{}
	}
	return strings.SplitAfter(text, "\n")
}

// New creates the notebook for a day with the part 1 description filled in
func New(day puzzle.Day, part1 string) *Notebook {
	nb := template()
	nb.Cells[0].Source = []string{part1}
	nb.Cells[1].Source = SourceLines(LoaderCode(day))
	return nb
}

// Marshal encodes the notebook. Output is deterministic for equal notebooks.
func (nb *Notebook) Marshal() ([]byte, error) {
	data, err := encode(nb, " ")
	if err != nil {
		return nil, fmt.Errorf("encoding notebook: %w", err)
	}
	return data, nil
}

// encode marshals v without escaping <, > and &, which descriptions are full of
func encode(v interface{}, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func compact(v interface{}) ([]byte, error) {
	data, err := encode(v, "")
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(data, "\n"), nil
}

// cells validates data and returns its cells array
func cells(data []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	result := gjson.GetBytes(data, "cells")
	if !result.IsArray() {
		return gjson.Result{}, fmt.Errorf("%w: cells is not an array", ErrMalformed)
	}
	return result, nil
}

// CellIndex maps every cell tag in the document to its cell index.
// When a tag repeats the first cell wins.
func CellIndex(data []byte) (map[string]int, error) {
	all, err := cells(data)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var scanErr error
	all.ForEach(func(key, cell gjson.Result) bool {
		if !cell.IsObject() {
			scanErr = fmt.Errorf("%w: cell %d is not an object", ErrMalformed, key.Int())
			return false
		}
		tag := cell.Get("metadata." + TagKey)
		if tag.Type != gjson.String {
			return true
		}
		if _, seen := index[tag.String()]; !seen {
			index[tag.String()] = int(key.Int())
		}
		return true
	})
	if scanErr != nil {
		return nil, scanErr
	}
	return index, nil
}

// Patch replaces the source of the cell tagged tag with the description.
// Everything else in the document is left byte for byte as it was.
func Patch(data []byte, tag, description string) ([]byte, error) {
	index, err := CellIndex(data)
	if err != nil {
		return nil, err
	}
	i, ok := index[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCellNotFound, tag)
	}

	source, err := compact([]string{description})
	if err != nil {
		return nil, fmt.Errorf("encoding source: %w", err)
	}

	out, err := sjson.SetRawBytes(data, fmt.Sprintf("cells.%d.source", i), source)
	if err != nil {
		return nil, fmt.Errorf("patching cell %d: %w", i, err)
	}
	return out, nil
}

// CellSource returns the joined source of the cell tagged tag. Both the
// list and the plain string forms of source are accepted.
func CellSource(data []byte, tag string) (string, error) {
	index, err := CellIndex(data)
	if err != nil {
		return "", err
	}
	i, ok := index[tag]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrCellNotFound, tag)
	}

	source := gjson.GetBytes(data, fmt.Sprintf("cells.%d.source", i))
	if !source.IsArray() {
		return source.String(), nil
	}
	var b strings.Builder
	for _, line := range source.Array() {
		b.WriteString(line.String())
	}
	return b.String(), nil
}
