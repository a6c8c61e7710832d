package notebook

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pfrederiksen/loadday/internal/puzzle"
	"github.com/tidwall/gjson"
)

const (
	part1 = "<article class=\"day-desc\">\n <h2>\n  --- Day 3: Binary Diagnostic ---\n </h2>\n</article>\n"
	part2 = "<article class=\"day-desc\">\n <h2 id=\"part2\">\n  --- Part Two ---\n </h2>\n</article>\n"
)

func decode(t *testing.T, data []byte) Notebook {
	t.Helper()
	var nb Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		t.Fatalf("decoding notebook: %v", err)
	}
	return nb
}

func TestNew(t *testing.T) {
	nb := New(3, part1)

	if len(nb.Cells) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(nb.Cells))
	}

	wantTypes := []string{CellMarkdown, CellCode, CellMarkdown, CellCode}
	for i, cell := range nb.Cells {
		if cell.CellType != wantTypes[i] {
			t.Errorf("cell %d type = %q, want %q", i, cell.CellType, wantTypes[i])
		}
	}

	if diff := cmp.Diff([]string{part1}, nb.Cells[0].Source); diff != "" {
		t.Errorf("part 1 cell mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(part2Placeholder, nb.Cells[2].Source); diff != "" {
		t.Errorf("part 2 cell mismatch (-want +got):\n%s", diff)
	}
	if nb.Cells[0].Metadata[TagKey] != TagPart1 || nb.Cells[2].Metadata[TagKey] != TagPart2 {
		t.Errorf("unexpected tags: %v, %v", nb.Cells[0].Metadata, nb.Cells[2].Metadata)
	}
	if len(nb.Cells[3].Source) != 0 {
		t.Errorf("expected empty last code cell, got %q", nb.Cells[3].Source)
	}
}

func TestLoaderCode(t *testing.T) {
	tests := []struct {
		day  puzzle.Day
		path string
	}{
		{3, `"inputs/03.txt"`},
		{12, `"inputs/12.txt"`},
		{25, `"inputs/25.txt"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			nb := New(tt.day, part1)
			code := strings.Join(nb.Cells[1].Source, "")
			if !strings.Contains(code, tt.path) {
				t.Errorf("loader cell %q does not reference %s", code, tt.path)
			}
			if code != LoaderCode(tt.day) {
				t.Errorf("joined loader cell = %q, want %q", code, LoaderCode(tt.day))
			}
		})
	}
}

func TestSourceLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"one", []string{"one"}},
		{"one\ntwo", []string{"one\n", "two"}},
		{"one\ntwo\n", []string{"one\n", "two\n", ""}},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, SourceLines(tt.in)); diff != "" {
			t.Errorf("SourceLines(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestNew_FreshTemplate(t *testing.T) {
	first := New(3, part1)
	first.Cells[2].Source[0] = "mutated"
	first.Cells[1].Metadata["tainted"] = true

	second := New(4, part1)
	if diff := cmp.Diff(part2Placeholder, second.Cells[2].Source); diff != "" {
		t.Errorf("template leaked between calls (-want +got):\n%s", diff)
	}
	if _, ok := second.Cells[1].Metadata["tainted"]; ok {
		t.Error("metadata leaked between calls")
	}
}

func TestMarshal_Deterministic(t *testing.T) {
	a, err := New(3, part1).Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	b, err := New(3, part1).Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("creating twice produced different bytes")
	}
}

func TestMarshal_Layout(t *testing.T) {
	data, err := New(3, part1).Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	if bytes.Contains(data, []byte(`\u003c`)) || !bytes.Contains(data, []byte(`<article class=\"day-desc\">`)) {
		t.Error("HTML should not be escaped in notebook output")
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		t.Error("expected trailing newline")
	}

	if got := gjson.GetBytes(data, "nbformat").Int(); got != 4 {
		t.Errorf("nbformat = %d, want 4", got)
	}

	code := gjson.GetBytes(data, "cells.1")
	if !code.Get("execution_count").Exists() || code.Get("execution_count").Type != gjson.Null {
		t.Errorf("code cell execution_count = %s, want null", code.Get("execution_count").Raw)
	}
	if code.Get("outputs").Raw != "[]" {
		t.Errorf("code cell outputs = %s, want []", code.Get("outputs").Raw)
	}

	markdown := gjson.GetBytes(data, "cells.0")
	if markdown.Get("execution_count").Exists() || markdown.Get("outputs").Exists() {
		t.Errorf("markdown cell should not carry code fields: %s", markdown.Raw)
	}
}

func TestCreateThenPatch(t *testing.T) {
	created, err := New(3, part1).Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	patched, err := Patch(created, TagPart2, part2)
	if err != nil {
		t.Fatalf("Patch() error: %v", err)
	}

	before := decode(t, created)
	after := decode(t, patched)

	if diff := cmp.Diff([]string{part1}, after.Cells[0].Source); diff != "" {
		t.Errorf("part 1 cell mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{part2}, after.Cells[2].Source); diff != "" {
		t.Errorf("part 2 cell mismatch (-want +got):\n%s", diff)
	}
	for _, i := range []int{1, 3} {
		if diff := cmp.Diff(before.Cells[i], after.Cells[i]); diff != "" {
			t.Errorf("code cell %d changed (-want +got):\n%s", i, diff)
		}
	}
	if len(after.Cells) != 4 {
		t.Errorf("patch changed cell count to %d", len(after.Cells))
	}
}

func TestPatch_Idempotent(t *testing.T) {
	created, _ := New(3, part1).Marshal()

	once, err := Patch(created, TagPart2, part2)
	if err != nil {
		t.Fatalf("Patch() error: %v", err)
	}
	twice, err := Patch(once, TagPart2, part2)
	if err != nil {
		t.Fatalf("Patch() error: %v", err)
	}
	if !bytes.Equal(once, twice) {
		t.Error("patching twice changed the document")
	}
}

func TestPatch_PreservesEdits(t *testing.T) {
	edited := []byte(`{
 "cells": [
  {"cell_type": "markdown", "id": "a1", "metadata": {"function": "day-desc-1"}, "source": ["part 1"]},
  {"cell_type": "code", "execution_count": 7, "id": "b2", "metadata": {}, "outputs": [{"output_type": "stream", "name": "stdout", "text": ["198\n"]}], "source": ["print(198)"]},
  {"cell_type": "markdown", "id": "c3", "metadata": {"function": "day-desc-2"}, "source": ["# Here goes Part 2 Code\n", "**Do not change**"]},
  {"cell_type": "code", "execution_count": null, "id": "d4", "metadata": {}, "outputs": [], "source": []}
 ],
 "metadata": {"kernelspec": {"name": "python3"}},
 "nbformat": 4,
 "nbformat_minor": 5
}`)

	patched, err := Patch(edited, TagPart2, part2)
	if err != nil {
		t.Fatalf("Patch() error: %v", err)
	}

	checks := map[string]string{
		"cells.1.execution_count":  "7",
		"cells.1.outputs.0.text.0": "198\n",
		"cells.1.source.0":         "print(198)",
		"cells.2.id":               "c3",
		"cells.2.source.0":         part2,
		"metadata.kernelspec.name": "python3",
		"nbformat_minor":           "5",
	}
	for path, want := range checks {
		if got := gjson.GetBytes(patched, path).String(); got != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}
	}
	if n := len(gjson.GetBytes(patched, "cells.2.source").Array()); n != 1 {
		t.Errorf("part 2 source has %d lines, want 1", n)
	}
}

func TestPatch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"missing tag", `{"cells": [{"cell_type": "markdown", "metadata": {"function": "day-desc-1"}, "source": []}]}`, ErrCellNotFound},
		{"no metadata", `{"cells": [{"cell_type": "markdown", "source": []}]}`, ErrCellNotFound},
		{"empty cells", `{"cells": []}`, ErrCellNotFound},
		{"invalid json", `{"cells": [`, ErrMalformed},
		{"no cells", `{"metadata": {}}`, ErrMalformed},
		{"cells not array", `{"cells": {"0": {}}}`, ErrMalformed},
		{"cell not object", `{"cells": ["oops"]}`, ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Patch([]byte(tt.data), TagPart2, part2)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Patch() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCellIndex(t *testing.T) {
	data, _ := New(3, part1).Marshal()

	index, err := CellIndex(data)
	if err != nil {
		t.Fatalf("CellIndex() error: %v", err)
	}
	want := map[string]int{TagPart1: 0, TagPart2: 2}
	if diff := cmp.Diff(want, index); diff != "" {
		t.Errorf("CellIndex() mismatch (-want +got):\n%s", diff)
	}
}

func TestInspect(t *testing.T) {
	created, _ := New(3, part1).Marshal()
	patched, _ := Patch(created, TagPart2, part2)

	tests := []struct {
		name string
		data []byte
		want State
	}{
		{"created", created, StateCreated},
		{"patched", patched, StatePatched},
		{"string source", []byte(`{"cells": [{"metadata": {"function": "day-desc-2"}, "source": "# Here goes Part 2 Code\n**Do not change**"}]}`), StateCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Inspect(tt.data)
			if err != nil {
				t.Fatalf("Inspect() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Inspect() = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := Inspect([]byte(`{"cells": []}`)); !errors.Is(err, ErrCellNotFound) {
		t.Errorf("Inspect() error = %v, want ErrCellNotFound", err)
	}
}
