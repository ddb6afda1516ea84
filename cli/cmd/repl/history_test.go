package repl

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHistory_AddAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() of a missing file error = %v", err)
	}

	for _, e := range []HistoryEntry{
		{"a + b", modeParse},
		{"show json", modeCtrl},
		{"  ", modeParse},
		{"<p/>", modeParse},
	} {
		if err := h.Add(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (blank lines are skipped)", h.Len())
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	got := reloaded.Entries()
	want := []HistoryEntry{{"a + b", modeParse}, {"show json", modeCtrl}, {"<p/>", modeParse}}

	if len(got) != len(want) {
		t.Fatalf("Entries() = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestHistory_Duplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)
	h := NewHistory(path)

	for _, line := range []string{"a", "b", "b", "a"} {
		if err := h.Add(line, modeParse); err != nil {
			t.Fatal(err)
		}
	}

	// The same line in another mode is a distinct entry.
	if err := h.Add("a", modeCtrl); err != nil {
		t.Fatal(err)
	}

	var lines []string
	for _, e := range h.Entries() {
		lines = append(lines, e.encode())
	}

	if got := strings.Join(lines, ","); got != "P:b,P:a,C:a" {
		t.Errorf("entries = %s", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got := string(data); got != "P:b\nP:a\nC:a\n" {
		t.Errorf("history file = %q", got)
	}
}

func TestHistory_Limit(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	h.limit = 2

	for _, line := range []string{"1", "2", "3"} {
		if err := h.Add(line, modeParse); err != nil {
			t.Fatal(err)
		}
	}

	if e, _ := h.Entry(0); h.Len() != 2 || e.Line != "2" {
		t.Errorf("entries = %v", h.Entries())
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil || reloaded.Len() != 2 {
		t.Errorf("reloaded %d entries, %v", reloaded.Len(), err)
	}
}

func TestHistory_Entry(t *testing.T) {
	h := NewHistory("")

	if err := h.Add("x", modeParse); err != nil {
		t.Fatal(err)
	}

	if _, err := h.Entry(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Entry(-1) error = %v", err)
	}

	if _, err := h.Entry(1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Entry(1) error = %v", err)
	}

	if e, err := h.Entry(0); err != nil || e.Line != "x" {
		t.Errorf("Entry(0) = %v, %v", e, err)
	}
}

func TestDecodeEntry(t *testing.T) {
	for line, want := range map[string]HistoryEntry{
		"P:a":     {"a", modeParse},
		"C:quit":  {"quit", modeCtrl},
		"legacy":  {"legacy", modeParse},
		"P:C:odd": {"C:odd", modeParse},
	} {
		if got := decodeEntry(line); got != want {
			t.Errorf("decodeEntry(%q) = %v, want %v", line, got, want)
		}
	}
}
