package stage

import (
	"os"
	"path/filepath"
	"testing"

	"showrunner/internal/script"
)

func TestLoadCuesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dialogue_lines.json")
	cues := []script.Cue{
		{Index: 0, Character: "claire", Text: "Hello.", Scene: "INTRO"},
		{Index: 1, Character: "viktor", Text: "Welcome back.", VoiceOver: true, Scene: "INTRO"},
	}
	if err := SaveCues(path, cues); err != nil {
		t.Fatalf("SaveCues returned error: %v", err)
	}

	got, err := LoadCues(path)
	if err != nil {
		t.Fatalf("LoadCues returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(got))
	}
	if got[1] != cues[1] {
		t.Fatalf("cue mismatch: got %+v want %+v", got[1], cues[1])
	}
}

func TestLoadCuesMissingFile(t *testing.T) {
	_, err := LoadCues(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadCuesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dialogue_lines.json")
	if err := os.WriteFile(path, []byte("{invalid"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCues(path); err == nil {
		t.Fatal("expected error for corrupt file")
	}
}

func TestSaveCuesNilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dialogue_lines.json")
	if err := SaveCues(path, nil); err != nil {
		t.Fatalf("SaveCues returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read cue list: %v", err)
	}
	if string(data) != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", data)
	}

	got, err := LoadCues(path)
	if err != nil {
		t.Fatalf("LoadCues returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no cues, got %d", len(got))
	}
}
