package script_test

import (
	"strings"
	"testing"

	"showrunner/internal/roster"
	"showrunner/internal/script"
)

var testRoster = roster.Characters{
	"claire_delish": {Name: "Claire", VoiceProvider: roster.ProviderHume, VoiceID: "voice-claire"},
	"vv_steele":     {Name: "VV"},
	"roxie_rush":    {Name: "Roxie", VoiceProvider: roster.ProviderHume, VoiceID: "voice-roxie"},
}

func TestParseIndicesAreDense(t *testing.T) {
	text := strings.Join([]string{
		"[SCENE: Morning in the apartment]",
		"\U0001F3AC B-ROLL",
		"CLAIRE: Good morning everyone!",
		"not dialogue at all",
		"VV: did you see this?",
		"ROXIE: I did.",
	}, "\n")

	result := script.Parse(text, testRoster)
	if len(result.Cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(result.Cues))
	}
	for i, cue := range result.Cues {
		if cue.Index != i {
			t.Fatalf("cue %d has index %d", i, cue.Index)
		}
	}
}

func TestParseLowerCasePrefixNeverDialogue(t *testing.T) {
	lines := []string{
		"Claire: hello there",
		"claire: HELLO THERE",
		"Vv: shouting",
		"a CLAIRE thing: text",
	}
	for _, line := range lines {
		result := script.Parse(line, testRoster)
		if len(result.Cues) != 0 {
			t.Fatalf("line %q should not produce a cue", line)
		}
	}
}

func TestParseColonInsideDialogueIsSafe(t *testing.T) {
	result := script.Parse("CLAIRE: Remember: timing is everything", testRoster)
	if len(result.Cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(result.Cues))
	}
	if result.Cues[0].Text != "Remember: timing is everything" {
		t.Fatalf("unexpected text: %q", result.Cues[0].Text)
	}
}

func TestParseStripsAllStageDirections(t *testing.T) {
	result := script.Parse("CLAIRE: (entering) Good morning (waves) everyone!", testRoster)
	if len(result.Cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(result.Cues))
	}
	if got := result.Cues[0].Text; got != "Good morning everyone!" {
		t.Fatalf("stage directions remain: %q", got)
	}
}

func TestParseDropsLineEmptyAfterStripping(t *testing.T) {
	result := script.Parse("CLAIRE: (long pause)", testRoster)
	if len(result.Cues) != 0 {
		t.Fatalf("expected no cues, got %d", len(result.Cues))
	}
}

func TestParseVoiceOverMarker(t *testing.T) {
	result := script.Parse("ROXIE (V.O.): It started like any other morning...", testRoster)
	if len(result.Cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(result.Cues))
	}
	cue := result.Cues[0]
	if !cue.VoiceOver {
		t.Fatal("expected voice-over flag")
	}
	if cue.Character != "roxie_rush" {
		t.Fatalf("expected roxie_rush, got %q", cue.Character)
	}
}

func TestParseBareVoiceOverToken(t *testing.T) {
	result := script.Parse("ROXIE V.O.: narration continues", testRoster)
	if len(result.Cues) != 1 || !result.Cues[0].VoiceOver {
		t.Fatalf("expected voice-over cue, got %+v", result.Cues)
	}
}

func TestParseSceneCarriesForward(t *testing.T) {
	text := strings.Join([]string{
		"CLAIRE: before any scene",
		"[SCENE: kitchen]",
		"CLAIRE: in the kitchen",
		"VV: also in the kitchen",
		"[SCENE: rooftop]",
		"CLAIRE: on the roof",
	}, "\n")

	result := script.Parse(text, testRoster)
	if len(result.Cues) != 4 {
		t.Fatalf("expected 4 cues, got %d", len(result.Cues))
	}
	if result.Cues[0].Scene != "" {
		t.Fatalf("expected empty scene before first marker, got %q", result.Cues[0].Scene)
	}
	if result.Cues[1].Scene != "[SCENE: kitchen]" || result.Cues[2].Scene != "[SCENE: kitchen]" {
		t.Fatalf("kitchen scene not carried: %q %q", result.Cues[1].Scene, result.Cues[2].Scene)
	}
	if result.Cues[3].Scene != "[SCENE: rooftop]" {
		t.Fatalf("rooftop scene missing: %q", result.Cues[3].Scene)
	}
}

func TestParseUnresolvedSpeakersCountedAndDropped(t *testing.T) {
	text := "PENNIE: I am not in this roster\nCLAIRE: but I am"
	result := script.Parse(text, testRoster)
	if len(result.Cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(result.Cues))
	}
	if result.UnresolvedSpeakers != 1 {
		t.Fatalf("expected 1 unresolved speaker, got %d", result.UnresolvedSpeakers)
	}
}

func TestParseEmptyScriptIsEmptyResult(t *testing.T) {
	result := script.Parse("just prose\n\nand a [note]\n", testRoster)
	if len(result.Cues) != 0 {
		t.Fatalf("expected no cues, got %d", len(result.Cues))
	}
}

func TestParseEndToEndScenario(t *testing.T) {
	text := "[SCENE: kitchen]\nCLAIRE: (smiling) Good morning!\nVV: ugh mornings\n"
	result := script.Parse(text, testRoster)
	if len(result.Cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(result.Cues))
	}
	if result.Cues[0].Character != "claire_delish" || result.Cues[0].Text != "Good morning!" {
		t.Fatalf("unexpected first cue: %+v", result.Cues[0])
	}
	if result.Cues[1].Character != "vv_steele" || result.Cues[1].Text != "ugh mornings" {
		t.Fatalf("unexpected second cue: %+v", result.Cues[1])
	}
}
