package scriptgen_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"showrunner/internal/config"
	"showrunner/internal/logging"
	"showrunner/internal/production"
	"showrunner/internal/roster"
	"showrunner/internal/scriptgen"
)

type fakeCompleter struct {
	text   string
	err    error
	called int
	prompt string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.called++
	f.prompt = prompt
	return f.text, f.err
}

func newProduction(t *testing.T) *production.Production {
	t.Helper()
	return &production.Production{
		ID:     "house_0_20250314_0926",
		ShowID: "house",
		Layout: production.Layout{Root: filepath.Join(t.TempDir(), "house_0_20250314_0926")},
		Show: roster.Show{
			Title:      "The AI House",
			Format:     "Sitcom",
			Characters: []string{"claire", "viktor"},
			Narrator:   "roxie",
		},
		Episode: roster.Episode{Title: "Pilot", Topic: "Move-in day", Tone: "Comedic"},
		Characters: roster.Characters{
			"claire": {Name: "Claire", Description: "Optimistic roommate"},
			"viktor": {Name: "Viktor", Role: "The skeptic"},
			"roxie":  {Name: "Roxie", Description: "Narrates with dry wit"},
		},
	}
}

func newConfig() *config.Config {
	cfg := config.Default()
	return &cfg
}

func TestExecuteGeneratesAndPersistsScript(t *testing.T) {
	prod := newProduction(t)
	completer := &fakeCompleter{text: "# Pilot\n\nCLAIRE: Hello!"}
	st := scriptgen.NewStageWithCompleter(newConfig(), logging.NewNop(), completer)

	ctx := context.Background()
	if err := st.Prepare(ctx, prod); err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}
	if err := st.Execute(ctx, prod); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	data, err := os.ReadFile(prod.Layout.ScriptPath())
	if err != nil {
		t.Fatalf("script.md not written: %v", err)
	}
	if string(data) != completer.text {
		t.Fatalf("script content mismatch: %q", data)
	}
	for _, want := range []string{"The AI House", "Pilot", "**Claire**", "Roxie", "[SCENE]"} {
		if !strings.Contains(completer.prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, completer.prompt)
		}
	}
}

func TestExecuteSkipsExistingScript(t *testing.T) {
	prod := newProduction(t)
	completer := &fakeCompleter{text: "fresh"}
	st := scriptgen.NewStageWithCompleter(newConfig(), logging.NewNop(), completer)

	ctx := context.Background()
	if err := st.Prepare(ctx, prod); err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}
	existing := "# Hand-written script\n"
	if err := os.WriteFile(prod.Layout.ScriptPath(), []byte(existing), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := st.Execute(ctx, prod); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if completer.called != 0 {
		t.Fatal("completer should not be called when script.md exists")
	}
	data, _ := os.ReadFile(prod.Layout.ScriptPath())
	if string(data) != existing {
		t.Fatalf("existing script overwritten: %q", data)
	}
}

func TestExecuteSurfacesProviderError(t *testing.T) {
	prod := newProduction(t)
	completer := &fakeCompleter{err: errors.New("http 500")}
	st := scriptgen.NewStageWithCompleter(newConfig(), logging.NewNop(), completer)

	ctx := context.Background()
	if err := st.Prepare(ctx, prod); err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}
	if err := st.Execute(ctx, prod); err == nil {
		t.Fatal("expected provider error to abort the stage")
	}
	if _, err := os.Stat(prod.Layout.ScriptPath()); !os.IsNotExist(err) {
		t.Fatal("no partial script should be persisted on provider error")
	}
}

func TestPrepareRejectsEmptyShow(t *testing.T) {
	prod := newProduction(t)
	prod.Show = roster.Show{}
	st := scriptgen.NewStageWithCompleter(newConfig(), logging.NewNop(), &fakeCompleter{})
	if err := st.Prepare(context.Background(), prod); err == nil {
		t.Fatal("expected error for empty show record")
	}
}
