package testsupport

import (
	"testing"

	"showrunner/internal/config"
	"showrunner/internal/production"
	"showrunner/internal/roster"
)

// MustOpenLedger opens a production.Ledger for tests and registers cleanup.
func MustOpenLedger(t testing.TB, cfg *config.Config) *production.Ledger {
	t.Helper()

	ledger, err := production.OpenLedger(cfg)
	if err != nil {
		t.Fatalf("production.OpenLedger: %v", err)
	}
	t.Cleanup(func() {
		_ = ledger.Close()
	})
	return ledger
}

// SeedRoster writes a small show plus cast into the config's data directory
// and returns the roster store. The show id is "house" with one draft
// episode.
func SeedRoster(t testing.TB, cfg *config.Config) *roster.Store {
	t.Helper()

	store := roster.NewStore(cfg.Paths.DataDir)
	chars := roster.Characters{
		"claire": {Name: "Claire", Role: "Host", VoiceProvider: roster.ProviderHume, VoiceID: "voice-claire"},
		"viktor": {Name: "Viktor", Role: "Skeptic", VoiceProvider: roster.ProviderNone},
		"roxie":  {Name: "Roxie", Role: "Narrator", VoiceProvider: roster.ProviderElevenLabs, VoiceID: "voice-roxie"},
	}
	if err := store.SaveCharacters(chars); err != nil {
		t.Fatalf("seed characters: %v", err)
	}
	shows := roster.Shows{
		"house": {
			Title:      "The AI House",
			Format:     "Sitcom",
			Characters: []string{"claire", "viktor"},
			Narrator:   "roxie",
			Episodes: []roster.Episode{
				{Title: "Pilot", Topic: "Move-in day", Tone: "Comedic", Status: roster.EpisodeStatusDraft},
			},
		},
	}
	if err := store.SaveShows(shows); err != nil {
		t.Fatalf("seed shows: %v", err)
	}
	return store
}
