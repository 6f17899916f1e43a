// Package roster owns the character and show records backing productions.
// Data lives in plain JSON files (characters.json, shows.json) under the
// configured data directory; the Store loads on demand and saves explicitly,
// so there is no cross-command in-memory state.
package roster

import (
	"sort"
	"strings"
	"time"
)

// Provider identifies a speech-synthesis backend for a character voice.
type Provider string

const (
	ProviderHume       Provider = "hume"
	ProviderElevenLabs Provider = "elevenlabs"
	ProviderNone       Provider = "none"
)

// Known reports whether the provider tag is one of the supported values.
func (p Provider) Known() bool {
	switch p {
	case ProviderHume, ProviderElevenLabs, ProviderNone:
		return true
	}
	return false
}

// Character describes one member of the talent roster.
type Character struct {
	Name          string   `json:"name"`
	Role          string   `json:"role"`
	Description   string   `json:"description"`
	VoiceProvider Provider `json:"voice_provider"`
	VoiceID       string   `json:"voice_id"`
}

// VoiceRef returns the provider and voice identifier when the character is
// usable for synthesis: a non-none provider plus a non-empty voice id.
func (c Character) VoiceRef() (Provider, string, bool) {
	provider := Provider(strings.TrimSpace(string(c.VoiceProvider)))
	voiceID := strings.TrimSpace(c.VoiceID)
	if provider == "" || provider == ProviderNone || voiceID == "" {
		return ProviderNone, "", false
	}
	return provider, voiceID, true
}

// Characters maps character identifiers to their records.
type Characters map[string]Character

// IDs returns the character identifiers in sorted order. JSON objects carry
// no ordering, so sorted ids are the deterministic iteration order used for
// speaker matching.
func (c Characters) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MatchSpeaker resolves a cleaned speaker label against display names and
// identifiers, case-insensitively, first match winning.
func (c Characters) MatchSpeaker(label string) (string, bool) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if label == "" {
		return "", false
	}
	for _, id := range c.IDs() {
		char := c[id]
		if strings.ToUpper(char.Name) == label || strings.ToUpper(id) == label {
			return id, true
		}
	}
	return "", false
}

// DisplayName returns the character name, falling back to the identifier.
func (c Characters) DisplayName(id string) string {
	if char, ok := c[id]; ok && strings.TrimSpace(char.Name) != "" {
		return char.Name
	}
	return id
}

// Episode is one episode concept within a show.
type Episode struct {
	Title    string `json:"title"`
	Topic    string `json:"topic"`
	Tone     string `json:"tone"`
	RefNotes string `json:"ref_notes,omitempty"`
	Status   string `json:"status"`
}

// EpisodeStatusDraft is the initial status for new episodes. Productions do
// not write status back; artifact presence on disk is the completion signal.
const EpisodeStatusDraft = "draft"

// Show is a show concept with its cast and episode list.
type Show struct {
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Format         string    `json:"format"`
	TargetDuration string    `json:"target_duration"`
	Characters     []string  `json:"characters"`
	Narrator       string    `json:"narrator,omitempty"`
	VisualStyle    string    `json:"visual_style"`
	CreatedAt      time.Time `json:"created_at"`
	Episodes       []Episode `json:"episodes"`
}

// Episode returns the episode at index, if present.
func (s Show) Episode(index int) (Episode, bool) {
	if index < 0 || index >= len(s.Episodes) {
		return Episode{}, false
	}
	return s.Episodes[index], true
}

// Shows maps show identifiers to their records.
type Shows map[string]Show

// IDs returns the show identifiers in sorted order.
func (s Shows) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
