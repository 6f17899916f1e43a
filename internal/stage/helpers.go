package stage

import (
	"encoding/json"
	"os"

	"showrunner/internal/script"
	"showrunner/internal/services"
)

// LoadCues reads a persisted dialogue cue list from disk. On failure it
// returns a services.ErrValidation suitable for stage Execute methods.
func LoadCues(path string) ([]script.Cue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(
			services.ErrValidation, "stage", "load cues",
			"Dialogue cue list missing or unreadable; rerun the parse stage", err)
	}
	var cues []script.Cue
	if err := json.Unmarshal(data, &cues); err != nil {
		return nil, services.Wrap(
			services.ErrValidation, "stage", "load cues",
			"Dialogue cue list is corrupt; rerun the parse stage", err)
	}
	return cues, nil
}

// SaveCues persists the dialogue cue list with the stable two-space
// indentation other tooling expects. An empty script still writes a JSON
// array, never null.
func SaveCues(path string, cues []script.Cue) error {
	if cues == nil {
		cues = []script.Cue{}
	}
	data, err := json.MarshalIndent(cues, "", "  ")
	if err != nil {
		return services.Wrap(
			services.ErrValidation, "stage", "save cues",
			"Dialogue cue list could not be serialized", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return services.Wrap(
			services.ErrTransient, "stage", "save cues",
			"Dialogue cue list could not be written", err)
	}
	return nil
}
