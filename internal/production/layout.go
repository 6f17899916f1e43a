package production

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"showrunner/internal/textutil"
)

// Layout resolves every artifact path inside one production directory.
//
// The directory shape is load-bearing: other tooling globs these exact
// locations, so paths here must not drift.
//
//	{root}/
//	  script.md
//	  audio/dialogue_lines.json
//	  audio/{idx:03d}_{character_id}.mp3
//	  audio/combined.mp3
//	  video/final.mp4   (future)
//	  clips/*.mp4       (future)
type Layout struct {
	Root string
}

func (l Layout) ScriptPath() string { return filepath.Join(l.Root, "script.md") }

func (l Layout) AudioDir() string { return filepath.Join(l.Root, "audio") }

func (l Layout) DialogueLinesPath() string {
	return filepath.Join(l.AudioDir(), "dialogue_lines.json")
}

// CuePath returns the per-cue artifact path: a zero-padded sequence index
// plus the character identifier.
func (l Layout) CuePath(index int, characterID string) string {
	name := fmt.Sprintf("%03d_%s.mp3", index, textutil.SanitizeToken(characterID))
	return filepath.Join(l.AudioDir(), name)
}

func (l Layout) CombinedPath() string { return filepath.Join(l.AudioDir(), "combined.mp3") }

func (l Layout) VideoDir() string { return filepath.Join(l.Root, "video") }

func (l Layout) FinalVideoPath() string { return filepath.Join(l.VideoDir(), "final.mp4") }

func (l Layout) ClipsDir() string { return filepath.Join(l.Root, "clips") }

// NewID builds the production identifier: {show_id}_{episode_idx}_{timestamp}
// with minute resolution, so a rerun within the same minute resumes the same
// directory.
func NewID(showID string, episodeIndex int, now time.Time) string {
	return fmt.Sprintf("%s_%d_%s", textutil.SanitizeFileName(showID), episodeIndex, now.Format("20060102_1504"))
}

// Exists reports whether an artifact file is present.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ExistsWithMinSize reports whether an artifact file is present and larger
// than minBytes. The size floor guards against truncated downloads from an
// interrupted earlier run.
func ExistsWithMinSize(path string, minBytes int64) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Size() > minBytes
}

// Completion reports which pipeline stages already have their artifacts.
type Completion struct {
	Script   bool
	Cues     bool
	Combined bool
	Video    bool
}

// Completion inspects the directory and returns the typed stage-completion
// view used by the CLI and the orchestrator.
func (l Layout) Completion() Completion {
	return Completion{
		Script:   Exists(l.ScriptPath()),
		Cues:     Exists(l.DialogueLinesPath()),
		Combined: Exists(l.CombinedPath()),
		Video:    Exists(l.FinalVideoPath()),
	}
}
