// Package script converts raw generated script text into an ordered sequence
// of typed dialogue cues. Parsing is best-effort and lossy: malformed lines,
// empty cues, and unresolvable speakers are excluded, never raised.
package script

import (
	"regexp"
	"strings"
	"unicode"

	"showrunner/internal/roster"
)

// sceneToken opens a scene marker line, e.g. "[SCENE: kitchen]".
const sceneToken = "[SCENE"

// shotTokens are purely visual markers emitted by the script model; they
// carry no dialogue semantics and are discarded on sight.
var shotTokens = map[string]struct{}{
	"\U0001F3AD TALKING HEAD": {},
	"\U0001F3AC B-ROLL":       {},
	"\U0001F4F1 SCREEN":       {},
}

// stageDirections matches parenthesized spans plus any trailing whitespace.
var stageDirections = regexp.MustCompile(`\([^)]*\)\s*`)

// Cue is one synthesizable dialogue line. Field names match the
// dialogue_lines.json artifact layout.
type Cue struct {
	Index     int    `json:"idx"`
	Character string `json:"character"`
	Text      string `json:"text"`
	VoiceOver bool   `json:"is_vo"`
	Scene     string `json:"scene"`
}

// Result carries the parsed cues plus counters for lines the parser dropped.
type Result struct {
	Cues []Cue
	// UnresolvedSpeakers counts dialogue lines whose speaker label matched
	// no roster entry. Dropped silently per pipeline policy; surfaced only
	// as a log summary by callers.
	UnresolvedSpeakers int
}

// Parse classifies each line of the script and emits cues in script order.
// Indices are assigned densely: exactly 0..N-1 over the accepted cues.
func Parse(text string, chars roster.Characters) Result {
	var result Result
	currentScene := ""

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, sceneToken) {
			currentScene = line
			continue
		}

		if _, ok := shotTokens[line]; ok {
			continue
		}

		speaker, spoken, ok := splitDialogue(line)
		if !ok {
			continue
		}

		spoken = strings.TrimSpace(stageDirections.ReplaceAllString(spoken, ""))
		if spoken == "" {
			continue
		}

		voiceOver := strings.Contains(speaker, "(V.O.)") || strings.Contains(speaker, "V.O.")
		speaker = strings.ReplaceAll(speaker, "(V.O.)", "")
		speaker = strings.TrimSpace(strings.ReplaceAll(speaker, "V.O.", ""))

		characterID, ok := chars.MatchSpeaker(speaker)
		if !ok {
			result.UnresolvedSpeakers++
			continue
		}

		result.Cues = append(result.Cues, Cue{
			Index:     len(result.Cues),
			Character: characterID,
			Text:      spoken,
			VoiceOver: voiceOver,
			Scene:     currentScene,
		})
	}

	return result
}

// splitDialogue splits at the first colon and accepts the line as dialogue
// only when the prefix is entirely upper-case. A colon inside the spoken text
// is harmless: only the first split point is examined.
func splitDialogue(line string) (speaker, text string, ok bool) {
	before, after, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	if !isUpper(before) {
		return "", "", false
	}
	return strings.TrimSpace(before), strings.TrimSpace(after), true
}

// isUpper mirrors the upper-case test the script grammar relies on: at least
// one cased character, and no cased character lower-case. Digits and
// punctuation are ignored.
func isUpper(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			hasCased = true
		}
	}
	return hasCased
}
