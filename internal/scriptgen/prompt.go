package scriptgen

import (
	"fmt"
	"strings"

	"showrunner/internal/roster"
)

// BuildPrompt assembles the script-generation prompt from the show, episode,
// and roster. The format example teaches the model the exact markers the
// parser recognizes, so the marker text here must stay in sync with the
// script package.
func BuildPrompt(show roster.Show, episode roster.Episode, characters roster.Characters, targetLines int) string {
	if targetLines <= 0 {
		targetLines = 50
	}

	var descriptions []string
	for _, id := range show.Characters {
		char, ok := characters[id]
		name := id
		detail := "Character"
		if ok {
			if char.Name != "" {
				name = char.Name
			}
			switch {
			case char.Description != "":
				detail = char.Description
			case char.Role != "":
				detail = char.Role
			}
		}
		descriptions = append(descriptions, fmt.Sprintf("- **%s**: %s", name, detail))
	}

	narratorInfo := ""
	if show.Narrator != "" {
		name := show.Narrator
		detail := "Provides commentary"
		if char, ok := characters[show.Narrator]; ok {
			if char.Name != "" {
				name = char.Name
			}
			if char.Description != "" {
				detail = char.Description
			}
		}
		narratorInfo = fmt.Sprintf("\n\n**Narrator:** %s - %s", name, detail)
	}

	format := show.Format
	if format == "" {
		format = "Sitcom"
	}
	tone := episode.Tone
	if tone == "" {
		tone = "Comedic"
	}
	visualStyle := show.VisualStyle
	if visualStyle == "" {
		visualStyle = "Modern, cinematic"
	}

	return fmt.Sprintf(`Write a script for an AI-generated video episode.

**Show:** %s
**Format:** %s
**Episode:** %s
**Topic:** %s
**Tone:** %s
**Visual Style:** %s

**Characters:**
%s%s

**Requirements:**
1. Write approximately %d dialogue lines
2. Mark each line with the character name in CAPS
3. Include [SCENE] markers for visual changes
4. Include V.O. (voiceover) lines for narrator sections
5. Add stage directions in (parentheses)
6. Make it engaging, funny, and suitable for social media clips
7. Include shot type hints: 🎭 TALKING HEAD, 🎬 B-ROLL, 📱 SCREEN

**Format Example:**
[SCENE: Morning in the apartment, sunlight streaming through windows]
🎬 B-ROLL

ROXIE (V.O.): It started like any other morning at the AI House...

🎭 TALKING HEAD
CLAIRE: (entering with coffee) Good morning everyone!

Write the full script:`,
		show.Title, format, episode.Title, episode.Topic, tone, visualStyle,
		strings.Join(descriptions, "\n"), narratorInfo, targetLines)
}
