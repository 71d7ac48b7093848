package resume

import (
	"strings"
)

const (
	pointGlyphs   = "•·▪◦‣*-–—"
	minPointWords = 4
)

// RoughPoints picks the lines of a resume that read like accomplishments.
// Bulleted lines win; if the text has none, any line of at least four words is
// used. Glyphs are stripped and duplicates dropped, order is kept.
func RoughPoints(text string) []string {
	var bulleted, long []string
	seen := make(map[string]struct{})

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		stripped := strings.TrimSpace(strings.TrimLeft(line, pointGlyphs))
		if stripped == "" {
			continue
		}
		key := strings.ToLower(strings.Join(strings.Fields(stripped), " "))
		if _, dup := seen[key]; dup {
			continue
		}

		hasGlyph := stripped != line
		wordy := len(strings.Fields(stripped)) >= minPointWords
		switch {
		case hasGlyph:
			bulleted = append(bulleted, stripped)
		case wordy:
			long = append(long, stripped)
		default:
			continue
		}
		seen[key] = struct{}{}
	}

	if len(bulleted) > 0 {
		return bulleted
	}
	return long
}
