// Package bullet holds the marker protocol between the dialogue controller and
// the model, and the digit check every accepted bullet must pass.
package bullet

import "strings"

// Marker prefixes a model response that carries a finished bullet.
const Marker = "BULLET READY:"

const space = " \t\r\n"

// HasNumber reports whether text contains at least one ASCII digit.
// Scale words such as "thousand" do not count.
func HasNumber(text string) bool {
	return strings.ContainsAny(text, "0123456789")
}

// Parse checks whether response starts with Marker and returns the bullet body
// with at most one leading list glyph and surrounding whitespace removed.
func Parse(response string) (string, bool) {
	trimmed := strings.TrimLeft(response, space)
	if !strings.HasPrefix(trimmed, Marker) {
		return "", false
	}
	body := strings.TrimLeft(strings.TrimPrefix(trimmed, Marker), space)
	return strings.TrimSpace(stripGlyph(body)), true
}

// stripGlyph drops one list glyph. "-" and "*" only count when followed by
// whitespace so markdown emphasis and negative figures survive.
func stripGlyph(body string) string {
	for _, g := range []string{"•", "·"} {
		if rest, ok := strings.CutPrefix(body, g); ok {
			return rest
		}
	}
	for _, g := range []string{"- ", "* ", "-\t", "*\t"} {
		if rest, ok := strings.CutPrefix(body, g); ok {
			return rest
		}
	}
	return body
}
