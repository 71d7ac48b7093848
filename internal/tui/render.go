package tui

import (
	"strconv"
	"strings"

	"github.com/muhammadolammi/bulletdoctor/internal/session"
)

const noBullets = "No bullets yet, answer the questions to generate one."

// renderTranscript lays out every non-system message in arrival order.
// partial is the assistant response still streaming in, if any.
func renderTranscript(transcript []session.Message, partial string, markdown func(string) string) string {
	var b strings.Builder
	for _, m := range transcript {
		switch m.Role {
		case session.RoleSystem:
			continue
		case session.RoleUser:
			b.WriteString(userRoleStyle.Render("You"))
			b.WriteString("\n")
			b.WriteString(m.Content)
			b.WriteString("\n\n")
		case session.RoleAssistant:
			b.WriteString(assistantRoleStyle.Render("Coach"))
			b.WriteString("\n")
			b.WriteString(markdown(m.Content))
			b.WriteString("\n\n")
		}
	}
	if partial != "" {
		b.WriteString(assistantRoleStyle.Render("Coach"))
		b.WriteString("\n")
		b.WriteString(partial)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderSidebar(bullets []string, queued int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Draft bullets"))
	b.WriteString("\n\n")
	if len(bullets) == 0 {
		b.WriteString(dimStyle.Render(noBullets))
	}
	for _, bl := range bullets {
		b.WriteString(bulletStyle.Render("• " + bl))
		b.WriteString("\n")
	}
	if queued > 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(pluralize(queued, "rough point", "rough points") + " queued, /next to send"))
	}
	return b.String()
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
