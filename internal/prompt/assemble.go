// Package prompt builds the message list sent to the completion provider.
package prompt

import (
	"errors"
	"fmt"

	"github.com/muhammadolammi/bulletdoctor/internal/session"
)

var (
	ErrNoSystemMessage = errors.New("transcript does not start with a system message")
	ErrRoleNotCaptured = errors.New("target role not captured")
)

const reminderFormat = "(Reminder) Target role / industry: %s"

// Reminder is the synthetic message that keeps the model anchored to the
// target role however long the transcript grows.
func Reminder(targetRole string) session.Message {
	return session.Message{Role: session.RoleUser, Content: fmt.Sprintf(reminderFormat, targetRole)}
}

// Assemble returns [system, reminder, rest of transcript]. LocalOnly messages
// are left out.
func Assemble(transcript []session.Message, targetRole string) ([]session.Message, error) {
	if len(transcript) == 0 || transcript[0].Role != session.RoleSystem {
		return nil, ErrNoSystemMessage
	}
	if targetRole == "" {
		return nil, ErrRoleNotCaptured
	}

	out := make([]session.Message, 0, len(transcript)+1)
	out = append(out, transcript[0], Reminder(targetRole))
	for _, m := range transcript[1:] {
		if m.LocalOnly {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}
