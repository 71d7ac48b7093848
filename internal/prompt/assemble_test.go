package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadolammi/bulletdoctor/internal/session"
)

func TestAssemblePlacesReminderAfterSystem(t *testing.T) {
	transcript := []session.Message{
		{Role: session.RoleSystem, Content: "sys"},
		{Role: session.RoleAssistant, Content: "What specific role / industry are you targeting?"},
		{Role: session.RoleUser, Content: "Backend engineer, fintech", LocalOnly: true},
		{Role: session.RoleAssistant, Content: "ack"},
		{Role: session.RoleUser, Content: "I fixed deploys"},
	}

	got, err := Assemble(transcript, "Backend engineer, fintech")
	require.NoError(t, err)

	want := []session.Message{
		{Role: session.RoleSystem, Content: "sys"},
		{Role: session.RoleUser, Content: "(Reminder) Target role / industry: Backend engineer, fintech"},
		{Role: session.RoleAssistant, Content: "What specific role / industry are you targeting?"},
		{Role: session.RoleAssistant, Content: "ack"},
		{Role: session.RoleUser, Content: "I fixed deploys"},
	}
	assert.Equal(t, want, got)
}

func TestAssembleDoesNotDuplicateSystem(t *testing.T) {
	got, err := Assemble([]session.Message{{Role: session.RoleSystem, Content: "sys"}}, "PM")
	require.NoError(t, err)
	require.Len(t, got, 2)

	systems := 0
	for _, m := range got {
		if m.Role == session.RoleSystem {
			systems++
		}
	}
	assert.Equal(t, 1, systems)
}

func TestAssembleErrors(t *testing.T) {
	_, err := Assemble(nil, "PM")
	assert.ErrorIs(t, err, ErrNoSystemMessage)

	_, err = Assemble([]session.Message{{Role: session.RoleUser, Content: "hi"}}, "PM")
	assert.ErrorIs(t, err, ErrNoSystemMessage)

	_, err = Assemble([]session.Message{{Role: session.RoleSystem, Content: "sys"}}, "")
	assert.ErrorIs(t, err, ErrRoleNotCaptured)
}

func TestAssembleDoesNotMutateTranscript(t *testing.T) {
	transcript := []session.Message{
		{Role: session.RoleSystem, Content: "sys"},
		{Role: session.RoleUser, Content: "a"},
	}
	_, err := Assemble(transcript, "PM")
	require.NoError(t, err)
	assert.Len(t, transcript, 2)
	assert.Equal(t, "a", transcript[1].Content)
}
