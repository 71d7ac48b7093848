package llm

import (
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/muhammadolammi/bulletdoctor/internal/session"
)

func fragments(parts []string, failAt int) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for i, p := range parts {
			if i == failAt {
				yield("", errors.New("boom"))
				return
			}
			if !yield(p, nil) {
				return
			}
		}
	}
}

func TestCollectConcatenates(t *testing.T) {
	var seen []string
	out, err := Collect(fragments([]string{"BULLET ", "", "READY: • Led 5"}, -1), func(s string) {
		seen = append(seen, s)
	})
	require.NoError(t, err)
	assert.Equal(t, "BULLET READY: • Led 5", out)
	assert.Equal(t, []string{"BULLET ", "READY: • Led 5"}, seen)
}

func TestCollectStopsAtError(t *testing.T) {
	out, err := Collect(fragments([]string{"a", "b", "c"}, 2), nil)
	require.Error(t, err)
	assert.Equal(t, "ab", out)
}

func TestToContentsMapsRoles(t *testing.T) {
	contents, system := toContents([]session.Message{
		{Role: session.RoleSystem, Content: "sys"},
		{Role: session.RoleUser, Content: "(Reminder) Target role / industry: PM"},
		{Role: session.RoleAssistant, Content: "What did you do?"},
		{Role: session.RoleUser, Content: "I shipped"},
	})

	require.NotNil(t, system)
	require.Len(t, system.Parts, 1)
	assert.Equal(t, "sys", system.Parts[0].Text)

	require.Len(t, contents, 3)
	assert.Equal(t, string(genai.RoleUser), contents[0].Role)
	assert.Equal(t, string(genai.RoleModel), contents[1].Role)
	assert.Equal(t, "What did you do?", contents[1].Parts[0].Text)
	assert.Equal(t, string(genai.RoleUser), contents[2].Role)
}

func TestToContentsWithoutSystem(t *testing.T) {
	contents, system := toContents([]session.Message{{Role: session.RoleUser, Content: "hi"}})
	assert.Nil(t, system)
	assert.Len(t, contents, 1)
}
