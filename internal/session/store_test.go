package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitIsIdempotent(t *testing.T) {
	s := NewStore("s1")
	assert.True(t, s.Init("be a resume writer"))
	assert.False(t, s.Init("be a resume writer"))

	tr := s.Transcript()
	require.Len(t, tr, 1)
	assert.Equal(t, RoleSystem, tr[0].Role)
	assert.Equal(t, "be a resume writer", tr[0].Content)
}

func TestInitAfterMessagesDoesNothing(t *testing.T) {
	s := NewStore("s1")
	s.AppendMessage(Message{Role: RoleUser, Content: "hi"})
	assert.False(t, s.Init("sys"))
	assert.Len(t, s.Transcript(), 1)
}

func TestCaptureTargetRoleOnce(t *testing.T) {
	s := NewStore("s1")
	_, ok := s.TargetRole()
	assert.False(t, ok)

	assert.True(t, s.CaptureTargetRole("  Backend engineer, fintech "))
	assert.False(t, s.CaptureTargetRole("Designer"))

	role, ok := s.TargetRole()
	assert.True(t, ok)
	assert.Equal(t, "  Backend engineer, fintech ", role)
}

func TestMarkRoleAsked(t *testing.T) {
	s := NewStore("s1")
	assert.True(t, s.MarkRoleAsked())
	assert.False(t, s.MarkRoleAsked())
}

func TestAppendBulletRequiresNumber(t *testing.T) {
	s := NewStore("s1")

	err := s.AppendBullet("Led a team to improve reliability")
	assert.True(t, errors.Is(err, ErrNoNumber))
	assert.Empty(t, s.Bullets())

	require.NoError(t, s.AppendBullet("Led 5 engineers"))
	require.NoError(t, s.AppendBullet("Cut costs 20%"))
	assert.Equal(t, []string{"Led 5 engineers", "Cut costs 20%"}, s.Bullets())
}

func TestClearBulletsKeepsTranscriptAndRole(t *testing.T) {
	s := NewStore("s1")
	s.Init("sys")
	s.CaptureTargetRole("PM")
	require.NoError(t, s.AppendBullet("Shipped 3 features"))

	s.ClearBullets()
	s.ClearBullets()

	assert.Empty(t, s.Bullets())
	assert.Len(t, s.Transcript(), 1)
	role, _ := s.TargetRole()
	assert.Equal(t, "PM", role)
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := NewStore("s1")
	s.Init("sys")
	require.NoError(t, s.AppendBullet("Grew 2x"))

	tr := s.Transcript()
	tr[0].Content = "mutated"
	b := s.Bullets()
	b[0] = "mutated"

	assert.Equal(t, "sys", s.Transcript()[0].Content)
	assert.Equal(t, "Grew 2x", s.Bullets()[0])
}
