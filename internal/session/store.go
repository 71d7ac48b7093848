// Package session keeps the per-session dialogue state: transcript, target
// role and accepted bullets.
package session

import (
	"errors"
	"slices"
	"sync"

	"github.com/muhammadolammi/bulletdoctor/internal/bullet"
)

var ErrNoNumber = errors.New("bullet has no number")

// Journal receives every store mutation after it is applied.
type Journal interface {
	Message(m Message)
	State(targetRole string, bullets []string)
}

// Store is the state of one interview session. Readers may run concurrently
// with the single writer driving the dialogue.
type Store struct {
	mu           sync.RWMutex
	id           string
	transcript   []Message
	targetRole   string
	roleCaptured bool
	roleAsked    bool
	bullets      []string
	journal      Journal
}

func NewStore(id string) *Store {
	return &Store{id: id}
}

func (s *Store) ID() string {
	return s.id
}

// SetJournal must be called before the store is shared.
func (s *Store) SetJournal(j Journal) {
	s.journal = j
}

func (s *Store) recordState(role string, bullets []string) {
	if s.journal != nil {
		s.journal.State(role, bullets)
	}
}

// Init installs the system instruction as the first transcript message.
// It does nothing if the transcript already has content.
func (s *Store) Init(instruction string) bool {
	s.mu.Lock()
	if len(s.transcript) > 0 {
		s.mu.Unlock()
		return false
	}
	m := Message{Role: RoleSystem, Content: instruction}
	s.transcript = append(s.transcript, m)
	s.mu.Unlock()
	if s.journal != nil {
		s.journal.Message(m)
	}
	return true
}

// MarkRoleAsked returns true only on the first call.
func (s *Store) MarkRoleAsked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roleAsked {
		return false
	}
	s.roleAsked = true
	return true
}

// CaptureTargetRole stores raw verbatim. Later calls are no-ops and return false.
func (s *Store) CaptureTargetRole(raw string) bool {
	s.mu.Lock()
	if s.roleCaptured {
		s.mu.Unlock()
		return false
	}
	s.targetRole = raw
	s.roleCaptured = true
	bullets := slices.Clone(s.bullets)
	s.mu.Unlock()
	s.recordState(raw, bullets)
	return true
}

func (s *Store) TargetRole() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.targetRole, s.roleCaptured
}

func (s *Store) AppendMessage(m Message) {
	s.mu.Lock()
	s.transcript = append(s.transcript, m)
	s.mu.Unlock()
	if s.journal != nil {
		s.journal.Message(m)
	}
}

// AppendBullet records text as an accepted bullet if it contains a digit.
func (s *Store) AppendBullet(text string) error {
	if !bullet.HasNumber(text) {
		return ErrNoNumber
	}
	s.mu.Lock()
	s.bullets = append(s.bullets, text)
	role, bullets := s.targetRole, slices.Clone(s.bullets)
	s.mu.Unlock()
	s.recordState(role, bullets)
	return nil
}

func (s *Store) ClearBullets() {
	s.mu.Lock()
	s.bullets = nil
	role := s.targetRole
	s.mu.Unlock()
	s.recordState(role, []string{})
}

func (s *Store) Transcript() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.transcript)
}

func (s *Store) Bullets() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.bullets)
}
