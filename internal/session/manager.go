package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	adksession "google.golang.org/adk/session"
)

var ErrUnknownSession = errors.New("unknown session")

// Publisher receives session lifecycle updates. notify.Publisher satisfies it.
type Publisher interface {
	Publish(sessionID string, update map[string]any) error
}

// Manager hands out isolated stores and mirrors each one into an adk session
// service for the lifetime of the interview.
type Manager struct {
	service     adksession.Service
	appName     string
	instruction string
	publisher   Publisher
	logger      *zap.Logger

	mu     sync.Mutex
	live   map[string]*Store
	owners map[string]string
}

func NewManager(service adksession.Service, appName, instruction string, publisher Publisher, logger *zap.Logger) *Manager {
	return &Manager{
		service:     service,
		appName:     appName,
		instruction: instruction,
		publisher:   publisher,
		logger:      logger,
		live:        make(map[string]*Store),
		owners:      make(map[string]string),
	}
}

// Open creates a new session for userID with the system instruction installed.
func (m *Manager) Open(ctx context.Context, userID string) (*Store, error) {
	id := uuid.New().String()
	resp, err := m.service.Create(ctx, &adksession.CreateRequest{
		AppName:   m.appName,
		UserID:    userID,
		SessionID: id,
		State:     map[string]any{StateBullets: []string{}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	store := NewStore(id)
	store.SetJournal(&adkJournal{
		service: m.service,
		author:  m.appName,
		logger:  m.logger,
		sess:    resp.Session,
	})
	store.Init(m.instruction)

	m.mu.Lock()
	m.live[id] = store
	m.owners[id] = userID
	m.mu.Unlock()

	m.logger.Info("session opened", zap.String("session_id", id), zap.String("user_id", userID))
	m.publish(id, "started", "session started")
	return store, nil
}

func (m *Manager) Get(id string) (*Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.live[id]
	return s, ok
}

// Snapshot reads the session back from the session service.
func (m *Manager) Snapshot(ctx context.Context, id string) (Snapshot, error) {
	m.mu.Lock()
	userID, ok := m.owners[id]
	m.mu.Unlock()
	if !ok {
		return Snapshot{}, fmt.Errorf("session %s: %w", id, ErrUnknownSession)
	}
	resp, err := m.service.Get(ctx, &adksession.GetRequest{
		AppName:   m.appName,
		UserID:    userID,
		SessionID: id,
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to get session: %w", err)
	}
	return snapshotOf(resp.Session)
}

// Close tears the session down. Closing an unknown id is not an error.
func (m *Manager) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	userID, ok := m.owners[id]
	delete(m.live, id)
	delete(m.owners, id)
	m.mu.Unlock()
	if !ok {
		return nil
	}

	err := m.service.Delete(ctx, &adksession.DeleteRequest{
		AppName:   m.appName,
		UserID:    userID,
		SessionID: id,
	})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	m.logger.Info("session closed", zap.String("session_id", id))
	m.publish(id, "ended", "session ended")
	return nil
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.live)
}

func (m *Manager) publish(id, status, message string) {
	if m.publisher == nil {
		return
	}
	err := m.publisher.Publish(id, map[string]any{
		"session_id": id,
		"status":     status,
		"message":    message,
	})
	if err != nil {
		m.logger.Warn("failed to publish session update", zap.String("session_id", id), zap.Error(err))
	}
}
