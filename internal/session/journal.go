package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	adksession "google.golang.org/adk/session"
	"google.golang.org/genai"
)

// Keys under which the interview state is kept in the adk session.
const (
	StateTargetRole = "target_role"
	StateBullets    = "bullets"
)

const localOnlyKey = "local_only"

// adkJournal mirrors a Store into an adk session: every message becomes an
// event and role/bullet changes travel as state deltas.
type adkJournal struct {
	service adksession.Service
	author  string
	logger  *zap.Logger

	mu   sync.Mutex
	sess adksession.Session
}

func (j *adkJournal) Message(m Message) {
	ev := adksession.NewEvent(j.sess.ID())
	ev.Author = string(m.Role)
	ev.Content = genai.NewContentFromText(m.Content, contentRole(m.Role))
	if m.LocalOnly {
		ev.CustomMetadata = map[string]any{localOnlyKey: true}
	}
	j.append(ev)
}

func (j *adkJournal) State(targetRole string, bullets []string) {
	ev := adksession.NewEvent(j.sess.ID())
	ev.Author = j.author
	if targetRole != "" {
		ev.Actions.StateDelta[StateTargetRole] = targetRole
	}
	ev.Actions.StateDelta[StateBullets] = bullets
	j.append(ev)
}

func (j *adkJournal) append(ev *adksession.Event) {
	j.mu.Lock()
	defer j.mu.Unlock()
	// store mutations carry no context; the journal outlives any single turn
	if err := j.service.AppendEvent(context.Background(), j.sess, ev); err != nil {
		j.logger.Warn("failed to append session event", zap.String("session_id", j.sess.ID()), zap.Error(err))
	}
}

func contentRole(r Role) genai.Role {
	if r == RoleAssistant {
		return genai.RoleModel
	}
	return genai.RoleUser
}

// Snapshot is the interview state as recorded by the session service.
type Snapshot struct {
	TargetRole string
	Bullets    []string
	Transcript []Message
}

func snapshotOf(sess adksession.Session) (Snapshot, error) {
	var snap Snapshot
	role, err := sess.State().Get(StateTargetRole)
	switch {
	case errors.Is(err, adksession.ErrStateKeyNotExist):
	case err != nil:
		return snap, fmt.Errorf("failed to read target role: %w", err)
	default:
		snap.TargetRole, _ = role.(string)
	}

	bullets, err := sess.State().Get(StateBullets)
	switch {
	case errors.Is(err, adksession.ErrStateKeyNotExist):
	case err != nil:
		return snap, fmt.Errorf("failed to read bullets: %w", err)
	default:
		snap.Bullets = toStrings(bullets)
	}

	for ev := range sess.Events().All() {
		if ev.Content == nil {
			continue
		}
		var text strings.Builder
		for _, p := range ev.Content.Parts {
			if p != nil {
				text.WriteString(p.Text)
			}
		}
		local, _ := ev.CustomMetadata[localOnlyKey].(bool)
		snap.Transcript = append(snap.Transcript, Message{
			Role:      Role(ev.Author),
			Content:   text.String(),
			LocalOnly: local,
		})
	}
	return snap, nil
}

// toStrings accepts the native slice and the []any form a serialising
// backend hands back.
func toStrings(v any) []string {
	switch vals := v.(type) {
	case []string:
		return append([]string(nil), vals...)
	case []any:
		out := make([]string, 0, len(vals))
		for _, x := range vals {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
