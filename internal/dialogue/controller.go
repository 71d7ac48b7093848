// Package dialogue drives a single interview: it captures the target role,
// forwards interview turns to the model and decides when a drafted bullet is
// accepted.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/muhammadolammi/bulletdoctor/internal/bullet"
	"github.com/muhammadolammi/bulletdoctor/internal/llm"
	"github.com/muhammadolammi/bulletdoctor/internal/notify"
	"github.com/muhammadolammi/bulletdoctor/internal/prompt"
	"github.com/muhammadolammi/bulletdoctor/internal/session"
)

const (
	RoleQuestion = "What specific role / industry are you targeting?"
	NeedNumber   = "I still need at least one number to show scale or impact " +
		"(team size, %, $, time).  Can you estimate any of those?"
)

var ErrEmptyInput = errors.New("empty input")

type State int

const (
	AwaitingRole State = iota
	Interviewing
)

func (s State) String() string {
	switch s {
	case AwaitingRole:
		return "awaiting_role"
	case Interviewing:
		return "interviewing"
	default:
		return "unknown"
	}
}

type OutcomeKind int

const (
	RoleCaptured OutcomeKind = iota
	Reply
	BulletAccepted
	BulletRejected
)

// Outcome describes what a single user turn produced.
type Outcome struct {
	Kind OutcomeKind
	// Reply is the last assistant message appended during the turn.
	Reply string
	// Bullet is set when Kind is BulletAccepted.
	Bullet string
}

type Controller struct {
	store     *session.Store
	provider  llm.Provider
	publisher notify.Publisher
	logger    *zap.Logger
}

func New(store *session.Store, provider llm.Provider, publisher notify.Publisher, logger *zap.Logger) *Controller {
	if publisher == nil {
		publisher = notify.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		store:     store,
		provider:  provider,
		publisher: publisher,
		logger:    logger.With(zap.String("session_id", store.ID())),
	}
}

func Acknowledgement(targetRole string) string {
	return fmt.Sprintf("Great, I'll tailor every bullet for **%s**. "+
		"Now paste your first rough point whenever you're ready.", targetRole)
}

func (c *Controller) Store() *session.Store {
	return c.store
}

func (c *Controller) State() State {
	if _, ok := c.store.TargetRole(); ok {
		return Interviewing
	}
	return AwaitingRole
}

// Start asks for the target role. Only the first call has an effect.
func (c *Controller) Start() {
	if !c.store.MarkRoleAsked() {
		return
	}
	c.store.AppendMessage(session.Message{Role: session.RoleAssistant, Content: RoleQuestion})
}

// Handle processes one user message. onChunk, if set, receives response
// fragments as the model produces them.
func (c *Controller) Handle(ctx context.Context, input string, onChunk func(string)) (Outcome, error) {
	if strings.TrimSpace(input) == "" {
		return Outcome{}, ErrEmptyInput
	}
	if c.State() == AwaitingRole {
		return c.captureRole(input), nil
	}
	return c.interview(ctx, input, onChunk)
}

func (c *Controller) captureRole(input string) Outcome {
	c.store.AppendMessage(session.Message{Role: session.RoleUser, Content: input, LocalOnly: true})
	c.store.CaptureTargetRole(input)

	ack := Acknowledgement(input)
	c.store.AppendMessage(session.Message{Role: session.RoleAssistant, Content: ack})

	c.logger.Info("target role captured", zap.String("target_role", input))
	c.publish("role_captured", "target role captured", map[string]any{"target_role": input})
	return Outcome{Kind: RoleCaptured, Reply: ack}
}

func (c *Controller) interview(ctx context.Context, input string, onChunk func(string)) (Outcome, error) {
	c.store.AppendMessage(session.Message{Role: session.RoleUser, Content: input})

	targetRole, _ := c.store.TargetRole()
	messages, err := prompt.Assemble(c.store.Transcript(), targetRole)
	if err != nil {
		return Outcome{}, fmt.Errorf("assemble prompt: %w", err)
	}

	c.logger.Debug("calling provider", zap.Int("messages", len(messages)))
	response, err := llm.Collect(c.provider.Stream(ctx, messages), onChunk)
	if err != nil {
		c.logger.Error("provider call failed", zap.Error(err))
		return Outcome{}, fmt.Errorf("completion failed: %w", err)
	}
	c.store.AppendMessage(session.Message{Role: session.RoleAssistant, Content: response})

	body, ok := bullet.Parse(response)
	if !ok {
		return Outcome{Kind: Reply, Reply: response}, nil
	}

	if err := c.store.AppendBullet(body); err != nil {
		c.store.AppendMessage(session.Message{Role: session.RoleAssistant, Content: NeedNumber})
		c.logger.Info("bullet rejected", zap.String("bullet", body), zap.Error(err))
		c.publish("bullet_rejected", "bullet has no number", map[string]any{"bullet": body})
		return Outcome{Kind: BulletRejected, Reply: NeedNumber}, nil
	}

	c.logger.Info("bullet accepted", zap.String("bullet", body))
	c.publish("bullet_accepted", "bullet accepted", map[string]any{"bullet": body})
	return Outcome{Kind: BulletAccepted, Reply: response, Bullet: body}, nil
}

// ResetBullets clears accepted bullets. Transcript and target role are kept.
func (c *Controller) ResetBullets() {
	c.store.ClearBullets()
	c.logger.Info("bullets reset")
	c.publish("bullets_reset", "bullets cleared", nil)
}

func (c *Controller) publish(status, message string, extra map[string]any) {
	update := map[string]any{
		"session_id": c.store.ID(),
		"status":     status,
		"message":    message,
	}
	for k, v := range extra {
		update[k] = v
	}
	if err := c.publisher.Publish(c.store.ID(), update); err != nil {
		c.logger.Warn("failed to publish update", zap.String("status", status), zap.Error(err))
	}
}
