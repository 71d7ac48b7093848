// Package tui is the terminal chat surface: transcript on the left, accepted
// bullets on the right, one input line at the bottom.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muhammadolammi/bulletdoctor/internal/dialogue"
	"github.com/muhammadolammi/bulletdoctor/internal/resume"
)

type Model struct {
	ctrl   *dialogue.Controller
	loader *resume.Loader
	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	width  int
	height int

	streaming bool
	partial   string
	events    chan tea.Msg
	queue     []string
	status    string
	err       error
}

type chunkMsg string

type turnDoneMsg struct {
	outcome dialogue.Outcome
	err     error
}

type pointsMsg struct {
	source string
	points []string
	err    error
}

func NewModel(ctx context.Context, ctrl *dialogue.Controller, loader *resume.Loader, logger *zap.Logger) Model {
	ctx, cancel := context.WithCancel(ctx)

	vp := viewport.New(80, 20)

	ti := textinput.New()
	ti.Placeholder = "Paste a rough bullet, or answer the question above…"
	ti.CharLimit = 2000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctrl:     ctrl,
		loader:   loader,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		viewport: vp,
		input:    ti,
		spinner:  sp,
		status:   HelpText,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancel()
			return m, tea.Quit
		case "enter":
			return m.submit()
		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case chunkMsg:
		m.partial += string(msg)
		m.refresh()
		return m, waitForEvent(m.events)

	case turnDoneMsg:
		m.streaming = false
		m.partial = ""
		m.events = nil
		m.finishTurn(msg)
		m.refresh()
		return m, nil

	case pointsMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = "Could not load " + msg.source
			m.logger.Warn("resume load failed", zap.String("source", msg.source), zap.Error(msg.err))
			return m, nil
		}
		m.err = nil
		m.queue = append(m.queue, msg.points...)
		m.status = fmt.Sprintf("Queued %s from %s", pluralize(len(msg.points), "rough point", "rough points"), msg.source)
		return m, nil

	case spinner.TickMsg:
		if m.streaming {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	raw := m.input.Value()
	if strings.TrimSpace(raw) == "" {
		return m, nil
	}
	cmd := ParseCommand(raw)
	// only one turn may stream at a time; keep the text for later
	if m.streaming && (cmd.Kind == CmdNone || cmd.Kind == CmdNext) {
		return m, nil
	}
	m.input.SetValue("")
	m.err = nil

	switch cmd.Kind {
	case CmdQuit:
		m.cancel()
		return m, tea.Quit
	case CmdReset:
		m.ctrl.ResetBullets()
		m.status = "Bullets cleared"
		return m, nil
	case CmdHelp:
		m.status = HelpText
		return m, nil
	case CmdLoad:
		if cmd.Arg == "" {
			m.status = "Usage: /load <file|r2://key>"
			return m, nil
		}
		m.status = "Loading " + cmd.Arg + "…"
		return m, m.loadCmd(cmd.Arg)
	case CmdNext:
		if len(m.queue) == 0 {
			m.status = "No queued rough points, /load a resume first"
			return m, nil
		}
		next := m.queue[0]
		m.queue = m.queue[1:]
		return m.startTurn(next)
	case CmdUnknown:
		m.status = "Unknown command " + cmd.Arg
		return m, nil
	}
	return m.startTurn(raw)
}

// startTurn hands input to the controller on a goroutine and streams its
// output back through m.events.
func (m Model) startTurn(input string) (Model, tea.Cmd) {
	events := make(chan tea.Msg, 16)
	m.events = events
	m.streaming = true
	m.partial = ""
	m.status = "Thinking…"

	ctx, ctrl := m.ctx, m.ctrl
	send := func(msg tea.Msg) {
		select {
		case events <- msg:
		case <-ctx.Done():
		}
	}
	go func() {
		out, err := ctrl.Handle(ctx, input, func(chunk string) { send(chunkMsg(chunk)) })
		send(turnDoneMsg{outcome: out, err: err})
	}()
	return m, tea.Batch(m.spinner.Tick, waitForEvent(events))
}

func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		return <-events
	}
}

func (m *Model) finishTurn(msg turnDoneMsg) {
	if msg.err != nil {
		m.err = msg.err
		if errors.Is(msg.err, context.Canceled) {
			m.status = "Cancelled"
			return
		}
		m.status = "The model call failed, try again"
		m.logger.Error("turn failed", zap.Error(msg.err))
		return
	}
	switch msg.outcome.Kind {
	case dialogue.RoleCaptured:
		m.status = "Target role saved"
	case dialogue.BulletAccepted:
		m.status = "Bullet added to your drafts"
	case dialogue.BulletRejected:
		m.status = "That bullet had no number, add one to continue"
	default:
		m.status = ""
	}
}

func (m Model) loadCmd(source string) tea.Cmd {
	ctx, loader := m.ctx, m.loader
	return func() tea.Msg {
		points, err := loader.Points(ctx, source)
		return pointsMsg{source: source, points: points, err: err}
	}
}

func (m *Model) chatWidth() int {
	return max(minChatWidth, m.width-sidebarWidth-4)
}

func (m *Model) resize() {
	m.viewport.Width = m.chatWidth()
	m.viewport.Height = max(minChatHeight, m.height-inputHeight-statusHeight-2)
	m.input.Width = m.width - 4

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(glamourStyle),
		glamour.WithWordWrap(m.viewport.Width-2),
	)
	if err != nil {
		m.logger.Warn("markdown renderer unavailable", zap.Error(err))
		r = nil
	}
	m.renderer = r
}

func (m *Model) markdown(content string) string {
	if m.renderer == nil {
		return content
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

func (m *Model) refresh() {
	m.viewport.SetContent(renderTranscript(m.ctrl.Store().Transcript(), m.partial, m.markdown))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	chat := chatPaneStyle.Width(m.viewport.Width).Render(m.viewport.View())
	side := sidebarStyle.
		Width(sidebarWidth).
		Height(m.viewport.Height).
		Render(renderSidebar(m.ctrl.Store().Bullets(), len(m.queue)))
	body := lipgloss.JoinHorizontal(lipgloss.Top, chat, side)

	status := m.status
	if m.streaming {
		status = m.spinner.View() + " " + status
	}
	statusLine := statusBarStyle.Render(status)
	if m.err != nil {
		statusLine += " " + errorStyle.Render(m.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, statusLine, m.input.View())
}
