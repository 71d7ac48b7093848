package main

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/muhammadolammi/bulletdoctor/internal/dialogue"
	"github.com/muhammadolammi/bulletdoctor/internal/llm"
	"github.com/muhammadolammi/bulletdoctor/internal/notify"
	"github.com/muhammadolammi/bulletdoctor/internal/resume"
	"github.com/muhammadolammi/bulletdoctor/internal/session"
	"github.com/muhammadolammi/bulletdoctor/internal/storage"
)

func envFrom(values map[string]string) func(string) string {
	return func(k string) string { return values[k] }
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(envFrom(map[string]string{"GOOGLE_API_KEY": "k"}), true)
	require.NoError(t, err)
	assert.Equal(t, "k", cfg.GoogleApiKey)
	assert.Equal(t, llm.DefaultModel, cfg.Model)
	assert.Equal(t, defaultLogFile, cfg.LogFile)
	assert.False(t, cfg.R2.Enabled())
}

func TestLoadConfigMissingKey(t *testing.T) {
	_, err := loadConfig(envFrom(nil), true)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = loadConfig(envFrom(nil), false)
	assert.NoError(t, err)
}

func TestLoadConfigPartialR2(t *testing.T) {
	_, err := loadConfig(envFrom(map[string]string{
		"GOOGLE_API_KEY": "k",
		"R2_BUCKET":      "resumes",
	}), true)
	assert.ErrorIs(t, err, storage.ErrIncompleteConfig)
}

func TestSystemPromptCarriesMarker(t *testing.T) {
	assert.Contains(t, prompt(), "BULLET READY:")
}

type replyProvider struct {
	replies []string
}

func (p *replyProvider) Stream(context.Context, []session.Message) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if len(p.replies) == 0 {
			yield("", errors.New("no more replies"))
			return
		}
		r := p.replies[0]
		p.replies = p.replies[1:]
		yield(r, nil)
	}
}

func newREPLController(t *testing.T, replies ...string) *dialogue.Controller {
	t.Helper()
	store := session.NewStore("repl")
	store.Init(prompt())
	ctrl := dialogue.New(store, &replyProvider{replies: replies}, notify.Nop{}, zaptest.NewLogger(t))
	ctrl.Start()
	return ctrl
}

func TestREPLConversation(t *testing.T) {
	ctrl := newREPLController(t,
		"How many people were on the team?",
		"BULLET READY: • Led a team",
		"BULLET READY: • Led 5 engineers to cut deploy time by 30%",
	)
	in := strings.NewReader(strings.Join([]string{
		"Backend engineer, fintech",
		"I sped up deploys",
		"a team",
		"5 people, 30% faster",
		"/reset",
		"/quit",
		"never read",
	}, "\n"))
	var out bytes.Buffer

	require.NoError(t, runREPL(context.Background(), ctrl, resume.NewLoader(nil), in, &out))

	text := out.String()
	assert.True(t, strings.HasPrefix(text, dialogue.RoleQuestion))
	assert.Contains(t, text, dialogue.Acknowledgement("Backend engineer, fintech"))
	assert.Contains(t, text, "How many people were on the team?")
	assert.Contains(t, text, dialogue.NeedNumber)
	assert.Contains(t, text, "Added to drafts (1): Led 5 engineers to cut deploy time by 30%")
	assert.Contains(t, text, "Bullets cleared.")
	assert.Empty(t, ctrl.Store().Bullets())
}

func TestREPLLoadAndNext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.txt")
	require.NoError(t, os.WriteFile(path, []byte("• Ran the on-call rotation\n"), 0o644))

	ctrl := newREPLController(t, "How often were you paged?")
	in := strings.NewReader("SRE\n/next\n/load " + path + "\n/next\n")
	var out bytes.Buffer

	require.NoError(t, runREPL(context.Background(), ctrl, resume.NewLoader(nil), in, &out))

	text := out.String()
	assert.Contains(t, text, "No queued rough points")
	assert.Contains(t, text, "Queued 1 rough points.")
	assert.Contains(t, text, "How often were you paged?")

	tr := ctrl.Store().Transcript()
	assert.Equal(t, "How often were you paged?", tr[len(tr)-1].Content)
	assert.Equal(t, "Ran the on-call rotation", tr[len(tr)-2].Content)
}

func TestREPLReportsProviderError(t *testing.T) {
	ctrl := newREPLController(t)
	var out bytes.Buffer

	err := runREPL(context.Background(), ctrl, resume.NewLoader(nil), strings.NewReader("PM\nhello\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "error: completion failed: no more replies")
}
