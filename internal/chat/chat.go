// Package chat ties the conversation log, the renderers and the answer
// backend together for one session.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mwiater/docchat/internal/backend"
	"github.com/mwiater/docchat/internal/convlog"
	"github.com/mwiater/docchat/internal/display"
	"github.com/mwiater/docchat/internal/logging"
)

// ErrEmptyQuestion is returned for blank input.
var ErrEmptyQuestion = errors.New("question is empty")

// Session owns the conversation log of one chat session. It is not safe for
// concurrent use; the host drives it from a single goroutine.
type Session struct {
	log      *convlog.Log
	store    *convlog.Store
	answerer backend.Answerer
	opts     display.Options
	mode     display.Mode
	debug    bool
}

// Options configures a Session.
type Options struct {
	Mode    display.Mode
	Render  display.Options
	Debug   bool
	Store   *convlog.Store
	Backend backend.Answerer
}

// NewSession starts a session, restoring the saved log when a store is given.
func NewSession(opts Options) (*Session, error) {
	s := &Session{
		store:    opts.Store,
		answerer: opts.Backend,
		opts:     opts.Render,
		mode:     opts.Mode,
		debug:    opts.Debug,
	}
	if s.mode == "" {
		s.mode = display.ModeSearch
	}
	if s.store == nil {
		s.log = convlog.New()
		return s, nil
	}
	l, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	s.log = l
	return s, nil
}

// Mode returns the current mode.
func (s *Session) Mode() display.Mode { return s.mode }

// SetMode switches the mode used for the next answer.
func (s *Session) SetMode(mode display.Mode) { s.mode = mode }

// ToggleMode switches to the other mode and returns it.
func (s *Session) ToggleMode() display.Mode {
	s.mode = s.mode.Next()
	return s.mode
}

// Entries returns a copy of the conversation so far.
func (s *Session) Entries() []convlog.Entry {
	return s.log.Snapshot()
}

// SessionID identifies the current log.
func (s *Session) SessionID() string {
	return s.log.SessionID
}

// Submit records a user question.
func (s *Session) Submit(question string) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return ErrEmptyQuestion
	}
	s.log.AppendUser(question)
	return s.save()
}

// Fetch asks the backend without touching the session state, so it may run
// off the host goroutine.
func (s *Session) Fetch(ctx context.Context, mode display.Mode, question string) (display.Response, error) {
	if s.answerer == nil {
		return display.Response{}, backend.ErrNoEndpoint
	}
	return s.answerer.Ask(ctx, mode, question)
}

// Respond draws resp onto surface in the given mode and stores the resulting record.
func (s *Session) Respond(mode display.Mode, resp display.Response, surface display.Surface) (display.Content, error) {
	surface.BeginMessage(display.RoleAssistant)
	content, err := display.NewRenderer(surface, s.opts).Render(mode, resp)
	if err != nil {
		return nil, err
	}
	s.log.AppendAssistant(content)
	if s.debug {
		logging.LogEvent("[CHAT] session=%s mode=%s record=%s", s.log.SessionID, mode.Alias(), content)
	}
	return content, s.save()
}

// Ask submits question, fetches the answer and responds in the current mode.
func (s *Session) Ask(ctx context.Context, question string, surface display.Surface) (display.Content, error) {
	if err := s.Submit(question); err != nil {
		return nil, err
	}
	resp, err := s.Fetch(ctx, s.mode, strings.TrimSpace(question))
	if err != nil {
		return nil, fmt.Errorf("ask backend: %w", err)
	}
	return s.Respond(s.mode, resp, surface)
}

// Replay draws the whole conversation onto surface.
func (s *Session) Replay(surface display.Surface) {
	convlog.Replay(s.log.Entries, surface, s.opts)
}

// Reset clears the conversation and its saved copy.
func (s *Session) Reset() error {
	s.log.Reset()
	if s.store == nil {
		return nil
	}
	return s.store.Clear()
}

func (s *Session) save() error {
	if s.store == nil {
		return nil
	}
	return s.store.Save(s.log)
}
