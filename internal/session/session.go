// Package session turns calculator action tokens into buffer edits,
// evaluations and history updates.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/vidyasagar/tcalc/internal/calc"
	"github.com/vidyasagar/tcalc/internal/history"
)

// Action tokens besides the printable characters.
const (
	ActionEvaluate  = "="
	ActionClear     = "clear"
	ActionBackspace = "backspace"
)

// InputChars are the characters appended to the buffer as-is.
const InputChars = "0123456789+-*/()."

// ErrUnknownAction is returned by Apply for tokens it does not recognise.
var ErrUnknownAction = errors.New("unknown action")

// Evaluator computes an arithmetic expression.
type Evaluator interface {
	Evaluate(expr string) (float64, error)
}

// Session is the calculator state: one buffer, one evaluator, one history log.
// It is not safe for concurrent use; the event loop owns it.
type Session struct {
	buf    Buffer
	eval   Evaluator
	log    history.Log
	logger zerolog.Logger

	// historyErr holds the last failure to record an entry, if any.
	historyErr error
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// New creates a session. A nil evaluator uses calc.Evaluator and a nil log
// uses an in-memory history.
func New(eval Evaluator, log history.Log, opts ...Option) *Session {
	if eval == nil {
		eval = calc.Evaluator{}
	}
	if log == nil {
		log = history.NewMemory()
	}
	s := &Session{
		eval:   eval,
		log:    log,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsInput reports whether token is appended to the buffer.
func IsInput(token string) bool {
	return len(token) == 1 && strings.Contains(InputChars, token)
}

// Apply processes one action token. Evaluation failures are returned as
// *calc.Error and leave the buffer untouched.
func (s *Session) Apply(token string) error {
	switch {
	case IsInput(token):
		s.buf.Append(rune(token[0]))
		return nil
	case token == ActionEvaluate:
		return s.Evaluate()
	case token == ActionClear:
		s.buf.Clear()
		return nil
	case token == ActionBackspace:
		s.buf.Backspace()
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, token)
	}
}

// Evaluate computes the buffer. On success the entry is recorded and the
// buffer holds the formatted result.
func (s *Session) Evaluate() error {
	expr := s.buf.String()
	if s.buf.State() == Empty {
		return &calc.Error{Kind: calc.KindEmptyExpression, Offset: -1}
	}

	v, err := s.eval.Evaluate(expr)
	if err != nil {
		return err
	}

	result := calc.Format(v)
	s.historyErr = s.log.Record(expr, result)
	if s.historyErr != nil {
		s.logger.Warn().Err(s.historyErr).Str("expression", expr).Msg("recording history entry")
	}
	s.buf.Set(result)
	return nil
}

// Display returns the entry field text.
func (s *Session) Display() string {
	return s.buf.String()
}

// Recall replaces the buffer with text, e.g. a past expression picked from
// the history panel.
func (s *Session) Recall(text string) {
	s.buf.Set(text)
}

// State reports the buffer state.
func (s *Session) State() State {
	return s.buf.State()
}

// Entries returns the history entries in recorded order.
func (s *Session) Entries() ([]history.Entry, error) {
	return s.log.List()
}

// History returns the history entries as display strings.
func (s *Session) History() ([]string, error) {
	entries, err := s.log.List()
	if err != nil {
		return nil, err
	}
	return history.Strings(entries), nil
}

// ClearHistory empties the history log.
func (s *Session) ClearHistory() error {
	if err := s.log.Clear(); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// HistoryErr returns the error from the most recent history write, if any.
func (s *Session) HistoryErr() error {
	return s.historyErr
}
