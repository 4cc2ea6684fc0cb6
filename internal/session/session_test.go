package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidyasagar/tcalc/internal/calc"
	"github.com/vidyasagar/tcalc/internal/history"
)

func applyAll(t *testing.T, s *Session, tokens ...string) {
	t.Helper()
	for _, tok := range tokens {
		require.NoError(t, s.Apply(tok), "token %q", tok)
	}
}

func typeExpr(t *testing.T, s *Session, expr string) {
	t.Helper()
	for _, r := range expr {
		require.NoError(t, s.Apply(string(r)))
	}
}

func TestBufferTransitions(t *testing.T) {
	var b Buffer
	assert.Equal(t, Empty, b.State())

	b.Backspace()
	assert.Equal(t, Empty, b.State(), "backspace on empty is a no-op")
	assert.Equal(t, "", b.String())

	b.Append('1')
	b.Append('+')
	assert.Equal(t, NonEmpty, b.State())
	assert.Equal(t, "1+", b.String())

	b.Backspace()
	assert.Equal(t, "1", b.String())
	b.Backspace()
	assert.Equal(t, Empty, b.State())

	b.Set("42")
	assert.Equal(t, 2, b.Len())
	b.Clear()
	assert.Equal(t, Empty, b.State())
}

func TestApplyEvaluate(t *testing.T) {
	s := New(nil, nil)
	typeExpr(t, s, "2+3*4")
	assert.Equal(t, "2+3*4", s.Display())

	require.NoError(t, s.Apply(ActionEvaluate))
	assert.Equal(t, "14", s.Display())

	hist, err := s.History()
	require.NoError(t, err)
	assert.Equal(t, []string{"2+3*4 = 14"}, hist)
}

func TestEvaluateEmptyBuffer(t *testing.T) {
	s := New(nil, nil)
	err := s.Apply(ActionEvaluate)
	assert.ErrorIs(t, err, calc.ErrEmptyExpression)
	assert.Equal(t, Empty, s.State())

	entries, _ := s.Entries()
	assert.Empty(t, entries)
}

func TestFailedEvaluationLeavesBuffer(t *testing.T) {
	tests := []struct {
		expr string
		want error
	}{
		{"5/0", calc.ErrDivisionByZero},
		{"2++", calc.ErrInvalidExpression},
		{"(1+2", calc.ErrInvalidExpression},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			s := New(nil, nil)
			typeExpr(t, s, tt.expr)

			err := s.Apply(ActionEvaluate)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.expr, s.Display())

			entries, _ := s.Entries()
			assert.Empty(t, entries, "failed evaluations are never recorded")
		})
	}
}

func TestHistoryMatchesSuccessfulEvaluations(t *testing.T) {
	s := New(nil, nil)
	exprs := []string{"1+1", "5/0", "2*3", "(", "10-4"}
	var want []history.Entry
	for _, e := range exprs {
		applyAll(t, s, ActionClear)
		typeExpr(t, s, e)
		if err := s.Apply(ActionEvaluate); err == nil {
			want = append(want, history.Entry{Expression: e, Result: s.Display()})
		}
	}

	entries, err := s.Entries()
	require.NoError(t, err)
	require.Len(t, entries, len(want))
	for i := range want {
		assert.Equal(t, want[i].Expression, entries[i].Expression)
		assert.Equal(t, want[i].Result, entries[i].Result)
	}
	assert.Equal(t, []string{"2", "6", "6"}, []string{entries[0].Result, entries[1].Result, entries[2].Result})
}

func TestClearHistory(t *testing.T) {
	s := New(nil, nil)
	typeExpr(t, s, "1+2")
	applyAll(t, s, ActionEvaluate)

	require.NoError(t, s.ClearHistory())
	hist, err := s.History()
	require.NoError(t, err)
	assert.Empty(t, hist)
	assert.Equal(t, "3", s.Display(), "clearing history does not touch the buffer")
}

func TestReevaluateResultIsStable(t *testing.T) {
	s := New(nil, nil)
	typeExpr(t, s, "2+3*4")
	applyAll(t, s, ActionEvaluate, ActionEvaluate)
	assert.Equal(t, "14", s.Display())

	entries, _ := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "14", entries[1].Expression)
	assert.Equal(t, "14", entries[1].Result)
}

func TestBackspaceAndClear(t *testing.T) {
	s := New(nil, nil)
	applyAll(t, s, ActionBackspace)
	assert.Equal(t, Empty, s.State())

	typeExpr(t, s, "12")
	applyAll(t, s, ActionBackspace)
	assert.Equal(t, "1", s.Display())

	applyAll(t, s, ActionClear)
	assert.Equal(t, "", s.Display())
}

func TestAppendAfterResult(t *testing.T) {
	s := New(nil, nil)
	typeExpr(t, s, "2*3")
	applyAll(t, s, ActionEvaluate, "+", "1", ActionEvaluate)
	assert.Equal(t, "7", s.Display())
}

func TestUnknownAction(t *testing.T) {
	s := New(nil, nil)
	err := s.Apply("x")
	assert.ErrorIs(t, err, ErrUnknownAction)
	err = s.Apply("")
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Equal(t, Empty, s.State())
}

func TestRecall(t *testing.T) {
	s := New(nil, nil)
	s.Recall("7*6")
	applyAll(t, s, ActionEvaluate)
	assert.Equal(t, "42", s.Display())
}

type failingLog struct{ history.Memory }

func (f *failingLog) Record(string, string) error { return errors.New("disk full") }

func TestHistoryWriteFailureKeepsResult(t *testing.T) {
	s := New(calc.Evaluator{}, &failingLog{})
	typeExpr(t, s, "1+1")
	require.NoError(t, s.Apply(ActionEvaluate))
	assert.Equal(t, "2", s.Display())
	assert.EqualError(t, s.HistoryErr(), "disk full")
}

func TestIsInput(t *testing.T) {
	for _, r := range InputChars {
		assert.True(t, IsInput(string(r)))
	}
	assert.False(t, IsInput("="))
	assert.False(t, IsInput("12"))
	assert.False(t, IsInput("a"))
}
