// Package feedback provides the click sound played on keystrokes.
package feedback

import (
	"io"
	"strings"
	"time"
)

// SoundingChars are the keys that produce a click.
const SoundingChars = "0123456789+-*/()."

// DefaultRepeatWindow suppresses auto-repeat of a held key.
const DefaultRepeatWindow = 250 * time.Millisecond

// Beeper plays a short click. Implementations must not block.
type Beeper interface {
	Beep()
}

// Bell rings the terminal bell.
type Bell struct {
	W io.Writer
}

// Beep writes BEL to the terminal. Errors are ignored.
func (b Bell) Beep() {
	if b.W == nil {
		return
	}
	b.W.Write([]byte{'\a'})
}

// Silent is a Beeper that does nothing.
type Silent struct{}

// Beep does nothing.
func (Silent) Beep() {}

// Sounds reports whether token produces a click.
func Sounds(token string) bool {
	return len(token) == 1 && strings.Contains(SoundingChars, token)
}

// Debouncer suppresses repeated clicks while a key is held. The terminal
// delivers no key-release events, so a repeat of the same key within the
// window counts as held; Release clears the tracker explicitly.
type Debouncer struct {
	window  time.Duration
	lastKey string
	lastAt  time.Time
}

// NewDebouncer creates a debouncer. A non-positive window uses
// DefaultRepeatWindow.
func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultRepeatWindow
	}
	return &Debouncer{window: window}
}

// Press records a key press at the given time and reports whether its click
// should play.
func (d *Debouncer) Press(token string, at time.Time) bool {
	if !Sounds(token) {
		d.Release()
		return false
	}
	held := token == d.lastKey && at.Sub(d.lastAt) < d.window
	d.lastKey = token
	d.lastAt = at
	return !held
}

// Release forgets the last key, so the next press always clicks.
func (d *Debouncer) Release() {
	d.lastKey = ""
	d.lastAt = time.Time{}
}

// LastKey returns the tracked key, or "" after a release.
func (d *Debouncer) LastKey() string {
	return d.lastKey
}
