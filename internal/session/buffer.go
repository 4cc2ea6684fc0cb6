package session

// State is the expression buffer state.
type State int

const (
	Empty State = iota
	NonEmpty
)

func (s State) String() string {
	if s == Empty {
		return "empty"
	}
	return "non-empty"
}

// Buffer holds the text composed in the entry field.
type Buffer struct {
	runes []rune
}

// Append adds r at the end.
func (b *Buffer) Append(r rune) {
	b.runes = append(b.runes, r)
}

// Backspace removes the last rune. No-op when empty.
func (b *Buffer) Backspace() {
	if len(b.runes) == 0 {
		return
	}
	b.runes = b.runes[:len(b.runes)-1]
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.runes = b.runes[:0]
}

// Set replaces the contents.
func (b *Buffer) Set(s string) {
	b.runes = append(b.runes[:0], []rune(s)...)
}

// String returns the buffer contents.
func (b *Buffer) String() string {
	return string(b.runes)
}

// Len returns the number of runes.
func (b *Buffer) Len() int {
	return len(b.runes)
}

// State reports Empty or NonEmpty.
func (b *Buffer) State() State {
	if len(b.runes) == 0 {
		return Empty
	}
	return NonEmpty
}
