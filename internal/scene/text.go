package scene

import (
	"strings"
	"unicode/utf8"
)

// LineBreak separates lines inside a text layer. It is two characters wide
// and is always inserted, deleted and stepped over as one unit.
const LineBreak = "/n"

const lineBreakLen = 2

// Lines splits text on LineBreak.
func Lines(text string) []string {
	return strings.Split(text, LineBreak)
}

// RuneLen returns the length of s in runes.
func RuneLen(s string) int { return utf8.RuneCountInString(s) }

func (t *TextData) runes() []rune { return []rune(t.Text) }

func (t *TextData) clampCursor(n int) {
	if t.Cursor < 0 {
		t.Cursor = 0
	}
	if t.Cursor > n {
		t.Cursor = n
	}
}

// breakBefore reports whether the two runes before i form a line break.
func breakBefore(r []rune, i int) bool {
	return i >= lineBreakLen && string(r[i-lineBreakLen:i]) == LineBreak
}

// breakAfter reports whether the two runes at i form a line break.
func breakAfter(r []rune, i int) bool {
	return i+lineBreakLen <= len(r) && string(r[i:i+lineBreakLen]) == LineBreak
}

// Insert splices s at the cursor and advances past it.
func (t *TextData) Insert(s string) {
	r := t.runes()
	t.clampCursor(len(r))
	ins := []rune(s)
	out := make([]rune, 0, len(r)+len(ins))
	out = append(out, r[:t.Cursor]...)
	out = append(out, ins...)
	out = append(out, r[t.Cursor:]...)
	t.Text = string(out)
	t.Cursor += len(ins)
}

// NewLine inserts a line break at the cursor.
func (t *TextData) NewLine() { t.Insert(LineBreak) }

// Backspace removes the rune before the cursor, or the whole line break when
// the cursor sits right after one.
func (t *TextData) Backspace() {
	r := t.runes()
	t.clampCursor(len(r))
	if t.Cursor == 0 {
		return
	}
	n := 1
	if breakBefore(r, t.Cursor) {
		n = lineBreakLen
	}
	t.Text = string(append(r[:t.Cursor-n:t.Cursor-n], r[t.Cursor:]...))
	t.Cursor -= n
}

// Left moves the cursor back one rune or over a whole line break.
func (t *TextData) Left() {
	r := t.runes()
	t.clampCursor(len(r))
	if breakBefore(r, t.Cursor) {
		t.Cursor -= lineBreakLen
	} else {
		t.Cursor--
	}
	t.clampCursor(len(r))
}

// Right moves the cursor forward one rune or over a whole line break.
func (t *TextData) Right() {
	r := t.runes()
	t.clampCursor(len(r))
	if breakAfter(r, t.Cursor) {
		t.Cursor += lineBreakLen
	} else {
		t.Cursor++
	}
	t.clampCursor(len(r))
}

// CursorLine returns the line the cursor is on and the rune offset within it.
func (t *TextData) CursorLine() (line, col int) {
	r := t.runes()
	c := t.Cursor
	if c > len(r) {
		c = len(r)
	}
	if c < 0 {
		c = 0
	}
	before := string(r[:c])
	line = strings.Count(before, LineBreak)
	if i := strings.LastIndex(before, LineBreak); i >= 0 {
		before = before[i+len(LineBreak):]
	}
	return line, RuneLen(before)
}
