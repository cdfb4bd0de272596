package scene

import "testing"

func TestTextEditRoundTrip(t *testing.T) {
	td := &TextData{}
	td.Insert("a")
	td.Insert("b")
	td.Backspace()
	td.Left()
	td.Insert("c")
	if td.Text != "ca" || td.Cursor != 1 {
		t.Fatalf("unexpected text %q cursor %d, want \"ca\" 1", td.Text, td.Cursor)
	}
}

func TestLineBreakIsAtomic(t *testing.T) {
	td := &TextData{}
	td.Insert("ab")
	td.NewLine()
	td.Insert("c")
	if td.Text != "ab/nc" || td.Cursor != 5 {
		t.Fatalf("unexpected text %q cursor %d", td.Text, td.Cursor)
	}

	td.Left()
	if td.Cursor != 4 {
		t.Fatalf("unexpected cursor %d, want 4", td.Cursor)
	}
	td.Left()
	if td.Cursor != 2 {
		t.Fatalf("left over break: cursor %d, want 2", td.Cursor)
	}
	td.Right()
	if td.Cursor != 4 {
		t.Fatalf("right over break: cursor %d, want 4", td.Cursor)
	}
	td.Backspace()
	if td.Text != "abc" || td.Cursor != 2 {
		t.Fatalf("unexpected text %q cursor %d after backspace", td.Text, td.Cursor)
	}
}

func TestCursorClamps(t *testing.T) {
	td := &TextData{Text: "hé"}
	td.Left()
	if td.Cursor != 0 {
		t.Fatalf("unexpected cursor %d, want 0", td.Cursor)
	}
	td.Backspace()
	if td.Text != "hé" {
		t.Fatalf("backspace at start changed text to %q", td.Text)
	}
	for i := 0; i < 5; i++ {
		td.Right()
	}
	if td.Cursor != 2 {
		t.Fatalf("unexpected cursor %d, want 2", td.Cursor)
	}
	td.Backspace()
	if td.Text != "h" || td.Cursor != 1 {
		t.Fatalf("unexpected text %q cursor %d", td.Text, td.Cursor)
	}
}

func TestCursorLine(t *testing.T) {
	td := &TextData{Text: "one/ntwo/nx", Cursor: 7}
	line, col := td.CursorLine()
	if line != 1 || col != 2 {
		t.Fatalf("unexpected position %d:%d, want 1:2", line, col)
	}
	if got := Lines(td.Text); len(got) != 3 || got[2] != "x" {
		t.Fatalf("unexpected lines %q", got)
	}
}
