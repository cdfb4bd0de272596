package script

import (
	"image"
	"strings"
	"testing"

	"github.com/example/inkwell/internal/editor"
	"github.com/example/inkwell/internal/scene"
)

func newSession(t *testing.T) *editor.Session {
	t.Helper()
	s, err := editor.New(image.NewRGBA(image.Rect(0, 0, 200, 100)))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

const sample = `# brush then text
tool brush
brush-color red
stroke 10 10 40 40 80 20

tool text
click 120 60
type Hello\nworld
key escape
`

func TestRunSample(t *testing.T) {
	cmds, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cmds) != 7 {
		t.Fatalf("unexpected command count %d", len(cmds))
	}
	if cmds[0].Line != 2 {
		t.Fatalf("unexpected line %d, want 2", cmds[0].Line)
	}
	s := newSession(t)
	var seen []string
	if err := Run(s, cmds, func(c Command) { seen = append(seen, c.Name) }); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(seen) != len(cmds) {
		t.Fatalf("after called %d times, want %d", len(seen), len(cmds))
	}
	st := s.Scene()
	if len(st.Layers) != 2 {
		t.Fatalf("unexpected layer count %d", len(st.Layers))
	}
	if st.Layers[0].Brush == nil || st.Layers[0].Color != scene.ColorRed {
		t.Fatalf("unexpected brush layer %+v", st.Layers[0])
	}
	if got, want := st.Layers[1].Text.Text, "Hello"+scene.LineBreak+"world"; got != want {
		t.Fatalf("unexpected text %q, want %q", got, want)
	}
	if s.Editing() {
		t.Fatalf("still editing after escape")
	}
	if n := s.History().Len(); n != 3 {
		t.Fatalf("unexpected history length %d, want 3", n)
	}
}

func TestUndoRedo(t *testing.T) {
	cmds, err := Parse(strings.NewReader("tool brush\nstroke 10 10 50 50\nundo\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	s := newSession(t)
	if err := Run(s, cmds, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(s.Scene().Layers) != 0 {
		t.Fatalf("undo left %d layers", len(s.Scene().Layers))
	}
	if err := Exec(s, Command{Name: "redo"}); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if len(s.Scene().Layers) != 1 {
		t.Fatalf("redo restored %d layers", len(s.Scene().Layers))
	}
}

func TestSettings(t *testing.T) {
	s := newSession(t)
	for _, line := range []string{
		"filter Brightness 500",
		"format 1:1",
		"angle 190",
		"text-size 48",
		"font georgia",
		"brush-style neon",
	} {
		c, err := ParseLine(line)
		if err != nil {
			t.Fatalf("parse %q: %v", line, err)
		}
		if err := Exec(s, c); err != nil {
			t.Fatalf("exec %q: %v", line, err)
		}
	}
	st := s.Scene()
	if v := st.Filter(scene.FilterBrightness); v != 100 {
		t.Fatalf("unexpected brightness %v, want clamp to 100", v)
	}
	if st.Cropper.Format != scene.FormatSquare {
		t.Fatalf("unexpected format %q", st.Cropper.Format)
	}
	if st.Cropper.Angle != -170 {
		t.Fatalf("unexpected angle %v, want -170", st.Cropper.Angle)
	}
	if st.Text.Size != 48 || st.Text.Font != scene.FontGeorgia {
		t.Fatalf("unexpected text settings %+v", st.Text)
	}
	if st.Brush.Style != scene.BrushNeon || st.Brush.Color != scene.BrushNeon.DefaultColor() {
		t.Fatalf("unexpected brush settings %+v", st.Brush)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"bogus", "line 1: unknown command"},
		{"tool", "line 1: tool: needs at least 1"},
		{"\npress 1", "line 2: press: needs at least 2"},
		{"stroke 1 2 3", "needs at least 4"},
		{"stroke 1 2 3 4 5", "needs x y pairs"},
		{"undo now", "takes at most 0"},
	}
	for _, tc := range tests {
		_, err := Parse(strings.NewReader(tc.input))
		if err == nil {
			t.Fatalf("%q: expected error", tc.input)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%q: unexpected error %v, want %q", tc.input, err, tc.want)
		}
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"type hi", "line 1: type: no text layer"},
		{"filter blur 5", "unknown filter"},
		{"tool paint", "unknown tool"},
		{"key ctrl q", "unknown key"},
		{"brush-color nope", "invalid color"},
		{"ratio 0", "ratio must be positive"},
		{"click a b", "invalid number"},
	}
	for _, tc := range tests {
		cmds, err := Parse(strings.NewReader(tc.input))
		if err != nil {
			t.Fatalf("%q: parse: %v", tc.input, err)
		}
		err = Run(newSession(t), cmds, nil)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%q: unexpected error %v, want %q", tc.input, err, tc.want)
		}
	}
}

func TestTypeKeepsSpaces(t *testing.T) {
	c, err := ParseLine("type  two  words ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(c.Args) != 1 || c.Args[0] != "two  words" {
		t.Fatalf("unexpected args %q", c.Args)
	}
}
