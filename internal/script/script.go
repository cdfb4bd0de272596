// Package script replays line-oriented edit commands against a Session.
// Each line is a command name followed by space separated arguments; blank
// lines and lines starting with '#' are skipped.
//
//	tool brush
//	brush-color red
//	stroke 10 10 40 40 80 20
//	tool text
//	click 120 60
//	type Hello\nworld
//	key escape
package script

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/mobile/event/key"

	"github.com/example/inkwell/internal/config"
	"github.com/example/inkwell/internal/editor"
	"github.com/example/inkwell/internal/geometry"
	"github.com/example/inkwell/internal/scene"
)

// Command is one parsed script line.
type Command struct {
	Line int
	Name string
	Args []string
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Parse reads commands from r. Unknown commands and wrong argument counts
// are reported with their line number.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cmd, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		cmd.Line = n
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cmds, nil
}

// ParseLine parses a single command.
func ParseLine(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}
	cmd := Command{Name: strings.ToLower(fields[0]), Args: fields[1:]}
	if cmd.Name == "type" {
		// keep the text verbatim, spaces included
		rest := strings.TrimSpace(line[len(fields[0]):])
		cmd.Args = []string{rest}
	}
	h, ok := commands[cmd.Name]
	if !ok {
		return Command{}, fmt.Errorf("unknown command %q", cmd.Name)
	}
	if err := h.check(cmd.Args); err != nil {
		return Command{}, fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return cmd, nil
}

type arity struct {
	min, max int // max < 0 means unbounded
	even     bool
}

func (a arity) check(args []string) error {
	switch {
	case len(args) < a.min:
		return fmt.Errorf("needs at least %d arguments", a.min)
	case a.max >= 0 && len(args) > a.max:
		return fmt.Errorf("takes at most %d arguments", a.max)
	case a.even && len(args)%2 != 0:
		return fmt.Errorf("needs x y pairs")
	}
	return nil
}

type handler struct {
	arity
	run func(s *editor.Session, args []string) error
}

var commands = map[string]handler{
	"tool":          {arity{1, 1, false}, runTool},
	"press":         {arity{2, 2, true}, pointer((*editor.Session).Press)},
	"move":          {arity{2, 2, true}, pointer((*editor.Session).Drag)},
	"release":       {arity{2, 2, true}, pointer((*editor.Session).Release)},
	"click":         {arity{2, 2, true}, runClick},
	"stroke":        {arity{4, -1, true}, runStroke},
	"type":          {arity{1, 1, false}, runType},
	"key":           {arity{1, -1, false}, runKey},
	"delete":        {arity{0, 0, false}, func(s *editor.Session, _ []string) error { s.DeleteSelected(); return nil }},
	"undo":          {arity{0, 0, false}, func(s *editor.Session, _ []string) error { s.Undo(); return nil }},
	"redo":          {arity{0, 0, false}, func(s *editor.Session, _ []string) error { s.Redo(); return nil }},
	"commit":        {arity{0, 0, false}, func(s *editor.Session, _ []string) error { s.Flush(); return nil }},
	"ratio":         {arity{1, 1, false}, runRatio},
	"filter":        {arity{2, 2, false}, runFilter},
	"reset-filters": {arity{0, 0, false}, func(s *editor.Session, _ []string) error { s.ResetFilters(); return nil }},
	"format":        {arity{1, 1, false}, runFormat},
	"angle":         {arity{1, 1, false}, runAngle},
	"rotate":        {arity{0, 0, false}, func(s *editor.Session, _ []string) error { s.RotateCrop(); return nil }},
	"mirror":        {arity{0, 0, false}, func(s *editor.Session, _ []string) error { s.ToggleMirror(); return nil }},
	"text-color":    {arity{1, 1, false}, colorSetter((*editor.Session).SetTextColor)},
	"font":          {arity{1, 1, false}, runFont},
	"text-size":     {arity{1, 1, false}, numberSetter((*editor.Session).SetTextSize)},
	"align":         {arity{1, 1, false}, runAlign},
	"frame":         {arity{1, 1, false}, runFrame},
	"brush-style":   {arity{1, 1, false}, runBrushStyle},
	"brush-color":   {arity{1, 1, false}, colorSetter((*editor.Session).SetBrushColor)},
	"brush-size":    {arity{1, 1, false}, numberSetter((*editor.Session).SetBrushSize)},
	"sticker":       {arity{1, 1, false}, runSticker},
}

// Names lists the supported commands.
func Names() []string {
	out := make([]string, 0, len(commands))
	for name := range commands {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Run executes cmds in order and settles any pending commit at the end.
// after, when set, is called once each command has been applied.
func Run(s *editor.Session, cmds []Command, after func(Command)) error {
	for _, c := range cmds {
		if err := Exec(s, c); err != nil {
			if c.Line > 0 {
				return fmt.Errorf("line %d: %s: %w", c.Line, c.Name, err)
			}
			return fmt.Errorf("%s: %w", c.Name, err)
		}
		if after != nil {
			after(c)
		}
	}
	s.Flush()
	return nil
}

// Exec applies a single command.
func Exec(s *editor.Session, c Command) error {
	h, ok := commands[c.Name]
	if !ok {
		return fmt.Errorf("unknown command %q", c.Name)
	}
	if err := h.check(c.Args); err != nil {
		return err
	}
	return h.run(s, c.Args)
}

func points(args []string) ([]geometry.Point, error) {
	vals := make([]float64, len(args))
	for i, raw := range args {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", raw)
		}
		vals[i] = v
	}
	pts := make([]geometry.Point, 0, len(vals)/2)
	for i := 0; i+1 < len(vals); i += 2 {
		pts = append(pts, geometry.Pt(vals[i], vals[i+1]))
	}
	return pts, nil
}

func number(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	return v, nil
}

func pointer(fn func(*editor.Session, geometry.Point)) func(*editor.Session, []string) error {
	return func(s *editor.Session, args []string) error {
		pts, err := points(args)
		if err != nil {
			return err
		}
		fn(s, pts[0])
		return nil
	}
}

func numberSetter(fn func(*editor.Session, float64)) func(*editor.Session, []string) error {
	return func(s *editor.Session, args []string) error {
		v, err := number(args[0])
		if err != nil {
			return err
		}
		fn(s, v)
		return nil
	}
}

func colorSetter(fn func(*editor.Session, scene.Color)) func(*editor.Session, []string) error {
	return func(s *editor.Session, args []string) error {
		c, err := config.ResolveColor(args[0])
		if err != nil {
			return err
		}
		fn(s, c)
		return nil
	}
}

func runTool(s *editor.Session, args []string) error {
	t, err := editor.ParseTool(args[0])
	if err != nil {
		return err
	}
	s.SetTool(t)
	return nil
}

func runClick(s *editor.Session, args []string) error {
	pts, err := points(args)
	if err != nil {
		return err
	}
	s.Press(pts[0])
	s.Release(pts[0])
	return nil
}

func runStroke(s *editor.Session, args []string) error {
	pts, err := points(args)
	if err != nil {
		return err
	}
	s.Press(pts[0])
	for _, p := range pts[1:] {
		s.Drag(p)
	}
	s.Release(pts[len(pts)-1])
	return nil
}

func runType(s *editor.Session, args []string) error {
	text := strings.ReplaceAll(args[0], `\n`, "\n")
	if !s.TypeText(text) {
		return fmt.Errorf("no text layer is being edited")
	}
	return nil
}

var keyCodes = map[string]key.Code{
	"escape":    key.CodeEscape,
	"backspace": key.CodeDeleteBackspace,
	"delete":    key.CodeDeleteForward,
	"enter":     key.CodeReturnEnter,
	"left":      key.CodeLeftArrow,
	"right":     key.CodeRightArrow,
	"z":         key.CodeZ,
	"y":         key.CodeY,
}

var keyModifiers = map[string]key.Modifiers{
	"ctrl":  key.ModControl,
	"shift": key.ModShift,
	"meta":  key.ModMeta,
}

// runKey sends a key press, for example "key escape" or "key ctrl z".
func runKey(s *editor.Session, args []string) error {
	var e key.Event
	e.Direction = key.DirPress
	e.Rune = -1
	for _, a := range args[:len(args)-1] {
		m, ok := keyModifiers[strings.ToLower(a)]
		if !ok {
			return fmt.Errorf("unknown modifier %q", a)
		}
		e.Modifiers |= m
	}
	name := strings.ToLower(args[len(args)-1])
	code, ok := keyCodes[name]
	if !ok {
		return fmt.Errorf("unknown key %q", name)
	}
	e.Code = code
	s.Key(e)
	return nil
}

func runRatio(s *editor.Session, args []string) error {
	v, err := number(args[0])
	if err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("ratio must be positive")
	}
	s.SetRatio(v)
	return nil
}

func runFilter(s *editor.Session, args []string) error {
	f, ok := scene.LookupFilter(scene.FilterKind(strings.ToLower(args[0])))
	if !ok {
		return fmt.Errorf("unknown filter %q", args[0])
	}
	v, err := number(args[1])
	if err != nil {
		return err
	}
	s.SetFilter(f.Kind, f.Clamp(v))
	return nil
}

func runFormat(s *editor.Session, args []string) error {
	f, err := scene.ParseFormat(args[0])
	if err != nil {
		return err
	}
	s.SetCropFormat(f)
	return nil
}

func runAngle(s *editor.Session, args []string) error {
	v, err := number(args[0])
	if err != nil {
		return err
	}
	s.SetCropAngle(v)
	return nil
}

func runFont(s *editor.Session, args []string) error {
	f, err := oneOf(args[0], scene.Fonts())
	if err != nil {
		return err
	}
	s.SetTextFont(f)
	return nil
}

func runAlign(s *editor.Session, args []string) error {
	a, err := oneOf(args[0], []scene.Align{scene.AlignLeft, scene.AlignCenter, scene.AlignRight})
	if err != nil {
		return err
	}
	s.SetTextAlign(a)
	return nil
}

func runFrame(s *editor.Session, args []string) error {
	f, err := oneOf(args[0], []scene.Frame{scene.FrameNone, scene.FrameBlack, scene.FrameWhite})
	if err != nil {
		return err
	}
	s.SetTextFrame(f)
	return nil
}

func runBrushStyle(s *editor.Session, args []string) error {
	st, err := oneOf(args[0], scene.BrushStyles())
	if err != nil {
		return err
	}
	s.SetBrushStyle(st)
	return nil
}

func runSticker(s *editor.Session, args []string) error {
	_, err := s.AddStickerFile(args[0])
	return err
}

func oneOf[T ~string](raw string, allowed []T) (T, error) {
	for _, v := range allowed {
		if strings.EqualFold(raw, string(v)) {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown value %q", raw)
}
