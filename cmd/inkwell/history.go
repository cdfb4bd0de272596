package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/example/inkwell/internal/editor"
	"github.com/example/inkwell/internal/history"
	"github.com/example/inkwell/internal/script"
)

var stdout io.Writer = os.Stdout

var (
	diffDelLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	diffAddLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	faint       = lipgloss.NewStyle().Faint(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
)

// historyCmd replays a script and prints what each commit changed.
type historyCmd struct {
	*root
	fs *flag.FlagSet

	input   inputFlags
	script  scriptFlags
	file    string
	plain   bool
	context bool
}

func (h *historyCmd) FlagSet() *flag.FlagSet {
	return h.fs
}

func (h *historyCmd) Program() string {
	if h.root == nil {
		return "inkwell history"
	}
	return h.root.subcommand("history")
}

func parseHistoryCmd(args []string, r *root) (*historyCmd, error) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	h := &historyCmd{root: r, fs: fs}
	fs.Usage = usageFunc(h)
	h.input.register(fs)
	h.script.register(fs)
	fs.BoolVar(&h.plain, "plain", false, "do not color the output")
	fs.BoolVar(&h.context, "context", false, "show unchanged lines too")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		return nil, &UsageError{of: h}
	}
	h.file = fs.Arg(0)
	if err := h.input.validate(h.file); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *historyCmd) Run() error {
	labels := map[int]string{}
	last := 1
	s, _, err := replay(h.root, &h.input, h.file, &h.script, func(s *editor.Session, c script.Command) {
		if n := s.History().Len(); n > last {
			labels[n-1] = c.String()
		}
		last = s.History().Len()
	})
	if err != nil {
		return err
	}
	defer s.Close()

	hist := s.History()
	prev, _ := hist.Snapshot(0)
	for i := 1; i < hist.Len(); i++ {
		cur, _ := hist.Snapshot(i)
		lines, err := history.Diff(prev, cur)
		if err != nil {
			return err
		}
		title := fmt.Sprintf("commit %d", i)
		if l, ok := labels[i]; ok {
			title += ": " + l
		}
		if !h.plain {
			title = headerStyle.Render(title)
		}
		fmt.Fprintln(stdout, title)
		fmt.Fprint(stdout, renderDiff(lines, h.plain, h.context))
		prev = cur
	}
	if hist.CanRedo() {
		fmt.Fprintln(stdout, "(undone commits are not shown)")
	}
	return nil
}

// renderDiff formats diff lines with -/+ markers. Unchanged lines are
// dropped unless context is set.
func renderDiff(lines []history.Line, plain, context bool) string {
	if !history.Changed(lines) {
		return "  no changes\n"
	}
	style := func(s lipgloss.Style, text string) string {
		if plain {
			return text
		}
		return s.Render(text)
	}
	var sb strings.Builder
	for _, l := range lines {
		switch l.Op {
		case history.Delete:
			sb.WriteString(style(diffDelLine, "- "+l.Text))
		case history.Insert:
			sb.WriteString(style(diffAddLine, "+ "+l.Text))
		default:
			if !context || strings.TrimSpace(l.Text) == "" {
				continue
			}
			sb.WriteString(style(faint, "  "+l.Text))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
