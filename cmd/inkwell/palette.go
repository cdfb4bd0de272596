package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/example/inkwell/internal/scene"
	"github.com/example/inkwell/internal/theme"
)

// paletteCmd lists the choices offered by the editor settings bars.
type paletteCmd struct {
	*root
	fs    *flag.FlagSet
	plain bool
}

func (p *paletteCmd) FlagSet() *flag.FlagSet {
	return p.fs
}

func (p *paletteCmd) Program() string {
	if p.root == nil {
		return "inkwell palette"
	}
	return p.root.subcommand("palette")
}

func parsePaletteCmd(args []string, r *root) (*paletteCmd, error) {
	fs := flag.NewFlagSet("palette", flag.ExitOnError)
	p := &paletteCmd{root: r, fs: fs}
	fs.Usage = usageFunc(p)
	fs.BoolVar(&p.plain, "plain", false, "do not draw color swatches")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: p}
	}
	return p, nil
}

func (p *paletteCmd) swatch(c scene.Color) string {
	if p.plain {
		return ""
	}
	hex := string(scene.HexColor(c.RGBA()))
	if len(hex) > 7 {
		hex = hex[:7]
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("    ") + " "
}

func (p *paletteCmd) Run() error {
	fmt.Fprint(stdout, p.render())
	return nil
}

func (p *paletteCmd) render() string {
	var sb strings.Builder
	heading := func(s string) {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		if !p.plain {
			s = headerStyle.Render(s)
		}
		sb.WriteString(s + "\n")
	}

	heading("colors")
	for _, c := range scene.Palette() {
		fmt.Fprintf(&sb, "  %s%-10s %s\n", p.swatch(c.Color), c.Name, c.Color)
	}

	heading("brush styles")
	for _, s := range scene.BrushStyles() {
		fmt.Fprintf(&sb, "  %s%-10s default %s\n", p.swatch(s.DefaultColor()), s, s.DefaultColor())
	}

	heading("fonts")
	for _, f := range scene.Fonts() {
		fmt.Fprintf(&sb, "  %s\n", f)
	}

	heading("filters")
	for _, f := range scene.Filters() {
		fmt.Fprintf(&sb, "  %-10s %g..%g\n", f.Kind, f.Min, f.Max)
	}

	heading("crop formats")
	formats := make([]string, 0, len(scene.Formats()))
	for _, f := range scene.Formats() {
		formats = append(formats, string(f))
	}
	fmt.Fprintf(&sb, "  %s\n", strings.Join(formats, " "))

	heading("themes")
	names := theme.Names()
	if p.root != nil && p.root.config != nil {
		var extra []string
		for name := range p.root.config.Themes {
			extra = append(extra, name+" (config)")
		}
		sort.Strings(extra)
		names = append(names, extra...)
	}
	for _, name := range names {
		fmt.Fprintf(&sb, "  %s\n", name)
	}
	return sb.String()
}
