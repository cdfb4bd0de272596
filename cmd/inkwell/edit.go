package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/inkwell/internal/appstate"
	"github.com/example/inkwell/internal/config"
	"github.com/example/inkwell/internal/editor"
	"github.com/example/inkwell/internal/sticker"
)

// editCmd opens the editor window.
type editCmd struct {
	*root
	fs *flag.FlagSet

	input     inputFlags
	file      string
	output    string
	exportDir string
	format    string
	tool      string
	stickers  commandList
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func (e *editCmd) Program() string {
	return e.root.subcommand("edit")
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	e.input.register(fs)
	exportDir, format := "", config.FormatPNG
	if r != nil && r.config != nil {
		exportDir, format = r.config.ExportDir, r.config.ExportFormat
	}
	fs.StringVar(&e.output, "output", "", "file written on save (default: a timestamped file in -dir)")
	fs.StringVar(&e.exportDir, "dir", exportDir, "directory for timestamped exports")
	fs.StringVar(&e.format, "format", format, "export format: png or jpeg")
	fs.StringVar(&e.tool, "tool", editor.ToolFilters.String(), "tool selected at start")
	fs.Var(&e.stickers, "sticker", "image file offered in the sticker picker (repeatable)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		return nil, &UsageError{of: e}
	}
	e.file = fs.Arg(0)
	if err := e.input.validate(e.file); err != nil {
		return nil, err
	}
	f, err := config.ParseFormat(e.format)
	if err != nil {
		return nil, err
	}
	e.format = f
	return e, nil
}

func (e *editCmd) Run() error {
	tool, err := editor.ParseTool(e.tool)
	if err != nil {
		return err
	}
	img, _, err := e.input.load(e.root, e.file)
	if err != nil {
		return err
	}
	cache := sticker.NewCache()
	for _, path := range e.stickers {
		if _, _, err := cache.LoadFile(path); err != nil {
			return fmt.Errorf("sticker %s: %w", path, err)
		}
	}
	opts := append(sessionOptions(e.root.config), editor.WithTool(tool), editor.WithStickers(cache))
	state := appstate.New(
		appstate.WithImage(img),
		appstate.WithOutput(e.output),
		appstate.WithExportDir(e.exportDir),
		appstate.WithFormat(e.format),
		appstate.WithTheme(e.root.activeTheme),
		appstate.WithNotifier(e.root.notifier),
		appstate.WithEditorOptions(opts...),
		appstate.WithOnExport(func(path string) {
			fmt.Fprintf(os.Stderr, "saved %s\n", path)
		}),
	)
	return state.Run()
}

// sessionOptions seeds a session with the configured tool defaults.
func sessionOptions(cfg *config.Config) []editor.Option {
	if cfg == nil {
		return nil
	}
	return []editor.Option{
		editor.WithTextSettings(cfg.Text),
		editor.WithBrushSettings(cfg.Brush),
		editor.WithHistoryLimit(cfg.HistoryLimit),
	}
}

// commandList collects a repeatable string flag.
type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}
