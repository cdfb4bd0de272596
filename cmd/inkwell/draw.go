package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/example/inkwell/internal/appstate"
	"github.com/example/inkwell/internal/clipboard"
	"github.com/example/inkwell/internal/config"
	"github.com/example/inkwell/internal/editor"
	"github.com/example/inkwell/internal/script"
)

var stdin io.Reader = os.Stdin

var (
	writeClipFn = clipboard.WriteImage
	timeNow     = time.Now
)

// scriptFlags names the commands to replay.
type scriptFlags struct {
	path  string
	execs commandList
}

func (sf *scriptFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&sf.path, "script", "", "file of edit commands, - for stdin")
	fs.Var(&sf.execs, "e", "edit command to run after the script (repeatable)")
}

func (sf *scriptFlags) commands() ([]script.Command, error) {
	var cmds []script.Command
	if sf.path != "" {
		var r io.Reader = stdin
		if sf.path != "-" {
			f, err := os.Open(sf.path)
			if err != nil {
				return nil, fmt.Errorf("open script: %w", err)
			}
			defer f.Close()
			r = f
		}
		parsed, err := script.Parse(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sf.path, err)
		}
		cmds = append(cmds, parsed...)
	}
	for i, line := range sf.execs {
		c, err := script.ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("-e #%d: %w", i+1, err)
		}
		cmds = append(cmds, c)
	}
	if len(cmds) == 0 {
		return nil, fmt.Errorf("no edit commands given, use -script or -e")
	}
	return cmds, nil
}

// replay loads the source and runs the commands on a headless session.
func replay(r *root, in *inputFlags, file string, sf *scriptFlags, after func(*editor.Session, script.Command)) (*editor.Session, string, error) {
	cmds, err := sf.commands()
	if err != nil {
		return nil, "", err
	}
	img, name, err := in.load(r, file)
	if err != nil {
		return nil, "", err
	}
	var cfg *config.Config
	if r != nil {
		cfg = r.config
	}
	s, err := editor.New(img, sessionOptions(cfg)...)
	if err != nil {
		return nil, "", err
	}
	var hook func(script.Command)
	if after != nil {
		hook = func(c script.Command) { after(s, c) }
	}
	if err := script.Run(s, cmds, hook); err != nil {
		s.Close()
		return nil, "", err
	}
	return s, name, nil
}

// drawCmd applies an edit script without opening a window.
type drawCmd struct {
	*root
	fs *flag.FlagSet

	input       inputFlags
	script      scriptFlags
	file        string
	output      string
	exportDir   string
	format      string
	toClipboard bool
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func (d *drawCmd) Program() string {
	if d.root == nil {
		return "inkwell draw"
	}
	return d.root.subcommand("draw")
}

// Commands lists the script commands for the help text.
func (d *drawCmd) Commands() []string {
	return script.Names()
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	d.input.register(fs)
	d.script.register(fs)
	exportDir, format := "", config.FormatPNG
	if r != nil && r.config != nil {
		exportDir, format = r.config.ExportDir, r.config.ExportFormat
	}
	fs.StringVar(&d.output, "output", "", "output file (default: a timestamped file in -dir)")
	fs.StringVar(&d.exportDir, "dir", exportDir, "directory for timestamped exports")
	fs.StringVar(&d.format, "format", format, "export format when -output is not set: png or jpeg")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result to the clipboard instead of writing a file unless -output is set")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		return nil, &UsageError{of: d}
	}
	d.file = fs.Arg(0)
	if err := d.input.validate(d.file); err != nil {
		return nil, err
	}
	f, err := config.ParseFormat(d.format)
	if err != nil {
		return nil, err
	}
	d.format = f
	return d, nil
}

func (d *drawCmd) Run() error {
	s, name, err := replay(d.root, &d.input, d.file, &d.script, nil)
	if err != nil {
		return err
	}
	defer s.Close()
	out := s.Export()

	if d.toClipboard {
		if err := writeClipFn(out); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		detail := filepath.Base(name)
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
		d.root.notifyCopy(detail)
		if d.output == "" {
			return nil
		}
	}

	path := d.output
	if path == "" {
		path = appstate.ExportPath(d.exportDir, d.format, timeNow())
	}
	if err := appstate.SaveImage(out, path); err != nil {
		return err
	}
	saved := path
	if abs, err := filepath.Abs(path); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	d.root.notifyExport(saved)
	return nil
}
