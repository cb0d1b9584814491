package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shnupta/sift/internal/command"
	"github.com/shnupta/sift/internal/config"
	"github.com/shnupta/sift/internal/display"
	"github.com/shnupta/sift/internal/input"
	"github.com/shnupta/sift/internal/prefs"
	"github.com/shnupta/sift/internal/runner"
	"github.com/shnupta/sift/internal/session"
	"github.com/shnupta/sift/internal/tui"
	"github.com/shnupta/sift/internal/watch"
)

// version is set by goreleaser via ldflags
var version = "dev"

const usage = `sift — interactive filter playground

Pipe content in (or name a file) and type a query; the filter runs as you
type and the live result is shown in a panel.

Usage:
  sift [flags] [file]       Filter a file, or stdin when no file is given
  sift --help               Show this help

Flags:
  --cmd <exe>               Filter executable (default: jq)
  --command <template>      Command template, e.g. "{cmd} {query} {input}"
  --delay <ms>              Debounce delay for new queries (default: 500)
  --style <fixed|fit|grow>  Result panel resize style (default: fit)
  --surface <panel|overlay> Where the result is drawn (default: panel)
  --color                   Keep ANSI colors in filter output

TUI key bindings:
  ctrl+e                    Edit the command template
  ctrl+t                    Cycle the output format ({to} templates)
  ctrl+p / ctrl+n           Scroll the result panel
  esc / ctrl+c              Quit

Template placeholders: {cmd} {query} {input} {from} {to}
Queries you have run before skip the debounce delay and run immediately.

Config: ~/.sift/config.json    Format prefs: ~/.sift/formats.json
`

func main() {
	if len(os.Args) == 2 && (os.Args[1] == "--help" || os.Args[1] == "-h" || os.Args[1] == "help") {
		fmt.Print(usage)
		return
	}

	if len(os.Args) == 2 && (os.Args[1] == "--version" || os.Args[1] == "-v" || os.Args[1] == "version") {
		fmt.Println(version)
		return
	}

	cfg := config.Load()
	fileArg, err := applyFlags(&cfg, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		fmt.Fprintln(os.Stderr, "run 'sift --help' for usage")
		os.Exit(1)
	}

	src, err := input.Resolve(fileArg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	// Format prefs keyed by file extension (best-effort; empty store on error).
	store := prefs.NewStore(prefsPath())
	_ = store.Load()

	sessCfg := session.Config{
		Exe:     cfg.Exe,
		Delay:   cfg.Delay(),
		Style:   display.ParseStyle(cfg.ResizeStyle),
		Bounds:  display.Bounds{Min: cfg.MinHeight, Max: cfg.MaxHeight},
		Surface: session.ParseSurface(cfg.Surface),
		Color:   cfg.Color,
		Formats: cfg.Formats,
	}

	eng, err := session.New(sessCfg, command.New(cfg.Command), src, nil, &runner.Runner{}, detectors(store))
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if err := runner.Lookup(cfg.Exe); err != nil {
			fmt.Fprintf(os.Stderr, "install %s or point --cmd at another filter\n", cfg.Exe)
		}
		os.Exit(1)
	}

	// Watch real input files so edits on disk rerun the current query.
	// Best-effort; sift works without it.
	var watcher watch.Iface
	if src.Kind == session.SourceFile {
		w, err := watch.New(src.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not watch %s: %v\n", src.Path, err)
		} else {
			watcher = w
			defer w.Close()
		}
	}

	model := tui.New(eng, watcher, sessCfg, cfg.Command)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if src.Kind == session.SourceTemp {
		// Stdin was consumed by the snapshot; read keys from the terminal.
		opts = append(opts, tea.WithInputTTY())
	}

	p := tea.NewProgram(model, opts...)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	// Remember the formats this file ended up using.
	final := eng.Final()
	if src.Kind == session.SourceFile && (final.ReadFormat != "" || final.WriteFormat != "") {
		_ = store.Set(src.Path, prefs.Formats{Read: final.ReadFormat, Write: final.WriteFormat})
	}
}

// applyFlags overlays command line flags onto cfg and returns the positional
// file argument, if any.
func applyFlags(cfg *config.Config, args []string) (string, error) {
	fileArg := ""
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--cmd", "--command", "--delay", "--style", "--surface":
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s requires a value", arg)
			}
			i++
			val := args[i]
			switch arg {
			case "--cmd":
				cfg.Exe = val
			case "--command":
				cfg.Command = val
			case "--delay":
				ms, err := strconv.Atoi(val)
				if err != nil || ms < 0 {
					return "", fmt.Errorf("invalid --delay %q", val)
				}
				cfg.DelayMs = ms
			case "--style":
				cfg.ResizeStyle = val
			case "--surface":
				cfg.Surface = val
			}
		case "--color":
			cfg.Color = true
		default:
			if len(arg) > 1 && arg[0] == '-' {
				return "", fmt.Errorf("unknown flag %s", arg)
			}
			if fileArg != "" {
				return "", fmt.Errorf("only one input file may be given")
			}
			fileArg = arg
		}
	}
	return fileArg, nil
}

func prefsPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".sift", "formats.json")
}

// detectors wires the format-prefs store into the session: a file that was
// filtered before starts with the formats it used last time, falling back
// to its extension for the read format.
func detectors(store *prefs.Store) session.Detectors {
	return session.Detectors{
		Mode: func(s session.Session) string {
			if s.WriteFormat != "" {
				return s.WriteFormat
			}
			return s.ReadFormat
		},
		ReadFormat: func(s session.Session) string {
			if s.Input.Path == "" {
				return ""
			}
			if f := store.Get(s.Input.Path); f.Read != "" {
				return f.Read
			}
			ext := filepath.Ext(s.Input.Path)
			if len(ext) > 1 {
				return ext[1:]
			}
			return ""
		},
		WriteFormat: func(s session.Session) string {
			if s.Input.Path == "" {
				return ""
			}
			return store.Get(s.Input.Path).Write
		},
	}
}
