// QuestDeck runs tabletop-adventure quest sessions with fog-of-war map
// disclosure driven by authored icon logic rules.
// Usage: questdeck [--version] [--plain] [--script <file>] [--trace] [--settings <file>] <quest_directory>
package main

import (
	"fmt"
	"os"

	"github.com/nholm/questdeck/cli"
	"github.com/nholm/questdeck/engine"
	"github.com/nholm/questdeck/loader"
	"github.com/nholm/questdeck/settings"
	"github.com/nholm/questdeck/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	trace := false
	var questDir string
	var scriptFile string
	settingsPath := settings.DefaultPath()

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("questdeck %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		case "--settings":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--settings requires a file path\n")
				os.Exit(1)
			}
			i++
			settingsPath = args[i]
		default:
			if questDir == "" {
				questDir = args[i]
			}
		}
	}

	if questDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: questdeck [--version] [--plain] [--script <file>] [--trace] [--settings <file>] <quest_directory>\n")
		os.Exit(1)
	}

	cfg, err := settings.Load(settingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}

	// Load and compile Lua quest content.
	defs, err := loader.Load(questDir, loader.Options{
		DefaultCols: cfg.DefaultCols,
		DefaultRows: cfg.DefaultRows,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading quest: %v\n", err)
		os.Exit(1)
	}

	eng := engine.New(defs)

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		fmt.Printf("%s v%s by %s\n\n", defs.Title, defs.Version, defs.Author)
		c := cli.New(eng)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Autosave = cfg.Autosave
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		fmt.Printf("%s v%s by %s\n\n", defs.Title, defs.Version, defs.Author)
		c := cli.New(eng)
		c.Trace = trace
		c.Autosave = cfg.Autosave
		c.Run()
		return
	}

	if err := tui.Run(eng, cfg.Autosave); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
