// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the QuestDeck play engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nholm/questdeck/engine"
	"github.com/nholm/questdeck/engine/grid"
	"github.com/nholm/questdeck/engine/parser"
	"github.com/nholm/questdeck/engine/save"
	"github.com/nholm/questdeck/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	Trace     bool
	Autosave  bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	home, _ := os.UserHomeDir()
	saveDir := filepath.Join(home, ".questdeck", "saves")
	return &CLI{
		Engine:  eng,
		In:      os.Stdin,
		Out:     os.Stdout,
		SaveDir: saveDir,
	}
}

// Run starts the play loop. It shows the intro, renders the fogged map,
// then loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	if c.Engine.Defs.Intro != "" {
		c.printLine(c.Engine.Defs.Intro)
		c.printLine("")
	}

	c.printMap()

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last play command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		c.dispatch(input)
	}
}

// dispatch runs one play command through the engine.
func (c *CLI) dispatch(input string) {
	cmd := parser.Parse(input)

	switch cmd.Verb {
	case "search":
		if !cmd.HasTile {
			c.printLine("Search where? Try: search <x> <y>")
			return
		}
		result := c.Engine.Search(cmd.X, cmd.Y)
		c.printResult(result)
		c.afterTrigger(result)

	case "enter":
		if !cmd.HasTile {
			c.printLine("Enter where? Try: enter <x> <y>")
			return
		}
		result := c.Engine.EnterTile(cmd.X, cmd.Y)
		c.printResult(result)
		c.afterTrigger(result)

	case "look":
		c.printMap()

	case "flags":
		c.printFlags()

	case "cards":
		c.printCards()

	case "objectives":
		c.printObjectives()

	case "notes":
		c.printNotes()

	case "help":
		c.cmdHelp()

	default:
		c.printLine(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd.Verb))
	}
}

// afterTrigger handles trace output and autosave once a trigger has run.
func (c *CLI) afterTrigger(result types.Result) {
	if c.Trace {
		c.printTrace(result)
	}
	if c.Autosave {
		c.cmdSave("autosave")
	}
}

// handleMeta dispatches meta-commands. Returns true if play should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/saves":
		c.cmdSaves()

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}

	data, err := save.Save(c.Engine)
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	if err := os.MkdirAll(c.SaveDir, 0o755); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	path := filepath.Join(c.SaveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	c.printSystem(fmt.Sprintf("Session saved to %s.", name))
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(c.SaveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	sd, err := save.Load(data)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	save.ApplySave(c.Engine, sd)
	c.printSystem(fmt.Sprintf("Session loaded from %s (turn %d).", name, sd.Turn))
	c.printMap()
}

func (c *CLI) cmdSaves() {
	entries, err := os.ReadDir(c.SaveDir)
	if err != nil {
		c.printSystem("No saves yet.")
		return
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, strings.TrimSuffix(e.Name(), ".json"))
		}
	}
	if len(names) == 0 {
		c.printSystem("No saves yet.")
		return
	}
	c.printSystem("Saves: " + strings.Join(names, ", "))
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [name]  — Save session (default: quicksave)",
		"  /load [name]  — Load session (default: quicksave)",
		"  /saves        — List saved sessions",
		"  /quit         — Exit",
		"  /help         — Show this help",
		"  /state        — Debug: dump current session state",
		"  /trace        — Toggle effect trace output",
		"",
		"Play commands:",
		"  search <x> <y> (s)  — Search a tile",
		"  enter <x> <y> (e)   — Move onto a tile",
		"  look (l)            — Show the map",
		"  flags (f)           — List quest flags",
		"  cards (c)           — List revealed cards",
		"  objectives (o)      — List objectives",
		"  notes (n)           — Read revealed notes",
		"  again (g)           — Repeat your last command",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	s := c.Engine.Session
	c.printSystem(fmt.Sprintf("Turn: %d", c.Engine.Turn))
	c.printSystem(fmt.Sprintf("Session: %s", c.Engine.SessionID))
	c.printSystem(fmt.Sprintf("Discovered tiles: %d", s.DiscoveredTiles.Len()))
	c.printSystem(fmt.Sprintf("Revealed entities: %v", s.RevealedEntities.Values()))
	if len(s.Flags) > 0 {
		c.printSystem(fmt.Sprintf("Flags: %v", s.Flags))
	}
	if len(c.Engine.TriggerLog) > 0 {
		c.printSystem(fmt.Sprintf("Triggers: %v", c.Engine.TriggerLog))
	}
}

func (c *CLI) printFlags() {
	flags := c.Engine.Session.Flags
	if len(flags) == 0 {
		c.printLine("No flags set.")
		return
	}
	names := make([]string, 0, len(flags))
	for name := range flags {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c.printLine(fmt.Sprintf("  %s = %t", name, flags[name]))
	}
}

func (c *CLI) printCards() {
	cards := c.Engine.Session.RevealedCards
	if len(cards) == 0 {
		c.printLine("No cards revealed.")
		return
	}
	for i, card := range cards {
		c.printLine(fmt.Sprintf("  %d. %s (turn %d)", i+1, card.Title, card.Turn))
	}
}

func (c *CLI) printObjectives() {
	objectives := c.Engine.Session.Objectives.Values()
	if len(objectives) == 0 {
		c.printLine("No objectives yet.")
		return
	}
	for _, id := range objectives {
		c.printLine("  - " + id)
	}
}

func (c *CLI) printNotes() {
	narratives := c.Engine.Session.Narratives.Values()
	if len(narratives) == 0 {
		c.printLine("No notes revealed.")
		return
	}
	for _, id := range narratives {
		text := id
		for _, note := range c.Engine.Defs.Notes {
			if note.ID == id {
				text = fmt.Sprintf("Note %d: %s", note.Number, note.Text)
				break
			}
		}
		c.printLine("  " + text)
	}
}

// printMap renders the fogged grid: '.' undiscovered, '+' discovered,
// '#' a revealed item's footprint.
func (c *CLI) printMap() {
	for _, row := range RenderMap(c.Engine) {
		c.printLine(row)
	}
	c.printLine(fmt.Sprintf("Discovered %d of %d tiles.",
		c.Engine.Session.DiscoveredTiles.Len(),
		c.Engine.Defs.Cols*c.Engine.Defs.Rows))
}

// RenderMap produces the plain-text fogged map rows, shared with script
// playback and tests.
func RenderMap(e *engine.Engine) []string {
	defs := e.Defs
	s := e.Session

	// Mark revealed item footprints.
	revealed := map[string]bool{}
	for _, item := range defs.Items {
		if !s.RevealedEntities.Has(item.ID) {
			continue
		}
		for _, t := range grid.Footprint(item).Tiles() {
			revealed[grid.Key(t)] = true
		}
	}

	rows := make([]string, 0, defs.Rows)
	for y := 0; y < defs.Rows; y++ {
		var b strings.Builder
		for x := 0; x < defs.Cols; x++ {
			t := types.Tile{X: x, Y: y}
			switch {
			case revealed[grid.Key(t)]:
				b.WriteByte('#')
			case s.DiscoveredTile(t):
				b.WriteByte('+')
			default:
				b.WriteByte('.')
			}
		}
		rows = append(rows, b.String())
	}
	return rows
}

func (c *CLI) printTrace(result types.Result) {
	eff := result.Effect
	c.printSystem(fmt.Sprintf("[trace] tiles=%d entities=%v notes=%v cards=%v flags=%v objectives=%v",
		len(eff.RevealTiles), eff.RevealEntities, eff.NoteIDs,
		eff.CardIDs, eff.FlagsToSet, eff.Objectives))
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
