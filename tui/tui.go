package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nholm/questdeck/engine"
	"github.com/nholm/questdeck/engine/grid"
	"github.com/nholm/questdeck/engine/parser"
	"github.com/nholm/questdeck/engine/save"
	"github.com/nholm/questdeck/types"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the QuestDeck play console.
type Model struct {
	engine *engine.Engine

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated output lines (unstyled)

	width    int
	height   int
	ready    bool
	trace    bool
	autosave bool
	quitting bool
	lastCmd  string
	saveDir  string
}

// playOutputMsg carries output from the engine into the Update loop.
type playOutputMsg struct {
	input    string   // echoed player input (empty for intro)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	home, _ := os.UserHomeDir()
	return Model{
		engine:  eng,
		input:   ti,
		history: NewHistory(100),
		saveDir: filepath.Join(home, ".questdeck", "saves"),
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, autosave bool) error {
	m := New(eng)
	m.autosave = autosave
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces intro text and the map.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		defs := m.engine.Defs
		var lines []string

		header := defs.Title
		if defs.Version != "" {
			header += " v" + defs.Version
		}
		if defs.Author != "" {
			header += " by " + defs.Author
		}
		lines = append(lines, header)
		lines = append(lines, "")

		if defs.Intro != "" {
			lines = append(lines, defs.Intro)
			lines = append(lines, "")
		}

		lines = append(lines, m.mapLines()...)

		return playOutputMsg{lines: lines}
	}
}

// Update handles messages (key presses, window resize, play output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case playOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	// Handle "again" / "g".
	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(playOutputMsg{
				input: input, lines: []string{"Nothing to repeat."}, isSystem: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else {
		m.lastCmd = input
	}

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(playOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	// Play command.
	m = m.appendOutput(playOutputMsg{input: input, lines: m.dispatch(input)})
	return m, nil
}

// dispatch runs one play command through the engine and returns output.
func (m *Model) dispatch(input string) []string {
	cmd := parser.Parse(input)

	switch cmd.Verb {
	case "search":
		if !cmd.HasTile {
			return []string{"Search where? Try: search <x> <y>"}
		}
		return m.afterTrigger(m.engine.Search(cmd.X, cmd.Y))

	case "enter":
		if !cmd.HasTile {
			return []string{"Enter where? Try: enter <x> <y>"}
		}
		return m.afterTrigger(m.engine.EnterTile(cmd.X, cmd.Y))

	case "look":
		return m.mapLines()

	case "flags":
		return m.listFlags()

	case "cards":
		return m.listCards()

	case "objectives":
		return m.listObjectives()

	case "notes":
		return m.listNotes()

	case "help":
		return m.cmdHelp()

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd.Verb)}
	}
}

// afterTrigger collects trigger output plus trace lines, and autosaves.
func (m *Model) afterTrigger(result types.Result) []string {
	output := result.Output
	if m.trace {
		output = append(output, m.formatTrace(result)...)
	}
	if m.autosave {
		m.cmdSave("autosave")
	}
	return output
}

// mapLines renders the fogged grid: '.' undiscovered, '+' discovered,
// '#' a revealed item's footprint.
func (m *Model) mapLines() []string {
	defs := m.engine.Defs
	s := m.engine.Session

	revealed := map[string]bool{}
	for _, item := range defs.Items {
		if !s.RevealedEntities.Has(item.ID) {
			continue
		}
		for _, t := range grid.Footprint(item).Tiles() {
			revealed[grid.Key(t)] = true
		}
	}

	lines := make([]string, 0, defs.Rows+1)
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
		lines = append(lines, b.String())
	}
	lines = append(lines, fmt.Sprintf("Discovered %d of %d tiles.",
		s.DiscoveredTiles.Len(), defs.Cols*defs.Rows))
	return lines
}

func (m *Model) listFlags() []string {
	flags := m.engine.Session.Flags
	if len(flags) == 0 {
		return []string{"No flags set."}
	}
	names := make([]string, 0, len(flags))
	for name := range flags {
		names = append(names, name)
	}
	sort.Strings(names)
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("  %s = %t", name, flags[name]))
	}
	return lines
}

func (m *Model) listCards() []string {
	cards := m.engine.Session.RevealedCards
	if len(cards) == 0 {
		return []string{"No cards revealed."}
	}
	var lines []string
	for i, card := range cards {
		lines = append(lines, fmt.Sprintf("  %d. %s (turn %d)", i+1, card.Title, card.Turn))
	}
	return lines
}

func (m *Model) listObjectives() []string {
	objectives := m.engine.Session.Objectives.Values()
	if len(objectives) == 0 {
		return []string{"No objectives yet."}
	}
	var lines []string
	for _, id := range objectives {
		lines = append(lines, "  - "+id)
	}
	return lines
}

func (m *Model) listNotes() []string {
	narratives := m.engine.Session.Narratives.Values()
	if len(narratives) == 0 {
		return []string{"No notes revealed."}
	}
	var lines []string
	for _, id := range narratives {
		text := id
		for _, note := range m.engine.Defs.Notes {
			if note.ID == id {
				text = fmt.Sprintf("Note %d: %s", note.Number, note.Text)
				break
			}
		}
		lines = append(lines, "  "+text)
	}
	return lines
}

// appendOutput adds lines to the log and refreshes the viewport.
func (m Model) appendOutput(msg playOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-styles all raw lines at the current width and
// updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		switch {
		case rl.isInput:
			styled = append(styled, styledPlayerInput(rl.text))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(rl.text))
		default:
			styled = append(styled, renderLineKind(rl.text, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindNote:
		return styleNote.Render(line)
	case kindCard:
		return styleCard.Render(line)
	case kindMap:
		return styledMapRow(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/save":
		return m.cmdSave(arg), false

	case "/load":
		return m.cmdLoad(arg), false

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdSave(name string) []string {
	if name == "" {
		name = "quicksave"
	}

	data, err := save.Save(m.engine)
	if err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	if err := os.MkdirAll(m.saveDir, 0o755); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	path := filepath.Join(m.saveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	return []string{fmt.Sprintf("Session saved to %s.", name)}
}

func (m *Model) cmdLoad(name string) []string {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(m.saveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	sd, err := save.Load(data)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	save.ApplySave(m.engine, sd)

	output := []string{fmt.Sprintf("Session loaded from %s (turn %d).", name, sd.Turn)}
	output = append(output, m.mapLines()...)
	return output
}

func (m *Model) cmdHelp() []string {
	return []string{
		"System:",
		"  /save [name]  — Save session (default: quicksave)",
		"  /load [name]  — Load session (default: quicksave)",
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
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

func (m *Model) cmdState() []string {
	s := m.engine.Session
	output := []string{
		fmt.Sprintf("Turn: %d", m.engine.Turn),
		fmt.Sprintf("Session: %s", m.engine.SessionID),
		fmt.Sprintf("Discovered tiles: %d", s.DiscoveredTiles.Len()),
		fmt.Sprintf("Revealed entities: %v", s.RevealedEntities.Values()),
	}
	if len(s.Flags) > 0 {
		output = append(output, fmt.Sprintf("Flags: %v", s.Flags))
	}
	if len(s.Objectives.Values()) > 0 {
		output = append(output, fmt.Sprintf("Objectives: %v", s.Objectives.Values()))
	}
	return output
}

func (m *Model) formatTrace(result types.Result) []string {
	eff := result.Effect
	return []string{fmt.Sprintf(
		"[trace] tiles=%d entities=%v notes=%v cards=%v flags=%v objectives=%v",
		len(eff.RevealTiles), eff.RevealEntities, eff.NoteIDs,
		eff.CardIDs, eff.FlagsToSet, eff.Objectives)}
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
