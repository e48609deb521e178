package repl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/xmark/ext"
	"github.com/ardnew/xmark/log"
	"github.com/ardnew/xmark/tree"
)

// editDocumentMsg is sent when document editing completes successfully.
type editDocumentMsg struct{ doc *document }

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editDeclinedMsg is sent when the user declined to re-edit after an error.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the edit process encounters a non-build error.
type editErrorMsg struct{ err error }

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

// evalAttribute names the attribute that REPL input is dispatched as.
const evalAttribute = "input"

// newDocument is the editor content when no document has been loaded.
const newDocument = `<Root xmlns:x="http://schemas.microsoft.com/winfx/2006/xaml">
</Root>
`

// Output formats of evaluated input.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help                 Print this cruft
  list                 List known extensions and their properties
  format text|json|yaml  Set the result format
  edit                 Edit the source document in external $EDITOR
  clear                Clear screen
  quit                 Exit REPL

Usage:
  Type an attribute value to parse it, e.g. {Binding Path=Name}
  Values not starting with '{' are literals; {} and {{ escape a brace
  Completions appear after '{' and between options
  Press Tab / Shift-Tab to cycle through candidates
  Press Space to accept the current candidate
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	literalStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

func formatCommand(input string) string {
	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

func formatCtrlCommand(input string) string {
	return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	doc          *document
	catalog      *catalog
	opts         []tree.Option
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	candidates   []string      // backing candidate list
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
	mode         inputMode
	format       string
	evalText     string
	evalCursor   int
	ctrlText     string
	ctrlCursor   int
}

// Run starts the REPL. If reader is non-nil it is read as an XML document
// whose extensions extend the completion candidates.
func Run(
	ctx context.Context,
	reader io.Reader,
	cacheDir string,
	logger log.Logger,
	opts ...tree.Option,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(ctx, "repl start",
		slog.String("cache_dir", cacheDir),
		slog.Bool("has_source", reader != nil),
	)

	var (
		doc     *document
		program []tea.ProgramOption
	)

	if reader != nil {
		text, err := io.ReadAll(reader)
		if err != nil {
			return err
		}

		doc, err = loadDocument(ctx, text, opts...)
		if err != nil {
			return err
		}

		logger.TraceContext(ctx, "repl document loaded",
			slog.String("root", doc.root.Type),
			slog.Int("bytes", len(text)),
		)

		// The document consumed stdin; read keys from the terminal.
		if f, ok := reader.(*os.File); ok && f == os.Stdin {
			program = append(program, tea.WithInputTTY())
		}
	}

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	logger.TraceContext(ctx, "repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	m := newModel(ctx, doc, history, logger, opts)

	p := tea.NewProgram(m, append(program, tea.WithContext(ctx))...)
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	doc *document,
	history *History,
	logger log.Logger,
	opts []tree.Option,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	var root *tree.Node
	if doc != nil {
		root = doc.root
	}

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		doc:        doc,
		catalog:    newCatalog(root),
		opts:       opts,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeEval,
		format:     formatText,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil

	case editDocumentMsg:
		m.doc = msg.doc
		m.catalog = newCatalog(msg.doc.root)
		m.logger.TraceContext(m.ctxFunc(), "repl edit complete",
			slog.String("root", msg.doc.root.Type),
			slog.Int("extension_count", len(m.catalog.names)),
		)

		return m, tea.Println(resultStyle.Render("✔ document updated"))

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("edit cancelled"))

	case editDeclinedMsg:
		m.quitting = true

		return m, tea.Quit

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.hintLine())
	b.WriteString("\n")

	return b.String()
}

// hintLine renders the line shown below the input.
func (m model) hintLine() string {
	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())

		return hintStyle.Render(hint)

	case strings.TrimSpace(input) == "":
		if m.mode == modeEval {
			return hintStyle.Render("Type an attribute value or press Esc for commands")
		}

		return hintStyle.Render("Type: help, list, format, edit, clear, quit (press Esc to return)")

	case len(m.matches) > 0:
		return renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width)
	}

	if m.mode != modeEval {
		return ""
	}

	call, ok := detectExtension(input, m.input.Position())
	if !ok || !call.inArgs {
		return ""
	}

	props := m.catalog.properties(call.name)
	if len(props) == 0 {
		return ""
	}

	return renderPropertyHint(call.name, props, call.assigned())
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}

		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1)

	case tea.KeyShiftTab:
		return m.cycle(-1)

	case tea.KeyUp:
		return m.historyStep(-1, false)

	case tea.KeyDown:
		return m.historyStep(1, false)

	case tea.KeyShiftUp:
		return m.historyStep(-1, true)

	case tea.KeyShiftDown:
		return m.historyStep(1, true)

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		if m.mode == modeEval {
			return m.switchToMode(modeCtrl)
		}

		return m.switchToMode(modeEval)

	case tea.KeyRunes, tea.KeySpace:
		// Typing accepts the current candidate.
		var cmd tea.Cmd

		m.tabActive = false

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// Other keys (backspace, delete, arrows, ...) edit or move without
	// auto-confirming a completion.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the tab selection by step (1 or -1), starting a cycle if none
// is active. A single candidate is completed immediately.
func (m model) cycle(step int) (model, tea.Cmd) {
	if len(m.matches) == 0 {
		return m, nil
	}

	if len(m.matches) == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m, nil
	}

	n := len(m.matches)

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + n) % n
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m, nil
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also confirms the completion when exactly one
// candidate remains and the typed word already equals it.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if word := m.input.Value()[m.wordStart:m.wordEnd]; word == m.matches[0].Str {
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.evalText, m.evalCursor = "", 0
	m.ctrlText, m.ctrlCursor = "", 0
	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Write(input, m.mode); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not write history",
			slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		m.logger.TraceContext(m.ctxFunc(), "repl command",
			slog.String("input", input))

		return m.executeCommand(input)
	}

	m.logger.TraceContext(m.ctxFunc(), "repl eval",
		slog.String("input", input))

	echoCmd := tea.Println(formatCommand(input))

	out, err := evaluate(m.ctxFunc(), input, m.format)
	if err != nil {
		m.logger.TraceContext(m.ctxFunc(), "repl eval result",
			slog.String("result_type", "error"),
			slog.String("error", err.Error()))

		return m, tea.Sequence(echoCmd, tea.Println(errorStyle.Render(explain(err))))
	}

	return m, tea.Sequence(echoCmd, tea.Println(out))
}

// evaluate dispatches input as an attribute value and renders the result in
// the given format.
func evaluate(ctx context.Context, input, format string) (string, error) {
	v, err := tree.Dispatch(evalAttribute, input)
	if err != nil {
		return "", err
	}

	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(ext.ToNative(v), "", "  ")

		return resultStyle.Render(string(data)), err

	case formatYAML:
		data, err := yaml.MarshalContext(ctx, ext.ToNative(v))

		return resultStyle.Render(strings.TrimRight(string(data), "\n")), err
	}

	if s, ok := v.(ext.String); ok {
		return literalStyle.Render("literal " + strconv.Quote(s.Text)), nil
	}

	return resultStyle.Render(v.String()), nil
}

// explain renders err with a caret under the offending input when it
// carries a position.
func explain(err error) string {
	var aerr *tree.AttributeError
	if errors.As(err, &aerr) {
		var perr *ext.Error
		if errors.As(aerr.Err, &perr) {
			return "error: " + perr.Error() + "\n" + perr.Explain()
		}
	}

	return "error: " + err.Error()
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echoCmd := tea.Println(formatCtrlCommand(input))

	cmd, args := parts[0], parts[1:]

	m.logger.TraceContext(m.ctxFunc(), "repl exec command",
		slog.String("command", cmd),
		slog.Any("args", args),
	)

	switch cmd {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echoCmd, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echoCmd, tea.Println(helpMessage()))

	case "l", "list":
		return m, tea.Sequence(echoCmd, tea.Println(m.listExtensions()))

	case "f", "format":
		var msg string

		m, msg = m.setFormat(args)

		return m, tea.Sequence(echoCmd, tea.Println(msg))

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		return m, tea.Sequence(echoCmd, m.editDocument())

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + cmd + " (try 'help')"),
		)
	}
}

// setFormat selects the result format named by args, or reports the current
// one when args is empty.
func (m model) setFormat(args []string) (model, string) {
	if len(args) == 0 {
		return m, hintStyle.Render("format: " + m.format)
	}

	switch f := strings.ToLower(args[0]); f {
	case formatText, formatJSON, formatYAML:
		m.format = f

		return m, resultStyle.Render("format: " + f)

	default:
		return m, errorStyle.Render("unknown format: " + args[0])
	}
}

// listExtensions renders every known extension name with the properties
// seen with it.
func (m model) listExtensions() string {
	var b strings.Builder

	for _, name := range m.catalog.names {
		fmt.Fprintf(&b, "  %s", name)

		if props := m.catalog.properties(name); len(props) > 0 {
			b.WriteString(" " + hintStyle.Render(strings.Join(props, ", ")))
		}

		b.WriteString("\n")
	}

	return b.String()
}

func (m model) editDocument() tea.Cmd {
	doc := m.doc
	if doc == nil {
		doc = &document{text: []byte(newDocument)}
	}

	cmd := &editDocumentCommand{
		doc:     doc,
		opts:    m.opts,
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		if errors.Is(err, ErrEditDeclined) {
			return editDeclinedMsg{}
		}

		if err != nil {
			return editErrorMsg{err: err}
		}

		if cmd.newDoc == nil {
			return editCancelledMsg{}
		}

		return editDocumentMsg{doc: cmd.newDoc}
	})
}

// historyStep moves through history by step (1 or -1). With inMode set only
// entries of the current mode are visited; otherwise the mode follows the
// entry. Stepping past the newest entry clears the input.
func (m model) historyStep(step int, inMode bool) (model, tea.Cmd) {
	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		entry, err := m.history.Entry(i)
		if err != nil || (inMode && entry.Mode != m.mode) {
			continue
		}

		if m.mode != entry.Mode {
			m, _ = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		refreshMatches(&m, false)

		return m, nil
	}

	if step > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m, nil
}

// switchToMode switches to the specified mode, preserving each mode's input.
func (m model) switchToMode(mode inputMode) (model, tea.Cmd) {
	if m.mode == modeEval {
		m.evalText, m.evalCursor = m.input.Value(), m.input.Position()
	} else {
		m.ctrlText, m.ctrlCursor = m.input.Value(), m.input.Position()
	}

	m.mode = mode
	if mode == modeEval {
		m.input.Prompt = promptStyle.Render(evalPrompt)
		m.input.SetValue(m.evalText)
		m.input.SetCursor(m.evalCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	refreshMatches(&m, false)

	return m, nil
}
