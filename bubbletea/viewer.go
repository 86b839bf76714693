// Package bubbletea provides a terminal UI for annotated 68000 listings using the Bubble Tea framework.
package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/m68kcount"
)

// headerHeight is the number of rows above the viewport.
const headerHeight = 1

// sourceLoadedMsg carries the result of an asynchronous source read.
type sourceLoadedMsg struct {
	ticket uint64
	source string
	err    error
}

// Model is the Bubble Tea model for viewing an analysis session.
type Model struct {
	session *m68kcount.Session

	// Collaborators (all optional)
	loader      m68kcount.SourceLoader
	path        string
	clipboard   m68kcount.Clipboard
	tokenizer   m68kcount.LineTokenizer
	highlighter m68kcount.Highlighter

	// View state
	cursor   int
	expanded map[int]bool
	layout   layout
	status   string

	// UI state
	viewport   viewport.Model
	help       help.Model
	keymap     KeyMap
	styles     m68kcount.Styles
	palette    m68kcount.Palette
	renderer   *lipgloss.Renderer
	width      int
	height     int
	ready      bool
	pendingKey string
}

// ModelOption configures a Model.
type ModelOption func(*modelConfig)

type modelConfig struct {
	renderer    *lipgloss.Renderer
	theme       m68kcount.Theme
	loader      m68kcount.SourceLoader
	path        string
	clipboard   m68kcount.Clipboard
	tokenizer   m68kcount.LineTokenizer
	highlighter m68kcount.Highlighter
}

// WithRenderer sets a custom lipgloss renderer for the model.
func WithRenderer(r *lipgloss.Renderer) ModelOption {
	return func(cfg *modelConfig) {
		cfg.renderer = r
	}
}

// WithTheme sets the theme for the model.
func WithTheme(t m68kcount.Theme) ModelOption {
	return func(cfg *modelConfig) {
		cfg.theme = t
	}
}

// WithSource sets the loader and path used to reload the source.
func WithSource(loader m68kcount.SourceLoader, path string) ModelOption {
	return func(cfg *modelConfig) {
		cfg.loader = loader
		cfg.path = path
	}
}

// WithClipboard sets the clipboard used to copy totals.
func WithClipboard(c m68kcount.Clipboard) ModelOption {
	return func(cfg *modelConfig) {
		cfg.clipboard = c
	}
}

// WithTokenizer sets the tokenizer for label, mnemonic and comment styling.
func WithTokenizer(t m68kcount.LineTokenizer) ModelOption {
	return func(cfg *modelConfig) {
		cfg.tokenizer = t
	}
}

// WithHighlighter sets the highlighter for operand styling.
func WithHighlighter(h m68kcount.Highlighter) ModelOption {
	return func(cfg *modelConfig) {
		cfg.highlighter = h
	}
}

// NewModel creates a new Model viewing session.
func NewModel(session *m68kcount.Session, opts ...ModelOption) Model {
	cfg := &modelConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var styles m68kcount.Styles
	var palette m68kcount.Palette
	if cfg.theme != nil {
		styles = cfg.theme.Styles()
		palette = cfg.theme.Palette()
	}

	return Model{
		session:     session,
		loader:      cfg.loader,
		path:        cfg.path,
		clipboard:   cfg.clipboard,
		tokenizer:   cfg.tokenizer,
		highlighter: cfg.highlighter,
		expanded:    make(map[int]bool),
		help:        help.New(),
		keymap:      DefaultKeyMap(),
		styles:      styles,
		palette:     palette,
		renderer:    cfg.renderer,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Paste {
			m.submit(string(msg.Runes))
			return m, nil
		}
		m.status = ""

		// Handle multi-key sequences (gg for go to top)
		if m.pendingKey == "g" && key.Matches(msg, m.keymap.GotoTop) {
			m.pendingKey = ""
			m.moveCursorTo(0)
			return m, nil
		}

		// Check for start of multi-key sequence
		if key.Matches(msg, m.keymap.GotoTop) {
			m.pendingKey = "g"
			return m, nil
		}

		// Clear pending key on any other key press
		m.pendingKey = ""

		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Up):
			m.moveCursorTo(m.cursor - 1)
			return m, nil
		case key.Matches(msg, m.keymap.Down):
			m.moveCursorTo(m.cursor + 1)
			return m, nil
		case key.Matches(msg, m.keymap.HalfPageUp):
			m.moveCursorTo(m.cursor - max(m.viewport.Height/2, 1))
			return m, nil
		case key.Matches(msg, m.keymap.HalfPageDown):
			m.moveCursorTo(m.cursor + max(m.viewport.Height/2, 1))
			return m, nil
		case key.Matches(msg, m.keymap.GotoBottom):
			m.moveCursorTo(len(m.session.Lines()) - 1)
			return m, nil
		case key.Matches(msg, m.keymap.Select):
			if m.hasLines() {
				m.session.Click(m.cursor)
				m.refresh()
			}
			return m, nil
		case key.Matches(msg, m.keymap.Cancel):
			m.session.Cancel()
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keymap.ToggleDetail):
			m.toggleDetail()
			return m, nil
		case key.Matches(msg, m.keymap.Copy):
			m.copyTotals()
			return m, nil
		case key.Matches(msg, m.keymap.Reload):
			cmd := m.reload()
			return m, cmd
		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
			return m, nil
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if line, ok := m.lineAt(msg.Y); ok {
				m.status = ""
				m.cursor = line
				m.session.Click(line)
				m.refresh()
			}
			return m, nil
		}
		if msg.Action == tea.MouseActionMotion {
			if line, ok := m.lineAt(msg.Y); ok && line != m.session.Selection().Hover {
				m.session.Hover(line)
				m.refresh()
			}
			return m, nil
		}

	case sourceLoadedMsg:
		m.applyLoaded(msg)
		return m, nil

	case tea.WindowSizeMsg:
		widthChanged := m.width != msg.Width
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		if !m.ready {
			m.viewport = viewport.New(msg.Width, 0)
			m.ready = true
			m.resize()
			m.refresh()
		} else {
			m.resize()
			if widthChanged {
				m.refresh()
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.viewport.View(), m.footerView())
}

func (m Model) hasLines() bool {
	return len(m.session.Lines()) > 0
}

// renderContent renders the listing for the current session state.
func (m Model) renderContent() (string, layout) {
	sel := m.session.Selection()
	return renderListing(renderConfig{
		lines:       m.session.Lines(),
		selection:   &sel,
		styles:      m.styles,
		palette:     m.palette,
		renderer:    m.renderer,
		width:       m.width,
		tokenizer:   m.tokenizer,
		highlighter: m.highlighter,
		showCursor:  true,
		cursor:      m.cursor,
		expanded:    m.expanded,
	})
}

// refresh re-renders the listing into the viewport.
func (m *Model) refresh() {
	content, lay := m.renderContent()
	m.layout = lay
	if m.ready {
		m.viewport.SetContent(content)
	}
}

// resize fits the viewport between the header and the footer.
func (m *Model) resize() {
	if !m.ready {
		return
	}
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-headerHeight-lipgloss.Height(m.footerView()), 1)
}

// lineAt returns the source line under screen row y.
func (m Model) lineAt(y int) (int, bool) {
	if y < headerHeight || y >= headerHeight+m.viewport.Height {
		return m68kcount.NoLine, false
	}
	return m.layout.lineAt(y - headerHeight + m.viewport.YOffset)
}

// moveCursorTo moves the keyboard cursor, previews the line under it and
// scrolls it into view.
func (m *Model) moveCursorTo(line int) {
	n := len(m.session.Lines())
	if n == 0 {
		return
	}
	m.cursor = min(max(line, 0), n-1)
	m.session.Hover(m.cursor)
	m.refresh()
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	if m.cursor >= len(m.layout.lineRows) {
		return
	}
	row := m.layout.lineRows[m.cursor]
	switch {
	case row < m.viewport.YOffset:
		m.viewport.SetYOffset(row)
	case row >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(row - m.viewport.Height + 1)
	}
}

func (m *Model) toggleDetail() {
	lines := m.session.Lines()
	if m.cursor >= len(lines) || !m68kcount.HasDetail(lines[m.cursor]) {
		return
	}
	m.expanded[m.cursor] = !m.expanded[m.cursor]
	m.refresh()
}

// submit analyzes source and replaces the listing. A failed analysis keeps
// the current listing.
func (m *Model) submit(source string) {
	if err := m.session.Submit(source); err != nil {
		m.status = err.Error()
		return
	}
	m.resetView()
	if m.session.Analyzed() {
		m.status = fmt.Sprintf("analyzed %d lines", len(m.session.Lines()))
	} else {
		m.status = "cleared"
	}
}

func (m *Model) resetView() {
	m.cursor = 0
	m.expanded = make(map[int]bool)
	m.refresh()
	if m.ready {
		m.viewport.GotoTop()
	}
}

// reload returns a command reading the source file. Only the latest read
// is applied.
func (m *Model) reload() tea.Cmd {
	if m.loader == nil || m.path == "" {
		m.status = "nothing to reload"
		return nil
	}
	ticket := m.session.Intake()
	loader, path := m.loader, m.path
	m.status = "reloading " + path
	return func() tea.Msg {
		source, err := loader.Load(context.Background(), path)
		return sourceLoadedMsg{ticket: ticket, source: source, err: err}
	}
}

func (m *Model) applyLoaded(msg sourceLoadedMsg) {
	if msg.err != nil {
		m.status = msg.err.Error()
		return
	}
	err := m.session.SubmitIntake(msg.ticket, msg.source)
	switch {
	case errors.Is(err, m68kcount.ErrSuperseded):
		return
	case err != nil:
		m.status = err.Error()
		return
	}
	m.resetView()
	m.status = "reloaded " + m.path
}

func (m *Model) copyTotals() {
	totals := m.session.Totals()
	if sel := m.session.Selection(); sel.State == m68kcount.SelectionCommitted {
		totals = sel.Totals
	}
	if totals == nil {
		m.status = "nothing to copy"
		return
	}
	if m.clipboard == nil {
		m.status = m68kcount.ErrClipboardUnavailable.Error()
		return
	}
	text := m68kcount.FormatTotals(*totals)
	if err := m.clipboard.Copy(text); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "copied " + text
}

// headerView renders the document totals.
func (m Model) headerView() string {
	style := styleFromColorPair(m.styles.Totals, m.renderer).Bold(true)
	text := " Paste 68000 source to annotate it"
	if totals := m.session.Totals(); totals != nil {
		text = " Total: " + m68kcount.FormatTotals(*totals)
	}
	return style.Render(padLine(text, m.width))
}

// footerView renders the status bar and, when toggled, the full help.
func (m Model) footerView() string {
	barStyle := styleFromColorPair(m.styles.StatusBar, m.renderer)
	accentStyle := barStyle.Foreground(lipgloss.Color(m.palette.UIAccent))

	left := m.status
	if left == "" {
		left = m.selectionHint()
	}
	short := m.help.ShortHelpView(m.keymap.ShortHelp())
	content := accentStyle.Render(" "+left) + barStyle.Render(" │ ") + short
	if pad := m.width - lipgloss.Width(content); pad > 0 {
		content += barStyle.Render(strings.Repeat(" ", pad))
	}

	if !m.help.ShowAll {
		return content
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, m.help.FullHelpView(m.keymap.FullHelp()))
}

// selectionHint describes the selection state.
func (m Model) selectionHint() string {
	if !m.session.Analyzed() {
		return "no source"
	}
	sel := m.session.Selection()
	switch sel.State {
	case m68kcount.SelectionPending:
		return fmt.Sprintf("range from line %d, select another line", sel.Start+1)
	case m68kcount.SelectionCommitted:
		return fmt.Sprintf("lines %d–%d: %s", sel.Start+1, sel.End+1, m68kcount.FormatTotals(*sel.Totals))
	default:
		return "select a line to start a range"
	}
}

// Compile-time interface verification.
var _ m68kcount.Viewer = (*Viewer)(nil)

// Viewer implements m68kcount.Viewer using a Bubble Tea TUI.
type Viewer struct {
	opts []ModelOption
}

// NewViewer creates a new Viewer with options applied to its model.
func NewViewer(opts ...ModelOption) *Viewer {
	return &Viewer{opts: opts}
}

// View displays the session and blocks until the user exits.
func (v *Viewer) View(ctx context.Context, session *m68kcount.Session) error {
	m := NewModel(session, v.opts...)
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	return err
}
