// Package player is the terminal front end: a bubbletea model that drives a
// timeline.Engine from a tick loop and renders the active cues.
package player

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mgpai22/subwatch/internal/logging"
	"github.com/mgpai22/subwatch/internal/subtitle"
	"github.com/mgpai22/subwatch/internal/timeline"
)

const (
	DefaultInterval = 10 * time.Millisecond

	seekStep  = 5 * time.Second
	nudgeStep = 100 * time.Millisecond
	shiftStep = time.Second
)

// Loader re-reads the subtitle source for a reload.
type Loader func() (*subtitle.Result, error)

// Options configures a Model. Total overrides the length shown in the status
// line, e.g. with the probed media duration; zero means the end of the last
// cue.
type Options struct {
	Path     string
	Interval time.Duration
	Total    time.Duration
	Loader   Loader
	Logger   *logging.Logger
	Keys     *KeyMap
}

type promptKind int

const (
	promptNone promptKind = iota
	promptSeek
	promptOffset
)

type tickMsg struct {
	at  time.Time
	gen int
}

// Model must be created with New.
type Model struct {
	engine   *timeline.Engine
	path     string
	interval time.Duration
	total    time.Duration
	loader   Loader
	logger   *logging.Logger
	keys     KeyMap
	help     help.Model
	input    textinput.Model
	prompt   promptKind

	// gen tags tick messages so a loop left over from an earlier
	// play/pause cycle stops instead of doubling the tick rate.
	gen    int
	theme  int
	status string
	width  int
	height int
}

func New(engine *timeline.Engine, opts Options) Model {
	m := Model{
		engine:   engine,
		path:     opts.Path,
		interval: opts.Interval,
		total:    opts.Total,
		loader:   opts.Loader,
		logger:   opts.Logger,
		keys:     DefaultKeyMap,
		help:     help.New(),
	}
	if m.interval <= 0 {
		m.interval = DefaultInterval
	}
	if m.logger == nil {
		m.logger = logging.NewNop()
	}
	if opts.Keys != nil {
		m.keys = *opts.Keys
	}
	m.applyTheme()
	return m
}

func (m Model) Init() tea.Cmd {
	if m.engine.State() == timeline.Running {
		return m.tick()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if msg.gen != m.gen || m.engine.State() != timeline.Running {
			return m, nil
		}
		m.engine.Advance(msg.at)
		return m, m.tick()

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)
	}

	if m.prompt != promptNone {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		return m.toggle()
	case key.Matches(msg, m.keys.SeekBack):
		m.engine.SeekRelative(-seekStep)
	case key.Matches(msg, m.keys.SeekForward):
		m.engine.SeekRelative(seekStep)
	case key.Matches(msg, m.keys.NudgeBack):
		m.engine.AdjustOffset(-nudgeStep)
	case key.Matches(msg, m.keys.NudgeAhead):
		m.engine.AdjustOffset(nudgeStep)
	case key.Matches(msg, m.keys.ShiftBack):
		m.engine.AdjustOffset(-shiftStep)
	case key.Matches(msg, m.keys.ShiftAhead):
		m.engine.AdjustOffset(shiftStep)
	case key.Matches(msg, m.keys.Reset):
		m.engine.Reset()
		m.status = ""
	case key.Matches(msg, m.keys.Theme):
		m.theme = (m.theme + 1) % len(themes)
		m.applyTheme()
		m.status = "theme " + themes[m.theme].name
	case key.Matches(msg, m.keys.GoTo):
		return m.openPrompt(promptSeek)
	case key.Matches(msg, m.keys.SetOffset):
		return m.openPrompt(promptOffset)
	case key.Matches(msg, m.keys.Reload):
		cmd := m.reload()
		return m, cmd
	}
	return m, nil
}

// openPrompt starts a typed time entry. The placeholder shows the value
// being replaced.
func (m Model) openPrompt(kind promptKind) (tea.Model, tea.Cmd) {
	th := themes[m.theme]
	input := textinput.New()
	input.CharLimit = 16
	input.PromptStyle = th.status
	input.PlaceholderStyle = th.muted
	switch kind {
	case promptSeek:
		input.Prompt = "go to "
		input.Placeholder = timeline.FormatClock(m.engine.Elapsed())
	case promptOffset:
		input.Prompt = "offset "
		input.Placeholder = timeline.FormatClock(m.engine.Offset())
	}
	cmd := input.Focus()

	m.input = input
	m.prompt = kind
	m.status = ""
	return m, cmd
}

// handlePromptKey owns every key while a prompt is open, so letters typed
// into it never reach the playback bindings.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.submitPrompt()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitPrompt applies the typed value. An empty entry closes the prompt
// unchanged; an invalid one leaves it open for correction.
func (m *Model) submitPrompt() {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		m.closePrompt()
		return
	}

	d, err := timeline.ParseClock(value)
	if err != nil {
		m.status = fmt.Sprintf("invalid time: %v", err)
		return
	}

	switch m.prompt {
	case promptSeek:
		m.engine.SeekAbsolute(d)
		m.logger.Debugw("Seek entered", "elapsed", d)
	case promptOffset:
		m.engine.SetOffset(d)
		m.logger.Debugw("Offset entered", "offset", d)
	}
	m.closePrompt()
	m.status = ""
}

func (m *Model) closePrompt() {
	m.input.Blur()
	m.prompt = promptNone
}

func (m Model) toggle() (tea.Model, tea.Cmd) {
	if err := m.engine.Toggle(); err != nil {
		m.status = err.Error()
		m.logger.Warnw("Playback toggle rejected", "error", err)
		return m, nil
	}
	if m.engine.State() != timeline.Running {
		return m, nil
	}
	m.gen++
	return m, m.tick()
}

// reload keeps the current session when the file no longer parses. On
// success the viewer keeps their place, offset and play state, and the
// returned command restarts the tick loop if playback was running.
func (m *Model) reload() tea.Cmd {
	if m.loader == nil {
		m.status = "reload unavailable"
		return nil
	}

	result, err := m.loader()
	if err != nil {
		m.status = fmt.Sprintf("reload failed: %v", err)
		m.logger.Warnw("Reload failed, keeping previous subtitles", "path", m.path, "error", err)
		return nil
	}

	// Load rewinds and pauses
	elapsed, offset := m.engine.Elapsed(), m.engine.Offset()
	wasRunning := m.engine.State() == timeline.Running
	m.engine.Load(result.Cues)
	m.engine.SetOffset(offset)
	m.engine.SeekAbsolute(elapsed)
	for _, w := range result.Warnings {
		m.logger.Warnw("Skipped subtitle block", "path", m.path, "line", w.Line, "reason", w.Reason)
	}
	m.status = fmt.Sprintf("reloaded %d cues", result.Cues.Len())
	if n := len(result.Warnings); n > 0 {
		m.status += fmt.Sprintf(", %d skipped", n)
	}
	m.logger.Infow("Reloaded subtitles", "path", m.path, "cues", result.Cues.Len())

	if !wasRunning {
		return nil
	}
	if err := m.engine.Play(); err != nil {
		m.logger.Warnw("Could not resume after reload", "error", err)
		return nil
	}
	m.gen++
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg{at: t, gen: gen}
	})
}

// Total is the length shown in the status line.
func (m Model) Total() time.Duration {
	if m.total > 0 {
		return m.total
	}
	return m.engine.Sequence().End()
}

func (m Model) Status() string {
	return m.status
}

func (m Model) View() string {
	th := themes[m.theme]

	var lines []string
	for _, cue := range m.engine.Current() {
		lines = append(lines, strings.Split(cue.Text, "\n")...)
	}

	cueStyle := th.cue.Align(lipgloss.Center)
	if m.width > 0 {
		cueStyle = cueStyle.Width(m.width)
	}
	body := cueStyle.Render(strings.Join(lines, "\n"))
	if m.width > 0 && m.height > 2 {
		body = lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, body)
	}

	footer := m.help.View(m.keys)
	if m.prompt != promptNone {
		footer = m.input.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		body,
		th.status.Render(m.statusLine()),
		footer,
	)
}

func (m Model) statusLine() string {
	icon := "⏸"
	if m.engine.State() == timeline.Running {
		icon = "▶"
	}

	line := fmt.Sprintf(
		"%s %s / %s  offset %s",
		icon,
		timeline.FormatClock(m.engine.Position()),
		timeline.FormatClock(m.Total()),
		timeline.FormatClock(m.engine.Offset()),
	)
	if m.status != "" {
		line += "  " + m.status
	}
	return line
}

func (m *Model) applyTheme() {
	th := themes[m.theme]
	m.help.Styles.ShortKey = th.muted.Bold(true)
	m.help.Styles.ShortDesc = th.muted
	m.help.Styles.ShortSeparator = th.muted
	m.help.Styles.FullKey = th.muted.Bold(true)
	m.help.Styles.FullDesc = th.muted
	m.help.Styles.FullSeparator = th.muted
}
