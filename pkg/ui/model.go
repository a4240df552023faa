package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/reptimer/pkg/tracker"
	"github.com/rs/zerolog/log"
)

const (
	title    = "Workout Counter"
	subtitle = "Select an exercise and track your reps"

	maxProgressWidth = 48
)

// tickMsg is the one second countdown signal. It only counts for the
// countdown whose token it carries.
type tickMsg struct {
	token tracker.Token
}

// Model is the bubbletea front end of a tracker.Tracker. All tracker calls
// happen inside Update.
type Model struct {
	ctx     context.Context
	tracker *tracker.Tracker

	keys     keyMap
	help     help.Model
	progress progress.Model
	interval time.Duration

	form        *huh.Form
	customValue *string

	// presetCursor is where the preset key cycle stands. It moves past Custom
	// even when the custom form is cancelled.
	presetCursor tracker.Preset

	timesUp bool

	width  int
	height int
}

// Option configures a Model in NewModel.
type Option func(*Model)

// WithTickInterval changes the countdown step, one second by default.
func WithTickInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.interval = d
		}
	}
}

// NewModel wraps t. ctx is handed to the tracker on every tick.
func NewModel(ctx context.Context, t *tracker.Tracker, options ...Option) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := Model{
		ctx:      ctx,
		tracker:  t,
		keys:     defaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		interval: time.Second,
	}
	m.progress.Width = maxProgressWidth
	m.presetCursor = t.Snapshot().Preset
	for _, o := range options {
		o(&m)
	}
	m.syncKeys()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) tick(tok tracker.Token) tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{token: tok}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(maxProgressWidth, max(10, msg.Width-8))
		if m.form != nil {
			m.form = m.form.WithWidth(min(40, msg.Width))
		}
		return m, nil

	case tickMsg:
		cmd := m.handleTick(msg)
		m.syncKeys()
		return m, cmd
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	// the modal sits on top of the form and takes the next key
	if isKey && m.timesUp {
		if keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.timesUp = false
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	if !isKey {
		return m, nil
	}

	cmd := m.handleKey(keyMsg)
	m.syncKeys()
	return m, cmd
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	switch r := m.tracker.Tick(m.ctx, msg.token); r {
	case tracker.TickRunning:
		return m.tick(msg.token)
	case tracker.TickExpired:
		m.timesUp = true
		return nil
	default:
		log.Trace().Uint64("token", uint64(msg.token)).Msg("dropped stale tick")
		return nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Increment):
		return m.tick(m.tracker.Increment())

	case key.Matches(msg, m.keys.Decrement):
		m.tracker.Decrement()

	case key.Matches(msg, m.keys.Reset):
		if m.tracker.CanReset() {
			m.tracker.Reset()
		}

	case key.Matches(msg, m.keys.Next):
		m.shiftSession(1)

	case key.Matches(msg, m.keys.Prev):
		m.shiftSession(-1)

	case key.Matches(msg, m.keys.Preset):
		next := m.presetCursor.Next()
		m.presetCursor = next
		if next == tracker.PresetCustom {
			return m.openCustomForm()
		}
		m.tracker.SelectPreset(next)

	case key.Matches(msg, m.keys.Custom):
		return m.openCustomForm()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	default:
		for i, b := range m.keys.Sessions {
			if key.Matches(msg, b) {
				m.tracker.SelectSession(tracker.Exercises()[i])
				break
			}
		}
	}
	return nil
}

func (m *Model) shiftSession(delta int) {
	exercises := tracker.Exercises()
	n := len(exercises)
	idx := m.tracker.Active().Index()
	m.tracker.SelectSession(exercises[((idx+delta)%n+n)%n])
}

func (m *Model) openCustomForm() tea.Cmd {
	value := strconv.Itoa(m.tracker.Duration())
	m.customValue = &value
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Rest duration").
				Description("Whole seconds, enter to apply, esc to cancel").
				Placeholder("Seconds").
				Value(m.customValue).
				Validate(func(s string) error {
					_, err := tracker.ParseSeconds(s)
					return err
				}),
		),
	).WithTheme(huh.ThemeCharm()).WithShowHelp(false)
	if m.width > 0 {
		m.form = m.form.WithWidth(min(40, m.width))
	}
	return m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.closeForm()
			return m, nil
		}
	}

	fm, cmd := m.form.Update(msg)
	if f, ok := fm.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitCustom(*m.customValue)
		m.closeForm()
		m.syncKeys()
		// the form's own submit command would quit the program
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	case huh.StateNormal:
	}
	return m, cmd
}

func (m *Model) submitCustom(value string) bool {
	if !m.tracker.SetTimerDurationInput(value) {
		log.Debug().Str("value", value).Msg("custom duration rejected")
		return false
	}
	m.tracker.SelectPreset(tracker.PresetCustom)
	m.presetCursor = tracker.PresetCustom
	log.Debug().Int("duration", m.tracker.Duration()).Msg("custom duration applied")
	return true
}

func (m *Model) closeForm() {
	m.form = nil
	m.customValue = nil
}

func (m *Model) syncKeys() {
	m.keys.Reset.SetEnabled(m.tracker.CanReset())
}

// TimesUp reports whether the expiry notification is showing.
func (m Model) TimesUp() bool {
	return m.timesUp
}

func (m Model) Tracker() *tracker.Tracker {
	return m.tracker
}

func (m Model) View() string {
	if m.timesUp {
		return m.modalView()
	}
	if m.form != nil {
		return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(title),
			"",
			formStyle.Render(m.form.View()),
		))
	}
	return docStyle.Render(m.baseView())
}

func (m Model) baseView() string {
	s := m.tracker.Snapshot()

	var tabs []string
	for _, e := range tracker.Exercises() {
		info := e.Info()
		label := fmt.Sprintf("%s %s", info.Icon, info.Name)
		if e == s.Active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	clock := timerStyle
	status := "ready"
	if s.Running {
		clock = runningTimerStyle
		status = "resting"
	}
	ratio := 1.0
	if s.Duration > 0 {
		ratio = min(1, float64(s.Remaining)/float64(s.Duration))
	}

	var cards []string
	for _, e := range tracker.Exercises() {
		style := cardStyle
		if e == s.Active {
			style = activeCardStyle
		}
		count := countStyle
		if s.Counts[e] > 0 {
			count = nonZeroStyle
		}
		cards = append(cards, style.Render(e.Info().Icon+"\n"+count.Render(strconv.Itoa(s.Counts[e]))))
	}

	var presets []string
	for _, p := range tracker.Presets() {
		label := p.String()
		if p == tracker.PresetCustom && s.Preset == tracker.PresetCustom {
			label = fmt.Sprintf("Custom (%ds)", s.Duration)
		}
		if p == s.Preset {
			presets = append(presets, activePresetStyle.Render(label))
		} else {
			presets = append(presets, presetStyle.Render(label))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		subtitleStyle.Render(subtitle),
		strings.Join(tabs, " "),
		clock.Render(tracker.FormatTime(s.Remaining)),
		m.progress.ViewAs(ratio),
		timerStatusStyle.Render(status),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		presetLabelStyle.Render("Rest Timer"),
		lipgloss.JoinHorizontal(lipgloss.Top, presets...),
		"",
		m.help.View(m.keys),
	)
}

func (m Model) modalView() string {
	modal := modalStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		modalTitleStyle.Render(" Rest over "),
		"",
		tracker.TimesUpMessage,
		modalHelpStyle.Render("Press any key to continue"),
	))
	if m.width == 0 || m.height == 0 {
		return modal
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
