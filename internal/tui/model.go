package tui

import (
	"log/slog"

	"github.com/Veraticus/playdash/internal/common"
	"github.com/Veraticus/playdash/internal/engine"
	"github.com/Veraticus/playdash/internal/model"
	"github.com/Veraticus/playdash/internal/predict"
	"github.com/Veraticus/playdash/internal/tui/components"
	"github.com/Veraticus/playdash/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Tab is one of the dashboard pages.
type Tab int

const (
	TabOverview Tab = iota
	TabInsights
	TabPredict
)

var tabTitles = []string{"📊 Overview", "📈 Visual Insights", "🤖 Predict Rating"}

// String returns the tab title.
func (t Tab) String() string {
	return tabTitles[t]
}

// Layout constants.
const (
	sidebarWidth  = 30
	compactWidth  = 80
	headerHeight  = 4
	footerHeight  = 2
	minBodyHeight = 6
)

// Model holds the main TUI state.
type Model struct {
	theme     themes.Theme
	lastError error
	store     Store
	predictor *predict.Service
	config    Config
	keymap    KeyMap
	help      help.Model
	viewport  viewport.Model
	sidebar   components.FilterSidebarModel
	form      components.PredictFormModel
	report    engine.Report
	height    int
	width     int
	tab       Tab
	quitting  bool
	fullHelp  bool
}

// newModel creates a new model with the given configuration and builds the
// initial report.
func newModel(cfg Config) Model {
	m := Model{
		config:    cfg,
		keymap:    DefaultKeyMap(),
		theme:     cfg.Theme,
		store:     cfg.Store,
		predictor: cfg.Predictor,
		help:      help.New(),
		width:     cfg.Width,
		height:    cfg.Height,
		sidebar:   components.NewFilterSidebarModel(cfg.Store, cfg.Theme),
	}

	for _, f := range model.FilterFields {
		if v := cfg.Selection.Get(f); v != model.All && !m.sidebar.Select(f, v) {
			slog.Warn("Ignoring unknown filter value", "filter", f.Label(), "value", v)
		}
	}

	var options map[model.Field][]string
	name := "unavailable"
	if cfg.Predictor != nil {
		options = cfg.Predictor.Options()
		name = cfg.Predictor.ModelName()
	}
	m.form = components.NewPredictFormModel(options, name, cfg.Theme)

	m.viewport = viewport.New(0, 0)
	m.report = engine.Build(m.store.All(), m.sidebar.Selection())
	m.handleResize()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Report returns the report currently on screen.
func (m Model) Report() engine.Report {
	return m.report
}

// ActiveTab returns the visible tab.
func (m Model) ActiveTab() Tab {
	return m.tab
}

// Form returns the prediction form state.
func (m Model) Form() components.PredictFormModel {
	return m.form
}

// LastError returns the most recent non-prediction error.
func (m Model) LastError() error {
	return m.lastError
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKeys(msg); handled {
			m.refresh()
			return m, cmd
		}
		cmds = append(cmds, m.handleTabKeys(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()

	case components.FilterChangedMsg:
		m.report = engine.Build(m.store.All(), msg.Selection)
		m.lastError = nil
		common.LogDebug("Filters changed", common.Fields{
			"active_filters": msg.Selection.ActiveCount(),
			"matching":       m.report.Summary.Count,
		})
		m.viewport.GotoTop()

	case components.PredictRequestMsg:
		cmds = append(cmds, m.runPrediction(msg.Raw))

	case predictionResultMsg:
		if msg.err != nil && !common.IsRecoverable(msg.err) {
			common.LogError(msg.err, "Prediction failed", nil)
		}
		m.form.SetResult(msg.prediction, msg.err)

	case errorMsg:
		m.lastError = msg.err
		common.LogError(msg.err, "Dashboard error", common.Fields{"context": msg.context})
	}

	m.refresh()
	return m, tea.Batch(cmds...)
}

// handleGlobalKeys handles keys that work on every tab.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return tea.Quit, true
	case key.Matches(msg, m.keymap.Help):
		m.fullHelp = !m.fullHelp
		m.help.ShowAll = m.fullHelp
		return nil, true
	case key.Matches(msg, m.keymap.NextTab):
		m.switchTab(1)
		return nil, true
	case key.Matches(msg, m.keymap.PrevTab):
		m.switchTab(-1)
		return nil, true
	case key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd, true
	}
	return nil, false
}

// handleTabKeys sends keys to the form on the predict tab and to the filter
// sidebar elsewhere.
func (m *Model) handleTabKeys(msg tea.KeyMsg) tea.Cmd {
	if m.tab == TabPredict {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Up):
		m.sidebar.FocusPrev()
	case key.Matches(msg, m.keymap.Down):
		m.sidebar.FocusNext()
	case key.Matches(msg, m.keymap.Left):
		return m.sidebar.Cycle(-1)
	case key.Matches(msg, m.keymap.Right):
		return m.sidebar.Cycle(1)
	case key.Matches(msg, m.keymap.Reset):
		m.sidebar.Reset()
		return announceSelection(m.sidebar)
	}
	return nil
}

func (m *Model) switchTab(delta int) {
	n := len(tabTitles)
	m.tab = Tab(((int(m.tab)+delta)%n + n) % n)
	m.viewport.GotoTop()
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	m.help.Width = m.width
	m.form.Resize(m.contentWidth())

	if m.compact() {
		m.sidebar.Resize(m.width - 2)
	} else {
		m.sidebar.Resize(sidebarWidth)
	}

	m.viewport.Width = m.contentWidth()
	m.viewport.Height = max(m.height-headerHeight-footerHeight, minBodyHeight)
	m.refresh()
}

func (m Model) compact() bool {
	return m.width < compactWidth
}

func (m Model) contentWidth() int {
	if m.compact() {
		return max(m.width-2, 20)
	}
	return max(m.width-sidebarWidth-3, 20)
}

// refresh re-renders the scrollable content for the active tab.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderContent())
}
