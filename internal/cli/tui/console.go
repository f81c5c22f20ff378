package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ragar/ragarctl/internal/cli/types"
	"github.com/ragar/ragarctl/internal/console"
	"github.com/ragar/ragarctl/internal/domain"
)

// UI configuration constants
const (
	defaultWindowWidth  = 120
	defaultWindowHeight = 40
	chromeHeight        = 9
	minTableHeight      = 5
	diagnosticsShown    = 8
)

var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// API is everything the console needs from the server. *client.APIClient implements it.
type API interface {
	console.Fetcher
	console.DatasetUploader
	console.GameSaver
	console.ProviderSaver
}

// Options configures the console
type Options struct {
	Server           string
	InitialTab       console.Tab
	RequestTimeout   time.Duration
	UploadTimeout    time.Duration
	DiagnosticsLimit int
	Logger           *slog.Logger
}

// ConsoleProgram encapsulates the console TUI program
type ConsoleProgram struct {
	ctx   context.Context
	model consoleModel
}

// NewConsoleProgram creates a console bound to api
func NewConsoleProgram(ctx context.Context, api API, opts Options) *ConsoleProgram {
	return &ConsoleProgram{ctx: ctx, model: newConsoleModel(ctx, api, opts)}
}

// Run starts the console and blocks until the operator quits
func (p *ConsoleProgram) Run() error {
	program := tea.NewProgram(p.model, tea.WithAltScreen(), tea.WithContext(p.ctx))
	_, err := program.Run()
	return err
}

// formTarget tells which session the open form belongs to
type formTarget int

const (
	formUpload formTarget = iota + 1
	formGame
	formProvider
)

// consoleModel is the Bubble Tea model. Remote data and filters live in the
// controller; the model only holds widgets and the open form.
type consoleModel struct {
	ctx    context.Context
	api    API
	opts   Options
	logger *slog.Logger
	ctrl   *console.Controller

	keys     keyMap
	formKeys formKeyMap
	help     help.Model
	table    table.Model
	viewport viewport.Model
	spinner  spinner.Model

	gameFilter textinput.Model
	filtering  bool

	upload   *console.UploadSession
	game     *console.GameSession
	provider *console.ProviderSession
	form     *formModel
	target   formTarget

	showDiagnostics bool
	status          string
	statusErr       bool

	width  int
	height int
}

func newConsoleModel(ctx context.Context, api API, opts Options) consoleModel {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.UploadTimeout <= 0 {
		opts.UploadTimeout = 5 * time.Minute
	}
	if opts.InitialTab == "" {
		opts.InitialTab = console.TabDatasets
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	t := table.New(table.WithFocused(true), table.WithHeight(defaultWindowHeight-chromeHeight))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	gameFilter := textinput.New()
	gameFilter.Prompt = "game: "
	gameFilter.Placeholder = "slug, empty for all"
	gameFilter.CharLimit = 128

	m := consoleModel{
		ctx:    ctx,
		api:    api,
		opts:   opts,
		logger: logger,
		ctrl: console.NewController(
			console.WithInitialTab(opts.InitialTab),
			console.WithDiagnosticsLimit(opts.DiagnosticsLimit),
			console.WithLogger(logger),
		),
		keys:       defaultKeyMap(),
		formKeys:   defaultFormKeyMap(),
		help:       help.New(),
		table:      t,
		viewport:   viewport.New(defaultWindowWidth, defaultWindowHeight-chromeHeight),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle)),
		gameFilter: gameFilter,
		upload:     console.NewUploadSession(),
		game:       console.NewGameSession(nil, nil),
		provider:   console.NewProviderSession(),
		width:      defaultWindowWidth,
		height:     defaultWindowHeight,
	}
	m.syncTable()
	return m
}

// Message type definitions
type (
	fetchResultMsg struct{ res console.FetchResult }
	uploadDoneMsg  struct {
		dataset *types.Dataset
		err     error
	}
	gameSavedMsg struct {
		game *types.Game
		err  error
	}
	providerSavedMsg struct {
		provider *types.Provider
		err      error
	}
)

// Init issues the initial fetch (Bubble Tea interface)
func (m consoleModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch(m.ctrl.Start()))
}

// fetch turns issued requests into commands; results come back as fetchResultMsg
func (m consoleModel) fetch(reqs []console.FetchRequest) tea.Cmd {
	if len(reqs) == 0 {
		return nil
	}
	ctx, api, timeout := m.ctx, m.api, m.opts.RequestTimeout
	cmds := make([]tea.Cmd, 0, len(reqs))
	for _, req := range reqs {
		cmds = append(cmds, func() tea.Msg {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return fetchResultMsg{res: console.Run(ctx, api, req)}
		})
	}
	return tea.Batch(cmds...)
}

// Update processes messages and updates the model (Bubble Tea interface)
func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyPress(msg))

	case tea.WindowSizeMsg:
		m.handleWindowResize(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case fetchResultMsg:
		m.handleFetchResult(msg.res)

	case uploadDoneMsg:
		cmds = append(cmds, m.handleUploadDone(msg))

	case gameSavedMsg:
		m.game.Finish(msg.err)
		cmds = append(cmds, m.handleSaved("game", msg.err, m.game.IsOpen()))
		if msg.err == nil && msg.game != nil {
			m.setStatus("Saved game "+msg.game.Slug, false)
		}

	case providerSavedMsg:
		m.provider.Finish(msg.err)
		cmds = append(cmds, m.handleSaved("provider", msg.err, m.provider.IsOpen()))
		if msg.err == nil && msg.provider != nil {
			m.setStatus("Saved provider "+msg.provider.Slug, false)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *consoleModel) handleWindowResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width

	h := max(msg.Height-chromeHeight, minTableHeight)
	m.table.SetHeight(h)
	m.table.SetWidth(msg.Width)
	m.viewport.Width = msg.Width
	m.viewport.Height = h
	m.syncTable()
}

func (m *consoleModel) handleFetchResult(res console.FetchResult) {
	if !m.ctrl.Apply(res) {
		return
	}
	if res.Err != nil {
		m.setStatus(domain.UserMessage(res.Err), true)
	}
	if m.target == formGame && (res.Request.Op == console.OpProviders || res.Request.Op == console.OpGameTags) {
		st := m.ctrl.State()
		m.game.SetSources(st.Providers, st.GameTags)
	}
	m.syncTable()
}

func (m *consoleModel) handleUploadDone(msg uploadDoneMsg) tea.Cmd {
	m.upload.Finish(msg.err)
	if msg.err != nil {
		m.ctrl.Record(console.OpDatasets, msg.err)
		if m.form != nil {
			m.form.err = msg.err
		}
		return nil
	}
	m.closeForm()
	name := ""
	if msg.dataset != nil {
		name = msg.dataset.Name
	}
	m.setStatus("Uploaded dataset "+name, false)
	return m.fetch(m.ctrl.Refresh())
}

func (m *consoleModel) handleSaved(kind string, err error, stillOpen bool) tea.Cmd {
	if err != nil {
		op := console.OpGames
		if kind == "provider" {
			op = console.OpProviders
		}
		m.ctrl.Record(op, err)
		if m.form != nil {
			m.form.err = err
		}
		return nil
	}
	if !stillOpen {
		m.closeForm()
	}
	return m.fetch(m.ctrl.Refresh())
}

func (m *consoleModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// handleKeyPress routes keys to the open form, the game filter input or the global bindings
func (m *consoleModel) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if m.form != nil {
		return m.handleFormKey(msg)
	}
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab(-1)
	case key.Matches(msg, m.keys.Refresh):
		return m.fetch(m.ctrl.Refresh())
	case key.Matches(msg, m.keys.GameFilter):
		m.filtering = true
		m.gameFilter.SetValue(filterText(m.ctrl.Filters().Game))
		return m.gameFilter.Focus()
	case key.Matches(msg, m.keys.TypeFilter):
		return m.cycleFilter(console.FilterDataType, dataTypeValues())
	case key.Matches(msg, m.keys.CatFilter):
		return m.cycleFilter(console.FilterCategory, categoryValues())
	case key.Matches(msg, m.keys.StatFilter):
		return m.cycleFilter(console.FilterStatus, statusValues())
	case key.Matches(msg, m.keys.New):
		return m.openForm(nil)
	case key.Matches(msg, m.keys.Edit):
		return m.editSelected()
	case key.Matches(msg, m.keys.Diagnostics):
		m.showDiagnostics = !m.showDiagnostics
		return nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	}

	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] < '1'+byte(len(console.Tabs)) {
		return m.fetch(m.setTab(console.Tabs[s[0]-'1']))
	}

	var cmd tea.Cmd
	if m.ctrl.Tab() == console.TabAnalytics {
		m.viewport, cmd = m.viewport.Update(msg)
	} else {
		m.table, cmd = m.table.Update(msg)
	}
	return cmd
}

func (m *consoleModel) switchTab(delta int) tea.Cmd {
	cur := m.ctrl.Tab()
	for i, t := range console.Tabs {
		if t == cur {
			next := console.Tabs[(i+delta+len(console.Tabs))%len(console.Tabs)]
			return m.fetch(m.setTab(next))
		}
	}
	return nil
}

func (m *consoleModel) setTab(tab console.Tab) []console.FetchRequest {
	reqs := m.ctrl.SetTab(tab)
	m.table.SetCursor(0)
	m.syncTable()
	return reqs
}

func (m *consoleModel) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.gameFilter.Blur()
		return nil
	case tea.KeyEnter:
		m.filtering = false
		m.gameFilter.Blur()
		return m.applyFilter(console.FilterGame, m.gameFilter.Value())
	}
	var cmd tea.Cmd
	m.gameFilter, cmd = m.gameFilter.Update(msg)
	return cmd
}

func (m *consoleModel) applyFilter(kind console.FilterKind, value string) tea.Cmd {
	reqs, err := m.ctrl.SetFilter(kind, value)
	if err != nil {
		m.setStatus(err.Error(), true)
		return nil
	}
	return m.fetch(reqs)
}

// cycleFilter advances a select-style filter to its next value; each step fetches
func (m *consoleModel) cycleFilter(kind console.FilterKind, values []string) tea.Cmd {
	cur := m.ctrl.Filters().Get(kind)
	next := values[0]
	for i, v := range values {
		if v == cur {
			next = values[(i+1)%len(values)]
			break
		}
	}
	return m.applyFilter(kind, next)
}

func filterText(v string) string {
	if v == console.FilterAll {
		return ""
	}
	return v
}

func dataTypeValues() []string {
	out := []string{console.FilterAll}
	for _, v := range types.DataTypes {
		out = append(out, string(v))
	}
	return out
}

func categoryValues() []string {
	out := []string{console.FilterAll}
	for _, v := range types.Categories {
		out = append(out, string(v))
	}
	return out
}

func statusValues() []string {
	out := []string{console.FilterAll}
	for _, v := range types.DatasetStatuses {
		out = append(out, string(v))
	}
	return out
}

// openForm opens the active tab's form, editing record when non-nil
func (m *consoleModel) openForm(record any) tea.Cmd {
	var cmds []tea.Cmd
	switch m.ctrl.Tab() {
	case console.TabDatasets:
		m.upload.Open()
		m.form, m.target = uploadForm(m.upload), formUpload
	case console.TabGames:
		st := m.ctrl.State()
		m.game.SetSources(st.Providers, st.GameTags)
		g, _ := record.(*types.Game)
		m.game.Open(g)
		m.form, m.target = gameForm(m.game), formGame
		cmds = append(cmds, m.fetch(m.ctrl.ReferenceRequests()))
	case console.TabProviders:
		p, _ := record.(*types.Provider)
		m.provider.Open(p)
		m.form, m.target = providerForm(m.provider), formProvider
	default:
		return nil
	}
	cmds = append(cmds, m.form.focusField(0))
	return tea.Batch(cmds...)
}

func (m *consoleModel) editSelected() tea.Cmd {
	st := m.ctrl.State()
	i := m.table.Cursor()
	switch m.ctrl.Tab() {
	case console.TabGames:
		if i >= 0 && i < len(st.Games) {
			g := st.Games[i]
			return m.openForm(&g)
		}
	case console.TabProviders:
		if i >= 0 && i < len(st.Providers) {
			p := st.Providers[i]
			return m.openForm(&p)
		}
	}
	return nil
}

func (m *consoleModel) closeForm() {
	switch m.target {
	case formUpload:
		m.upload.Close()
	case formGame:
		m.game.Close()
	case formProvider:
		m.provider.Close()
	}
	m.form, m.target = nil, 0
}

func (m *consoleModel) busy() bool {
	return m.upload.Uploading() || m.game.Saving() || m.provider.Saving()
}

func (m *consoleModel) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	if m.busy() {
		return nil
	}
	cmd, action := m.form.update(msg, m.formKeys)
	switch action {
	case formCancel:
		m.closeForm()
		return nil
	case formSubmit:
		return m.submitForm()
	}
	return cmd
}

// submitForm starts the save off the UI loop. Validation failures never reach the network.
func (m *consoleModel) submitForm() tea.Cmd {
	if err := m.form.validate(); err != nil {
		m.form.err = err
		return nil
	}
	m.form.err = nil
	ctx := m.ctx

	switch m.target {
	case formUpload:
		job, err := m.upload.Start()
		if err != nil {
			m.form.err = err
			return nil
		}
		api, timeout := m.api, m.opts.UploadTimeout
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			ds, err := job.Run(ctx, api)
			return uploadDoneMsg{dataset: ds, err: err}
		}

	case formGame:
		job, err := m.game.Start()
		if err != nil {
			m.form.err = err
			return nil
		}
		api, timeout := m.api, m.opts.RequestTimeout
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			g, err := job.Run(ctx, api)
			return gameSavedMsg{game: g, err: err}
		}

	case formProvider:
		job, err := m.provider.Start()
		if err != nil {
			m.form.err = err
			return nil
		}
		api, timeout := m.api, m.opts.RequestTimeout
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			p, err := job.Run(ctx, api)
			return providerSavedMsg{provider: p, err: err}
		}
	}
	return nil
}
