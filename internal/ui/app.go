package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/framelist/internal/logtail"
	"github.com/five82/framelist/internal/objlist"
	"github.com/five82/framelist/internal/prefs"
	"github.com/five82/framelist/internal/state"
)

// Options configures the UI.
type Options struct {
	Backend   objlist.Backend
	Store     *state.Store
	Collapse  objlist.CollapseStore
	Session   objlist.Session
	Ordering  objlist.Ordering
	Filters   []string
	Shortcuts []objlist.Shortcut // nil uses objlist.DefaultShortcuts
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
	LogPath   string // shown by the log overlay; empty when logging is off
	Logger    *slog.Logger
}

// Model is the root application state for Bubble Tea. The coordinator is only
// touched from Update; backend calls run inside commands.
type Model struct {
	// Configuration
	ctx       context.Context
	backend   objlist.Backend
	store     *state.Store
	coord     *objlist.Coordinator
	matcher   *objlist.Matcher
	keys      keyMap
	logger    *slog.Logger
	prefsPath string
	pollTick  time.Duration

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Data state
	snapshot state.Snapshot
	inflight int // backend calls started from the UI that have not returned

	// List state
	selected int
	offset   int

	// Overlays
	showHelp bool
	showLog  bool
	logPath  string
	logLines []string
	logErr   error
	warnOnly bool

	// Filter editor
	editingFilters bool
	filterInput    textinput.Model
}

// New creates a new Bubble Tea model.
func New(ctx context.Context, opts Options) (Model, error) {
	if opts.Backend == nil {
		return Model{}, errors.New("ui: backend is required")
	}
	if opts.Store == nil {
		return Model{}, errors.New("ui: store is required")
	}
	if opts.Collapse == nil {
		return Model{}, errors.New("ui: collapse store is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	shortcuts := opts.Shortcuts
	if shortcuts == nil {
		shortcuts = objlist.DefaultShortcuts()
	}
	matcher, err := objlist.NewMatcher(shortcuts)
	if err != nil {
		return Model{}, fmt.Errorf("ui: %w", err)
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	snap := opts.Store.Snapshot()
	coord := objlist.NewCoordinator(opts.Backend, opts.Collapse, objlist.Options{
		Session:  opts.Session,
		Frame:    snap.Frame,
		Ordering: opts.Ordering,
		Filters:  opts.Filters,
	})

	input := textinput.New()
	input.Prompt = "filters> "
	input.Placeholder = "expr; expr"
	input.CharLimit = 512

	m := Model{
		ctx:         ctx,
		backend:     opts.Backend,
		store:       opts.Store,
		coord:       coord,
		matcher:     matcher,
		keys:        DefaultKeyMap(),
		logger:      logger,
		prefsPath:   opts.PrefsPath,
		logPath:     opts.LogPath,
		pollTick:    pollTick,
		theme:       GetTheme(themeName),
		filterInput: input,
	}
	m.applySnapshot(snap)
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.pollTick),
		fetchSnapshotCmd(m.store),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.filterInput.Width = maxInt(msg.Width-12, 10)
		m.clampSelection()
		return m, nil

	case tickMsg:
		return m, tea.Batch(fetchSnapshotCmd(m.store), tickCmd(m.pollTick))

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case persistDoneMsg:
		m.finishCall()
		if msg.err != nil {
			m.logger.Warn("bulk change failed",
				"field", msg.mutation.Field.String(),
				"value", msg.mutation.Value,
				"objects", len(msg.mutation.States),
				"error", msg.err)
			m.store.RecordError(msg.err)
			m.applySnapshot(m.store.Snapshot())
			return m, nil
		}
		m.logger.Debug("bulk change persisted",
			"field", msg.mutation.Field.String(),
			"value", msg.mutation.Value,
			"objects", len(msg.mutation.States))
		// Show what the server stored, not what was sent.
		return m.refetch()

	case fetchDoneMsg:
		m.finishCall()
		if !m.store.Apply(msg.ticket, msg.states, msg.err) {
			m.logger.Debug("dropped stale fetch", "frame", msg.ticket.Frame, "seq", msg.ticket.Seq)
		} else if msg.err != nil {
			m.logger.Warn("fetch failed", "frame", msg.ticket.Frame, "error", msg.err)
		}
		m.applySnapshot(m.store.Snapshot())
		return m, nil

	case logLoadedMsg:
		m.logLines, m.logErr = msg.lines, msg.err
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.showLog {
		return m.renderLog()
	}

	return m.renderMain()
}

// applySnapshot syncs the coordinator with the store. A frame change made
// elsewhere is followed first, then the collection is offered; identical
// collections are ignored by the coordinator.
func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	if snap.Frame != m.coord.Frame() {
		m.coord.SetFrame(snap.Frame)
		m.selected, m.offset = 0, 0
	}
	if snap.Collection != nil {
		m.keepSelection(func() { m.coord.OnCollectionChanged(snap.Collection) })
		return
	}
	m.clampSelection()
}

func (m *Model) finishCall() {
	if m.inflight > 0 {
		m.inflight--
	}
}

// refetch issues a fetch of the current frame.
func (m Model) refetch() (tea.Model, tea.Cmd) {
	ticket := m.store.Begin()
	m.inflight++
	return m, fetchCmd(m.ctx, m.backend, m.coord.Session(), ticket)
}

// commit persists a prepared bulk change. Nothing is sent before the frame
// has loaded.
func (m Model) commit(mut objlist.Mutation) (tea.Model, tea.Cmd) {
	if m.coord.Collection() == nil {
		return m, nil
	}
	m.logger.Info("bulk change",
		"field", mut.Field.String(),
		"value", mut.Value,
		"objects", len(mut.States),
		"frame", mut.Frame)
	m.inflight++
	return m, commitCmd(m.ctx, m.coord, mut)
}

// applyFilters replaces the filter set and refetches under it.
func (m Model) applyFilters(filters []string) (tea.Model, tea.Cmd) {
	change := m.coord.SetFilters(filters)
	m.logger.Info("filters changed", "filters", change.Filters, "frame", change.Frame)
	m.inflight++
	return m, filtersCmd(m.ctx, m.coord, m.store, change)
}

// savePrefs stores theme and ordering. Failures are logged only.
func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Ordering: m.coord.Ordering().String()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save preferences", "path", m.prefsPath, "error", err)
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type persistDoneMsg struct {
	mutation objlist.Mutation
	err      error
}

type fetchDoneMsg struct {
	ticket state.Ticket
	states []objlist.ObjectState
	err    error
}

type logLoadedMsg struct {
	lines []string
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func fetchCmd(ctx context.Context, backend objlist.Backend, session objlist.Session, ticket state.Ticket) tea.Cmd {
	return func() tea.Msg {
		states, err := backend.Fetch(ctx, session, ticket.Frame)
		if err != nil {
			err = fmt.Errorf("fetch frame %d: %w", ticket.Frame, err)
		}
		return fetchDoneMsg{ticket: ticket, states: states, err: err}
	}
}

func commitCmd(ctx context.Context, coord *objlist.Coordinator, mut objlist.Mutation) tea.Cmd {
	return func() tea.Msg {
		return persistDoneMsg{mutation: mut, err: coord.Commit(ctx, mut)}
	}
}

func loadLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogFetchLimit)
		return logLoadedMsg{lines: lines, err: err}
	}
}

// filtersCmd takes its ticket only once the server has the new filter set, so
// any fetch issued before that point loses to this one.
func filtersCmd(ctx context.Context, coord *objlist.Coordinator, store *state.Store, change objlist.FilterChange) tea.Cmd {
	return func() tea.Msg {
		states, err := coord.ApplyFilters(ctx, change)
		return fetchDoneMsg{ticket: store.Issue(change.Frame), states: states, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	m, err := New(ctx, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
