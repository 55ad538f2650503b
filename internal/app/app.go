package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/twig/internal/config"
	"github.com/henri123lemoine/twig/internal/debug"
	"github.com/henri123lemoine/twig/internal/engine"
	"github.com/henri123lemoine/twig/internal/git"
	"github.com/henri123lemoine/twig/internal/screen"
	"github.com/henri123lemoine/twig/internal/ui"
)

// busSize bounds how far background operations can run ahead of the loop.
const busSize = 64

// maxDrain caps how many rounds of screen-emitted events one message may
// trigger, so a screen that emits on every refresh cannot spin the loop.
const maxDrain = 16

// focusNames maps config names to the screens they select.
var focusNames = map[string]engine.ScreenID{
	"status":   engine.FileStatus,
	"branches": engine.BranchList,
	"log":      engine.CommitLog,
	"diff":     engine.WorkingDiff,
	"staged":   engine.StagedDiff,
}

// animator is implemented by screens that run bubbles animations.
type animator interface {
	Animate(msg tea.Msg) tea.Cmd
}

// Model is the event loop.
type Model struct {
	config *config.Config
	keys   KeyMap

	router *engine.Router
	queue  *engine.Queue
	bus    *engine.Bus
	ops    *engine.Manager
	pause  *engine.PauseFlag
	header *screen.Header

	layout ui.Layout
	titles map[engine.ScreenID]string

	// lastUpdateErr is the message of the refresh error shown last, so a
	// persisting error is reported once instead of every tick.
	lastUpdateErr string
	quitting      bool
}

// New creates the model. Background operations stop posting once ctx is
// done. pause is shared with the tick source.
func New(ctx context.Context, cfg *config.Config, backend git.Backend, pause *engine.PauseFlag) *Model {
	m := &Model{
		config: cfg,
		keys:   KeyMapFromConfig(&cfg.Keys),
		router: engine.NewRouter(),
		queue:  &engine.Queue{},
		bus:    engine.NewBus(busSize),
		pause:  pause,
	}
	m.ops = engine.NewManager(ctx, backend, m.bus)

	deps := &screen.Deps{
		Backend: backend,
		Ops:     m.ops,
		Events:  m.queue,
		Remote:  cfg.General.Remote,
		Editor:  cfg.EditorCommand(),
	}
	m.header = screen.NewHeader(deps)

	m.router.Register(engine.FileStatus, screen.NewFiles(deps))
	m.router.Register(engine.BranchList, screen.NewBranches(deps))
	m.router.Register(engine.CommitLog, screen.NewLog(deps))
	m.router.Register(engine.WorkingDiff, screen.NewDiff(deps, false))
	m.router.Register(engine.StagedDiff, screen.NewDiff(deps, true))
	m.router.Register(engine.CommitPopup, screen.NewCommitPopup(deps))
	m.router.Register(engine.BranchCreatePopup, screen.NewBranchPopup(deps))
	m.router.Register(engine.RemoteSetupPopup, screen.NewRemotePopup(deps))
	m.router.Register(engine.ErrorPopup, screen.NewErrorPopup(deps))
	m.router.Register(engine.CherryPickPopup, screen.NewCherryPickPopup(deps))
	m.router.Register(engine.CommitDetailPopup, screen.NewDetailPopup(deps))
	m.router.Register(engine.TransientMessagePopup, screen.NewMessagePopup(deps))

	m.titles = map[engine.ScreenID]string{
		engine.FileStatus:            m.paneTitle(m.keys.Status, "Status"),
		engine.BranchList:            m.paneTitle(m.keys.Branches, "Branches"),
		engine.CommitLog:             m.paneTitle(m.keys.Log, "Log"),
		engine.WorkingDiff:           m.paneTitle(m.keys.Diff, "Diff"),
		engine.StagedDiff:            m.paneTitle(m.keys.Staged, "Staged"),
		engine.CommitPopup:           "Commit",
		engine.BranchCreatePopup:     "New branch",
		engine.RemoteSetupPopup:      "Add remote",
		engine.ErrorPopup:            "Error",
		engine.CherryPickPopup:       "Cherry-pick",
		engine.CommitDetailPopup:     "Commit details",
		engine.TransientMessagePopup: "twig",
	}

	m.resize(0, 0)

	initial, ok := focusNames[cfg.General.InitialFocus]
	if !ok {
		initial = engine.FileStatus
	}
	m.router.Focus(initial)
	return m
}

func (m *Model) paneTitle(b key.Binding, name string) string {
	return fmt.Sprintf("[%s] %s", b.Help().Key, name)
}

// Init starts listening for background events.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.listen(), tea.SetWindowTitle("twig"))
}

// listen waits for the next event on the bus. It is re-armed after every
// bus message so exactly one listener is pending.
func (m *Model) listen() tea.Cmd {
	events := m.bus.Events()
	return func() tea.Msg {
		return busMsg{event: <-events}
	}
}

// Update handles one message, runs any events it caused, then refreshes the
// browsable screens.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case engine.TickMsg:

	case tea.KeyMsg:
		m.handleKey(msg)

	case busMsg:
		cmds = append(cmds, m.handleEvent(msg.event), m.listen())

	case externalDoneMsg:
		m.pause.Resume()
		debug.Event("loop", "external program exited: %v", msg.err)
		m.queue.Emit(engine.RequestRedrawReset{})
		switch {
		case msg.onExit != nil:
			m.queue.Emit(msg.onExit(msg.err))
		case msg.err != nil:
			m.queue.Emit(engine.ReportFailure{Err: msg.err})
		}
	}

	cmds = append(cmds, m.drain())
	if m.quitting {
		return m, tea.Quit
	}

	// Spinner frames only animate; they do not warrant a repository scan.
	if _, ok := msg.(spinner.TickMsg); !ok {
		m.refresh()
		cmds = append(cmds, m.drain())
	}

	if a, ok := m.focused().(animator); ok {
		cmds = append(cmds, a.Animate(msg))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	if msg.Type == tea.KeyCtrlC {
		m.queue.Emit(engine.RequestExit{})
		return
	}

	if !m.router.IsModalActive() && !m.router.Capturing() {
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Exit):
			m.queue.Emit(engine.RequestExit{})
			return
		}
		for _, j := range m.keys.jumps() {
			if key.Matches(msg, j.binding) {
				m.router.Focus(j.id)
				return
			}
		}
	}

	if err := m.router.DispatchInput(msg); err != nil {
		m.queue.Emit(engine.ReportFailure{Err: err})
	}
}

// drain handles queued screen events until the queue stays empty.
func (m *Model) drain() tea.Cmd {
	var cmds []tea.Cmd
	for range maxDrain {
		events := m.queue.Drain()
		if len(events) == 0 {
			break
		}
		for _, ev := range events {
			cmds = append(cmds, m.handleEvent(ev))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleEvent(ev engine.Event) tea.Cmd {
	switch ev := ev.(type) {
	case engine.RequestExit:
		m.quitting = true
		return tea.Quit

	case engine.ReportFailure:
		f := engine.AsFailure(ev.Err)
		debug.Event("loop", "failure: %v", f)
		m.router.Focus(engine.ShowFailure{Failure: f})

	case engine.RequestFocus:
		m.router.Focus(ev.Target)

	case engine.RepositoryChanged:
		err := m.router.UpdateScreens(ev.Change.Screens()...)
		if herr := m.header.Update(); err == nil {
			err = herr
		}
		if err != nil {
			m.queue.Emit(engine.ReportFailure{Err: err})
		}

	case engine.RequestRedrawReset:
		return tea.ClearScreen

	case engine.OperationProgress:
		s, _ := m.router.Screen(engine.TransientMessagePopup)
		if sink, ok := s.(engine.ProgressSink); ok {
			sink.SetProgress(ev.Label, ev.Percent)
		}

	case engine.RunExternal:
		if ev.Cmd == nil {
			return nil
		}
		debug.Event("loop", "handing terminal to %s", strings.Join(ev.Cmd.Args, " "))
		m.pause.Pause()
		onExit := ev.OnExit
		return tea.ExecProcess(ev.Cmd, func(err error) tea.Msg {
			return externalDoneMsg{err: err, onExit: onExit}
		})
	}
	return nil
}

// refresh updates the header and every browsable screen. An error is
// reported only when it differs from the last one.
func (m *Model) refresh() {
	err := m.router.DispatchUpdate()
	if herr := m.header.Update(); err == nil {
		err = herr
	}
	if err == nil {
		m.lastUpdateErr = ""
		return
	}
	if msg := err.Error(); msg != m.lastUpdateErr {
		m.lastUpdateErr = msg
		m.queue.Emit(engine.ReportFailure{Err: err})
	}
}

func (m *Model) focused() engine.Screen {
	s, _ := m.router.Screen(m.router.Current())
	return s
}

// resize recomputes the layout and hands every screen its content size.
func (m *Model) resize(width, height int) {
	m.layout = ui.MainLayout(width, height, m.config.UI.ShowHelp)
	for id, rect := range m.layout.Panes {
		if s, ok := m.router.Screen(id); ok {
			s.SetViewport(rect.Inner())
		}
	}
	popupW := m.layout.PopupWidth() - 2
	popupH := m.layout.PopupMaxHeight() - 2
	for id := engine.CommitPopup; id <= engine.TransientMessagePopup; id++ {
		if s, ok := m.router.Screen(id); ok {
			s.SetViewport(popupW, popupH)
		}
	}
}

// View renders the frame.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	current := m.router.Current()
	modal := m.router.IsModalActive()

	r := ui.NewRenderer(m.layout)
	r.DrawHeader(m.header.View())
	for _, ids := range [][]engine.ScreenID{ui.LeftColumn, ui.RightColumn} {
		for _, id := range ids {
			s, ok := m.router.Screen(id)
			if !ok {
				continue
			}
			focused := id == current || (modal && id == m.router.Last())
			r.DrawScreen(id, m.titles[id], s.View(), focused)
		}
	}
	if modal {
		r.DrawPopup(m.titles[current], m.focused().View())
	}
	if m.config.UI.ShowHelp {
		r.DrawFooter(m.footer())
	}
	return r.String()
}

func (m *Model) footer() string {
	var full, compact []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		full = append(full, h.Key+" "+h.Desc)
		compact = append(compact, h.Key)
	}
	return ui.HelpStyle.Render(ui.CompactHelp(strings.Join(full, " • "), strings.Join(compact, " "), m.layout.Width))
}

// Current returns the focused screen.
func (m *Model) Current() engine.ScreenID {
	return m.router.Current()
}

// Screen returns the screen registered under id.
func (m *Model) Screen(id engine.ScreenID) engine.Screen {
	s, _ := m.router.Screen(id)
	return s
}
