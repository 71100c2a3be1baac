package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	taskdomain "github.com/sayanthsai/ADHD-simulator/internal/modules/task/domain"
	"github.com/sayanthsai/ADHD-simulator/internal/ui/theme"
	canvasview "github.com/sayanthsai/ADHD-simulator/internal/ui/views/canvas"
	exerciseview "github.com/sayanthsai/ADHD-simulator/internal/ui/views/exercise"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface this orchestration layer requires.

type progressionPort interface {
	Start() error
	HandleInput(in taskdomain.Input) taskdomain.Progress
	Phase() taskdomain.Phase
	Current() taskdomain.Task
	Status() string
	Index() int
	Total() int
}

type schedulerPort interface {
	Start()
	Stop()
	Running() bool
	Live() int
}

type audioPort interface {
	Ready() bool
	LoadLoop(path string) error
	PlayLoop()
	StopLoop()
}

type timelinePort interface {
	C() <-chan func()
	Schedule(d time.Duration, fn func()) func()
}

// ─── phases ──────────────────────────────────────────────────────────────────

type phase int

const (
	phaseWelcome phase = iota
	phaseRunning
	phaseDone
)

// ─── async messages ───────────────────────────────────────────────────────────

// callbackMsg delivers one scheduled callback into Update so that every
// timer fires on the same goroutine that owns the model state.
type callbackMsg struct {
	fn func()
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Begin key.Binding
	Tab   key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Begin: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "begin")),
		Tab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch control")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:  key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Begin, k.Tab, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Begin, k.Tab},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Options carries the config-derived knobs the root model needs.
type Options struct {
	StartDelay      time.Duration
	LoopTrack       string
	Mute            bool
	MinCanvasWidth  int
	MinCanvasHeight int
}

// Model is the root Bubble Tea model. It owns phase routing and the session
// event loop pump; exercise logic lives behind the progression port and the
// distraction lifecycle behind the scheduler port.
type Model struct {
	prog  progressionPort
	sched schedulerPort
	audio audioPort
	tl    timelinePort
	opts  Options

	exView exerciseview.Model
	canvas canvasview.Model

	phase    phase
	keys     keyMap
	help     help.Model
	showHelp bool
	status   string
	width    int
	height   int
}

const exercisePaneWidth = 42

func NewModel(prog progressionPort, sched schedulerPort, audio audioPort, tl timelinePort, opts Options) Model {
	return Model{
		prog:   prog,
		sched:  sched,
		audio:  audio,
		tl:     tl,
		opts:   opts,
		exView: exerciseview.New(),
		canvas: canvasview.New(nil),
		keys:   defaultKeys(),
		help:   help.New(),
		status: "press enter to begin",
	}
}

// SetCanvas installs the surface renderer. Separate from the constructor so
// bootstrap can share one surface between the scheduler and the view.
func (m *Model) SetCanvas(c canvasview.Model) { m.canvas = c }

func (m Model) Init() tea.Cmd {
	return m.waitCallback()
}

// waitCallback blocks on the session timeline and feeds the next scheduled
// callback into Update. Re-armed after every delivery.
func (m Model) waitCallback() tea.Cmd {
	return func() tea.Msg {
		return callbackMsg{fn: <-m.tl.C()}
	}
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.exView.SetWidth(exercisePaneWidth - 4)
		m.layoutCanvas()
		return m, nil

	case callbackMsg:
		msg.fn()
		return m, m.waitCallback()

	case exerciseview.ActionMsg:
		return m.applyInput(msg.Input), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.exView, cmd = m.exView.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		m.shutdown()
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	}

	switch m.phase {
	case phaseWelcome:
		switch msg.String() {
		case "enter", "s":
			return m.begin(), nil
		case "q":
			m.shutdown()
			return m, tea.Quit
		}
		return m, nil

	case phaseDone:
		if msg.String() == "q" || msg.String() == "enter" {
			m.shutdown()
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.exView, cmd = m.exView.Update(msg)
	return m, cmd
}

// begin starts the exercise run and arms the delayed distraction onset.
func (m Model) begin() Model {
	if err := m.prog.Start(); err != nil {
		m.status = "start failed: " + err.Error()
		return m
	}
	if m.prog.Phase() == taskdomain.PhaseAllComplete { // empty task list
		m.phase = phaseDone
		m.status = "all tasks completed"
		return m
	}
	m.phase = phaseRunning
	m.exView.SetTask(m.prog.Current())
	m.exView.SetStatus(m.prog.Status())
	m.status = "stay on task"

	if !m.opts.Mute && m.opts.LoopTrack != "" && m.audio.Ready() {
		if err := m.audio.LoadLoop(m.opts.LoopTrack); err == nil {
			m.audio.PlayLoop()
		}
	}

	// The onset callback re-checks the session: all tasks may finish before
	// the delay elapses, in which case the distractions never start.
	prog, sched := m.prog, m.sched
	m.tl.Schedule(m.opts.StartDelay, func() {
		if prog.Phase() == taskdomain.PhaseTaskActive {
			sched.Start()
		}
	})
	return m
}

func (m Model) applyInput(in taskdomain.Input) Model {
	if m.phase != phaseRunning {
		return m
	}
	out := m.prog.HandleInput(in)
	if out.ClearInput {
		m.exView.ClearText()
	}
	m.exView.SetStatus(out.Status)
	if out.Advanced && !out.Ended {
		m.exView.SetTask(m.prog.Current())
	}
	if out.Ended {
		m.phase = phaseDone
		m.sched.Stop()
		m.audio.StopLoop()
		m.status = "all tasks completed"
	}
	return m
}

func (m *Model) shutdown() {
	if m.sched.Running() {
		m.sched.Stop()
	}
	m.audio.StopLoop()
}

func (m *Model) layoutCanvas() {
	innerW := m.width - exercisePaneWidth - 4
	innerH := m.height - 4
	if innerW < m.opts.MinCanvasWidth {
		innerW = m.opts.MinCanvasWidth
	}
	if innerH < m.opts.MinCanvasHeight {
		innerH = m.opts.MinCanvasHeight
	}
	m.canvas.SetSize(innerW, innerH)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.phase == phaseWelcome:
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center,
			m.renderWelcome())
	case m.phase == phaseDone:
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center,
			m.renderDone())
	default:
		left := theme.PaneActive.Width(exercisePaneWidth - 2).Height(contentH - 2).
			Render(m.exView.View())
		right := theme.Pane.Render(m.canvas.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) renderWelcome() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("ADHD Focus Simulator"),
		"",
		theme.Muted.Render("Complete every exercise while the screen"),
		theme.Muted.Render("fights for your attention."),
		"",
		theme.Hot.Render("press enter to begin"),
	)
}

func (m Model) renderDone() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		theme.Good.Render("All tasks completed!"),
		"",
		theme.Muted.Render("press enter to exit"),
	)
}

func (m Model) renderHeader() string {
	title := theme.Title.Render(" focussim ")
	progress := ""
	if m.phase != phaseWelcome {
		progress = theme.Muted.Render(fmt.Sprintf("task %d/%d", min(m.prog.Index()+1, m.prog.Total()), m.prog.Total()))
	}
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(progress) - 1
	if gap < 1 {
		gap = 1
	}
	bar := title + strings.Repeat(" ", gap) + progress
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.sched.Running() {
		left = theme.Hot.Render(fmt.Sprintf("● %d distractions", m.sched.Live())) + "  " + left
	}
	right := theme.Muted.Render("?:help  esc:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
