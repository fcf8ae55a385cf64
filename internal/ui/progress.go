package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"lintel/internal/driver"
)

// maxVisible bounds the file rows; finished files scroll off first.
const maxVisible = 12

const statusWidth = 10

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	stateStyles = map[rowState]lipgloss.Style{
		rowQueued: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		rowActive: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		rowDone:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		rowCached: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		rowFailed: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

type rowState uint8

const (
	rowQueued rowState = iota
	rowActive
	rowDone
	rowCached
	rowFailed
)

func (s rowState) final() bool { return s >= rowDone }

type fileRow struct {
	path    string
	state   rowState
	stage   driver.Stage
	elapsed time.Duration
}

// label is the text shown in the status column.
func (r fileRow) label() string {
	switch r.state {
	case rowQueued:
		return "queued"
	case rowDone:
		return "done"
	case rowCached:
		return "cached"
	case rowFailed:
		return "error"
	}
	switch r.stage {
	case driver.StageLoad:
		return "loading"
	case driver.StageParse:
		return "parsing"
	case driver.StageAnalyze:
		return "analyzing"
	case driver.StageFix:
		return "fixing"
	}
	return "working"
}

// weight is the share of the file's work considered complete.
func (r fileRow) weight() float64 {
	if r.state.final() {
		return 1
	}
	if r.state == rowQueued {
		return 0
	}
	switch r.stage {
	case driver.StageLoad:
		return 0.1
	case driver.StageParse:
		return 0.3
	case driver.StageAnalyze, driver.StageFix:
		return 0.6
	}
	return 0
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	counts  [rowFailed + 1]int
	width   int
	done    bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders per-file progress
// of a check or fix run. Files not listed up front are added when their
// first event arrives.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = stateStyles[rowActive]

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for _, file := range files {
		m.row(file)
	}
	return m
}

func (m *progressModel) row(path string) *fileRow {
	idx, ok := m.byPath[path]
	if !ok {
		idx = len(m.rows)
		m.rows = append(m.rows, fileRow{path: path})
		m.byPath[path] = idx
	}
	return &m.rows[idx]
}

func (m *progressModel) finished() int {
	return m.counts[rowDone] + m.counts[rowCached] + m.counts[rowFailed]
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) header() string {
	var b strings.Builder
	if m.done {
		b.WriteString("done: ")
	} else {
		b.WriteString(m.spinner.View() + " ")
	}
	fmt.Fprintf(&b, "%s %d/%d", m.title, m.finished(), len(m.rows))
	if n := m.counts[rowCached]; n > 0 {
		fmt.Fprintf(&b, " (%d cached)", n)
	}
	if n := m.counts[rowFailed]; n > 0 {
		fmt.Fprintf(&b, " (%d failed)", n)
	}
	return b.String()
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.header()))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusWidth-12, 20)
	for _, r := range m.visible() {
		status := stateStyles[r.state].Render(fmt.Sprintf("%*s", statusWidth, r.label()))
		b.WriteString("  " + status + " " + truncate(r.path, nameWidth))
		if r.state == rowDone && r.elapsed > 0 {
			b.WriteString(dimStyle.Render(" " + r.elapsed.Round(time.Millisecond).String()))
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

// visible keeps active files on screen and fills the rest with queued ones.
func (m *progressModel) visible() []fileRow {
	if len(m.rows) <= maxVisible {
		return m.rows
	}
	out := make([]fileRow, 0, maxVisible)
	for _, want := range []rowState{rowActive, rowQueued} {
		for _, r := range m.rows {
			if len(out) == maxVisible {
				return out
			}
			if r.state == want {
				out = append(out, r)
			}
		}
	}
	return out
}

func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		return nil
	}
	r := m.row(ev.File)
	if r.state.final() {
		return nil
	}
	switch ev.Status {
	case driver.StatusQueued:
		r.state = rowQueued
	case driver.StatusWorking:
		r.state, r.stage = rowActive, ev.Stage
	case driver.StatusDone:
		r.state, r.stage = rowDone, ev.Stage
	case driver.StatusCached:
		r.state = rowCached
	case driver.StatusError:
		r.state, r.stage = rowFailed, ev.Stage
	default:
		return nil
	}
	r.elapsed = ev.Elapsed
	if r.state.final() {
		m.counts[r.state]++
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var total float64
	for _, r := range m.rows {
		total += r.weight()
	}
	return total / float64(len(m.rows))
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
