// Package ui renders compiler progress in the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"cs2ts/internal/compiler"
)

type progressModel struct {
	title      string
	events     <-chan compiler.Event
	spinner    spinner.Model
	prog       progress.Model
	items      []fileItem
	index      map[string]int
	stageLabel string
	width      int
	done       bool
}

type fileItem struct {
	path   string
	status string
	stage  compiler.Stage
	final  bool
}

type eventMsg compiler.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders one line per
// document until events is closed.
func NewProgressModel(title string, files []string, events <-chan compiler.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = workingStyle

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: "queued"})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(compiler.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	header := m.title
	switch {
	case m.done:
		header = "done: " + header
	case m.stageLabel != "":
		header = m.spinner.View() + " " + header + " · " + m.stageLabel
	default:
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	const statusWidth = 12
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, item := range m.items {
		status := styleFor(item.status).Render(fmt.Sprintf("%*s", statusWidth, item.status))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(item.path, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n  " + m.tally() + "\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev compiler.Event) tea.Cmd {
	label := statusLabel(ev.Stage, ev.Status)
	if ev.File == "" {
		if ev.Status == compiler.StatusWorking {
			m.stageLabel = label
		}
		return nil
	}
	idx, ok := m.index[ev.File]
	if !ok || m.items[idx].final || label == "" {
		return nil
	}
	item := &m.items[idx]
	item.status = label
	item.stage = ev.Stage
	switch {
	case ev.Status == compiler.StatusError, ev.Status == compiler.StatusSkipped:
		item.final = true
	case ev.Status == compiler.StatusDone && ev.Stage == compiler.StageWrite:
		item.final = true
	}
	return m.prog.SetPercent(m.percent())
}

// percent is the mean completion of all documents.
func (m *progressModel) percent() float64 {
	total := 0.0
	for _, item := range m.items {
		if item.final {
			total++
			continue
		}
		total += progressFromStage(item.stage)
	}
	return total / float64(len(m.items))
}

func progressFromStage(stage compiler.Stage) float64 {
	switch stage {
	case compiler.StageOpen:
		return 0.05
	case compiler.StageAnalyze:
		return 0.2
	case compiler.StageSymbols:
		return 0.35
	case compiler.StageValidate:
		return 0.5
	case compiler.StageTranslate:
		return 0.7
	case compiler.StageEmit:
		return 0.85
	case compiler.StageWrite:
		return 0.95
	default:
		return 0.0
	}
}

func statusLabel(stage compiler.Stage, status compiler.Status) string {
	switch status {
	case compiler.StatusQueued:
		return "queued"
	case compiler.StatusSkipped:
		return "skipped"
	case compiler.StatusError:
		return "error"
	case compiler.StatusDone:
		if stage == compiler.StageWrite {
			return "written"
		}
		return stageLabel(stage)
	case compiler.StatusWorking:
		return stageLabel(stage)
	default:
		return ""
	}
}

func stageLabel(stage compiler.Stage) string {
	switch stage {
	case compiler.StageOpen:
		return "opening"
	case compiler.StageAnalyze:
		return "analyzing"
	case compiler.StageSymbols:
		return "symbols"
	case compiler.StageValidate:
		return "validating"
	case compiler.StageTranslate:
		return "translating"
	case compiler.StageEmit:
		return "emitting"
	case compiler.StageWrite:
		return "writing"
	default:
		return ""
	}
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	statusStyles = map[string]lipgloss.Style{
		"written": lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"error":   lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		"skipped": lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"queued":  lipgloss.NewStyle().Faint(true),
	}
)

func styleFor(status string) lipgloss.Style {
	if st, ok := statusStyles[status]; ok {
		return st
	}
	return workingStyle
}

// tally summarises finished documents, e.g. "2 written, 1 error".
func (m *progressModel) tally() string {
	var written, failed, skipped int
	for _, item := range m.items {
		switch item.status {
		case "written":
			written++
		case "error":
			failed++
		case "skipped":
			skipped++
		}
	}
	parts := []string{fmt.Sprintf("%d/%d written", written, len(m.items))}
	if failed > 0 {
		parts = append(parts, plural(failed, "error"))
	}
	if skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", skipped))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
