// Package ui renders live campaign progress in the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"exprfuzz/internal/campaign"
	"exprfuzz/internal/oracle"
)

// recentLimit is how many finished trials stay on screen.
const recentLimit = 8

type progressModel struct {
	title   string
	total   int
	events  <-chan campaign.Event
	spinner spinner.Model
	prog    progress.Model
	recent  []campaign.Event
	counts  map[oracle.Kind]int
	done    int
	corpus  int
	width   int
	closed  bool
}

type eventMsg campaign.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that follows a campaign
// through its event channel. The model quits when the channel closes.
func NewProgressModel(title string, total int, events <-chan campaign.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	return &progressModel{
		title:   title,
		total:   total,
		events:  events,
		spinner: sp,
		prog:    prog,
		counts:  make(map[oracle.Kind]int, len(oracle.Kinds)),
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(campaign.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.closed = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.closed = true
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.closed {
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
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.done, m.total)
	if m.closed {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	for _, k := range oracle.Kinds {
		label := fmt.Sprintf("%s %d", k, m.counts[k])
		b.WriteString("  " + styleKind(k).Render(label))
	}
	fmt.Fprintf(&b, "  corpus %d\n\n", m.corpus)

	kindWidth := 9
	nameWidth := max(m.width-kindWidth-4, 20)
	for _, ev := range m.recent {
		kind := styleKind(ev.Outcome.Kind).Render(fmt.Sprintf("%9s", ev.Outcome.Kind))
		b.WriteString("  " + kind + " " + truncate(oneLine(ev.Candidate), nameWidth) + "\n")
	}

	b.WriteString("\n")
	if m.closed {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
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

func (m *progressModel) applyEvent(ev campaign.Event) tea.Cmd {
	m.done++
	m.counts[ev.Outcome.Kind]++
	m.corpus = ev.CorpusSize
	if ev.Total > 0 {
		m.total = ev.Total
	}
	m.recent = append(m.recent, ev)
	if len(m.recent) > recentLimit {
		m.recent = m.recent[len(m.recent)-recentLimit:]
	}
	if m.total <= 0 {
		return nil
	}
	return m.prog.SetPercent(float64(m.done) / float64(m.total))
}

func styleKind(k oracle.Kind) lipgloss.Style {
	switch k {
	case oracle.Success:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case oracle.ExpectedError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case oracle.Timeout:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	}
}

// oneLine keeps multi-line candidates on a single row.
func oneLine(s string) string {
	return strings.NewReplacer("\n", "\\n", "\r", "\\r", "\t", " ").Replace(s)
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
