package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"metaprep/internal/pool"
)

// Decoder maps ids back to tokens for display. It may be nil.
type Decoder interface {
	Token(id int32) (string, bool)
}

// Model is the Bubble Tea model for browsing encoded pools.
type Model struct {
	pools    []*pool.Pool
	decoder  Decoder
	pad      int32
	input    textinput.Model
	viewport viewport.Model
	summary  string
	status   string
	tab      int
	cursor   []int
	ready    bool
}

// New creates a new TUI model over pools. pad is the padding id, hidden
// from the decoded view.
func New(pools []*pool.Pool, decoder Decoder, pad int32, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "row> "
	ti.Placeholder = "Type a row number and press Enter"
	ti.Focus()
	ti.CharLimit = 12
	vp := viewport.New(0, 0)
	return Model{
		pools:    pools,
		decoder:  decoder,
		pad:      pad,
		input:    ti,
		viewport: vp,
		summary:  summary,
		cursor:   make([]int, len(pools)),
		status:   "Tab switches pools, up/down moves rows.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := rowBoxStyle.GetFrameSize()
		_, qh := inputBoxStyle.GetFrameSize()
		reserved := 3 + 1 + qh + 1 // header, tabs, summary + status + input + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentRow())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "tab":
			m = m.switchTab(1)
			return m, nil
		case "shift+tab":
			m = m.switchTab(-1)
			return m, nil
		case "down":
			m = m.move(1)
			return m, nil
		case "up":
			m = m.move(-1)
			return m, nil
		case "pgdown":
			m = m.move(10)
			return m, nil
		case "pgup":
			m = m.move(-10)
			return m, nil
		case "enter":
			m = m.jump(strings.TrimSpace(m.input.Value()))
			m.input.SetValue("")
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and current row.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("metaprep pool browser")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + m.renderTabs() + "\n" + summary + "\n" +
		rowBoxStyle.Render(m.viewport.View()) + "\n" +
		inputBoxStyle.Render(m.input.View()) + "\n" + status
}

func (m Model) current() *pool.Pool {
	if len(m.pools) == 0 {
		return nil
	}
	return m.pools[m.tab]
}

func (m Model) switchTab(delta int) Model {
	if len(m.pools) == 0 {
		return m
	}
	m.tab = (m.tab + delta + len(m.pools)) % len(m.pools)
	p := m.current()
	m.status = fmt.Sprintf("%s: %d rows", p.Name, p.Len())
	m.viewport.SetContent(m.renderCurrentRow())
	return m
}

func (m Model) move(delta int) Model {
	p := m.current()
	if p == nil || p.Len() == 0 {
		return m
	}
	cursor := append([]int(nil), m.cursor...)
	cursor[m.tab] = clamp(cursor[m.tab]+delta, 0, p.Len()-1)
	m.cursor = cursor
	m.viewport.SetContent(m.renderCurrentRow())
	return m
}

func (m Model) jump(value string) Model {
	p := m.current()
	if p == nil || value == "" {
		return m
	}
	row, err := strconv.Atoi(value)
	if err != nil || row < 0 || row >= p.Len() {
		m.status = fmt.Sprintf("Error: row %q outside 0..%d", value, p.Len()-1)
		return m
	}
	cursor := append([]int(nil), m.cursor...)
	cursor[m.tab] = row
	m.cursor = cursor
	m.status = fmt.Sprintf("%s row %d", p.Name, row)
	m.viewport.SetContent(m.renderCurrentRow())
	return m
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(m.pools))
	for i, p := range m.pools {
		label := fmt.Sprintf(" %s (%d) ", p.Name, p.Len())
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = tabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderCurrentRow() string {
	p := m.current()
	if p == nil || p.Len() == 0 {
		return "Pool is empty."
	}
	i := m.cursor[m.tab]
	ids := p.Text.Row(i)
	n := p.TextLen[i]

	var b strings.Builder
	fmt.Fprintf(&b, "Row %d/%d  label=%d  len=%d/%d", i, p.Len()-1, p.Label[i], n, p.MaxLen())
	if p.IsTrain {
		b.WriteString("  [train]")
	}
	b.WriteString("\n\nids:     ")
	b.WriteString(formatIDs(ids[:n]))
	b.WriteString("\ndecoded: ")
	b.WriteString(m.decode(ids[:n]))
	b.WriteString("\nraw:     ")
	b.WriteString(strings.Join(p.Raw[i], " "))
	return b.String()
}

func (m Model) decode(ids []int32) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == m.pad {
			continue
		}
		tok := strconv.Itoa(int(id))
		if m.decoder != nil {
			if t, ok := m.decoder.Token(id); ok {
				tok = t
			}
		}
		parts = append(parts, tok)
	}
	return strings.Join(parts, " ")
}

func formatIDs(ids []int32) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(int(id))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

var (
	rowBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	activeTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true).Underline(true)
)

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
