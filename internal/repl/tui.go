package repl

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle = lipgloss.NewStyle().Bold(true)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B2FF9E"))
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8FF60"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

// recallLen is the number of history entries available to the up key.
const recallLen = 500

// Model is the bubbletea model of a terminal session. Each evaluated line
// and its reply are printed above the input so they stay in the scrollback.
type Model struct {
	session *Session
	input   textinput.Model

	// recall is the expressions reachable with the up and down keys.
	recall []string
	// idx is the recall position; len(recall) is the line being edited.
	idx int
	// draft holds the line being edited while browsing recall.
	draft string
}

// NewModel creates a model for a session, loading recall from its history.
func NewModel(s *Session) Model {
	ti := textinput.New()
	ti.Prompt = Prompt
	ti.PromptStyle = promptStyle
	ti.CharLimit = 1024
	ti.Focus()
	recall := s.Recall(recallLen)
	return Model{
		session: s,
		input:   ti,
		recall:  recall,
		idx:     len(recall),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.Println(bannerStyle.Render(Banner)), textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyUp:
			if m.idx > 0 {
				if m.idx == len(m.recall) {
					m.draft = m.input.Value()
				}
				m.idx--
				m.setInput(m.recall[m.idx])
			}
			return m, nil
		case tea.KeyDown:
			if m.idx < len(m.recall) {
				m.idx++
				if m.idx == len(m.recall) {
					m.setInput(m.draft)
				} else {
					m.setInput(m.recall[m.idx])
				}
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.input.View()
}

func (m *Model) setInput(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
}

// submit handles the enter key.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	m.draft = ""
	if t := strings.TrimSpace(line); t != "" && !strings.EqualFold(t, "history") {
		m.recall = append(m.recall, t)
	}
	m.idx = len(m.recall)

	r := m.session.Handle(line)
	cmds := []tea.Cmd{tea.Println(promptStyle.Render(Prompt) + line)}
	if r.Text != "" {
		style := resultStyle
		if r.Err {
			style = errorStyle
		}
		cmds = append(cmds, tea.Println(style.Render(r.Text)))
	}
	if r.Quit {
		cmds = append(cmds, tea.Quit)
	}
	return m, tea.Sequence(cmds...)
}

// RunTerminal runs a session on a terminal until the user quits.
func RunTerminal(s *Session, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(NewModel(s), tea.WithInput(in), tea.WithOutput(out))
	_, err := p.Run()
	return err
}
