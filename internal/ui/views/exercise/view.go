package exercise

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sayanthsai/ADHD-simulator/internal/modules/task/domain"
	"github.com/sayanthsai/ADHD-simulator/internal/ui/theme"
)

// ActionMsg carries a user action up to the root model, which owns the
// progression. The view never mutates task state itself.
type ActionMsg struct {
	Input domain.Input
}

// Model renders the active exercise and translates key presses into task
// inputs. The controls on screen follow the task variant: a button for
// click work, a text field for typing, a number row for ordering.
type Model struct {
	ti          textinput.Model
	hasText     bool
	hasButton   bool
	numbers     []int
	focusButton bool
	status      string
	width       int
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "type here"
	ti.CharLimit = 64
	ti.Width = 28
	return Model{ti: ti}
}

// SetTask reconfigures the controls for the task that just became active.
func (m *Model) SetTask(task domain.Task) {
	m.hasText = false
	m.hasButton = false
	m.numbers = nil
	m.focusButton = false
	m.ti.Reset()
	m.ti.Blur()

	switch t := task.(type) {
	case *domain.ClickTask:
		m.hasButton = true
		m.focusButton = true
	case *domain.TypeTask:
		m.hasText = true
		m.ti.Focus()
	case *domain.ComboTask:
		m.hasText = true
		m.hasButton = true
		m.ti.Focus()
	case *domain.ArrangeTask:
		m.numbers = t.Numbers()
	}
}

func (m *Model) SetStatus(status string) { m.status = status }

func (m *Model) ClearText() { m.ti.Reset() }

func (m *Model) SetWidth(w int) { m.width = w }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "tab":
		if m.hasText && m.hasButton {
			m.focusButton = !m.focusButton
			if m.focusButton {
				m.ti.Blur()
			} else {
				m.ti.Focus()
			}
		}
		return m, nil

	case "enter":
		if m.focusButton && m.hasButton {
			return m, action(domain.Click())
		}
		if m.hasText {
			return m, action(domain.Submit(m.ti.Value()))
		}
		if m.hasButton {
			return m, action(domain.Click())
		}
		return m, nil

	case " ":
		if m.hasButton && (m.focusButton || !m.hasText) {
			return m, action(domain.Click())
		}
	}

	if len(m.numbers) > 0 && len(key.String()) == 1 {
		if n, err := strconv.Atoi(key.String()); err == nil && n >= 1 {
			return m, action(domain.Pick(n))
		}
	}

	if m.hasText && !m.focusButton {
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}
	return m, nil
}

func action(in domain.Input) tea.Cmd {
	return func() tea.Msg { return ActionMsg{Input: in} }
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	lines := []string{theme.Title.Render("Focus Exercise"), ""}

	if m.status != "" {
		lines = append(lines, wrap(m.status, m.width), "")
	}

	if m.hasText {
		lines = append(lines, m.ti.View())
	}
	if m.hasButton {
		label := " Click Me! "
		if m.focusButton || !m.hasText {
			lines = append(lines, theme.ButtonFocused.Render(label))
		} else {
			lines = append(lines, theme.Button.Render(label))
		}
	}
	if len(m.numbers) > 0 {
		cells := make([]string, len(m.numbers))
		for i, n := range m.numbers {
			cells[i] = theme.Button.Render(fmt.Sprintf(" %d ", n))
		}
		lines = append(lines,
			strings.Join(cells, " "),
			theme.Muted.Render("press a digit to pick the next number"))
	}

	hint := "enter:act"
	if m.hasText && m.hasButton {
		hint = "tab:switch control  " + hint
	}
	lines = append(lines, "", theme.Muted.Render(hint))
	return strings.Join(lines, "\n")
}

func wrap(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
