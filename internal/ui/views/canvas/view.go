package canvas

import "strings"

// Renderer is the live surface the distraction engine draws on.
type Renderer interface {
	Render() []string
	Resize(w, h int)
}

// Model shows the distraction canvas. It owns no state beyond its size; the
// surface is mutated by the scheduler on the session event loop.
type Model struct {
	surface Renderer
	width   int
	height  int
}

func New(surface Renderer) Model {
	return Model{surface: surface}
}

func (m *Model) SetSize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	m.width, m.height = w, h
	if m.surface != nil {
		m.surface.Resize(w, h)
	}
}

func (m Model) View() string {
	if m.surface == nil {
		return ""
	}
	return strings.Join(m.surface.Render(), "\n")
}
