package out

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/sayanthsai/ADHD-simulator/internal/modules/distraction/domain"
	distractionout "github.com/sayanthsai/ADHD-simulator/internal/modules/distraction/port/out"
	apperrors "github.com/sayanthsai/ADHD-simulator/internal/platform/errors"
	"github.com/sayanthsai/ADHD-simulator/internal/platform/id"
)

type element struct {
	kind  domain.Kind
	shape domain.ShapeKind
	color string
	box   domain.Box
	img   distractionout.Mosaic
}

// CellSurface is the rendering surface: a cell-grid canvas holding the live
// visual elements. Mutated only from the session event loop; Render is
// called by the view on the same loop.
type CellSurface struct {
	ids      id.Generator
	w, h     int
	order    []string
	elements map[string]*element
}

func NewCellSurface(ids id.Generator, w, h int) *CellSurface {
	return &CellSurface{ids: ids, w: w, h: h, elements: map[string]*element{}}
}

// Resize follows the terminal pane. Elements keep their coordinates; ones
// now out of range are simply clipped at render time.
func (s *CellSurface) Resize(w, h int) {
	s.w, s.h = w, h
}

func (s *CellSurface) Size() (int, int) { return s.w, s.h }

func (s *CellSurface) CreateShape(shape domain.ShapeKind, box domain.Box, color string) (string, error) {
	eid := s.ids.New()
	s.elements[eid] = &element{kind: domain.KindShape, shape: shape, color: color, box: box}
	s.order = append(s.order, eid)
	return eid, nil
}

func (s *CellSurface) CreateImage(box domain.Box, img distractionout.Mosaic) (string, error) {
	eid := s.ids.New()
	s.elements[eid] = &element{kind: domain.KindImage, box: box, img: img}
	s.order = append(s.order, eid)
	return eid, nil
}

func (s *CellSurface) MoveResize(eid string, box domain.Box) error {
	el, ok := s.elements[eid]
	if !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrStaleHandle, eid)
	}
	el.box = box
	return nil
}

func (s *CellSurface) BoundingBox(eid string) (domain.Box, error) {
	el, ok := s.elements[eid]
	if !ok {
		return domain.Box{}, fmt.Errorf("%w: %s", apperrors.ErrStaleHandle, eid)
	}
	return el.box, nil
}

// Delete removes the element; unknown ids are a no-op.
func (s *CellSurface) Delete(eid string) {
	if _, ok := s.elements[eid]; !ok {
		return
	}
	delete(s.elements, eid)
	for i, other := range s.order {
		if other == eid {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *CellSurface) Live() int { return len(s.elements) }

// ─── rendering ───────────────────────────────────────────────────────────────

type cell struct {
	r  rune
	fg string
	bg string
}

// Render rasterizes all elements into h rows of styled text, painting in
// insertion order so newer elements land on top.
func (s *CellSurface) Render() []string {
	grid := make([][]cell, s.h)
	for y := range grid {
		grid[y] = make([]cell, s.w)
		for x := range grid[y] {
			grid[y][x] = cell{r: ' '}
		}
	}
	for _, eid := range s.order {
		s.paint(grid, s.elements[eid])
	}

	rows := make([]string, s.h)
	for y, line := range grid {
		rows[y] = styleRow(line)
	}
	return rows
}

func (s *CellSurface) paint(grid [][]cell, el *element) {
	x1, y1 := int(math.Round(el.box.X1)), int(math.Round(el.box.Y1))
	x2, y2 := int(math.Round(el.box.X2)), int(math.Round(el.box.Y2))
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for y := max(y1, 0); y < y2 && y < s.h; y++ {
		for x := max(x1, 0); x < x2 && x < s.w; x++ {
			if el.kind == domain.KindImage {
				ix, iy := x-x1, y-y1
				if ix >= el.img.W || iy >= el.img.H {
					continue
				}
				i := iy*el.img.W + ix
				grid[y][x] = cell{r: '▀', fg: el.img.Top[i], bg: el.img.Bottom[i]}
				continue
			}
			if !inShape(el.shape, x, y, x1, y1, x2, y2) {
				continue
			}
			grid[y][x] = cell{r: '█', fg: el.color}
		}
	}
}

// inShape tests cell centers against the shape's outline inside its box.
func inShape(shape domain.ShapeKind, x, y, x1, y1, x2, y2 int) bool {
	switch shape {
	case domain.ShapeRectangle:
		return true
	case domain.ShapeOval:
		rx := float64(x2-x1) / 2
		ry := float64(y2-y1) / 2
		dx := (float64(x) + 0.5 - float64(x1)) - rx
		dy := (float64(y) + 0.5 - float64(y1)) - ry
		return (dx*dx)/(rx*rx)+(dy*dy)/(ry*ry) <= 1
	case domain.ShapeTriangle:
		// apex top-center, base along the bottom edge
		w := float64(x2 - x1)
		h := float64(y2 - y1)
		cx := float64(x1) + w/2
		depth := (float64(y) + 0.5 - float64(y1)) / h // 0 at apex row, 1 at base
		return math.Abs(float64(x)+0.5-cx) <= depth*w/2
	}
	return false
}

func styleRow(line []cell) string {
	out := ""
	for i := 0; i < len(line); {
		j := i
		for j < len(line) && line[j].fg == line[i].fg && line[j].bg == line[i].bg {
			j++
		}
		run := make([]rune, 0, j-i)
		for k := i; k < j; k++ {
			run = append(run, line[k].r)
		}
		seg := string(run)
		if line[i].fg != "" || line[i].bg != "" {
			style := lipgloss.NewStyle()
			if line[i].fg != "" {
				style = style.Foreground(lipgloss.Color(line[i].fg))
			}
			if line[i].bg != "" {
				style = style.Background(lipgloss.Color(line[i].bg))
			}
			seg = style.Render(seg)
		}
		out += seg
		i = j
	}
	return out
}
