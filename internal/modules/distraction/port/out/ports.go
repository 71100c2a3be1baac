// Package out declares the collaborators the distraction engine consumes.
// Adapters implement them; the scheduler never sees a concrete backend.
package out

import (
	"time"

	"github.com/sayanthsai/ADHD-simulator/internal/modules/distraction/domain"
)

// Mosaic is a decoded image quantized to terminal cells: each cell shows an
// upper half-block, so it carries a top and a bottom pixel color (hex).
type Mosaic struct {
	W, H   int
	Top    []string // row-major, len W*H
	Bottom []string
}

// Surface is the rendering collaborator. Element ids are opaque; Delete is
// an idempotent no-op for unknown ids, every other call on an unknown id
// fails with ErrStaleHandle.
type Surface interface {
	CreateShape(shape domain.ShapeKind, box domain.Box, color string) (string, error)
	CreateImage(box domain.Box, img Mosaic) (string, error)
	MoveResize(id string, box domain.Box) error
	BoundingBox(id string) (domain.Box, error)
	Delete(id string)
	Size() (w, h int)
}

// ImageSource lists and decodes image assets. An empty List disables the
// image channel; Decode fails with ErrDecode on corrupt or unsupported files.
type ImageSource interface {
	List() []string
	Decode(asset string, w, h int) (Mosaic, error)
}

// AudioOutput plays the background loop and one-shot cues. Ready reports
// whether the backend initialized; when false the audio channel is disabled
// up front.
type AudioOutput interface {
	Ready() bool
	LoadLoop(path string) error
	PlayLoop()
	StopLoop()
	PlayOnce(path string) error
}

// Timeline schedules a callback onto the session's event loop after a delay
// and returns a best-effort cancel. Correctness never depends on cancel;
// callbacks guard themselves with the session epoch.
type Timeline interface {
	Schedule(d time.Duration, fn func()) (cancel func())
	Post(fn func())
}
