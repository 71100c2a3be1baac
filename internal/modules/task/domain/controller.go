package domain

import (
	"fmt"

	apperrors "github.com/sayanthsai/ADHD-simulator/internal/platform/errors"
)

type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseTaskActive
	PhaseAllComplete
)

// Progress is the controller-level outcome of one input event.
type Progress struct {
	Advanced   bool // the active task completed and the controller moved on
	Ended      bool // the last task completed; session is over
	ClearInput bool
	Status     string
}

// Controller owns the ordered task list and the current index. The index
// strictly increases by one per completion and the phase never regresses.
type Controller struct {
	tasks    []Task
	index    int
	phase    Phase
	feedback string
}

func NewController(tasks []Task) *Controller {
	return &Controller{tasks: tasks}
}

// Start activates the first task. Calling it twice is an error.
func (c *Controller) Start() error {
	if c.phase != PhaseNotStarted {
		return fmt.Errorf("%w: controller already started", apperrors.ErrInvalidState)
	}
	if len(c.tasks) == 0 {
		c.phase = PhaseAllComplete
		return nil
	}
	c.phase = PhaseTaskActive
	c.tasks[0].Activate()
	return nil
}

// HandleInput routes one input event to the active task and advances the
// controller when the task reports completion.
func (c *Controller) HandleInput(in Input) Progress {
	if c.phase != PhaseTaskActive {
		return Progress{Status: c.Status()}
	}
	effect := c.tasks[c.index].HandleInput(in)
	c.feedback = effect.Feedback
	if effect.Completed {
		return c.completeCurrent()
	}
	return Progress{ClearInput: effect.ClearInput, Status: c.Status()}
}

func (c *Controller) completeCurrent() Progress {
	c.index++
	c.feedback = ""
	if c.index < len(c.tasks) {
		c.tasks[c.index].Activate()
		return Progress{Advanced: true, ClearInput: true, Status: c.Status()}
	}
	c.phase = PhaseAllComplete
	return Progress{Advanced: true, Ended: true, ClearInput: true, Status: c.Status()}
}

func (c *Controller) Phase() Phase { return c.phase }
func (c *Controller) Index() int   { return c.index }
func (c *Controller) Total() int   { return len(c.tasks) }

// Current returns the active task, or nil outside PhaseTaskActive.
func (c *Controller) Current() Task {
	if c.phase != PhaseTaskActive {
		return nil
	}
	return c.tasks[c.index]
}

// Status is the deterministic "task N of M: <prompt>" line, with the latest
// variant feedback appended when present.
func (c *Controller) Status() string {
	switch c.phase {
	case PhaseNotStarted:
		return "not started"
	case PhaseAllComplete:
		return fmt.Sprintf("all %d tasks completed", len(c.tasks))
	}
	s := fmt.Sprintf("task %d of %d: %s", c.index+1, len(c.tasks), c.tasks[c.index].Prompt())
	if c.feedback != "" {
		s += " " + c.feedback
	}
	return s
}
