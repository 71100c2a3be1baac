package domain

import (
	"fmt"
	"math/rand"
	"strings"
)

// InputKind tags one discrete input event from the exercise UI.
type InputKind int

const (
	InputClick InputKind = iota
	InputSubmit
	InputPick
)

type Input struct {
	Kind   InputKind
	Text   string // submit payload
	Number int    // pick payload
}

func Click() Input            { return Input{Kind: InputClick} }
func Submit(text string) Input { return Input{Kind: InputSubmit, Text: text} }
func Pick(n int) Input        { return Input{Kind: InputPick, Number: n} }

// Effect is what one input event did to the active task.
type Effect struct {
	Completed  bool
	Feedback   string
	ClearInput bool
}

// Task is one exercise. Activate resets variant-local state; HandleInput is
// invoked once per discrete input event and reports completion at most once.
type Task interface {
	Prompt() string
	Activate()
	HandleInput(Input) Effect
	Done() bool
}

// ─── click ───────────────────────────────────────────────────────────────────

// ClickTask completes after target clicks. Every click counts; there is no
// upper bound and no failure branch.
type ClickTask struct {
	prompt string
	target int
	count  int
	done   bool
}

func NewClickTask(prompt string, target int) *ClickTask {
	return &ClickTask{prompt: prompt, target: target}
}

func (t *ClickTask) Prompt() string { return t.prompt }
func (t *ClickTask) Done() bool     { return t.done }
func (t *ClickTask) Count() int     { return t.count }
func (t *ClickTask) Target() int    { return t.target }

func (t *ClickTask) Activate() {
	t.count = 0
	t.done = false
}

func (t *ClickTask) HandleInput(in Input) Effect {
	if in.Kind != InputClick || t.done {
		return Effect{}
	}
	t.count++
	if t.count >= t.target {
		t.done = true
		return Effect{Completed: true}
	}
	return Effect{Feedback: fmt.Sprintf("(%d/%d)", t.count, t.target)}
}

// ─── type ────────────────────────────────────────────────────────────────────

// TypeTask completes when the submitted text equals the target word after
// trimming and lower-casing. Mismatches clear the input and may be retried
// indefinitely.
type TypeTask struct {
	prompt string
	target string
	done   bool
}

func NewTypeTask(prompt, target string) *TypeTask {
	return &TypeTask{prompt: prompt, target: normalize(target)}
}

func (t *TypeTask) Prompt() string { return t.prompt }
func (t *TypeTask) Done() bool     { return t.done }

func (t *TypeTask) Activate() { t.done = false }

func (t *TypeTask) HandleInput(in Input) Effect {
	if in.Kind != InputSubmit || t.done {
		return Effect{}
	}
	if normalize(in.Text) == t.target {
		t.done = true
		return Effect{Completed: true}
	}
	return Effect{Feedback: "(Incorrect, try again)", ClearInput: true}
}

// ─── combo ───────────────────────────────────────────────────────────────────

// ComboTask completes once the target word has been typed correctly AND the
// button clicked at least targetClicks times, in either order. A mismatched
// submit drops the typed-correctly flag; clicks accumulate regardless.
type ComboTask struct {
	prompt       string
	targetWord   string
	targetClicks int
	typedOK      bool
	clicks       int
	done         bool
}

func NewComboTask(prompt, word string, targetClicks int) *ComboTask {
	if targetClicks < 1 {
		targetClicks = 1
	}
	return &ComboTask{prompt: prompt, targetWord: normalize(word), targetClicks: targetClicks}
}

func (t *ComboTask) Prompt() string { return t.prompt }
func (t *ComboTask) Done() bool     { return t.done }
func (t *ComboTask) TypedOK() bool  { return t.typedOK }
func (t *ComboTask) Clicks() int    { return t.clicks }
func (t *ComboTask) Target() int    { return t.targetClicks }

func (t *ComboTask) Activate() {
	t.typedOK = false
	t.clicks = 0
	t.done = false
}

func (t *ComboTask) HandleInput(in Input) Effect {
	if t.done {
		return Effect{}
	}
	var feedback string
	var clear bool
	switch in.Kind {
	case InputSubmit:
		if normalize(in.Text) == t.targetWord {
			t.typedOK = true
			feedback = "(Type done, now click!)"
		} else {
			t.typedOK = false
			feedback = "(Type failed, re-type)"
			clear = true
		}
	case InputClick:
		t.clicks++
		feedback = fmt.Sprintf("(%d/%d)", t.clicks, t.targetClicks)
	default:
		return Effect{}
	}
	if t.typedOK && t.clicks >= t.targetClicks {
		t.done = true
		return Effect{Completed: true}
	}
	return Effect{Feedback: feedback, ClearInput: clear}
}

// ─── arrange ─────────────────────────────────────────────────────────────────

// ArrangeTask completes when the prescribed sequence is picked in order. Any
// out-of-order pick resets the cursor to the start.
type ArrangeTask struct {
	prompt   string
	sequence []int
	shuffled []int
	cursor   int
	done     bool
}

func NewArrangeTask(prompt string, sequence []int) *ArrangeTask {
	seq := make([]int, len(sequence))
	copy(seq, sequence)
	return &ArrangeTask{prompt: prompt, sequence: seq}
}

func (t *ArrangeTask) Prompt() string { return t.prompt }
func (t *ArrangeTask) Done() bool     { return t.done }
func (t *ArrangeTask) Expected() int  { return t.sequence[t.cursor] }

// Numbers is the display order of the pick buttons, shuffled at activation.
func (t *ArrangeTask) Numbers() []int { return t.shuffled }

func (t *ArrangeTask) Activate() {
	t.cursor = 0
	t.done = false
	t.shuffled = make([]int, len(t.sequence))
	copy(t.shuffled, t.sequence)
	rand.Shuffle(len(t.shuffled), func(i, j int) {
		t.shuffled[i], t.shuffled[j] = t.shuffled[j], t.shuffled[i]
	})
}

func (t *ArrangeTask) HandleInput(in Input) Effect {
	if in.Kind != InputPick || t.done {
		return Effect{}
	}
	if in.Number != t.sequence[t.cursor] {
		t.cursor = 0
		return Effect{Feedback: fmt.Sprintf("(Wrong order, try again from %d)", t.sequence[0])}
	}
	t.cursor++
	if t.cursor == len(t.sequence) {
		t.done = true
		return Effect{Completed: true}
	}
	return Effect{Feedback: fmt.Sprintf("Pick %d", t.sequence[t.cursor])}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
