package domain

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/sayanthsai/ADHD-simulator/internal/platform/errors"
)

func TestStartTwiceIsInvalid(t *testing.T) {
	t.Parallel()
	c := NewController([]Task{NewClickTask("click once", 1)})
	if err := c.Start(); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if err := c.Start(); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("second start should be invalid, got %v", err)
	}
}

func TestClickScenario(t *testing.T) {
	t.Parallel()
	c := NewController([]Task{NewClickTask("Click the button 5 times", 5), NewClickTask("again", 1)})
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 1; i <= 4; i++ {
		out := c.HandleInput(Click())
		if out.Advanced {
			t.Fatalf("advanced after %d clicks", i)
		}
	}
	if !strings.Contains(c.Status(), "(4/5)") {
		t.Fatalf("expected 4/5 progress in status, got %q", c.Status())
	}
	out := c.HandleInput(Click())
	if !out.Advanced || out.Ended {
		t.Fatalf("fifth click should advance to the next task: %+v", out)
	}
	if c.Index() != 1 {
		t.Fatalf("index = %d, want 1", c.Index())
	}
	if !strings.HasPrefix(out.Status, "task 2 of 2:") {
		t.Fatalf("status after advance: %q", out.Status)
	}
}

func TestTypeScenario(t *testing.T) {
	t.Parallel()
	c := NewController([]Task{NewTypeTask("Type the word 'focus'", "focus")})
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	out := c.HandleInput(Submit("focu"))
	if out.Advanced {
		t.Fatalf("near-miss must not complete")
	}
	if !out.ClearInput {
		t.Fatalf("mismatch must clear the input")
	}
	if !strings.Contains(out.Status, "Incorrect") {
		t.Fatalf("mismatch must surface feedback, got %q", out.Status)
	}

	out = c.HandleInput(Submit("  Focus "))
	if !out.Advanced || !out.Ended {
		t.Fatalf("case/whitespace-insensitive match should complete: %+v", out)
	}
}

func TestComboOrderIndependent(t *testing.T) {
	t.Parallel()
	for name, inputs := range map[string][]Input{
		"type then click": {Submit("go"), Click()},
		"click then type": {Click(), Submit("go")},
	} {
		c := NewController([]Task{NewComboTask("Type 'go' and then click", "go", 1)})
		if err := c.Start(); err != nil {
			t.Fatalf("%s: start: %v", name, err)
		}
		out := c.HandleInput(inputs[0])
		if out.Advanced {
			t.Fatalf("%s: completed after first input", name)
		}
		out = c.HandleInput(inputs[1])
		if !out.Advanced || !out.Ended {
			t.Fatalf("%s: conjunction not detected: %+v", name, out)
		}
	}
}

func TestComboMismatchResetsTypedFlagOnly(t *testing.T) {
	t.Parallel()
	combo := NewComboTask("combo", "go", 2)
	c := NewController([]Task{combo})
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	c.HandleInput(Click())
	c.HandleInput(Submit("go"))
	c.HandleInput(Submit("nope")) // drops typedOK, keeps the click
	if combo.TypedOK() {
		t.Fatalf("mismatch must drop the typed flag")
	}
	if combo.Clicks() != 1 {
		t.Fatalf("clicks must survive a type failure, got %d", combo.Clicks())
	}
	c.HandleInput(Submit("go"))
	out := c.HandleInput(Click())
	if !out.Ended {
		t.Fatalf("expected completion after retype plus second click")
	}
}

func TestComboClicksAccumulatePastTarget(t *testing.T) {
	t.Parallel()
	combo := NewComboTask("combo", "go", 1)
	c := NewController([]Task{combo})
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	c.HandleInput(Click())
	c.HandleInput(Click())
	c.HandleInput(Click())
	if combo.Clicks() != 3 {
		t.Fatalf("clicks past target must accumulate without penalty, got %d", combo.Clicks())
	}
	if out := c.HandleInput(Submit("go")); !out.Ended {
		t.Fatalf("typed confirmation after surplus clicks must complete")
	}
}

func TestArrangeScenario(t *testing.T) {
	t.Parallel()
	c := NewController([]Task{NewArrangeTask("ascending", []int{1, 2, 3})})
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	// 2 first: wrong, cursor back to zero.
	out := c.HandleInput(Pick(2))
	if out.Advanced || !strings.Contains(out.Status, "try again from 1") {
		t.Fatalf("out-of-order pick: %+v", out)
	}
	c.HandleInput(Pick(1))
	c.HandleInput(Pick(2))
	out = c.HandleInput(Pick(3))
	if !out.Ended {
		t.Fatalf("ordered picks should complete: %+v", out)
	}
}

func TestArrangeResetMidSequence(t *testing.T) {
	t.Parallel()
	task := NewArrangeTask("ascending", []int{1, 2, 3})
	c := NewController([]Task{task})
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	c.HandleInput(Pick(1))
	c.HandleInput(Pick(3)) // wrong: whole sequence restarts
	if task.Expected() != 1 {
		t.Fatalf("cursor must reset to the first element, expecting %d", task.Expected())
	}
	c.HandleInput(Pick(2))
	c.HandleInput(Pick(1))
	c.HandleInput(Pick(2))
	if out := c.HandleInput(Pick(3)); !out.Ended {
		t.Fatalf("sequence after reset should complete")
	}
}

func TestMonotonicProgressionAndExactlyOnce(t *testing.T) {
	t.Parallel()
	c := NewController([]Task{
		NewClickTask("a", 1),
		NewTypeTask("b", "x"),
		NewClickTask("c", 2),
	})
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	completions := 0
	feed := []Input{Click(), Submit("x"), Click(), Click()}
	for _, in := range feed {
		if c.HandleInput(in).Advanced {
			completions++
		}
		if c.Index() != completions {
			t.Fatalf("index %d after %d completions", c.Index(), completions)
		}
	}
	if completions != 3 {
		t.Fatalf("completions = %d, want 3", completions)
	}
	if c.Phase() != PhaseAllComplete {
		t.Fatalf("phase = %v, want AllComplete", c.Phase())
	}

	// Input after the end is inert: no double-fire, no regression.
	out := c.HandleInput(Click())
	if out.Advanced || out.Ended {
		t.Fatalf("input after completion must be a no-op: %+v", out)
	}
	if c.Index() != 3 || c.Phase() != PhaseAllComplete {
		t.Fatalf("terminal state regressed: index=%d phase=%v", c.Index(), c.Phase())
	}
}

func TestActivationResetsVariantState(t *testing.T) {
	t.Parallel()
	click := NewClickTask("a", 2)
	click.Activate()
	click.HandleInput(Click())
	click.Activate()
	if click.Count() != 0 {
		t.Fatalf("activate must reset the click counter, got %d", click.Count())
	}

	arrange := NewArrangeTask("b", []int{1, 2})
	arrange.Activate()
	arrange.HandleInput(Pick(1))
	arrange.Activate()
	if arrange.Expected() != 1 {
		t.Fatalf("activate must reset the arrange cursor")
	}
	if len(arrange.Numbers()) != 2 {
		t.Fatalf("activate must lay out the pick buttons")
	}
}
