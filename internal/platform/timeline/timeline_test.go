package timeline

import (
	"testing"
	"time"

	"github.com/sayanthsai/ADHD-simulator/internal/platform/clock"
)

func TestScheduleDelivers(t *testing.T) {
	t.Parallel()
	loop := New(clock.System{})
	fired := make(chan struct{})
	loop.Schedule(5*time.Millisecond, func() { close(fired) })

	select {
	case fn := <-loop.C():
		fn()
	case <-time.After(time.Second):
		t.Fatalf("callback never reached the channel")
	}
	select {
	case <-fired:
	default:
		t.Fatalf("drained func did not run the scheduled callback")
	}
}

func TestCancelBeforeFire(t *testing.T) {
	t.Parallel()
	loop := New(clock.System{})
	cancel := loop.Schedule(50*time.Millisecond, func() { t.Error("canceled callback ran") })
	cancel()
	cancel() // repeat cancel must be harmless

	select {
	case fn := <-loop.C():
		fn()
	case <-time.After(150 * time.Millisecond):
	}
}

func TestPostKeepsOrder(t *testing.T) {
	t.Parallel()
	loop := New(clock.System{})
	var got []int
	for i := 0; i < 5; i++ {
		i := i
		loop.Post(func() { got = append(got, i) })
	}
	for i := 0; i < 5; i++ {
		(<-loop.C())()
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("posted callbacks ran out of order: %v", got)
		}
	}
}
