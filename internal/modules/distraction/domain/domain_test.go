package domain

import "testing"

func TestRegistryRemoveIdempotent(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	r.Add(&Object{ID: "a"})
	if !r.Remove("a") {
		t.Fatalf("first remove should report presence")
	}
	if r.Remove("a") {
		t.Fatalf("second remove must be a no-op")
	}
	if r.Remove("never-added") {
		t.Fatalf("removing an unknown id must be a no-op")
	}
	if r.Len() != 0 {
		t.Fatalf("len = %d, want 0", r.Len())
	}
}

func TestRegistryClearReturnsIDs(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	r.Add(&Object{ID: "a"})
	r.Add(&Object{ID: "b"})
	ids := r.Clear()
	if len(ids) != 2 || r.Len() != 0 {
		t.Fatalf("clear: ids=%v len=%d", ids, r.Len())
	}
	if again := r.Clear(); len(again) != 0 {
		t.Fatalf("second clear must be empty, got %v", again)
	}
}

func TestAdvanceBounces(t *testing.T) {
	t.Parallel()
	viewport := Box{X1: 0, Y1: 0, X2: 40, Y2: 20}
	o := &Object{
		Box:    NewBox(35, 10, 4, 4), // past the right edge after one step
		Motion: Motion{DX: 1, DY: 1, Speed: 2},
	}
	Advance(o, viewport, SizeRange{Min: 2, Max: 12})
	if o.Motion.DX != -1 {
		t.Fatalf("crossing the right edge must invert DX, got %v", o.Motion.DX)
	}
	if o.Motion.DY != 1 {
		t.Fatalf("DY must be untouched, got %v", o.Motion.DY)
	}

	Advance(o, viewport, SizeRange{Min: 2, Max: 12})
	if o.Motion.DX != -1 {
		t.Fatalf("moving back inside must not flip DX again")
	}
}

func TestAdvanceClampsSizeAndRecenters(t *testing.T) {
	t.Parallel()
	viewport := Box{X1: 0, Y1: 0, X2: 100, Y2: 100}
	env := SizeRange{Min: 2, Max: 6}

	o := &Object{
		Box:    NewBox(50, 50, 5, 5),
		Motion: Motion{DX: 1, DY: 1, Speed: 0, SizeDelta: 1},
	}
	Advance(o, viewport, env)
	if o.Box.W() != 5 {
		t.Fatalf("growth to the envelope boundary must be rejected, w=%v", o.Box.W())
	}

	o.Box = NewBox(50, 50, 4, 4)
	before := o.Box
	Advance(o, viewport, env)
	if o.Box.W() != 5 {
		t.Fatalf("growth inside the envelope must apply, w=%v", o.Box.W())
	}
	if o.Box.CenterX() != before.CenterX() || o.Box.CenterY() != before.CenterY() {
		t.Fatalf("resize must keep the center fixed")
	}

	o.Motion.SizeDelta = -1
	o.Box = NewBox(50, 50, 4, 4)
	Advance(o, viewport, env)
	if o.Box.W() != 3 {
		t.Fatalf("shrink inside the envelope must apply, w=%v", o.Box.W())
	}
	Advance(o, viewport, env)
	if o.Box.W() != 3 {
		t.Fatalf("shrink to the envelope boundary must be rejected, w=%v", o.Box.W())
	}
}
