package clock

import "time"

// Timer is a handle to a pending callback. Stop reports whether the callback
// was prevented from firing; stopping an already-fired timer is a safe no-op.
type Timer interface {
	Stop() bool
}

// Clock abstracts time to keep timer-driven behavior deterministic in tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

func (System) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
