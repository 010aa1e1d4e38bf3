package usecase

import "time"

// Clock supplies "now" so every component that needs wall-clock time can be
// pinned to a fixed instant in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }
