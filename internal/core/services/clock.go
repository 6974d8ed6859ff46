package services

import "time"

// Clock abstracts the time source so tests can pin creation and
// capture timestamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }
