package service

import (
	"time"

	"github.com/phrazzld/taskboard/internal/domain"
)

// Clock returns the current time. Views use it to compute "today".
type Clock func() time.Time

// SystemClock is the wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}

func (c Clock) today() time.Time {
	if c == nil {
		return domain.Today(SystemClock())
	}
	return domain.Today(c())
}
