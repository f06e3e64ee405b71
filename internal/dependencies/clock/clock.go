package clock

import "time"

// Clock provides time operations that can be mocked for testing
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock.
// Times are reported in its location, which decides how message times
// are rendered as HH:mm:ss.
type RealClock struct {
	loc *time.Location
}

// New creates a RealClock reporting times in loc (time.Local when nil)
func New(loc *time.Location) *RealClock {
	if loc == nil {
		loc = time.Local
	}
	return &RealClock{loc: loc}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now().In(c.loc)
}
