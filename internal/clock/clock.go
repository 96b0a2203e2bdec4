// Package clock abstracts wall-clock time so the decision engine and
// control cycle can be driven by virtual time in tests, the way the
// teacher's controllers take an explicit `now time.Time` instead of
// calling time.Now() inline.
package clock

import (
	"sync"
	"time"

	"github.com/thermod-project/thermod/internal/model"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant; useful for deterministic
// unit tests of the decision function.
type FixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{t: t}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the fixed clock forward, letting grace-time and
// hysteresis tests step through time explicitly.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// Set pins the fixed clock to an absolute instant.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

// Slot maps an instant to its weekly schedule coordinate: day name,
// "hNN" hour key and quarter-of-hour index.
func Slot(t time.Time) (model.Day, model.Hour, model.Quarter) {
	day := model.DayFromGoWeekday(int(t.Weekday()))
	hour := model.HourFromInt(t.Hour())
	quarter := model.Quarter(t.Minute() / 15)
	return day, hour, quarter
}
