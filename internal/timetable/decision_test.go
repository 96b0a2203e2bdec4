package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/thermod-project/thermod/internal/model"
)

// A Monday 10:07 falls in hour "h10", quarter 0 — well inside the
// matrix, away from any day/hour boundary, so tests can freely set
// the global tmax slot without juggling weekday edge cases.
func mondayAt(hour, minute int) time.Time {
	return time.Date(2026, time.August, 3, hour, minute, 0, 0, time.UTC)
}

func TestEvaluate_Scenario1_HysteresisOnThenOff(t *testing.T) {
	tt := newTestTimeTable()
	now := mondayAt(10, 7)

	d1 := tt.Evaluate(21.7, false, now)
	assert.True(t, d1.On, "21.7 <= 21.75 must switch on")

	d2 := tt.Evaluate(22.3, true, now.Add(time.Minute))
	assert.False(t, d2.On, "22.3 >= 22.25 must switch off")
}

func TestEvaluate_HoldsBandWithoutChange(t *testing.T) {
	tt := newTestTimeTable()
	now := mondayAt(10, 7)

	d := tt.Evaluate(22.0, true, now) // strictly inside (21.75, 22.25)
	assert.True(t, d.On, "inside the hysteresis band the actuator state is preserved")

	d2 := tt.Evaluate(22.0, false, now)
	assert.False(t, d2.On, "inside the band, starting off stays off")
}

func TestEvaluate_GraceTime_SuppressesRestartThenAllows(t *testing.T) {
	tt := newTestTimeTable()
	tt.settings.GraceTime = grace(600)
	t0 := mondayAt(10, 0)

	off := tt.Evaluate(22.4, true, t0)
	assert.False(t, off.On)

	stillSuppressed := tt.Evaluate(21.6, false, t0.Add(300*time.Second))
	assert.False(t, stillSuppressed.On, "grace-time must keep the actuator off for 600s")

	allowed := tt.Evaluate(21.6, false, t0.Add(601*time.Second))
	assert.True(t, allowed.On, "after grace-time elapses the on-threshold test applies again")
}

func TestEvaluate_ModeOnForcesOnRegardlessOfTemperature(t *testing.T) {
	tt := newTestTimeTable()
	tt.settings.Mode = model.ModeOn

	d := tt.Evaluate(5, false, mondayAt(3, 0))
	assert.True(t, d.On)
	assert.Nil(t, d.Status.TargetTemperature)
}

func TestEvaluate_ModeOffForcesOffRegardlessOfTemperature(t *testing.T) {
	tt := newTestTimeTable()
	tt.settings.Mode = model.ModeOff

	d := tt.Evaluate(5, true, mondayAt(3, 0))
	assert.False(t, d.On)
}

func TestEvaluate_ModeChangeBypassesGraceTime(t *testing.T) {
	tt := newTestTimeTable()
	tt.settings.GraceTime = grace(600)
	t0 := mondayAt(10, 0)

	// Arm the grace timer via a real threshold-driven off transition.
	off := tt.Evaluate(22.4, true, t0)
	assert.False(t, off.On)

	// An explicit mode change to "on" must not be suppressed by the
	// still-active grace timer (DESIGN.md open question 1).
	tt.settings.Mode = model.ModeOn
	on := tt.Evaluate(5, false, t0.Add(10*time.Second))
	assert.True(t, on.On)

	// Switching back to auto with the grace window still open must not
	// resurrect suppression either: the mode change left the actuator
	// on, and grace-time only holds back restarting an actuator that is off.
	tt.settings.Mode = model.ModeAuto
	afterModeChange := tt.Evaluate(21.6, true, t0.Add(20*time.Second))
	assert.True(t, afterModeChange.On, "threshold rule applies fresh after a mode-change round trip")
}

func TestEvaluate_Cooling_Symmetric(t *testing.T) {
	tt := newTestTimeTable()
	tt.settings.Cooling = true
	tt.settings.Tmax = 24
	tt.settings.Differential = 0.4
	now := mondayAt(14, 0)

	on := tt.Evaluate(24.3, false, now)
	assert.True(t, on.On, "24.3 >= 24.2 must switch cooling on")

	off := tt.Evaluate(23.7, true, now.Add(time.Minute))
	assert.False(t, off.On, "23.7 <= 23.8 must switch cooling off")
}

func TestEvaluate_Deterministic(t *testing.T) {
	tt := newTestTimeTable()
	now := mondayAt(10, 7)

	a := tt.Evaluate(21.0, false, now)
	tt2 := newTestTimeTable()
	b := tt2.Evaluate(21.0, false, now)

	assert.Equal(t, a.On, b.On, "identical snapshot + inputs must produce identical decisions (P1)")
}

func TestEvaluate_MainTemperatureModeIgnoresSchedule(t *testing.T) {
	tt := newTestTimeTable()
	tt.settings.Mode = model.ModeTmin // tmin=17, differential=0.5

	d := tt.Evaluate(16.7, false, mondayAt(2, 0))
	assert.True(t, d.On, "16.7 <= 17-0.25 must switch on using tmin, ignoring the tmax-filled matrix")
}
