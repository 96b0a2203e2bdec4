// Package timetable implements thermod's schedule data model: the
// weekly matrix of per-quarter-hour target temperatures, the absolute
// setpoints, the validation/mutation protocol and the hysteresis-based
// decision function (spec.md §4.1).
//
// Every exported method assumes the caller already holds the daemon's
// master lock (internal/masterlock); TimeTable never locks itself,
// matching spec.md's "Concurrency contract" for this component.
package timetable

import (
	"time"

	"github.com/thermod-project/thermod/internal/model"
)

// Matrix is the 7x24x4 weekly grid of temperature aliases, indexed by
// model.Day.Index(), hour-of-day (0..23) and quarter (0..3).
type Matrix [7][24][4]model.TemperatureAlias

// TimeTable holds the schedule and settings, and produces decisions.
type TimeTable struct {
	settings model.Settings
	matrix   Matrix

	lastOffTime time.Time // zero value means "never switched off"
	dirty       bool      // mirrors the original's has_been_validated cache

	path string
}

// New builds an empty TimeTable with sane defaults, matching the
// defaults the original thermod.timetable.TimeTable.__init__ sets
// before a file is loaded over them.
func New() *TimeTable {
	grace := 3600
	return &TimeTable{
		settings: model.Settings{
			Differential: 0.5,
			GraceTime:    &grace,
			Mode:         ModeUnset,
			Scale:        model.Celsius,
		},
		dirty: true,
	}
}

// ModeUnset is the sentinel mode of a freshly constructed TimeTable
// that has not yet had a status loaded into it; Validate rejects it.
const ModeUnset model.Mode = ""

// Settings returns a copy of the current settings.
func (tt *TimeTable) Settings() model.Settings {
	return tt.settings
}

// Matrix returns a copy of the current schedule matrix.
func (tt *TimeTable) Matrix() Matrix {
	return tt.matrix
}

// Mode returns the current operating mode.
func (tt *TimeTable) Mode() model.Mode { return tt.settings.Mode }

// SetMode sets a new mode, marking the timetable dirty for
// revalidation. Does not persist; callers that want write-through
// persistence use Update.
func (tt *TimeTable) SetMode(m model.Mode) error {
	if !m.Valid() {
		return invalid("invalid-mode", "mode must be one of auto, on, off, tmax, tmin, t0")
	}
	tt.settings.Mode = m
	tt.dirty = true
	return nil
}

// Differential returns the current hysteresis differential.
func (tt *TimeTable) Differential() float64 { return tt.settings.Differential }

func (tt *TimeTable) SetDifferential(d float64) error {
	if d < 0 || d > 1 {
		return invalid("invalid-differential", "differential must be a number in range [0,1]")
	}
	tt.settings.Differential = d
	tt.dirty = true
	return nil
}

// GraceTime returns the current grace time in seconds, or nil if
// grace-time is disabled.
func (tt *TimeTable) GraceTime() *int { return tt.settings.GraceTime }

func (tt *TimeTable) SetGraceTime(seconds *int) error {
	if seconds != nil && *seconds < 0 {
		return invalid("invalid-grace-time", "grace_time must be a non-negative number of seconds, or null")
	}
	tt.settings.GraceTime = seconds
	tt.dirty = true
	return nil
}

func (tt *TimeTable) Tmax() float64 { return tt.settings.Tmax }
func (tt *TimeTable) Tmin() float64 { return tt.settings.Tmin }
func (tt *TimeTable) T0() float64   { return tt.settings.T0 }

func (tt *TimeTable) SetTmax(v float64) error { tt.settings.Tmax = v; tt.dirty = true; return nil }
func (tt *TimeTable) SetTmin(v float64) error { tt.settings.Tmin = v; tt.dirty = true; return nil }
func (tt *TimeTable) SetT0(v float64) error   { tt.settings.T0 = v; tt.dirty = true; return nil }

func (tt *TimeTable) Cooling() bool { return tt.settings.Cooling }

func (tt *TimeTable) SetCooling(c bool) { tt.settings.Cooling = c; tt.dirty = true }

func (tt *TimeTable) Scale() model.Scale { return tt.settings.Scale }

func (tt *TimeTable) SetScale(s model.Scale) error {
	if !s.Valid() {
		return invalid("invalid-scale", "scale must be celsius or fahrenheit")
	}
	tt.settings.Scale = s
	tt.dirty = true
	return nil
}

// Slot returns the alias scheduled for a given day/hour/quarter.
func (tt *TimeTable) Slot(day model.Day, hour model.Hour, quarter model.Quarter) (model.TemperatureAlias, error) {
	di, hi, err := slotIndices(day, hour, quarter)
	if err != nil {
		return "", err
	}
	return tt.matrix[di][hi][quarter], nil
}

// SetSlot updates a single quarter-hour cell, marking the timetable
// dirty for revalidation.
func (tt *TimeTable) SetSlot(day model.Day, hour model.Hour, quarter model.Quarter, alias model.TemperatureAlias) error {
	di, hi, err := slotIndices(day, hour, quarter)
	if err != nil {
		return err
	}
	tt.matrix[di][hi][quarter] = alias
	tt.dirty = true
	return nil
}

func slotIndices(day model.Day, hour model.Hour, quarter model.Quarter) (int, int, error) {
	if !day.Valid() {
		return 0, 0, invalid("invalid-day", "day must be one of monday..sunday")
	}
	if !hour.Valid() {
		return 0, 0, invalid("invalid-hour", `hour must be formatted "h00".."h23"`)
	}
	if !quarter.Valid() {
		return 0, 0, invalid("invalid-quarter", "quarter must be in range 0-3")
	}
	di := day.Index()
	var hi int
	// Hour is already validated as "hNN"; parse the numeric suffix.
	hi = int(hour[1]-'0')*10 + int(hour[2]-'0')
	return di, hi, nil
}

// Path returns the backing file path, or "" if none is configured.
func (tt *TimeTable) Path() string { return tt.path }

// SetPath configures the backing file used by Reload/Save.
func (tt *TimeTable) SetPath(p string) { tt.path = p }

// Clone returns a deep copy, used internally by Update to implement
// the all-or-nothing transaction guarantee (spec.md's memento.py
// supplement, see SPEC_FULL.md §10).
func (tt *TimeTable) Clone() *TimeTable {
	clone := *tt
	if tt.settings.GraceTime != nil {
		g := *tt.settings.GraceTime
		clone.settings.GraceTime = &g
	}
	return &clone
}
