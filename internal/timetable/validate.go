package timetable

import (
	"strconv"

	"github.com/thermod-project/thermod/internal/model"
)

// Validate checks invariant I1 (spec.md §3): tmin <= tmax, scale
// coherent, mode valid, differential in range, matrix complete and
// every cell resolvable. Skips the work if nothing has changed since
// the last successful validation, mirroring the original's
// has_been_validated cache (SPEC_FULL.md §10).
func (tt *TimeTable) Validate() error {
	if !tt.dirty {
		return nil
	}
	if err := tt.validateNow(); err != nil {
		return err
	}
	tt.dirty = false
	return nil
}

func (tt *TimeTable) validateNow() error {
	s := tt.settings

	if !s.Scale.Valid() {
		return invalid("invalid-scale", "scale must be celsius or fahrenheit")
	}
	if !s.Mode.Valid() {
		return invalid("invalid-status", "status must be one of auto, on, off, tmax, tmin, t0")
	}
	if s.Differential < 0 || s.Differential > 1 {
		return invalid("invalid-differential", "differential must be a number in range [0,1]")
	}
	if s.GraceTime != nil && *s.GraceTime < 0 {
		return invalid("invalid-grace-time", "grace_time must be a non-negative number of seconds, or null")
	}
	if s.Tmin > s.Tmax {
		return invalid("invalid-temperatures", "tmin must not be greater than tmax")
	}

	for di, day := range model.Days {
		for hi := 0; hi < 24; hi++ {
			for q := 0; q < 4; q++ {
				alias := tt.matrix[di][hi][q]
				if alias == "" {
					return invalid("incomplete-timetable",
						"every day/hour/quarter cell must be populated: missing "+
							string(day)+"/"+string(model.HourFromInt(hi))+"/"+strconv.Itoa(q))
				}
				if _, err := s.Degrees(alias); err != nil {
					return invalid("unresolvable-alias", err.Error())
				}
			}
		}
	}

	return nil
}
