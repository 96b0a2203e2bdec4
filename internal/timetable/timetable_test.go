package timetable

import "github.com/thermod-project/thermod/internal/model"

// newTestTimeTable builds a fully populated, valid TimeTable for use
// across the package's tests: every slot defaults to tmax, mode auto,
// no grace-time unless the caller sets one.
func newTestTimeTable() *TimeTable {
	tt := New()
	tt.settings.Tmax = 22
	tt.settings.Tmin = 17
	tt.settings.T0 = 5
	tt.settings.Differential = 0.5
	tt.settings.GraceTime = nil
	tt.settings.Mode = model.ModeAuto
	tt.settings.Scale = model.Celsius

	for d := 0; d < 7; d++ {
		for h := 0; h < 24; h++ {
			for q := 0; q < 4; q++ {
				tt.matrix[d][h][q] = model.AliasTmax
			}
		}
	}
	tt.dirty = true
	return tt
}

func grace(seconds int) *int { return &seconds }
