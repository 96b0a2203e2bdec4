package timetable

import (
	"encoding/json"
	"fmt"

	"github.com/thermod-project/thermod/internal/model"
)

// NullableInt distinguishes "field absent" from "field present and
// null" from "field present with a value" — needed for grace_time,
// which accepts an explicit null to disable the grace timer.
type NullableInt struct {
	Null  bool
	Value int
}

func (n *NullableInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		n.Null = true
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

// TemperaturesPatch carries any subset of the three absolute setpoints.
type TemperaturesPatch struct {
	Tmax *float64 `json:"tmax"`
	Tmin *float64 `json:"tmin"`
	T0   *float64 `json:"t0"`
}

// Patch is a partial update as accepted by POST /settings (spec.md
// §6). Every field is optional; Timetable subtrees may name a single
// day, a single hour within a day, or be omitted entirely.
type Patch struct {
	Status       *model.Mode                     `json:"status"`
	Temperatures *TemperaturesPatch              `json:"temperatures"`
	Differential *float64                        `json:"differential"`
	GraceTime    *NullableInt                    `json:"grace_time"`
	Timetable    map[string]map[string][4]string `json:"timetable"`
}

// Update applies patch transactionally: the merge happens on a clone,
// the clone is validated and persisted, and only then swapped in. On
// any failure the receiver is left completely untouched (spec.md's
// all-or-nothing transaction guarantee, P7).
func (tt *TimeTable) Update(patch Patch) error {
	clone := tt.Clone()

	if err := clone.applyPatch(patch); err != nil {
		return err
	}
	if err := clone.validateNow(); err != nil {
		return err
	}
	if clone.path != "" {
		if err := clone.save(); err != nil {
			return fmt.Errorf("%w: %v", ErrIOError, err)
		}
	}

	clone.dirty = false
	*tt = *clone
	return nil
}

func (tt *TimeTable) applyPatch(patch Patch) error {
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return invalid("invalid-status", "status must be one of auto, on, off, tmax, tmin, t0")
		}
		tt.settings.Mode = *patch.Status
	}

	if patch.Temperatures != nil {
		if patch.Temperatures.Tmax != nil {
			tt.settings.Tmax = *patch.Temperatures.Tmax
		}
		if patch.Temperatures.Tmin != nil {
			tt.settings.Tmin = *patch.Temperatures.Tmin
		}
		if patch.Temperatures.T0 != nil {
			tt.settings.T0 = *patch.Temperatures.T0
		}
	}

	if patch.Differential != nil {
		if *patch.Differential < 0 || *patch.Differential > 1 {
			return invalid("invalid-differential", "differential must be a number in range [0,1]")
		}
		tt.settings.Differential = *patch.Differential
	}

	if patch.GraceTime != nil {
		if patch.GraceTime.Null {
			tt.settings.GraceTime = nil
		} else {
			if patch.GraceTime.Value < 0 {
				return invalid("invalid-grace-time", "grace_time must be a non-negative number of seconds, or null")
			}
			v := patch.GraceTime.Value
			tt.settings.GraceTime = &v
		}
	}

	for dayName, hours := range patch.Timetable {
		day, ok := model.ParseDay(dayName)
		if !ok {
			return invalid("invalid-day", fmt.Sprintf("unknown day %q in timetable patch", dayName))
		}
		di := day.Index()
		for hourName, quarters := range hours {
			hour := model.Hour(hourName)
			if !hour.Valid() {
				return invalid("invalid-hour", fmt.Sprintf(`invalid hour %q in timetable patch, expected "h00".."h23"`, hourName))
			}
			hi := int(hour[1]-'0')*10 + int(hour[2]-'0')
			for q := 0; q < 4; q++ {
				tt.matrix[di][hi][q] = model.TemperatureAlias(quarters[q])
			}
		}
	}

	tt.dirty = true
	return nil
}
