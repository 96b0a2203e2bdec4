package timetable

import (
	"time"

	"github.com/thermod-project/thermod/internal/clock"
	"github.com/thermod-project/thermod/internal/model"
)

// Decision is the outcome of evaluating the TimeTable against the
// current temperature: whether the actuator should be on, plus the
// status snapshot to publish.
type Decision struct {
	On     bool
	Status model.ThermodStatus
}

// Evaluate implements spec.md §4.1's decision algorithm: mode
// dispatch, hysteresis with differential, and grace-time extension
// after a threshold-driven on->off transition. It mutates the
// TimeTable's internal last-off bookkeeping, so despite invariant I2
// ("pure function of state, T_c, actuator_is_on, now") repeated calls
// with an unchanged TimeTable snapshot and identical arguments always
// produce the same result — the mutation only affects *future* calls,
// exactly like the grace timer it implements.
func (tt *TimeTable) Evaluate(currentTemp float64, actuatorIsOn bool, now time.Time) Decision {
	s := tt.settings
	ts := now.Unix()

	switch s.Mode {
	case model.ModeOff:
		return Decision{On: false, Status: model.ThermodStatus{
			Timestamp: ts, Mode: s.Mode, CurrentTemperature: currentTemp,
			TargetTemperature: nil, HeatingStatus: 0,
		}}

	case model.ModeOn:
		return Decision{On: true, Status: model.ThermodStatus{
			Timestamp: ts, Mode: s.Mode, CurrentTemperature: currentTemp,
			TargetTemperature: nil, HeatingStatus: 1,
		}}
	}

	target, err := tt.resolveTarget(s, now)
	if err != nil {
		msg := err.Error()
		return Decision{On: actuatorIsOn, Status: model.ThermodStatus{
			Timestamp: ts, Mode: s.Mode, CurrentTemperature: currentTemp,
			HeatingStatus: boolToInt(actuatorIsOn), Error: &msg,
		}}
	}

	final := tt.thresholdDecision(s, target, currentTemp, actuatorIsOn, now)

	return Decision{On: final, Status: model.ThermodStatus{
		Timestamp:          ts,
		Mode:               s.Mode,
		CurrentTemperature: currentTemp,
		TargetTemperature:  &target,
		HeatingStatus:      boolToInt(final),
	}}
}

// resolveTarget computes the target temperature for the current mode:
// a manually-set main temperature, or the schedule's slot for "auto".
func (tt *TimeTable) resolveTarget(s model.Settings, now time.Time) (float64, error) {
	if s.Mode.IsMainTemperature() {
		return s.Degrees(model.TemperatureAlias(s.Mode))
	}
	day, hour, quarter := clock.Slot(now)
	alias, err := tt.Slot(day, hour, quarter)
	if err != nil {
		return 0, err
	}
	return s.Degrees(alias)
}

// thresholdDecision applies the hysteresis band and grace-time
// extension for a resolved target. Heating and cooling are symmetric
// around the target, with the on/off thresholds swapped.
func (tt *TimeTable) thresholdDecision(s model.Settings, target, currentTemp float64, actuatorIsOn bool, now time.Time) bool {
	half := s.Differential / 2

	var wantOn, wantOff bool
	if s.Cooling {
		onThreshold := target + half
		offThreshold := target - half
		wantOn = currentTemp >= onThreshold
		wantOff = currentTemp <= offThreshold
	} else {
		onThreshold := target - half
		offThreshold := target + half
		wantOn = currentTemp <= onThreshold
		wantOff = currentTemp >= offThreshold
	}

	switch {
	case wantOn:
		if s.GraceTime != nil && !actuatorIsOn && !tt.lastOffTime.IsZero() {
			grace := time.Duration(*s.GraceTime) * time.Second
			if now.Sub(tt.lastOffTime) < grace {
				return false // grace-time suppresses the restart
			}
		}
		return true

	case wantOff:
		if actuatorIsOn {
			tt.lastOffTime = now // arm the grace timer on a real on->off transition
		}
		return false

	default:
		return actuatorIsOn // inside the hysteresis band: hold state
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
