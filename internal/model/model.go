// Package model holds the value types shared across thermod's core:
// scales, modes, temperature aliases, the weekly schedule coordinates
// and the published status snapshot.
package model

import "fmt"

// Scale is the temperature scale the daemon exchanges with the core.
type Scale string

const (
	Celsius    Scale = "celsius"
	Fahrenheit Scale = "fahrenheit"
)

func (s Scale) Valid() bool {
	return s == Celsius || s == Fahrenheit
}

// Mode selects how the heating/cooling decision is made.
type Mode string

const (
	ModeAuto Mode = "auto"
	ModeOn   Mode = "on"
	ModeOff  Mode = "off"
	ModeTmax Mode = "tmax"
	ModeTmin Mode = "tmin"
	ModeT0   Mode = "t0"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeAuto, ModeOn, ModeOff, ModeTmax, ModeTmin, ModeT0:
		return true
	default:
		return false
	}
}

// IsMainTemperature reports whether m names one of the three absolute
// setpoints rather than auto/on/off.
func (m Mode) IsMainTemperature() bool {
	return m == ModeTmax || m == ModeTmin || m == ModeT0
}

// TemperatureAlias is a symbolic setpoint name ("tmax", "tmin", "t0")
// or a literal number string interpreted as an absolute temperature.
type TemperatureAlias string

const (
	AliasTmax TemperatureAlias = "tmax"
	AliasTmin TemperatureAlias = "tmin"
	AliasT0   TemperatureAlias = "t0"
)

func (a TemperatureAlias) IsNamed() bool {
	return a == AliasTmax || a == AliasTmin || a == AliasT0
}

// Day is one of the seven weekday names used by the schedule matrix.
type Day string

const (
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Saturday  Day = "saturday"
	Sunday    Day = "sunday"
)

// Days lists the week in matrix order, Monday first.
var Days = [7]Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func (d Day) Valid() bool {
	for _, v := range Days {
		if v == d {
			return true
		}
	}
	return false
}

// Index returns d's position in Days (0=monday .. 6=sunday), or -1.
func (d Day) Index() int {
	for i, v := range Days {
		if v == d {
			return i
		}
	}
	return -1
}

// DayFromGoWeekday converts time.Weekday's Sunday=0 numbering to Day.
func DayFromGoWeekday(w int) Day {
	// time.Weekday: Sunday=0 .. Saturday=6. Matrix wants Monday first.
	idx := (w + 6) % 7
	return Days[idx]
}

// ParseDay accepts an English day name or a strftime %w numeric
// weekday ("0"=sunday .. "6"=saturday), both of which appear in
// timetable documents written by different clients.
func ParseDay(s string) (Day, bool) {
	d := Day(s)
	if d.Valid() {
		return d, true
	}
	if len(s) == 1 && s[0] >= '0' && s[0] <= '6' {
		return DayFromGoWeekday(int(s[0] - '0')), true
	}
	return "", false
}

// Hour formats as "h00".."h23" on the wire and internally.
type Hour string

func HourFromInt(h int) Hour {
	return Hour(fmt.Sprintf("h%02d", h))
}

func (h Hour) Valid() bool {
	if len(h) != 3 || h[0] != 'h' {
		return false
	}
	var n int
	if _, err := fmt.Sscanf(string(h), "h%02d", &n); err != nil {
		return false
	}
	return n >= 0 && n <= 23
}

// Hours lists all 24 valid hour keys in order.
var Hours = func() [24]Hour {
	var hs [24]Hour
	for i := 0; i < 24; i++ {
		hs[i] = HourFromInt(i)
	}
	return hs
}()

// Quarter is a quarter-of-an-hour index, 0..3.
type Quarter int

func (q Quarter) Valid() bool {
	return q >= 0 && q <= 3
}

// Settings holds the absolute setpoints and operating parameters that
// apply regardless of the schedule matrix contents.
type Settings struct {
	Tmax         float64
	Tmin         float64
	T0           float64
	Differential float64
	GraceTime    *int // seconds, nil means no grace-time
	Mode         Mode
	Cooling      bool
	Scale        Scale
}

// Degrees resolves a TemperatureAlias to an absolute temperature in
// the settings' configured scale. A literal numeric alias (e.g. "18.5")
// is parsed directly.
func (s Settings) Degrees(alias TemperatureAlias) (float64, error) {
	switch alias {
	case AliasTmax:
		return s.Tmax, nil
	case AliasTmin:
		return s.Tmin, nil
	case AliasT0:
		return s.T0, nil
	default:
		var v float64
		if _, err := fmt.Sscanf(string(alias), "%g", &v); err != nil {
			return 0, fmt.Errorf("alias %q does not resolve to a number: %w", alias, err)
		}
		return v, nil
	}
}

// ThermodStatus is the publishable snapshot describing mode,
// temperatures, heating state and an optional error string.
type ThermodStatus struct {
	Timestamp          int64    `json:"timestamp"`
	Mode               Mode     `json:"status"`
	CurrentTemperature float64  `json:"current_temperature"`
	TargetTemperature  *float64 `json:"target_temperature"`
	HeatingStatus      int      `json:"heating_status"`
	Error              *string  `json:"error"`
}

// ErrorStatus builds a ThermodStatus describing a failure, preserving
// the last known heating state so clients still see a coherent value.
func ErrorStatus(mode Mode, currentTemp float64, heatingStatus int, ts int64, errMsg string) ThermodStatus {
	return ThermodStatus{
		Timestamp:          ts,
		Mode:               mode,
		CurrentTemperature: currentTemp,
		TargetTemperature:  nil,
		HeatingStatus:      heatingStatus,
		Error:              &errMsg,
	}
}
