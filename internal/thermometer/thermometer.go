// Package thermometer implements thermod's temperature-reading
// capability: a handful of concrete drivers plus a decorator chain
// (scale conversion, outlier rejection, moving average) that wrap any
// Thermometer in another one, grounded on the teacher's
// internal/temperature.Service anomaly-detection pipeline.
package thermometer

import (
	"context"
	"errors"
)

// Thermometer reads the current temperature. Implementations may
// block on I/O or process execution, so Read takes a context.
type Thermometer interface {
	Read(ctx context.Context) (float64, error)
}

// ErrThermometer wraps the read failures of the drivers and the
// rejections of OutlierFilter, so callers can recognise those with a
// single errors.Is check (spec.md §6's exit-code/log taxonomy). It is
// not used everywhere: ScaleAdapter passes upstream errors through
// unchanged, MovingAverage returns ErrNotRunning or its own no-samples
// error, and a cancelled context surfaces as ctx.Err().
var ErrThermometer = errors.New("thermometer: read failed")
