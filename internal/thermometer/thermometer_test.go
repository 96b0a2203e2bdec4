package thermometer

import (
	"context"
	"errors"
)

// fakeThermometer returns a scripted sequence of readings, cycling
// the last value once exhausted, for use across the package's tests.
type fakeThermometer struct {
	readings []float64
	errs     []error
	calls    int
}

func (f *fakeThermometer) Read(ctx context.Context) (float64, error) {
	i := f.calls
	if i >= len(f.readings) {
		i = len(f.readings) - 1
	}
	f.calls++

	if i < len(f.errs) && f.errs[i] != nil {
		return 0, f.errs[i]
	}
	return f.readings[i], nil
}

var errFakeUpstream = errors.New("fake upstream failure")
