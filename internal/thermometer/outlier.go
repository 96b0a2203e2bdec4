package thermometer

import (
	"context"
	"fmt"
	"math"
	"sync"
)

// OutlierFilter rejects a reading that deviates from the last accepted
// reading by more than MaxDelta, grounded on the teacher's
// temperature.Service.isAnomalousReading. Unlike the teacher's fleet
// service it tracks a single stream and has no recovery/disable
// state machine: a rejected reading simply surfaces an error and the
// last accepted reading is left untouched for the next comparison.
type OutlierFilter struct {
	Upstream Thermometer
	MaxDelta float64

	mu         sync.Mutex
	lastGood   float64
	hasReading bool
}

func NewOutlierFilter(upstream Thermometer, maxDelta float64) *OutlierFilter {
	return &OutlierFilter{Upstream: upstream, MaxDelta: maxDelta}
}

func (o *OutlierFilter) Read(ctx context.Context) (float64, error) {
	temp, err := o.Upstream.Read(ctx)
	if err != nil {
		return 0, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.hasReading {
		o.lastGood = temp
		o.hasReading = true
		return temp, nil
	}

	delta := math.Abs(temp - o.lastGood)
	if delta > o.MaxDelta {
		return 0, fmt.Errorf("%w: reading %.2f deviates %.2f from last accepted %.2f (max %.2f)",
			ErrThermometer, temp, delta, o.lastGood, o.MaxDelta)
	}

	o.lastGood = temp
	return temp, nil
}
