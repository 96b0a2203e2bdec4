package thermometer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// MovingAverage maintains a rolling mean of the last N samples taken
// from Upstream at Interval, grounded on the teacher's
// temperature.Service.Start goroutine+mutex polling shape. Must be
// started and stopped with the daemon: Read before Start or after
// Stop returns ErrNotRunning.
type MovingAverage struct {
	Upstream Thermometer
	Samples  int
	Interval time.Duration

	mu      sync.RWMutex
	window  []float64
	running bool

	stopCh chan struct{}
	doneCh chan struct{}
}

// ErrNotRunning is returned by Read when the background sampler has
// not been started, or has already been stopped.
var ErrNotRunning = errors.New("thermometer: moving average is not running")

func NewMovingAverage(upstream Thermometer, samples int, interval time.Duration) *MovingAverage {
	return &MovingAverage{Upstream: upstream, Samples: samples, Interval: interval}
}

// Start launches the background sampling loop. Calling Start twice
// without an intervening Stop is a no-op.
func (m *MovingAverage) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})
	m.mu.Unlock()

	go m.loop()
}

// Stop halts the background sampling loop and waits for it to exit.
func (m *MovingAverage) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	close(m.stopCh)
	done := m.doneCh
	m.mu.Unlock()

	<-done
}

func (m *MovingAverage) loop() {
	defer close(m.doneCh)

	ticker := time.NewTicker(m.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.sample()
		}
	}
}

func (m *MovingAverage) sample() {
	ctx, cancel := context.WithTimeout(context.Background(), m.Interval)
	defer cancel()

	temp, err := m.Upstream.Read(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("moving average: upstream read failed, keeping prior window")
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.window = append(m.window, temp)
	if len(m.window) > m.Samples {
		m.window = m.window[len(m.window)-m.Samples:]
	}
}

// Read returns the current rolling mean. It does not itself perform an
// upstream read; the value reflects the most recent completed sample.
func (m *MovingAverage) Read(ctx context.Context) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.running {
		return 0, ErrNotRunning
	}
	if len(m.window) == 0 {
		return 0, errors.New("thermometer: moving average has no samples yet")
	}

	var sum float64
	for _, v := range m.window {
		sum += v
	}
	return sum / float64(len(m.window)), nil
}
