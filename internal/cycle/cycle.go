// Package cycle implements thermod's control cycle: the goroutine that
// periodically reads the thermometer, asks the TimeTable for a
// decision, drives the actuator and publishes the resulting status,
// then sleeps on the master condition until the next tick or an
// external notification. Grounded on the teacher's
// controller.RunBufferController loop shape, with time.Sleep replaced
// by masterlock.WaitTimeout so settings changes wake it immediately.
package cycle

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thermod-project/thermod/internal/actuator"
	"github.com/thermod-project/thermod/internal/clock"
	"github.com/thermod-project/thermod/internal/masterlock"
	"github.com/thermod-project/thermod/internal/metrics"
	"github.com/thermod-project/thermod/internal/model"
	"github.com/thermod-project/thermod/internal/publisher"
	"github.com/thermod-project/thermod/internal/thermometer"
	"github.com/thermod-project/thermod/internal/timetable"
)

// Cycle wires the thermostat's collaborators together. All fields must
// be set before Run is called; Cooling may be nil (or alias Heating)
// when the installation has a single relay.
type Cycle struct {
	TimeTable   *timetable.TimeTable
	Lock        *masterlock.MasterLock
	Publisher   *publisher.Publisher
	Metrics     *metrics.Metrics
	Thermometer thermometer.Thermometer
	Heating     actuator.Actuator
	Cooling     actuator.Actuator
	Clock       clock.Clock

	Interval     time.Duration
	SleepOnError time.Duration

	enabled bool // guarded by Lock
}

// Run executes the control loop until Stop is called. It holds the
// master lock for the whole of each iteration (evaluation, actuation,
// publication) and only releases it inside WaitTimeout, so socket
// handlers always observe a coherent actuator/status pair.
func (c *Cycle) Run(ctx context.Context) {
	c.Lock.Lock()
	defer c.Lock.Unlock()

	c.enabled = true
	log.Info().Dur("interval", c.Interval).Msg("control cycle started")

	woken := false
	for c.enabled {
		sleep := c.iterate(ctx, woken)
		if !c.enabled {
			break
		}
		woken = c.Lock.WaitTimeout(sleep)
	}

	log.Info().Msg("control cycle stopped")
}

// Stop disables the loop and wakes it so the flag is observed
// immediately. Safe to call from any goroutine; returns without
// waiting for the loop to exit.
func (c *Cycle) Stop() {
	c.Lock.Lock()
	c.enabled = false
	c.Lock.Notify()
	c.Lock.Unlock()
}

// iterate performs one reconciliation pass and returns how long the
// loop should sleep before the next one. Called with the lock held.
func (c *Cycle) iterate(ctx context.Context, wokenByNotify bool) time.Duration {
	now := c.Clock.Now()

	act := c.Heating
	if c.TimeTable.Cooling() && c.Cooling != nil {
		act = c.Cooling
	}

	currentTemp, err := c.Thermometer.Read(ctx)
	if err != nil {
		log.Error().Err(err).Msg("thermometer read failed, skipping actuation")
		status := model.ErrorStatus(c.TimeTable.Mode(), 0, boolToInt(act.IsOn()), now.Unix(), err.Error())
		c.Publisher.Publish(status)
		return c.SleepOnError
	}

	decision := c.TimeTable.Evaluate(currentTemp, act.IsOn(), now)

	sleep := c.Interval
	if decision.On != act.IsOn() {
		var switchErr error
		if decision.On {
			switchErr = act.SwitchOn()
		} else {
			switchErr = act.SwitchOff()
		}
		if switchErr != nil {
			log.Error().Err(switchErr).
				Bool("wanted_on", decision.On).
				Msg("actuator switch failed")
			msg := switchErr.Error()
			decision.Status.Error = &msg
			sleep = c.SleepOnError
		} else {
			log.Info().
				Bool("on", decision.On).
				Float64("temperature", currentTemp).
				Str("mode", string(c.TimeTable.Mode())).
				Msg("actuator switched")
		}
	} else {
		// No switch needed. Woken-by-notify means someone just changed
		// settings, which is worth an info line; a plain timer tick is
		// only debug noise.
		evt := log.Debug()
		if wokenByNotify {
			evt = log.Info()
		}
		evt.Bool("on", act.IsOn()).
			Float64("temperature", currentTemp).
			Msg("no actuator change needed")
	}

	decision.Status.HeatingStatus = boolToInt(act.IsOn())
	c.Publisher.Publish(decision.Status)
	c.Metrics.PublishCycle(currentTemp, decision.Status.TargetTemperature, act.IsOn())

	return sleep
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
