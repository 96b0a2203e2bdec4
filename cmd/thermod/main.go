package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thermod-project/thermod/internal/actuator"
	"github.com/thermod-project/thermod/internal/clock"
	"github.com/thermod-project/thermod/internal/config"
	"github.com/thermod-project/thermod/internal/cycle"
	"github.com/thermod-project/thermod/internal/exitcode"
	"github.com/thermod-project/thermod/internal/gpio"
	"github.com/thermod-project/thermod/internal/logging"
	"github.com/thermod-project/thermod/internal/masterlock"
	"github.com/thermod-project/thermod/internal/metrics"
	"github.com/thermod-project/thermod/internal/model"
	"github.com/thermod-project/thermod/internal/notifications"
	"github.com/thermod-project/thermod/internal/publisher"
	"github.com/thermod-project/thermod/internal/socket"
	"github.com/thermod-project/thermod/internal/thermometer"
	"github.com/thermod-project/thermod/internal/timetable"
	"github.com/thermod-project/thermod/system/shutdown"
)

func main() {
	os.Exit(int(run()))
}

func run() exitcode.Code {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "thermod:", err)
		return exitcode.ConfigError
	}
	if err := logging.Init(cfg.LogLevel, ""); err != nil {
		fmt.Fprintln(os.Stderr, "thermod:", err)
		return exitcode.ConfigError
	}

	log.Info().
		Str("config_file", cfg.ConfigFile).
		Str("timetable_file", cfg.TimetableFile).
		Bool("safe_mode", cfg.SafeMode).
		Msg("starting thermod")

	tt, err := timetable.Load(cfg.TimetableFile)
	if err != nil {
		return timetableExit(cfg.TimetableFile, err)
	}

	heating, cooling, err := buildActuators(cfg)
	if err != nil {
		log.Error().Err(err).Msg("cannot initialize actuators")
		if errors.Is(err, errCoolingInit) {
			return exitcode.CoolingInitError
		}
		return exitcode.HeatingInitError
	}

	therm, stopTherm, err := buildThermometer(cfg, tt.Scale())
	if err != nil {
		log.Error().Err(err).Msg("cannot initialize thermometer")
		return exitcode.ThermometerInitError
	}
	defer stopTherm()

	var m *metrics.Metrics
	if cfg.Datadog.Enabled {
		m = metrics.New(cfg.Datadog.AgentAddr, cfg.Datadog.Namespace, cfg.Datadog.Tags)
	} else {
		m = metrics.Disabled()
	}

	var notifier *notifications.Notifier
	if cfg.Notifications.Enabled {
		notifier = notifications.New(cfg.Notifications.URL, cfg.Notifications.Topic)
	} else {
		notifier = notifications.New("", "")
	}

	lock := masterlock.New()
	pub := publisher.New()

	cyc := &cycle.Cycle{
		TimeTable:    tt,
		Lock:         lock,
		Publisher:    pub,
		Metrics:      m,
		Thermometer:  therm,
		Heating:      heating,
		Cooling:      cooling,
		Clock:        clock.SystemClock{},
		Interval:     time.Duration(cfg.IntervalSeconds) * time.Second,
		SleepOnError: time.Duration(cfg.SleepOnErrorSeconds) * time.Second,
	}

	listener, err := net.Listen("tcp", cfg.SocketBindAddr)
	if err != nil {
		log.Error().Err(err).Str("addr", cfg.SocketBindAddr).Msg("cannot bind control socket")
		return exitcode.SocketInitError
	}
	srv := &http.Server{Handler: socket.New(tt, lock, pub)}
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("control socket server failed")
		}
	}()
	log.Info().Str("addr", cfg.SocketBindAddr).Msg("control socket listening")

	// The cycle goroutine. A panic here is the "unknown exception"
	// class: everything expected is already contained inside the loop,
	// so a recover means a genuine bug and the daemon must go down.
	cycleDone := make(chan struct{})
	cyclePanicked := make(chan struct{}, 1)
	go func() {
		defer close(cycleDone)
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Msg("control cycle crashed with an unhandled fault")
				if err := notifier.Send("thermod crashed", fmt.Sprint(rec)); err != nil {
					log.Warn().Err(err).Msg("failed to send crash notification")
				}
				cyclePanicked <- struct{}{}
			}
		}()
		cyc.Run(context.Background())
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGUSR1)

	code := exitcode.OK
loop:
	for {
		select {
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				lock.Lock()
				if err := tt.Reload(); err != nil {
					log.Warn().Err(err).Msg("timetable reload failed, keeping current state")
				} else {
					log.Info().Str("path", tt.Path()).Msg("timetable reloaded")
					lock.Notify()
				}
				lock.Unlock()
			case syscall.SIGUSR1:
				logging.ToggleDebug(cfg.LogLevel)
			case syscall.SIGINT:
				log.Info().Msg("interrupt received, shutting down")
				code = exitcode.KeyboardInterrupt
				break loop
			default: // SIGTERM
				log.Info().Str("signal", sig.String()).Msg("termination signal received, shutting down")
				break loop
			}
		case <-cycleDone:
			code = exitcode.RuntimeError
			select {
			case <-cyclePanicked:
			default:
				log.Error().Msg("control cycle exited unexpectedly")
			}
			break loop
		}
	}

	cyc.Stop()
	<-cycleDone

	// Terminal status for any monitor still in a long-poll, so clients
	// learn the daemon is going away instead of timing out.
	lock.Lock()
	mode := tt.Mode()
	lock.Unlock()
	pub.Publish(model.ErrorStatus(mode, 0, 0, time.Now().Unix(), "thermod is shutting down"))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("control socket shutdown did not complete cleanly")
	}

	stopTherm()

	var distinctCooling actuator.Actuator
	if cooling != nil && cooling != heating {
		distinctCooling = cooling
	}
	if err := shutdown.New(heating, distinctCooling).Graceful(); err != nil {
		if code == exitcode.OK {
			code = exitcode.ShutdownError
		}
	}

	return code
}

// timetableExit maps a Load failure onto the stable exit-code
// enumeration.
func timetableExit(path string, err error) exitcode.Code {
	log.Error().Err(err).Str("path", path).Msg("cannot load timetable")
	switch {
	case errors.Is(err, timetable.ErrInvalidSyntax):
		return exitcode.TimetableInvalidSyntax
	case errors.Is(err, timetable.ErrInvalidContent):
		return exitcode.TimetableInvalidContent
	default:
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return exitcode.TimetableNotFound
		}
		return exitcode.TimetableUnreadable
	}
}

var errCoolingInit = errors.New("cooling actuator initialization failed")

// buildActuators wires the heating (and optionally cooling) actuators
// from config. When cooling shares the heating relay both returned
// values point at the same instance, so the cycle's single-path
// selection drives one relay either way.
func buildActuators(cfg config.Config) (heating, cooling actuator.Actuator, err error) {
	ac := cfg.Actuators

	switch ac.Driver {
	case "gpio":
		if ac.HeatingPin == nil {
			return nil, nil, errors.New("actuators.heating_pin is required for the gpio driver")
		}
		pins := []gpio.RelayPin{{Name: "heating", Number: *ac.HeatingPin, ActiveHigh: ac.HeatingActiveHigh}}

		heatRelay := actuator.NewGPIORelay(actuator.Pin{Number: *ac.HeatingPin, ActiveHigh: ac.HeatingActiveHigh})
		heatRelay.SafeMode = cfg.SafeMode
		heating = heatRelay

		switch {
		case ac.CoolingSharesHeating:
			cooling = heating
		case ac.CoolingPin != nil:
			coolRelay := actuator.NewGPIORelay(actuator.Pin{Number: *ac.CoolingPin, ActiveHigh: ac.CoolingActiveHigh})
			coolRelay.SafeMode = cfg.SafeMode
			cooling = coolRelay
			pins = append(pins, gpio.RelayPin{Name: "cooling", Number: *ac.CoolingPin, ActiveHigh: ac.CoolingActiveHigh})
		}

		if !cfg.SafeMode {
			if err := gpio.ValidateStartupPins(pins); err != nil {
				return nil, nil, err
			}
		}

	case "script":
		heating = actuator.NewScriptActuator(ac.OnScript, ac.OffScript)
		cooling = heating

	case "fake":
		fake := actuator.NewFakeActuator()
		heating = fake
		cooling = fake

	default:
		return nil, nil, fmt.Errorf("unknown actuator driver %q", ac.Driver)
	}

	return heating, cooling, nil
}

// buildThermometer assembles the configured driver plus its decorator
// chain: scale adaptation first, then outlier rejection, then the
// moving average with its background sampler.
func buildThermometer(cfg config.Config, scale model.Scale) (thermometer.Thermometer, func(), error) {
	tc := cfg.Thermometer

	var th thermometer.Thermometer
	switch tc.Driver {
	case "onewire":
		ow := thermometer.NewOneWireThermometer(tc.OneWireDeviceID)
		if tc.OneWireBusPath != "" {
			ow.BusPath = tc.OneWireBusPath
		}
		th = ow
	case "script":
		th = thermometer.NewScriptThermometer(tc.ScriptPath, tc.ScriptArgs...)
	case "analog":
		th = thermometer.NewAnalogThermometer(tc.AnalogChannelPath, tc.AnalogSlope, tc.AnalogIntercept)
	default:
		return nil, nil, fmt.Errorf("unknown thermometer driver %q", tc.Driver)
	}

	if source := model.Scale(tc.SourceScale); source != "" && source != scale {
		th = thermometer.NewScaleAdapter(th, source, scale)
	}
	if tc.OutlierMaxDelta > 0 {
		th = thermometer.NewOutlierFilter(th, tc.OutlierMaxDelta)
	}

	stop := func() {}
	if tc.MovingAverageSamples > 1 {
		avg := thermometer.NewMovingAverage(th, tc.MovingAverageSamples,
			time.Duration(tc.PollIntervalSeconds)*time.Second)
		avg.Start()
		stop = avg.Stop
		th = avg
	}

	return th, stop, nil
}
