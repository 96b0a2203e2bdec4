// Package shutdown implements thermod's graceful shutdown path,
// adapted from the teacher's system/shutdown/shutdown.go (which
// powered down a single main relay) into switching off whichever
// actuators the daemon was driving.
package shutdown

import (
	"github.com/rs/zerolog/log"

	"github.com/thermod-project/thermod/internal/actuator"
)

// Shutdown holds the actuators that must be switched off as part of a
// graceful stop (spec.md §7's "switch the heating actuator off").
type Shutdown struct {
	Heating actuator.Actuator
	Cooling actuator.Actuator // nil when cooling shares the heating relay or is unused
}

func New(heating, cooling actuator.Actuator) *Shutdown {
	return &Shutdown{Heating: heating, Cooling: cooling}
}

// Graceful switches every configured actuator off and logs the
// outcome. Called once the control cycle has observed enabled=false
// and returned.
func (s *Shutdown) Graceful() error {
	var firstErr error
	if s.Heating != nil {
		if err := s.Heating.SwitchOff(); err != nil {
			log.Error().Err(err).Msg("failed to switch off heating actuator during shutdown")
			firstErr = err
		}
	}
	if s.Cooling != nil {
		if err := s.Cooling.SwitchOff(); err != nil {
			log.Error().Err(err).Msg("failed to switch off cooling actuator during shutdown")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if firstErr != nil {
		return firstErr
	}
	log.Info().Msg("actuators switched off, shutdown complete")
	return nil
}
