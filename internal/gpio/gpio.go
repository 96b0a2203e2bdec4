// Package gpio performs thermod's startup safety check over the relay
// pins: before the daemon claims any hardware it refuses to start if a
// relay line is already configured as an energised output, which would
// mean another process (or a crashed previous run) left the heating or
// cooling element powered without anyone supervising it.
package gpio

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/thermod-project/thermod/internal/pinctrl"
)

// RelayPin names one GPIO line the daemon is about to drive.
type RelayPin struct {
	Name       string // "heating" or "cooling", for log and error text
	Number     int
	ActiveHigh bool
}

// ValidateStartupPins reads the current pin table and checks that none
// of the relay pins is already energised. Returns the first violation
// found.
func ValidateStartupPins(pins []RelayPin) error {
	states, err := pinctrl.ReadAllPins()
	if err != nil {
		return fmt.Errorf("gpio: reading pin states: %w", err)
	}

	for _, p := range pins {
		st, ok := states[p.Number]
		if !ok {
			return fmt.Errorf("gpio: %s pin %d not present in pinctrl output", p.Name, p.Number)
		}
		if err := checkInactive(st, p); err != nil {
			return err
		}
		log.Debug().
			Str("relay", p.Name).
			Int("pin", p.Number).
			Str("mode", st.Mode).
			Str("level", st.Level).
			Msg("startup pin state verified")
	}
	return nil
}

// checkInactive rejects a pin that is already an output driven at its
// active level. A pin still in input/none mode has not been claimed by
// anyone and is fine.
func checkInactive(st pinctrl.State, p RelayPin) error {
	if st.Mode != "op" {
		return nil
	}
	activeLevel := "hi"
	if !p.ActiveHigh {
		activeLevel = "lo"
	}
	if st.Level == activeLevel {
		return fmt.Errorf("gpio: %s pin %d is already energised at startup (mode %s, level %s)",
			p.Name, p.Number, st.Mode, st.Level)
	}
	return nil
}
