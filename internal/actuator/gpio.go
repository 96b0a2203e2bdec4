package actuator

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/thermod-project/thermod/internal/pinctrl"
)

// Pin identifies a single GPIO line and its active polarity, adapted
// from the teacher's model.GPIOPin.
type Pin struct {
	Number     int
	ActiveHigh bool
}

// GPIORelay drives a relay through pinctrl, adapted from the
// teacher's gpio.Activate/Deactivate/CurrentlyActive. SafeMode mirrors
// gpio.SetSafeMode: when true, switch calls are no-ops so the daemon
// can run dry in a development environment without real hardware.
type GPIORelay struct {
	Pin      Pin
	SafeMode bool
}

func NewGPIORelay(pin Pin) *GPIORelay {
	return &GPIORelay{Pin: pin}
}

func (r *GPIORelay) SwitchOn() error {
	if r.SafeMode {
		return nil
	}
	if r.Pin.ActiveHigh {
		if err := pinctrl.SetPin(r.Pin.Number, "op", "pn", "dh"); err != nil {
			return fmt.Errorf("%w: activating pin %d: %v", ErrActuator, r.Pin.Number, err)
		}
		return nil
	}
	if err := pinctrl.SetPin(r.Pin.Number, "op", "pn", "dl"); err != nil {
		return fmt.Errorf("%w: activating pin %d: %v", ErrActuator, r.Pin.Number, err)
	}
	return nil
}

func (r *GPIORelay) SwitchOff() error {
	if r.SafeMode {
		return nil
	}
	if r.Pin.ActiveHigh {
		if err := pinctrl.SetPin(r.Pin.Number, "op", "pn", "dl"); err != nil {
			return fmt.Errorf("%w: deactivating pin %d: %v", ErrActuator, r.Pin.Number, err)
		}
		return nil
	}
	if err := pinctrl.SetPin(r.Pin.Number, "op", "pn", "dh"); err != nil {
		return fmt.Errorf("%w: deactivating pin %d: %v", ErrActuator, r.Pin.Number, err)
	}
	return nil
}

func (r *GPIORelay) IsOn() bool {
	level, err := pinctrl.ReadLevel(r.Pin.Number)
	if err != nil {
		log.Error().Err(err).Int("pin", r.Pin.Number).Msg("failed to read relay pin level")
		return false
	}
	return r.Pin.ActiveHigh == level
}
