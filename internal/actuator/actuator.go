// Package actuator implements thermod's heating/cooling actuator
// capability: the two idempotent switch operations plus an is-on
// query, grounded on the teacher's internal/gpio relay control
// (Activate/Deactivate/CurrentlyActive over internal/pinctrl).
package actuator

import "errors"

// Actuator drives the physical (or scripted, or fake) heating/cooling
// element. SwitchOn/SwitchOff are idempotent: calling either while
// already in that state is not an error.
type Actuator interface {
	SwitchOn() error
	SwitchOff() error
	IsOn() bool
}

// ErrActuator wraps every failure GPIORelay and ScriptActuator return.
// FakeActuator returns the error injected with SetFailure as is.
var ErrActuator = errors.New("actuator: operation failed")
