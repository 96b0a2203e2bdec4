package gpio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thermod-project/thermod/internal/pinctrl"
)

func TestCheckInactive_UnclaimedPinPasses(t *testing.T) {
	st := pinctrl.State{Number: 17, Mode: "ip", Level: "hi"}
	pin := RelayPin{Name: "heating", Number: 17, ActiveHigh: true}

	assert.NoError(t, checkInactive(st, pin), "a pin still in input mode has not been claimed")
}

func TestCheckInactive_OutputAtInactiveLevelPasses(t *testing.T) {
	st := pinctrl.State{Number: 17, Mode: "op", Level: "lo", Drive: "dl"}
	pin := RelayPin{Name: "heating", Number: 17, ActiveHigh: true}

	assert.NoError(t, checkInactive(st, pin))
}

func TestCheckInactive_EnergisedActiveHighFails(t *testing.T) {
	st := pinctrl.State{Number: 17, Mode: "op", Level: "hi", Drive: "dh"}
	pin := RelayPin{Name: "heating", Number: 17, ActiveHigh: true}

	err := checkInactive(st, pin)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already energised")
}

func TestCheckInactive_EnergisedActiveLowFails(t *testing.T) {
	// Active-low relay: a pin driven low is the energised state.
	st := pinctrl.State{Number: 22, Mode: "op", Level: "lo", Drive: "dl"}
	pin := RelayPin{Name: "cooling", Number: 22, ActiveHigh: false}

	err := checkInactive(st, pin)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cooling pin 22")
}
