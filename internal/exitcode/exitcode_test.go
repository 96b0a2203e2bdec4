package exitcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString_KnownCodes(t *testing.T) {
	assert.Equal(t, "ok", OK.String())
	assert.Equal(t, "config error", ConfigError.String())
	assert.Equal(t, "timetable invalid content", TimetableInvalidContent.String())
}

func TestString_UnknownCodeFallsBack(t *testing.T) {
	assert.Equal(t, "unknown", Code(999).String())
}

func TestCodes_AreStable(t *testing.T) {
	// These values are part of thermod's external contract; a change
	// here is a breaking change for anything scripting against exit
	// status.
	assert.Equal(t, Code(0), OK)
	assert.Equal(t, Code(1), ConfigError)
	assert.Equal(t, Code(130), KeyboardInterrupt)
}
