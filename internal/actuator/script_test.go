package actuator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeExecutableScript(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "relay.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestScriptActuator_SwitchOnThenOff(t *testing.T) {
	onScript := writeExecutableScript(t, "exit 0\n")
	offScript := writeExecutableScript(t, "exit 0\n")
	a := NewScriptActuator(onScript, offScript)

	require.NoError(t, a.SwitchOn())
	assert.True(t, a.IsOn())

	require.NoError(t, a.SwitchOff())
	assert.False(t, a.IsOn())
}

func TestScriptActuator_IdempotentSwitchOnDoesNotRerunScript(t *testing.T) {
	// The script fails on any run after the first, so a rerun would
	// surface as an error from the second SwitchOn.
	marker := filepath.Join(t.TempDir(), "ran")
	onScript := writeExecutableScript(t, "[ -e "+marker+" ] && exit 1\ntouch "+marker+"\n")
	a := NewScriptActuator(onScript, onScript)

	require.NoError(t, a.SwitchOn())
	require.NoError(t, a.SwitchOn())
	assert.True(t, a.IsOn())
}

func TestScriptActuator_FailedScriptReturnsError(t *testing.T) {
	onScript := writeExecutableScript(t, "exit 1\n")
	a := NewScriptActuator(onScript, onScript)

	err := a.SwitchOn()
	assert.ErrorIs(t, err, ErrActuator)
	assert.False(t, a.IsOn())
}
