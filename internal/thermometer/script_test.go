package thermometer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeExecutableScript(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sensor.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestScriptThermometer_ParsesStdout(t *testing.T) {
	path := writeExecutableScript(t, "echo 19.75\n")
	therm := NewScriptThermometer(path)

	got, err := therm.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 19.75, got)
}

func TestScriptThermometer_NonZeroExitFails(t *testing.T) {
	path := writeExecutableScript(t, "exit 1\n")
	therm := NewScriptThermometer(path)

	_, err := therm.Read(context.Background())
	assert.ErrorIs(t, err, ErrThermometer)
}

func TestScriptThermometer_UnparsableOutputFails(t *testing.T) {
	path := writeExecutableScript(t, "echo not-a-number\n")
	therm := NewScriptThermometer(path)

	_, err := therm.Read(context.Background())
	assert.ErrorIs(t, err, ErrThermometer)
}
