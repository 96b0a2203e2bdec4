package thermometer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeW1Slave(t *testing.T, busPath, deviceID, contents string) {
	t.Helper()
	dir := filepath.Join(busPath, deviceID)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "w1_slave"), []byte(contents), 0o644))
}

func TestOneWireThermometer_ParsesValidReading(t *testing.T) {
	bus := t.TempDir()
	writeW1Slave(t, bus, "28-000001", "a1 01 4b 46 7f ff 0c 10 56 : crc=56 YES\na1 01 4b 46 7f ff 0c 10 56 t=21500\n")

	therm := &OneWireThermometer{DeviceID: "28-000001", BusPath: bus}
	got, err := therm.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 21.5, got)
}

func TestOneWireThermometer_RejectsMalformedData(t *testing.T) {
	bus := t.TempDir()
	writeW1Slave(t, bus, "28-000002", "garbage\nmore garbage\n")

	therm := &OneWireThermometer{DeviceID: "28-000002", BusPath: bus}
	_, err := therm.Read(context.Background())
	assert.ErrorIs(t, err, ErrThermometer)
}

func TestOneWireThermometer_MissingDeviceFails(t *testing.T) {
	therm := &OneWireThermometer{DeviceID: "28-missing", BusPath: t.TempDir()}
	_, err := therm.Read(context.Background())
	assert.ErrorIs(t, err, ErrThermometer)
}

func TestOneWireThermometer_DefaultsBusPath(t *testing.T) {
	therm := NewOneWireThermometer("28-abc")
	assert.Equal(t, "/sys/bus/w1/devices", therm.busPath())
}
