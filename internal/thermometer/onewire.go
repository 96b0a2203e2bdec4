package thermometer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// OneWireThermometer reads a DS18B20-style sensor from the 1-Wire bus,
// adapted directly from the teacher's gpio.ReadSensorTemp: same
// w1_slave file layout and "t=" parsing, without the
// shutdown.ShutdownWithError panic-on-failure the teacher used for a
// hardware fleet that no longer exists in this daemon.
type OneWireThermometer struct {
	// DeviceID is the sensor's 1-Wire device folder name, e.g.
	// "28-0000073e2381".
	DeviceID string
	// BusPath is the base 1-Wire device directory; defaults to
	// /sys/bus/w1/devices when empty.
	BusPath string
}

func NewOneWireThermometer(deviceID string) *OneWireThermometer {
	return &OneWireThermometer{DeviceID: deviceID}
}

func (o *OneWireThermometer) busPath() string {
	if o.BusPath != "" {
		return o.BusPath
	}
	return "/sys/bus/w1/devices"
}

func (o *OneWireThermometer) Read(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	file := filepath.Join(o.busPath(), o.DeviceID, "w1_slave")
	data, err := os.ReadFile(file)
	if err != nil {
		return 0, fmt.Errorf("%w: reading %s: %v", ErrThermometer, file, err)
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) < 2 || !strings.Contains(lines[1], "t=") {
		return 0, fmt.Errorf("%w: malformed sensor data in %s", ErrThermometer, file)
	}

	parts := strings.Split(lines[1], "t=")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: could not split temperature line in %s", ErrThermometer, file)
	}

	tempMilliC, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("%w: non-numeric temperature in %s: %v", ErrThermometer, file, err)
	}

	return float64(tempMilliC) / 1000.0, nil
}
