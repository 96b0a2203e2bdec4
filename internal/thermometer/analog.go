package thermometer

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AnalogThermometer reads a raw ADC channel exposed as a sysfs file
// (e.g. an MCP3008 via iio) and applies a linear calibration, for
// boards without a 1-Wire bus. No equivalent exists in the teacher,
// whose fleet is entirely 1-Wire/relay based; this follows the same
// read-file-then-parse shape as OneWireThermometer.
type AnalogThermometer struct {
	ChannelPath string
	// Slope and Intercept convert the raw ADC reading to degrees:
	// temp = raw*Slope + Intercept.
	Slope     float64
	Intercept float64
}

func NewAnalogThermometer(channelPath string, slope, intercept float64) *AnalogThermometer {
	return &AnalogThermometer{ChannelPath: channelPath, Slope: slope, Intercept: intercept}
}

func (a *AnalogThermometer) Read(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	data, err := os.ReadFile(a.ChannelPath)
	if err != nil {
		return 0, fmt.Errorf("%w: reading %s: %v", ErrThermometer, a.ChannelPath, err)
	}

	raw, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: non-numeric ADC value in %s: %v", ErrThermometer, a.ChannelPath, err)
	}

	return raw*a.Slope + a.Intercept, nil
}
