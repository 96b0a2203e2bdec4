package thermometer

import (
	"context"

	"github.com/thermod-project/thermod/internal/model"
)

// ScaleAdapter converts an upstream Thermometer's readings from From
// to To. Readings pass through unchanged when From equals To; neither
// scale is validated, and a pair other than celsius/fahrenheit also
// passes readings through unchanged.
type ScaleAdapter struct {
	Upstream Thermometer
	From     model.Scale
	To       model.Scale
}

func NewScaleAdapter(upstream Thermometer, from, to model.Scale) *ScaleAdapter {
	return &ScaleAdapter{Upstream: upstream, From: from, To: to}
}

func (a *ScaleAdapter) Read(ctx context.Context) (float64, error) {
	temp, err := a.Upstream.Read(ctx)
	if err != nil {
		return 0, err
	}
	if a.From == a.To {
		return temp, nil
	}
	if a.From == model.Fahrenheit && a.To == model.Celsius {
		return (temp - 32) * 5 / 9, nil
	}
	if a.From == model.Celsius && a.To == model.Fahrenheit {
		return temp*9/5 + 32, nil
	}
	return temp, nil
}
