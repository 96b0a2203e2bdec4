package timetable

import (
	"encoding/json"
	"fmt"

	"github.com/thermod-project/thermod/internal/model"
)

// wireDocument is the JSON shape of both the persisted timetable.json
// file and the GET /settings response (spec.md §6).
type wireDocument struct {
	Status       model.Mode                      `json:"status"`
	Temperatures wireTemperatures                `json:"temperatures"`
	Differential float64                         `json:"differential"`
	GraceTime    *int                            `json:"grace_time"`
	Timetable    map[string]map[string][4]string `json:"timetable"`
	Scale        model.Scale                     `json:"scale"`
	Cooling      bool                            `json:"cooling"`
}

type wireTemperatures struct {
	Tmax float64 `json:"tmax"`
	Tmin float64 `json:"tmin"`
	T0   float64 `json:"t0"`
}

// MarshalJSON renders the current settings and matrix in the wire
// format documented in spec.md §6.
func (tt *TimeTable) MarshalJSON() ([]byte, error) {
	doc := wireDocument{
		Status: tt.settings.Mode,
		Temperatures: wireTemperatures{
			Tmax: tt.settings.Tmax,
			Tmin: tt.settings.Tmin,
			T0:   tt.settings.T0,
		},
		Differential: tt.settings.Differential,
		GraceTime:    tt.settings.GraceTime,
		Timetable:    make(map[string]map[string][4]string, 7),
		Scale:        tt.settings.Scale,
		Cooling:      tt.settings.Cooling,
	}

	for di, day := range model.Days {
		hours := make(map[string][4]string, 24)
		for hi := 0; hi < 24; hi++ {
			var quarters [4]string
			for q := 0; q < 4; q++ {
				quarters[q] = string(tt.matrix[di][hi][q])
			}
			hours[string(model.HourFromInt(hi))] = quarters
		}
		doc.Timetable[string(day)] = hours
	}

	return json.Marshal(doc)
}

// UnmarshalJSON replaces the TimeTable's settings and matrix wholesale
// from a wire document, without validating — callers call Validate
// explicitly. This step returns InvalidSyntax for a document that does
// not decode and InvalidContent for an unknown day or hour name; every
// other content rule is left to validation.
func (tt *TimeTable) UnmarshalJSON(data []byte) error {
	var doc wireDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSyntax, err)
	}

	tt.settings = model.Settings{
		Tmax:         doc.Temperatures.Tmax,
		Tmin:         doc.Temperatures.Tmin,
		T0:           doc.Temperatures.T0,
		Differential: doc.Differential,
		GraceTime:    doc.GraceTime,
		Mode:         doc.Status,
		Cooling:      doc.Cooling,
		Scale:        doc.Scale,
	}

	var matrix Matrix
	for dayName, hours := range doc.Timetable {
		day, ok := model.ParseDay(dayName)
		if !ok {
			return fmt.Errorf("%w: unknown day %q in timetable", ErrInvalidContent, dayName)
		}
		di := day.Index()
		for hourName, quarters := range hours {
			hour := model.Hour(hourName)
			if !hour.Valid() {
				return fmt.Errorf("%w: invalid hour %q in timetable", ErrInvalidContent, hourName)
			}
			hi := int(hour[1]-'0')*10 + int(hour[2]-'0')
			for q := 0; q < 4; q++ {
				matrix[di][hi][q] = model.TemperatureAlias(quarters[q])
			}
		}
	}
	tt.matrix = matrix
	tt.dirty = true

	return nil
}
