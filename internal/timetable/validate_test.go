package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thermod-project/thermod/internal/model"
)

func TestValidate_AcceptsFullyPopulatedTimeTable(t *testing.T) {
	tt := newTestTimeTable()
	assert.NoError(t, tt.Validate())
}

func TestValidate_SkipsWorkWhenClean(t *testing.T) {
	tt := newTestTimeTable()
	require.NoError(t, tt.Validate())
	// Corrupt the matrix directly without going through a setter, so
	// dirty stays false; Validate must not notice (cache behavior).
	tt.matrix[0][0][0] = ""
	assert.NoError(t, tt.Validate(), "a clean TimeTable must not be re-validated")
}

func TestValidate_RejectsTminGreaterThanTmax(t *testing.T) {
	tt := newTestTimeTable()
	tt.settings.Tmin = 23
	tt.settings.Tmax = 20
	tt.dirty = true

	err := tt.Validate()
	require.Error(t, err)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "invalid-temperatures", ve.Code)
}

func TestValidate_RejectsOutOfRangeDifferential(t *testing.T) {
	tt := newTestTimeTable()
	tt.settings.Differential = 1.5
	tt.dirty = true

	err := tt.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidContent)
}

func TestValidate_RejectsNegativeGraceTime(t *testing.T) {
	tt := newTestTimeTable()
	tt.settings.GraceTime = grace(-1)
	tt.dirty = true

	assert.Error(t, tt.Validate())
}

func TestValidate_RejectsInvalidScale(t *testing.T) {
	tt := newTestTimeTable()
	tt.settings.Scale = model.Scale("kelvin")
	tt.dirty = true

	assert.Error(t, tt.Validate())
}

func TestValidate_RejectsInvalidMode(t *testing.T) {
	tt := newTestTimeTable()
	tt.settings.Mode = model.Mode("bogus")
	tt.dirty = true

	assert.Error(t, tt.Validate())
}

func TestValidate_RejectsIncompleteMatrix(t *testing.T) {
	tt := newTestTimeTable()
	tt.matrix[3][12][2] = ""
	tt.dirty = true

	err := tt.Validate()
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "incomplete-timetable", ve.Code)
}

func TestValidate_RejectsUnresolvableAlias(t *testing.T) {
	tt := newTestTimeTable()
	tt.matrix[3][12][2] = model.TemperatureAlias("not-a-number")
	tt.dirty = true

	err := tt.Validate()
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "unresolvable-alias", ve.Code)
}

func TestValidate_AcceptsLiteralNumericAlias(t *testing.T) {
	tt := newTestTimeTable()
	tt.matrix[3][12][2] = model.TemperatureAlias("19.5")
	tt.dirty = true

	assert.NoError(t, tt.Validate())
}

func TestValidate_RejectsUnsetMode(t *testing.T) {
	tt := New()
	assert.Error(t, tt.Validate(), "a freshly constructed TimeTable has no status yet")
}
