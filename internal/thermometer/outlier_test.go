package thermometer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutlierFilter_AcceptsFirstReadingUnconditionally(t *testing.T) {
	upstream := &fakeThermometer{readings: []float64{500}}
	filter := NewOutlierFilter(upstream, 2.0)

	got, err := filter.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 500.0, got)
}

func TestOutlierFilter_RejectsLargeJump(t *testing.T) {
	upstream := &fakeThermometer{readings: []float64{20, 45}}
	filter := NewOutlierFilter(upstream, 2.0)

	_, err := filter.Read(context.Background())
	require.NoError(t, err)

	_, err = filter.Read(context.Background())
	assert.ErrorIs(t, err, ErrThermometer)
}

func TestOutlierFilter_AcceptsWithinDelta(t *testing.T) {
	upstream := &fakeThermometer{readings: []float64{20, 21}}
	filter := NewOutlierFilter(upstream, 2.0)

	_, err := filter.Read(context.Background())
	require.NoError(t, err)

	got, err := filter.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 21.0, got)
}

func TestOutlierFilter_KeepsLastGoodAfterRejection(t *testing.T) {
	upstream := &fakeThermometer{readings: []float64{20, 45, 21}}
	filter := NewOutlierFilter(upstream, 2.0)

	_, _ = filter.Read(context.Background())
	_, err := filter.Read(context.Background())
	require.Error(t, err)

	// The next reading is compared against 20 (the last *accepted*
	// value), not 45 (the rejected one).
	got, err := filter.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 21.0, got)
}
