//go:build unit

package availability_test

import (
	"testing"

	"barbershop-booking/internal/domain/availability"
	"barbershop-booking/internal/pkg/errs"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlots(t *testing.T) {
	t.Run("nine to ten every thirty minutes", func(t *testing.T) {
		slots, err := availability.GenerateSlots(availability.WorkingWindow{
			Start:           availability.At(9, 0),
			End:             availability.At(10, 0),
			IntervalMinutes: 30,
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"09:00", "09:30"}, formatSlots(slots))
	})

	t.Run("slot count and spacing", func(t *testing.T) {
		tests := []struct {
			name      string
			start     availability.TimeOfDay
			end       availability.TimeOfDay
			interval  int
			wantCount int
		}{
			{name: "exact division", start: availability.At(9, 0), end: availability.At(17, 0), interval: 30, wantCount: 16},
			{name: "remainder rounds up", start: availability.At(9, 0), end: availability.At(10, 0), interval: 25, wantCount: 3},
			{name: "interval longer than window", start: availability.At(9, 0), end: availability.At(9, 20), interval: 45, wantCount: 1},
			{name: "one minute granularity", start: availability.At(12, 0), end: availability.At(12, 7), interval: 1, wantCount: 7},
			{name: "closes at midnight", start: availability.At(22, 0), end: availability.TimeOfDay(availability.MinutesPerDay), interval: 60, wantCount: 2},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				slots, err := availability.GenerateSlots(availability.WorkingWindow{Start: tt.start, End: tt.end, IntervalMinutes: tt.interval})
				require.NoError(t, err)
				require.Len(t, slots, tt.wantCount)

				assert.Equal(t, tt.start, slots[0])
				assert.Less(t, slots[len(slots)-1], tt.end)
				for i := 1; i < len(slots); i++ {
					assert.Equal(t, tt.interval, int(slots[i]-slots[i-1]))
				}
			})
		}
	})

	t.Run("invalid configuration", func(t *testing.T) {
		tests := []struct {
			name   string
			window availability.WorkingWindow
		}{
			{name: "zero interval", window: availability.WorkingWindow{Start: availability.At(9, 0), End: availability.At(10, 0), IntervalMinutes: 0}},
			{name: "negative interval", window: availability.WorkingWindow{Start: availability.At(9, 0), End: availability.At(10, 0), IntervalMinutes: -15}},
			{name: "start equals end", window: availability.WorkingWindow{Start: availability.At(9, 0), End: availability.At(9, 0), IntervalMinutes: 15}},
			{name: "start after end", window: availability.WorkingWindow{Start: availability.At(18, 0), End: availability.At(9, 0), IntervalMinutes: 15}},
			{name: "end past midnight", window: availability.WorkingWindow{Start: availability.At(22, 0), End: availability.At(25, 0), IntervalMinutes: 15}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				slots, err := availability.GenerateSlots(tt.window)
				require.Error(t, err)
				assert.True(t, errs.Is(err, availability.ErrInvalidConfiguration))
				assert.Nil(t, slots)
			})
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		w := availability.WorkingWindow{Start: availability.At(8, 15), End: availability.At(19, 40), IntervalMinutes: 20}
		first, err := availability.GenerateSlots(w)
		require.NoError(t, err)
		second, err := availability.GenerateSlots(w)
		require.NoError(t, err)

		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("GenerateSlots() mismatch (-first +second):\n%s", diff)
		}
	})
}

func TestWorkingWindow_IsOnGrid(t *testing.T) {
	w, err := availability.NewWorkingWindow(availability.At(9, 0), availability.At(12, 0), 30)
	require.NoError(t, err)

	assert.True(t, w.IsOnGrid(availability.At(9, 0)))
	assert.True(t, w.IsOnGrid(availability.At(11, 30)))
	assert.False(t, w.IsOnGrid(availability.At(9, 15)))
	assert.False(t, w.IsOnGrid(availability.At(12, 0)))
	assert.False(t, w.IsOnGrid(availability.At(8, 30)))
}

func formatSlots(slots []availability.TimeOfDay) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}
