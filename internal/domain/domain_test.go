package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cakeService() Service {
	return Service{
		ID:   7,
		Name: "Cake",
		Customizations: []Customization{
			{Name: "flavor", Type: CustomizationSelect, Options: []string{"vanilla", "lemon"}, Required: true},
			{Name: "tiers", Type: CustomizationNumber},
			{Name: "topper", Type: CustomizationBoolean},
			{Name: "message", Type: CustomizationText},
		},
	}
}

func TestValidateCustomizations(t *testing.T) {
	svc := cakeService()

	tests := []struct {
		name    string
		values  map[string]string
		wantErr error
	}{
		{name: "all valid", values: map[string]string{"flavor": "lemon", "tiers": "3", "topper": "true", "message": "hi"}},
		{name: "only required", values: map[string]string{"flavor": "vanilla"}},
		{name: "missing required", values: map[string]string{"tiers": "2"}, wantErr: ErrMissingCustomization},
		{name: "blank required", values: map[string]string{"flavor": "  "}, wantErr: ErrMissingCustomization},
		{name: "bad option", values: map[string]string{"flavor": "chocolate"}, wantErr: ErrInvalidCustomization},
		{name: "bad number", values: map[string]string{"flavor": "lemon", "tiers": "three"}, wantErr: ErrInvalidCustomization},
		{name: "bad boolean", values: map[string]string{"flavor": "lemon", "topper": "maybe"}, wantErr: ErrInvalidCustomization},
		{name: "unknown key", values: map[string]string{"flavor": "lemon", "color": "red"}, wantErr: ErrUnknownCustomization},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateCustomizations(tt.values)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)

			var ce *CustomizationError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "Cake", ce.Service)
		})
	}
}

func TestDurationMinutes(t *testing.T) {
	d, err := DurationMinutes("14:00", "18:30")
	require.NoError(t, err)
	assert.Equal(t, 270, d)

	d, err = DurationMinutes("09:00", "09:00")
	require.NoError(t, err)
	assert.Zero(t, d)

	_, err = DurationMinutes("18:00", "14:00")
	assert.ErrorIs(t, err, ErrNegativeDuration)

	_, err = DurationMinutes("25:00", "26:00")
	assert.Error(t, err)
}

func TestCanonicalClock(t *testing.T) {
	for in, want := range map[string]string{"9:00": "09:00", "09:05": "09:05", "17:30": "17:30", "0:00": "00:00"} {
		got, err := CanonicalClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := CanonicalClock("9am")
	assert.Error(t, err)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, 6, 20, 23, 59, 0, 0, time.UTC)
	c := time.Date(2026, 6, 21, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(b, c))
}

func TestScheduleFromSlot(t *testing.T) {
	slot := TimeSlot{
		ID:        4,
		Date:      time.Date(2026, 6, 20, 10, 0, 0, 0, time.UTC),
		StartTime: "16:00",
		EndTime:   "22:00",
	}

	s, err := ScheduleFromSlot(slot)
	require.NoError(t, err)
	assert.Equal(t, Schedule{
		Date:            time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC),
		SlotID:          4,
		StartTime:       "16:00",
		EndTime:         "22:00",
		DurationMinutes: 360,
	}, s)
}

func TestTimeSlotBookable(t *testing.T) {
	assert.True(t, TimeSlot{IsAvailable: true, Capacity: 2, BookedCount: 1}.Bookable())
	assert.False(t, TimeSlot{IsAvailable: true, Capacity: 2, BookedCount: 2}.Bookable())
	assert.False(t, TimeSlot{IsAvailable: false, Capacity: 2}.Bookable())
}
