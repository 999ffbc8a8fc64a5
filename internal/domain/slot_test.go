package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestResolveWindow_Single(t *testing.T) {
	t.Run("night slot", func(t *testing.T) {
		w, err := ResolveWindow(ModeSingle, ResolveParams{Date: date(2025, 3, 1), Slot: "00:00-12:00"})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), w.End)
	})

	t.Run("day slot ends at next midnight", func(t *testing.T) {
		w, err := ResolveWindow(ModeSingle, ResolveParams{Date: date(2025, 3, 1), Slot: "12:00-24:00"})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), w.End)
	})

	t.Run("slot labels are accepted", func(t *testing.T) {
		w, err := ResolveWindow(ModeSingle, ResolveParams{Date: date(2025, 3, 1), Slot: "Day"})
		require.NoError(t, err)
		assert.Equal(t, 12*time.Hour, w.Duration())
	})

	t.Run("time of day in date is ignored", func(t *testing.T) {
		d := time.Date(2025, 3, 1, 17, 45, 0, 0, time.UTC)
		w, err := ResolveWindow(ModeSingle, ResolveParams{Date: &d, Slot: string(SlotNight)})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), w.Start)
	})
}

func TestResolveWindow_Range(t *testing.T) {
	w, err := ResolveWindow(ModeRange, ResolveParams{
		StartDate: date(2025, 3, 1),
		StartSlot: "12:00-24:00",
		EndDate:   date(2025, 3, 2),
		EndSlot:   "00:00-12:00",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC), w.End)
}

func TestResolveWindow_RangeMayBeReversed(t *testing.T) {
	// Резолвер не проверяет порядок, это делает проверка доступности
	w, err := ResolveWindow(ModeRange, ResolveParams{
		StartDate: date(2025, 3, 2),
		StartSlot: "12:00-24:00",
		EndDate:   date(2025, 3, 1),
		EndSlot:   "00:00-12:00",
	})
	require.NoError(t, err)
	assert.False(t, w.IsOrdered())
}

func TestResolveWindow_Explicit(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 30, 15, 500, time.FixedZone("X", 3600))
	end := start.Add(90 * time.Minute)

	w, err := ResolveWindow(ModeExplicit, ResolveParams{Start: &start, End: &end})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 8, 30, 15, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 15, 0, time.UTC), w.End)
}

func TestResolveWindow_IncompleteInput(t *testing.T) {
	tests := []struct {
		name   string
		mode   ResolveMode
		params ResolveParams
	}{
		{name: "single without date", mode: ModeSingle, params: ResolveParams{Slot: string(SlotDay)}},
		{name: "single without slot", mode: ModeSingle, params: ResolveParams{Date: date(2025, 3, 1)}},
		{name: "single with unknown slot", mode: ModeSingle, params: ResolveParams{Date: date(2025, 3, 1), Slot: "06:00-18:00"}},
		{name: "range without end date", mode: ModeRange, params: ResolveParams{StartDate: date(2025, 3, 1), StartSlot: "day", EndSlot: "night"}},
		{name: "range without end slot", mode: ModeRange, params: ResolveParams{StartDate: date(2025, 3, 1), EndDate: date(2025, 3, 2), StartSlot: "day"}},
		{name: "explicit without end", mode: ModeExplicit, params: ResolveParams{Start: date(2025, 3, 1)}},
		{name: "unknown mode", mode: ResolveMode("weekly"), params: ResolveParams{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ResolveWindow(tt.mode, tt.params)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrIncompleteInput)
			assert.Equal(t, TimeWindow{}, w)
		})
	}
}

func TestTimeWindow_Overlaps(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }
	a := TimeWindow{Start: at(0), End: at(12)}

	tests := []struct {
		name string
		b    TimeWindow
		want bool
	}{
		{name: "partial overlap at end", b: TimeWindow{Start: at(6), End: at(18)}, want: true},
		{name: "partial overlap at start", b: TimeWindow{Start: at(-6), End: at(1)}, want: true},
		{name: "contained", b: TimeWindow{Start: at(2), End: at(3)}, want: true},
		{name: "containing", b: TimeWindow{Start: at(-1), End: at(13)}, want: true},
		{name: "identical", b: a, want: true},
		{name: "adjacent after", b: TimeWindow{Start: at(12), End: at(24)}, want: false},
		{name: "adjacent before", b: TimeWindow{Start: at(-12), End: at(0)}, want: false},
		{name: "disjoint", b: TimeWindow{Start: at(30), End: at(31)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(a))
		})
	}
}
