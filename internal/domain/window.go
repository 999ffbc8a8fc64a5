package domain

import "time"

// TimeWindow полуоткрытый интервал [Start, End)
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// NewTimeWindow создаёт окно, приводя моменты к UTC с точностью до секунды
func NewTimeWindow(start, end time.Time) TimeWindow {
	return TimeWindow{Start: NormalizeInstant(start), End: NormalizeInstant(end)}
}

// IsOrdered returns true if start is strictly before end
func (w TimeWindow) IsOrdered() bool {
	return w.Start.Before(w.End)
}

// Overlaps проверяет пересечение полуоткрытых интервалов.
// Окна, которые только соприкасаются границами, не пересекаются.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// Duration длительность окна
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// NormalizeInstant приводит момент времени к UTC и отбрасывает доли секунды
func NormalizeInstant(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
