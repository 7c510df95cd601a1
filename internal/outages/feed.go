package outages

// slotDefinite marks a confirmed outage. The feed also publishes tentative
// slots; those are ignored.
const slotDefinite = "Definite"

// Slot is one entry in the raw feed: an outage of the given type between two
// minute offsets within the day.
type Slot struct {
	Type  string `json:"type"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// DaySchedule is the raw feed data for a single day.
type DaySchedule struct {
	Slots []Slot `json:"slots"`
}

// GroupSchedule is the raw feed data for a single outage group.
type GroupSchedule struct {
	Today    DaySchedule `json:"today"`
	Tomorrow DaySchedule `json:"tomorrow"`
}

// Schedule converts the raw feed data to a Schedule, retaining confirmed
// slots only.
func (g GroupSchedule) Schedule() Schedule {
	return Schedule{
		PeriodToday:    g.Today.intervals(),
		PeriodTomorrow: g.Tomorrow.intervals(),
	}
}

func (d DaySchedule) intervals() []Interval {
	intervals := make([]Interval, 0, len(d.Slots))
	for _, slot := range d.Slots {
		if slot.Type != slotDefinite {
			continue
		}
		intervals = append(intervals, Interval{
			Start: float64(slot.Start) / 60,
			End:   float64(slot.End) / 60,
		})
	}
	return intervals
}
