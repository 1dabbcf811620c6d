package services

import (
	"time"

	"github.com/terraincognita07/fema/internal/models"
)

// DayState is the full derived state of one calendar date, the shape
// consumed by the calendar surface and the exporters.
type DayState struct {
	Date        time.Time         `json:"-"`
	DateKey     string            `json:"date"`
	IsPeriod    bool              `json:"is_period"`
	IsStart     bool              `json:"is_period_start"`
	Flow        int               `json:"flow,omitempty"`
	IsFertility bool              `json:"is_fertility"`
	IsOvulation bool              `json:"is_ovulation"`
	IsPredicted bool              `json:"is_predicted"`
	Pregnancy   PregnancyDayState `json:"pregnancy"`
	CycleDay    int               `json:"cycle_day,omitempty"`
	HasNote     bool              `json:"has_note"`
	HasIntimacy bool              `json:"has_intimacy"`
	HasVisit    bool              `json:"has_visit"`
	HasMood     bool              `json:"has_mood"`
}

// DayStateBuilder combines both engines with the raw logs to derive
// day states for arbitrary ranges.
type DayStateBuilder struct {
	cycle     *CycleEngine
	pregnancy *PregnancyEngine
	notes     models.NoteLog
	intimacy  models.IntimacyLog
	visits    models.MedicalVisitLog
	moods     models.MoodLog
}

func NewDayStateBuilder(
	cycle *CycleEngine,
	pregnancy *PregnancyEngine,
	notes models.NoteLog,
	intimacy models.IntimacyLog,
	visits models.MedicalVisitLog,
	moods models.MoodLog,
) *DayStateBuilder {
	return &DayStateBuilder{
		cycle:     cycle,
		pregnancy: pregnancy,
		notes:     notes,
		intimacy:  intimacy,
		visits:    visits,
		moods:     moods,
	}
}

func (builder *DayStateBuilder) StateFor(date time.Time, now time.Time) DayState {
	day := NormalizeDate(date)
	key := FormatDate(day)

	state := DayState{
		Date:      day,
		DateKey:   key,
		IsPeriod:  builder.cycle.IsPeriodDay(day),
		Pregnancy: builder.pregnancy.StateAt(day, now),
	}
	if state.IsPeriod {
		state.Flow = builder.cycle.PeriodFlow(day)
		state.IsStart = builder.cycle.IsPeriodStart(day)
	}
	state.IsFertility = builder.cycle.IsFertilityDay(day)
	state.IsOvulation = builder.cycle.IsOvulationDay(day)
	state.IsPredicted = builder.cycle.IsPredictedPeriodDay(day)
	if cycleDay, ok := builder.cycle.CycleDayNumber(day); ok {
		state.CycleDay = cycleDay
	}

	_, state.HasNote = builder.notes[key]
	_, state.HasIntimacy = builder.intimacy[key]
	_, state.HasVisit = builder.visits[key]
	_, state.HasMood = builder.moods[key]
	return state
}

// StatesForRange derives day states for every date from from through
// to inclusive, in calendar order.
func (builder *DayStateBuilder) StatesForRange(from time.Time, to time.Time, now time.Time) []DayState {
	first := NormalizeDate(from)
	last := NormalizeDate(to)
	if last.Before(first) {
		return nil
	}

	states := make([]DayState, 0, DaysBetween(first, last)+1)
	for day := first; !day.After(last); day = AddDays(day, 1) {
		states = append(states, builder.StateFor(day, now))
	}
	return states
}
