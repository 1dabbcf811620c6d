package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/fema/internal/models"
)

const (
	lutealPhaseDays      = 14
	fertilityWindowAhead = 3
	fertilityWindowAfter = 1
	predictedPeriodSpan  = 7
)

// CycleEngine derives period, prediction, ovulation and fertility
// state for arbitrary dates from the period log. It holds no state of
// its own beyond the maps it reads, so it can be rebuilt cheaply after
// every mutation.
type CycleEngine struct {
	periods   models.PeriodLog
	pregnancy models.PregnancyRecord
	location  *time.Location
}

func NewCycleEngine(periods models.PeriodLog, pregnancy models.PregnancyRecord, location *time.Location) *CycleEngine {
	if location == nil {
		location = time.Local
	}
	return &CycleEngine{
		periods:   periods,
		pregnancy: pregnancy,
		location:  location,
	}
}

// RelevantPeriodStarts lists every period start in ascending order.
// When a birth date is recorded the cycle history restarts: starts on
// or before the birth date are excluded.
func (engine *CycleEngine) RelevantPeriodStarts() []time.Time {
	starts := make([]time.Time, 0, len(engine.periods))
	for key, record := range engine.periods {
		if !record.IsPeriod || !record.IsStart {
			continue
		}
		day, err := ParseDate(key, engine.location)
		if err != nil {
			continue
		}
		starts = append(starts, day)
	}
	sort.Slice(starts, func(i, j int) bool {
		return starts[i].Before(starts[j])
	})

	if !engine.pregnancy.HasBirth() {
		return starts
	}
	birth, err := ParseDate(engine.pregnancy.BirthDate, engine.location)
	if err != nil {
		return starts
	}
	relevant := make([]time.Time, 0, len(starts))
	for _, start := range starts {
		if start.After(birth) {
			relevant = append(relevant, start)
		}
	}
	return relevant
}

// AverageCycleLength is the mean gap between consecutive relevant
// starts, rounded to the nearest whole day. With fewer than two starts
// there is nothing to average and the default of 28 days applies.
func (engine *CycleEngine) AverageCycleLength() int {
	starts := engine.RelevantPeriodStarts()
	if len(starts) < 2 {
		return models.DefaultCycleLength
	}

	total := 0
	for index := 1; index < len(starts); index++ {
		total += DaysBetween(starts[index-1], starts[index])
	}
	count := len(starts) - 1
	average := int(float64(total)/float64(count) + 0.5)
	if average <= 0 {
		return models.DefaultCycleLength
	}
	return average
}

// NextPredictedPeriod extrapolates from the most recent relevant start
// plus the average cycle length. The second return is false when no
// relevant starts exist.
func (engine *CycleEngine) NextPredictedPeriod() (time.Time, bool) {
	starts := engine.RelevantPeriodStarts()
	if len(starts) == 0 {
		return time.Time{}, false
	}
	last := starts[len(starts)-1]
	return AddDays(last, engine.AverageCycleLength()), true
}

// NextPredictedPeriodAsOf answers "what would the next period have
// been, as of refDate": it extrapolates from the latest relevant start
// on or before refDate instead of the most recent one overall.
func (engine *CycleEngine) NextPredictedPeriodAsOf(refDate time.Time) (time.Time, bool) {
	starts := engine.RelevantPeriodStarts()
	if len(starts) == 0 {
		return time.Time{}, false
	}

	ref := NormalizeDate(refDate)
	var lastOnOrBefore time.Time
	found := false
	for _, start := range starts {
		if start.After(ref) {
			break
		}
		lastOnOrBefore = start
		found = true
	}
	if !found {
		return time.Time{}, false
	}
	return AddDays(lastOnOrBefore, engine.AverageCycleLength()), true
}

// OvulationDate is the predicted next period as of refDate minus the
// luteal phase of 14 days.
func (engine *CycleEngine) OvulationDate(refDate time.Time) (time.Time, bool) {
	nextPeriod, ok := engine.NextPredictedPeriodAsOf(refDate)
	if !ok {
		return time.Time{}, false
	}
	return AddDays(nextPeriod, -lutealPhaseDays), true
}

func (engine *CycleEngine) IsOvulationDay(date time.Time) bool {
	ovulation, ok := engine.OvulationDate(date)
	return ok && SameDay(date, ovulation)
}

// IsFertilityDay reports membership in the six-day fertile window: the
// three days before ovulation through one day after it.
func (engine *CycleEngine) IsFertilityDay(date time.Time) bool {
	ovulation, ok := engine.OvulationDate(date)
	if !ok {
		return false
	}
	diff := DaysBetween(ovulation, date)
	return diff >= -fertilityWindowAhead && diff <= fertilityWindowAfter
}

// IsPredictedPeriodDay is true within seven days either side of the
// unconditioned next-period prediction.
func (engine *CycleEngine) IsPredictedPeriodDay(date time.Time) bool {
	nextPeriod, ok := engine.NextPredictedPeriod()
	if !ok {
		return false
	}
	diff := DaysBetween(nextPeriod, date)
	if diff < 0 {
		diff = -diff
	}
	return diff <= predictedPeriodSpan
}

func (engine *CycleEngine) IsPeriodDay(date time.Time) bool {
	record, ok := engine.periods[FormatDate(date)]
	return ok && record.IsPeriod
}

// PeriodFlow returns the flow intensity recorded for date, defaulting
// to the mid-scale value when unset.
func (engine *CycleEngine) PeriodFlow(date time.Time) int {
	record, ok := engine.periods[FormatDate(date)]
	if !ok || record.Flow < models.MinFlow || record.Flow > models.MaxFlow {
		return models.DefaultFlow
	}
	return record.Flow
}

func (engine *CycleEngine) IsPeriodStart(date time.Time) bool {
	record, ok := engine.periods[FormatDate(date)]
	return ok && record.IsPeriod && record.IsStart
}

// CycleDayNumber is the 1-based day count since the most recent period
// start on or before date, taken over the full log regardless of
// pregnancy history. The second return is false when no start precedes
// the date.
func (engine *CycleEngine) CycleDayNumber(date time.Time) (int, bool) {
	dateKey := FormatDate(date)
	lastStartKey := ""
	for key, record := range engine.periods {
		if !record.IsStart || key > dateKey {
			continue
		}
		if lastStartKey == "" || key > lastStartKey {
			lastStartKey = key
		}
	}
	if lastStartKey == "" {
		return 0, false
	}

	start, err := ParseDate(lastStartKey, engine.location)
	if err != nil {
		return 0, false
	}
	return DaysBetween(start, date) + 1, true
}
