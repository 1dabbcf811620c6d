package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/fema/internal/models"
)

type PregnancyState string

const (
	PregnancyNone       PregnancyState = "none"
	PregnancyDay        PregnancyState = "pregnancy-day"
	PregnancyOverdueDay PregnancyState = "pregnancy-overdue-day"
	PregnancyBirthDay   PregnancyState = "birth-day"
)

const (
	gestationMonths      = 9
	birthDateGraceMonths = 3
	postBirthWindowDays  = 30
)

var (
	ErrPregnancyOverlap    = errors.New("a pregnancy is already recorded for that date")
	ErrPregnancyNotStarted = errors.New("pregnancy start date is not set")
	ErrBirthDateOutOfRange = errors.New("birth date outside pregnancy period plus three months")
)

// PregnancyDayState is the derived status of one calendar date. Due is
// true exactly on the nine-month due date, whatever State says.
type PregnancyDayState struct {
	State PregnancyState `json:"state"`
	Due   bool           `json:"due"`
}

var pregnancyReminders = map[int]string{
	1: "First prenatal visit scheduled. Take folic acid supplements.",
	2: "Morning sickness may begin. Stay hydrated and eat small meals.",
	3: "First trimester screening available. Consider genetic testing.",
	4: "Anatomy scan scheduled. Baby's organs are developing.",
	5: "You may feel baby's first movements. Anatomy scan time.",
	6: "Glucose screening test. Monitor weight gain.",
	7: "Third trimester begins. Baby shower planning time.",
	8: "Braxton Hicks contractions may start. Prepare birth plan.",
	9: "Full term approaching. Hospital bag should be ready.",
}

var pregnancyExtraHints = []string{
	"Practice pelvic floor exercises.",
	"Aim for balanced meals with iron and calcium.",
	"Stay active with light exercise as approved.",
	"Track fetal movements daily.",
	"Hydrate well and rest when needed.",
	"Prepare questions for your next appointment.",
}

// PregnancyEngine answers per-date pregnancy questions from the
// singleton pregnancy record. Like the cycle engine it is pure; the
// wall clock enters only through explicit now parameters.
type PregnancyEngine struct {
	record   models.PregnancyRecord
	location *time.Location
}

func NewPregnancyEngine(record models.PregnancyRecord, location *time.Location) *PregnancyEngine {
	if location == nil {
		location = time.Local
	}
	return &PregnancyEngine{record: record, location: location}
}

func (engine *PregnancyEngine) startDate() (time.Time, bool) {
	if !engine.record.HasStart() {
		return time.Time{}, false
	}
	start, err := ParseDate(engine.record.StartDate, engine.location)
	if err != nil {
		return time.Time{}, false
	}
	return start, true
}

func (engine *PregnancyEngine) birthDate() (time.Time, bool) {
	if !engine.record.HasBirth() {
		return time.Time{}, false
	}
	birth, err := ParseDate(engine.record.BirthDate, engine.location)
	if err != nil {
		return time.Time{}, false
	}
	return birth, true
}

// StateAt classifies date. The birth date always wins; otherwise the
// date is a pregnancy day inside [start, birth-or-due); otherwise,
// when no birth is recorded and the wall clock has passed the due
// date, every date from the due date through today shows as overdue.
// The overdue window deliberately depends on now rather than on the
// queried date, matching how the calendar paints past months once a
// pregnancy runs long.
func (engine *PregnancyEngine) StateAt(date time.Time, now time.Time) PregnancyDayState {
	start, ok := engine.startDate()
	if !ok {
		return PregnancyDayState{State: PregnancyNone}
	}

	day := NormalizeDate(date)
	today := NormalizeDate(now)
	dueDate := AddMonths(start, gestationMonths)
	isDue := SameDay(day, dueDate)

	if engine.IsBirthDay(date) {
		return PregnancyDayState{State: PregnancyBirthDay, Due: isDue}
	}

	birth, hasBirth := engine.birthDate()
	pregnancyEnd := dueDate
	if hasBirth {
		pregnancyEnd = birth
	}

	if !day.Before(start) && day.Before(pregnancyEnd) {
		return PregnancyDayState{State: PregnancyDay, Due: isDue}
	}

	if !hasBirth && today.After(dueDate) {
		if !day.Before(dueDate) && !day.After(today) {
			return PregnancyDayState{State: PregnancyOverdueDay, Due: isDue}
		}
	}

	return PregnancyDayState{State: PregnancyNone, Due: isDue}
}

// IsPregnant reports membership in [start, birth) when the birth is
// known, and everything from start onward while the pregnancy is open.
func (engine *PregnancyEngine) IsPregnant(date time.Time) bool {
	start, ok := engine.startDate()
	if !ok {
		return false
	}
	day := NormalizeDate(date)
	if birth, hasBirth := engine.birthDate(); hasBirth {
		return !day.Before(start) && day.Before(birth)
	}
	return !day.Before(start)
}

// IsPostBirth covers the birth date itself and the thirty days after.
func (engine *PregnancyEngine) IsPostBirth(date time.Time) bool {
	birth, ok := engine.birthDate()
	if !ok {
		return false
	}
	diff := DaysBetween(birth, date)
	return diff >= 0 && diff <= postBirthWindowDays
}

func (engine *PregnancyEngine) IsBirthDay(date time.Time) bool {
	birth, ok := engine.birthDate()
	return ok && SameDay(date, birth)
}

// MonthIndex counts whole months elapsed since the pregnancy start,
// rounding up within the current month, so the first month reads as 1
// from its very first day.
func (engine *PregnancyEngine) MonthIndex(refDate time.Time) int {
	start, ok := engine.startDate()
	if !ok {
		return 0
	}
	months := (refDate.Year()-start.Year())*12 + int(refDate.Month()) - int(start.Month())
	if refDate.Day() >= start.Day() {
		months++
	}
	return months
}

// ReminderForDate fires on each monthly boundary of the pregnancy:
// the k-th reminder (k = 1..9) appears on addMonths(start, k-1),
// paired with a supplemental hint that rotates through the hint list.
func (engine *PregnancyEngine) ReminderForDate(date time.Time) (string, bool) {
	start, ok := engine.startDate()
	if !ok {
		return "", false
	}
	day := NormalizeDate(date)
	for month := 1; month <= gestationMonths; month++ {
		boundary := AddMonths(start, month-1)
		if !SameDay(day, boundary) {
			continue
		}
		base := pregnancyReminders[month]
		extra := pregnancyExtraHints[(month-1)%len(pregnancyExtraHints)]
		return base + " " + extra, true
	}
	return "", false
}

// ReminderForMonth returns the fixed reminder text for months 1-9.
func ReminderForMonth(month int) (string, bool) {
	text, ok := pregnancyReminders[month]
	return text, ok
}

// StartPregnancy records a new pregnancy beginning at start, clearing
// any previous birth date. It is rejected while an existing pregnancy
// still covers the chosen date, and the stored record is returned
// unchanged in that case.
func StartPregnancy(record models.PregnancyRecord, start time.Time, location *time.Location) (models.PregnancyRecord, error) {
	engine := NewPregnancyEngine(record, location)
	if engine.IsPregnant(start) {
		return record, ErrPregnancyOverlap
	}
	return models.PregnancyRecord{StartDate: FormatDate(NormalizeDate(start))}, nil
}

// SetBirthDate closes the open pregnancy. The birth may fall anywhere
// inside the nine gestation months plus a three month grace window.
func SetBirthDate(record models.PregnancyRecord, birth time.Time, location *time.Location) (models.PregnancyRecord, error) {
	if location == nil {
		location = time.Local
	}
	if !record.HasStart() {
		return record, ErrPregnancyNotStarted
	}
	start, err := ParseDate(record.StartDate, location)
	if err != nil {
		return record, ErrPregnancyNotStarted
	}

	day := NormalizeDate(birth)
	latest := AddMonths(start, gestationMonths+birthDateGraceMonths)
	if day.Before(start) || day.After(latest) {
		return record, ErrBirthDateOutOfRange
	}

	updated := record
	updated.BirthDate = FormatDate(day)
	return updated, nil
}
