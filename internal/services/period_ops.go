package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/fema/internal/models"
)

var (
	ErrNoPeriodAtDate      = errors.New("no period recorded at date")
	ErrPeriodFlowInvalid   = errors.New("period flow out of range")
	ErrPeriodLengthInvalid = errors.New("period length out of range")
)

// SetPeriodStart records a new period run: a contiguous span of the
// default length starting at start, default flow on every day and
// exactly one start marker. Existing records on overlapping days are
// overwritten. Future-date confirmation is the caller's concern; the
// operation itself never asks.
func SetPeriodStart(periods models.PeriodLog, start time.Time) {
	startDay := NormalizeDate(start)
	for offset := 0; offset < models.DefaultPeriodLength; offset++ {
		key := FormatDate(AddDays(startDay, offset))
		periods[key] = models.PeriodRecord{
			IsPeriod: true,
			IsStart:  offset == 0,
			Flow:     models.DefaultFlow,
			Length:   models.DefaultPeriodLength,
		}
	}
}

// FindPeriodStart walks backward from the given date while contiguous
// predecessor records exist, stopping at the record marked as the
// run's start.
func FindPeriodStart(periods models.PeriodLog, from time.Time) time.Time {
	start := NormalizeDate(from)
	for {
		previous := AddDays(start, -1)
		record, ok := periods[FormatDate(previous)]
		if !ok {
			break
		}
		start = previous
		if record.IsStart {
			break
		}
	}
	return start
}

// ChangePeriodLength recomputes the run containing anyDay with a new
// length, optionally moving its start. Flow values for days present in
// both the old and the new run are preserved; days new to the run get
// the original start day's flow. The log is untouched on error.
func ChangePeriodLength(periods models.PeriodLog, anyDay time.Time, newLength int, newStart *time.Time) error {
	if newLength < models.MinPeriodLength || newLength > models.MaxPeriodLength {
		return ErrPeriodLengthInvalid
	}
	if _, ok := periods[FormatDate(anyDay)]; !ok {
		return ErrNoPeriodAtDate
	}

	previousStart := FindPeriodStart(periods, anyDay)
	previousStartRecord, ok := periods[FormatDate(previousStart)]
	if !ok {
		return ErrNoPeriodAtDate
	}

	oldLength := previousStartRecord.Length
	if oldLength <= 0 {
		oldLength = models.DefaultPeriodLength
	}
	startFlow := previousStartRecord.Flow
	if startFlow < models.MinFlow || startFlow > models.MaxFlow {
		startFlow = models.DefaultFlow
	}

	start := previousStart
	if newStart != nil {
		start = NormalizeDate(*newStart)
	}

	// Remember flows of days kept in both runs before the old run is
	// removed.
	retainedFlows := make(map[string]int)
	overlap := oldLength
	if newLength < overlap {
		overlap = newLength
	}
	for offset := 0; offset < overlap; offset++ {
		key := FormatDate(AddDays(previousStart, offset))
		if record, exists := periods[key]; exists {
			retainedFlows[key] = record.Flow
		}
	}

	for offset := 0; offset < oldLength; offset++ {
		delete(periods, FormatDate(AddDays(previousStart, offset)))
	}

	for offset := 0; offset < newLength; offset++ {
		key := FormatDate(AddDays(start, offset))
		flow := startFlow
		if offset > 0 {
			if retained, exists := retainedFlows[key]; exists && retained >= models.MinFlow && retained <= models.MaxFlow {
				flow = retained
			}
		}
		periods[key] = models.PeriodRecord{
			IsPeriod: true,
			IsStart:  offset == 0,
			Flow:     flow,
			Length:   newLength,
		}
	}
	return nil
}

// ChangeFlow updates flow on the existing record at date without
// altering length, start marker or contiguity.
func ChangeFlow(periods models.PeriodLog, date time.Time, flow int) error {
	if flow < models.MinFlow || flow > models.MaxFlow {
		return ErrPeriodFlowInvalid
	}
	key := FormatDate(date)
	record, ok := periods[key]
	if !ok {
		return ErrNoPeriodAtDate
	}
	record.Flow = flow
	periods[key] = record
	return nil
}

// DeletePeriod removes the whole run containing anyDay: it walks back
// to the true start, then deletes exactly the run's length of
// consecutive keys from there.
func DeletePeriod(periods models.PeriodLog, anyDay time.Time) error {
	if _, ok := periods[FormatDate(anyDay)]; !ok {
		return ErrNoPeriodAtDate
	}

	start := FindPeriodStart(periods, anyDay)
	length := models.DefaultPeriodLength
	if record, ok := periods[FormatDate(start)]; ok && record.Length > 0 {
		length = record.Length
	}
	for offset := 0; offset < length; offset++ {
		delete(periods, FormatDate(AddDays(start, offset)))
	}
	return nil
}
