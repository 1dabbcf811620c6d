package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/fema/internal/models"
)

func TestSetPeriodStart(t *testing.T) {
	t.Parallel()

	periods := make(models.PeriodLog)
	SetPeriodStart(periods, mustParseDay(t, "2024-05-10"))

	if len(periods) != models.DefaultPeriodLength {
		t.Fatalf("expected %d records, got %d", models.DefaultPeriodLength, len(periods))
	}

	startCount := 0
	for offset := 0; offset < models.DefaultPeriodLength; offset++ {
		key := FormatDate(AddDays(mustParseDay(t, "2024-05-10"), offset))
		record, ok := periods[key]
		if !ok {
			t.Fatalf("missing record for %s", key)
		}
		if !record.IsPeriod {
			t.Fatalf("record %s not marked as period", key)
		}
		if record.Flow != models.DefaultFlow {
			t.Fatalf("record %s flow = %d, want default %d", key, record.Flow, models.DefaultFlow)
		}
		if record.Length != models.DefaultPeriodLength {
			t.Fatalf("record %s length = %d, want %d", key, record.Length, models.DefaultPeriodLength)
		}
		if record.IsStart {
			startCount++
		}
	}
	if startCount != 1 {
		t.Fatalf("expected exactly one start marker, got %d", startCount)
	}
	if !periods["2024-05-10"].IsStart {
		t.Fatal("expected the first day to carry the start marker")
	}
}

func TestFindPeriodStart(t *testing.T) {
	t.Parallel()

	periods := make(models.PeriodLog)
	SetPeriodStart(periods, mustParseDay(t, "2024-05-10"))

	got := FindPeriodStart(periods, mustParseDay(t, "2024-05-13"))
	if FormatDate(got) != "2024-05-10" {
		t.Fatalf("FindPeriodStart = %s, want 2024-05-10", FormatDate(got))
	}

	// A lone date with no predecessors is its own start.
	got = FindPeriodStart(periods, mustParseDay(t, "2024-08-01"))
	if FormatDate(got) != "2024-08-01" {
		t.Fatalf("FindPeriodStart = %s, want 2024-08-01", FormatDate(got))
	}
}

func TestChangePeriodLength(t *testing.T) {
	t.Parallel()

	t.Run("extends run and keeps overlapping flows", func(t *testing.T) {
		periods := make(models.PeriodLog)
		SetPeriodStart(periods, mustParseDay(t, "2024-05-10"))
		if err := ChangeFlow(periods, mustParseDay(t, "2024-05-12"), 5); err != nil {
			t.Fatalf("ChangeFlow failed: %v", err)
		}

		if err := ChangePeriodLength(periods, mustParseDay(t, "2024-05-12"), 7, nil); err != nil {
			t.Fatalf("ChangePeriodLength failed: %v", err)
		}

		if len(periods) != 7 {
			t.Fatalf("expected 7 records, got %d", len(periods))
		}
		if periods["2024-05-12"].Flow != 5 {
			t.Fatalf("overlapping flow lost: got %d, want 5", periods["2024-05-12"].Flow)
		}
		if periods["2024-05-16"].Flow != models.DefaultFlow {
			t.Fatalf("new day flow = %d, want start flow %d", periods["2024-05-16"].Flow, models.DefaultFlow)
		}
		if periods["2024-05-16"].Length != 7 {
			t.Fatalf("new length not written: got %d", periods["2024-05-16"].Length)
		}
	})

	t.Run("shrinks run", func(t *testing.T) {
		periods := make(models.PeriodLog)
		SetPeriodStart(periods, mustParseDay(t, "2024-05-10"))

		if err := ChangePeriodLength(periods, mustParseDay(t, "2024-05-11"), 3, nil); err != nil {
			t.Fatalf("ChangePeriodLength failed: %v", err)
		}
		if len(periods) != 3 {
			t.Fatalf("expected 3 records, got %d", len(periods))
		}
		if _, exists := periods["2024-05-13"]; exists {
			t.Fatal("expected trailing days to be removed")
		}
	})

	t.Run("moves start", func(t *testing.T) {
		periods := make(models.PeriodLog)
		SetPeriodStart(periods, mustParseDay(t, "2024-05-10"))

		newStart := mustParseDay(t, "2024-05-08")
		if err := ChangePeriodLength(periods, mustParseDay(t, "2024-05-10"), 5, &newStart); err != nil {
			t.Fatalf("ChangePeriodLength failed: %v", err)
		}
		if !periods["2024-05-08"].IsStart {
			t.Fatal("expected moved start at 2024-05-08")
		}
		if _, exists := periods["2024-05-13"]; exists {
			t.Fatal("expected old trailing day to be removed")
		}
	})

	t.Run("rejects invalid length without mutating", func(t *testing.T) {
		periods := make(models.PeriodLog)
		SetPeriodStart(periods, mustParseDay(t, "2024-05-10"))
		before := len(periods)

		err := ChangePeriodLength(periods, mustParseDay(t, "2024-05-10"), models.MaxPeriodLength+1, nil)
		if !errors.Is(err, ErrPeriodLengthInvalid) {
			t.Fatalf("expected ErrPeriodLengthInvalid, got %v", err)
		}
		if len(periods) != before {
			t.Fatal("log mutated on invalid input")
		}
	})

	t.Run("rejects date without period", func(t *testing.T) {
		periods := make(models.PeriodLog)
		err := ChangePeriodLength(periods, mustParseDay(t, "2024-05-10"), 5, nil)
		if !errors.Is(err, ErrNoPeriodAtDate) {
			t.Fatalf("expected ErrNoPeriodAtDate, got %v", err)
		}
	})
}

func TestChangeFlow(t *testing.T) {
	t.Parallel()

	periods := make(models.PeriodLog)
	SetPeriodStart(periods, mustParseDay(t, "2024-05-10"))

	if err := ChangeFlow(periods, mustParseDay(t, "2024-05-11"), 1); err != nil {
		t.Fatalf("ChangeFlow failed: %v", err)
	}
	record := periods["2024-05-11"]
	if record.Flow != 1 {
		t.Fatalf("flow = %d, want 1", record.Flow)
	}
	if record.IsStart || !record.IsPeriod || record.Length != models.DefaultPeriodLength {
		t.Fatal("ChangeFlow altered fields beyond flow")
	}

	if err := ChangeFlow(periods, mustParseDay(t, "2024-05-11"), 9); !errors.Is(err, ErrPeriodFlowInvalid) {
		t.Fatalf("expected ErrPeriodFlowInvalid, got %v", err)
	}
	if err := ChangeFlow(periods, mustParseDay(t, "2024-09-01"), 2); !errors.Is(err, ErrNoPeriodAtDate) {
		t.Fatalf("expected ErrNoPeriodAtDate, got %v", err)
	}
}

func TestDeletePeriod(t *testing.T) {
	t.Parallel()

	periods := make(models.PeriodLog)
	SetPeriodStart(periods, mustParseDay(t, "2024-05-10"))
	SetPeriodStart(periods, mustParseDay(t, "2024-06-07"))

	if err := DeletePeriod(periods, mustParseDay(t, "2024-05-12")); err != nil {
		t.Fatalf("DeletePeriod failed: %v", err)
	}

	for offset := 0; offset < models.DefaultPeriodLength; offset++ {
		key := FormatDate(AddDays(mustParseDay(t, "2024-05-10"), offset))
		if _, exists := periods[key]; exists {
			t.Fatalf("expected %s to be deleted", key)
		}
	}
	if len(periods) != models.DefaultPeriodLength {
		t.Fatalf("second run disturbed: %d records left", len(periods))
	}

	if err := DeletePeriod(periods, mustParseDay(t, "2024-05-12")); !errors.Is(err, ErrNoPeriodAtDate) {
		t.Fatalf("expected ErrNoPeriodAtDate, got %v", err)
	}
}
