package services

import (
	"testing"
	"time"

	"github.com/terraincognita07/fema/internal/models"
)

func buildTestDayStateBuilder(t *testing.T, periods models.PeriodLog, pregnancy models.PregnancyRecord) (*DayStateBuilder, models.NoteLog, models.MoodLog) {
	t.Helper()

	notes := models.NoteLog{"2024-03-10": {Text: "cramps in the morning"}}
	intimacy := models.IntimacyLog{"2024-03-09": {Note: ""}}
	visits := models.MedicalVisitLog{"2024-03-12": {Type: models.VisitRoutine, Notes: "all fine"}}
	moods := models.MoodLog{"2024-03-10": {Mood: models.MoodTired, Sleep: "7h", Symptoms: []string{"headache"}}}

	cycle := NewCycleEngine(periods, pregnancy, time.UTC)
	pregnancyEngine := NewPregnancyEngine(pregnancy, time.UTC)
	return NewDayStateBuilder(cycle, pregnancyEngine, notes, intimacy, visits, moods), notes, moods
}

func TestDayStateBuilderStateFor(t *testing.T) {
	t.Parallel()

	periods := periodLogWithStarts(t, "2024-01-01", "2024-01-29", "2024-02-26")
	builder, _, _ := buildTestDayStateBuilder(t, periods, models.PregnancyRecord{})
	now := mustParseDay(t, "2024-03-10")

	state := builder.StateFor(mustParseDay(t, "2024-03-10"), now)
	if state.DateKey != "2024-03-10" {
		t.Fatalf("date key = %s", state.DateKey)
	}
	if state.IsPeriod {
		t.Fatal("no period recorded on 2024-03-10")
	}
	if !state.IsFertility {
		t.Fatal("expected fertile day")
	}
	if !state.HasNote || !state.HasMood {
		t.Fatal("expected note and mood markers")
	}
	if state.HasVisit || state.HasIntimacy {
		t.Fatal("unexpected visit or intimacy markers")
	}
	if state.CycleDay != 14 {
		t.Fatalf("cycle day = %d, want 14", state.CycleDay)
	}

	periodState := builder.StateFor(mustParseDay(t, "2024-02-26"), now)
	if !periodState.IsPeriod || !periodState.IsStart {
		t.Fatal("expected period start state on 2024-02-26")
	}
	if periodState.Flow != models.DefaultFlow {
		t.Fatalf("flow = %d, want default", periodState.Flow)
	}
}

func TestDayStateBuilderRange(t *testing.T) {
	t.Parallel()

	periods := periodLogWithStarts(t, "2024-02-26")
	builder, _, _ := buildTestDayStateBuilder(t, periods, models.PregnancyRecord{})
	now := mustParseDay(t, "2024-03-10")

	states := builder.StatesForRange(mustParseDay(t, "2024-03-01"), mustParseDay(t, "2024-03-05"), now)
	if len(states) != 5 {
		t.Fatalf("expected 5 states, got %d", len(states))
	}
	for index, state := range states {
		want := FormatDate(AddDays(mustParseDay(t, "2024-03-01"), index))
		if state.DateKey != want {
			t.Fatalf("state %d key = %s, want %s", index, state.DateKey, want)
		}
	}

	if got := builder.StatesForRange(mustParseDay(t, "2024-03-05"), mustParseDay(t, "2024-03-01"), now); got != nil {
		t.Fatalf("expected nil for inverted range, got %d states", len(got))
	}
}

func TestDayStatePregnancyOverridesNothing(t *testing.T) {
	t.Parallel()

	periods := periodLogWithStarts(t, "2024-01-01")
	pregnancy := models.PregnancyRecord{StartDate: "2024-02-01"}
	builder, _, _ := buildTestDayStateBuilder(t, periods, pregnancy)
	now := mustParseDay(t, "2024-03-10")

	state := builder.StateFor(mustParseDay(t, "2024-03-10"), now)
	if state.Pregnancy.State != PregnancyDay {
		t.Fatalf("pregnancy state = %s, want %s", state.Pregnancy.State, PregnancyDay)
	}
	// Cycle day keeps counting from the full log during pregnancy.
	if state.CycleDay == 0 {
		t.Fatal("expected cycle day despite pregnancy")
	}
}
