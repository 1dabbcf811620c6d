package store

import (
	"maps"
	"testing"
	"time"

	"github.com/terraincognita07/fema/internal/models"
	"github.com/terraincognita07/fema/internal/security"
)

func TestOpenSessionFreshAccount(t *testing.T) {
	t.Parallel()

	backend := newMemoryBackend()
	session, err := OpenSession(backend, security.DeriveKey("anna", "pass"), "anna", time.UTC)
	if err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}

	if session.Periods == nil || session.Notes == nil || session.Intimacy == nil || session.Visits == nil || session.Moods == nil {
		t.Fatal("expected all bucket maps initialized")
	}
	if len(session.Periods) != 0 {
		t.Fatalf("fresh session has %d period records", len(session.Periods))
	}
	if session.Pregnancy.HasStart() {
		t.Fatal("fresh session has a pregnancy record")
	}
}

func TestSessionPersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	backend := newMemoryBackend()
	key := security.DeriveKey("anna", "pass")

	first, err := OpenSession(backend, key, "anna", time.UTC)
	if err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}
	periods := models.PeriodLog{"2024-05-10": {IsPeriod: true, IsStart: true, Flow: 3, Length: 5}}
	if err := first.SavePeriods(periods); err != nil {
		t.Fatalf("SavePeriods failed: %v", err)
	}
	notes := models.NoteLog{"2024-05-10": {Text: "heavy day"}}
	if err := first.SaveNotes(notes); err != nil {
		t.Fatalf("SaveNotes failed: %v", err)
	}
	if err := first.SavePregnancy(models.PregnancyRecord{StartDate: "2024-06-01"}); err != nil {
		t.Fatalf("SavePregnancy failed: %v", err)
	}
	if first.Periods["2024-05-10"].Flow != 3 || !first.Pregnancy.HasStart() {
		t.Fatal("saved buckets not swapped into the session")
	}

	second, err := OpenSession(backend, key, "anna", time.UTC)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if second.Periods["2024-05-10"].Flow != 3 {
		t.Fatalf("period record lost: %+v", second.Periods)
	}
	if second.Notes["2024-05-10"].Text != "heavy day" {
		t.Fatalf("note lost: %+v", second.Notes)
	}
	if second.Pregnancy.StartDate != "2024-06-01" {
		t.Fatalf("pregnancy record lost: %+v", second.Pregnancy)
	}
}

func TestSessionWrongKeyLooksEmpty(t *testing.T) {
	t.Parallel()

	backend := newMemoryBackend()
	first, err := OpenSession(backend, security.DeriveKey("anna", "pass"), "anna", time.UTC)
	if err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}
	if err := first.SaveNotes(models.NoteLog{"2024-05-10": {Text: "private"}}); err != nil {
		t.Fatalf("SaveNotes failed: %v", err)
	}

	second, err := OpenSession(backend, security.DeriveKey("anna", "other"), "anna", time.UTC)
	if err != nil {
		t.Fatalf("wrong-key open must not error, got %v", err)
	}
	if len(second.Notes) != 0 {
		t.Fatalf("wrong key must look like a fresh account, got %+v", second.Notes)
	}
}

func TestSessionClearAll(t *testing.T) {
	t.Parallel()

	backend := newMemoryBackend()
	session, err := OpenSession(backend, security.DeriveKey("anna", "pass"), "anna", time.UTC)
	if err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}
	session.Pregnancy = models.PregnancyRecord{StartDate: "2024-06-01"}
	if err := session.SavePeriods(models.PeriodLog{"2024-05-10": {IsPeriod: true, IsStart: true, Flow: 3, Length: 5}}); err != nil {
		t.Fatalf("SavePeriods failed: %v", err)
	}

	if err := session.ClearAll(); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	if len(session.Periods) != 0 || session.Pregnancy.HasStart() {
		t.Fatal("in-memory state not reset")
	}
	if len(backend.values) != 0 {
		t.Fatal("persisted buckets not erased")
	}
}

func TestSessionFailedSaveKeepsOldState(t *testing.T) {
	t.Parallel()

	backend := newMemoryBackend()
	session, err := OpenSession(backend, security.DeriveKey("anna", "pass"), "anna", time.UTC)
	if err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}
	if err := session.SavePeriods(models.PeriodLog{"2024-05-10": {IsPeriod: true, IsStart: true, Flow: 3, Length: 5}}); err != nil {
		t.Fatalf("SavePeriods failed: %v", err)
	}

	backend.failSet = true

	updated := maps.Clone(session.Periods)
	updated["2024-06-07"] = models.PeriodRecord{IsPeriod: true, IsStart: true, Flow: 2, Length: 5}
	if err := session.SavePeriods(updated); err == nil {
		t.Fatal("expected save error from failing backend")
	}
	if len(session.Periods) != 1 {
		t.Fatalf("failed save must not change the session, got %+v", session.Periods)
	}
	if _, exists := session.Periods["2024-06-07"]; exists {
		t.Fatal("unsaved record leaked into the session")
	}

	if err := session.SavePregnancy(models.PregnancyRecord{StartDate: "2024-06-01"}); err == nil {
		t.Fatal("expected save error from failing backend")
	}
	if session.Pregnancy.HasStart() {
		t.Fatalf("unsaved pregnancy record leaked into the session: %+v", session.Pregnancy)
	}
}

func TestCredentialsLifecycle(t *testing.T) {
	t.Parallel()

	backend := newMemoryBackend()
	key := security.DeriveKey("anna", "pass")

	exists, err := HasCredentials(backend)
	if err != nil || exists {
		t.Fatalf("expected no credentials yet, exists=%v err=%v", exists, err)
	}

	created, err := CreateCredentials(backend, key, "anna", "pass")
	if err != nil {
		t.Fatalf("CreateCredentials failed: %v", err)
	}
	if created.Username != "anna" || created.PasswordHash == "" {
		t.Fatalf("unexpected credential record: %+v", created)
	}

	exists, err = HasCredentials(backend)
	if err != nil || !exists {
		t.Fatalf("expected credentials present, exists=%v err=%v", exists, err)
	}

	verified, err := VerifyCredentials(backend, key, "anna", "pass")
	if err != nil {
		t.Fatalf("VerifyCredentials failed: %v", err)
	}
	if verified.Username != "anna" {
		t.Fatalf("unexpected verified record: %+v", verified)
	}

	if _, err := VerifyCredentials(backend, key, "anna", "wrong"); err == nil {
		t.Fatal("expected rejection for wrong password")
	}
	wrongKey := security.DeriveKey("anna", "wrong")
	if _, err := VerifyCredentials(backend, wrongKey, "anna", "wrong"); err == nil {
		t.Fatal("expected rejection for wrong key")
	}
}
