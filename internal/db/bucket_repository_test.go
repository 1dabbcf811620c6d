package db

import (
	"path/filepath"
	"testing"
)

func openTestRepository(t *testing.T) *BucketRepository {
	t.Helper()
	database, err := OpenSQLite(filepath.Join(t.TempDir(), "fema-test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	return NewBucketRepository(database)
}

func TestBucketRepositorySetAndGet(t *testing.T) {
	t.Parallel()

	repo := openTestRepository(t)

	if err := repo.Set(map[string]string{"period_data": "v1.blob-a", "notes": "v1.blob-b"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	values, err := repo.Get([]string{"period_data", "notes", "missing"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("expected 2 values, got %d", len(values))
	}
	if values["period_data"] != "v1.blob-a" || values["notes"] != "v1.blob-b" {
		t.Fatalf("unexpected values: %+v", values)
	}
	if _, exists := values["missing"]; exists {
		t.Fatal("missing bucket must be absent from the result")
	}
}

func TestBucketRepositoryUpsert(t *testing.T) {
	t.Parallel()

	repo := openTestRepository(t)

	if err := repo.Set(map[string]string{"notes": "v1.first"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := repo.Set(map[string]string{"notes": "v1.second"}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	values, err := repo.Get([]string{"notes"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if values["notes"] != "v1.second" {
		t.Fatalf("expected overwritten value, got %q", values["notes"])
	}
}

func TestBucketRepositoryClear(t *testing.T) {
	t.Parallel()

	repo := openTestRepository(t)

	if err := repo.Set(map[string]string{"notes": "v1.blob", "mood_data": "v1.blob"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := repo.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	values, err := repo.Get([]string{"notes", "mood_data"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(values) != 0 {
		t.Fatalf("expected no values after clear, got %+v", values)
	}
}

func TestBucketRepositoryEmptyOperations(t *testing.T) {
	t.Parallel()

	repo := openTestRepository(t)

	if err := repo.Set(nil); err != nil {
		t.Fatalf("empty Set failed: %v", err)
	}
	values, err := repo.Get(nil)
	if err != nil {
		t.Fatalf("empty Get failed: %v", err)
	}
	if len(values) != 0 {
		t.Fatalf("expected empty result, got %+v", values)
	}
}
