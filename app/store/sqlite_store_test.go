package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/lysyi3m/draw-comb/app/draw"
)

func TestSQLiteStore_AppendAndDedupe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	now := time.Date(2024, 9, 17, 18, 0, 0, 0, time.UTC)

	s, err := OpenSQLiteStore(path, testLocation(t))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	defer s.Close()

	result := draw.Result{Game: "Pick 3", Phase: "250917", DateISO: "2024-09-17", Numbers: "1-9-5"}

	appended, err := s.AppendNew([]draw.Result{result}, now)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if appended != 1 {
		t.Errorf("Expected 1 appended record, got %d", appended)
	}

	appended, err = s.AppendNew([]draw.Result{result}, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if appended != 0 {
		t.Errorf("Expected 0 appended records on repeat, got %d", appended)
	}

	records, err := s.Records()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected exactly 1 record, got %d", len(records))
	}

	r := records[0]
	if r.Date != "2024-09-17" || r.Game != "Pick 3" || r.Phase != "250917" || r.Result != "1-9-5" {
		t.Errorf("Unexpected record: %+v", r)
	}
	if r.InsertedAt != "2024-09-17T22:00:00+04:00" {
		t.Errorf("Expected InsertedAt '2024-09-17T22:00:00+04:00', got '%s'", r.InsertedAt)
	}
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	now := time.Now()

	s, err := OpenSQLiteStore(path, testLocation(t))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	result := draw.Result{Game: "Pick 4", Phase: "250917", DateISO: "2024-09-17", Numbers: "1-9-5-0"}
	if _, err := s.AppendNew([]draw.Result{result}, now); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	s.Close()

	// Reopen: migrations are a no-op, data and dedup state survive
	s, err = OpenSQLiteStore(path, testLocation(t))
	if err != nil {
		t.Fatalf("Expected no error on reopen, got: %v", err)
	}
	defer s.Close()

	keys, err := s.ExistingKeys()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if _, ok := keys[Key("Pick 4", "250917")]; !ok {
		t.Error("Expected identity key to survive reopen")
	}

	appended, err := s.AppendNew([]draw.Result{result}, now)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if appended != 0 {
		t.Errorf("Expected 0 appended records after reopen, got %d", appended)
	}
}

func TestSQLiteStore_EmptyAppendIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")

	s, err := OpenSQLiteStore(path, testLocation(t))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	defer s.Close()

	appended, err := s.AppendNew(nil, time.Now())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if appended != 0 {
		t.Errorf("Expected 0 appended records, got %d", appended)
	}
}
