package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	p := CandidateProfile{
		UserID: "user-1",
		Skills: []Skill{{Name: "python", Proficiency: TierAdvanced}},
	}
	if err := store.Put(ctx, p); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Skills) != 1 || got.Skills[0].Name != "python" {
		t.Fatalf("unexpected profile: %+v", got)
	}

	// Mutating the returned copy must not affect the stored profile.
	got.Skills[0].Proficiency = TierBeginner
	again, err := store.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if again.Skills[0].Proficiency != TierAdvanced {
		t.Fatal("stored profile was mutated through a returned copy")
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGStoreGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	rows := sqlmock.NewRows([]string{"profile"}).
		AddRow([]byte(`{"skills":[{"name":"python","proficiencyTier":"Advanced"}]}`))
	mock.ExpectQuery("SELECT profile FROM candidate_profiles").
		WithArgs("user-1").
		WillReturnRows(rows)

	store := &PGStore{DB: db}
	p, err := store.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.UserID != "user-1" {
		t.Fatalf("expected userId to be filled from the key, got %q", p.UserID)
	}
	if len(p.Skills) != 1 || p.Skills[0].Proficiency != TierAdvanced {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestPGStoreGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT profile FROM candidate_profiles").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"profile"}))

	store := &PGStore{DB: db}
	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGStorePut(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("INSERT INTO candidate_profiles").
		WithArgs("user-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := &PGStore{DB: db}
	if err := store.Put(context.Background(), CandidateProfile{UserID: "user-1"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
