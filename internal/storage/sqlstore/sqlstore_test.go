package sqlstore

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/spigell/candidate-ranker/internal/model"
)

var queries = Queries{
	List:   "SELECT id, name, skills, years_of_experience, location, salary_expectation, resume_text FROM candidates ORDER BY seq",
	Upsert: "INSERT INTO candidates",
}

var columns = []string{"id", "name", "skills", "years_of_experience", "location", "salary_expectation", "resume_text"}

func newStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return &Store{DB: db, Queries: queries}, mock
}

func TestStoreList(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery("SELECT id, name, skills").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("1", "Ann", []byte(`["Go","SQL"]`), 4, "Remote", 120000.0, "resume").
			AddRow("2", "Bo", []byte(`[]`), 1, "Austin", nil, ""))

	got, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].ID != "1" || len(got[0].Skills) != 2 || got[0].SalaryExpectation == nil || *got[0].SalaryExpectation != 120000 {
		t.Fatalf("unexpected first candidate: %+v", got[0])
	}
	if got[1].SalaryExpectation != nil {
		t.Fatalf("expected no salary for second candidate, got %v", *got[1].SalaryExpectation)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestStoreListRejectsBrokenSkills(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery("SELECT id, name, skills").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("1", "Ann", []byte(`not json`), 4, "Remote", nil, ""))

	if _, err := store.List(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestStoreSave(t *testing.T) {
	store, mock := newStore(t)

	candidates := []model.Candidate{
		{ID: "1", Name: "Ann", Skills: []string{"Go"}, YearsOfExperience: 4, Location: "Remote", SalaryExpectation: model.Float(120000)},
		{ID: "2", Name: "Bo", YearsOfExperience: 1},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO candidates").
		WithArgs("1", "Ann", []byte(`["Go"]`), 4, "Remote", 120000.0, "").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO candidates").
		WithArgs("2", "Bo", []byte(`[]`), 1, "", nil, "").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	if err := store.Save(context.Background(), candidates); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestStoreSaveRollsBackOnError(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO candidates").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := store.Save(context.Background(), []model.Candidate{{ID: "1", Name: "Ann"}})
	if err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestStoreSaveRequiresIDs(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	if err := store.Save(context.Background(), []model.Candidate{{Name: "Nameless"}}); err == nil {
		t.Fatalf("expected error for missing id")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
