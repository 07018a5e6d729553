package subjects

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avelkins/studyplanner/internal/common"
	"github.com/avelkins/studyplanner/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var subjectCols = []string{"id", "name", "color", "user_id", "created_at"}

func TestListByUser_ReturnsOwned(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+id,\s*name,\s*color,\s*user_id,\s*created_at\s+FROM\s+subjects\s+WHERE\s+user_id\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows(subjectCols).
		AddRow("s-1", "Math", "blue", "u-1", time.Now()).
		AddRow("s-2", "History", "red", "u-1", time.Now())
	mock.ExpectQuery(q).WithArgs("u-1").WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Math" || got[1].Name != "History" {
		t.Fatalf("unexpected subjects: %+v", got)
	}
}

func TestListByUser_EmptyIsNotError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,.*FROM\s+subjects\s+WHERE\s+user_id`).
		WithArgs("u-2").
		WillReturnRows(sqlmock.NewRows(subjectCols))

	got, err := repo.ListByUser(context.Background(), "u-2")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(subjectCols).
		AddRow("s-1", "Math", "blue", "u-1", time.Now())
	mock.ExpectQuery(`SELECT\s+id,.*FROM\s+subjects\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("s-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "s-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.UserID != "u-1" || got.Color != "blue" {
		t.Fatalf("unexpected subject: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,.*FROM\s+subjects\s+WHERE\s+id`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+subjects\s*\(name,\s*color,\s*user_id\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at\s*$`

	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow("s-1", time.Now())
	mock.ExpectQuery(q).WithArgs("Math", "blue", "u-1").WillReturnRows(rows)

	s := &models.Subject{Name: "Math", Color: "blue", UserID: "u-1"}
	got, err := repo.Create(context.Background(), s)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "s-1" {
		t.Fatalf("unexpected subject: %+v", got)
	}
}

func TestUpdate_ScopedToOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*UPDATE\s+subjects\s+SET\s+name\s*=\s*\$1,\s*color\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$3\s+AND\s+user_id\s*=\s*\$4\s+RETURNING\s+`

	rows := sqlmock.NewRows(subjectCols).
		AddRow("s-1", "Maths", "green", "u-1", time.Now())
	mock.ExpectQuery(q).
		WithArgs("Maths", "green", "s-1", "u-1").
		WillReturnRows(rows)

	got, err := repo.Update(context.Background(), &models.Subject{
		ID: "s-1", Name: "Maths", Color: "green", UserID: "u-1",
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Name != "Maths" || got.Color != "green" {
		t.Fatalf("unexpected subject: %+v", got)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+subjects\s+SET`).
		WithArgs("Maths", "green", "missing", "u-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), &models.Subject{
		ID: "missing", Name: "Maths", Color: "green", UserID: "u-1",
	})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_ReportsAffected(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*DELETE\s+FROM\s+subjects\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`

	mock.ExpectExec(q).WithArgs("s-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.Delete(context.Background(), "s-1", "u-1")
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row deleted, got %d", n)
	}
}

func TestDelete_ZeroRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+subjects`).WithArgs("missing", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.Delete(context.Background(), "missing", "u-1")
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows deleted, got %d", n)
	}
}

func TestDelete_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+subjects`).WithArgs("s-1", "u-1").
		WillReturnError(errors.New("db down"))

	_, err := repo.Delete(context.Background(), "s-1", "u-1")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
