package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"resume-coach/internal/database"
	"resume-coach/internal/domain/resume"

	"github.com/google/uuid"
)

type fakeDB struct {
	execQuery string
	execArgs  []any
	execErr   error

	queryQuery string
	queryArgs  []any
	rows       *fakeRows
	queryErr   error
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close() error               { return nil }
func (f *fakeDB) SQLDB() *sql.DB             { return nil }

func (f *fakeDB) Exec(_ context.Context, q string, args ...any) (int64, error) {
	f.execQuery = q
	f.execArgs = args
	return 1, f.execErr
}

func (f *fakeDB) Query(_ context.Context, q string, args ...any) (database.Rows, error) {
	f.queryQuery = q
	f.queryArgs = args
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.rows, nil
}


type fakeRows struct {
	data   [][]any
	i      int
	closed bool
}

func (r *fakeRows) Close()     { r.closed = true }
func (r *fakeRows) Err() error { return nil }

func (r *fakeRows) Next() bool {
	if r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.i-1]
	for i, d := range dest {
		switch p := d.(type) {
		case *uuid.UUID:
			*p = row[i].(uuid.UUID)
		case *string:
			*p = row[i].(string)
		case *int:
			*p = row[i].(int)
		case *[]byte:
			*p = row[i].([]byte)
		case *bool:
			*p = row[i].(bool)
		case *time.Time:
			*p = row[i].(time.Time)
		default:
			return errors.New("unexpected scan target")
		}
	}
	return nil
}

func TestSave_WritesRecord(t *testing.T) {
	db := &fakeDB{}
	repo := NewPostgresAnalysisRepository(db)
	id := uuid.New()

	err := repo.Save(context.Background(), resume.Record{
		ID:       id.String(),
		UserID:   "user-1",
		FileName: "cv.pdf",
		Score:    72,
		Analysis: resume.Analysis{Score: 72, Strengths: []string{"clear layout"}},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(db.execQuery, "INSERT INTO resume_analyses") {
		t.Fatalf("unexpected query: %s", db.execQuery)
	}
	if len(db.execArgs) != 8 {
		t.Fatalf("expected 8 args, got %d", len(db.execArgs))
	}
	if db.execArgs[0].(uuid.UUID) != id {
		t.Fatalf("expected id %s, got %v", id, db.execArgs[0])
	}

	var a resume.Analysis
	if err := json.Unmarshal(db.execArgs[5].([]byte), &a); err != nil {
		t.Fatalf("analysis payload: %v", err)
	}
	if a.Score != 72 || len(a.Strengths) != 1 {
		t.Fatalf("unexpected payload: %+v", a)
	}
	if db.execArgs[7].(time.Time).IsZero() {
		t.Fatalf("expected created_at to be set")
	}
}

func TestSave_RejectsBadID(t *testing.T) {
	repo := NewPostgresAnalysisRepository(&fakeDB{})
	if err := repo.Save(context.Background(), resume.Record{ID: "nope"}); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestListByUser_DecodesRows(t *testing.T) {
	id := uuid.New()
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	payload, _ := json.Marshal(resume.Analysis{Score: 140})

	rows := &fakeRows{data: [][]any{
		{id, "user-1", "cv.docx", "resumes/x/cv.docx", 100, payload, false, created},
	}}
	db := &fakeDB{rows: rows}
	repo := NewPostgresAnalysisRepository(db)

	got, err := repo.ListByUser(context.Background(), "user-1", 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	rec := got[0]
	if rec.ID != id.String() || rec.FileName != "cv.docx" || !rec.CreatedAt.Equal(created) {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Analysis.Score != 100 {
		t.Fatalf("expected clamped score 100, got %d", rec.Analysis.Score)
	}
	if rec.Analysis.Strengths == nil {
		t.Fatalf("expected normalized slices")
	}
	if db.queryArgs[1].(int) != defaultHistoryLimit {
		t.Fatalf("expected default limit, got %v", db.queryArgs[1])
	}
	if !rows.closed {
		t.Fatalf("expected rows to be closed")
	}
}

func TestListByUser_CapsLimit(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{}}
	repo := NewPostgresAnalysisRepository(db)

	got, err := repo.ListByUser(context.Background(), "u", 5000)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
	if db.queryArgs[1].(int) != maxHistoryLimit {
		t.Fatalf("expected limit %d, got %v", maxHistoryLimit, db.queryArgs[1])
	}
}

func TestListByUser_QueryError(t *testing.T) {
	boom := errors.New("boom")
	repo := NewPostgresAnalysisRepository(&fakeDB{queryErr: boom})
	if _, err := repo.ListByUser(context.Background(), "u", 1); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
