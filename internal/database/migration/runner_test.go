package migration

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoad_EmbeddedMigrations(t *testing.T) {
	migs, err := Load(embedded, "sql")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) == 0 {
		t.Fatalf("expected embedded migrations")
	}
	if migs[0].Version != 1 || migs[0].Name != "create_resume_analyses" {
		t.Fatalf("unexpected first migration: %+v", migs[0])
	}
	if !strings.Contains(migs[0].SQL, "resume_analyses") {
		t.Fatalf("expected resume_analyses DDL")
	}
	if len(migs[0].Checksum) != 64 {
		t.Fatalf("expected sha256 hex checksum, got %q", migs[0].Checksum)
	}
}

func TestLoad_OrdersAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"m/V10__later.sql":  {Data: []byte("SELECT 10;")},
		"m/V2__second.sql":  {Data: []byte("SELECT 2;")},
		"m/README.md":       {Data: []byte("ignored")},
		"m/V3_bad_name.sql": {Data: []byte("SELECT 3;")},
	}

	migs, err := Load(fsys, "m")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 2 || migs[1].Version != 10 {
		t.Fatalf("unexpected order: %d, %d", migs[0].Version, migs[1].Version)
	}
}

func TestLoad_RejectsDuplicatesAndEmpty(t *testing.T) {
	dup := fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 1;")},
	}
	if _, err := Load(dup, "."); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	empty := fstest.MapFS{"V1__a.sql": {Data: []byte("   \n")}}
	if _, err := Load(empty, "."); err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("expected empty error, got %v", err)
	}
}

func TestLoad_MissingDirIsEmpty(t *testing.T) {
	migs, err := Load(fstest.MapFS{}, "nope")
	if err != nil || len(migs) != 0 {
		t.Fatalf("expected no migrations, got %v, %v", migs, err)
	}
}

func TestRun_NilDB(t *testing.T) {
	if err := NewRunner(nil).Run(context.Background(), nil); !errors.Is(err, errNilDB) {
		t.Fatalf("expected errNilDB, got %v", err)
	}
}
