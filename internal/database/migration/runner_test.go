package migration

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"job-portal/migrations"
)

func TestLoad_OrdersAndFilters(t *testing.T) {
	src := fstest.MapFS{
		"V10__add_index.sql": {Data: []byte("CREATE INDEX x ON jobs(title);")},
		"V2__seed.sql":       {Data: []byte("  SELECT 1;  ")},
		"README.md":          {Data: []byte("not a migration")},
		"V3_bad_name.sql":    {Data: []byte("SELECT 1;")},
	}

	migs, err := Load(src)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 2 || migs[1].Version != 10 {
		t.Fatalf("unexpected order: %d, %d", migs[0].Version, migs[1].Version)
	}
	if migs[0].SQL != "SELECT 1;" {
		t.Fatalf("expected trimmed sql, got %q", migs[0].SQL)
	}
	if migs[0].Name != "seed" || len(migs[0].Checksum) != 64 {
		t.Fatalf("unexpected migration meta: %+v", migs[0])
	}
}

func TestLoad_DuplicateVersion(t *testing.T) {
	src := fstest.MapFS{
		"V1__a.sql": {Data: []byte("SELECT 1;")},
		"V1__b.sql": {Data: []byte("SELECT 2;")},
	}
	_, err := Load(src)
	if err == nil || !strings.Contains(err.Error(), "duplicate migration version") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	src := fstest.MapFS{"V1__empty.sql": {Data: []byte("   \n")}}
	if _, err := Load(src); err == nil {
		t.Fatalf("expected error for empty migration")
	}
}

func TestLoad_EmbeddedMigrations(t *testing.T) {
	migs, err := Load(migrations.FS)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) == 0 || migs[0].Version != 1 {
		t.Fatalf("expected embedded V1 migration, got %+v", migs)
	}
	if !strings.Contains(migs[0].SQL, "CREATE TABLE IF NOT EXISTS applications") {
		t.Fatalf("V1 should create the applications table")
	}
}

func TestRun_NilInputs(t *testing.T) {
	if _, err := (Runner{Source: fstest.MapFS{}}).Run(context.Background(), nil); err == nil {
		t.Fatalf("expected nil db error")
	}
}
