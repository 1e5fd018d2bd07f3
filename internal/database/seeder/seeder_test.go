package seeder

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"job-portal/internal/database"

	"github.com/google/uuid"
)

type fakeRows struct {
	values []string
	i      int
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Err() error { return nil }
func (r *fakeRows) Next() bool {
	r.i++
	return r.i <= len(r.values)
}
func (r *fakeRows) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.values[r.i-1]
	return nil
}

type fakeRow struct {
	value any
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	switch d := dest[0].(type) {
	case *uuid.UUID:
		*d = r.value.(uuid.UUID)
	case *int:
		*d = r.value.(int)
	}
	return nil
}

type fakeTx struct {
	db *fakeDB
}

func (t *fakeTx) Exec(_ context.Context, query string, _ ...any) (int64, error) {
	t.db.execs = append(t.db.execs, query)
	return 1, nil
}

func (t *fakeTx) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errors.New("unexpected query")
}

func (t *fakeTx) QueryRow(_ context.Context, query string, _ ...any) database.Row {
	switch {
	case strings.Contains(query, "FROM users"):
		return fakeRow{value: t.db.userID}
	case strings.Contains(query, "FROM companies"):
		return fakeRow{value: t.db.companyID}
	case strings.Contains(query, "COUNT(1) FROM jobs"):
		return fakeRow{value: t.db.jobCount}
	}
	return fakeRow{err: sql.ErrNoRows}
}

func (t *fakeTx) Commit(context.Context) error {
	t.db.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error { return nil }

type fakeDB struct {
	columns map[string][]string

	userID    uuid.UUID
	companyID uuid.UUID
	jobCount  int

	execs     []string
	committed bool
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		columns: map[string][]string{
			"users": {"id", "fullname", "email", "phone_number", "password_hash", "role", "bio"},
			"companies": {"id", "name", "description", "website", "location", "logo_url", "user_id"},
			"jobs": {"id", "title", "description", "requirements", "salary", "location", "job_type",
				"experience_level", "position", "company_id", "created_by"},
		},
		userID:    uuid.New(),
		companyID: uuid.New(),
	}
}

func (d *fakeDB) Ping(context.Context) error { return nil }
func (d *fakeDB) Close() error               { return nil }
func (d *fakeDB) SQLDB() *sql.DB             { return nil }

func (d *fakeDB) Exec(context.Context, string, ...any) (int64, error) { return 0, nil }

func (d *fakeDB) Query(_ context.Context, _ string, args ...any) (database.Rows, error) {
	return &fakeRows{values: d.columns[args[0].(string)]}, nil
}

func (d *fakeDB) QueryRow(context.Context, string, ...any) database.Row {
	return fakeRow{err: sql.ErrNoRows}
}

func (d *fakeDB) Begin(context.Context) (database.Tx, error) {
	return &fakeTx{db: d}, nil
}

func TestEnsureTableColumns(t *testing.T) {
	db := newFakeDB()
	ctx := context.Background()

	if err := EnsureTableColumns(ctx, db, "users", "id", "email"); err != nil {
		t.Fatalf("expected columns present, got %v", err)
	}

	err := EnsureTableColumns(ctx, db, "users", "id", "nickname")
	if err == nil || !strings.Contains(err.Error(), "users.nickname") {
		t.Fatalf("expected schema mismatch, got %v", err)
	}

	if err := EnsureTableColumns(ctx, db, "", "id"); err == nil {
		t.Fatalf("expected error for empty table")
	}
}

func TestRunnerRejectsNilDB(t *testing.T) {
	if err := (Runner{Seeders: Defaults()}).Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil db")
	}
}

func TestDemoSeederInsertsJobsOnce(t *testing.T) {
	db := newFakeDB()
	if err := (Runner{Seeders: Defaults()}).Run(context.Background(), db); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !db.committed {
		t.Fatalf("expected commit")
	}
	// user + company + one insert per job
	if want := 2 + len(demoJobs); len(db.execs) != want {
		t.Fatalf("expected %d inserts, got %d", want, len(db.execs))
	}

	db.execs = nil
	db.jobCount = len(demoJobs)
	if err := (DemoSeeder{}).Run(context.Background(), db); err != nil {
		t.Fatalf("rerun: %v", err)
	}
	if len(db.execs) != 2 {
		t.Fatalf("expected only idempotent upserts on rerun, got %d", len(db.execs))
	}
}

func TestDemoSeederFailsOnSchemaMismatch(t *testing.T) {
	db := newFakeDB()
	db.columns["jobs"] = []string{"id", "title"}

	err := (DemoSeeder{}).Run(context.Background(), db)
	if err == nil || !strings.Contains(err.Error(), "schema mismatch") {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
	if len(db.execs) != 0 {
		t.Fatalf("expected no writes, got %d", len(db.execs))
	}
}
