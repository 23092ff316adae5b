package storage

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/guttosm/mpdash/internal/domain/models"
)

type dummyErr struct{}

func (dummyErr) Error() string { return "dummy" }

func newMockRepo(t *testing.T) (*recordsRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &recordsRepository{db: db, batch: DefaultCopyBatch}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

var ordersKey = models.SyncKey{Resource: models.Orders, DateFrom: "2024-01-01", DateTo: "2024-01-31", Page: 1, Limit: 50}

func TestNewRecordsRepository_Construct(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()
	if r := NewRecordsRepository(db); r == nil {
		t.Fatalf("expected non-nil repository")
	}
}

var ordersArgs = []driver.Value{"orders", "2024-01-01", "2024-01-31", 1, 50}

func TestHasSync_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(`SELECT EXISTS\(\s*SELECT 1 FROM sync_log`).
		WithArgs(ordersArgs...).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	ok, err := repo.HasSync(context.Background(), ordersKey)
	if err != nil || !ok {
		t.Fatalf("HasSync: ok=%v err=%v", ok, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHasSync_QueryError(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(`SELECT EXISTS`).WillReturnError(dummyErr{})
	if _, err := repo.HasSync(context.Background(), ordersKey); err == nil {
		t.Fatalf("expected error")
	}
}

func TestListSyncLog_SQLMock(t *testing.T) {
	syncedAt := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		resource models.Resource
		limit    int
		args     []driver.Value
	}{
		{name: "all resources default limit", resource: "", limit: 0, args: []driver.Value{50}},
		{name: "one resource", resource: models.Stocks, limit: 5, args: []driver.Value{5, "stocks"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()

			rows := sqlmock.NewRows([]string{"resource", "date_from", "date_to", "page", "page_limit", "row_count", "synced_at"}).
				AddRow("stocks", "2024-02-01", "", 1, 50, 7, syncedAt)
			mock.ExpectQuery(`SELECT resource, date_from, date_to, page, page_limit, row_count, synced_at\s+FROM sync_log`).
				WithArgs(tc.args...).
				WillReturnRows(rows)

			out, err := repo.ListSyncLog(context.Background(), tc.resource, tc.limit)
			if err != nil {
				t.Fatalf("ListSyncLog: %v", err)
			}
			if len(out) != 1 || out[0].Resource != models.Stocks || out[0].RowCount != 7 || !out[0].SyncedAt.Equal(syncedAt) {
				t.Fatalf("unexpected entries: %+v", out)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func pageRecords(n int) []models.Record {
	out := make([]models.Record, n)
	for i := range out {
		out[i] = models.Record{
			Key:       ordersKey,
			Position:  i,
			Payload:   []byte(`{"id":1}`),
			FetchedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		}
	}
	return out
}

// expectLocked expects the transaction start, the page lock and the sync log
// re-check answering exists.
func expectLocked(mock sqlmock.Sqlmock, exists bool) {
	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtext\(\$1\)\)`).
		WithArgs("orders|2024-01-01|2024-01-31|1|50").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS\(\s*SELECT 1 FROM sync_log`).
		WithArgs(ordersArgs...).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(exists))
}

// expectCopy expects one COPY statement carrying rows rows. pq.CopyIn is
// driver specific; sqlmock sees it as a prepared statement executed once per
// row plus a final flush.
func expectCopy(mock sqlmock.Sqlmock, rows int) {
	prep := mock.ExpectPrepare(`COPY "marketplace_records"`)
	for i := 0; i < rows; i++ {
		prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectExec(`COPY "marketplace_records"`).WillReturnResult(sqlmock.NewResult(0, 0))
}

func expectLogUpsert(mock sqlmock.Sqlmock, rows int) *sqlmock.ExpectedExec {
	return mock.ExpectExec(`INSERT INTO sync_log .* ON CONFLICT \(resource, date_from, date_to, page, page_limit\)`).
		WithArgs(append(append([]driver.Value{}, ordersArgs...), rows)...)
}

func TestArchivePage_NewPage(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	expectLocked(mock, false)
	expectCopy(mock, 2)
	expectLogUpsert(mock, 2).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	written, err := repo.ArchivePage(context.Background(), ordersKey, pageRecords(2), false)
	if err != nil || !written {
		t.Fatalf("ArchivePage: written=%v err=%v", written, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestArchivePage_EmptyPageStillLogged(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	expectLocked(mock, false)
	expectLogUpsert(mock, 0).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	written, err := repo.ArchivePage(context.Background(), ordersKey, nil, false)
	if err != nil || !written {
		t.Fatalf("ArchivePage: written=%v err=%v", written, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestArchivePage_ArchivedByAnotherWriter(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	// the page got logged between the caller's HasSync and the lock
	expectLocked(mock, true)
	mock.ExpectRollback()

	written, err := repo.ArchivePage(context.Background(), ordersKey, pageRecords(3), false)
	if err != nil || written {
		t.Fatalf("ArchivePage: written=%v err=%v", written, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestArchivePage_ReplaceDeletesInsideTransaction(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	expectLocked(mock, true)
	mock.ExpectExec(`DELETE FROM marketplace_records`).
		WithArgs(ordersArgs...).
		WillReturnResult(sqlmock.NewResult(0, 12))
	expectCopy(mock, 1)
	expectLogUpsert(mock, 1).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	written, err := repo.ArchivePage(context.Background(), ordersKey, pageRecords(1), true)
	if err != nil || !written {
		t.Fatalf("ArchivePage: written=%v err=%v", written, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestArchivePage_CopiesInBatches(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()
	repo.batch = 2

	expectLocked(mock, false)
	expectCopy(mock, 2)
	expectCopy(mock, 2)
	expectCopy(mock, 1)
	expectLogUpsert(mock, 5).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if _, err := repo.ArchivePage(context.Background(), ordersKey, pageRecords(5), false); err != nil {
		t.Fatalf("ArchivePage: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestArchivePage_ErrorsRollBack(t *testing.T) {
	cases := []struct {
		name    string
		replace bool
		setup   func(mock sqlmock.Sqlmock)
	}{
		{
			name: "begin",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(dummyErr{})
			},
		},
		{
			name: "lock",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`SELECT pg_advisory_xact_lock`).WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
		{
			name:    "delete",
			replace: true,
			setup: func(mock sqlmock.Sqlmock) {
				expectLocked(mock, true)
				mock.ExpectExec(`DELETE FROM marketplace_records`).WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
		{
			name:    "row copy after delete",
			replace: true,
			setup: func(mock sqlmock.Sqlmock) {
				expectLocked(mock, true)
				mock.ExpectExec(`DELETE FROM marketplace_records`).WillReturnResult(sqlmock.NewResult(0, 4))
				mock.ExpectPrepare(`COPY "marketplace_records"`).ExpectExec().WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
		{
			name: "final flush",
			setup: func(mock sqlmock.Sqlmock) {
				expectLocked(mock, false)
				mock.ExpectPrepare(`COPY "marketplace_records"`).ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`COPY "marketplace_records"`).WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
		{
			name: "log upsert",
			setup: func(mock sqlmock.Sqlmock) {
				expectLocked(mock, false)
				expectCopy(mock, 1)
				expectLogUpsert(mock, 1).WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
		{
			name: "commit",
			setup: func(mock sqlmock.Sqlmock) {
				expectLocked(mock, false)
				expectCopy(mock, 1)
				expectLogUpsert(mock, 1).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit().WillReturnError(dummyErr{})
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()
			tc.setup(mock)

			written, err := repo.ArchivePage(context.Background(), ordersKey, pageRecords(1), tc.replace)
			if err == nil || written {
				t.Fatalf("expected failure, got written=%v err=%v", written, err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}
