package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	pq "github.com/lib/pq"

	"github.com/guttosm/mpdash/internal/domain/models"
)

// DefaultCopyBatch is how many rows go into one COPY statement.
const DefaultCopyBatch = 5000

// RecordsRepository defines contract for archive DB operations.
type RecordsRepository interface {
	HasSync(ctx context.Context, key models.SyncKey) (bool, error)
	ArchivePage(ctx context.Context, key models.SyncKey, records []models.Record, replace bool) (bool, error)
	ListSyncLog(ctx context.Context, resource models.Resource, limit int) ([]models.SyncEntry, error)
}

type recordsRepository struct {
	db    *sql.DB
	batch int
}

func NewRecordsRepository(db *sql.DB) RecordsRepository {
	return &recordsRepository{db: db, batch: DefaultCopyBatch}
}

const hasSyncQuery = `
		SELECT EXISTS(
			SELECT 1 FROM sync_log
			WHERE resource = $1 AND date_from = $2 AND date_to = $3 AND page = $4 AND page_limit = $5
		)`

// HasSync reports whether the page identified by key was already archived.
func (r *recordsRepository) HasSync(ctx context.Context, key models.SyncKey) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, hasSyncQuery, keyArgs(key)...).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// ArchivePage stores the records of one fetched page and its sync log entry
// in a single transaction.
//
// Writers of the same key are serialized by a transaction-scoped advisory
// lock, and the sync log is re-checked under it:
//   - page not archived yet: records are copied and the log entry inserted;
//   - page archived and replace=false: nothing is written, it returns false;
//   - page archived and replace=true: the old rows are deleted and replaced.
//
// On any error the transaction is rolled back and the archive is unchanged.
func (r *recordsRepository) ArchivePage(ctx context.Context, key models.SyncKey, records []models.Record, replace bool) (written bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil || !written {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key.String()); err != nil {
		return false, fmt.Errorf("lock page: %w", err)
	}

	var exists bool
	if err = tx.QueryRowContext(ctx, hasSyncQuery, keyArgs(key)...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check sync log: %w", err)
	}
	if exists && !replace {
		return false, nil
	}

	if exists {
		if _, err = tx.ExecContext(ctx, `
		DELETE FROM marketplace_records
		WHERE resource = $1 AND date_from = $2 AND date_to = $3 AND page = $4 AND page_limit = $5`,
			keyArgs(key)...,
		); err != nil {
			return false, fmt.Errorf("delete existing: %w", err)
		}
	}

	if err = r.copyRecords(ctx, tx, records); err != nil {
		return false, err
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO sync_log (resource, date_from, date_to, page, page_limit, row_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (resource, date_from, date_to, page, page_limit)
		DO UPDATE SET row_count = EXCLUDED.row_count,
					  synced_at = NOW()
	`, append(keyArgs(key), len(records))...); err != nil {
		return false, fmt.Errorf("upsert sync log: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}

// copyRecords streams records into marketplace_records, one COPY per batch.
func (r *recordsRepository) copyRecords(ctx context.Context, tx *sql.Tx, records []models.Record) error {
	batch := r.batch
	if batch <= 0 {
		batch = DefaultCopyBatch
	}
	for start := 0; start < len(records); start += batch {
		end := start + batch
		if end > len(records) {
			end = len(records)
		}
		if err := copyBatch(ctx, tx, records[start:end]); err != nil {
			return fmt.Errorf("copy batch ending row %d: %w", end, err)
		}
	}
	return nil
}

func copyBatch(ctx context.Context, tx *sql.Tx, records []models.Record) error {
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(
		"marketplace_records",
		"resource",
		"date_from",
		"date_to",
		"page",
		"page_limit",
		"position",
		"payload",
		"fetched_at",
	))
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range records {
		fetchedAt := rec.FetchedAt
		if fetchedAt.IsZero() {
			fetchedAt = time.Now().UTC()
		}
		if _, err := stmt.ExecContext(ctx,
			string(rec.Key.Resource),
			rec.Key.DateFrom,
			rec.Key.DateTo,
			rec.Key.Page,
			rec.Key.Limit,
			rec.Position,
			string(rec.Payload),
			fetchedAt,
		); err != nil {
			return err
		}
	}

	_, err = stmt.ExecContext(ctx)
	return err
}

func keyArgs(key models.SyncKey) []interface{} {
	return []interface{}{string(key.Resource), key.DateFrom, key.DateTo, key.Page, key.Limit}
}

// ListSyncLog returns the most recent sync log entries, newest first.
// An empty resource lists every resource.
func (r *recordsRepository) ListSyncLog(ctx context.Context, resource models.Resource, limit int) ([]models.SyncEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	conditions := ""
	args := []interface{}{limit}
	if resource != "" {
		conditions = fmt.Sprintf("WHERE resource = $%d", len(args)+1)
		args = append(args, string(resource))
	}

	query := fmt.Sprintf(`
		SELECT resource, date_from, date_to, page, page_limit, row_count, synced_at
		FROM sync_log
		%s
		ORDER BY synced_at DESC
		LIMIT $1`, conditions)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.SyncEntry{}
	for rows.Next() {
		var e models.SyncEntry
		var res string
		if err := rows.Scan(&res, &e.DateFrom, &e.DateTo, &e.Page, &e.Limit, &e.RowCount, &e.SyncedAt); err != nil {
			return nil, err
		}
		e.Resource = models.Resource(res)
		out = append(out, e)
	}
	return out, rows.Err()
}
