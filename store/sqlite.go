package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Yulian302/lfusys-services-requests/apperror"
	"github.com/Yulian302/lfusys-services-requests/models"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS requests (
    id TEXT PRIMARY KEY,
    author TEXT NOT NULL,
    created INTEGER NOT NULL,
    modified INTEGER NOT NULL,
    processing INTEGER NOT NULL DEFAULT 0,
    files TEXT NOT NULL,
    version INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_requests_expiry ON requests(processing, modified);
`

const requestColumns = "id, author, created, modified, processing, files, version"

type txKey struct{}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteRequestStoreImpl keeps Requests in a local SQLite database. Writers
// are serialised by IMMEDIATE transactions.
type SQLiteRequestStoreImpl struct {
	db *sql.DB
}

// NewSQLiteRequestStoreImpl opens (or creates) the database at path and runs
// the schema migration.
func NewSQLiteRequestStoreImpl(path string) (*SQLiteRequestStoreImpl, error) {
	dsn := "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLiteRequestStoreImpl{db: db}, nil
}

func (s *SQLiteRequestStoreImpl) Shutdown(ctx context.Context) error {
	return s.db.Close()
}

func (s *SQLiteRequestStoreImpl) IsReady(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteRequestStoreImpl) Name() string {
	return "RequestStore[sqlite]"
}

func (s *SQLiteRequestStoreImpl) GenerateID() string {
	return uuid.NewString()
}

func (s *SQLiteRequestStoreImpl) q(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return s.db
}

func (s *SQLiteRequestStoreImpl) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}

func (s *SQLiteRequestStoreImpl) Get(ctx context.Context, id string) (*models.Request, error) {
	row := s.q(ctx).QueryRowContext(ctx, "SELECT "+requestColumns+" FROM requests WHERE id = ?", id)

	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrRequestDoesNotExist.WithContext("requestId", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get request %s: %w", id, err)
	}
	return req, nil
}

func (s *SQLiteRequestStoreImpl) Insert(ctx context.Context, req models.Request) error {
	files, err := json.Marshal(req.Files)
	if err != nil {
		return fmt.Errorf("marshal files: %w", err)
	}

	_, err = s.q(ctx).ExecContext(ctx,
		"INSERT INTO requests ("+requestColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		req.ID, req.Author, req.Created.UnixNano(), req.Modified.UnixNano(), req.Processing, string(files), req.Version,
	)
	if err != nil {
		return fmt.Errorf("insert request %s: %w", req.ID, err)
	}
	return nil
}

func (s *SQLiteRequestStoreImpl) Update(ctx context.Context, req models.Request) error {
	files, err := json.Marshal(req.Files)
	if err != nil {
		return fmt.Errorf("marshal files: %w", err)
	}

	res, err := s.q(ctx).ExecContext(ctx, `
UPDATE requests
SET author = ?, modified = ?, processing = ?, files = ?, version = ?
WHERE id = ? AND version = ?`,
		req.Author, req.Modified.UnixNano(), req.Processing, string(files), req.Version,
		req.ID, req.Version-1,
	)
	if err != nil {
		return fmt.Errorf("update request %s: %w", req.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update request %s: %w", req.ID, err)
	}
	if n == 1 {
		return nil
	}

	if _, err := s.Get(ctx, req.ID); err != nil {
		return err
	}
	return ErrVersionConflict
}

func (s *SQLiteRequestStoreImpl) Delete(ctx context.Context, id string) error {
	res, err := s.q(ctx).ExecContext(ctx, "DELETE FROM requests WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete request %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete request %s: %w", id, err)
	}
	if n != 1 {
		return apperror.ErrRequestDoesNotExist.WithContext("requestId", id)
	}
	return nil
}

func (s *SQLiteRequestStoreImpl) DeleteExpired(ctx context.Context, cutoff time.Time) ([]models.Request, error) {
	var deleted []models.Request

	err := s.WithTransaction(ctx, func(ctx context.Context) error {
		rows, err := s.q(ctx).QueryContext(ctx,
			"DELETE FROM requests WHERE processing = 0 AND modified < ? RETURNING "+requestColumns,
			cutoff.UnixNano(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			req, err := scanRequest(rows)
			if err != nil {
				return err
			}
			deleted = append(deleted, *req)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("delete expired requests: %w", err)
	}

	return deleted, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(sc scanner) (*models.Request, error) {
	var (
		req      models.Request
		created  int64
		modified int64
		files    string
	)
	if err := sc.Scan(&req.ID, &req.Author, &created, &modified, &req.Processing, &files, &req.Version); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(files), &req.Files); err != nil {
		return nil, fmt.Errorf("decode files of request %s: %w", req.ID, err)
	}
	req.Created = time.Unix(0, created).UTC()
	req.Modified = time.Unix(0, modified).UTC()
	return &req, nil
}
