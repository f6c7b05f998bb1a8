package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"realty-content-engine/internal/content/repository"
	"realty-content-engine/internal/model"
	pkgLog "realty-content-engine/pkg/log"
)

const (
	schemaVersion = 1
	busyTimeoutMs = 3000

	// DefaultRetention is how many entries survive per content type.
	DefaultRetention = 5

	defaultListLimit   = 5
	defaultSearchLimit = 10
)

type implRepository struct {
	db        *sql.DB
	path      string
	retention int
	l         pkgLog.Logger
}

// New opens (or creates) the history database at path. WAL is enabled so
// list reads do not block appends.
func New(path string, retention int, l pkgLog.Logger) (repository.HistoryRepository, error) {
	p := filepath.Clean(strings.TrimSpace(path))
	if p == "" {
		return nil, errors.New("missing db path")
	}
	if dir := filepath.Dir(p); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, err
		}
	}
	if retention <= 0 {
		retention = DefaultRetention
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return &implRepository{
		db:        db,
		path:      p,
		retention: retention,
		l:         l,
	}, nil
}

func (r *implRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Append inserts the entry and evicts the oldest overflow of its content
// type in the same transaction, so readers never observe more than the
// retention cap.
func (r *implRepository) Append(ctx context.Context, entry model.HistoryEntry) (int64, error) {
	if entry.ContentType == "" {
		return 0, repository.ErrEmptyType
	}
	if strings.TrimSpace(entry.Content) == "" {
		return 0, repository.ErrEmptyContent
	}

	metadataJSON := ""
	if len(entry.Metadata) > 0 {
		b, err := json.Marshal(entry.Metadata)
		if err != nil {
			return 0, fmt.Errorf("encode metadata: %w", err)
		}
		metadataJSON = string(b)
	}

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
INSERT INTO content_history(
  session_id, content_type, content, prompt, metadata, created_at_unix_ms
) VALUES(?, ?, ?, ?, ?, ?)
`,
		entry.SessionID,
		string(entry.ContentType),
		entry.Content,
		entry.Prompt,
		metadataJSON,
		createdAt.UnixMilli(),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `
DELETE FROM content_history
WHERE content_type = ? AND id NOT IN (
  SELECT id FROM content_history
  WHERE content_type = ?
  ORDER BY created_at_unix_ms DESC, id DESC
  LIMIT ?
)
`, string(entry.ContentType), string(entry.ContentType), r.retention); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	r.l.Debugf(ctx, "sqlite history: appended %s entry %d", entry.ContentType, id)
	return id, nil
}

func (r *implRepository) List(ctx context.Context, opt repository.ListOptions) ([]model.HistoryEntry, error) {
	limit := opt.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	where := ""
	args := []any{}
	if opt.ContentType != "" {
		where += " AND content_type = ?"
		args = append(args, string(opt.ContentType))
	}
	if opt.SessionID != "" {
		where += " AND session_id = ?"
		args = append(args, opt.SessionID)
	}
	args = append(args, limit)

	q := fmt.Sprintf(`
SELECT id, session_id, content_type, content, prompt, metadata, created_at_unix_ms
FROM content_history
WHERE 1=1%s
ORDER BY created_at_unix_ms DESC, id DESC
LIMIT ?
`, where)

	return r.queryEntries(ctx, q, args...)
}

func (r *implRepository) GetByID(ctx context.Context, id int64) (model.HistoryEntry, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, session_id, content_type, content, prompt, metadata, created_at_unix_ms
FROM content_history
WHERE id = ?
`, id)

	entry, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.HistoryEntry{}, repository.ErrEntryNotFound
	}
	if err != nil {
		return model.HistoryEntry{}, err
	}
	return entry, nil
}

func (r *implRepository) Search(ctx context.Context, opt repository.SearchOptions) ([]model.HistoryEntry, error) {
	limit := opt.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	where := ""
	args := []any{"%" + opt.Term + "%"}
	if opt.ContentType != "" {
		where = " AND content_type = ?"
		args = append(args, string(opt.ContentType))
	}
	args = append(args, limit)

	q := fmt.Sprintf(`
SELECT id, session_id, content_type, content, prompt, metadata, created_at_unix_ms
FROM content_history
WHERE content LIKE ?%s
ORDER BY created_at_unix_ms DESC, id DESC
LIMIT ?
`, where)

	return r.queryEntries(ctx, q, args...)
}

func (r *implRepository) Types(ctx context.Context) ([]model.ContentType, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT DISTINCT content_type FROM content_history ORDER BY content_type
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ContentType{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, model.ContentType(t))
	}
	return out, rows.Err()
}

func (r *implRepository) Count(ctx context.Context, contentType model.ContentType) (int, error) {
	var (
		count int
		err   error
	)
	if contentType != "" {
		err = r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM content_history WHERE content_type = ?
`, string(contentType)).Scan(&count)
	} else {
		err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM content_history`).Scan(&count)
	}
	return count, err
}

func (r *implRepository) Delete(ctx context.Context, contentType model.ContentType, id int64) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM content_history WHERE content_type = ? AND id = ?
`, string(contentType), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrEntryNotFound
	}
	return nil
}

func (r *implRepository) Clear(ctx context.Context, contentType model.ContentType) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM content_history WHERE content_type = ?
`, string(contentType))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *implRepository) ClearAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM content_history`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *implRepository) Stats(ctx context.Context) (model.HistoryStats, error) {
	stats := model.HistoryStats{
		ItemsByType:     map[model.ContentType]int{},
		MaxItemsPerType: r.retention,
	}

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM content_history`).Scan(&stats.TotalItems); err != nil {
		return model.HistoryStats{}, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT content_type, COUNT(*) FROM content_history GROUP BY content_type
`)
	if err != nil {
		return model.HistoryStats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			t string
			n int
		)
		if err := rows.Scan(&t, &n); err != nil {
			return model.HistoryStats{}, err
		}
		stats.ItemsByType[model.ContentType(t)] = n
	}
	if err := rows.Err(); err != nil {
		return model.HistoryStats{}, err
	}

	var latestMs sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `
SELECT MAX(created_at_unix_ms) FROM content_history
`).Scan(&latestMs); err != nil {
		return model.HistoryStats{}, err
	}
	if latestMs.Valid {
		latest := time.UnixMilli(latestMs.Int64)
		stats.LatestEntry = &latest
	}

	if info, err := os.Stat(r.path); err == nil {
		stats.DatabaseSizeBytes = info.Size()
	}

	return stats, nil
}

func (r *implRepository) queryEntries(ctx context.Context, query string, args ...any) ([]model.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.HistoryEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func scanEntry(scan func(dest ...any) error) (model.HistoryEntry, error) {
	var (
		entry        model.HistoryEntry
		contentType  string
		metadataJSON string
		createdAtMs  int64
	)
	if err := scan(
		&entry.ID,
		&entry.SessionID,
		&contentType,
		&entry.Content,
		&entry.Prompt,
		&metadataJSON,
		&createdAtMs,
	); err != nil {
		return model.HistoryEntry{}, err
	}

	entry.ContentType = model.ContentType(contentType)
	entry.CreatedAt = time.UnixMilli(createdAtMs)
	if metadataJSON != "" {
		if err := json.Unmarshal([]byte(metadataJSON), &entry.Metadata); err != nil {
			return model.HistoryEntry{}, fmt.Errorf("decode metadata: %w", err)
		}
	}
	return entry, nil
}

func initSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		return fmt.Errorf("pragma journal_mode: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf(`PRAGMA busy_timeout=%d;`, busyTimeoutMs)); err != nil {
		return fmt.Errorf("pragma busy_timeout: %w", err)
	}
	return migrateSchema(db)
}

func migrateSchema(db *sql.DB) error {
	var v int
	if err := db.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return fmt.Errorf("pragma user_version: %w", err)
	}
	if v >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS content_history (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  session_id TEXT NOT NULL DEFAULT '',
  content_type TEXT NOT NULL,
  content TEXT NOT NULL,
  prompt TEXT NOT NULL DEFAULT '',
  metadata TEXT NOT NULL DEFAULT '',
  created_at_unix_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_content_history_type ON content_history(content_type, created_at_unix_ms DESC, id DESC);
CREATE INDEX IF NOT EXISTS idx_content_history_session ON content_history(session_id);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version=%d;`, schemaVersion)); err != nil {
		return err
	}
	return tx.Commit()
}
