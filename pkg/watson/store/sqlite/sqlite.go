package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/cognicore/watson/pkg/watson/internalerr"
	"github.com/cognicore/watson/pkg/watson/store"
	"github.com/cognicore/watson/pkg/watson/story"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates the
// schema if needed. A nil logger discards log output.
func OpenSQLite(ctx context.Context, path string, logger *zap.SugaredLogger) (store.Store, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, internalerr.Wrapf(internalerr.ErrStoreUnavailable, "open %s: %v", path, err)
	}

	// One connection: SQLite has a single writer.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, internalerr.Wrapf(internalerr.ErrStoreUnavailable, "wal %s: %v", path, err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, internalerr.Wrapf(internalerr.ErrStoreUnavailable, "busy timeout %s: %v", path, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, internalerr.Wrapf(internalerr.ErrStoreUnavailable, "schema %s: %v", path, err)
	}

	logger.Infow("Opened store", "path", path)
	return &sqliteStore{db: db, logger: logger}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS stories (
	name TEXT PRIMARY KEY,
	title TEXT,
	body TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS memory (
	id TEXT PRIMARY KEY,
	character TEXT NOT NULL,
	input TEXT NOT NULL,
	response TEXT NOT NULL,
	matcher TEXT,
	at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS memory_character ON memory(character, id);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveStory inserts or replaces a story under name. The story is kept in
// its authored YAML form.
func (s *sqliteStore) SaveStory(ctx context.Context, name string, st *story.Story) error {
	name = normalize(name)
	if name == "" {
		return internalerr.Wrap(internalerr.ErrInvalidInput, "story name is empty")
	}
	body, err := st.Encode()
	if err != nil {
		return err
	}

	const stmt = `
INSERT INTO stories (name, title, body, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	title=excluded.title,
	body=excluded.body,
	updated_at=excluded.updated_at;
`
	_, err = s.db.ExecContext(ctx, stmt, name, st.Title, string(body), time.Now().UTC().Format(time.RFC3339))
	return err
}

// LoadStory returns the named story or ErrNotFound.
func (s *sqliteStore) LoadStory(ctx context.Context, name string) (*story.Story, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM stories WHERE name=?`, normalize(name)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, internalerr.Wrapf(internalerr.ErrNotFound, "story %q", name)
	}
	if err != nil {
		return nil, err
	}
	return story.Decode([]byte(body))
}

// ListStories returns stored story names in order.
func (s *sqliteStore) ListStories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM stories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// AppendMemory records one exchange.
func (s *sqliteStore) AppendMemory(ctx context.Context, e store.MemoryEntry) error {
	if e.ID == "" || normalize(e.Character) == "" {
		return internalerr.Wrap(internalerr.ErrInvalidInput, "memory entry needs an id and a character")
	}
	const stmt = `
INSERT INTO memory (id, character, input, response, matcher, at)
VALUES (?, ?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, stmt,
		e.ID,
		normalize(e.Character),
		e.Input,
		e.Response,
		e.Matcher,
		e.At.UTC().Format(time.RFC3339Nano),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return internalerr.Wrapf(internalerr.ErrDuplicate, "memory %s", e.ID)
	}
	return err
}

// Memory returns the character's most recent exchanges, oldest first. A
// limit of zero or less returns everything.
func (s *sqliteStore) Memory(ctx context.Context, character string, limit int) ([]store.MemoryEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	const query = `
SELECT id, character, input, response, matcher, at FROM memory
WHERE character=?
ORDER BY id DESC
LIMIT ?;
`
	rows, err := s.db.QueryContext(ctx, query, normalize(character), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.MemoryEntry
	for rows.Next() {
		var (
			e       store.MemoryEntry
			matcher sql.NullString
			at      string
		)
		if err := rows.Scan(&e.ID, &e.Character, &e.Input, &e.Response, &matcher, &at); err != nil {
			return nil, err
		}
		e.Matcher = matcher.String
		if e.At, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// TrimMemory keeps only the character's keep most recent exchanges.
func (s *sqliteStore) TrimMemory(ctx context.Context, character string, keep int) error {
	if keep < 0 {
		keep = 0
	}
	const stmt = `
DELETE FROM memory
WHERE character=? AND id NOT IN (
	SELECT id FROM memory WHERE character=? ORDER BY id DESC LIMIT ?
);
`
	name := normalize(character)
	res, err := s.db.ExecContext(ctx, stmt, name, name, keep)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		s.logger.Debugw("Trimmed memory", "character", name, "removed", n)
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
