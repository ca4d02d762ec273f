package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/newecon/cleanbrief/internal/store"
)

// History remembers which article URLs have already been pushed to the
// remote store so repeated agent runs skip known articles.
type History struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	h := &History{readDB: readDB, writeDB: writeDB}
	if err := h.init(); err != nil {
		h.Close()
		return nil, err
	}
	return h, nil
}

func (h *History) init() error {
	_, err := h.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS pushed (
			url       TEXT PRIMARY KEY,
			source    TEXT NOT NULL DEFAULT '',
			pushed_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_pushed_at ON pushed(pushed_at);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (h *History) Close() error {
	var errs []error
	if h.readDB != nil {
		errs = append(errs, h.readDB.Close())
	}
	if h.writeDB != nil {
		errs = append(errs, h.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// MarkPushed records the given articles as pushed, refreshing pushed_at
// for URLs already known.
func (h *History) MarkPushed(articles []store.Article) error {
	tx, err := h.writeDB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO pushed (url, source, pushed_at)
		VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET pushed_at = excluded.pushed_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for _, a := range articles {
		if a.URL == "" {
			continue
		}
		if _, err := stmt.Exec(a.URL, a.Source, now); err != nil {
			return fmt.Errorf("recording %s: %w", a.URL, err)
		}
	}

	return tx.Commit()
}

// FilterNew returns only articles whose URL has not been pushed before,
// preserving input order.
func (h *History) FilterNew(articles []store.Article) ([]store.Article, error) {
	if len(articles) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(articles))
	args := make([]interface{}, len(articles))
	for i, a := range articles {
		placeholders[i] = "?"
		args[i] = a.URL
	}

	rows, err := h.readDB.Query(
		"SELECT url FROM pushed WHERE url IN ("+strings.Join(placeholders, ",")+")", args...)
	if err != nil {
		return nil, fmt.Errorf("querying pushed urls: %w", err)
	}
	defer rows.Close()

	known := map[string]bool{}
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scanning url: %w", err)
		}
		known[u] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var fresh []store.Article
	for _, a := range articles {
		if !known[a.URL] {
			fresh = append(fresh, a)
		}
	}
	return fresh, nil
}

// NeedsRun reports whether the last agent run is older than the interval.
func (h *History) NeedsRun(interval time.Duration) bool {
	var value string
	err := h.readDB.QueryRow("SELECT value FROM meta WHERE key = 'last_run'").Scan(&value)
	if err != nil {
		return true
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return true
	}
	return time.Since(t) > interval
}

func (h *History) SetLastRun() error {
	_, err := h.writeDB.Exec(`
		INSERT INTO meta (key, value) VALUES ('last_run', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, time.Now().Format(time.RFC3339))
	return err
}

// Prune removes records older than the retention period and reports how
// many were deleted.
func (h *History) Prune(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	res, err := h.writeDB.Exec("DELETE FROM pushed WHERE pushed_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning history: %w", err)
	}
	return res.RowsAffected()
}

// Stats returns the number of recorded URLs and the db file size.
func (h *History) Stats(dbPath string) (int64, int64, error) {
	var count int64
	if err := h.readDB.QueryRow("SELECT COUNT(*) FROM pushed").Scan(&count); err != nil {
		return 0, 0, err
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return count, 0, err
	}
	return count, info.Size(), nil
}
