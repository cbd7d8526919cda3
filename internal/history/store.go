// Package history persists routing decisions so past delegations can be
// searched and aggregated. It uses SQLite with an FTS5 index over the
// task text. History is a convenience layer: classification never depends
// on it, and callers are expected to treat failures as non-fatal.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// EnvDataDir overrides the directory holding history.db.
const EnvDataDir = "SWITCHBOARD_DATA_DIR"

// ─── Types ───────────────────────────────────────────────────────────────────

// Entry is one recorded routing decision.
type Entry struct {
	ID         string         `json:"id"`
	Task       string         `json:"task"`
	Strategy   string         `json:"strategy"`
	Confidence string         `json:"confidence"`
	Domains    []string       `json:"domains"`
	Agents     []string       `json:"agents"`
	Scores     map[string]int `json:"scores"`
	Source     string         `json:"source"`
	CreatedAt  string         `json:"created_at"`
}

// QueryOptions holds filters for Find.
type QueryOptions struct {
	Text     string `json:"text,omitempty"`
	Strategy string `json:"strategy,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// DomainCount pairs a domain with how often it was significant.
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// Stats holds aggregate routing statistics.
type Stats struct {
	TotalRoutings int            `json:"total_routings"`
	ByStrategy    map[string]int `json:"by_strategy"`
	ByConfidence  map[string]int `json:"by_confidence"`
	TopDomains    []DomainCount  `json:"top_domains"`
}

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds history store configuration.
type Config struct {
	DataDir    string
	MaxResults int
}

// DefaultConfig returns the default configuration for the history store.
// The data directory is ~/.switchboard unless SWITCHBOARD_DATA_DIR is set.
func DefaultConfig() Config {
	dir := os.Getenv(EnvDataDir)
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".switchboard")
	}
	return Config{
		DataDir:    dir,
		MaxResults: 50,
	}
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the routing history backed by SQLite + FTS5.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New creates a new Store with the given configuration. It creates the
// data directory if needed, opens SQLite with WAL mode, and runs
// migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("history: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "history.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	// SQLite performance pragmas
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("history: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("history: migration: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS routings (
			id         TEXT PRIMARY KEY,
			task       TEXT NOT NULL,
			strategy   TEXT NOT NULL,
			confidence TEXT NOT NULL,
			domains    TEXT NOT NULL DEFAULT '[]',
			agents     TEXT NOT NULL DEFAULT '[]',
			scores     TEXT NOT NULL DEFAULT '{}',
			source     TEXT NOT NULL DEFAULT 'mcp',
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_routings_strategy ON routings(strategy);
		CREATE INDEX IF NOT EXISTS idx_routings_created  ON routings(created_at DESC);

		CREATE VIRTUAL TABLE IF NOT EXISTS routings_fts USING fts5(
			task,
			content='routings'
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Create FTS triggers (idempotent)
	var name string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='trigger' AND name='routings_fts_insert'",
	).Scan(&name)

	if err == sql.ErrNoRows {
		triggers := `
			CREATE TRIGGER routings_fts_insert AFTER INSERT ON routings BEGIN
				INSERT INTO routings_fts(rowid, task) VALUES (new.rowid, new.task);
			END;

			CREATE TRIGGER routings_fts_delete AFTER DELETE ON routings BEGIN
				INSERT INTO routings_fts(routings_fts, rowid, task) VALUES ('delete', old.rowid, old.task);
			END;

			CREATE TRIGGER routings_fts_update AFTER UPDATE ON routings BEGIN
				INSERT INTO routings_fts(routings_fts, rowid, task) VALUES ('delete', old.rowid, old.task);
				INSERT INTO routings_fts(rowid, task) VALUES (new.rowid, new.task);
			END;
		`
		if _, err := s.db.Exec(triggers); err != nil {
			return err
		}
	}

	return nil
}

// ─── Recording ───────────────────────────────────────────────────────────────

// Record persists one routing decision. A missing ID gets a fresh UUID;
// a missing source defaults to "mcp". The stored entry (with ID and
// database timestamp) is returned.
func (s *Store) Record(e Entry) (Entry, error) {
	if strings.TrimSpace(e.Task) == "" {
		return Entry{}, fmt.Errorf("history: task is required")
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Source == "" {
		e.Source = "mcp"
	}

	domains, err := json.Marshal(emptyIfNil(e.Domains))
	if err != nil {
		return Entry{}, fmt.Errorf("history: encoding domains: %w", err)
	}
	agents, err := json.Marshal(emptyIfNil(e.Agents))
	if err != nil {
		return Entry{}, fmt.Errorf("history: encoding agents: %w", err)
	}
	scores, err := json.Marshal(e.Scores)
	if err != nil {
		return Entry{}, fmt.Errorf("history: encoding scores: %w", err)
	}

	if _, err := s.db.Exec(
		`INSERT INTO routings (id, task, strategy, confidence, domains, agents, scores, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Task, e.Strategy, e.Confidence,
		string(domains), string(agents), string(scores), e.Source,
	); err != nil {
		return Entry{}, fmt.Errorf("history: insert routing: %w", err)
	}

	return s.Get(e.ID)
}

// Get retrieves one entry by ID.
func (s *Store) Get(id string) (Entry, error) {
	row := s.db.QueryRow(
		`SELECT id, task, strategy, confidence, domains, agents, scores, source, created_at
		 FROM routings WHERE id = ?`, id,
	)
	return scanEntry(row)
}

// ─── Search ──────────────────────────────────────────────────────────────────

// Find searches recorded routings. A non-empty Text runs an FTS5 match
// over the task text; an empty or whitespace-only Text falls back to the
// most recent entries. Strategy filters exactly when set.
func (s *Store) Find(opts QueryOptions) ([]Entry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > s.cfg.MaxResults {
		limit = s.cfg.MaxResults
	}

	ftsQuery := sanitizeFTS(opts.Text)
	if ftsQuery == "" {
		return s.findRecent(opts, limit)
	}

	sqlStr := `
		SELECT r.id, r.task, r.strategy, r.confidence, r.domains, r.agents, r.scores, r.source, r.created_at
		FROM routings_fts fts
		JOIN routings r ON r.rowid = fts.rowid
		WHERE routings_fts MATCH ?
	`
	args := []any{ftsQuery}

	if opts.Strategy != "" {
		sqlStr += " AND r.strategy = ?"
		args = append(args, opts.Strategy)
	}

	sqlStr += " ORDER BY fts.rank LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("history: search: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectEntries(rows)
}

// findRecent returns the most recent routings without FTS, used as
// fallback when the query text is empty.
func (s *Store) findRecent(opts QueryOptions, limit int) ([]Entry, error) {
	sqlStr := `
		SELECT id, task, strategy, confidence, domains, agents, scores, source, created_at
		FROM routings
	`
	var args []any

	if opts.Strategy != "" {
		sqlStr += " WHERE strategy = ?"
		args = append(args, opts.Strategy)
	}

	// rowid breaks created_at ties so same-second inserts stay ordered.
	sqlStr += " ORDER BY created_at DESC, rowid DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectEntries(rows)
}

// ─── Stats ───────────────────────────────────────────────────────────────────

// topDomainLimit caps the Stats top-domain list.
const topDomainLimit = 10

// Stats returns aggregate routing statistics.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{
		ByStrategy:   map[string]int{},
		ByConfidence: map[string]int{},
	}

	_ = s.db.QueryRow("SELECT COUNT(*) FROM routings").Scan(&stats.TotalRoutings)

	if err := s.countBy("strategy", stats.ByStrategy); err != nil {
		return nil, err
	}
	if err := s.countBy("confidence", stats.ByConfidence); err != nil {
		return nil, err
	}

	// Domains are stored as JSON arrays; json_each unnests them.
	rows, err := s.db.Query(`
		SELECT je.value, COUNT(*) AS n
		FROM routings r, json_each(r.domains) je
		GROUP BY je.value
		ORDER BY n DESC, je.value ASC
		LIMIT ?`, topDomainLimit)
	if err != nil {
		return nil, fmt.Errorf("history: top domains: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var dc DomainCount
		if err := rows.Scan(&dc.Domain, &dc.Count); err != nil {
			return nil, err
		}
		stats.TopDomains = append(stats.TopDomains, dc)
	}
	return stats, rows.Err()
}

func (s *Store) countBy(column string, into map[string]int) error {
	rows, err := s.db.Query(
		"SELECT " + column + ", COUNT(*) FROM routings GROUP BY " + column,
	)
	if err != nil {
		return fmt.Errorf("history: count by %s: %w", column, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		into[key] = n
	}
	return rows.Err()
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

type rowLike interface {
	Scan(dest ...any) error
}

func scanEntry(row rowLike) (Entry, error) {
	var e Entry
	var domains, agents, scores string
	if err := row.Scan(
		&e.ID, &e.Task, &e.Strategy, &e.Confidence,
		&domains, &agents, &scores, &e.Source, &e.CreatedAt,
	); err != nil {
		return Entry{}, err
	}
	if err := json.Unmarshal([]byte(domains), &e.Domains); err != nil {
		return Entry{}, fmt.Errorf("history: decoding domains: %w", err)
	}
	if err := json.Unmarshal([]byte(agents), &e.Agents); err != nil {
		return Entry{}, fmt.Errorf("history: decoding agents: %w", err)
	}
	if err := json.Unmarshal([]byte(scores), &e.Scores); err != nil {
		return Entry{}, fmt.Errorf("history: decoding scores: %w", err)
	}
	return e, nil
}

func collectEntries(rows *sql.Rows) ([]Entry, error) {
	var results []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, e)
	}
	return results, rows.Err()
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// sanitizeFTS wraps each word in quotes for safe FTS5 queries.
// "route auth task" → `"route" "auth" "task"`
func sanitizeFTS(query string) string {
	words := strings.Fields(query)
	for i, w := range words {
		w = strings.Trim(w, `"`)
		words[i] = `"` + w + `"`
	}
	return strings.Join(words, " ")
}
