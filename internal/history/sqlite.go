package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/togramago/melodygen/internal/generator"
)

// Fixed width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB

	mu      sync.Mutex
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID(t time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS melodies (
		id             TEXT PRIMARY KEY,
		created_at     TEXT NOT NULL,
		key_name       TEXT NOT NULL,
		time_signature TEXT NOT NULL,
		bars           INTEGER NOT NULL,
		voices         INTEGER NOT NULL,
		seed           TEXT NOT NULL,
		partial_bars   INTEGER NOT NULL DEFAULT 0,
		melody         TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_melodies_created ON melodies(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Save(ctx context.Context, m *generator.Melody) (*Entry, error) {
	if m == nil {
		return nil, errors.New("save: nil melody")
	}
	body, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode melody: %w", err)
	}

	now := time.Now().UTC()
	e := &Entry{
		ID:            s.newID(now),
		CreatedAt:     now,
		Key:           m.Key(),
		TimeSignature: m.TimeSignature,
		Bars:          m.BarCount(),
		Voices:        len(m.Voices),
		Seed:          m.Seed,
		PartialBars:   m.PartialBars(),
		Melody:        m,
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO melodies (id, created_at, key_name, time_signature, bars, voices, seed, partial_bars, melody)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, now.Format(timeLayout), e.Key, e.TimeSignature, e.Bars, e.Voices,
		strconv.FormatUint(e.Seed, 10), e.PartialBars, string(body),
	)
	if err != nil {
		return nil, fmt.Errorf("insert melody: %w", err)
	}
	return e, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, key_name, time_signature, bars, voices, seed, partial_bars, melody
		 FROM melodies WHERE id = ?`, id)

	var body string
	e, err := scanEntry(row, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get melody: %w", err)
	}

	var m generator.Melody
	if err := json.Unmarshal([]byte(body), &m); err != nil {
		return nil, fmt.Errorf("decode melody %s: %w", id, err)
	}
	e.Melody = &m
	return e, nil
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Entry, error) {
	limit = max(1, min(limit, MaxListLimit))

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, key_name, time_signature, bars, voices, seed, partial_bars, ''
		 FROM melodies ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list melodies: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var ignored string
		e, err := scanEntry(rows, &ignored)
		if err != nil {
			return nil, fmt.Errorf("scan melody: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner, body *string) (*Entry, error) {
	var (
		e       Entry
		created string
		seed    string
	)
	if err := sc.Scan(&e.ID, &created, &e.Key, &e.TimeSignature, &e.Bars, &e.Voices, &seed, &e.PartialBars, body); err != nil {
		return nil, err
	}

	var err error
	if e.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if e.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &e, nil
}
