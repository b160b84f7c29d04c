package project

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"subtext/internal/config"
	"subtext/internal/subtitle"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes. Old databases must be
// deleted after a bump.
const schemaVersion = 1

// ErrNotFound is returned when a project id is not in the store.
var ErrNotFound = errors.New("project not found")

// ErrSchemaMismatch indicates the database was written by a different
// program version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrLocked indicates another process holds the store.
var ErrLocked = errors.New("project store is locked by another process")

// Store manages project persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open initializes or connects to the project database under the configured
// data directory and takes the single-writer file lock.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	dbPath := filepath.Join(cfg.Paths.DataDir, "projects.db")

	lock := flock.New(dbPath + ".lock")
	held, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	if !held {
		return nil, ErrLocked
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, lock: lock, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the database and the store lock.
func (s *Store) Close() error {
	var firstErr error
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			firstErr = err
		}
		s.db = nil
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.lock = nil
	}
	return firstErr
}

// Path reports the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin schema tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()
		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return tx.Commit()
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// Save upserts the project record and replaces its cue rows in one
// transaction.
func (s *Store) Save(ctx context.Context, proj *Project, track *subtitle.Track) error {
	if proj.ID == "" {
		proj.ID = NewID()
	}
	now := time.Now().UTC()
	if proj.CreatedAt.IsZero() {
		proj.CreatedAt = now
	}
	proj.UpdatedAt = now

	settings, err := json.Marshal(proj.Settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO projects (id, source_media, language, settings_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			source_media = excluded.source_media,
			language = excluded.language,
			settings_json = excluded.settings_json,
			updated_at = excluded.updated_at`,
		proj.ID, proj.SourceMedia, proj.Language, string(settings),
		proj.CreatedAt.Format(time.RFC3339Nano), proj.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save project %s: %w", proj.ID, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM cues WHERE project_id = ?", proj.ID); err != nil {
		return fmt.Errorf("clear cues for %s: %w", proj.ID, err)
	}
	for _, cue := range track.Cues {
		var boxJSON sql.NullString
		if cue.Box != nil {
			encoded, err := json.Marshal(cue.Box)
			if err != nil {
				return fmt.Errorf("encode box for cue %d: %w", cue.Index, err)
			}
			boxJSON = sql.NullString{String: string(encoded), Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO cues (project_id, idx, start_ms, end_ms, text, box_json) VALUES (?, ?, ?, ?, ?, ?)",
			proj.ID, cue.Index, cue.StartMS, cue.EndMS, cue.Text, boxJSON); err != nil {
			return fmt.Errorf("save cue %d for %s: %w", cue.Index, proj.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save for %s: %w", proj.ID, err)
	}
	return nil
}

// Get loads a project and its track.
func (s *Store) Get(ctx context.Context, id string) (*Project, *subtitle.Track, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, source_media, language, settings_json, created_at, updated_at FROM projects WHERE id = ?", id)
	proj, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, nil, fmt.Errorf("load project %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT idx, start_ms, end_ms, text, box_json FROM cues WHERE project_id = ? ORDER BY idx", id)
	if err != nil {
		return nil, nil, fmt.Errorf("load cues for %s: %w", id, err)
	}
	defer rows.Close()

	track := &subtitle.Track{SourceMedia: proj.SourceMedia, Language: proj.Language}
	for rows.Next() {
		var (
			cue     subtitle.Cue
			boxJSON sql.NullString
		)
		if err := rows.Scan(&cue.Index, &cue.StartMS, &cue.EndMS, &cue.Text, &boxJSON); err != nil {
			return nil, nil, fmt.Errorf("scan cue for %s: %w", id, err)
		}
		if boxJSON.Valid {
			var box subtitle.Box
			if err := json.Unmarshal([]byte(boxJSON.String), &box); err != nil {
				return nil, nil, fmt.Errorf("decode box for cue %d: %w", cue.Index, err)
			}
			cue.Box = &box
		}
		track.Cues = append(track.Cues, cue)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate cues for %s: %w", id, err)
	}
	proj.CueCount = len(track.Cues)
	return proj, track, nil
}

// List returns all projects newest first, with cue counts.
func (s *Store) List(ctx context.Context) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.source_media, p.language, p.settings_json, p.created_at, p.updated_at,
		       (SELECT COUNT(1) FROM cues c WHERE c.project_id = p.id)
		FROM projects p
		ORDER BY p.updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var (
			proj                 Project
			settingsJSON         string
			createdAt, updatedAt string
		)
		if err := rows.Scan(&proj.ID, &proj.SourceMedia, &proj.Language, &settingsJSON,
			&createdAt, &updatedAt, &proj.CueCount); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		if err := decodeProjectFields(&proj, settingsJSON, createdAt, updatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, proj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

// Delete removes a project and its cues.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func scanProject(row *sql.Row) (*Project, error) {
	var (
		proj                 Project
		settingsJSON         string
		createdAt, updatedAt string
	)
	if err := row.Scan(&proj.ID, &proj.SourceMedia, &proj.Language, &settingsJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := decodeProjectFields(&proj, settingsJSON, createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &proj, nil
}

func decodeProjectFields(proj *Project, settingsJSON, createdAt, updatedAt string) error {
	if err := json.Unmarshal([]byte(settingsJSON), &proj.Settings); err != nil {
		return fmt.Errorf("decode settings for %s: %w", proj.ID, err)
	}
	var err error
	if proj.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return fmt.Errorf("parse created_at for %s: %w", proj.ID, err)
	}
	if proj.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return fmt.Errorf("parse updated_at for %s: %w", proj.ID, err)
	}
	return nil
}
