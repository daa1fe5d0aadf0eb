package library

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/MimeLyc/flicks/internal/catalog"
	"github.com/MimeLyc/flicks/internal/catalogjob"
	"github.com/MimeLyc/flicks/internal/fingerprint"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Store is the embedded sqlite-backed library at <root>/.meta/library.db.
// It also implements catalogjob.Store against the same database, so a
// single file backs both ingested-movie state and background job state.
type Store struct {
	db *sql.DB
}

// Open creates (or opens) the library database at path, running any
// pending migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("library: db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create library directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db}
	if err := store.init(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
		return fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		return fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		version := migrationVersion(entry.Name())
		if version <= 0 {
			continue
		}
		var exists int
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, version).Scan(&exists); err != nil {
			return fmt.Errorf("check migration %s: %w", entry.Name(), err)
		}
		if exists > 0 {
			continue
		}
		content, err := migrationFiles.ReadFile(filepath.Join("migrations", entry.Name()))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		if _, err := s.db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", entry.Name(), err)
		}
		if _, err := s.db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			return fmt.Errorf("record migration %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func migrationVersion(name string) int {
	for i, c := range name {
		if c < '0' || c > '9' {
			if i == 0 {
				return 0
			}
			n, _ := strconv.Atoi(name[:i])
			return n
		}
	}
	n, _ := strconv.Atoi(name)
	return n
}

// HasFingerprint reports whether any file in the library carries fp.
func (s *Store) HasFingerprint(ctx context.Context, fp string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM file WHERE fingerprint = ?`, fp).Scan(&n)
	return n > 0, err
}

// HasTitle reports whether id is already ingested.
func (s *Store) HasTitle(ctx context.Context, id catalog.TitleID) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movie WHERE imdb_id = ?`, uint32(id)).Scan(&n)
	return n > 0, err
}

// SaveMovie upserts path as a File, the Movie itself, and its dependent
// Subtitles, all inside one transaction; m.Images is not written. Re-saving the same
// imdb_id updates in place (upsert-on-conflict), making a re-run of a
// ScanReport idempotent at the store level.
func (s *Store) SaveMovie(ctx context.Context, m Movie) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	fileID, err := upsertFile(ctx, tx, m.File.Path, m.File.Fingerprint)
	if err != nil {
		return err
	}

	var movieID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO movie (file_id, imdb_id, primary_title, original_title, year)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(imdb_id) DO UPDATE SET
			file_id=excluded.file_id,
			primary_title=excluded.primary_title,
			original_title=excluded.original_title,
			year=excluded.year
		RETURNING id`,
		fileID, uint32(m.IMDbID), m.PrimaryTitle, m.OriginalTitle, m.Year,
	).Scan(&movieID)
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM subtitle WHERE movie_id = ?`, movieID); err != nil {
		return err
	}
	for _, sub := range m.Subtitles {
		if sub.Path == "" {
			continue
		}
		subFileID, subErr := upsertFile(ctx, tx, sub.Path, sub.Fingerprint)
		if subErr != nil {
			err = subErr
			return err
		}
		if _, err = tx.ExecContext(ctx, `INSERT INTO subtitle (movie_id, file_id, lang) VALUES (?, ?, ?)`, movieID, subFileID, sub.Lang); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func upsertFile(ctx context.Context, tx *sql.Tx, path, fingerprint string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM file WHERE path = ?`, path).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	// fingerprint is UNIQUE; empty values (subtitle side-files not yet
	// fingerprinted at save time) must not collide with each other.
	if fingerprint == "" {
		fingerprint = "ref:" + path
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO file (path, fingerprint) VALUES (?, ?)
		ON CONFLICT(fingerprint) DO UPDATE SET path=excluded.path
		RETURNING id`, path, fingerprint).Scan(&id)
	return id, err
}

// AllMovies returns every ingested movie, library-path ascending.
func (s *Store) AllMovies(ctx context.Context) ([]Movie, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, f.id, f.path, f.fingerprint, m.imdb_id, m.primary_title, m.original_title, m.year, m.created_at
		FROM movie m JOIN file f ON f.id = m.file_id
		ORDER BY f.path ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []Movie
	for rows.Next() {
		var m Movie
		var imdbID uint32
		if err := rows.Scan(&m.ID, &m.File.ID, &m.File.Path, &m.File.Fingerprint, &imdbID, &m.PrimaryTitle, &m.OriginalTitle, &m.Year, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.IMDbID = catalog.TitleID(imdbID)
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// Sync deletes library entries whose backing file no longer exists
// on-disk (cascades to subtitles/images via the schema's ON DELETE CASCADE).
// Stored paths are library-relative and are joined against libRoot before
// being stat'd.
func (s *Store) Sync(ctx context.Context, libRoot string) (int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, path FROM file`)
	if err != nil {
		return 0, err
	}
	var stale []int64
	for rows.Next() {
		var id int64
		var path string
		if err := rows.Scan(&id, &path); err != nil {
			rows.Close()
			return 0, err
		}
		if _, err := os.Stat(filepath.Join(libRoot, path)); os.IsNotExist(err) {
			stale = append(stale, id)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, id := range stale {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM file WHERE id = ?`, id); err != nil {
			return 0, err
		}
	}
	return len(stale), nil
}

// Rehash recomputes the fingerprint of every library file and updates
// rows whose fingerprint changed. Stored paths are library-relative and
// are joined against libRoot before being read.
func (s *Store) Rehash(ctx context.Context, libRoot string) (int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, path, fingerprint FROM file`)
	if err != nil {
		return 0, err
	}
	type row struct {
		id  int64
		old string
		new string
	}
	var changed []row
	for rows.Next() {
		var id int64
		var path, old string
		if err := rows.Scan(&id, &path, &old); err != nil {
			rows.Close()
			return 0, err
		}
		fp, err := fingerprint.File(filepath.Join(libRoot, path))
		if err != nil {
			continue
		}
		if fp != old {
			changed = append(changed, row{id: id, old: old, new: fp})
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, r := range changed {
		if _, err := s.db.ExecContext(ctx, `UPDATE file SET fingerprint = ? WHERE id = ?`, r.new, r.id); err != nil {
			return 0, err
		}
	}
	return len(changed), nil
}

// Query substring-matches primary/original title and filters by year,
// sorted by (year, primary_title) ascending.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Movie, error) {
	var clauses []string
	var args []any

	if filter.Title != "" {
		clauses = append(clauses, `(primary_title LIKE ? OR original_title LIKE ?)`)
		needle := "%" + filter.Title + "%"
		args = append(args, needle, needle)
	}
	if filter.HasYear {
		clauses = append(clauses, `year = ?`)
		args = append(args, filter.Year)
	}
	if filter.HasYearGTE {
		clauses = append(clauses, `year >= ?`)
		args = append(args, filter.YearGTE)
	}
	if filter.HasYearLTE {
		clauses = append(clauses, `year <= ?`)
		args = append(args, filter.YearLTE)
	}

	query := `
		SELECT m.id, f.id, f.path, f.fingerprint, m.imdb_id, m.primary_title, m.original_title, m.year, m.created_at
		FROM movie m JOIN file f ON f.id = m.file_id`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY m.year ASC, m.primary_title ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []Movie
	for rows.Next() {
		var m Movie
		var imdbID uint32
		if err := rows.Scan(&m.ID, &m.File.ID, &m.File.Path, &m.File.Fingerprint, &imdbID, &m.PrimaryTitle, &m.OriginalTitle, &m.Year, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.IMDbID = catalog.TitleID(imdbID)
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// Count reports how many movies the library currently holds.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movie`).Scan(&n)
	return n, err
}

// The methods below satisfy catalogjob.Store, backed by the same database
// as the movie tables.

var _ catalogjob.Store = (*Store)(nil)

func (s *Store) LoadJobs(ctx context.Context) ([]*catalogjob.RefreshJob, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, dedupe_key, data_dir, status, error, created_at, updated_at
		FROM catalog_refresh_job
		ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*catalogjob.RefreshJob
	for rows.Next() {
		var j catalogjob.RefreshJob
		var status string
		if err := rows.Scan(&j.ID, &j.DedupeKey, &j.DataDir, &status, &j.Error, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		j.Status = catalogjob.Status(status)
		jobs = append(jobs, &j)
	}
	return jobs, rows.Err()
}

func (s *Store) UpsertJob(ctx context.Context, job *catalogjob.RefreshJob) error {
	if job == nil {
		return fmt.Errorf("library: job is nil")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO catalog_refresh_job (id, dedupe_key, data_dir, status, error, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			dedupe_key=excluded.dedupe_key,
			data_dir=excluded.data_dir,
			status=excluded.status,
			error=excluded.error,
			updated_at=excluded.updated_at`,
		job.ID, job.DedupeKey, job.DataDir, string(job.Status), job.Error, job.CreatedAt, job.UpdatedAt,
	)
	return err
}

func (s *Store) DeleteJob(ctx context.Context, jobID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM catalog_refresh_job WHERE id = ?`, jobID)
	return err
}
