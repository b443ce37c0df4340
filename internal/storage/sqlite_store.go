package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sandeepkv93/taskline/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLiteStore keeps tasks in a SQLite database. Every save replaces the
// whole snapshot inside one transaction.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

func NewSQLiteStore(db *sql.DB, path string) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db, path: path}, nil
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store, err := NewSQLiteStore(db, path)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Location() string { return s.path }

func (s *SQLiteStore) Read() ([]model.Task, error) {
	return s.ReadContext(context.Background())
}

func (s *SQLiteStore) Save(tasks []model.Task) error {
	return s.SaveContext(context.Background(), tasks)
}

func (s *SQLiteStore) ReadContext(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, location, pinned, completed, start_time, end_time
		FROM tasks ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	byID := make(map[string]int)
	for rows.Next() {
		rec, scanErr := scanRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		byID[rec.ID] = len(records)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tagRows, err := s.db.QueryContext(ctx, `SELECT task_id, name FROM task_tags ORDER BY task_id, position`)
	if err != nil {
		return nil, err
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var taskID, name string
		if err := tagRows.Scan(&taskID, &name); err != nil {
			return nil, err
		}
		if i, ok := byID[taskID]; ok {
			records[i].Tags = append(records[i].Tags, name)
		}
	}
	if err := tagRows.Err(); err != nil {
		return nil, err
	}
	return Document{Tasks: records}.toTasks()
}

func (s *SQLiteStore) SaveContext(ctx context.Context, tasks []model.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM task_tags`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return err
	}
	for pos, t := range tasks {
		rec := FromTask(t)
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (id, position, title, description, location, pinned, completed, start_time, end_time)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, pos, rec.Title, rec.Description, rec.Location,
			boolInt(rec.Pinned), boolInt(rec.Completed), nullTime(rec.StartTime), nullTime(rec.EndTime),
		); err != nil {
			return fmt.Errorf("insert task %s: %w", rec.ID, err)
		}
		for i, name := range rec.Tags {
			if _, err := tx.ExecContext(ctx, `INSERT INTO task_tags (task_id, name, position) VALUES (?, ?, ?)`, rec.ID, name, i); err != nil {
				return fmt.Errorf("insert tag %s: %w", name, err)
			}
		}
	}
	return tx.Commit()
}

// ReadFrom reads another database file without switching to it.
func (s *SQLiteStore) ReadFrom(location string) ([]model.Task, error) {
	if _, err := os.Stat(location); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, location)
		}
		return nil, err
	}
	other, err := OpenSQLite(location)
	if err != nil {
		return nil, err
	}
	defer other.Close()
	return other.Read()
}

// MoveTo writes tasks into the database at location and switches to it.
func (s *SQLiteStore) MoveTo(location string, tasks []model.Task) error {
	if FormatFor(location) != FormatSQLite {
		return fmt.Errorf("%w: %s is not a database file", ErrWrongFormat, location)
	}
	other, err := OpenSQLite(location)
	if err != nil {
		return err
	}
	if err := other.Save(tasks); err != nil {
		_ = other.Close()
		return err
	}
	_ = s.db.Close()
	s.db, s.path = other.db, other.path
	return nil
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var out Record
	var pinned, completed int
	var start, end sql.NullString
	if err := s.Scan(&out.ID, &out.Title, &out.Description, &out.Location, &pinned, &completed, &start, &end); err != nil {
		return Record{}, err
	}
	startAt, err := parseNullableTime(start)
	if err != nil {
		return Record{}, err
	}
	endAt, err := parseNullableTime(end)
	if err != nil {
		return Record{}, err
	}
	out.Pinned = pinned == 1
	out.Completed = completed == 1
	out.StartTime = startAt
	out.EndTime = endAt
	return out, nil
}
