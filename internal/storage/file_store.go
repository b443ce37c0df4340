package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sandeepkv93/taskline/internal/model"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// FileStore keeps tasks in a single JSON or YAML document.
type FileStore struct {
	fs     afero.Fs
	path   string
	format Format
}

func NewFileStore(fs afero.Fs, path string, format Format) *FileStore {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if format == "" {
		format = FormatFor(path)
	}
	return &FileStore{fs: fs, path: path, format: format}
}

func (s *FileStore) Location() string { return s.path }
func (s *FileStore) Close() error     { return nil }

// Read returns no tasks when the file does not exist yet.
func (s *FileStore) Read() ([]model.Task, error) {
	tasks, err := s.read(s.path, s.format)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return tasks, err
}

func (s *FileStore) Save(tasks []model.Task) error {
	return s.write(s.path, s.format, tasks)
}

// ReadFrom reads another file. Unlike Read, a missing file is an error.
func (s *FileStore) ReadFrom(location string) ([]model.Task, error) {
	format, err := s.formatOf(location)
	if err != nil {
		return nil, err
	}
	return s.read(location, format)
}

// MoveTo writes tasks to location and makes it the active file. Database
// locations are refused so the file never disagrees with its extension.
func (s *FileStore) MoveTo(location string, tasks []model.Task) error {
	format, err := s.formatOf(location)
	if err != nil {
		return err
	}
	if err := s.write(location, format, tasks); err != nil {
		return err
	}
	s.path, s.format = location, format
	return nil
}

func (s *FileStore) formatOf(location string) (Format, error) {
	switch f := FormatFor(location); f {
	case FormatSQLite:
		return "", fmt.Errorf("%w: %s is a database file, start taskline with --data %s instead", ErrWrongFormat, location, location)
	case FormatYAML:
		return f, nil
	default:
		return FormatJSON, nil
	}
}

func (s *FileStore) read(path string, format Format) ([]model.Task, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var doc Document
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc.toTasks()
}

func (s *FileStore) write(path string, format Format, tasks []model.Task) error {
	doc := fromTasks(tasks)
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(doc)
	default:
		data, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
