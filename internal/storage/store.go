package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/taskline/internal/tasklist"
	"github.com/spf13/afero"
)

var (
	ErrNotFound      = errors.New("storage: not found")
	ErrInvalidRecord = errors.New("storage: invalid record")
	ErrWrongFormat   = errors.New("storage: location needs a different store")
)

type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// Store is a task storage that can also switch to another location.
type Store interface {
	tasklist.Storage
	tasklist.Relocator
	Close() error
}

// FormatFor infers the data format from a file extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatJSON
	}
}

// Open returns the store for path. An empty format is inferred from the
// extension.
func Open(fs afero.Fs, path string, format Format) (Store, error) {
	if format == "" {
		format = FormatFor(path)
	}
	switch format {
	case FormatJSON, FormatYAML:
		return NewFileStore(fs, path, format), nil
	case FormatSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("storage: unknown format %q", format)
	}
}
