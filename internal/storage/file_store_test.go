package storage

import (
	"errors"
	"strings"
	"testing"

	"github.com/sandeepkv93/taskline/internal/model"
	"github.com/spf13/afero"
)

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	store := NewFileStore(afero.NewMemMapFs(), "/data/tasks.json", "")
	got, err := store.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no tasks, got %d", len(got))
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		path string
		want string
	}{
		{name: "json", path: "/data/tasks.json", want: `"uuid"`},
		{name: "yaml", path: "/data/tasks.yaml", want: "uuid:"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			store := NewFileStore(fs, tc.path, "")
			tasks := sampleTasks(t)

			if err := store.Save(tasks); err != nil {
				t.Fatalf("save: %v", err)
			}
			data, err := afero.ReadFile(fs, tc.path)
			if err != nil {
				t.Fatalf("read raw: %v", err)
			}
			if !strings.Contains(string(data), tc.want) {
				t.Fatalf("expected %s document, got:\n%s", tc.name, data)
			}
			if ok, _ := afero.Exists(fs, tc.path+".tmp"); ok {
				t.Fatalf("temporary file left behind")
			}

			got, err := store.Read()
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			assertSameTasks(t, got, tasks)
		})
	}
}

func TestFileStoreRejectsInvalidRecords(t *testing.T) {
	fs := afero.NewMemMapFs()
	cases := map[string]string{
		"missing title":   `{"tasks":[{"uuid":"6f1c1c4e-3a4b-4f7e-9a55-0b1f2d3c4e5f","pinned":false,"completed":false}]}`,
		"bad uuid":        `{"tasks":[{"uuid":"nope","title":"x","pinned":false,"completed":false}]}`,
		"bad tag":         `{"tasks":[{"uuid":"6f1c1c4e-3a4b-4f7e-9a55-0b1f2d3c4e5f","title":"x","tags":["a,b"]}]}`,
		"start only":      `{"tasks":[{"uuid":"6f1c1c4e-3a4b-4f7e-9a55-0b1f2d3c4e5f","title":"x","startTime":"2026-03-01T10:00:00Z"}]}`,
		"start after end": `{"tasks":[{"uuid":"6f1c1c4e-3a4b-4f7e-9a55-0b1f2d3c4e5f","title":"x","startTime":"2026-03-01T12:00:00Z","endTime":"2026-03-01T10:00:00Z"}]}`,
		"duplicate uuid":  `{"tasks":[{"uuid":"6f1c1c4e-3a4b-4f7e-9a55-0b1f2d3c4e5f","title":"first"},{"uuid":"6f1c1c4e-3a4b-4f7e-9a55-0b1f2d3c4e5f","title":"second"}]}`,
	}
	for name, doc := range cases {
		if err := afero.WriteFile(fs, "/bad.json", []byte(doc), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		_, err := NewFileStore(fs, "/bad.json", "").Read()
		if !errors.Is(err, ErrInvalidRecord) {
			t.Fatalf("%s: expected ErrInvalidRecord, got %v", name, err)
		}
	}

	if err := afero.WriteFile(fs, "/garbage.json", []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewFileStore(fs, "/garbage.json", "").Read(); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestFileStoreRelocation(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFileStore(fs, "/data/tasks.json", "")
	tasks := sampleTasks(t)

	if _, err := store.ReadFrom("/elsewhere.json"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.MoveTo("/backup/tasks.yml", tasks); err != nil {
		t.Fatalf("move: %v", err)
	}
	if store.Location() != "/backup/tasks.yml" {
		t.Fatalf("location not switched: %s", store.Location())
	}
	if err := store.Save([]model.Task{tasks[0]}); err != nil {
		t.Fatalf("save after move: %v", err)
	}
	got, err := store.ReadFrom("/backup/tasks.yml")
	if err != nil {
		t.Fatalf("read from: %v", err)
	}
	assertSameTasks(t, got, []model.Task{tasks[0]})
}

func TestFileStoreRefusesDatabaseLocations(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFileStore(fs, "/data/tasks.json", "")

	if err := store.MoveTo("/data/tasks.db", sampleTasks(t)); !errors.Is(err, ErrWrongFormat) {
		t.Fatalf("expected ErrWrongFormat, got %v", err)
	}
	if ok, _ := afero.Exists(fs, "/data/tasks.db"); ok {
		t.Fatalf("json written to a database file")
	}
	if store.Location() != "/data/tasks.json" {
		t.Fatalf("location switched after refusal: %s", store.Location())
	}
	if _, err := store.ReadFrom("/data/tasks.sqlite"); !errors.Is(err, ErrWrongFormat) {
		t.Fatalf("expected ErrWrongFormat on read, got %v", err)
	}
}

func TestOpenPicksStoreByFormat(t *testing.T) {
	if got := FormatFor("x/tasks.YAML"); got != FormatYAML {
		t.Fatalf("got %s, want yaml", got)
	}
	if got := FormatFor("tasks.db"); got != FormatSQLite {
		t.Fatalf("got %s, want sqlite", got)
	}
	store, err := Open(afero.NewMemMapFs(), "/tasks.json", "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := store.(*FileStore); !ok {
		t.Fatalf("expected file store, got %T", store)
	}
	if _, err := Open(afero.NewMemMapFs(), "/tasks.json", "xml"); err == nil {
		t.Fatalf("expected unknown format error")
	}
}
