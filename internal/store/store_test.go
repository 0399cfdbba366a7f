package store

import (
	"path/filepath"
	"testing"
)

// stores returns one instance of every Store implementation, named for
// subtests.
func stores(t *testing.T) map[string]Store {
	t.Helper()

	sq, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { sq.Close() })

	return map[string]Store{
		"file":   NewFileStore(filepath.Join(t.TempDir(), "data")),
		"sqlite": sq,
	}
}

type testDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			in := testDoc{Name: "ada", Count: 3}
			if err := s.Save("users", "u-1", in); err != nil {
				t.Fatalf("save: %v", err)
			}

			var out testDoc
			ok, err := s.Load("users", "u-1", &out)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if !ok {
				t.Fatal("document not found after save")
			}
			if out != in {
				t.Errorf("loaded %+v, want %+v", out, in)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			var out testDoc
			ok, err := s.Load("users", "nope", &out)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if ok {
				t.Error("missing document reported as found")
			}
		})
	}
}

func TestSaveOverwrites(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Save("users", "u-1", testDoc{Name: "old"}); err != nil {
				t.Fatalf("save: %v", err)
			}
			if err := s.Save("users", "u-1", testDoc{Name: "new"}); err != nil {
				t.Fatalf("save: %v", err)
			}

			var out testDoc
			if _, err := s.Load("users", "u-1", &out); err != nil {
				t.Fatalf("load: %v", err)
			}
			if out.Name != "new" {
				t.Errorf("name = %q, want %q", out.Name, "new")
			}
		})
	}
}

func TestDelete(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Save("users", "u-1", testDoc{Name: "ada"}); err != nil {
				t.Fatalf("save: %v", err)
			}

			ok, err := s.Delete("users", "u-1")
			if err != nil {
				t.Fatalf("delete: %v", err)
			}
			if !ok {
				t.Error("delete of existing document reported false")
			}

			ok, err = s.Delete("users", "u-1")
			if err != nil {
				t.Fatalf("second delete: %v", err)
			}
			if ok {
				t.Error("delete of missing document reported true")
			}

			var out testDoc
			found, err := s.Load("users", "u-1", &out)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if found {
				t.Error("document still present after delete")
			}
		})
	}
}

func TestOpenModes(t *testing.T) {
	s, err := Open("local", t.TempDir(), "")
	if err != nil {
		t.Fatalf("open local: %v", err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Errorf("local mode = %T, want *FileStore", s)
	}

	s, err = Open("sqlite", "", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*SQLiteStore); !ok {
		t.Errorf("sqlite mode = %T, want *SQLiteStore", s)
	}

	if _, err := Open("cloud", "", ""); err == nil {
		t.Error("unknown mode should error")
	}
}

func TestFrameworkSummaryLifecycle(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, _ := LoadFrameworkSummary(s, "tr-1"); ok {
				t.Fatal("summary present before save")
			}

			in := FrameworkSummary{Framework: "cognitive behavioral therapy", Summary: "focus on avoidance"}
			if err := SaveFrameworkSummary(s, "tr-1", in); err != nil {
				t.Fatalf("save: %v", err)
			}

			fs, ok, err := LoadFrameworkSummary(s, "tr-1")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if !ok || fs == nil {
				t.Fatal("summary not found after save")
			}
			if *fs != in {
				t.Errorf("loaded %+v, want %+v", *fs, in)
			}

			ok, err = DeleteFrameworkSummary(s, "tr-1")
			if err != nil {
				t.Fatalf("delete: %v", err)
			}
			if !ok {
				t.Error("delete reported false for stored summary")
			}
		})
	}
}
