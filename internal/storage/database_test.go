package storage

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open() returned an unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNamespaces(t *testing.T) {
	db := openTestDB(t)

	data, err := db.Read("library")
	if err != nil {
		t.Fatalf("Read() returned an unexpected error: %v", err)
	}
	if data != nil {
		t.Fatalf("Expected nil for a missing namespace, but got %q", data)
	}

	if err := db.Write("library", []byte(`[]`)); err != nil {
		t.Fatalf("Write() returned an unexpected error: %v", err)
	}
	if err := db.Write("library", []byte(`[{"id":"x"}]`)); err != nil {
		t.Fatalf("Write() returned an unexpected error: %v", err)
	}
	data, err = db.Read("library")
	if err != nil {
		t.Fatalf("Read() returned an unexpected error: %v", err)
	}
	if string(data) != `[{"id":"x"}]` {
		t.Errorf("Expected the last write to win, but got %q", data)
	}

	other, _ := db.Read("ranges")
	if other != nil {
		t.Errorf("Expected namespaces to be independent, but got %q", other)
	}
}

func TestNamespacesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drill.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() returned an unexpected error: %v", err)
	}
	if err := db.Write("srs", []byte(`{}`)); err != nil {
		t.Fatalf("Write() returned an unexpected error: %v", err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("Open() returned an unexpected error: %v", err)
	}
	defer db.Close()
	data, err := db.Read("srs")
	if err != nil || string(data) != `{}` {
		t.Errorf("Expected stored document after reopen, got %q (err %v)", data, err)
	}
}

func TestSources(t *testing.T) {
	db := openTestDB(t)

	id, err := db.InsertSource("/tmp/packs", "local")
	if err != nil {
		t.Fatalf("InsertSource() returned an unexpected error: %v", err)
	}
	if _, err := db.InsertSource("/tmp/packs", "local"); err == nil {
		t.Error("Expected duplicate path to be rejected")
	}
	if _, err := db.InsertSource("https://example.com/packs.git", "git"); err != nil {
		t.Fatalf("InsertSource() returned an unexpected error: %v", err)
	}

	s, err := db.FindSourceByPath("/tmp/packs")
	if err != nil || s == nil {
		t.Fatalf("FindSourceByPath() = %v, %v", s, err)
	}
	if s.ID != id || s.Type != "local" || s.LastScanned.Valid {
		t.Errorf("Unexpected source %+v", s)
	}

	if err := db.UpdateSourceLastScanned(id); err != nil {
		t.Fatalf("UpdateSourceLastScanned() returned an unexpected error: %v", err)
	}
	s, _ = db.FindSourceByPath("/tmp/packs")
	if !s.LastScanned.Valid {
		t.Error("Expected last_scanned to be set")
	}

	missing, err := db.FindSourceByPath("/nope")
	if err != nil || missing != nil {
		t.Errorf("Expected nil, nil for a missing source, got %v, %v", missing, err)
	}

	if err := db.DeleteSource(id); err != nil {
		t.Fatalf("DeleteSource() returned an unexpected error: %v", err)
	}
	all, err := db.GetAllSources()
	if err != nil {
		t.Fatalf("GetAllSources() returned an unexpected error: %v", err)
	}
	if len(all) != 1 || all[0].Type != "git" {
		t.Errorf("Expected only the git source to remain, got %+v", all)
	}
}
