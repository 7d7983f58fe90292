package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadMissingCollection(t *testing.T) {
	s := New(t.TempDir())
	_, err := s.Read("properties")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	payload := []byte(`[{"id":"1"}]`)

	if err := s.Write("properties", payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("properties")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Read = %s, want %s", got, payload)
	}
}

func TestWriteOverwrites(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Write("reviews", []byte(`["old"]`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Write("reviews", []byte(`["new"]`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("reviews")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != `["new"]` {
		t.Errorf("Read = %s, want [\"new\"]", got)
	}
}

func TestWriteCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := New(dir)
	if err := s.Write("approvals", []byte(`{}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "approvals.json")); err != nil {
		t.Errorf("collection file missing: %v", err)
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := s.Write("properties", []byte(`[]`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "properties.json" {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("unexpected files: %v", names)
	}
}
