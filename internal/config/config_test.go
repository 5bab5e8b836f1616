package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreMissingFile(t *testing.T) {
	s := &FileStore{Path: filepath.Join(t.TempDir(), "none", "session.json")}
	sess, err := s.Load()
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if sess != Default() {
		t.Fatalf("expected defaults, got %+v", sess)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	s := &FileStore{Path: filepath.Join(t.TempDir(), "state", "session.json")}
	want := Default()
	want.LastVisitedDirectory = "/tmp/fonts"
	want.OutputFormat = "arduino"
	want.Indentation = 4
	want.InvertBits = true
	if err := s.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestFileStoreBadJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(p, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (&FileStore{Path: p}).Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}
