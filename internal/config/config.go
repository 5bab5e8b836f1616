package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	stateDirName    = ".fontedit"
	sessionFileName = "session.json"
)

// Session is what the editor remembers between runs. Labels are stored as
// catalog identifiers so a renamed label does not lose the setting.
type Session struct {
	LastVisitedDirectory    string `json:"lastVisitedDirectory,omitempty"`
	LastSourceCodeDirectory string `json:"lastSourceCodeDirectory,omitempty"`
	LastDocumentPath        string `json:"lastDocumentPath,omitempty"`

	OutputFormat string `json:"outputFormat,omitempty"` // format identifier
	Indentation  int    `json:"indentation"`            // 0 is tab, otherwise spaces

	ExportAll             bool   `json:"exportAll"`
	InvertBits            bool   `json:"invertBits"`
	MSBEnabled            bool   `json:"msbEnabled"`
	IncludeLineSpacing    bool   `json:"includeLineSpacing"`
	ShowNonExportedGlyphs bool   `json:"showNonExportedGlyphs"`
	FontArrayName         string `json:"fontArrayName,omitempty"`
}

// Default returns the settings of a first run.
func Default() Session {
	return Session{
		ExportAll:             true,
		MSBEnabled:            true,
		ShowNonExportedGlyphs: true,
	}
}

// Store loads and saves a Session.
type Store interface {
	Load() (Session, error)
	Save(Session) error
}

// FileStore keeps the session as JSON in a single file.
type FileStore struct {
	Path string
}

// DefaultPath returns ~/.fontedit/session.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home: %w", err)
	}
	return filepath.Join(home, stateDirName, sessionFileName), nil
}

// NewFileStore returns a store at DefaultPath.
func NewFileStore() (*FileStore, error) {
	p, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return &FileStore{Path: p}, nil
}

// Load reads the session. A missing file yields Default() and no error.
func (s *FileStore) Load() (Session, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read session: %w", err)
	}
	sess := Default()
	if err := json.Unmarshal(data, &sess); err != nil {
		return Default(), fmt.Errorf("parse session JSON: %w", err)
	}
	return sess, nil
}

// Save writes the session, creating the state directory when needed.
func (s *FileStore) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o644)
}

// MemoryStore keeps the session in memory. Useful when no home directory is
// available and in tests.
type MemoryStore struct {
	Session Session
	Err     error
	Saves   int
}

func (m *MemoryStore) Load() (Session, error) {
	if m.Err != nil {
		return Default(), m.Err
	}
	return m.Session, nil
}

func (m *MemoryStore) Save(s Session) error {
	if m.Err != nil {
		return m.Err
	}
	m.Session = s
	m.Saves++
	return nil
}
