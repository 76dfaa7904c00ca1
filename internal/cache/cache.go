// Package cache keeps the records of the previous export of a document so
// that artwork of unchanged records is not exported again.
package cache

import (
	"bytes"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Snapshot is the stored result of one export pass.
type Snapshot struct {
	Timestamp int64                      `json:"timestamp"` // unix milliseconds
	JSON      map[string]json.RawMessage `json:"json"`
}

// Store persists snapshots to a single file.
type Store struct {
	path     string
	snapshot *Snapshot
}

// PathFor returns the snapshot file for a document under dir. Documents are
// keyed by the hash of their absolute path.
func PathFor(dir, documentPath string) string {
	abs, err := filepath.Abs(documentPath)
	if err != nil {
		abs = documentPath
	}
	return filepath.Join(dir, "exports", fmt.Sprintf("%x.json", md5.Sum([]byte(abs))))
}

// NewStore creates a store backed by path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the snapshot. A missing file loads an empty snapshot.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.snapshot = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading export cache: %v", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.snapshot = nil
		return fmt.Errorf("error parsing export cache: %v", err)
	}
	s.snapshot = &snap
	return nil
}

// Snapshot returns the loaded snapshot, or nil when none exists.
func (s *Store) Snapshot() *Snapshot {
	return s.snapshot
}

// Unchanged reports whether record encodes to the same JSON as the cached
// record under id.
func (s *Store) Unchanged(id string, record any) bool {
	if s.snapshot == nil {
		return false
	}
	old, ok := s.snapshot.JSON[id]
	if !ok {
		return false
	}
	current, err := json.Marshal(record)
	if err != nil {
		return false
	}

	var a, b bytes.Buffer
	if json.Compact(&a, old) != nil || json.Compact(&b, current) != nil {
		return false
	}
	return bytes.Equal(a.Bytes(), b.Bytes())
}

// Save replaces the snapshot with records and writes it.
func (s *Store) Save(records map[string]any, now time.Time) error {
	snap := &Snapshot{
		Timestamp: now.UnixMilli(),
		JSON:      make(map[string]json.RawMessage, len(records)),
	}
	for id, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("error encoding record %s: %v", id, err)
		}
		snap.JSON[id] = data
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("error encoding export cache: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("error creating cache directory: %v", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("error writing export cache: %v", err)
	}

	s.snapshot = snap
	return nil
}

// Clear removes the snapshot file.
func (s *Store) Clear() error {
	s.snapshot = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
