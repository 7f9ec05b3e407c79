package store

import (
	"encoding/json"
	"event-scanner-service/model"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
)

// Store persists event records as an indented JSON array in a single file.
// The file is owned by one process at a time: read once at start, written
// once at the end of a scan.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted collection. A missing or malformed file is an
// empty starting collection, never an error.
func (s *Store) Load() []model.EventRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[INFO] Data file does not exist, starting fresh: %s", s.path)
		} else {
			log.Printf("[ERROR] Failed to read data file %s: %v", s.path, err)
		}
		return nil
	}

	var events []model.EventRecord
	if err := json.Unmarshal(data, &events); err != nil {
		log.Printf("[ERROR] Failed to parse data file %s, treating as empty: %v", s.path, err)
		return nil
	}

	return events
}

// Save overwrites the whole file, creating the parent directory if missing.
// The write goes through a temp file and rename so a crash mid-write leaves
// the previous contents intact.
func (s *Store) Save(events []model.EventRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal events: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".events-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write events: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace data file: %w", err)
	}

	log.Printf("[INFO] Saved %d events to %s", len(events), s.path)
	return nil
}

// Merge combines existing and incoming records, deduplicating by comment id.
// On collision the incoming record replaces the existing one wholesale. The
// result is sorted by extraction time descending; records with a missing
// extraction time sort last.
func Merge(existing, incoming []model.EventRecord) []model.EventRecord {
	byID := make(map[string]model.EventRecord, len(existing)+len(incoming))
	for _, event := range existing {
		byID[event.CommentID] = event
	}
	for _, event := range incoming {
		byID[event.CommentID] = event
	}

	merged := make([]model.EventRecord, 0, len(byID))
	for _, event := range byID {
		merged = append(merged, event)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].ExtractedAt > merged[j].ExtractedAt
	})

	return merged
}
