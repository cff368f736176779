package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Snapshot is one timestamped total-portfolio-value record
type Snapshot struct {
	Date  string  `json:"fecha"` // YYYY-MM-DD
	Value float64 `json:"valor"` // Total portfolio value in USD
}

// Store persists the ordered snapshot sequence as a JSON file.
// The sequence is append-only: the file is read fully, one snapshot is
// appended and the whole file is rewritten. Prior entries are never
// mutated or removed.
type Store struct {
	path string
	log  zerolog.Logger
}

// NewStore creates a new history store
func NewStore(path string, log zerolog.Logger) *Store {
	return &Store{
		path: path,
		log:  log.With().Str("store", "history").Logger(),
	}
}

// All returns the full ordered snapshot sequence. A missing or unreadable
// file degrades to an empty sequence.
func (s *Store) All() []Snapshot {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Error().Err(err).Str("path", s.path).Msg("Failed to read history file")
		}
		return []Snapshot{}
	}

	var snapshots []Snapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("Failed to parse history file")
		return []Snapshot{}
	}

	return snapshots
}

// Append adds one snapshot to the end of the sequence
func (s *Store) Append(snapshot Snapshot) error {
	snapshots := s.All()
	snapshots = append(snapshots, snapshot)

	data, err := json.MarshalIndent(snapshots, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".historial-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write history: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace history file: %w", err)
	}

	return nil
}
