package portfolio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Store persists the ordered purchase sequence as a JSON file.
// The file is read fully and rewritten fully on every change, there are no
// append or partial-write semantics for this store.
type Store struct {
	path string
	log  zerolog.Logger
}

// NewStore creates a new purchase store
func NewStore(path string, log zerolog.Logger) *Store {
	return &Store{
		path: path,
		log:  log.With().Str("store", "portfolio").Logger(),
	}
}

// Load reads all registered purchases. A missing file is an empty portfolio,
// and an unreadable one degrades to empty rather than failing the caller.
func (s *Store) Load() []Purchase {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Error().Err(err).Str("path", s.path).Msg("Failed to read portfolio file")
		}
		return []Purchase{}
	}

	var purchases []Purchase
	if err := json.Unmarshal(data, &purchases); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("Failed to parse portfolio file")
		return []Purchase{}
	}

	return purchases
}

// Add validates and appends a purchase, then rewrites the file
func (s *Store) Add(p Purchase) error {
	if err := p.Validate(); err != nil {
		return err
	}

	purchases := s.Load()
	purchases = append(purchases, p)

	return s.save(purchases)
}

// Update replaces the quantity and amount of the purchase at index
func (s *Store) Update(index int, quantity, amount float64) (Purchase, error) {
	if quantity <= 0 || amount <= 0 {
		return Purchase{}, fmt.Errorf("quantity and amount must be greater than 0")
	}

	purchases := s.Load()
	if index < 0 || index >= len(purchases) {
		return Purchase{}, fmt.Errorf("purchase index %d does not exist", index)
	}

	purchases[index].Quantity = quantity
	purchases[index].Amount = amount

	if err := s.save(purchases); err != nil {
		return Purchase{}, err
	}

	return purchases[index], nil
}

// Remove deletes the purchase at index, preserving the order of the rest
func (s *Store) Remove(index int) (Purchase, error) {
	purchases := s.Load()
	if index < 0 || index >= len(purchases) {
		return Purchase{}, fmt.Errorf("purchase index %d does not exist", index)
	}

	removed := purchases[index]
	purchases = append(purchases[:index], purchases[index+1:]...)

	if err := s.save(purchases); err != nil {
		return Purchase{}, err
	}

	return removed, nil
}

// save rewrites the whole file atomically: write to a temp file in the same
// directory, then rename over the target so a failed write never leaves a
// truncated store behind.
func (s *Store) save(purchases []Purchase) error {
	data, err := json.MarshalIndent(purchases, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode portfolio: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".cartera-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write portfolio: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace portfolio file: %w", err)
	}

	return nil
}
