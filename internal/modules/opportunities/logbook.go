package opportunities

import (
	"fmt"
	"os"
	"time"
)

// Logbook is the append-only audit trail of detected opportunities.
// One line per apt asset per evaluation cycle; the file is opened for each
// write and closed right after, and is never read back by the engine.
type Logbook struct {
	path string
}

// NewLogbook creates a new opportunity logbook
func NewLogbook(path string) *Logbook {
	return &Logbook{path: path}
}

// Record appends one detection line with a timestamp
func (l *Logbook) Record(asset string, price float64, at time.Time) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open opportunity log: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s - INFO - Buy opportunity detected - %s at $%.2f\n",
		at.Format("2006-01-02 15:04:05"), asset, price)

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to append to opportunity log: %w", err)
	}

	return nil
}
