package database

import (
	"database/sql"
	"log"

	"github.com/pkg/errors"
)

// SaveMetric upserts a named counter value so it survives restarts.
func (s *Store) SaveMetric(name string, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO metrics (metric_name, metric_value) VALUES (?, ?)`, name, value)
	return errors.Wrap(err, "failed to save metric")
}

// GetMetric returns a persisted counter value, defaulting to 0 when the
// metric has never been saved.
func (s *Store) GetMetric(name string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value float64
	err := s.db.QueryRow(
		`SELECT metric_value FROM metrics WHERE metric_name = ?`, name).Scan(&value)
	if err == sql.ErrNoRows {
		log.Printf("Metric %s not found in the database, defaulting to 0", name)
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrapf(err, "failed to get metric %s", name)
	}
	return value, nil
}
