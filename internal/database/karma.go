package database

import "github.com/pkg/errors"

// AdjustKarma changes the counter for name by delta, creating the row on
// first mention, and returns the new value.
func (s *Store) AdjustKarma(name string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE karma SET counter = counter + ? WHERE name = ?`, delta, name)
	if err != nil {
		return 0, errors.Wrap(err, "failed to adjust karma")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := s.db.Exec(`INSERT INTO karma (name, counter) VALUES (?, ?)`, name, delta); err != nil {
			return 0, errors.Wrap(err, "failed to insert karma")
		}
	}

	var counter int
	if err := s.db.QueryRow(`SELECT counter FROM karma WHERE name = ?`, name).Scan(&counter); err != nil {
		return 0, errors.Wrap(err, "failed to read karma")
	}
	return counter, nil
}
