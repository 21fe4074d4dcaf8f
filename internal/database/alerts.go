package database

import (
	"log"

	"github.com/pkg/errors"

	"github.com/tag1consulting/tag1bot/internal/types"
)

// InsertAlert persists a new armed alert.
func (s *Store) InsertAlert(a types.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO currency_alert (channel, user, from_currency, from_amount, comparison, to_currency, to_amount)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.Channel, a.User, a.FromCurrency, a.FromAmount, string(a.Comparison), a.ToCurrency, a.ToAmount)
	if err != nil {
		return errors.Wrap(err, "failed to insert alert")
	}

	log.Printf("Alert inserted: channel %s, %v %s %s than %v %s", a.Channel, a.FromAmount, a.FromCurrency, a.Comparison, a.ToAmount, a.ToCurrency)
	return nil
}

// ListAlerts fetches every armed alert.
func (s *Store) ListAlerts() ([]types.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.queryAlerts(
		`SELECT id, channel, user, from_currency, from_amount, comparison, to_currency, to_amount
		 FROM currency_alert ORDER BY id`)
}

// AlertsForChannel fetches the armed alerts set in a specific channel.
func (s *Store) AlertsForChannel(channel string) ([]types.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.queryAlerts(
		`SELECT id, channel, user, from_currency, from_amount, comparison, to_currency, to_amount
		 FROM currency_alert WHERE channel = ? ORDER BY id`, channel)
}

func (s *Store) queryAlerts(query string, args ...interface{}) ([]types.Alert, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query alerts")
	}
	defer rows.Close()

	var alerts []types.Alert
	for rows.Next() {
		var a types.Alert
		var comparison string
		if err := rows.Scan(&a.ID, &a.Channel, &a.User, &a.FromCurrency, &a.FromAmount, &comparison, &a.ToCurrency, &a.ToAmount); err != nil {
			return nil, errors.Wrap(err, "failed to scan alert row")
		}
		a.Comparison = types.Comparison(comparison)
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// DeleteAlert removes a triggered alert.
func (s *Store) DeleteAlert(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM currency_alert WHERE id = ?`, id)
	return errors.Wrap(err, "failed to delete alert")
}
