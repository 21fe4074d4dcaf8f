package database

import (
	"database/sql"

	"github.com/pkg/errors"
)

// Seen is a user's most recent public message.
type Seen struct {
	User     string
	Channel  string
	LastSaid string
	LastSeen int64
}

// LastSeen returns when user was last seen in a public channel, or
// ErrNotFound when the user has never been recorded.
func (s *Store) LastSeen(user string) (*Seen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var seen Seen
	err := s.db.QueryRow(
		`SELECT user, channel, last_said, last_seen FROM seen WHERE user = ?`, user).
		Scan(&seen.User, &seen.Channel, &seen.LastSaid, &seen.LastSeen)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to query seen")
	}
	return &seen, nil
}

// RecordSeen upserts the last-seen record for user. Messages from
// private chats only advance the private timestamp; the quoted text and
// channel are recorded for public messages alone.
func (s *Store) RecordSeen(user, channel, text string, ts int64, private bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var update string
	var args []interface{}
	if private {
		update = `UPDATE seen SET last_private = ? WHERE user = ?`
		args = []interface{}{ts, user}
	} else {
		update = `UPDATE seen SET channel = ?, last_said = ?, last_seen = ? WHERE user = ?`
		args = []interface{}{channel, text, ts, user}
	}

	res, err := s.db.Exec(update, args...)
	if err != nil {
		return errors.Wrap(err, "failed to update seen")
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	if private {
		_, err = s.db.Exec(
			`INSERT INTO seen (user, channel, last_said, last_seen, last_private) VALUES (?, "", "", 0, ?)`,
			user, ts)
	} else {
		_, err = s.db.Exec(
			`INSERT INTO seen (user, channel, last_said, last_seen) VALUES (?, ?, ?, ?)`,
			user, channel, text, ts)
	}
	return errors.Wrap(err, "failed to insert seen")
}
