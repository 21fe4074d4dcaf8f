// Package seen tracks when each user was last seen, and answers
// questions like `seen nnewton?`.
package seen

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/tag1consulting/tag1bot/internal/database"
)

var seenRe = regexp.MustCompile(`(?i)^seen (\w{1,42})\??$`)

// Recorder is the slice of the store seen tracking needs.
type Recorder interface {
	LastSeen(user string) (*database.Seen, error)
	RecordSeen(user, channel, text string, ts int64, private bool) error
}

// Observe records that user just said text in channel and, when the text
// asks about another user, returns the answer.
func Observe(store Recorder, user, channel, text string, private bool) (string, bool) {
	trimmed := strings.TrimSpace(text)

	var reply string
	var asked bool
	if m := seenRe.FindStringSubmatch(trimmed); m != nil {
		reply = lookup(store, strings.ToLower(m[1]))
		asked = true
	}

	// Either way, record that we're seeing this user now.
	if err := store.RecordSeen(strings.ToLower(user), channel, trimmed, time.Now().Unix(), private); err != nil {
		log.Errorf("failed to record seen for %s: %v", user, err)
	}

	return reply, asked
}

func lookup(store Recorder, who string) string {
	last, err := store.LastSeen(who)
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Sprintf("I've never seen `%s`.", who)
	}
	if err != nil {
		log.Errorf("failed to look up seen for %s: %v", who, err)
		return "Sorry, my memory is failing me right now."
	}
	return fmt.Sprintf("`%s` last seen in %s saying `%s` %s.",
		last.User, last.Channel, last.LastSaid, humanize.Time(time.Unix(last.LastSeen, 0)))
}
