// Package karma tracks keyword karma, for example `foo++` or `bar--`.
package karma

import (
	"fmt"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
)

var karmaRe = regexp.MustCompile(`^[@#]?(\w{2,20})\s*(\+\+|--)$`)

// Adjuster is the slice of the store karma needs.
type Adjuster interface {
	AdjustKarma(name string, delta int) (int, error)
}

// ProcessMessage checks whether text adjusts karma for a word and
// returns the reply when it does. Incrementing your own name is
// penalized with a decrement instead.
func ProcessMessage(store Adjuster, user, text string) (string, bool) {
	m := karmaRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", false
	}

	word := strings.ToLower(m[1])
	increment := m[2] == "++"

	if increment && strings.ToLower(user) == word {
		counter, err := store.AdjustKarma(word, -1)
		if err != nil {
			log.Errorf("failed to adjust karma for %s: %v", word, err)
			return "Sorry, I could not update karma right now.", true
		}
		return fmt.Sprintf("Karma cannot be incremented for yourself, you have been penalized: Karma for `%s` decreased to %d.", word, counter), true
	}

	delta := -1
	if increment {
		delta = 1
	}
	counter, err := store.AdjustKarma(word, delta)
	if err != nil {
		log.Errorf("failed to adjust karma for %s: %v", word, err)
		return "Sorry, I could not update karma right now.", true
	}

	if increment {
		return fmt.Sprintf("Karma for `%s` increased to %d.", word, counter), true
	}
	return fmt.Sprintf("Karma for `%s` decreased to %d.", word, counter), true
}
