package translation

import (
	"strings"

	"github.com/leonelquinteros/gotext"
)

// Configure points gotext at the locale directory for the given
// language. Call once at startup.
func Configure(lang string) {
	gotext.Configure("locales", strings.ToLower(lang), "default")
}

// Translate returns the localized form of msgID.
func Translate(msgID string, vars ...interface{}) string {
	return gotext.Get(msgID, vars...)
}
