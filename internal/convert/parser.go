package convert

import (
	"strconv"
	"strings"

	"github.com/tag1consulting/tag1bot/internal/types"
)

// The command grammars are matched token by token rather than with
// regular expressions so the comparator families and fallback defaults
// stay independently testable. Both parsers are probed speculatively
// against every inbound message; a miss is not an error.

// ParseConvert matches `convert [from] <amount>? <code> [to] <code>`.
// A missing or unparsable amount silently defaults to 1.0.
func ParseConvert(text string) (types.ConversionRequest, bool) {
	toks := tokenize(text)
	if len(toks) == 0 || toks[0] != "convert" {
		return types.ConversionRequest{}, false
	}
	toks = toks[1:]

	if len(toks) > 0 && toks[0] == "from" {
		toks = toks[1:]
	}

	req := types.ConversionRequest{Amount: 1.0}
	if len(toks) > 0 && isAmount(toks[0]) {
		req.Amount = parseAmount(toks[0])
		toks = toks[1:]
	}

	if len(toks) == 0 || !isCurrencyCode(toks[0]) {
		return types.ConversionRequest{}, false
	}
	req.FromCurrency = strings.ToUpper(toks[0])
	toks = toks[1:]

	if len(toks) > 0 && toks[0] == "to" {
		toks = toks[1:]
	}
	if len(toks) != 1 || !isCurrencyCode(toks[0]) {
		return types.ConversionRequest{}, false
	}
	req.ToCurrency = strings.ToUpper(toks[0])

	return req, true
}

// ParseAlert matches
// `alert [me|all|everyone]? [when|if]? <amount>? <code> [is]? <comparator> <amount>? <code>`.
// The greater comparator family is tried first; the two families share no
// tokens, so at most one can match. Absent audience defaults to the
// requesting user, absent amounts default to 1.0.
func ParseAlert(text string) (types.AlertIntent, bool) {
	toks := tokenize(text)
	if len(toks) == 0 || toks[0] != "alert" {
		return types.AlertIntent{}, false
	}
	toks = toks[1:]

	intent := types.AlertIntent{
		Audience:   types.AudienceRequester,
		FromAmount: 1.0,
		ToAmount:   1.0,
	}

	if len(toks) > 0 {
		switch toks[0] {
		case "me":
			toks = toks[1:]
		case "all", "everyone":
			intent.Audience = types.AudienceEveryone
			toks = toks[1:]
		}
	}
	if len(toks) > 0 && (toks[0] == "when" || toks[0] == "if") {
		toks = toks[1:]
	}

	if len(toks) > 0 && isAmount(toks[0]) {
		intent.FromAmount = parseAmount(toks[0])
		toks = toks[1:]
	}
	if len(toks) == 0 || !isCurrencyCode(toks[0]) {
		return types.AlertIntent{}, false
	}
	intent.FromCurrency = strings.ToUpper(toks[0])
	toks = toks[1:]

	if len(toks) > 0 && toks[0] == "is" {
		toks = toks[1:]
	}

	comparison, rest, ok := parseComparator(toks)
	if !ok {
		return types.AlertIntent{}, false
	}
	intent.Comparison = comparison
	toks = rest

	if len(toks) > 0 && isAmount(toks[0]) {
		intent.ToAmount = parseAmount(toks[0])
		toks = toks[1:]
	}
	if len(toks) != 1 || !isCurrencyCode(toks[0]) {
		return types.AlertIntent{}, false
	}
	intent.ToCurrency = strings.ToUpper(toks[0])

	return intent, true
}

// parseComparator consumes the comparison keyword cluster from the front
// of toks and returns the remaining tokens.
func parseComparator(toks []string) (types.Comparison, []string, bool) {
	if len(toks) == 0 {
		return "", nil, false
	}
	switch toks[0] {
	case "greater", "more":
		return types.GreaterThan, skipThan(toks[1:]), true
	case "gt", ">":
		return types.GreaterThan, toks[1:], true
	case "lesser", "less":
		return types.LessThan, skipThan(toks[1:]), true
	case "lt", "<":
		return types.LessThan, toks[1:], true
	}
	return "", nil, false
}

// skipThan drops a trailing "than" (or the common "then" typo) after a
// worded comparator.
func skipThan(toks []string) []string {
	if len(toks) > 0 && (toks[0] == "than" || toks[0] == "then") {
		return toks[1:]
	}
	return toks
}

func tokenize(text string) []string {
	fields := strings.Fields(strings.TrimSpace(text))
	toks := make([]string, len(fields))
	for i, f := range fields {
		toks[i] = strings.ToLower(f)
	}
	return toks
}

func isCurrencyCode(tok string) bool {
	if len(tok) < 3 || len(tok) > 4 {
		return false
	}
	for _, r := range tok {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// isAmount reports whether tok occupies the amount slot of a command:
// digits and dots only. Whether it parses cleanly is checked later.
func isAmount(tok string) bool {
	for _, r := range tok {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return len(tok) > 0
}

// parseAmount converts an amount token to a float, defaulting to 1.0
// when the token is not a parsable finite number.
func parseAmount(tok string) float64 {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 1.0
	}
	return v
}
