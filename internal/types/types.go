package types

// Comparison is the direction of a currency alert. The string values are
// the wire/database form.
type Comparison string

const (
	GreaterThan Comparison = "more"
	LessThan    Comparison = "less"
)

// Audience controls who an alert confirmation addresses.
type Audience int

const (
	AudienceRequester Audience = iota
	AudienceEveryone
)

// ConversionRequest is a parsed one-shot conversion command.
type ConversionRequest struct {
	Amount       float64
	FromCurrency string
	ToCurrency   string
}

// AlertIntent is a parsed alert command, not yet persisted.
type AlertIntent struct {
	Audience     Audience
	FromAmount   float64
	FromCurrency string
	Comparison   Comparison
	ToAmount     float64
	ToCurrency   string
}

// Alert is the persisted form of an AlertIntent.
type Alert struct {
	ID           int64      `json:"id"`
	Channel      string     `json:"channel"`
	User         string     `json:"user"`
	FromCurrency string     `json:"from_currency"`
	FromAmount   float64    `json:"from_amount"`
	Comparison   Comparison `json:"comparison"`
	ToCurrency   string     `json:"to_currency"`
	ToAmount     float64    `json:"to_amount"`
}
