package convert

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/tag1consulting/tag1bot/internal/types"
)

// QuoteClient fetches a spot quote for an ordered currency pair from the
// remote quote service. Passing amount 1.0 yields the unit rate.
type QuoteClient interface {
	GetQuote(ctx context.Context, from, to string, amount float64) (float64, error)
}

// AlertStore persists currency alert records.
type AlertStore interface {
	InsertAlert(alert types.Alert) error
	ListAlerts() ([]types.Alert, error)
	DeleteAlert(id int64) error
}

// Notifier delivers a message to a chat channel. Delivery is
// fire-and-forget; failures are logged, never retried.
type Notifier interface {
	PostText(channel, text string) error
}

// UnknownCurrencyError means the provider responded but did not
// recognize one or both currency codes.
type UnknownCurrencyError struct {
	From string
	To   string
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("%s and/or %s unknown", e.From, e.To)
}

// AlertOutcome reports the result of an alert registration attempt.
type AlertOutcome struct {
	// AlreadyTrue is set when the requested condition already holds, in
	// which case nothing was persisted and Current carries the observed
	// value.
	AlreadyTrue bool
	Current     float64
}

// Service answers one-shot conversion requests and validates and
// persists new alerts.
type Service struct {
	quotes QuoteClient
	store  AlertStore
}

func NewService(quotes QuoteClient, store AlertStore) *Service {
	return &Service{quotes: quotes, store: store}
}

// Convert fetches the unit rate for the requested pair and formats a
// reply sentence with the display-rounded converted value.
func (s *Service) Convert(ctx context.Context, req types.ConversionRequest) (string, error) {
	rate, err := s.quotes.GetQuote(ctx, req.FromCurrency, req.ToCurrency, 1.0)
	if err != nil {
		return "", err
	}
	value := RoundForDisplay(req.Amount * rate)
	return fmt.Sprintf("%v %s is currently %v %s.", req.Amount, req.FromCurrency, value, req.ToCurrency), nil
}

// RegisterAlert persists intent as an armed alert for channel, unless
// the condition is already true, in which case nothing is stored and the
// outcome reports the current value.
func (s *Service) RegisterAlert(ctx context.Context, intent types.AlertIntent, channel, user string) (AlertOutcome, error) {
	rate, err := s.quotes.GetQuote(ctx, intent.FromCurrency, intent.ToCurrency, 1.0)
	if err != nil {
		return AlertOutcome{}, err
	}

	observed := intent.FromAmount * rate
	if conditionMet(intent.Comparison, observed, intent.ToAmount) {
		return AlertOutcome{AlreadyTrue: true, Current: RoundForDisplay(observed)}, nil
	}

	alert := types.Alert{
		Channel:      channel,
		User:         user,
		FromCurrency: intent.FromCurrency,
		FromAmount:   intent.FromAmount,
		Comparison:   intent.Comparison,
		ToCurrency:   intent.ToCurrency,
		ToAmount:     intent.ToAmount,
	}
	if err := s.store.InsertAlert(alert); err != nil {
		return AlertOutcome{}, errors.Wrap(err, "could not save alert")
	}
	return AlertOutcome{}, nil
}

// conditionMet evaluates an alert comparison against an observed value.
func conditionMet(cmp types.Comparison, observed, target float64) bool {
	return (cmp == types.GreaterThan && observed > target) ||
		(cmp == types.LessThan && observed < target)
}

// AlertReply renders the chat confirmation for a registration attempt.
func AlertReply(intent types.AlertIntent, outcome AlertOutcome) string {
	if outcome.AlreadyTrue {
		return fmt.Sprintf("Silly, %v %s is already worth %s than %v %s -- it's currently worth %v %s.",
			intent.FromAmount, intent.FromCurrency, intent.Comparison,
			intent.ToAmount, intent.ToCurrency, outcome.Current, intent.ToCurrency)
	}
	who := " you"
	if intent.Audience == types.AudienceEveryone {
		who = ""
	}
	return fmt.Sprintf("I will alert%s when %v %s is worth %s than %v %s.",
		who, intent.FromAmount, intent.FromCurrency, intent.Comparison,
		intent.ToAmount, intent.ToCurrency)
}

// UserMessage turns a conversion failure into the apology string shown
// to the user instead of a raw error.
func UserMessage(err error) string {
	var unknown *UnknownCurrencyError
	if errors.As(err, &unknown) {
		return fmt.Sprintf("%s and/or %s unknown, failed to convert.", unknown.From, unknown.To)
	}
	return fmt.Sprintf("Sorry, my request to the conversion API failed: %s.", err)
}
