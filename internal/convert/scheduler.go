package convert

import (
	"context"
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"

	"github.com/tag1consulting/tag1bot/internal/metrics"
)

// Scheduler is the perpetual background alert processor. Each pass loads
// every armed alert, quotes each distinct currency pair at most once,
// fires and deletes satisfied alerts, then sleeps for a duration that
// grows with the number of pairs quoted.
type Scheduler struct {
	store    AlertStore
	quotes   QuoteClient
	notifier Notifier
}

func NewScheduler(store AlertStore, quotes QuoteClient, notifier Notifier) *Scheduler {
	return &Scheduler{store: store, quotes: quotes, notifier: notifier}
}

// Run processes alerts until ctx is cancelled. A failing pair or record
// never stops a pass; it is simply retried on the next one.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		pairs := s.runPass(ctx)
		wait := sleepFor(pairs)
		log.Infof("currency alert pass complete (%d pairs), sleeping %s", pairs, wait)
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

// runPass executes one LOADING/FETCHING/EVALUATING cycle and returns the
// number of distinct pairs queried, counting failed lookups.
func (s *Scheduler) runPass(ctx context.Context) int {
	alerts, err := s.store.ListAlerts()
	if err != nil {
		log.Errorf("failed to load alerts: %v", err)
		return 0
	}

	// Rates fetched this pass, keyed by FROM-TO pair. A pair that failed
	// once is not retried until the next pass.
	rates := make(map[string]float64)
	failed := make(map[string]bool)

	for _, alert := range alerts {
		pair := pairKey(alert.FromCurrency, alert.ToCurrency)
		if _, ok := rates[pair]; !ok && !failed[pair] {
			rate, err := s.quotes.GetQuote(ctx, alert.FromCurrency, alert.ToCurrency, 1.0)
			if err != nil {
				log.Errorf("currency lookup error for %s: %v", pair, err)
				failed[pair] = true
			} else {
				rates[pair] = rate
			}
		}

		rate, ok := rates[pair]
		if !ok {
			// Lookup failed above; leave the alert armed for next pass.
			log.Debugf("skipping alert this pass: %s", spew.Sdump(alert))
			continue
		}

		observed := alert.FromAmount * rate
		if !conditionMet(alert.Comparison, observed, alert.ToAmount) {
			continue
		}

		text := fmt.Sprintf("%s CURRENCY ALERT: %v %s is now worth %s than %v %s -- it's currently worth %v %s.",
			alert.User, alert.FromAmount, alert.FromCurrency, alert.Comparison,
			alert.ToAmount, alert.ToCurrency, RoundForDisplay(observed), alert.ToCurrency)
		if err := s.notifier.PostText(alert.Channel, text); err != nil {
			log.Errorf("failed to post alert notification to %s: %v", alert.Channel, err)
		}
		if err := s.store.DeleteAlert(alert.ID); err != nil {
			log.Errorf("failed to delete triggered alert %d: %v", alert.ID, err)
		} else {
			metrics.AlertsFired.Inc()
		}
	}

	pairs := len(rates) + len(failed)
	metrics.AlertPairs.Set(float64(pairs))
	return pairs
}

// sleepFor maps the number of distinct pairs quoted in a pass to the
// wait before the next pass, trading alert latency for provider call
// volume as the alert population grows.
func sleepFor(pairs int) time.Duration {
	switch {
	case pairs <= 5:
		return time.Hour
	case pairs <= 10:
		return 2 * time.Hour
	case pairs <= 20:
		return 4 * time.Hour
	case pairs <= 50:
		return 8 * time.Hour
	case pairs <= 100:
		return 12 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// pairKey is the dedup key for one pass worth of quote lookups. Rates
// are directional, so FROM-TO and TO-FROM are distinct keys.
func pairKey(from, to string) string {
	return from + "-" + to
}
