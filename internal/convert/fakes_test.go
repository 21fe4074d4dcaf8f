package convert

import (
	"context"

	"github.com/tag1consulting/tag1bot/internal/types"
)

// fakeQuotes serves rates from a map keyed by FROM-TO. Missing pairs are
// reported as unknown currencies; a non-nil err fails every lookup.
type fakeQuotes struct {
	rates map[string]float64
	err   error
	calls int
}

func (f *fakeQuotes) GetQuote(ctx context.Context, from, to string, amount float64) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	rate, ok := f.rates[from+"-"+to]
	if !ok {
		return 0, &UnknownCurrencyError{From: from, To: to}
	}
	return rate * amount, nil
}

type fakeStore struct {
	alerts  []types.Alert
	nextID  int64
	listErr error
}

func (f *fakeStore) InsertAlert(a types.Alert) error {
	f.nextID++
	a.ID = f.nextID
	f.alerts = append(f.alerts, a)
	return nil
}

func (f *fakeStore) ListAlerts() ([]types.Alert, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]types.Alert(nil), f.alerts...), nil
}

func (f *fakeStore) DeleteAlert(id int64) error {
	for i, a := range f.alerts {
		if a.ID == id {
			f.alerts = append(f.alerts[:i], f.alerts[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeNotifier struct {
	channels []string
	texts    []string
}

func (f *fakeNotifier) PostText(channel, text string) error {
	f.channels = append(f.channels, channel)
	f.texts = append(f.texts, text)
	return nil
}
