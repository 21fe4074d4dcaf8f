package telegram

import (
	"context"
	"path/filepath"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tag1consulting/tag1bot/internal/convert"
	"github.com/tag1consulting/tag1bot/internal/database"
	"github.com/tag1consulting/tag1bot/internal/types"
)

type fakeQuotes struct {
	rates map[string]float64
}

func (f *fakeQuotes) GetQuote(ctx context.Context, from, to string, amount float64) (float64, error) {
	rate, ok := f.rates[from+"-"+to]
	if !ok {
		return 0, &convert.UnknownCurrencyError{From: from, To: to}
	}
	return rate * amount, nil
}

func newTestBot(t *testing.T, rates map[string]float64) (*Bot, *database.Store) {
	t.Helper()
	store, err := database.Open(filepath.Join(t.TempDir(), "state.sqlite3"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	bot := &Bot{
		service: convert.NewService(&fakeQuotes{rates: rates}, store),
		store:   store,
	}
	return bot, store
}

func update(text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: text,
			Chat: &tgbotapi.Chat{ID: 42, Type: "group"},
			From: &tgbotapi.User{UserName: "alice"},
		},
	}
}

func TestHandleUpdateConvert(t *testing.T) {
	bot, _ := newTestBot(t, map[string]float64{"USD-EUR": 0.9})

	reply := bot.HandleUpdate(context.Background(), update("convert 10 usd to eur"))
	assert.Equal(t, "10 USD is currently 9 EUR.", reply)
}

func TestHandleUpdateConvertUnknownCurrency(t *testing.T) {
	bot, _ := newTestBot(t, nil)

	reply := bot.HandleUpdate(context.Background(), update("convert 10 usd to xyz"))
	assert.Equal(t, "USD and/or XYZ unknown, failed to convert.", reply)
}

func TestHandleUpdateRegistersAlert(t *testing.T) {
	bot, store := newTestBot(t, map[string]float64{"USD-EUR": 0.9})

	reply := bot.HandleUpdate(context.Background(), update("alert me when 100 usd is greater than 95 eur"))
	assert.Equal(t, "I will alert you when 100 USD is worth more than 95 EUR.", reply)

	alerts, err := store.AlertsForChannel("42")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "alice", alerts[0].User)
}

func TestHandleUpdateAlertAlreadyTrue(t *testing.T) {
	bot, store := newTestBot(t, map[string]float64{"USD-EUR": 0.9})

	reply := bot.HandleUpdate(context.Background(), update("alert me when 100 usd is greater than 80 eur"))
	assert.Contains(t, reply, "Silly, 100 USD is already worth more than 80 EUR")

	alerts, err := store.ListAlerts()
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestHandleUpdateKarma(t *testing.T) {
	bot, _ := newTestBot(t, nil)

	reply := bot.HandleUpdate(context.Background(), update("coffee++"))
	assert.Equal(t, "Karma for `coffee` increased to 1.", reply)
}

func TestHandleUpdateAlertList(t *testing.T) {
	bot, store := newTestBot(t, nil)

	reply := bot.HandleUpdate(context.Background(), update("alerts"))
	assert.Equal(t, "No currency alerts are set for this channel.", reply)

	require.NoError(t, store.InsertAlert(alertFixture("42")))
	reply = bot.HandleUpdate(context.Background(), update("alerts"))
	assert.Contains(t, reply, "Armed currency alerts:")
	assert.Contains(t, reply, "USD")
}

func TestHandleUpdateSeen(t *testing.T) {
	bot, _ := newTestBot(t, nil)

	// Plain chatter draws no reply but is recorded.
	reply := bot.HandleUpdate(context.Background(), update("just chatting"))
	assert.Empty(t, reply)

	reply = bot.HandleUpdate(context.Background(), update("seen alice?"))
	assert.Contains(t, reply, "`alice` last seen in 42 saying `just chatting`")
}

func alertFixture(channel string) types.Alert {
	return types.Alert{
		Channel: channel, User: "bob",
		FromCurrency: "USD", FromAmount: 1,
		Comparison: types.GreaterThan,
		ToCurrency: "EUR", ToAmount: 2,
	}
}
