package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/tag1consulting/tag1bot/internal/convert"
	"github.com/tag1consulting/tag1bot/internal/database"
	"github.com/tag1consulting/tag1bot/internal/karma"
	"github.com/tag1consulting/tag1bot/internal/seen"
	"github.com/tag1consulting/tag1bot/lib/helpers"
	"github.com/tag1consulting/tag1bot/lib/translation"
)

// NewBot creates a new telegram bot around the conversion service and
// the state store.
func NewBot(c BotConfig, service *convert.Service, store *database.Store) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(c.Token)
	if err != nil {
		return nil, errors.Wrap(err, "could not create telegram bot")
	}

	bot.Debug = c.Debug

	return &Bot{
		Bot:     bot,
		Config:  c,
		service: service,
		store:   store,
	}, nil
}

// GetUpdatesChannel gets new updates.
func (b *Bot) GetUpdatesChannel() tgbotapi.UpdatesChannel {
	updatesConfig := tgbotapi.NewUpdate(0)
	if b.Config.UpdatesTimeout > 0 {
		updatesConfig.Timeout = b.Config.UpdatesTimeout
	}
	return b.Bot.GetUpdatesChan(updatesConfig)
}

// SendMessage sends a telegram message.
func (b *Bot) SendMessage(m Message) error {
	msg := tgbotapi.NewMessage(m.ChatID, m.Text)
	msg.ReplyToMessageID = m.MessageID
	msg.DisableWebPagePreview = true
	_, err := b.Bot.Send(msg)
	return errors.Wrapf(err, "could not send message to chat %d", m.ChatID)
}

// PostText implements the scheduler's notifier on top of the bot. The
// channel is the decimal chat ID the alert was registered from.
func (b *Bot) PostText(channel, text string) error {
	chatID, err := strconv.ParseInt(channel, 10, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid channel %q", channel)
	}
	return b.SendMessage(Message{ChatID: chatID, Text: text})
}

// HandleUpdate routes one inbound message through the speculative
// parsers and returns the reply text, or "" when the message asks
// nothing of the bot.
func (b *Bot) HandleUpdate(ctx context.Context, u tgbotapi.Update) string {
	msg := u.Message
	text := strings.TrimSpace(msg.Text)
	user := username(msg)
	channel := strconv.FormatInt(msg.Chat.ID, 10)

	if msg.IsCommand() {
		switch msg.Command() {
		case "start", "help":
			return translation.Translate("Ask me things like `convert 10 usd to eur`, `alert me when 1 btc is more than 100000 usd`, `word++`, `seen somebody?` or `alerts`.")
		}
		return ""
	}

	// Every message updates the last-seen record, and may itself be a
	// `seen somebody?` question; the answer is used only when nothing
	// else matches.
	seenReply, seenAsked := seen.Observe(b.store, user, channel, text, msg.Chat.IsPrivate())

	// First test if this is a request to convert currency.
	if req, ok := convert.ParseConvert(text); ok {
		reply, err := b.service.Convert(ctx, req)
		if err != nil {
			log.Errorf("conversion failed for %s-%s: %v", req.FromCurrency, req.ToCurrency, err)
			return convert.UserMessage(err)
		}
		return reply
	}

	// Otherwise, test if this is a request to set an alert.
	if intent, ok := convert.ParseAlert(text); ok {
		outcome, err := b.service.RegisterAlert(ctx, intent, channel, user)
		if err != nil {
			log.Errorf("alert registration failed for %s-%s: %v", intent.FromCurrency, intent.ToCurrency, err)
			return convert.UserMessage(err)
		}
		return convert.AlertReply(intent, outcome)
	}

	if strings.EqualFold(text, "alerts") {
		return b.alertList(channel)
	}

	if reply, ok := karma.ProcessMessage(b.store, user, text); ok {
		return reply
	}

	if seenAsked {
		return seenReply
	}
	return ""
}

// alertList summarizes the armed alerts registered in this channel.
func (b *Bot) alertList(channel string) string {
	alerts, err := b.store.AlertsForChannel(channel)
	if err != nil {
		log.Errorf("failed to list alerts for channel %s: %v", channel, err)
		return "Sorry, I could not look up alerts right now."
	}
	if len(alerts) == 0 {
		return "No currency alerts are set for this channel."
	}

	var sb strings.Builder
	sb.WriteString("Armed currency alerts:\n")
	for _, a := range alerts {
		fmt.Fprintf(&sb, "- %s %s worth %s than %s %s (set by %s)\n",
			helpers.FormatAmount(a.FromAmount), a.FromCurrency, a.Comparison,
			helpers.FormatAmount(a.ToAmount), a.ToCurrency, a.User)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func username(m *tgbotapi.Message) string {
	if m.From == nil {
		return "unknown"
	}
	if m.From.UserName != "" {
		return m.From.UserName
	}
	return strings.TrimSpace(m.From.FirstName + " " + m.From.LastName)
}
