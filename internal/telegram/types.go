package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tag1consulting/tag1bot/internal/convert"
	"github.com/tag1consulting/tag1bot/internal/database"
)

type BotConfig struct {
	Token          string
	Debug          bool
	UpdatesTimeout int
}

type Bot struct {
	Bot     *tgbotapi.BotAPI
	Config  BotConfig
	service *convert.Service
	store   *database.Store
}

type Message struct {
	ChatID    int64
	Text      string
	MessageID int
}
