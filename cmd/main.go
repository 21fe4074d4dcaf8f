package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/tag1consulting/tag1bot/config"
	"github.com/tag1consulting/tag1bot/internal/convert"
	"github.com/tag1consulting/tag1bot/internal/database"
	"github.com/tag1consulting/tag1bot/internal/metrics"
	"github.com/tag1consulting/tag1bot/internal/telegram"
	"github.com/tag1consulting/tag1bot/internal/xe"
	"github.com/tag1consulting/tag1bot/lib/translation"
)

// Counters persisted across restarts, keyed by their metrics table name.
var persistedMetrics = map[string]prometheus.Counter{
	"messages_handled":   metrics.MessagesHandled,
	"commands_processed": metrics.CommandsProcessed,
	"quote_requests":     metrics.QuoteRequests,
	"alerts_fired":       metrics.AlertsFired,
}

func init() {
	config.InitConfig()
	setupLogging()
}

func main() {
	translation.Configure(config.GetString("lang"))

	store, err := database.Open(config.GetString("database_path"))
	if err != nil {
		log.Fatalf("Failed to open state database: %v", err)
	}
	defer store.Close()

	loadMetricsFromDB(store)

	quotes := xe.NewClient(config.GetString("xe_account_id"), config.GetString("xe_api_key"))
	service := convert.NewService(quotes, store)

	bot, err := telegram.NewBot(telegram.BotConfig{
		Token:          config.GetString("telegram_bot_token"),
		Debug:          config.GetBool("debug"),
		UpdatesTimeout: 60,
	}, service, store)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := convert.NewScheduler(store, quotes, bot)
	go scheduler.Run(ctx)
	log.Info("Currency alert scheduler started.")

	c := cron.New()
	if _, err := c.AddFunc("@every 5m", func() { saveMetricsToDB(store) }); err != nil {
		log.Fatalf("Failed to schedule metrics flush: %v", err)
	}
	c.Start()

	go handleUpdates(ctx, bot, bot.GetUpdatesChannel())

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		cancel()
		c.Stop()
		saveMetricsToDB(store)
		log.Println("Metrics saved, shutting down...")
		os.Exit(0)
	}()

	if err := launchMetricsAndHealthServer(config.GetInt("metrics_port")); err != nil {
		log.Fatalf("Failed to start metrics and health server: %v", err)
	}
}

func setupLogging() {
	log.SetLevel(log.InfoLevel)
	if config.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	}
	log.Debug("Starting tag1bot...")
}

func handleUpdates(ctx context.Context, bot *telegram.Bot, updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		if update.Message == nil || update.Message.Text == "" {
			log.Debug("Received non-message update")
			continue
		}

		metrics.MessagesHandled.Inc()
		handleMessage(ctx, bot, update)
	}
}

func handleMessage(ctx context.Context, bot *telegram.Bot, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			stackBuf := make([]byte, 1024)
			stackSize := runtime.Stack(stackBuf, false)
			stackTrace := bytes.TrimRight(stackBuf[:stackSize], "\x00")
			log.Errorf("Recovered from panic: %v\nStack trace: %s", r, stackTrace)
		}
	}()

	reply := bot.HandleUpdate(ctx, update)
	if reply == "" {
		return
	}

	err := bot.SendMessage(telegram.Message{
		ChatID:    update.Message.Chat.ID,
		Text:      reply,
		MessageID: update.Message.MessageID,
	})
	if err != nil {
		log.Errorf("Failed to send message: %v", err)
	} else {
		metrics.CommandsProcessed.Inc()
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func launchMetricsAndHealthServer(port int) error {
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/health", healthCheckHandler)

	log.Infof("Launching metrics and health endpoint on :%d", port)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), http.DefaultServeMux)
}

func loadMetricsFromDB(store *database.Store) {
	for name, counter := range persistedMetrics {
		value, err := store.GetMetric(name)
		if err != nil {
			log.Errorf("Failed to load metric %s: %v", name, err)
			continue
		}
		counter.Add(value)
	}
	log.Println("Metrics loaded from database.")
}

func saveMetricsToDB(store *database.Store) {
	for name, counter := range persistedMetrics {
		if err := store.SaveMetric(name, metrics.Value(counter)); err != nil {
			log.Errorf("Failed to save metric %s: %v", name, err)
		}
	}
	log.Println("Metrics saved to database.")
}
