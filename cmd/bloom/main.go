package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/bloom/internal/api"
	"github.com/terraincognita07/bloom/internal/db"
	"github.com/terraincognita07/bloom/internal/i18n"
	"github.com/terraincognita07/bloom/internal/security"
	"github.com/terraincognita07/bloom/internal/services"
)

type config struct {
	location         *time.Location
	dbPath           string
	dbLogLevel       string
	secretKey        string
	passphrase       string
	passphraseHash   string
	port             string
	defaultLanguage  string
	telegramBotToken string
	telegramChatID   string
	notifications    bool
}

func main() {
	cfg := loadConfig()
	time.Local = cfg.location

	database, err := db.Open(db.Config{Path: cfg.dbPath, Location: cfg.location, LogLevel: cfg.dbLogLevel})
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	access, err := newAccessService(cfg)
	if err != nil {
		log.Fatalf("access init failed: %v", err)
	}

	i18nManager, err := i18n.NewEmbeddedManager(cfg.defaultLanguage)
	if err != nil {
		log.Fatalf("i18n init failed: %v", err)
	}

	handler, err := api.NewHandler(database, cfg.location, i18nManager, access)
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}
	if err := handler.SymptomService().EnsureBuiltinSymptoms(context.Background()); err != nil {
		log.Fatalf("symptom seed failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Bloom",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	if cfg.notifications {
		notifier := services.NewNotificationService(handler.CycleService(), newReminderSender(cfg), cfg.location)
		if err := notifier.Start(lifecycleCtx); err != nil {
			log.Fatalf("notifications init failed: %v", err)
		}
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Bloom listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.port, cfg.dbPath, cfg.location.String())
	if err := app.Listen(":" + cfg.port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func loadConfig() config {
	return config{
		location:         mustLoadLocation(getEnv("TZ", "UTC")),
		dbPath:           getEnv("DB_PATH", filepath.Join("data", "bloom.db")),
		dbLogLevel:       os.Getenv("DB_LOG_LEVEL"),
		secretKey:        os.Getenv("SECRET_KEY"),
		passphrase:       os.Getenv("OWNER_PASSPHRASE"),
		passphraseHash:   strings.TrimSpace(os.Getenv("OWNER_PASSPHRASE_HASH")),
		port:             getEnv("PORT", "8080"),
		defaultLanguage:  getEnv("DEFAULT_LANGUAGE", i18n.LangEN),
		telegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		telegramChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
		notifications:    parseBoolEnv(getEnv("NOTIFICATIONS_ENABLED", "true")),
	}
}

// newAccessService prefers a prepared bcrypt hash over a plain passphrase.
// Missing values are generated for this run only, so tokens and the
// passphrase do not survive a restart.
func newAccessService(cfg config) (*services.AccessService, error) {
	secret := []byte(cfg.secretKey)
	if len(secret) == 0 {
		generated, err := security.RandomSecret(32)
		if err != nil {
			return nil, err
		}
		secret = generated
		log.Printf("SECRET_KEY is not set; issued tokens will stop working after restart")
	}

	if cfg.passphraseHash != "" {
		return services.NewAccessService(secret, []byte(cfg.passphraseHash))
	}

	passphrase := cfg.passphrase
	if passphrase == "" {
		generated, err := services.GeneratePassphrase()
		if err != nil {
			return nil, err
		}
		passphrase = generated
		log.Printf("OWNER_PASSPHRASE is not set; generated passphrase for this run: %s", passphrase)
	}
	hash, err := services.HashPassphrase(passphrase)
	if err != nil {
		return nil, err
	}
	return services.NewAccessService(secret, hash)
}

// newReminderSender delivers through Telegram when both credentials are set
// and falls back to the process log otherwise.
func newReminderSender(cfg config) services.ReminderSender {
	if cfg.telegramBotToken != "" && cfg.telegramChatID != "" {
		return services.NewTelegramSender(cfg.telegramBotToken, cfg.telegramChatID)
	}
	return services.LogSender{}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func parseBoolEnv(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
