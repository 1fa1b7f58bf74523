package main

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/bloom/internal/services"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("TZ", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("PORT", "")
	t.Setenv("DEFAULT_LANGUAGE", "")
	t.Setenv("NOTIFICATIONS_ENABLED", "")

	cfg := loadConfig()
	if cfg.location != time.UTC {
		t.Fatalf("expected UTC location, got %s", cfg.location)
	}
	if cfg.port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.port)
	}
	if cfg.defaultLanguage != "en" {
		t.Fatalf("expected default language en, got %q", cfg.defaultLanguage)
	}
	if !cfg.notifications {
		t.Fatal("expected notifications enabled by default")
	}
}

func TestLoadConfigFallsBackToUTCForInvalidTZ(t *testing.T) {
	t.Setenv("TZ", "Mars/Olympus_Mons")
	if got := loadConfig().location; got != time.UTC {
		t.Fatalf("expected UTC fallback, got %s", got)
	}
}

func TestNewReminderSenderRequiresBothTelegramCredentials(t *testing.T) {
	if _, ok := newReminderSender(config{telegramBotToken: "token"}).(services.LogSender); !ok {
		t.Fatal("expected log sender when chat id is missing")
	}
	if _, ok := newReminderSender(config{telegramBotToken: "token", telegramChatID: "42"}).(*services.TelegramSender); !ok {
		t.Fatal("expected telegram sender when both credentials are set")
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{"1": true, "TRUE": true, " on ": true, "no": false, "": false}
	for raw, want := range cases {
		if got := parseBoolEnv(raw); got != want {
			t.Fatalf("parseBoolEnv(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestNewAccessServiceFromPassphrase(t *testing.T) {
	now := time.Date(2024, time.February, 20, 10, 0, 0, 0, time.UTC)
	access, err := newAccessService(config{secretKey: "secret", passphrase: "open sesame"})
	if err != nil {
		t.Fatalf("newAccessService() unexpected error: %v", err)
	}
	if _, err := access.IssueToken("open sesame", services.AccessScopeFeed, now); err != nil {
		t.Fatalf("expected configured passphrase to work: %v", err)
	}
	if _, err := access.IssueToken("other", services.AccessScopeFeed, now); !errors.Is(err, services.ErrAccessPassphraseInvalid) {
		t.Fatalf("expected ErrAccessPassphraseInvalid, got %v", err)
	}
}

func TestNewAccessServicePrefersHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("from-hash"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash passphrase: %v", err)
	}
	access, err := newAccessService(config{passphrase: "ignored", passphraseHash: string(hash)})
	if err != nil {
		t.Fatalf("newAccessService() unexpected error: %v", err)
	}
	if _, err := access.IssueToken("from-hash", "", time.Now()); err != nil {
		t.Fatalf("expected hash passphrase to work: %v", err)
	}

	if _, err := newAccessService(config{passphraseHash: "not-bcrypt"}); err == nil {
		t.Fatal("expected malformed hash to fail")
	}
}
