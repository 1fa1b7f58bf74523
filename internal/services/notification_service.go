package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/terraincognita07/bloom/internal/models"
)

var ErrNotificationSenderMissing = errors.New("notification sender missing")

// notificationCheckSpec polls every quarter hour; RunOnce decides what is due.
const notificationCheckSpec = "*/15 * * * *"

type CycleSnapshotSource interface {
	Snapshot(ctx context.Context) (CycleSnapshot, error)
}

type ReminderSender interface {
	Send(ctx context.Context, reminder Reminder) error
}

type NotificationService struct {
	snapshots              CycleSnapshotSource
	sender                 ReminderSender
	location               *time.Location
	now                    func() time.Time
	scheduler              *cron.Cron
	mu                     sync.Mutex
	sentDailyNotifications map[string]time.Time
}

func NewNotificationService(snapshots CycleSnapshotSource, sender ReminderSender, location *time.Location) *NotificationService {
	if location == nil {
		location = time.Local
	}
	return &NotificationService{
		snapshots:              snapshots,
		sender:                 sender,
		location:               location,
		now:                    time.Now,
		sentDailyNotifications: make(map[string]time.Time),
	}
}

func (service *NotificationService) Start(ctx context.Context) error {
	if service.sender == nil {
		return nil
	}

	service.scheduler = cron.New(cron.WithLocation(service.location))
	if _, err := service.scheduler.AddFunc(notificationCheckSpec, func() {
		if _, err := service.RunOnce(ctx); err != nil {
			log.Printf("notifications: run failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule notifications: %w", err)
	}
	service.scheduler.Start()

	go func() {
		<-ctx.Done()
		<-service.scheduler.Stop().Done()
	}()
	return nil
}

// RunOnce delivers today's due reminders once the preferred reminder time has
// passed. It returns how many reminders were sent.
func (service *NotificationService) RunOnce(ctx context.Context) (int, error) {
	if service.sender == nil {
		return 0, ErrNotificationSenderMissing
	}

	snapshot, err := service.snapshots.Snapshot(ctx)
	if err != nil {
		return 0, err
	}

	now := service.now().In(service.location)
	today := DateAtLocation(now, service.location)
	hour, minute, err := ParseReminderTime(snapshot.Preferences.ReminderTime)
	if err != nil {
		return 0, err
	}
	sendAfter := time.Date(today.Year(), today.Month(), today.Day(), hour, minute, 0, 0, service.location)
	if now.Before(sendAfter) {
		return 0, nil
	}

	windows, _ := ComputeWindows(snapshot.Entries, snapshot.Preferences, today)
	due := RemindersDueOn(PlanReminders(windows, snapshot.Preferences, today), today)

	sent := 0
	for _, reminder := range due {
		if !service.shouldSend(reminder.Key(), today) {
			continue
		}
		if err := service.sender.Send(ctx, reminder); err != nil {
			log.Printf("notifications: send %s reminder failed: %v", reminder.Kind, err)
			service.forget(reminder.Key())
			continue
		}
		sent++
	}
	return sent, nil
}

func (service *NotificationService) shouldSend(key string, today time.Time) bool {
	service.mu.Lock()
	defer service.mu.Unlock()

	if sentOn, ok := service.sentDailyNotifications[key]; ok && sameCalendarDay(sentOn, today) {
		return false
	}

	service.sentDailyNotifications[key] = today
	if len(service.sentDailyNotifications) > 500 {
		service.sentDailyNotifications = map[string]time.Time{key: today}
	}
	return true
}

func (service *NotificationService) forget(key string) {
	service.mu.Lock()
	defer service.mu.Unlock()
	delete(service.sentDailyNotifications, key)
}

type LogSender struct{}

func (LogSender) Send(_ context.Context, reminder Reminder) error {
	log.Printf("notifications: %s (sound: %s)", reminder.Message, reminder.Sound)
	return nil
}

type TelegramSender struct {
	botToken string
	chatID   string
	endpoint string
	client   *http.Client
}

func NewTelegramSender(botToken string, chatID string) *TelegramSender {
	return &TelegramSender{
		botToken: botToken,
		chatID:   chatID,
		endpoint: "https://api.telegram.org",
		client: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
}

func (sender *TelegramSender) Send(ctx context.Context, reminder Reminder) error {
	values := url.Values{}
	values.Set("chat_id", sender.chatID)
	values.Set("text", reminder.Message)
	if reminder.Sound == models.SoundNone {
		values.Set("disable_notification", "true")
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(sender.endpoint, "/"), sender.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := sender.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
