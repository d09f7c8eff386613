package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jungle-hr/pulse-match-service/internal/events"
	"github.com/jungle-hr/pulse-match-service/internal/models"
	"github.com/jungle-hr/pulse-match-service/internal/repositories"
	"github.com/jungle-hr/pulse-match-service/internal/validator"
)

// Notifier delivers chat messages to employees. Delivery failures are
// reported to the caller but never retried here.
type Notifier interface {
	NotifyMatch(ctx context.Context, notification *models.MatchNotification) error
	NotifyReminder(ctx context.Context, profile *models.Profile) error
}

// StubNotifier simulates delivery: it waits the configured delay, logs the
// announcement and always reports success. The delay keeps the frontend's
// sending state visible in demos.
type StubNotifier struct {
	delay  time.Duration
	logger *slog.Logger
}

func NewStubNotifier(delay time.Duration, logger *slog.Logger) *StubNotifier {
	return &StubNotifier{delay: delay, logger: logger}
}

func (n *StubNotifier) NotifyMatch(ctx context.Context, notification *models.MatchNotification) error {
	if n.delay > 0 {
		timer := time.NewTimer(n.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	n.logger.Info("Match notification sent",
		"participants", strings.Join(notification.Participants, ", "),
		"activity", notification.Activity,
		"date", notification.Date.Format("2006-01-02"))
	return nil
}

func (n *StubNotifier) NotifyReminder(ctx context.Context, profile *models.Profile) error {
	if n.delay > 0 {
		timer := time.NewTimer(n.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	n.logger.Info("Office day reminder sent", "email", profile.Email)
	return nil
}

// WebhookNotifier posts one chat message per participant to an outbound
// webhook.
type WebhookNotifier struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

func NewWebhookNotifier(url string, logger *slog.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

func (n *WebhookNotifier) NotifyMatch(ctx context.Context, notification *models.MatchNotification) error {
	text := fmt.Sprintf("You have a match! %s on %s at %s.",
		notification.Activity, notification.Date.Format("2006-01-02"), notification.Location)

	for _, email := range notification.Participants {
		payload := models.ChatMessagePayload{
			Email: email,
			Text:  text,
		}
		if err := n.post(ctx, payload); err != nil {
			return err
		}
	}
	return nil
}

func (n *WebhookNotifier) NotifyReminder(ctx context.Context, profile *models.Profile) error {
	return n.post(ctx, models.ChatMessagePayload{
		Email: profile.Email,
		Role:  string(profile.Role),
		Text:  fmt.Sprintf("Reminder: you are expected at the office. See you there, %s!", profile.Name),
	})
}

func (n *WebhookNotifier) post(ctx context.Context, payload models.ChatMessagePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode chat payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook delivery failed: status %d", resp.StatusCode)
	}
	return nil
}

type notificationService struct {
	repo           repositories.Repository
	notifier       Notifier
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
}

func NewNotificationService(repo repositories.Repository, notifier Notifier, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) NotificationService {
	return &notificationService{
		repo:           repo,
		notifier:       notifier,
		eventPublisher: publisher,
		logger:         logger,
		validator:      validator,
	}
}

func (s *notificationService) NotifyMatch(ctx context.Context, req *NotifyMatchRequest) (*NotifyMatchResponse, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	notification := &models.MatchNotification{
		Participants: req.Participants,
		Activity:     req.Activity,
		Date:         date,
		Location:     req.Location,
	}

	// Delivery failure is transient from the caller's point of view. It is
	// reported in the response, never as an error, and never retried.
	if err := s.notifier.NotifyMatch(ctx, notification); err != nil {
		s.logger.Error("Match notification delivery failed", "participants", req.Participants, "error", err)
		return &NotifyMatchResponse{
			Delivered:    false,
			Participants: req.Participants,
			SentAt:       time.Now().UTC(),
		}, nil
	}

	s.publishEvent(ctx, events.EventMatchFound, notification)

	return &NotifyMatchResponse{
		Delivered:    true,
		Participants: req.Participants,
		SentAt:       time.Now().UTC(),
	}, nil
}

func (s *notificationService) SendOfficeDayReminders(ctx context.Context, day string) (int, error) {
	profiles, _, err := s.repo.Profile().List(ctx, nil, repositories.ProfileFilters{
		OfficeDay: &day,
		Limit:     100,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list profiles for reminder: %w", err)
	}

	for _, p := range profiles {
		if err := s.notifier.NotifyReminder(ctx, p); err != nil {
			s.logger.Error("Reminder delivery failed", "email", p.Email, "error", err)
			continue
		}
		s.publishEvent(ctx, events.EventReminderDue, map[string]interface{}{
			"profile_id": p.ID,
			"email":      p.Email,
			"day":        day,
		})
	}

	s.logger.Info("Office day reminders queued", "day", day, "count", len(profiles))
	return len(profiles), nil
}

func (s *notificationService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Error("Failed to publish notification event", "event_type", eventType, "error", err)
	}
}
