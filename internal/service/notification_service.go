package service

import (
	"context"
	"fmt"
	"time"

	"pantry-hub/internal/model"
	"pantry-hub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// notificationListLimit caps how many notifications a single list call returns.
const notificationListLimit = 100

// notificationService implements NotificationService.
type notificationService struct {
	notificationRepo repository.NotificationRepository
	schedules        ScheduleStore
	rescheduler      Rescheduler
	now              func() time.Time
	logger           zerolog.Logger
}

// NewNotificationService creates a new notification service. rescheduler may
// be nil when the scheduler is disabled.
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	schedules ScheduleStore,
	rescheduler Rescheduler,
	logger zerolog.Logger,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		schedules:        schedules,
		rescheduler:      rescheduler,
		now:              time.Now,
		logger:           logger.With().Str("service", "notification").Logger(),
	}
}

// List retrieves the user's notifications, newest first.
func (s *notificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]model.Notification, error) {
	notifications, err := s.notificationRepo.ListByUser(ctx, userID, unreadOnly, notificationListLimit)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list notifications")
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	for i := range notifications {
		notifications[i].Text = notifications[i].Message()
	}
	return notifications, nil
}

// MarkRead marks one of the user's notifications read.
func (s *notificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	found, err := s.notificationRepo.MarkRead(ctx, userID, id, s.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if !found {
		return model.ErrNotificationNotFound
	}
	return nil
}

// GetSchedule returns the daily delivery time.
func (s *notificationService) GetSchedule(ctx context.Context) (model.Schedule, error) {
	schedule, err := s.schedules.Get(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read notification schedule")
		return model.Schedule{}, fmt.Errorf("failed to read notification schedule: %w", err)
	}
	return schedule, nil
}

// SetSchedule stores a new daily delivery time and replaces the armed timer.
func (s *notificationService) SetSchedule(ctx context.Context, schedule model.Schedule) (model.Schedule, error) {
	if schedule.Hour < 0 || schedule.Hour > 23 {
		return model.Schedule{}, model.NewValidationError("hour must be between 0 and 23")
	}
	if schedule.Minute < 0 || schedule.Minute > 59 {
		return model.Schedule{}, model.NewValidationError("minute must be between 0 and 59")
	}

	if err := s.schedules.Set(ctx, schedule); err != nil {
		s.logger.Error().Err(err).Msg("failed to store notification schedule")
		return model.Schedule{}, fmt.Errorf("failed to store notification schedule: %w", err)
	}

	if s.rescheduler != nil {
		s.rescheduler.Reschedule()
	}

	s.logger.Info().
		Int("hour", schedule.Hour).
		Int("minute", schedule.Minute).
		Msg("notification schedule updated")

	return schedule, nil
}
