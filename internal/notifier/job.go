package notifier

import (
	"context"
	"fmt"
	"time"

	"pantry-hub/internal/freshness"
	"pantry-hub/internal/metrics"
	"pantry-hub/internal/model"
	"pantry-hub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Job compares each item's freshness yesterday with today and notifies
// every pantry member about items that became expiring soon or expired.
type Job struct {
	items         repository.ItemRepository
	pantries      repository.PantryRepository
	notifications repository.NotificationRepository
	now           func() time.Time
	logger        zerolog.Logger
}

// NewJob creates the daily expiry job.
func NewJob(
	items repository.ItemRepository,
	pantries repository.PantryRepository,
	notifications repository.NotificationRepository,
	logger zerolog.Logger,
) *Job {
	return &Job{
		items:         items,
		pantries:      pantries,
		notifications: notifications,
		now:           time.Now,
		logger:        logger.With().Str("component", "expiry-job").Logger(),
	}
}

// Run performs one pass and returns how many notifications were written.
// Re-running on the same day writes nothing new.
func (j *Job) Run(ctx context.Context) (int, error) {
	now := j.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// Only these dates can cross a status boundary overnight.
	from := today.AddDate(0, 0, -1)
	to := today.AddDate(0, 0, freshness.SoonThresholdDays)

	items, err := j.items.ListExpiringBetween(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to list expiring items: %w", err)
	}

	members := make(map[string][]uuid.UUID)
	var pending []model.Notification

	for _, item := range items {
		transition := freshness.DailyTransition(item.ExpiryDate, now)
		if !transition.Notifiable() {
			continue
		}

		users, ok := members[item.PantryCode]
		if !ok {
			users, err = j.pantries.Members(ctx, item.PantryCode)
			if err != nil {
				return 0, fmt.Errorf("failed to list members of pantry %s: %w", item.PantryCode, err)
			}
			members[item.PantryCode] = users
		}

		for _, userID := range users {
			pending = append(pending, model.Notification{
				ID:         uuid.New(),
				UserID:     userID,
				PantryCode: item.PantryCode,
				ItemID:     item.ID,
				ItemName:   item.Name,
				Status:     transition.To,
				ExpiryDate: item.ExpiryDate,
				CreatedAt:  now.UTC(),
			})
		}

		j.logger.Debug().
			Str("pantry_code", item.PantryCode).
			Str("item_id", item.ID.String()).
			Str("from", string(transition.From)).
			Str("to", string(transition.To)).
			Int("recipients", len(users)).
			Msg("item changed status")
	}

	if len(pending) == 0 {
		j.logger.Info().Int("candidates", len(items)).Msg("no status changes today")
		return 0, nil
	}

	// Written per status so the counters reflect rows actually inserted.
	groups := groupByStatus(pending)
	created := 0
	for _, status := range []freshness.Status{freshness.StatusExpiringSoon, freshness.StatusExpired} {
		batch := groups[status]
		if len(batch) == 0 {
			continue
		}
		n, err := j.notifications.CreateBatch(ctx, batch)
		created += n
		metrics.AddNotifications(string(status), n)
		if err != nil {
			return created, fmt.Errorf("failed to write notifications: %w", err)
		}
	}

	j.logger.Info().
		Int("candidates", len(items)).
		Int("pending", len(pending)).
		Int("created", created).
		Msg("expiry notifications written")

	return created, nil
}

func groupByStatus(notifications []model.Notification) map[freshness.Status][]model.Notification {
	groups := make(map[freshness.Status][]model.Notification)
	for _, n := range notifications {
		groups[n.Status] = append(groups[n.Status], n)
	}
	return groups
}
