package practice

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/samber/lo"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
)

// restore adopts the persisted snapshot when it belongs to this user and
// only references loaded words. Anything else is discarded.
func (c *Controller) restore(ctx context.Context) bool {
	payload, err := c.snapshots.Load(ctx, c.userID)
	if errors.Is(err, domain.ErrNotFound) {
		return false
	}
	if err != nil {
		c.log.WarnContext(ctx, "read practice snapshot",
			slog.String("user_id", c.userID.String()),
			slog.String("error", err.Error()),
		)
		return false
	}

	snap, err := decodeSnapshot(payload, c.defaults)
	if err != nil {
		c.discard(ctx, "malformed", err)
		return false
	}
	if snap.UserID != c.userID {
		c.discard(ctx, "foreign user", nil)
		return false
	}
	if !lo.Every(lo.Keys(c.items), snap.Queue) {
		c.discard(ctx, "unknown words", nil)
		return false
	}
	if len(snap.Queue) == 0 && snap.TotalAttempts > 0 {
		c.discard(ctx, "exhausted", nil)
		return false
	}

	c.settings = Settings{
		Direction:    snap.Direction,
		Order:        snap.Order,
		AllowReguess: snap.AllowReguess,
	}
	c.queue = slices.Clone(snap.Queue)
	c.correct = snap.CorrectCount
	c.attempts = snap.TotalAttempts
	c.mistakes = slices.Clone(snap.Mistakes)
	c.last = nil
	if snap.LastCheck != nil && len(c.queue) > 0 && snap.LastCheck.WordID == c.queue[0] {
		last := *snap.LastCheck
		c.last = &last
	}
	return true
}

func (c *Controller) discard(ctx context.Context, reason string, cause error) {
	attrs := []any{
		slog.String("user_id", c.userID.String()),
		slog.String("reason", reason),
	}
	if cause != nil {
		attrs = append(attrs, slog.String("error", cause.Error()))
	}
	c.log.WarnContext(ctx, "discarding practice snapshot", attrs...)
	c.deleteSnapshot(ctx)
}

// persist writes the full session state. Failures are logged and never
// fail the action that triggered them.
func (c *Controller) persist(ctx context.Context) {
	payload, err := encodeSnapshot(snapshot{
		UserID:        c.userID,
		Queue:         c.queue,
		Direction:     c.settings.Direction,
		Order:         c.settings.Order,
		AllowReguess:  c.settings.AllowReguess,
		CorrectCount:  c.correct,
		TotalAttempts: c.attempts,
		Mistakes:      c.mistakes,
		LastCheck:     c.last,
		SavedAt:       c.clock.Now(),
	})
	if err == nil {
		err = c.snapshots.Save(ctx, c.userID, payload)
	}
	if err != nil {
		c.log.WarnContext(ctx, "save practice snapshot",
			slog.String("user_id", c.userID.String()),
			slog.String("error", err.Error()),
		)
	}
}

func (c *Controller) deleteSnapshot(ctx context.Context) {
	if err := c.snapshots.Delete(ctx, c.userID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		c.log.WarnContext(ctx, "delete practice snapshot",
			slog.String("user_id", c.userID.String()),
			slog.String("error", err.Error()),
		)
	}
}
