package model

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func eventExists(ctx context.Context, db bun.IDB, eventID int64) error {
	exists, err := db.NewSelect().
		Model((*Event)(nil)).
		Where("id = ?", eventID).
		Exists(ctx)
	switch {
	case err != nil:
		return err
	case !exists:
		return fmt.Errorf("event %d: %w", eventID, ErrNotFound)
	}
	return nil
}

// Add the gamer to the event's attendees. Joining twice is a no-op.
func Join(ctx context.Context, db bun.IDB, eventID int64, gamerID int64) error {
	if err := eventExists(ctx, db, eventID); err != nil {
		return fmt.Errorf("Join: %w", err)
	}
	if _, err := db.NewInsert().
		Model(&EventGamer{EventID: eventID, GamerID: gamerID}).
		On("CONFLICT DO NOTHING").
		Exec(ctx); err != nil {
		return fmt.Errorf("Join: %w", err)
	}
	return nil
}

// Remove the gamer from the event's attendees. Not attending is not an error.
func Leave(ctx context.Context, db bun.IDB, eventID int64, gamerID int64) error {
	if err := eventExists(ctx, db, eventID); err != nil {
		return fmt.Errorf("Leave: %w", err)
	}
	if _, err := db.NewDelete().
		Model((*EventGamer)(nil)).
		Where("event_id = ?", eventID).
		Where("gamer_id = ?", gamerID).
		Exec(ctx); err != nil {
		return fmt.Errorf("Leave: %w", err)
	}
	return nil
}

// Whether the gamer is among the event's loaded attendees.
func IsAttending(event *Event, gamerID int64) bool {
	if event == nil {
		return false
	}
	for _, attendee := range event.Attendees {
		if attendee != nil && attendee.ID == gamerID {
			return true
		}
	}
	return false
}

func IsAttendingStored(ctx context.Context, db bun.IDB, eventID int64, gamerID int64) (bool, error) {
	exists, err := db.NewSelect().
		Model((*EventGamer)(nil)).
		Where("event_id = ?", eventID).
		Where("gamer_id = ?", gamerID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("IsAttendingStored: %w", err)
	}
	return exists, nil
}

func CountAttendees(ctx context.Context, db bun.IDB, eventID int64) (int, error) {
	count, err := db.NewSelect().
		Model((*EventGamer)(nil)).
		Where("event_id = ?", eventID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("CountAttendees: %w", err)
	}
	return count, nil
}
