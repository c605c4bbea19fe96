package model_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"levelup/src-server/model"
)

func TestEventValidate(t *testing.T) {
	event := &model.Event{
		Description: "",
		Date:        "03/01/2024",
		Time:        "7pm",
	}
	err := event.Validate()

	var fieldErrors model.FieldErrors
	if !errors.As(err, &fieldErrors) {
		t.Fatalf("expected field errors, got %v", err)
	}
	for _, field := range []string{"description", "date", "time", "game", "organizer"} {
		if len(fieldErrors[field]) == 0 {
			t.Errorf("expected an error on %s", field)
		}
	}
}

func TestGetEventLoadsRelations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	event, err := model.GetEvent(ctx, f.db, f.event.ID)
	if err != nil {
		t.Fatal(err)
	}
	if event.Game == nil || event.Game.Title != "Catan" {
		t.Error("game relation not loaded")
	}
	if event.Organizer == nil || event.Organizer.FullName() != "Molly Ringwald" {
		t.Error("organizer relation not loaded")
	}
	if len(event.Attendees) != 0 {
		t.Errorf("expected no attendees, got %d", len(event.Attendees))
	}

	if _, err := model.GetEvent(ctx, f.db, 9999); !model.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestEventUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	if err := model.MarkEventsNotified(ctx, f.db, []int64{f.event.ID}); err != nil {
		t.Fatal(err)
	}

	// case: organizer omitted keeps the stored one, new time re-arms the reminder
	update := &model.Event{
		ID:          f.event.ID,
		Description: "Saturday Catan",
		Date:        "2024-03-02",
		Time:        "14:00:00",
		GameID:      f.game.ID,
	}
	if err := update.Update(ctx, f.db); err != nil {
		t.Fatal(err)
	}
	stored, err := model.GetEvent(ctx, f.db, f.event.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.OrganizerID != f.owner.ID {
		t.Errorf("organizer changed to %d", stored.OrganizerID)
	}
	if stored.Description != "Saturday Catan" || stored.Date != "2024-03-02" {
		t.Errorf("update not applied: %+v", stored)
	}
	if stored.NotificationSent {
		t.Error("a rescheduled event should be notified again")
	}

	// case: organizer handed over
	update.OrganizerID = f.guest.ID
	if err := update.Update(ctx, f.db); err != nil {
		t.Fatal(err)
	}
	if stored, err = model.GetEvent(ctx, f.db, f.event.ID); err != nil {
		t.Fatal(err)
	}
	if stored.OrganizerID != f.guest.ID {
		t.Errorf("expected organizer %d, got %d", f.guest.ID, stored.OrganizerID)
	}

	// case: unknown game
	update.GameID = 404
	err = update.Update(ctx, f.db)
	var fieldErrors model.FieldErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors["game"]) == 0 {
		t.Errorf("expected a game field error, got %v", err)
	}
}

func TestListEventsByGame(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	chess := &model.Game{
		Title:           "Chess",
		Maker:           "Unknown",
		NumberOfPlayers: 2,
		SkillLevel:      5,
		GameTypeID:      f.gameType.ID,
		GamerID:         f.guest.ID,
	}
	if err := chess.Create(ctx, f.db); err != nil {
		t.Fatal(err)
	}
	match := &model.Event{
		Description: "Blitz",
		Date:        "2024-03-05",
		Time:        "18:30:00",
		GameID:      chess.ID,
		OrganizerID: f.guest.ID,
	}
	if err := match.Create(ctx, f.db); err != nil {
		t.Fatal(err)
	}

	all, err := model.ListEvents(ctx, f.db, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].ID != f.event.ID {
		t.Errorf("unexpected events: %+v", all)
	}

	chessEvents, err := model.ListEvents(ctx, f.db, &chess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(chessEvents) != 1 || chessEvents[0].Description != "Blitz" {
		t.Errorf("unexpected filtered events: %+v", chessEvents)
	}
}

func TestDeleteOrganizerCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if _, err := f.db.NewDelete().
		Model((*model.Gamer)(nil)).
		Where("id = ?", f.owner.ID).
		Exec(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := model.GetEvent(ctx, f.db, f.event.ID); !model.IsNotFound(err) {
		t.Errorf("event should be gone with its organizer, got %v", err)
	}
	if _, err := model.GetGame(ctx, f.db, f.game.ID); !model.IsNotFound(err) {
		t.Errorf("game should be gone with its owner, got %v", err)
	}
}

func TestUnnotifiedEvents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	events, err := model.ListUnnotifiedEvents(ctx, f.db, []string{"2024-03-01"})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	startsAt, err := events[0].StartsAt(time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC); !startsAt.Equal(want) {
		t.Errorf("expected %v, got %v", want, startsAt)
	}

	if err := model.MarkEventsNotified(ctx, f.db, []int64{events[0].ID}); err != nil {
		t.Fatal(err)
	}
	if events, err = model.ListUnnotifiedEvents(ctx, f.db, []string{"2024-03-01"}); err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Errorf("expected no pending events, got %d", len(events))
	}
}
