package model_test

import (
	"context"
	"testing"

	"levelup/src-server/model"

	"github.com/uptrace/bun"
)

type fixture struct {
	db       *bun.DB
	gameType *model.GameType
	owner    *model.Gamer
	guest    *model.Gamer
	game     *model.Game
	event    *model.Event
}

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	db, err := model.OpenDB(model.MemoryDSN)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if err := model.CreateSchema(context.Background(), db); err != nil {
		t.Fatal(err)
	}
	return db
}

// One game type, two gamers, a game owned by the first and an event it organizes.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{db: newTestDB(t)}

	if err := model.SeedGameTypes(ctx, f.db, []string{"Board Game"}); err != nil {
		t.Fatal(err)
	}
	gameTypes, err := model.ListGameTypes(ctx, f.db)
	if err != nil {
		t.Fatal(err)
	}
	f.gameType = &gameTypes[0]

	if f.owner, _, err = model.RegisterGamer(ctx, f.db, "molly", "Molly", "Ringwald", ""); err != nil {
		t.Fatal(err)
	}
	if f.guest, _, err = model.RegisterGamer(ctx, f.db, "steve", "Steve", "Brown", ""); err != nil {
		t.Fatal(err)
	}

	f.game = &model.Game{
		Title:           "Catan",
		Maker:           "Kosmos",
		NumberOfPlayers: 4,
		SkillLevel:      2,
		GameTypeID:      f.gameType.ID,
		GamerID:         f.owner.ID,
	}
	if err := f.game.Create(ctx, f.db); err != nil {
		t.Fatal(err)
	}

	f.event = &model.Event{
		Description: "Friday night Catan",
		Date:        "2024-03-01",
		Time:        "19:00:00",
		GameID:      f.game.ID,
		OrganizerID: f.owner.ID,
	}
	if err := f.event.Create(ctx, f.db); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestJoinLeave(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// case: join twice is a single attendance row
	for i := 0; i < 2; i++ {
		if err := model.Join(ctx, f.db, f.event.ID, f.guest.ID); err != nil {
			t.Fatal(err)
		}
	}
	count, err := model.CountAttendees(ctx, f.db, f.event.ID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected 1 attendee, got %d", count)
	}

	// case: loaded event reports the attendance per gamer
	event, err := model.GetEvent(ctx, f.db, f.event.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !model.IsAttending(event, f.guest.ID) {
		t.Error("guest should be attending")
	}
	if model.IsAttending(event, f.owner.ID) {
		t.Error("owner didn't join")
	}

	// case: leave removes the row, leaving again is fine
	for i := 0; i < 2; i++ {
		if err := model.Leave(ctx, f.db, f.event.ID, f.guest.ID); err != nil {
			t.Fatal(err)
		}
	}
	attending, err := model.IsAttendingStored(ctx, f.db, f.event.ID, f.guest.ID)
	if err != nil {
		t.Fatal(err)
	}
	if attending {
		t.Error("guest should have left")
	}

	// case: unknown event
	if err := model.Join(ctx, f.db, 9999, f.guest.ID); !model.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
	if err := model.Leave(ctx, f.db, 9999, f.guest.ID); !model.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestIsAttendingNilEvent(t *testing.T) {
	if model.IsAttending(nil, 1) {
		t.Error("nil event has no attendees")
	}
}

func TestAttendanceCascade(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	if err := model.Join(ctx, f.db, f.event.ID, f.guest.ID); err != nil {
		t.Fatal(err)
	}

	// case: delete event and attendance rows are gone
	if err := model.DeleteEvent(ctx, f.db, f.event.ID); err != nil {
		t.Fatal(err)
	}
	count, err := f.db.NewSelect().
		Model((*model.EventGamer)(nil)).
		Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("expected attendance to be deleted, %d rows left", count)
	}

	// guest profile is untouched
	if exists, err := model.GamerExists(ctx, f.db, f.guest.ID); err != nil || !exists {
		t.Errorf("guest should still exist: %v", err)
	}
}
