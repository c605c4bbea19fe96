package model_test

import (
	"context"
	"testing"

	"levelup/src-server/model"
)

func TestGroupEventsByOrganizer(t *testing.T) {
	rows := []model.UserEventRow{
		{ID: 1, OrganizerID: 7, FullName: "Molly Ringwald", Description: "a", GameTitle: "Catan"},
		{ID: 2, OrganizerID: 8, FullName: "Steve Brown", Description: "b", GameTitle: "Chess"},
		{ID: 3, OrganizerID: 7, FullName: "Molly Ringwald", Description: "c", GameTitle: "Uno"},
	}
	groups := model.GroupEventsByOrganizer(rows)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].OrganizerID != 7 || groups[0].FullName != "Molly Ringwald" {
		t.Errorf("unexpected first group: %+v", groups[0])
	}
	if len(groups[0].Events) != 2 || groups[0].Events[0].ID != 1 || groups[0].Events[1].ID != 3 {
		t.Errorf("unexpected events for organizer 7: %+v", groups[0].Events)
	}
	if len(groups[1].Events) != 1 || groups[1].Events[0].GameTitle != "Chess" {
		t.Errorf("unexpected events for organizer 8: %+v", groups[1].Events)
	}

	if empty := model.GroupEventsByOrganizer(nil); len(empty) != 0 {
		t.Errorf("expected no groups, got %d", len(empty))
	}
}

func TestEventsByOrganizer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	second := &model.Event{
		Description: "Sunday rematch",
		Date:        "2024-03-03",
		Time:        "15:00:00",
		GameID:      f.game.ID,
		OrganizerID: f.owner.ID,
	}
	if err := second.Create(ctx, f.db); err != nil {
		t.Fatal(err)
	}

	groups, err := model.EventsByOrganizer(ctx, f.db)
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected a single organizer, got %d", len(groups))
	}
	molly := groups[0]
	if molly.FullName != "Molly Ringwald" || molly.OrganizerID != f.owner.ID {
		t.Errorf("unexpected organizer: %+v", molly)
	}
	if len(molly.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(molly.Events))
	}
	first := molly.Events[0]
	if first.Date != "2024-03-01" || first.Time != "19:00:00" || first.GameTitle != "Catan" || first.Description != "Friday night Catan" {
		t.Errorf("unexpected first event: %+v", first)
	}
}

func TestGamesByGamer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	groups, err := model.GamesByGamer(ctx, f.db)
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected a single gamer, got %d", len(groups))
	}
	if groups[0].FullName != "Molly Ringwald" || len(groups[0].Games) != 1 || groups[0].Games[0].Title != "Catan" {
		t.Errorf("unexpected group: %+v", groups[0])
	}
}
