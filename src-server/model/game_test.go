package model_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"levelup/src-server/model"
)

func TestGameValidate(t *testing.T) {
	game := &model.Game{
		Title:      "  ",
		Maker:      strings.Repeat("x", model.GameMakerMaxLength+1),
		GameTypeID: 1,
		GamerID:    1,
	}
	err := game.Validate()

	var fieldErrors model.FieldErrors
	if !errors.As(err, &fieldErrors) {
		t.Fatalf("expected field errors, got %v", err)
	}
	for _, field := range []string{"title", "maker", "number_of_players", "skill_level"} {
		if len(fieldErrors[field]) == 0 {
			t.Errorf("expected an error on %s", field)
		}
	}
	if _, ok := fieldErrors["game_type"]; ok {
		t.Error("game_type is set")
	}
}

func TestGameUnknownReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	game := &model.Game{
		Title:           "Gloomhaven",
		Maker:           "Cephalofair",
		NumberOfPlayers: 4,
		SkillLevel:      4,
		GameTypeID:      404,
		GamerID:         f.owner.ID,
	}
	err := game.Create(ctx, f.db)

	var fieldErrors model.FieldErrors
	if !errors.As(err, &fieldErrors) {
		t.Fatalf("expected field errors, got %v", err)
	}
	if got := fieldErrors["game_type"]; len(got) != 1 || got[0] != `Invalid pk "404" - object does not exist.` {
		t.Errorf("unexpected game_type error: %v", got)
	}
	if game.ID != 0 {
		t.Error("game shouldn't have been inserted")
	}
}

func TestGameUpdateKeepsOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	update := &model.Game{
		ID:              f.game.ID,
		Title:           "Catan: Seafarers",
		Maker:           "Kosmos",
		NumberOfPlayers: 6,
		SkillLevel:      3,
		GameTypeID:      f.gameType.ID,
		GamerID:         f.guest.ID,
	}
	if err := update.Update(ctx, f.db); err != nil {
		t.Fatal(err)
	}

	stored, err := model.GetGame(ctx, f.db, f.game.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Title != "Catan: Seafarers" || stored.NumberOfPlayers != 6 {
		t.Errorf("update not applied: %+v", stored)
	}
	if stored.GamerID != f.owner.ID {
		t.Errorf("owner changed to %d", stored.GamerID)
	}
	if stored.GameType == nil || stored.GameType.Label != "Board Game" {
		t.Error("game type relation not loaded")
	}

	// case: unknown game
	update.ID = 9999
	if err := update.Update(ctx, f.db); !model.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestListGamesByType(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	if err := model.SeedGameTypes(ctx, f.db, []string{"Board Game", "Card Game"}); err != nil {
		t.Fatal(err)
	}
	gameTypes, err := model.ListGameTypes(ctx, f.db)
	if err != nil {
		t.Fatal(err)
	}
	if len(gameTypes) != 2 {
		t.Fatalf("seeding twice should not duplicate labels, got %d types", len(gameTypes))
	}
	cardGame := gameTypes[1]

	uno := &model.Game{
		Title:           "Uno",
		Maker:           "Mattel",
		NumberOfPlayers: 8,
		SkillLevel:      1,
		GameTypeID:      cardGame.ID,
		GamerID:         f.guest.ID,
	}
	if err := uno.Create(ctx, f.db); err != nil {
		t.Fatal(err)
	}

	all, err := model.ListGames(ctx, f.db, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 games, got %d", len(all))
	}

	cards, err := model.ListGames(ctx, f.db, &cardGame.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(cards) != 1 || cards[0].Title != "Uno" {
		t.Errorf("unexpected filtered games: %+v", cards)
	}

	unknown := int64(9999)
	none, err := model.ListGames(ctx, f.db, &unknown)
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("expected no games, got %d", len(none))
	}
}

func TestDeleteGameCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	if err := model.Join(ctx, f.db, f.event.ID, f.guest.ID); err != nil {
		t.Fatal(err)
	}

	if err := model.DeleteGame(ctx, f.db, f.game.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := model.GetEvent(ctx, f.db, f.event.ID); !model.IsNotFound(err) {
		t.Errorf("event should be gone with its game, got %v", err)
	}
	if attending, err := model.IsAttendingStored(ctx, f.db, f.event.ID, f.guest.ID); err != nil || attending {
		t.Errorf("attendance should be gone with its event: %v", err)
	}

	// case: deleting again
	if err := model.DeleteGame(ctx, f.db, f.game.ID); !model.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}
