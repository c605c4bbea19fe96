package route

import (
	"levelup/src-server/model"
)

type GameTypeView struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

type GamerView struct {
	ID       int64  `json:"id"`
	User     int64  `json:"user"`
	FullName string `json:"full_name,omitempty"`
	Bio      string `json:"bio"`
}

type GameView struct {
	ID              int64         `json:"id"`
	Gamer           *GamerView    `json:"gamer"`
	Title           string        `json:"title"`
	Maker           string        `json:"maker"`
	NumberOfPlayers int           `json:"number_of_players"`
	SkillLevel      int           `json:"skill_level"`
	GameType        *GameTypeView `json:"game_type"`
}

// Game as nested in an event: references stay ids.
type EventGameView struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Maker           string `json:"maker"`
	NumberOfPlayers int    `json:"number_of_players"`
	SkillLevel      int    `json:"skill_level"`
	GameType        int64  `json:"game_type"`
	Gamer           int64  `json:"gamer"`
}

// Event as seen by one gamer. Joined is computed per response and never stored.
type EventView struct {
	ID          int64          `json:"id"`
	Game        *EventGameView `json:"game"`
	Organizer   *GamerView     `json:"organizer"`
	Description string         `json:"description"`
	Date        string         `json:"date"`
	Time        string         `json:"time"`
	Attendees   []GamerView    `json:"attendees"`
	Joined      bool           `json:"joined"`
}

func newGameTypeView(gameType *model.GameType) *GameTypeView {
	if gameType == nil {
		return nil
	}
	return &GameTypeView{
		ID:    gameType.ID,
		Label: gameType.Label,
	}
}

func newGamerView(gamer *model.Gamer) *GamerView {
	if gamer == nil {
		return nil
	}
	return &GamerView{
		ID:       gamer.ID,
		User:     gamer.UserID,
		FullName: gamer.FullName(),
		Bio:      gamer.Bio,
	}
}

func newGameView(game *model.Game) GameView {
	return GameView{
		ID:              game.ID,
		Gamer:           newGamerView(game.Gamer),
		Title:           game.Title,
		Maker:           game.Maker,
		NumberOfPlayers: game.NumberOfPlayers,
		SkillLevel:      game.SkillLevel,
		GameType:        newGameTypeView(game.GameType),
	}
}

func newEventView(event *model.Event, viewer *model.Gamer) EventView {
	view := EventView{
		ID:          event.ID,
		Organizer:   newGamerView(event.Organizer),
		Description: event.Description,
		Date:        event.Date,
		Time:        event.Time,
		Attendees:   make([]GamerView, 0, len(event.Attendees)),
	}
	if event.Game != nil {
		view.Game = &EventGameView{
			ID:              event.Game.ID,
			Title:           event.Game.Title,
			Maker:           event.Game.Maker,
			NumberOfPlayers: event.Game.NumberOfPlayers,
			SkillLevel:      event.Game.SkillLevel,
			GameType:        event.Game.GameTypeID,
			Gamer:           event.Game.GamerID,
		}
	}
	for _, attendee := range event.Attendees {
		if attendee != nil {
			view.Attendees = append(view.Attendees, *newGamerView(attendee))
		}
	}
	if viewer != nil {
		view.Joined = model.IsAttending(event, viewer.ID)
	}
	return view
}
