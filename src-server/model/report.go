package model

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// One flat row per event, as read by the user events report.
type UserEventRow struct {
	ID          int64  `bun:"id"`
	Description string `bun:"description"`
	Date        string `bun:"date"`
	Time        string `bun:"time"`
	OrganizerID int64  `bun:"organizer_id"`
	GameID      int64  `bun:"game_id"`
	FullName    string `bun:"full_name"`
	GameTitle   string `bun:"game_title"`
}

type OrganizerEvent struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
	GameTitle   string `json:"game_title"`
}

type OrganizerEvents struct {
	OrganizerID int64            `json:"organizer_id"`
	FullName    string           `json:"full_name"`
	Events      []OrganizerEvent `json:"events"`
}

func ListUserEventRows(ctx context.Context, db bun.IDB) ([]UserEventRow, error) {
	rows := make([]UserEventRow, 0)
	if err := db.NewRaw(`
		SELECT
			e.id,
			e.description,
			e."date",
			e."time",
			e.organizer_id,
			e.game_id,
			u.first_name || ' ' || u.last_name AS full_name,
			g.title AS game_title
		FROM events e
		JOIN games g
			ON g.id = e.game_id
		JOIN gamers o
			ON o.id = e.organizer_id
		JOIN users u
			ON u.id = o.user_id
		ORDER BY e.id
	`).Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("ListUserEventRows: %w", err)
	}
	return rows, nil
}

// Fold flat rows into one group per organizer, in first-seen order. Events
// keep the order of the rows.
func GroupEventsByOrganizer(rows []UserEventRow) []OrganizerEvents {
	groups := make([]OrganizerEvents, 0)
	index := make(map[int64]int)
	for _, row := range rows {
		event := OrganizerEvent{
			ID:          row.ID,
			Date:        row.Date,
			Time:        row.Time,
			Description: row.Description,
			GameTitle:   row.GameTitle,
		}
		i, ok := index[row.OrganizerID]
		if !ok {
			i = len(groups)
			index[row.OrganizerID] = i
			groups = append(groups, OrganizerEvents{
				OrganizerID: row.OrganizerID,
				FullName:    row.FullName,
			})
		}
		groups[i].Events = append(groups[i].Events, event)
	}
	return groups
}

func EventsByOrganizer(ctx context.Context, db bun.IDB) ([]OrganizerEvents, error) {
	rows, err := ListUserEventRows(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("EventsByOrganizer: %w", err)
	}
	return GroupEventsByOrganizer(rows), nil
}

// One flat row per game, as read by the user games report.
type UserGameRow struct {
	ID              int64  `bun:"id"`
	Title           string `bun:"title"`
	Maker           string `bun:"maker"`
	NumberOfPlayers int    `bun:"number_of_players"`
	SkillLevel      int    `bun:"skill_level"`
	GamerID         int64  `bun:"gamer_id"`
	FullName        string `bun:"full_name"`
}

type GamerGame struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Maker           string `json:"maker"`
	NumberOfPlayers int    `json:"number_of_players"`
	SkillLevel      int    `json:"skill_level"`
}

type GamerGames struct {
	GamerID  int64       `json:"gamer_id"`
	FullName string      `json:"full_name"`
	Games    []GamerGame `json:"games"`
}

func ListUserGameRows(ctx context.Context, db bun.IDB) ([]UserGameRow, error) {
	rows := make([]UserGameRow, 0)
	if err := db.NewRaw(`
		SELECT
			g.id,
			g.title,
			g.maker,
			g.number_of_players,
			g.skill_level,
			g.gamer_id,
			u.first_name || ' ' || u.last_name AS full_name
		FROM games g
		JOIN gamers gr
			ON gr.id = g.gamer_id
		JOIN users u
			ON u.id = gr.user_id
		ORDER BY g.id
	`).Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("ListUserGameRows: %w", err)
	}
	return rows, nil
}

func GroupGamesByGamer(rows []UserGameRow) []GamerGames {
	groups := make([]GamerGames, 0)
	index := make(map[int64]int)
	for _, row := range rows {
		i, ok := index[row.GamerID]
		if !ok {
			i = len(groups)
			index[row.GamerID] = i
			groups = append(groups, GamerGames{
				GamerID:  row.GamerID,
				FullName: row.FullName,
			})
		}
		groups[i].Games = append(groups[i].Games, GamerGame{
			ID:              row.ID,
			Title:           row.Title,
			Maker:           row.Maker,
			NumberOfPlayers: row.NumberOfPlayers,
			SkillLevel:      row.SkillLevel,
		})
	}
	return groups
}

func GamesByGamer(ctx context.Context, db bun.IDB) ([]GamerGames, error) {
	rows, err := ListUserGameRows(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("GamesByGamer: %w", err)
	}
	return GroupGamesByGamer(rows), nil
}
