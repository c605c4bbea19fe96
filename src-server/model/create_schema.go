package model

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
)

type tableSpec struct {
	model       interface{}
	foreignKeys []string
}

// Ownership edges are declared here, so cascades are enforced by sqlite.
var tables = []tableSpec{
	{model: (*User)(nil)},
	{
		model: (*Token)(nil),
		foreignKeys: []string{
			`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`,
		},
	},
	{
		model: (*Gamer)(nil),
		foreignKeys: []string{
			`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`,
		},
	},
	{model: (*GameType)(nil)},
	{
		model: (*Game)(nil),
		foreignKeys: []string{
			`("game_type_id") REFERENCES "game_types" ("id")`,
			`("gamer_id") REFERENCES "gamers" ("id") ON DELETE CASCADE`,
		},
	},
	{
		model: (*Event)(nil),
		foreignKeys: []string{
			`("game_id") REFERENCES "games" ("id") ON DELETE CASCADE`,
			`("organizer_id") REFERENCES "gamers" ("id") ON DELETE CASCADE`,
		},
	},
	{
		model: (*EventGamer)(nil),
		foreignKeys: []string{
			`("event_id") REFERENCES "events" ("id") ON DELETE CASCADE`,
			`("gamer_id") REFERENCES "gamers" ("id") ON DELETE CASCADE`,
		},
	},
}

func CreateSchema(ctx context.Context, db bun.IDB) error {
	if err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, table := range tables {
			query := tx.
				NewCreateTable().
				Model(table.model).
				IfNotExists()
			for _, foreignKey := range table.foreignKeys {
				query = query.ForeignKey(foreignKey)
			}
			if _, err := query.Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("CreateSchema: %w", err)
	}

	return nil
}
