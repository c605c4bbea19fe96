package model

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
)

type GameType struct {
	bun.BaseModel `bun:"table:game_types"`

	ID    int64  `bun:"id,pk,autoincrement"`
	Label string `bun:"label,notnull,unique"` // required
}

func GetGameType(ctx context.Context, db bun.IDB, id int64) (*GameType, error) {
	gameType := new(GameType)
	if err := db.NewSelect().
		Model(gameType).
		Where("id = ?", id).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("GetGameType: %w", notFound("game type", id, err))
	}
	return gameType, nil
}

func ListGameTypes(ctx context.Context, db bun.IDB) ([]GameType, error) {
	gameTypes := make([]GameType, 0)
	if err := db.NewSelect().
		Model(&gameTypes).
		Order("id").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("ListGameTypes: %w", err)
	}
	return gameTypes, nil
}

// Insert the labels that don't exist yet; existing ones are left untouched.
func SeedGameTypes(ctx context.Context, db bun.IDB, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	gameTypes := make([]GameType, 0, len(labels))
	for _, label := range labels {
		gameTypes = append(gameTypes, GameType{Label: label})
	}
	if err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(&gameTypes).
			On("CONFLICT (label) DO NOTHING").
			Returning("NULL").
			Exec(ctx)
		return err
	}); err != nil {
		return fmt.Errorf("SeedGameTypes: %w", err)
	}
	return nil
}
