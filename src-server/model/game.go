package model

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/uptrace/bun"
)

const (
	GameTitleMaxLength = 50
	GameMakerMaxLength = 50
)

// Catalog entry, owned by the gamer who added it.
type Game struct {
	bun.BaseModel `bun:"table:games"`

	ID              int64  `bun:"id,pk,autoincrement"`
	Title           string `bun:"title,notnull"` // required
	Maker           string `bun:"maker,notnull"` // required
	NumberOfPlayers int    `bun:"number_of_players,notnull"`
	SkillLevel      int    `bun:"skill_level,notnull"`
	GameTypeID      int64  `bun:"game_type_id,notnull"` // required
	GamerID         int64  `bun:"gamer_id,notnull"`     // required

	GameType *GameType `bun:"rel:belongs-to,join:game_type_id=id"`
	Gamer    *Gamer    `bun:"rel:belongs-to,join:gamer_id=id"`
}

func (g *Game) Validate() error {
	fieldErrors := FieldErrors{}
	g.Title = strings.TrimSpace(g.Title)
	g.Maker = strings.TrimSpace(g.Maker)
	switch {
	case g.Title == "":
		fieldErrors.Add("title", "This field may not be blank.")
	case utf8.RuneCountInString(g.Title) > GameTitleMaxLength:
		fieldErrors.Add("title", fmt.Sprintf("Ensure this field has no more than %d characters.", GameTitleMaxLength))
	}
	switch {
	case g.Maker == "":
		fieldErrors.Add("maker", "This field may not be blank.")
	case utf8.RuneCountInString(g.Maker) > GameMakerMaxLength:
		fieldErrors.Add("maker", fmt.Sprintf("Ensure this field has no more than %d characters.", GameMakerMaxLength))
	}
	if g.NumberOfPlayers < 1 {
		fieldErrors.Add("number_of_players", "Ensure this value is greater than or equal to 1.")
	}
	if g.SkillLevel < 1 {
		fieldErrors.Add("skill_level", "Ensure this value is greater than or equal to 1.")
	}
	if g.GameTypeID == 0 {
		fieldErrors.Add("game_type", "This field is required.")
	}
	if g.GamerID == 0 {
		fieldErrors.Add("gamer", "This field is required.")
	}
	return fieldErrors.OrNil()
}

// Resolve the references and insert, atomically.
func (g *Game) Create(ctx context.Context, db bun.IDB) error {
	if err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := g.checkReferences(ctx, tx); err != nil {
			return err
		}
		_, err := tx.NewInsert().
			Model(g).
			Exec(ctx)
		return err
	}); err != nil {
		return fmt.Errorf("(*Game).Create: %w", err)
	}
	return nil
}

// Full replace of the editable columns; the owner never changes.
func (g *Game) Update(ctx context.Context, db bun.IDB) error {
	if err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		stored := new(Game)
		if err := tx.NewSelect().
			Model(stored).
			Where("id = ?", g.ID).
			Scan(ctx); err != nil {
			return notFound("game", g.ID, err)
		}
		g.GamerID = stored.GamerID
		if err := g.checkReferences(ctx, tx); err != nil {
			return err
		}
		_, err := tx.NewUpdate().
			Model(g).
			Column("title", "maker", "number_of_players", "skill_level", "game_type_id").
			WherePK().
			Exec(ctx)
		return err
	}); err != nil {
		return fmt.Errorf("(*Game).Update: %w", err)
	}
	return nil
}

func (g *Game) checkReferences(ctx context.Context, db bun.IDB) error {
	if err := g.Validate(); err != nil {
		return err
	}
	fieldErrors := FieldErrors{}
	exists, err := db.NewSelect().
		Model((*GameType)(nil)).
		Where("id = ?", g.GameTypeID).
		Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		fieldErrors.Add("game_type", invalidPK(g.GameTypeID))
	}
	if exists, err = GamerExists(ctx, db, g.GamerID); err != nil {
		return err
	}
	if !exists {
		fieldErrors.Add("gamer", invalidPK(g.GamerID))
	}
	return fieldErrors.OrNil()
}

func GetGame(ctx context.Context, db bun.IDB, id int64) (*Game, error) {
	game := new(Game)
	if err := db.NewSelect().
		Model(game).
		Relation("GameType").
		Relation("Gamer").
		Relation("Gamer.User").
		Where("game.id = ?", id).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("GetGame: %w", notFound("game", id, err))
	}
	return game, nil
}

// List all games, or only the ones of a game type when gameTypeID is set.
func ListGames(ctx context.Context, db bun.IDB, gameTypeID *int64) ([]Game, error) {
	games := make([]Game, 0)
	query := db.NewSelect().
		Model(&games).
		Relation("GameType").
		Relation("Gamer").
		Relation("Gamer.User").
		Order("game.id")
	if gameTypeID != nil {
		query = query.Where("game.game_type_id = ?", *gameTypeID)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("ListGames: %w", err)
	}
	return games, nil
}

// Events of the game, and their attendance, go with it (ON DELETE CASCADE).
func DeleteGame(ctx context.Context, db bun.IDB, id int64) error {
	res, err := db.NewDelete().
		Model((*Game)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("DeleteGame: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("DeleteGame: game %d: %w", id, ErrNotFound)
	}
	return nil
}

func invalidPK(id int64) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}
