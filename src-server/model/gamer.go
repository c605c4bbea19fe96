package model

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

// Application profile of a user. Games and events reference it, never own it.
type Gamer struct {
	bun.BaseModel `bun:"table:gamers"`

	ID     int64  `bun:"id,pk,autoincrement"`
	UserID int64  `bun:"user_id,notnull,unique"` // required
	Bio    string `bun:"bio,notnull"`

	User *User `bun:"rel:belongs-to,join:user_id=id"`
}

func (g *Gamer) FullName() string {
	if g.User == nil {
		return ""
	}
	return g.User.FullName()
}

func GamerExists(ctx context.Context, db bun.IDB, id int64) (bool, error) {
	exists, err := db.NewSelect().
		Model((*Gamer)(nil)).
		Where("id = ?", id).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("GamerExists: %w", err)
	}
	return exists, nil
}

// Create the user, its gamer profile and an API token in one transaction.
func RegisterGamer(ctx context.Context, db bun.IDB, username, firstName, lastName, bio string) (*Gamer, *Token, error) {
	gamer := new(Gamer)
	var token *Token
	if err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		user := &User{
			Username:  username,
			FirstName: strings.TrimSpace(firstName),
			LastName:  strings.TrimSpace(lastName),
		}
		if err := user.Insert(ctx, tx); err != nil {
			return err
		}

		gamer.UserID = user.ID
		gamer.Bio = strings.TrimSpace(bio)
		gamer.User = user
		if _, err := tx.NewInsert().
			Model(gamer).
			Exec(ctx); err != nil {
			return fmt.Errorf("can't insert gamer: %w", err)
		}

		var err error
		token, err = NewToken(ctx, tx, user.ID)
		return err
	}); err != nil {
		return nil, nil, fmt.Errorf("RegisterGamer: %w", err)
	}
	return gamer, token, nil
}
