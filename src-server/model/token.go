package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Opaque API token, sent as "Authorization: Token <secret>".
type Token struct {
	bun.BaseModel `bun:"table:tokens"`

	Secret    string    `bun:"secret,pk,notnull"`
	UserID    int64     `bun:"user_id,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`

	User *User `bun:"rel:belongs-to,join:user_id=id"`
}

func NewToken(ctx context.Context, db bun.IDB, userID int64) (*Token, error) {
	if userID == 0 {
		return nil, fmt.Errorf("NewToken: user id is blank")
	}
	token := &Token{
		Secret:    uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := db.NewInsert().
		Model(token).
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("NewToken: %w", err)
	}
	return token, nil
}

// Resolve the gamer owning the token, with its user loaded.
func GamerForToken(ctx context.Context, db bun.IDB, secret string) (*Gamer, error) {
	if secret == "" {
		return nil, ErrInvalidToken
	}
	gamer := new(Gamer)
	err := db.NewSelect().
		Model(gamer).
		Relation("User").
		Join("JOIN tokens AS t ON t.user_id = gamer.user_id").
		Where("t.secret = ?", secret).
		Scan(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrInvalidToken
	case err != nil:
		return nil, fmt.Errorf("GamerForToken: %w", err)
	}
	return gamer, nil
}
