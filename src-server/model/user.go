package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Identity behind a gamer; the reports read names from here.
type User struct {
	bun.BaseModel `bun:"table:users"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Username  string    `bun:"username,notnull,unique"` // required
	FirstName string    `bun:"first_name,notnull"`
	LastName  string    `bun:"last_name,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) Insert(ctx context.Context, db bun.IDB) error {
	if u.Username = strings.TrimSpace(u.Username); u.Username == "" {
		return fmt.Errorf("(*User).Insert: username is blank")
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	if _, err := db.NewInsert().
		Model(u).
		Exec(ctx); err != nil {
		return fmt.Errorf("(*User).Insert: %w", err)
	}
	return nil
}
