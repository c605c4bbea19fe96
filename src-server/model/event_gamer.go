package model

import (
	"github.com/uptrace/bun"
)

// Attendance relation between an event and a gamer. The pair is the
// primary key, so a gamer appears at most once per event.
type EventGamer struct {
	bun.BaseModel `bun:"table:event_gamers"`

	EventID int64 `bun:"event_id,pk"` // required
	GamerID int64 `bun:"gamer_id,pk"` // required

	Event *Event `bun:"rel:belongs-to,join:event_id=id"`
	Gamer *Gamer `bun:"rel:belongs-to,join:gamer_id=id"`
}
