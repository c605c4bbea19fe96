package model

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/uptrace/bun"
)

const (
	EventDescriptionMaxLength = 90

	EventDateLayout = "2006-01-02"
	EventTimeLayout = "15:04:05"
)

// A scheduled play session of a game. Owned by both its game and its
// organizer: deleting either deletes the event.
type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID          int64  `bun:"id,pk,autoincrement"`
	Description string `bun:"description,notnull"`  // required
	Date        string `bun:"date,notnull"`         // required, YYYY-MM-DD
	Time        string `bun:"time,notnull"`         // required, HH:MM:SS
	GameID      int64  `bun:"game_id,notnull"`      // required
	OrganizerID int64  `bun:"organizer_id,notnull"` // required

	NotificationSent bool `bun:"notification_sent,notnull"`

	Game      *Game    `bun:"rel:belongs-to,join:game_id=id"`
	Organizer *Gamer   `bun:"rel:belongs-to,join:organizer_id=id"`
	Attendees []*Gamer `bun:"m2m:event_gamers,join:Event=Gamer"`
}

func (e *Event) Validate() error {
	fieldErrors := FieldErrors{}
	e.Description = strings.TrimSpace(e.Description)
	switch {
	case e.Description == "":
		fieldErrors.Add("description", "This field may not be blank.")
	case utf8.RuneCountInString(e.Description) > EventDescriptionMaxLength:
		fieldErrors.Add("description", fmt.Sprintf("Ensure this field has no more than %d characters.", EventDescriptionMaxLength))
	}
	if _, err := time.Parse(EventDateLayout, e.Date); err != nil {
		fieldErrors.Add("date", "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
	}
	if _, err := time.Parse(EventTimeLayout, e.Time); err != nil {
		fieldErrors.Add("time", "Time has wrong format. Use one of these formats instead: hh:mm[:ss].")
	}
	if e.GameID == 0 {
		fieldErrors.Add("game", "This field is required.")
	}
	if e.OrganizerID == 0 {
		fieldErrors.Add("organizer", "This field is required.")
	}
	return fieldErrors.OrNil()
}

// Resolve game and organizer, then insert, in one transaction.
func (e *Event) Create(ctx context.Context, db bun.IDB) error {
	if err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := e.checkReferences(ctx, tx); err != nil {
			return err
		}
		e.NotificationSent = false
		_, err := tx.NewInsert().
			Model(e).
			Exec(ctx)
		return err
	}); err != nil {
		return fmt.Errorf("(*Event).Create: %w", err)
	}
	return nil
}

// Full replace of description, date, time, game and organizer. A changed
// schedule makes the event eligible for a reminder again.
func (e *Event) Update(ctx context.Context, db bun.IDB) error {
	if err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		stored := new(Event)
		if err := tx.NewSelect().
			Model(stored).
			Where("id = ?", e.ID).
			Scan(ctx); err != nil {
			return notFound("event", e.ID, err)
		}
		if e.OrganizerID == 0 {
			e.OrganizerID = stored.OrganizerID
		}
		if err := e.checkReferences(ctx, tx); err != nil {
			return err
		}
		e.NotificationSent = stored.NotificationSent &&
			stored.Date == e.Date &&
			stored.Time == e.Time

		_, err := tx.NewUpdate().
			Model(e).
			Column("description", "date", "time", "game_id", "organizer_id", "notification_sent").
			WherePK().
			Exec(ctx)
		return err
	}); err != nil {
		return fmt.Errorf("(*Event).Update: %w", err)
	}
	return nil
}

func (e *Event) checkReferences(ctx context.Context, db bun.IDB) error {
	if err := e.Validate(); err != nil {
		return err
	}
	fieldErrors := FieldErrors{}
	exists, err := db.NewSelect().
		Model((*Game)(nil)).
		Where("id = ?", e.GameID).
		Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		fieldErrors.Add("game", invalidPK(e.GameID))
	}
	if exists, err = GamerExists(ctx, db, e.OrganizerID); err != nil {
		return err
	}
	if !exists {
		fieldErrors.Add("organizer", invalidPK(e.OrganizerID))
	}
	return fieldErrors.OrNil()
}

// Start of the event in loc.
func (e *Event) StartsAt(loc *time.Location) (time.Time, error) {
	startsAt, err := time.ParseInLocation(EventDateLayout+" "+EventTimeLayout, e.Date+" "+e.Time, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("(*Event).StartsAt: %w", err)
	}
	return startsAt, nil
}

func (e *Event) ToDiscordEmbed() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "Upcoming event",
		Description: e.Description,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Date",
				Value:  e.Date,
				Inline: true,
			},
			{
				Name:   "Time",
				Value:  e.Time,
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("event #%d", e.ID),
		},
	}
	if e.Game != nil {
		embed.Title = e.Game.Title
	}
	if e.Organizer != nil && e.Organizer.FullName() != "" {
		embed.Author = &discordgo.MessageEmbedAuthor{
			Name: e.Organizer.FullName(),
		}
	}

	if len(e.Attendees) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Attendees",
			Value: fmt.Sprintf("%d signed up", len(e.Attendees)),
		})
	}

	return embed
}

func eventQuery(db bun.IDB, events interface{}) *bun.SelectQuery {
	return db.NewSelect().
		Model(events).
		Relation("Game").
		Relation("Organizer").
		Relation("Organizer.User").
		Relation("Attendees")
}

func GetEvent(ctx context.Context, db bun.IDB, id int64) (*Event, error) {
	event := new(Event)
	if err := eventQuery(db, event).
		Where("event.id = ?", id).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("GetEvent: %w", notFound("event", id, err))
	}
	return event, nil
}

// List all events, or only the ones of a game when gameID is set.
func ListEvents(ctx context.Context, db bun.IDB, gameID *int64) ([]Event, error) {
	events := make([]Event, 0)
	query := eventQuery(db, &events).
		Order("event.id")
	if gameID != nil {
		query = query.Where("event.game_id = ?", *gameID)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("ListEvents: %w", err)
	}
	return events, nil
}

// Attendance rows go with the event (ON DELETE CASCADE).
func DeleteEvent(ctx context.Context, db bun.IDB, id int64) error {
	res, err := db.NewDelete().
		Model((*Event)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("DeleteEvent: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("DeleteEvent: event %d: %w", id, ErrNotFound)
	}
	return nil
}

// Events on one of the given dates that haven't been announced yet.
func ListUnnotifiedEvents(ctx context.Context, db bun.IDB, dates []string) ([]Event, error) {
	events := make([]Event, 0)
	if len(dates) == 0 {
		return events, nil
	}
	if err := eventQuery(db, &events).
		Where("event.notification_sent = ?", false).
		Where("event.date IN (?)", bun.In(dates)).
		Order("event.date", "event.time").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("ListUnnotifiedEvents: %w", err)
	}
	return events, nil
}

func MarkEventsNotified(ctx context.Context, db bun.IDB, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := db.NewUpdate().
		Model((*Event)(nil)).
		Set("notification_sent = ?", true).
		Where("id IN (?)", bun.In(ids)).
		Exec(ctx); err != nil {
		return fmt.Errorf("MarkEventsNotified: %w", err)
	}
	return nil
}
