package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"levelup/src-server/model"
	"levelup/src-server/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"
)

// Delivers event reminders somewhere people will see them.
type Notifier interface {
	Notify(ctx context.Context, events []*model.Event) error
}

// Posts reminders through a Discord webhook, one embed per event.
type DiscordWebhook struct {
	session *discordgo.Session
	id      string
	token   string
}

func NewDiscordWebhook(id string, token string) (*DiscordWebhook, error) {
	// webhooks authenticate through their own token, no bot token needed
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("NewDiscordWebhook: %w", err)
	}
	return &DiscordWebhook{
		session: session,
		id:      id,
		token:   token,
	}, nil
}

func (d *DiscordWebhook) Notify(ctx context.Context, events []*model.Event) error {
	// discord accepts at most 10 embeds per message
	const maxEmbeds = 10
	for start := 0; start < len(events); start += maxEmbeds {
		end := min(start+maxEmbeds, len(events))
		embeds := make([]*discordgo.MessageEmbed, 0, end-start)
		for _, event := range events[start:end] {
			embeds = append(embeds, event.ToDiscordEmbed())
		}
		if _, err := d.session.WebhookExecute(d.id, d.token, false, &discordgo.WebhookParams{
			Embeds: embeds,
		}, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("(*DiscordWebhook).Notify: %w", err)
		}
	}
	return nil
}

// Announce the events starting within (now, now+leadTime] that weren't
// announced yet, then mark them. Returns how many were announced.
func NotifyUpcomingEvents(ctx context.Context, as *utils.AppState, notifier Notifier, now time.Time) (int, error) {
	loc := as.Config.GetLocation()
	now = now.In(loc)
	until := now.Add(as.Config.GetReminderLeadTime())

	// the window may span midnight
	dates := []string{now.Format(model.EventDateLayout)}
	if lastDate := until.Format(model.EventDateLayout); lastDate != dates[0] {
		dates = append(dates, lastDate)
	}

	startTimer := time.Now()
	candidates, err := model.ListUnnotifiedEvents(ctx, as.BunDB, dates)
	if err != nil {
		return 0, fmt.Errorf("NotifyUpcomingEvents: %w", err)
	}
	as.MetricChans.Observe(as.MetricChans.DatabaseRead, startTimer)

	upcoming := make([]*model.Event, 0)
	for i := range candidates {
		startsAt, err := candidates[i].StartsAt(loc)
		if err != nil {
			slog.Warn("skipping event with a broken schedule", "event", candidates[i].ID, "error", err)
			continue
		}
		if startsAt.After(now) && !startsAt.After(until) {
			upcoming = append(upcoming, &candidates[i])
		}
	}
	if len(upcoming) == 0 {
		return 0, nil
	}

	if err := notifier.Notify(ctx, upcoming); err != nil {
		return 0, fmt.Errorf("NotifyUpcomingEvents: %w", err)
	}

	ids := make([]int64, 0, len(upcoming))
	for _, event := range upcoming {
		ids = append(ids, event.ID)
	}
	startTimer = time.Now()
	if err := model.MarkEventsNotified(ctx, as.BunDB, ids); err != nil {
		return 0, fmt.Errorf("NotifyUpcomingEvents: %w", err)
	}
	as.MetricChans.Observe(as.MetricChans.DatabaseWrite, startTimer)

	return len(upcoming), nil
}

// Run NotifyUpcomingEvents on REMINDER_SCHEDULE until the app shuts down.
func Start(as *utils.AppState, notifier Notifier) error {
	c := cron.New(
		cron.WithLocation(as.Config.GetLocation()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	if _, err := c.AddFunc(as.Config.GetReminderSchedule(), func() {
		sent, err := NotifyUpcomingEvents(context.Background(), as, notifier, time.Now())
		switch {
		case err != nil:
			slog.Error("can't send event reminders", "error", err)
		case sent > 0:
			slog.Info("event reminders sent", "events", sent)
		}
	}); err != nil {
		return fmt.Errorf("scheduler.Start: invalid REMINDER_SCHEDULE: %w", err)
	}
	c.Start()
	slog.Info("event reminders scheduled", "schedule", as.Config.GetReminderSchedule())

	gracefulShutdownCh := as.CreateGracefulShutdownChan()
	stopped := as.TrackShutdownTask()
	go func() {
		defer stopped()
		<-*gracefulShutdownCh
		// a run in flight still holds the database
		<-c.Stop().Done()
		slog.Debug("event reminders stopped")
	}()
	return nil
}
