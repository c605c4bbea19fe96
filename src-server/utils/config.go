package utils

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	port         string
	databasePath string

	location                 *time.Location
	metricCollectionInterval time.Duration
	gameTypes                []string

	discordWebhookID    string
	discordWebhookToken string
	reminderSchedule    string
	reminderLeadTime    time.Duration
}

func NewConfig() *Config {
	return &Config{
		port: func() string {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			slog.Debug("env", "PORT", port)
			return port
		}(),
		databasePath: func() string {
			databasePath := os.Getenv("DATABASE_PATH")
			if databasePath == "" {
				databasePath = "./levelup.db"
			}
			slog.Debug("env", "DATABASE_PATH", databasePath)
			return databasePath
		}(),

		location: func() *time.Location {
			timezoneStr := os.Getenv("TIMEZONE")
			var loc *time.Location
			var err error
			switch timezoneStr {
			case "":
				slog.Warn("TIMEZONE is not set, using local timezone", "timezone", time.Local)
				loc = time.Local
			case "UTC":
				loc = time.UTC
			default:
				loc, err = time.LoadLocation(timezoneStr)
				if err != nil {
					slog.Error("invalid timezone", "timezone", timezoneStr, "error", err)
					os.Exit(1)
				}
			}
			slog.Debug("env", "TIMEZONE", timezoneStr)
			return loc
		}(),
		metricCollectionInterval: mustDuration("METRIC_COLLECTION_INTERVAL", "10s"),
		gameTypes: func() []string {
			gameTypesStr := os.Getenv("GAME_TYPES")
			if gameTypesStr == "" {
				gameTypesStr = "Board Game,Card Game,Tabletop RPG,Miniatures"
			}
			var gameTypes []string
			for _, label := range strings.Split(gameTypesStr, ",") {
				if label = CleanupString(label); label != "" {
					gameTypes = append(gameTypes, label)
				}
			}
			slog.Debug("env", "GAME_TYPES", gameTypes)
			return gameTypes
		}(),

		discordWebhookID: func() string {
			discordWebhookID := os.Getenv("DISCORD_WEBHOOK_ID")
			if discordWebhookID == "" {
				slog.Info("DISCORD_WEBHOOK_ID is not set, event reminders are disabled")
			}
			slog.Debug("env", "DISCORD_WEBHOOK_ID", discordWebhookID)
			return discordWebhookID
		}(),
		discordWebhookToken: func() string {
			discordWebhookToken := os.Getenv("DISCORD_WEBHOOK_TOKEN")
			if len(discordWebhookToken) > 3 {
				slog.Debug("env", "DISCORD_WEBHOOK_TOKEN", discordWebhookToken[0:3]+"...")
			}
			return discordWebhookToken
		}(),
		reminderSchedule: func() string {
			reminderSchedule := os.Getenv("REMINDER_SCHEDULE")
			if reminderSchedule == "" {
				reminderSchedule = "@every 1m"
			}
			slog.Debug("env", "REMINDER_SCHEDULE", reminderSchedule)
			return reminderSchedule
		}(),
		reminderLeadTime: mustDuration("REMINDER_LEAD_TIME", "15m"),
	}
}

func mustDuration(key string, fallback string) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		value = fallback
	}
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		slog.Error("invalid duration", "key", key, "value", value, "error", err)
		os.Exit(1)
	}
	slog.Debug("env", key, value, "duration", duration)
	return duration
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get DATABASE_PATH env, default to ./levelup.db
func (c *Config) GetDatabasePath() string {
	return c.databasePath
}

// Get TIMEZONE env
func (c *Config) GetLocation() *time.Location {
	return c.location
}

// Get METRIC_COLLECTION_INTERVAL env
func (c *Config) GetMetricCollectionInterval() time.Duration {
	return c.metricCollectionInterval
}

// Get GAME_TYPES env, already cleaned up
func (c *Config) GetGameTypes() []string {
	return c.gameTypes
}

// Get DISCORD_WEBHOOK_ID env
func (c *Config) GetDiscordWebhookID() string {
	return c.discordWebhookID
}

// Get DISCORD_WEBHOOK_TOKEN env
func (c *Config) GetDiscordWebhookToken() string {
	return c.discordWebhookToken
}

// Get REMINDER_SCHEDULE env
func (c *Config) GetReminderSchedule() string {
	return c.reminderSchedule
}

// Get REMINDER_LEAD_TIME env
func (c *Config) GetReminderLeadTime() time.Duration {
	return c.reminderLeadTime
}

func (c *Config) RemindersEnabled() bool {
	return c.discordWebhookID != "" && c.discordWebhookToken != ""
}
