package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"levelup/src-server/metric"
	"levelup/src-server/model"
	"levelup/src-server/route"
	"levelup/src-server/scheduler"
	"levelup/src-server/utils"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC1123Z,
		}),
	))
}

const usage = `usage:
  levelup                                      start the HTTP server
  levelup register <username> <first> <last>   create a gamer and print its API token`

func main() {
	as := utils.NewAppState()

	if err := model.CreateSchema(context.Background(), as.BunDB); err != nil {
		slog.Error("can't create database schema", "error", err)
		os.Exit(1)
	}
	if err := model.SeedGameTypes(context.Background(), as.BunDB, as.Config.GetGameTypes()); err != nil {
		slog.Error("can't seed game types", "error", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 {
		os.Exit(runCommand(as, os.Args[1:]))
	}

	go metric.Init(as)

	if as.Config.RemindersEnabled() {
		webhook, err := scheduler.NewDiscordWebhook(
			as.Config.GetDiscordWebhookID(),
			as.Config.GetDiscordWebhookToken(),
		)
		if err != nil {
			slog.Error("can't create discord webhook client", "error", err)
			os.Exit(1)
		}
		if err := scheduler.Start(as, webhook); err != nil {
			slog.Error("can't schedule event reminders", "error", err)
			os.Exit(1)
		}
	}

	// http server
	server := &http.Server{
		Addr:              ":" + as.Config.GetPort(),
		Handler:           route.NewHandler(as),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("cannot start HTTP server", "error", err)
			as.AppCloseSignalChan <- syscall.SIGTERM
		}
	}()

	slog.Info("app is now running, press Ctrl+C to exit", "port", as.Config.GetPort())

	signal.Notify(as.AppCloseSignalChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-as.AppCloseSignalChan

	slog.Info("Gracefully shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Warn("can't shut down HTTP server cleanly", "error", err)
	}
	as.GracefulShutdown()
}

func runCommand(as *utils.AppState, args []string) int {
	defer as.GracefulShutdown()

	switch args[0] {
	case "register":
		if len(args) != 4 {
			fmt.Fprintln(os.Stderr, usage)
			return 2
		}
		gamer, token, err := model.RegisterGamer(context.Background(), as.BunDB, args[1], args[2], args[3], "")
		if err != nil {
			slog.Error("can't register gamer", "error", err)
			return 1
		}
		slog.Info("gamer registered", "gamer", gamer.ID, "username", args[1])
		fmt.Println(token.Secret)
		return 0
	default:
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}
}
