package utils

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"levelup/src-server/model"

	"github.com/olebedev/when"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/extra/bundebug"
)

type AppState struct {
	Config      *Config
	BunDB       *bun.DB
	DateParser  *when.Parser
	TimeParser  *when.Parser
	MetricChans *Metric

	AppCloseSignalChan chan os.Signal

	startTime             time.Time
	gracefulShutdownMu    sync.Mutex
	gracefulShutdownChans []chan struct{}
	gracefulShutdownWg    sync.WaitGroup
}

// Open the database at DATABASE_PATH and build the shared state.
func NewAppState() *AppState {
	config := NewConfig()

	bunDB, err := model.OpenDB(model.FileDSN(config.GetDatabasePath()))
	if err != nil {
		slog.Error("cannot open sqlite database", "error", err)
		os.Exit(1)
	}
	bunDB.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithVerbose(true),
		bundebug.FromEnv("BUNDEBUG"),
	))

	return NewAppStateWithDB(config, bunDB)
}

// Build the shared state around an already opened database.
func NewAppStateWithDB(config *Config, bunDB *bun.DB) *AppState {
	return &AppState{
		Config:             config,
		BunDB:              bunDB,
		DateParser:         NewDateParser(),
		TimeParser:         NewTimeParser(),
		MetricChans:        NewMetric(),
		AppCloseSignalChan: make(chan os.Signal, 1),
		startTime:          time.Now(),
	}
}

func (as *AppState) GetUptime() time.Duration {
	return time.Since(as.startTime).Round(time.Second)
}

// The returned channel is closed once GracefulShutdown runs.
func (as *AppState) CreateGracefulShutdownChan() *chan struct{} {
	as.gracefulShutdownMu.Lock()
	defer as.gracefulShutdownMu.Unlock()
	ch := make(chan struct{})
	as.gracefulShutdownChans = append(as.gracefulShutdownChans, ch)
	return &ch
}

// Register work that still uses the database after the shutdown channels
// close. GracefulShutdown keeps the database open until done is called.
func (as *AppState) TrackShutdownTask() (done func()) {
	as.gracefulShutdownWg.Add(1)
	var once sync.Once
	return func() {
		once.Do(as.gracefulShutdownWg.Done)
	}
}

func (as *AppState) GracefulShutdown() {
	as.gracefulShutdownMu.Lock()
	for _, ch := range as.gracefulShutdownChans {
		close(ch)
	}
	as.gracefulShutdownChans = nil
	as.gracefulShutdownMu.Unlock()

	as.gracefulShutdownWg.Wait()

	if err := as.BunDB.Close(); err != nil {
		slog.Warn("can't close database", "error", err)
	}
}
