package model

import (
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// Both pragma spellings are passed so foreign keys are on whichever driver
// sqliteshim picks (modernc reads _pragma, mattn reads _foreign_keys).
const dsnParams = "_pragma=foreign_keys(1)&_foreign_keys=1"

const MemoryDSN = "file::memory:?" + dsnParams

func FileDSN(path string) string {
	return "file:" + path + "?mode=rwc&" + dsnParams
}

// Open a sqlite database with foreign keys enforced. Cascading deletes
// (game -> event, gamer -> event, event -> attendance) depend on it.
func OpenDB(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, fmt.Errorf("OpenDB: %w", err)
	}
	// one connection keeps in-memory databases alive and the pragma in effect
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("OpenDB: can't enable foreign keys: %w", err)
	}
	db.RegisterModel((*EventGamer)(nil))

	return db, nil
}
