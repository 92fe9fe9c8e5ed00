package database

import (
	"context"
	"database/sql"

	"wellness-events/config"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// InitSQLite opens the embedded store used for local development and tests.
func InitSQLite(config *config.DatabaseConfig) (*bun.DB, error) {
	return OpenSQLite(config.SQLitePath)
}

func OpenSQLite(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}
	// sqlite serialises writers; one connection keeps in-memory databases alive and consistent
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
