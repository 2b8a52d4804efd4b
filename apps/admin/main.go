package main

import (
	"context"
	"database/sql"
	"os"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
	logsvc "github.com/trezcool/studyhub/services/logger"
	"github.com/trezcool/studyhub/storage/database"
	sqlxrepos "github.com/trezcool/studyhub/storage/database/sqlx"
	filestore "github.com/trezcool/studyhub/storage/files"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewConsoleLogger(os.Stderr, "admin", conf)

	var db *sql.DB
	openDB := func() (*sql.DB, error) {
		if db != nil {
			return db, nil
		}
		var err error
		db, err = database.Open(conf)
		return db, err
	}
	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()

	cli := commandLine{
		out:    os.Stdout,
		driver: conf.Remote.Driver,
		openDB: openDB,
		openStore: func() (*study.Store, error) {
			db, err := openDB()
			if err != nil {
				return nil, err
			}
			return study.Open(context.Background(), study.Options{
				Remote:    sqlxrepos.New(db, nil),
				Snapshots: filestore.NewSnapshotStore(conf.DataDir),
				Logger:    logger,
			})
		},
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("admin command failed", err)
		}
		os.Exit(1)
	}
}
