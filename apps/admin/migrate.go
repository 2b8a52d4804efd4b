package main

import (
	"github.com/pressly/goose/v3"

	"github.com/trezcool/studyhub/storage/database"
)

var gooseRunFunc = goose.Run // mockable

func (cli *commandLine) migrate(args []string) error {
	db, err := cli.openDB()
	if err != nil {
		return err
	}
	if err = database.PrepareGoose(); err != nil {
		return err
	}
	return gooseRunFunc(args[0], db, database.MigrationsDir, args[1:]...)
}
