package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
)

var (
	errHelp           = errors.New("help provided")
	errRemoteRequired = errors.New("remote.driver must be postgres: questions would not outlive this command")
)

type commandLine struct {
	out       io.Writer
	driver    string // remote.driver
	openDB    func() (*sql.DB, error)
	openStore func() (*study.Store, error)
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a goose command (up, down, status, ...) against the database")
	fmt.Fprintln(cli.out, "  reconcile - recount every chapter's total questions from the stored questions")
	fmt.Fprintln(cli.out, "  import -file FILE - import the questions of a JSON file")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	importCmd := flag.NewFlagSet("import", flag.ContinueOnError)
	importCmd.SetOutput(cli.out)
	importFile := importCmd.String("file", "", "A JSON file holding a list of questions, or an object with a \"questions\" list.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			fmt.Fprintln(cli.out, "Usage: migrate COMMAND [ARGS]")
			return errHelp
		}
		return cli.migrate(args[2:])
	case "reconcile":
		if err := cli.requirePostgres("reconcile"); err != nil {
			return err
		}
		return cli.reconcile()
	case "import":
		if err := importCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *importFile == "" {
			importCmd.Usage()
			return errHelp
		}
		if err := cli.requirePostgres("import"); err != nil {
			return err
		}
		return cli.importQuestions(*importFile)
	default:
		cli.printUsage()
		return errHelp
	}
}

// requirePostgres rejects the commands writing questions or chapter totals unless the remote store persists them.
func (cli *commandLine) requirePostgres(cmd string) error {
	if cli.driver != core.RemoteDriverPostgres {
		return fmt.Errorf("%s: %w (got %q)", cmd, errRemoteRequired, cli.driver)
	}
	return nil
}
