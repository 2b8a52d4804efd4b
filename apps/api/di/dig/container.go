package dig_container

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/studyhub/apps/api/echo"
	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
	logsvc "github.com/trezcool/studyhub/services/logger"
	"github.com/trezcool/studyhub/storage/database"
	dummydb "github.com/trezcool/studyhub/storage/database/dummy"
	inmemdb "github.com/trezcool/studyhub/storage/database/inmem"
	sqlxrepos "github.com/trezcool/studyhub/storage/database/sqlx"
	filestore "github.com/trezcool/studyhub/storage/files"
)

type (
	DBLoggerParam struct {
		dig.In
		Logger core.Logger `name:"dbLogger"`
	}

	// Remote is the configured remote store. DB is nil unless the driver is postgres.
	Remote struct {
		Store study.RemoteStore
		DB    *sql.DB
	}

	serverParams struct {
		dig.In
		Conf       *core.Config
		Logger     core.Logger
		Store      *study.Store
		Validate   *validator.Validate
		Translator ut.Translator
	}
)

func newLogger(conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(logsvc.NewConsoleLogger(os.Stdout, "api", conf), conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(logsvc.NewConsoleLogger(os.Stdout, "db", conf), conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newRemote(conf *core.Config, loggerParam DBLoggerParam) Remote {
	switch conf.Remote.Driver {
	case core.RemoteDriverPostgres:
		setUp := func() (*sql.DB, error) {
			if err := database.CreateIfNotExist(conf); err != nil {
				return nil, err
			}

			db, err := database.Open(conf)
			if err != nil {
				return nil, err
			}

			if err = database.Migrate(db); err != nil {
				return nil, err
			}
			return db, nil
		}

		db, err := setUp()
		if err != nil {
			loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
		}
		return Remote{Store: sqlxrepos.New(db, loggerParam.Logger), DB: db}
	case core.RemoteDriverNone:
		return Remote{Store: dummydb.Open()}
	default:
		return Remote{Store: inmemdb.Open()}
	}
}

func newStore(conf *core.Config, logger core.Logger, remote Remote, validate *validator.Validate) (*study.Store, error) {
	return study.Open(context.Background(), study.Options{
		Remote:    remote.Store,
		Snapshots: filestore.NewSnapshotStore(conf.DataDir),
		Logger:    logger,
		Validate:  validate,
	})
}

func newServer(p serverParams) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:       p.Conf,
		Logger:     p.Logger,
		Store:      p.Store,
		Validate:   p.Validate,
		Translator: p.Translator,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newRemote))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(study.NewValidator))
	must(c.Provide(newStore))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
