package logsvc

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/trezcool/studyhub/core"
)

// ConsoleLogger writes structured logs through logrus.
type ConsoleLogger struct {
	log *logrus.Entry
}

var _ core.Logger = (*ConsoleLogger)(nil)

// NewConsoleLogger returns a logger tagged with component, honoring conf.Log (level, text|json).
func NewConsoleLogger(out io.Writer, component string, conf *core.Config) *ConsoleLogger {
	l := logrus.New()
	l.SetOutput(out)

	if conf.Log.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: conf.TestMode})
	}

	level, err := logrus.ParseLevel(conf.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	if conf.Debug && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	l.SetLevel(level)

	return &ConsoleLogger{log: l.WithField("component", component)}
}

// fields turns the extra args into logrus fields: errors under "error", maps merged, anything else under "argN".
func fields(args []interface{}) logrus.Fields {
	f := make(logrus.Fields, len(args))
	for i, arg := range args {
		switch a := arg.(type) {
		case error:
			f[logrus.ErrorKey] = fmt.Sprintf("%+v", a)
		case map[string]interface{}:
			for k, v := range a {
				f[k] = v
			}
		default:
			f[fmt.Sprintf("arg%d", i)] = a
		}
	}
	return f
}

func (l *ConsoleLogger) entry(args []interface{}) *logrus.Entry {
	if len(args) == 0 {
		return l.log
	}
	return l.log.WithFields(fields(args))
}

func (l *ConsoleLogger) Debug(msg string, args ...interface{}) { l.entry(args).Debug(msg) }
func (l *ConsoleLogger) Info(msg string, args ...interface{})  { l.entry(args).Info(msg) }
func (l *ConsoleLogger) Warn(msg string, args ...interface{})  { l.entry(args).Warn(msg) }
func (l *ConsoleLogger) Error(msg string, args ...interface{}) { l.entry(args).Error(msg) }
func (l *ConsoleLogger) Fatal(msg string, args ...interface{}) { l.entry(args).Fatal(msg) }
