// Package tlog provides the leveled loggers shared by every BrightChain
// package. It replaces ad-hoc stdlib logging with a single logrus-backed
// set of loggers so call sites everywhere read "tlog.Debug.Printf(...)",
// "tlog.Info.Printf(...)", "tlog.Warn.Printf(...)".
package tlog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// namedLogger wraps a logrus.Logger fixed at one level, giving callers the
// familiar Printf/Println surface without having to pass a level each time.
type namedLogger struct {
	level  logrus.Level
	logger *logrus.Logger
}

func (n *namedLogger) Printf(format string, args ...interface{}) {
	n.logger.Logf(n.level, format, args...)
}

func (n *namedLogger) Println(args ...interface{}) {
	n.logger.Log(n.level, args...)
}

var base = newBaseLogger()

func newBaseLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Debug, Info, Warn and Error are the four leveled loggers used throughout
// the codebase. Fatal is reserved for unrecoverable failures.
var (
	Debug = &namedLogger{level: logrus.DebugLevel, logger: base}
	Info  = &namedLogger{level: logrus.InfoLevel, logger: base}
	Warn  = &namedLogger{level: logrus.WarnLevel, logger: base}
	Error = &namedLogger{level: logrus.ErrorLevel, logger: base}
)

// SetLevel adjusts the verbosity of all loggers. Called once at CLI startup
// from the bound viper "log-level" setting.
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		base.SetLevel(logrus.InfoLevel)
		return
	}
	base.SetLevel(lvl)
}

// Fatal logs and exits. Its callers are internal/cryptocore's RandBytes and
// HKDFDerive, when the CSPRNG or HKDF read fails.
func Fatal(format string, args ...interface{}) {
	base.Fatalf(format, args...)
}
