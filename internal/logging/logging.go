// Package logging configures a single process-wide go-logging backend
// and hands out module loggers to the rest of the engine.
package logging

import (
	"os"

	"github.com/op/go-logging"
)

var (
	format = logging.MustStringFormatter(
		`%{color}%{time:15:04:05.000} %{level:.4s} %{module} %{shortfunc}%{color:reset} %{message}`,
	)
	backend *logging.LogBackend
	leveled logging.LeveledBackend
)

func init() {
	backend = logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled = logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.INFO, "")
	logging.SetBackend(leveled)
}

// SetLevel changes the minimum level logged by every module logger, e.g.
// logging.DEBUG during a "setoption name Debug value true" UCI command.
func SetLevel(level logging.Level) {
	leveled.SetLevel(level, "")
}

// GetLog returns the shared logger for module, tagged in output so
// "engine", "uci" and "nnue" lines can be told apart.
func GetLog(module string) *logging.Logger {
	return logging.MustGetLogger(module)
}
