// Package xform holds the 2D affine transformation engine:
// point sets, homogeneous 3x3 matrices and the parameters users choose
// to build them.
package xform

import (
	"strings"

	"github.com/akeil/xform/internal/logging"
)

var logLevels = map[string]logging.Level{
	"debug":   logging.LevelDebug,
	"info":    logging.LevelInfo,
	"warning": logging.LevelWarning,
	"error":   logging.LevelError,
}

// SetLogLevel sets the level for all loggers by name, case-insensitive.
// Unknown names like "none" disable logging.
func SetLogLevel(name string) {
	lvl, ok := logLevels[strings.ToLower(name)]
	if !ok {
		lvl = logging.LevelNone
	}
	logging.SetLevel(lvl)
}
