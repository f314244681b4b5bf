package logger

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Log is the process-wide logger. It discards everything until Init is called.
var Log = zap.NewNop()

// SessionID identifies this run in every log line once Init has been called.
var SessionID string

// Init replaces Log with a development logger when debug is set and a
// production logger otherwise.
func Init(debug bool) error {
	var (
		l   *zap.Logger
		err error
	)
	if debug {
		l, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "console"
		l, err = cfg.Build()
	}
	if err != nil {
		return err
	}

	SessionID = uuid.NewString()
	Log = l.With(zap.String("session", SessionID))
	return nil
}

// Sync flushes buffered log entries
func Sync() {
	_ = Log.Sync()
}
