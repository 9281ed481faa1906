package celest

import (
	"io"
	"os"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var logger = NewLogger(os.Stderr, "warn")

// NewLogger returns a logfmt logger writing to w which only lets through entries
// at or above the named level (debug, info, warn, error or none).
func NewLogger(w io.Writer, lvl string) kitlog.Logger {
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w))
	klog = kitlog.With(klog, "ts", kitlog.DefaultTimestampUTC)
	return level.NewFilter(klog, levelOption(lvl))
}

// SetLogger replaces the package logger, e.g. to share the host application's.
func SetLogger(l kitlog.Logger) {
	if l == nil {
		l = kitlog.NewNopLogger()
	}
	logger = l
}

func levelOption(lvl string) level.Option {
	switch strings.ToLower(lvl) {
	case "debug":
		return level.AllowDebug()
	case "info":
		return level.AllowInfo()
	case "error":
		return level.AllowError()
	case "none":
		return level.AllowNone()
	default:
		return level.AllowWarn()
	}
}
