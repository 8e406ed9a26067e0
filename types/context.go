package types

import (
	"log/slog"

	"github.com/lepinkainen/audiomerge/logging"
	"github.com/lepinkainen/audiomerge/metrics"
)

// DefaultVersion is the fallback version when AppContext is nil
const DefaultVersion = "dev"

// AppContext holds application-wide context information passed to commands
type AppContext struct {
	Version string
	Logger  *logging.Logger
	Metrics *metrics.Collector
}

// VersionOf returns the version carried by appCtx, or DefaultVersion
func VersionOf(appCtx *AppContext) string {
	if appCtx == nil || appCtx.Version == "" {
		return DefaultVersion
	}
	return appCtx.Version
}

// LoggerOf returns the configured logger. With tui set the console sink is
// skipped. Without a configured logger everything is discarded.
func LoggerOf(appCtx *AppContext, tui bool) *slog.Logger {
	if appCtx == nil || appCtx.Logger == nil {
		return logging.Discard()
	}
	if tui {
		return appCtx.Logger.FileOnly()
	}
	return appCtx.Logger.Logger
}
