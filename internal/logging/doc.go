// Package logging builds the process-wide zap logger and installs it as
// the global (zap.ReplaceGlobals), supporting the production/console/json
// split that config.LogFormat and config.LogLevel drive.
package logging
