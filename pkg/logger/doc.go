// Package logger builds the process-wide slog.Logger. Production gets JSON
// output for log aggregation; development gets text at debug level. Format
// and level come from the environment so deployments never need code changes
// to adjust verbosity.
package logger
