// Package log provides the logging abstraction used by the NDTP tooling.
//
// The codec packages never log. Capture files, the spool watcher and the
// command line tool report through the Logger interface defined here, with
// a zerolog implementation for real output and a no-op logger for tests.
//
// # Usage
//
// Build a console logger at a given level:
//
//	logger := log.NewZerologAdapterLevel(os.Stderr, zerolog.InfoLevel)
//	logger.Info("message decoded", log.Kind(kind), log.Seq(seq))
//
// Attach fields shared by a component:
//
//	fileLog := log.With(logger, log.String("file", path))
//
// Or use the no-op logger for testing:
//
//	logger := log.NewNoopLogger()
//
// # Custom Loggers
//
// Implement the Logger interface to integrate with your existing
// logging infrastructure:
//
//	type MyLogger struct { ... }
//
//	func (l *MyLogger) Debug(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Info(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Warn(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Error(msg string, fields ...log.Field) { ... }
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package log
