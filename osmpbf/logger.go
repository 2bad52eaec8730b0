package osmpbf

import (
	"log"
)

// Logger is the interface the Encoder writes block-flush diagnostics
// through. Implement it to route these into an application's own logging
// stack; an Encoder built by NewEncoder uses defaultLogger until SetLogger
// replaces it.
type Logger interface {
	Printf(format string, v ...interface{})
}

// defaultLogger writes through the standard library's log package, the
// same fallback used by tyrauber-osm's Encoder and pebble's
// base.DefaultLogger.
type defaultLogger struct{}

func (defaultLogger) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// nopLogger discards everything; useful in tests and for callers who want
// silence without implementing Logger themselves.
type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}
