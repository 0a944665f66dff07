package search

import (
	"os"

	"github.com/rs/zerolog"
)

// log is the package-level diagnostic logger. Its only writer is fail,
// which logs each contract violation before panicking; the engine logs
// no lifecycle or per-iteration events — counting belongs to the
// host's own StatsSink. A host that wants quiet
// output can redirect it with SetLogger.
var log zerolog.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	With().Timestamp().Str("component", "search").Logger()

// SetLogger replaces the package-level diagnostic logger. Intended for
// hosts that already run a zerolog logger and want this engine's
// diagnostics routed through it instead of stderr.
func SetLogger(l zerolog.Logger) {
	log = l
}
