package report

import (
	"fmt"
	"os"
)

// Trace levels, mirroring the teacher's logging.Logger level gate but
// trimmed to what this engine actually emits: it never reports source
// positions, warnings, or user errors, just phase transitions.
const (
	TraceSilent = iota
	TraceVerbose
)

// Tracer is a level-gated line logger for the two phase transitions worth
// narrating during development: World.Close and the first, lazily computed
// pass of MixinIndex.mixinUsesOf. Grounded on logging.LogStateChange, which
// gates identically on a verbose level and writes one line per transition.
type Tracer struct {
	Level int
}

// Trace writes a single line if the tracer is at verbose level. It never
// fails and never buffers -- unlike logging.Logger's warning queue, there is
// nothing here that needs to wait for LogFinished.
func (t Tracer) Trace(format string, args ...any) {
	if t.Level >= TraceVerbose {
		fmt.Fprintf(os.Stderr, "cha: "+format+"\n", args...)
	}
}
