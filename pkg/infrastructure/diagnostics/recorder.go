package diagnostics

import (
	"github.com/vsinha/orderbom/pkg/infrastructure/logging"
)

// Recorder keeps every diagnostic of a run and logs it as it arrives.
// Unnormalizable descriptions are warnings, silent coercions are debug output.
type Recorder struct {
	log         logging.Logger
	diagnostics []Diagnostic
	counts      map[string]int
}

// NewRecorder creates a recorder logging to log (nil disables logging)
func NewRecorder(log logging.Logger) *Recorder {
	return &Recorder{
		log:         logging.OrNop(log),
		diagnostics: make([]Diagnostic, 0),
		counts:      make(map[string]int),
	}
}

// Record stores d and logs it
func (r *Recorder) Record(d Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
	r.counts[d.Kind]++

	switch d.Kind {
	case UnnormalizableDescription:
		r.log.Warnf("%s", d)
	default:
		r.log.Debugf("%s", d)
	}
}

// Diagnostics returns everything recorded so far, in arrival order
func (r *Recorder) Diagnostics() []Diagnostic {
	return r.diagnostics
}

// Count returns how many diagnostics of kind were recorded
func (r *Recorder) Count(kind string) int {
	return r.counts[kind]
}

// Counts returns the number of diagnostics per kind
func (r *Recorder) Counts() map[string]int {
	out := make(map[string]int, len(r.counts))
	for k, v := range r.counts {
		out[k] = v
	}
	return out
}
