package manager

import (
	"strings"

	"github.com/rs/zerolog"
)

// LogPublisher writes events to a zerolog logger. Error events are logged at
// warn level, everything else at debug.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(l zerolog.Logger) *LogPublisher { return &LogPublisher{log: l} }

func (p *LogPublisher) Publish(e Event) {
	ev := p.log.Debug()
	if strings.HasSuffix(e.Name, "_error") || strings.HasSuffix(e.Name, "_timeout") {
		ev = p.log.Warn()
	}
	if e.SequenceID != "" {
		ev = ev.Str("sequence_id", e.SequenceID)
	}
	ev.Fields(e.Fields).Msg(e.Name)
}
