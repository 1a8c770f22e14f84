package snap

import "github.com/rs/zerolog"

// ZerologSink routes notices to a zerolog logger at warn level.
func ZerologSink(logger zerolog.Logger) NoticeSink {
	return NoticeSinkFunc(func(n Notice) {
		event := logger.Warn().Str("code", string(n.Code))
		if n.Field != "" {
			event = event.Str("field", n.Field)
		}
		event.Msg(n.Message)
	})
}
