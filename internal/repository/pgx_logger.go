package repository

import (
	"context"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// pgxLogger bridges pgx query tracing into the service logger. Everything
// pgx emits is tagged component=pgx, which keeps SQL noise filterable
// when the streamer itself logs at debug.
type pgxLogger struct {
	logger zerolog.Logger
}

func newPgxLogger(logger zerolog.Logger) *pgxLogger {
	l := logger.With().Str("component", "pgx").Logger()
	return &pgxLogger{logger: l}
}

// Log implements tracelog.Logger. The statement and its arguments get
// promoted to stable top-level fields; the rest of the trace data passes
// through untouched.
func (l *pgxLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	if level == tracelog.LogLevelNone {
		return
	}
	event := promoteQueryFields(l.event(level), data)
	if len(data) > 0 {
		event = event.Fields(data)
	}
	event.Msg(msg)
}

func (l *pgxLogger) event(level tracelog.LogLevel) *zerolog.Event {
	switch level {
	case tracelog.LogLevelTrace:
		return l.logger.Trace()
	case tracelog.LogLevelDebug:
		return l.logger.Debug()
	case tracelog.LogLevelInfo:
		return l.logger.Info()
	case tracelog.LogLevelWarn:
		return l.logger.Warn()
	case tracelog.LogLevelError:
		return l.logger.Error()
	default:
		// A level we don't know about degrades to info, keeping the
		// original around for whoever goes looking.
		return l.logger.Info().Str("pgx_log_level", level.String())
	}
}

// promoteQueryFields lifts sql and args out of the raw trace data so a
// paging query always renders the same way regardless of trace level.
// Entries are removed from data once promoted.
func promoteQueryFields(event *zerolog.Event, data map[string]any) *zerolog.Event {
	if sqlVal, ok := data["sql"]; ok {
		if s, ok := sqlVal.(string); ok {
			event = event.Str("sql", s)
		} else {
			event = event.Interface("sql", sqlVal)
		}
		delete(data, "sql")
	}
	if args, ok := data["args"]; ok {
		event = event.Interface("args", args)
		delete(data, "args")
	}
	return event
}
