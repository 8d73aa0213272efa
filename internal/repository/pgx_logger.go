package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// pgxLogger bridges pgx's tracelog to zerolog. SQL text and arguments are
// only emitted at trace level; everything above that logs the message,
// timing and the remaining pgx fields.
type pgxLogger struct {
	logger zerolog.Logger
}

func newPgxLogger(logger zerolog.Logger) *pgxLogger {
	return &pgxLogger{logger: logger.With().Str("module", "repository").Str("component", "pgx").Logger()}
}

// traceLevel picks the pgx trace level matching the logger's verbosity so
// pgx does not build log data that zerolog would drop anyway.
func traceLevel(level zerolog.Level) tracelog.LogLevel {
	switch {
	case level <= zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case level <= zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case level <= zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case level <= zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	default:
		return tracelog.LogLevelError
	}
}

func (l *pgxLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	var event *zerolog.Event
	switch level {
	case tracelog.LogLevelNone:
		return
	case tracelog.LogLevelTrace:
		event = l.logger.Trace()
	case tracelog.LogLevelDebug:
		event = l.logger.Debug()
	case tracelog.LogLevelInfo:
		event = l.logger.Info()
	case tracelog.LogLevelWarn:
		event = l.logger.Warn()
	case tracelog.LogLevelError:
		event = l.logger.Error()
	default:
		event = l.logger.Info().Str("pgx_level", level.String())
	}

	fields := make(map[string]any, len(data))
	for k, v := range data {
		switch k {
		case "sql", "args":
			if level == tracelog.LogLevelTrace {
				fields[k] = v
			}
		case "time":
			if d, ok := v.(time.Duration); ok {
				event = event.Dur("took", d)
				continue
			}
			fields[k] = v
		case "err":
			if err, ok := v.(error); ok {
				event = event.Err(err)
				continue
			}
			fields[k] = v
		default:
			fields[k] = v
		}
	}
	if len(fields) > 0 {
		event = event.Fields(fields)
	}
	event.Msg(msg)
}
