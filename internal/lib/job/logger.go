package job

import (
	"fmt"

	"github.com/rs/zerolog"
)

// asynqLogger routes asynq's internal logging through zerolog.
type asynqLogger struct {
	logger zerolog.Logger
}

func newAsynqLogger(logger *zerolog.Logger) *asynqLogger {
	return &asynqLogger{logger: logger.With().Str("component", "asynq").Logger()}
}

func (l *asynqLogger) Debug(args ...any) { l.logger.Debug().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Info(args ...any)  { l.logger.Info().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Warn(args ...any)  { l.logger.Warn().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Error(args ...any) { l.logger.Error().Msg(fmt.Sprint(args...)) }

// Fatal is logged at error level; the process is not terminated.
func (l *asynqLogger) Fatal(args ...any) { l.logger.Error().Msg(fmt.Sprint(args...)) }
