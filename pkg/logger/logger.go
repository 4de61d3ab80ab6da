// Package logger provides the engine's structured logging, shaped after
// the teacher's zerolog wrapper: a package-level singleton plus a small
// component-scoped logger type.
package logger

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// Level is a logging level.
type Level = zerolog.Level

const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
)

// Config controls log level, format and destination.
type Config struct {
	Level      string `yaml:"level" json:"level"`
	Format     string `yaml:"format" json:"format"` // json/console
	Output     string `yaml:"output" json:"output"` // stdout/stderr/file
	FilePath   string `yaml:"file_path,omitempty" json:"file_path,omitempty"`
	TimeFormat string `yaml:"time_format,omitempty" json:"time_format,omitempty"`
}

// DefaultConfig returns console-formatted, info-level logging to stdout.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	}
}

// Init configures the package-level logger. Safe to call once; later
// calls are no-ops (matches the teacher's sync.Once guard).
func Init(cfg Config) {
	once.Do(func() {
		zerolog.SetGlobalLevel(parseLevel(cfg.Level))

		var output io.Writer
		switch cfg.Output {
		case "stderr":
			output = os.Stderr
		case "file":
			if cfg.FilePath != "" {
				if f, err := os.OpenFile(cfg.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
					output = f
				} else {
					output = os.Stdout
				}
			} else {
				output = os.Stdout
			}
		default:
			output = os.Stdout
		}

		if cfg.Format == "console" {
			output = zerolog.ConsoleWriter{Out: output, TimeFormat: cfg.TimeFormat}
		}

		logger = zerolog.New(output).With().Timestamp().Logger()
	})
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get returns the package-level logger, initializing it with defaults on
// first use if Init was never called.
func Get() *zerolog.Logger {
	Init(DefaultConfig()) // no-op once Init has run
	return &logger
}

type ctxKeyAttempt struct{}

// WithAttemptID returns a context carrying an attempt id for WithContext.
func WithAttemptID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyAttempt{}, id)
}

// WithContext derives a logger carrying an attempt id from ctx, if set.
func WithContext(ctx context.Context) *zerolog.Logger {
	l := Get().With().Logger()
	if attemptID, ok := ctx.Value(ctxKeyAttempt{}).(string); ok {
		l = l.With().Str("attempt_id", attemptID).Logger()
	}
	return &l
}

func Debug() *zerolog.Event { return Get().Debug() }
func Info() *zerolog.Event  { return Get().Info() }
func Warn() *zerolog.Event  { return Get().Warn() }
func Error() *zerolog.Event { return Get().Error() }
func Fatal() *zerolog.Event { return Get().Fatal() }

// WithError logs err at error level.
func WithError(err error) *zerolog.Event { return Get().Error().Err(err) }

// WithField derives a logger carrying one extra field.
func WithField(key string, value interface{}) *zerolog.Logger {
	l := Get().With().Interface(key, value).Logger()
	return &l
}

// SolverLogger is a component-scoped logger for the solve pipeline,
// equivalent to the teacher's SchedulerLogger but named for attempt/driver
// lifecycle events instead of a single greedy pass.
type SolverLogger struct {
	base *zerolog.Logger
}

// NewSolverLogger returns a logger tagged component=solver.
func NewSolverLogger() *SolverLogger {
	l := Get().With().Str("component", "solver").Logger()
	return &SolverLogger{base: &l}
}

// StartAttempt logs the beginning of one seeded solve attempt.
func (l *SolverLogger) StartAttempt(seed uint64, people, weeks int) {
	l.base.Info().
		Uint64("seed", seed).
		Int("people", people).
		Int("weeks", weeks).
		Msg("starting solve attempt")
}

// ConstraintViolation logs a soft or hard constraint violation found
// during construction or repair.
func (l *SolverLogger) ConstraintViolation(constraint, details string) {
	l.base.Warn().
		Str("constraint", constraint).
		Str("details", details).
		Msg("constraint violation")
}

// AttemptComplete logs the outcome of a single attempt.
func (l *SolverLogger) AttemptComplete(seed uint64, duration time.Duration, score float64) {
	l.base.Info().
		Uint64("seed", seed).
		Dur("duration", duration).
		Float64("score", score).
		Msg("solve attempt complete")
}

// DriverSelected logs the multi-restart driver's final pick.
func (l *SolverLogger) DriverSelected(seed uint64, attempts int, score float64) {
	l.base.Info().
		Uint64("winning_seed", seed).
		Int("attempts", attempts).
		Float64("score", score).
		Msg("driver selected best attempt")
}
