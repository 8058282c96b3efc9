// Package telemetry carries the logging and metrics used around indicator
// pipelines. Library packages stay silent; the operators here are spliced
// into a pipeline by the application.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/rustyeddy/signals/stream"
)

// NewLogger builds a logger at the named level ("debug", "info", ...). A
// terminal gets human readable output, anything else gets JSON lines.
func NewLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("log level %q: %w", level, err)
		}
		lvl = parsed
	}

	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		w = zerolog.ConsoleWriter{Out: f, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// Log passes elements through unchanged, logging each at debug, a failure at
// error and completion at info.
func Log[T any](logger zerolog.Logger, name string) stream.Operator[T, T] {
	l := logger.With().Str("operator", name).Logger()
	return func(src stream.Stream[T]) stream.Stream[T] {
		return stream.Create(func(down *stream.Subscriber[T]) {
			count := 0
			logged := stream.Observe(stream.Funcs[T]{
				OnNext: func(v T) {
					count++
					l.Debug().Int("seq", count).Interface("value", v).Msg("next")
				},
				OnError: func(err error) {
					l.Error().Err(err).Int("seen", count).Msg("failed")
				},
				OnComplete: func() {
					l.Info().Int("seen", count).Msg("complete")
				},
			})
			sub := logged(src).Subscribe(down)
			down.OnTeardown(sub.Unsubscribe)
		})
	}
}
