// Package logging builds the zap logger used by the command line tool.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Log levels accepted by New.
const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// ErrUnknownLevel indicates an unsupported log level name.
var ErrUnknownLevel = errors.New("unknown log level")

// New returns a console logger. Entries below error go to out, errors go
// to errOut. Level "none" discards everything; "normal" logs info and
// above; "debug" adds debug entries. An empty level means "normal".
func New(level string, out, errOut io.Writer) (*zap.Logger, error) {
	var minLevel zapcore.Level
	switch level {
	case LevelNone:
		return zap.NewNop(), nil
	case "", LevelNormal:
		minLevel = zapcore.InfoLevel
	case LevelDebug:
		minLevel = zapcore.DebugLevel
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}

	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return minLevel <= lvl && lvl < zapcore.ErrorLevel
	})
	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig(out)), zapcore.Lock(syncer(out)), lowPriority),
		zapcore.NewCore(newErrorEncoder(encoderConfig(errOut)), zapcore.Lock(syncer(errOut)), highPriority),
	)
	return zap.New(core), nil
}

func encoderConfig(w io.Writer) zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	if IsTerminal(w) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return ec
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func syncer(w io.Writer) zapcore.WriteSyncer {
	if ws, ok := w.(zapcore.WriteSyncer); ok {
		return ws
	}
	return zapcore.AddSync(w)
}

// errorEncoder prints errors by message only, dropping the errorVerbose
// field zap adds for wrapped errors.
type errorEncoder struct {
	zapcore.Encoder
}

func newErrorEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return errorEncoder{zapcore.NewConsoleEncoder(cfg)}
}

func (e errorEncoder) Clone() zapcore.Encoder {
	return errorEncoder{e.Encoder.Clone()}
}

func (e errorEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	out := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			if err, ok := f.Interface.(error); ok {
				f.Interface = errors.New(err.Error())
			}
		}
		out = append(out, f)
	}
	return e.Encoder.EncodeEntry(ent, out)
}
