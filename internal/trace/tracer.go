package trace

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Tracer receives trace events. Implementations are safe for concurrent use.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// StorageMode says whether events are streamed, buffered, or both.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1
	ModeRing
	ModeBoth
)

// String returns the flag spelling of m.
func (m StorageMode) String() string {
	switch m {
	case ModeStream:
		return "stream"
	case ModeRing:
		return "ring"
	case ModeBoth:
		return "both"
	default:
		return "unknown"
	}
}

// ParseMode parses the --trace-mode flag.
func ParseMode(s string) (StorageMode, error) {
	switch strings.ToLower(s) {
	case "stream":
		return ModeStream, nil
	case "ring":
		return ModeRing, nil
	case "both":
		return ModeBoth, nil
	default:
		return ModeRing, errors.Newf("invalid trace mode %q (expected stream|ring|both)", s)
	}
}

const defaultRingSize = 4096

// Config describes the tracer built by New.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format
	Output     io.Writer   // takes precedence over OutputPath
	OutputPath string      // "-" or "" for stderr
	Logger     *zap.Logger // FormatZap sink; built over the output when nil
	RingSize   int
	Heartbeat  time.Duration
}

// New builds a tracer for cfg. Tracing off yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = defaultRingSize
	}
	if cfg.Format == FormatAuto {
		cfg.Format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".jsonl") {
			cfg.Format = FormatNDJSON
		}
	}

	switch cfg.Mode {
	case ModeRing:
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	case ModeStream, ModeBoth:
		sink, err := newSink(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Mode == ModeStream {
			return sink, nil
		}
		return NewMultiTracer(cfg.Level, sink, NewRingTracer(cfg.RingSize, cfg.Level)), nil
	default:
		return nil, errors.Newf("unknown trace mode %v", cfg.Mode)
	}
}

func newSink(cfg Config) (Tracer, error) {
	if cfg.Format == FormatZap && cfg.Logger != nil {
		return NewZapTracer(cfg.Logger, cfg.Level), nil
	}
	w, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Format == FormatZap {
		zt := NewZapTracer(newLogger(w), cfg.Level)
		if c, ok := w.(io.Closer); ok && !isStdStream(w) {
			zt.closer = c
		}
		return zt, nil
	}
	return NewStreamTracer(w, cfg.Level, cfg.Format), nil
}

// newLogger builds a JSON zap logger over w that accepts every level.
func newLogger(w io.Writer) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), zapcore.DebugLevel)
	return zap.New(core)
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return os.Stderr, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, errors.Wrap(err, "open trace output")
	}
	return f, nil
}

func isStdStream(w io.Writer) bool {
	return w == io.Writer(os.Stderr) || w == io.Writer(os.Stdout)
}
