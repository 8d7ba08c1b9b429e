package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"cs2ts/internal/trace"
)

// setupTracing builds the tracer described by the trace flags and
// attaches it to the command context. The returned cleanup dumps the ring
// buffer when failed is set and then closes the tracer.
func setupTracing(cmd *cobra.Command) (cleanup func(failed bool), err error) {
	flags := cmd.Flags()
	output, err := flags.GetString("trace")
	if err != nil {
		return nil, err
	}
	levelStr, _ := flags.GetString("trace-level")
	formatStr, _ := flags.GetString("trace-format")
	modeStr, _ := flags.GetString("trace-mode")
	ringSize, _ := flags.GetInt("trace-ring-size")
	heartbeatEvery, _ := flags.GetDuration("trace-heartbeat")

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	if level == trace.LevelOff && output != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func(bool) {}, nil
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: output,
		RingSize:   ringSize,
		Heartbeat:  heartbeatEvery,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create tracer")
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	heartbeat := trace.StartHeartbeat(tracer, heartbeatEvery)

	return func(failed bool) {
		heartbeat.Stop()
		if failed {
			dumpFormat := format
			if dumpFormat == trace.FormatZap {
				dumpFormat = trace.FormatNDJSON
			}
			if ok, err := trace.Dump(tracer, cmd.ErrOrStderr(), dumpFormat); ok && err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
			}
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}, nil
}
