// Package prof writes Go runtime profiles for a single CLI invocation.
package prof

import (
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"github.com/cockroachdb/errors"
)

// Config names the output files; empty paths disable that profile.
type Config struct {
	CPU       string
	Mem       string
	ExecTrace string
}

// Enabled reports whether any output path is set.
func (c Config) Enabled() bool {
	return c.CPU != "" || c.Mem != "" || c.ExecTrace != ""
}

// Session is a running set of profiles.
type Session struct {
	cfg       Config
	cpuFile   *os.File
	traceFile *os.File
}

// Start begins the CPU profile and the execution trace. On error nothing
// is left running.
func Start(cfg Config) (*Session, error) {
	s := &Session{cfg: cfg}
	if cfg.CPU != "" {
		f, err := os.Create(cfg.CPU)
		if err != nil {
			return nil, errors.Wrap(err, "create cpu profile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, errors.Wrap(err, "start cpu profile")
		}
		s.cpuFile = f
	}
	if cfg.ExecTrace != "" {
		f, err := os.Create(cfg.ExecTrace)
		if err != nil {
			s.stopCPU()
			return nil, errors.Wrap(err, "create execution trace")
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			s.stopCPU()
			return nil, errors.Wrap(err, "start execution trace")
		}
		s.traceFile = f
	}
	return s, nil
}

func (s *Session) stopCPU() {
	if s.cpuFile == nil {
		return
	}
	pprof.StopCPUProfile()
	_ = s.cpuFile.Close()
	s.cpuFile = nil
}

// Stop ends the running profiles and writes the heap profile.
// It is safe on a nil Session.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	s.stopCPU()
	if s.traceFile != nil {
		trace.Stop()
		_ = s.traceFile.Close()
		s.traceFile = nil
	}
	if s.cfg.Mem == "" {
		return nil
	}
	f, err := os.Create(s.cfg.Mem)
	if err != nil {
		return errors.Wrap(err, "create heap profile")
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "write heap profile")
	}
	return errors.Wrap(f.Close(), "close heap profile")
}
