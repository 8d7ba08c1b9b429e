package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cs2ts/internal/prof"
	"cs2ts/internal/version"
)

// errReported marks a failure whose details were already printed.
var errReported = errors.New("compilation failed")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cs2ts",
		Short:         "C# to TypeScript compiler",
		Long:          `cs2ts translates a C# project into TypeScript modules, one per source document.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := setupColor(cmd); err != nil {
				return err
			}
			return startProfiling(cmd)
		},
	}

	root.AddCommand(newCompileCmd())
	root.AddCommand(newSymbolsCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newVersionCmd())

	flags := root.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson|zap)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring buffer")
	flags.Duration("trace-heartbeat", 0, "heartbeat interval, 0 disables it")
	flags.String("cpuprofile", "", "write a CPU profile to file")
	flags.String("memprofile", "", "write a heap profile to file on exit")
	flags.String("exectrace", "", "write a Go execution trace to file")
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if perr := stopProfiling(); perr != nil {
		fmt.Fprintf(os.Stderr, "profile: %v\n", perr)
	}
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			if hint := errors.FlattenHints(err); hint != "" {
				fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
			}
		}
		os.Exit(1)
	}
}

func setupColor(cmd *cobra.Command) error {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = os.Getenv("NO_COLOR") != "" || !isTerminal(os.Stdout)
	default:
		return errors.Newf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

func colorEnabled() bool { return !color.NoColor }

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Flags().GetBool("quiet")
	return q
}

// profiling is the session started for this process, if any.
var profiling *prof.Session

func startProfiling(cmd *cobra.Command) error {
	flags := cmd.Flags()
	var cfg prof.Config
	cfg.CPU, _ = flags.GetString("cpuprofile")
	cfg.Mem, _ = flags.GetString("memprofile")
	cfg.ExecTrace, _ = flags.GetString("exectrace")
	if !cfg.Enabled() {
		return nil
	}
	s, err := prof.Start(cfg)
	if err != nil {
		return err
	}
	profiling = s
	return nil
}

func stopProfiling() error {
	err := profiling.Stop()
	profiling = nil
	return err
}
