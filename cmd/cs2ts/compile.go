package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"cs2ts/internal/compiler"
	"cs2ts/internal/diag"
	"cs2ts/internal/diagfmt"
	"cs2ts/internal/observ"
	"cs2ts/internal/options"
	"cs2ts/internal/source"
	"cs2ts/internal/symcache"
	"cs2ts/internal/trace"
	"cs2ts/internal/watch"
)

func newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [dir]",
		Short: "Translate a C# project to TypeScript",
		Long: `Translate every .cs document under dir (default: the current directory)
into a TypeScript module. Options come from cs2ts.toml, found by searching
upwards from dir, and from CS2TS_* environment variables.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompile,
	}
	f := cmd.Flags()
	f.StringP("out", "o", "", "output directory (overrides output_path)")
	f.String("ui", "auto", "progress UI (auto|on|off)")
	f.Bool("watch", false, "recompile whenever a source document changes")
	f.Bool("timings", false, "print stage timings")
	f.Bool("warnaserror", false, "treat configurable warnings as errors")
	addProjectFlags(cmd)
	addReportFlags(cmd)
	return cmd
}

// addProjectFlags registers the flags shared by commands that open a project.
func addProjectFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("config", "", "path to cs2ts.toml (default: search upwards from dir)")
	f.Int("jobs", 0, "parallel document tasks, 0 uses GOMAXPROCS")
	f.Bool("no-cache", false, "do not read or write the symbol table cache")
}

func addReportFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("format", "pretty", "diagnostic format (pretty|short|json|sarif)")
	f.String("path-mode", "auto", "diagnostic paths (auto|absolute|relative|basename)")
	f.Int("max-diagnostics", 100, "maximum number of diagnostics to print, 0 for all")
	f.Bool("show-hidden", false, "print hidden diagnostics too")
}

func projectRoot(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return "."
}

// loadOptions reads the manifest for root and applies the command flags.
// A relative output_path is resolved against the manifest directory.
func loadOptions(cmd *cobra.Command, root string) (*options.CompilerOptions, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	if path == "" {
		found, ok, err := options.FindManifest(root)
		if err != nil {
			return nil, err
		}
		if ok {
			path = found
		}
	}
	opts, err := options.Load(path)
	if err != nil {
		return nil, err
	}
	if path != "" && opts.OutputPath != "" && !filepath.IsAbs(opts.OutputPath) {
		opts = opts.WithOutputPath(filepath.Join(filepath.Dir(path), opts.OutputPath))
	}
	if jobs, _ := flags.GetInt("jobs"); jobs > 0 {
		opts = opts.WithJobs(jobs)
	}
	if werr, _ := flags.GetBool("warnaserror"); werr {
		opts = opts.WithWarningsAsErrors()
	}
	if out, _ := flags.GetString("out"); out != "" {
		opts = opts.WithOutputPath(out)
	}
	return opts, nil
}

// openCache returns nil when caching is disabled or unavailable.
func openCache(cmd *cobra.Command, opts *options.CompilerOptions) *symcache.Cache {
	if off, _ := cmd.Flags().GetBool("no-cache"); off {
		return nil
	}
	cache, err := symcache.Open(opts.CacheDir)
	if err != nil {
		if !quiet(cmd) {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: symbol cache disabled: %v\n", err)
		}
		return nil
	}
	return cache
}

func readReportOptions(cmd *cobra.Command) (reportOptions, error) {
	flags := cmd.Flags()
	formatStr, _ := flags.GetString("format")
	format, err := readDiagFormat(formatStr)
	if err != nil {
		return reportOptions{}, err
	}
	modeStr, _ := flags.GetString("path-mode")
	mode, ok := diagfmt.ParsePathMode(modeStr)
	if !ok {
		return reportOptions{}, errors.Newf("invalid --path-mode value %q", modeStr)
	}
	maxDiags, _ := flags.GetInt("max-diagnostics")
	hidden, _ := flags.GetBool("show-hidden")
	return reportOptions{format: format, maxDiags: maxDiags, pathMode: mode, color: colorEnabled(), hidden: hidden}, nil
}

func runCompile(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	failed := true
	defer func() { cleanup(failed) }()

	b, err := newBuilder(cmd, projectRoot(args))
	if err != nil {
		return err
	}
	uiStr, _ := cmd.Flags().GetString("ui")
	mode, err := readUIMode(uiStr)
	if err != nil {
		return err
	}
	watching, _ := cmd.Flags().GetBool("watch")
	ok, err := b.run(cmd.Context(), shouldUseTUI(mode) && !watching)
	if err != nil {
		return err
	}
	if watching {
		failed = false
		return b.watch(cmd.Context())
	}
	if !ok {
		return errReported
	}
	failed = false
	return nil
}

// builder runs one compilation per call with fixed options.
type builder struct {
	cmd     *cobra.Command
	root    string
	opts    *options.CompilerOptions
	cache   *symcache.Cache
	report  reportOptions
	timings bool
	quiet   bool
	out     io.Writer
	errOut  io.Writer
}

func newBuilder(cmd *cobra.Command, root string) (*builder, error) {
	opts, err := loadOptions(cmd, root)
	if err != nil {
		return nil, err
	}
	report, err := readReportOptions(cmd)
	if err != nil {
		return nil, err
	}
	timings, _ := cmd.Flags().GetBool("timings")
	return &builder{
		cmd:     cmd,
		root:    root,
		opts:    opts,
		cache:   openCache(cmd, opts),
		report:  report,
		timings: timings,
		quiet:   quiet(cmd),
		out:     cmd.OutOrStdout(),
		errOut:  cmd.ErrOrStderr(),
	}, nil
}

// run compiles once and prints the outcome. It reports whether the
// compilation succeeded without being cancelled.
func (b *builder) run(ctx context.Context, tui bool) (bool, error) {
	var timer *observ.Timer
	if b.timings {
		timer = observ.NewTimer()
		ctx = observ.WithTimer(ctx, timer)
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "compile", trace.CurrentSpan(ctx).SpanID).
		WithExtra("root", b.root)
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	files := source.NewFileSet(b.root)
	req := compiler.ProjectRequest{Root: b.root, Files: files}
	cfg := compiler.Config{Cache: b.cache}
	var res diag.Result[*compiler.WrittenSet]
	if tui {
		paths, err := compiler.DocumentPaths(b.root)
		if err != nil {
			span.End("error")
			return false, err
		}
		var uiErr error
		res, uiErr = runCompileWithUI(ctx, "cs2ts compile "+b.root, paths, cfg, req, b.opts)
		if uiErr != nil && ctx.Err() == nil {
			span.End("error")
			return false, errors.Wrap(uiErr, "progress UI")
		}
	} else {
		res = compiler.New(cfg).Compile(ctx, req, b.opts)
	}
	span.End(diagfmt.Summary(res.Diagnostics))

	if err := writeDiagnostics(b.out, res.Diagnostics, files, b.report); err != nil {
		return false, errors.Wrap(err, "write diagnostics")
	}
	if !b.quiet {
		fmt.Fprintln(b.errOut, outcomeLine(res))
	}
	if timer != nil {
		fmt.Fprint(b.errOut, timer.Summary())
	}
	return res.Success() && !res.Cancelled, nil
}

func outcomeLine(res diag.Result[*compiler.WrittenSet]) string {
	summary := diagfmt.Summary(res.Diagnostics)
	switch {
	case res.Cancelled:
		return "compilation cancelled (" + summary + ")"
	case !res.Success():
		return "compilation failed (" + summary + ")"
	case res.Value == nil || len(res.Value.Files) == 0:
		n := 0
		if res.Value != nil && res.Value.Emitted != nil {
			n = len(res.Value.Emitted.Files)
		}
		return fmt.Sprintf("translated %s, nothing written (%s)", count(n, "document"), summary)
	default:
		return fmt.Sprintf("wrote %s (%s)", count(len(res.Value.Files), "file"), summary)
	}
}

// watch recompiles after every batch of source changes until ctx is done.
func (b *builder) watch(ctx context.Context) error {
	w, err := watch.New(b.root, watch.DefaultDebounce)
	if err != nil {
		return err
	}
	if !b.quiet {
		fmt.Fprintf(b.errOut, "watching %s for changes (Ctrl+C to stop)\n", b.root)
	}
	var runErr error
	err = w.Run(ctx, func(paths []string) {
		if !b.quiet {
			rel := make([]string, len(paths))
			for i, p := range paths {
				rel[i] = source.RelativeTo(p, b.root)
			}
			fmt.Fprintf(b.errOut, "\nchanged: %s\n", strings.Join(rel, ", "))
		}
		if slices.ContainsFunc(paths, func(p string) bool { return filepath.Base(p) == options.ManifestName }) {
			opts, err := loadOptions(b.cmd, b.root)
			if err != nil {
				fmt.Fprintf(b.errOut, "error: %v (keeping previous options)\n", err)
			} else {
				b.opts = opts
			}
		}
		if _, err := b.run(ctx, false); err != nil && runErr == nil {
			runErr = err
		}
	})
	return errors.CombineErrors(err, runErr)
}

func count(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
