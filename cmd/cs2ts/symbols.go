package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"cs2ts/internal/compiler"
	"cs2ts/internal/source"
	"cs2ts/internal/symtab"
	"cs2ts/internal/trace"
)

func newSymbolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols [dir]",
		Short: "Print the symbol tables of a C# project",
		Long: `Run the front stages of the compiler and print the tables used by
translation: script names, import origins, inline code templates and
alternate signatures.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSymbols,
	}
	cmd.Flags().String("tables", "text", "table output (text|json)")
	addProjectFlags(cmd)
	addReportFlags(cmd)
	return cmd
}

func runSymbols(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	failed := true
	defer func() { cleanup(failed) }()

	tablesFormat, _ := cmd.Flags().GetString("tables")
	if tablesFormat != "text" && tablesFormat != "json" {
		return errors.Newf("invalid --tables value %q (expected text|json)", tablesFormat)
	}
	root := projectRoot(args)
	opts, err := loadOptions(cmd, root)
	if err != nil {
		return err
	}
	report, err := readReportOptions(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "symbols", 0).WithExtra("root", root)
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})
	files := source.NewFileSet(root)
	res := compiler.New(compiler.Config{Cache: openCache(cmd, opts)}).
		Symbols(ctx, compiler.ProjectRequest{Root: root, Files: files}, opts)
	span.End("")

	if err := writeDiagnostics(cmd.ErrOrStderr(), res.Diagnostics, files, report); err != nil {
		return err
	}
	if res.Cancelled || !res.Success() || res.Value == nil {
		return errReported
	}
	if tablesFormat == "json" {
		err = writeTablesJSON(cmd.OutOrStdout(), res.Value)
	} else {
		err = writeTablesText(cmd.OutOrStdout(), res.Value)
	}
	if err != nil {
		return err
	}
	failed = false
	return nil
}

type tablesJSON struct {
	Names      map[string]string           `json:"names"`
	Imports    map[string]symtab.Origin    `json:"imports"`
	Inline     map[string]string           `json:"inline"`
	Alternates map[string]symtab.Alternate `json:"alternates"`
}

func writeTablesJSON(w io.Writer, t *symtab.Tables) error {
	snap := t.Snapshot()
	out := tablesJSON{
		Names:      snap.Names,
		Imports:    snap.Imports,
		Inline:     make(map[string]string, len(snap.Inline)),
		Alternates: snap.Alternates,
	}
	for k, tpl := range snap.Inline {
		out.Inline[k] = tpl.Source
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeTablesText(w io.Writer, t *symtab.Tables) error {
	var b strings.Builder
	fmt.Fprintf(&b, "names (%d)\n", t.Names.Len())
	for _, k := range t.Names.Keys() {
		name, _ := t.Names.Lookup(k)
		fmt.Fprintf(&b, "  %s -> %s\n", k, name)
	}
	fmt.Fprintf(&b, "imports (%d)\n", t.Imports.Len())
	for _, k := range t.Imports.Keys() {
		o, _ := t.Imports.Lookup(k)
		from := o.Path
		if o.Module != "" {
			from = o.Module
		}
		fmt.Fprintf(&b, "  %s -> %s from %q\n", k, o.Name, from)
	}
	fmt.Fprintf(&b, "inline (%d)\n", t.Inline.Len())
	for _, k := range t.Inline.Keys() {
		tpl, _ := t.Inline.Lookup(k)
		fmt.Fprintf(&b, "  %s -> %s\n", k, tpl.Source)
	}
	fmt.Fprintf(&b, "alternates (%d)\n", t.Alternates.Len())
	for _, k := range t.Alternates.Keys() {
		a, _ := t.Alternates.Lookup(k)
		fmt.Fprintf(&b, "  %s -> %s %v\n", k, a.Canonical, a.Permutation)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
