package main

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"

	"cs2ts/internal/diag"
	"cs2ts/internal/diagfmt"
	"cs2ts/internal/source"
	"cs2ts/internal/version"
)

type diagFormat string

const (
	formatPretty diagFormat = "pretty"
	formatShort  diagFormat = "short"
	formatJSON   diagFormat = "json"
	formatSarif  diagFormat = "sarif"
)

func readDiagFormat(value string) (diagFormat, error) {
	switch f := diagFormat(value); f {
	case formatPretty, formatShort, formatJSON, formatSarif:
		return f, nil
	}
	return "", errors.Newf("invalid --format value %q (expected pretty|short|json|sarif)", value)
}

type reportOptions struct {
	format   diagFormat
	maxDiags int
	pathMode diagfmt.PathMode
	color    bool
	hidden   bool
}

// writeDiagnostics renders diags to w. The machine formats are written
// even when empty so consumers always get a document.
func writeDiagnostics(w io.Writer, diags []*diag.Diagnostic, fs *source.FileSet, ro reportOptions) error {
	switch ro.format {
	case formatJSON:
		return diagfmt.JSON(w, diags, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			IncludeHidden:    ro.hidden,
			PathMode:         ro.pathMode,
			Max:              ro.maxDiags,
		})
	case formatSarif:
		return diagfmt.Sarif(w, diags, fs, diagfmt.SarifRunMeta{
			ToolName:       "cs2ts",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	case formatShort:
		return diagfmt.Short(w, diags, ro.hidden, true)
	default:
		return diagfmt.Pretty(w, diags, fs, diagfmt.PrettyOpts{
			Color:         ro.color,
			PathMode:      ro.pathMode,
			ShowNotes:     true,
			IncludeHidden: ro.hidden,
			Max:           ro.maxDiags,
		})
	}
}
