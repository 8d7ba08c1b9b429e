package diagfmt

import (
	"encoding/json"
	"io"

	"cs2ts/internal/diag"
	"cs2ts/internal/source"
)

// LocationJSON is a resolved source position.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON is a diagnostic note.
type NoteJSON struct {
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
}

// DiagnosticJSON is one entry of the diagnostics array.
type DiagnosticJSON struct {
	Severity     string        `json:"severity"`
	ID           string        `json:"id"`
	Category     string        `json:"category,omitempty"`
	Message      string        `json:"message"`
	WarningLevel int           `json:"warning_level,omitempty"`
	Location     *LocationJSON `json:"location,omitempty"`
	Notes        []NoteJSON    `json:"notes,omitempty"`
}

// DiagnosticsOutput is the top-level JSON document.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
}

// BuildDiagnosticsOutput converts diags into the JSON document model.
// Count and the severity totals cover every diagnostic, not just the
// ones kept by opts.Max.
func BuildDiagnosticsOutput(diags []*diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	kept := visible(diags, opts.IncludeHidden, opts.Max)
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(kept)),
		Count:       len(visible(diags, opts.IncludeHidden, 0)),
		Errors:      diag.CountSeverity(diags, diag.SevError),
		Warnings:    diag.CountSeverity(diags, diag.SevWarning),
	}
	for _, d := range kept {
		dj := DiagnosticJSON{
			Severity:     d.Severity.Label(),
			ID:           d.ID,
			Category:     string(d.Category),
			Message:      d.Message,
			WarningLevel: d.WarningLevel,
			Location:     locationJSON(d.Location, fs, opts),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{Message: n.Msg, Location: locationJSON(n.Location, fs, opts)})
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	return out
}

func locationJSON(loc *diag.Location, fs *source.FileSet, opts JSONOpts) *LocationJSON {
	if loc == nil {
		return nil
	}
	lj := &LocationJSON{
		File:      formatPath(loc.Path, fs, opts.PathMode),
		StartByte: loc.Span.Start,
		EndByte:   loc.Span.End,
	}
	if opts.IncludePositions {
		lj.StartLine, lj.StartCol = loc.Pos.Line, loc.Pos.Col
		if fs != nil {
			if f := fs.Get(loc.Span.File); f != nil && f.Path == loc.Path {
				start, end := fs.Resolve(loc.Span)
				lj.StartLine, lj.StartCol = start.Line, start.Col
				lj.EndLine, lj.EndCol = end.Line, end.Col
			}
		}
	}
	return lj
}

// JSON writes diags as one indented JSON document.
func JSON(w io.Writer, diags []*diag.Diagnostic, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(diags, fs, opts))
}
