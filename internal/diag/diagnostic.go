package diag

import (
	"fmt"

	"cs2ts/internal/source"
)

// Location points a diagnostic at a document.
type Location struct {
	Path string
	Span source.Span
	Pos  source.LineCol
}

// String renders path:line:col.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Pos.Line == 0 {
		return l.Path
	}
	return fmt.Sprintf("%s:%d:%d", l.Path, l.Pos.Line, l.Pos.Col)
}

// Note is a secondary message attached to a diagnostic.
type Note struct {
	Location *Location
	Msg      string
}

// Diagnostic is one finding of the front-end or of a compiler stage.
type Diagnostic struct {
	ID       string
	Code     Code // UnknownCode for front-end diagnostics
	Category Category
	Severity Severity
	// DefaultSeverity is kept so that adjustment is idempotent.
	DefaultSeverity        Severity
	WarningLevel           int
	IsSeverityConfigurable bool
	Message                string
	Location               *Location
	Notes                  []Note
}

// New builds a compiler-owned diagnostic with the defaults of code.
func New(code Code, loc *Location, format string, args ...any) *Diagnostic {
	d := code.descriptor()
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Diagnostic{
		ID:                     code.ID(),
		Code:                   code,
		Category:               d.category,
		Severity:               d.severity,
		DefaultSeverity:        d.severity,
		WarningLevel:           d.warningLevel,
		IsSeverityConfigurable: d.configurable,
		Message:                msg,
		Location:               loc,
	}
}

// External wraps a diagnostic reported by the front-end service.
// Front-end warnings may be reconfigured, errors may not.
func External(id string, sev Severity, loc *Location, msg string) *Diagnostic {
	return &Diagnostic{
		ID:                     id,
		Category:               CategoryFrontEnd,
		Severity:               sev,
		DefaultSeverity:        sev,
		WarningLevel:           1,
		IsSeverityConfigurable: sev < SevError,
		Message:                msg,
		Location:               loc,
	}
}

// WithNote returns a copy carrying an extra note.
func (d *Diagnostic) WithNote(loc *Location, msg string) *Diagnostic {
	cp := *d
	cp.Notes = append(append([]Note(nil), d.Notes...), Note{Location: loc, Msg: msg})
	return &cp
}

// WithSeverity returns a copy with a different effective severity.
func (d *Diagnostic) WithSeverity(sev Severity) *Diagnostic {
	cp := *d
	cp.Severity = sev
	return &cp
}

// Path returns the document path, or "" for project-level diagnostics.
func (d *Diagnostic) Path() string {
	if d.Location == nil {
		return ""
	}
	return d.Location.Path
}

// String renders the short single-line form.
func (d *Diagnostic) String() string {
	if d.Location == nil {
		return fmt.Sprintf("%s %s: %s", d.Severity.Label(), d.ID, d.Message)
	}
	return fmt.Sprintf("%s: %s %s: %s", d.Location, d.Severity.Label(), d.ID, d.Message)
}
