package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cs2ts/internal/diag"
	"cs2ts/internal/source"
)

const tabWidth = 4

type palette struct {
	sev      map[diag.Severity]*color.Color
	location *color.Color
	gutter   *color.Color
	note     *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
			diag.SevHidden:  color.New(color.Faint),
		},
		location: color.New(color.Bold),
		gutter:   color.New(color.FgBlue, color.Bold),
		note:     color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.location, p.gutter, p.note} {
		setColor(c, enabled)
	}
	for _, c := range p.sev {
		setColor(c, enabled)
	}
	return p
}

func setColor(c *color.Color, enabled bool) {
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
}

// Pretty writes diagnostics in a compiler-style layout:
//
//	src/Shapes.cs:3:9: error CST2001: unresolved symbol 'Foo'
//	  3 | var x = Foo();
//	    |         ^~~
//
// The source excerpt needs fs; without it only the header lines are printed.
// Diagnostics are printed in the order given.
func Pretty(w io.Writer, diags []*diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	var b strings.Builder
	for i, d := range visible(diags, opts.IncludeHidden, opts.Max) {
		if i > 0 {
			b.WriteByte('\n')
		}
		sev := p.sev[d.Severity]
		if loc := locationString(d.Location, fs, opts.PathMode); loc != "" {
			b.WriteString(p.location.Sprint(loc + ":"))
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s %s\n", sev.Sprintf("%s %s:", d.Severity.Label(), d.ID), d.Message)
		writeExcerpt(&b, d.Location, fs, opts.Context, p, sev)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			b.WriteString("  ")
			b.WriteString(p.note.Sprint("note:"))
			if loc := locationString(n.Location, fs, opts.PathMode); loc != "" {
				b.WriteString(" " + loc + ":")
			}
			b.WriteString(" " + n.Msg + "\n")
			writeExcerpt(&b, n.Location, fs, 0, p, p.note)
		}
	}
	if rest := hiddenByCap(diags, opts.IncludeHidden, opts.Max); rest > 0 {
		fmt.Fprintf(&b, "\n... %d more diagnostics not shown\n", rest)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func hiddenByCap(diags []*diag.Diagnostic, includeHidden bool, limit int) int {
	if limit <= 0 {
		return 0
	}
	n := 0
	for _, d := range diags {
		if d.Severity != diag.SevHidden || includeHidden {
			n++
		}
	}
	return max(n-limit, 0)
}

func writeExcerpt(b *strings.Builder, loc *diag.Location, fs *source.FileSet, context int, p palette, mark *color.Color) {
	if loc == nil || fs == nil || loc.Pos.Line == 0 {
		return
	}
	f := fs.Get(loc.Span.File)
	if f == nil || f.Path != loc.Path {
		return
	}
	start, end := fs.Resolve(loc.Span)
	first := start.Line
	if context > 0 {
		first = uint32(max(int(start.Line)-context, 1)) // #nosec G115 -- bounded by start.Line
	}
	width := len(strconv.FormatUint(uint64(start.Line), 10))
	pad := strings.Repeat(" ", width)

	for n := first; n <= start.Line; n++ {
		fmt.Fprintf(b, "  %s %s\n", p.gutter.Sprintf("%*d |", width, n), expandTabs(f.Line(n)))
	}

	line := f.Line(start.Line)
	from := clamp(int(start.Col)-1, len(line))
	to := len(line)
	if end.Line == start.Line {
		to = clamp(int(end.Col)-1, len(line))
	}
	to = max(to, from)
	indent := runewidth.StringWidth(expandTabs(line[:from]))
	span := max(runewidth.StringWidth(expandTabs(line[from:to])), 1)
	caret := "^" + strings.Repeat("~", span-1)
	fmt.Fprintf(b, "  %s %s%s\n", p.gutter.Sprint(pad+" |"), strings.Repeat(" ", indent), mark.Sprint(caret))
}

func clamp(v, hi int) int {
	return min(max(v, 0), hi)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// Short writes one line per diagnostic.
func Short(w io.Writer, diags []*diag.Diagnostic, includeHidden, includeNotes bool) error {
	out := diag.FormatShort(diags, includeHidden, includeNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}

// Summary renders "2 errors, 1 warning".
func Summary(diags []*diag.Diagnostic) string {
	errs := diag.CountSeverity(diags, diag.SevError)
	warns := diag.CountSeverity(diags, diag.SevWarning)
	return plural(errs, "error") + ", " + plural(warns, "warning")
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
