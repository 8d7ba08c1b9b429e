package diag

import (
	"fmt"
	"strings"
)

// FormatShort renders one line per diagnostic:
//
//	error CST2001 src/Program.cs:3:9 unresolved symbol 'Foo'
//
// Hidden diagnostics are skipped unless includeHidden is set.
func FormatShort(diags []*Diagnostic, includeHidden, includeNotes bool) string {
	var b strings.Builder
	for _, d := range diags {
		if d.Severity == SevHidden && !includeHidden {
			continue
		}
		writeShort(&b, d.Severity.Label(), d.ID, d.Location, d.Message)
		if includeNotes {
			for _, n := range d.Notes {
				writeShort(&b, "note", d.ID, n.Location, n.Msg)
			}
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func writeShort(b *strings.Builder, sev, id string, loc *Location, msg string) {
	fmt.Fprintf(b, "%s %s", sev, id)
	if loc != nil {
		fmt.Fprintf(b, " %s", loc)
	}
	fmt.Fprintf(b, " %s\n", sanitizeMessage(msg))
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", " ")
	return strings.ReplaceAll(msg, "\n", " ")
}
