// Package version holds build metadata for the cs2ts CLI.
// The variables are overridden at build time via -ldflags.
package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with one color per numeric segment. Versions
// that are not dotted triples are returned unchanged.
func Colored(enabled bool) string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version
	}
	segs := make([]string, 3)
	for i, c := range []*color.Color{majorColor, minorColor, patchColor} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		segs[i] = c.Sprint(parts[i])
	}
	out := strings.Join(segs, ".")
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// String is the full version line printed by "cs2ts version".
func String(enabled bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "cs2ts %s", Colored(enabled))
	if GitCommit != "" {
		commit := GitCommit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		fmt.Fprintf(&b, " (%s)", commit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&b, " built %s", BuildDate)
	}
	return b.String()
}
