package diagfmt

// PathMode selects how document paths are printed.
type PathMode uint8

const (
	// PathModeAuto prints paths as the project stores them, relative to the root.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode accepts auto, absolute, relative and basename.
func ParsePathMode(s string) (PathMode, bool) {
	switch s {
	case "", "auto":
		return PathModeAuto, true
	case "absolute":
		return PathModeAbsolute, true
	case "relative":
		return PathModeRelative, true
	case "basename":
		return PathModeBasename, true
	}
	return PathModeAuto, false
}

// PrettyOpts configures Pretty.
type PrettyOpts struct {
	Color         bool
	Context       int // source lines shown above the primary line
	PathMode      PathMode
	ShowNotes     bool
	IncludeHidden bool
	Max           int // 0 prints everything
}

// JSONOpts configures JSON.
type JSONOpts struct {
	IncludePositions bool
	PathMode         PathMode
	IncludeNotes     bool
	IncludeHidden    bool
	Max              int
}

// SarifRunMeta describes the tool in SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InformationURI string
	InvocationArgs []string
}
