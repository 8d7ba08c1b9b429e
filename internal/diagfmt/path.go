package diagfmt

import (
	"path"
	"path/filepath"

	"cs2ts/internal/diag"
	"cs2ts/internal/source"
)

func formatPath(p string, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeBasename:
		return path.Base(p)
	case PathModeAbsolute:
		if fs == nil || filepath.IsAbs(p) {
			return p
		}
		return filepath.ToSlash(filepath.Join(fs.BaseDir(), filepath.FromSlash(p)))
	case PathModeRelative:
		if fs == nil || !filepath.IsAbs(p) {
			return p
		}
		return source.RelativeTo(p, fs.BaseDir())
	default:
		return p
	}
}

// locationString renders path:line:col with the chosen path mode.
func locationString(loc *diag.Location, fs *source.FileSet, mode PathMode) string {
	if loc == nil {
		return ""
	}
	cp := *loc
	cp.Path = formatPath(loc.Path, fs, mode)
	return cp.String()
}

// visible applies the hidden filter and the output cap.
func visible(diags []*diag.Diagnostic, includeHidden bool, limit int) []*diag.Diagnostic {
	kept := diag.NewBag(limit)
	for _, d := range diags {
		if d.Severity == diag.SevHidden && !includeHidden {
			continue
		}
		if !kept.Add(d) {
			break
		}
	}
	return kept.Items()
}
