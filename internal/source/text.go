package source

import (
	"bytes"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// normalizeCRLF rewrites \r\n to \n and leaves lone \r untouched.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, []byte("\r\n")) {
		return content, false
	}
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n")), true
}

func removeBOM(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, utf8BOM) {
		return content[len(utf8BOM):], true
	}
	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) // #nosec G115 -- content length checked by FileSet.Add
		}
	}
	return out
}

// toLineCol maps a byte offset to a 1-based position.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// число переводов строк строго до off = индекс строки
	line := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= off })
	var start uint32
	if line > 0 {
		start = lineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line) + 1, Col: off - start + 1} // #nosec G115
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// RelativeTo returns target relative to base as a slash path.
// Paths outside base are returned unchanged.
func RelativeTo(target, base string) string {
	if base == "" {
		return normalizePath(target)
	}
	rel, err := filepath.Rel(base, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(target)
	}
	return normalizePath(rel)
}

// ReplaceExt swaps the extension of a slash path.
func ReplaceExt(p, ext string) string {
	return strings.TrimSuffix(p, path.Ext(p)) + ext
}
