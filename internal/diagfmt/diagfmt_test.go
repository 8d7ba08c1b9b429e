package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cs2ts/internal/diag"
	"cs2ts/internal/source"
)

const program = "namespace App {\n\tclass A { int x = Foo(); }\n}\n"

func fixture(t *testing.T, path, content string) (*source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet("/home/user/project")
	return fs, fs.AddVirtual(path, []byte(content))
}

func locate(fs *source.FileSet, id source.FileID, start, end uint32) *diag.Location {
	f := fs.Get(id)
	return &diag.Location{Path: f.Path, Span: source.Span{File: id, Start: start, End: end}, Pos: f.Position(start)}
}

func unresolved(fs *source.FileSet, id source.FileID) *diag.Diagnostic {
	return diag.New(diag.TrUnresolvedSymbol, locate(fs, id, 35, 38), "unresolved symbol '%s'", "Foo")
}

func TestPrettyRendersExcerpt(t *testing.T) {
	fs, id := fixture(t, "src/Program.cs", program)
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, []*diag.Diagnostic{unresolved(fs, id)}, fs, PrettyOpts{}))

	want := "src/Program.cs:2:20: error CST2001: unresolved symbol 'Foo'\n" +
		"  2 |     class A { int x = Foo(); }\n" +
		"    | " + strings.Repeat(" ", 22) + "^~~\n"
	assert.Equal(t, want, buf.String())
}

func TestPrettyContextLines(t *testing.T) {
	fs, id := fixture(t, "src/Program.cs", program)
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, []*diag.Diagnostic{unresolved(fs, id)}, fs, PrettyOpts{Context: 5}))
	assert.Contains(t, buf.String(), "  1 | namespace App {\n  2 |")
}

func TestPrettyPathModes(t *testing.T) {
	fs, id := fixture(t, "src/Program.cs", program)
	tests := []struct {
		name string
		mode PathMode
		want string
	}{
		{"auto", PathModeAuto, "src/Program.cs:2:20:"},
		{"absolute", PathModeAbsolute, "/home/user/project/src/Program.cs:2:20:"},
		{"relative", PathModeRelative, "src/Program.cs:2:20:"},
		{"basename", PathModeBasename, "Program.cs:2:20:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Pretty(&buf, []*diag.Diagnostic{unresolved(fs, id)}, fs, PrettyOpts{PathMode: tt.mode}))
			assert.True(t, strings.HasPrefix(buf.String(), tt.want), buf.String())
		})
	}

	mode, ok := ParsePathMode("basename")
	assert.True(t, ok)
	assert.Equal(t, PathModeBasename, mode)
	_, ok = ParsePathMode("short")
	assert.False(t, ok)
}

func TestPrettyAlignsWideCharacters(t *testing.T) {
	fs, id := fixture(t, "src/Text.cs", "var s = \"日本\"; Bar();\n")
	d := diag.New(diag.TrUnresolvedSymbol, locate(fs, id, 18, 21), "unresolved symbol 'Bar'")
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, []*diag.Diagnostic{d}, fs, PrettyOpts{}))
	assert.Contains(t, buf.String(), "    | "+strings.Repeat(" ", 16)+"^~~\n")
}

func TestPrettyColorNotesAndCap(t *testing.T) {
	fs, id := fixture(t, "src/Program.cs", program)
	first := unresolved(fs, id).WithNote(locate(fs, id, 0, 9), "namespace starts here")
	second := diag.New(diag.TrUnknownType, nil, "type 'Span<int>' has no TypeScript equivalent")

	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, []*diag.Diagnostic{first, second}, fs, PrettyOpts{Color: true, ShowNotes: true, Max: 1}))
	out := buf.String()
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "namespace starts here")
	assert.Contains(t, out, "1 more diagnostics not shown")
	assert.NotContains(t, out, "Span<int>")
}

func TestPrettySkipsHidden(t *testing.T) {
	d := diag.New(diag.PrjNoTypeDeclaration, nil, "document declares no types")
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, []*diag.Diagnostic{d}, nil, PrettyOpts{}))
	assert.Empty(t, buf.String())

	require.NoError(t, Pretty(&buf, []*diag.Diagnostic{d}, nil, PrettyOpts{IncludeHidden: true}))
	assert.Equal(t, "hidden CST1005: document declares no types\n", buf.String())
}

func TestJSON(t *testing.T) {
	fs, id := fixture(t, "src/Program.cs", program)
	diags := []*diag.Diagnostic{
		unresolved(fs, id).WithNote(nil, "check the using directives"),
		diag.New(diag.TrUnknownType, nil, "no equivalent"),
	}
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, diags, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}))

	var out DiagnosticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, 1, out.Errors)
	assert.Equal(t, 1, out.Warnings)
	require.Len(t, out.Diagnostics, 2)

	first := out.Diagnostics[0]
	assert.Equal(t, "error", first.Severity)
	assert.Equal(t, "CST2001", first.ID)
	require.NotNil(t, first.Location)
	assert.Equal(t, LocationJSON{File: "src/Program.cs", StartByte: 35, EndByte: 38, StartLine: 2, StartCol: 20, EndLine: 2, EndCol: 23}, *first.Location)
	require.Len(t, first.Notes, 1)
	assert.Nil(t, first.Notes[0].Location)
	assert.Nil(t, out.Diagnostics[1].Location)
}

func TestJSONCapKeepsTotals(t *testing.T) {
	fs, id := fixture(t, "src/Program.cs", program)
	diags := []*diag.Diagnostic{unresolved(fs, id), unresolved(fs, id), unresolved(fs, id)}
	got := BuildDiagnosticsOutput(diags, fs, JSONOpts{Max: 2})
	assert.Len(t, got.Diagnostics, 2)
	assert.Equal(t, 3, got.Count)
	assert.Zero(t, got.Diagnostics[0].Location.StartLine)
}

func TestSarif(t *testing.T) {
	fs, id := fixture(t, "src/Program.cs", program)
	diags := []*diag.Diagnostic{
		unresolved(fs, id),
		diag.External("CS0168", diag.SevWarning, locate(fs, id, 26, 27), "The variable 'x' is declared but never used"),
	}
	var buf bytes.Buffer
	require.NoError(t, Sarif(&buf, diags, fs, SarifRunMeta{ToolName: "cs2ts", ToolVersion: "0.1.0", InvocationArgs: []string{"compile"}}))

	var log map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &log))
	assert.Equal(t, "2.1.0", log["version"])
	run := log["runs"].([]any)[0].(map[string]any)
	rules := run["tool"].(map[string]any)["driver"].(map[string]any)["rules"].([]any)
	require.Len(t, rules, 2)
	assert.Equal(t, "CS0168", rules[0].(map[string]any)["id"])
	assert.Equal(t, "CST2001", rules[1].(map[string]any)["id"])

	results := run["results"].([]any)
	require.Len(t, results, 2)
	res := results[0].(map[string]any)
	assert.Equal(t, "error", res["level"])
	region := res["locations"].([]any)[0].(map[string]any)["physicalLocation"].(map[string]any)["region"].(map[string]any)
	assert.InDelta(t, 2, region["startLine"], 0)
	assert.InDelta(t, 20, region["startColumn"], 0)

	inv := run["invocations"].([]any)[0].(map[string]any)
	assert.Equal(t, false, inv["executionSuccessful"])
}

func TestShortAndSummary(t *testing.T) {
	fs, id := fixture(t, "src/Program.cs", program)
	diags := []*diag.Diagnostic{unresolved(fs, id), diag.New(diag.TrUnknownType, nil, "no equivalent")}
	var buf bytes.Buffer
	require.NoError(t, Short(&buf, diags, false, false))
	assert.Equal(t, "error CST2001 src/Program.cs:2:20 unresolved symbol 'Foo'\nwarning CST2004 no equivalent\n", buf.String())

	buf.Reset()
	require.NoError(t, Short(&buf, nil, false, false))
	assert.Empty(t, buf.String())

	assert.Equal(t, "1 error, 1 warning", Summary(diags))
	assert.Equal(t, "0 errors, 0 warnings", Summary(nil))
}
