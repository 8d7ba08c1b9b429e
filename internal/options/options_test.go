package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cs2ts/internal/diag"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	opts, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4, opts.WarningLevel)
	assert.Equal(t, DollarPrefixOnlyForDuplicateName, opts.RenameRules.Fields)
	assert.Equal(t, LowerCaseFirstChar, opts.RenameRules.Members)
	assert.Equal(t, "\n", opts.EmitterOptions().Newline)
	assert.True(t, opts.EmitterOptions().SingleLineJsDocCommentsOnOneLine)
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	writeFile(t, path, `
output_path = "out"
warning_level = 2
general_diagnostic_option = "error"

[specific_diagnostic_options]
CST3003 = "suppress"

[rename_rules]
fields = "PrivateDollarPrefix"
members = "MatchCSharpName"

[emit]
newline = "crlf"
indentation = "    "
single_line_jsdoc = false

[[symbol_table_overrides]]
symbol = "M:App.Log.Write(System.String)"
inline_code = "console.info({message})"
`)
	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out", opts.OutputPath)
	assert.Equal(t, 2, opts.WarningLevel)
	assert.Equal(t, OptionError, opts.GeneralDiagnosticOption)
	assert.Equal(t, PrivateDollarPrefix, opts.RenameRules.Fields)
	assert.Equal(t, MatchCSharpName, opts.RenameRules.Members)
	assert.Equal(t, LowerCaseFirstChar, opts.RenameRules.EnumMembers)

	opt, ok := opts.specific("CST3003")
	require.True(t, ok)
	assert.Equal(t, OptionSuppress, opt)

	ov, ok := opts.Overrides()["M:App.Log.Write(System.String)"]
	require.True(t, ok, "override keys keep their case")
	assert.Equal(t, "console.info({message})", ov.InlineCode)

	eo := opts.EmitterOptions()
	assert.Equal(t, "\r\n", eo.Newline)
	assert.Equal(t, "    ", eo.IndentationPrefix)
	assert.False(t, eo.SingleLineJsDocCommentsOnOneLine)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("CS2TS_OUTPUT_PATH", "from-env")
	t.Setenv("CS2TS_EMIT_NEWLINE", "crlf")
	opts, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", opts.OutputPath)
	assert.Equal(t, "crlf", opts.Emit.Newline)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"level":    "warning_level = 9\n",
		"rule":     "[rename_rules]\nfields = \"Shout\"\n",
		"option":   "general_diagnostic_option = \"loud\"\n",
		"newline":  "[emit]\nnewline = \"cr\"\n",
		"override": "[[symbol_table_overrides]]\nsymbol = \"T:A\"\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, content)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestDiagnosticIDsAreUpperCasedOnLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, "[specific_diagnostic_options]\nCst2004 = \"error\"\ncst2007 = \"suppress\"\n")
	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]DiagnosticOption{"CST2004": OptionError, "CST2007": OptionSuppress}, opts.SpecificDiagnosticOptions)

	got, keep := opts.Adjust(diag.New(diag.TrUnknownType, nil, "no mapping for %s", "Guid"))
	require.True(t, keep)
	assert.Equal(t, diag.SevError, got.Severity)
	_, keep = opts.Adjust(diag.New(diag.TrAmbiguousInvocation, nil, "two overloads"))
	assert.False(t, keep)
}

func TestValidateRejectsIDsDifferingOnlyInCase(t *testing.T) {
	o := Default()
	o.SpecificDiagnosticOptions = map[string]DiagnosticOption{"CST2004": OptionError, "cst2004": OptionSuppress}
	err := o.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CST2004")
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "")
	deep := filepath.Join(root, "src", "App", "Models")
	require.NoError(t, os.MkdirAll(deep, 0o755))

	path, ok, err := FindManifest(deep)
	require.NoError(t, err)
	require.True(t, ok)
	want, err := filepath.EvalSymlinks(filepath.Join(root, ManifestName))
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWriteManifestThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	want := Default().WithOutputPath("dist").WithOverride(Override{Symbol: "T:App.Widget", ScriptName: "W"})
	require.NoError(t, WriteManifest(path, want))
	require.Error(t, WriteManifest(path, want), "existing manifests are kept")

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dist", got.OutputPath)
	assert.Equal(t, want.RenameRules, got.RenameRules)
	assert.Equal(t, want.Emit, got.Emit)
	require.Len(t, got.SymbolTableOverrides, 1)
	assert.Equal(t, "W", got.SymbolTableOverrides[0].ScriptName)
}

func TestCloneIsDeep(t *testing.T) {
	base := Default().WithDiagnosticOption("cst2004", OptionError)
	cp := base.WithDiagnosticOption("CST2004", OptionHidden)
	assert.Equal(t, OptionError, base.SpecificDiagnosticOptions["CST2004"])
	assert.Equal(t, OptionHidden, cp.SpecificDiagnosticOptions["CST2004"])

	ov := base.WithOverride(Override{Symbol: "T:A", ScriptName: "a"}).WithOverride(Override{Symbol: "T:A", ScriptName: "b"})
	assert.Len(t, ov.SymbolTableOverrides, 1)
	assert.Equal(t, "b", ov.Overrides()["T:A"].ScriptName)
	assert.Empty(t, base.SymbolTableOverrides)
}

func TestAdjust(t *testing.T) {
	unknownType := diag.New(diag.TrUnknownType, nil, "no mapping for %s", "Guid")        // warning, level 2
	ambiguous := diag.New(diag.TrAmbiguousInvocation, nil, "two overloads")              // warning, level 3
	unresolved := diag.New(diag.TrUnresolvedSymbol, nil, "cannot resolve %s", "Missing") // error, fixed
	frontWarning := diag.External("CS0168", diag.SevWarning, nil, "variable declared but never used")

	tests := []struct {
		name string
		opts *CompilerOptions
		in   *diag.Diagnostic
		keep bool
		want diag.Severity
	}{
		{"default keeps warning", Default(), unknownType, true, diag.SevWarning},
		{"level filters warning", func() *CompilerOptions { o := Default(); o.WarningLevel = 2; return o }(), ambiguous, false, 0},
		{"level keeps lower", func() *CompilerOptions { o := Default(); o.WarningLevel = 2; return o }(), unknownType, true, diag.SevWarning},
		{"general error escalates", Default().WithWarningsAsErrors(), unknownType, true, diag.SevError},
		{"specific beats general", Default().WithWarningsAsErrors().WithDiagnosticOption("CST2004", OptionWarn), unknownType, true, diag.SevWarning},
		{"specific suppress", Default().WithDiagnosticOption("cst2004", OptionSuppress), unknownType, false, 0},
		{"specific beats level", func() *CompilerOptions {
			o := Default().WithDiagnosticOption("CST2007", OptionInfo)
			o.WarningLevel = 0
			return o
		}(), ambiguous, true, diag.SevInfo},
		{"errors are fixed", Default().WithDiagnosticOption("CST2001", OptionSuppress), unresolved, true, diag.SevError},
		{"front-end warning configurable", Default().WithWarningsAsErrors(), frontWarning, true, diag.SevError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, keep := tt.opts.Adjust(tt.in)
			require.Equal(t, tt.keep, keep)
			if !keep {
				return
			}
			assert.Equal(t, tt.want, got.Severity)
			assert.Equal(t, tt.in.DefaultSeverity, got.DefaultSeverity)
		})
	}

	// adjusting twice gives the same answer
	o := Default().WithWarningsAsErrors()
	once, _ := o.Adjust(unknownType)
	twice, _ := o.Adjust(once)
	assert.Equal(t, once.Severity, twice.Severity)
	assert.Equal(t, diag.SevWarning, unknownType.Severity, "input is not mutated")
}
