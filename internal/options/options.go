// Package options holds the compilation options. A CompilerOptions value is
// immutable once loaded; Clone and the With helpers return modified copies.
package options

import (
	"maps"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"cs2ts/internal/emit"
)

// ManifestName is the project configuration file looked up by FindManifest.
const ManifestName = "cs2ts.toml"

// MemberRule names members and enum members.
type MemberRule string

const (
	LowerCaseFirstChar MemberRule = "LowerCaseFirstChar"
	MatchCSharpName    MemberRule = "MatchCSharpName"
)

// FieldRule names fields.
type FieldRule string

const (
	FieldLowerCaseFirstChar          FieldRule = "LowerCaseFirstChar"
	PrivateDollarPrefix              FieldRule = "PrivateDollarPrefix"
	DollarPrefixOnlyForDuplicateName FieldRule = "DollarPrefixOnlyForDuplicateName"
)

// RenameRules select how C# names map to script names.
type RenameRules struct {
	EnumMembers MemberRule `mapstructure:"enum_members" toml:"enum_members"`
	Fields      FieldRule  `mapstructure:"fields" toml:"fields"`
	Members     MemberRule `mapstructure:"members" toml:"members"`
}

// Override forces the script name or inline code of one symbol.
// Symbol is the documentation id, e.g. "M:App.Log.Write(System.String)".
type Override struct {
	Symbol     string `mapstructure:"symbol" toml:"symbol"`
	ScriptName string `mapstructure:"script_name" toml:"script_name,omitempty"`
	InlineCode string `mapstructure:"inline_code" toml:"inline_code,omitempty"`
}

// EmitOptions is the manifest form of the emitter options.
type EmitOptions struct {
	Newline         string `mapstructure:"newline" toml:"newline"`
	Indentation     string `mapstructure:"indentation" toml:"indentation"`
	SingleLineJsDoc bool   `mapstructure:"single_line_jsdoc" toml:"single_line_jsdoc"`
}

// CompilerOptions is everything a compilation reads from configuration.
type CompilerOptions struct {
	OutputPath              string           `mapstructure:"output_path" toml:"output_path"`
	WarningLevel            int              `mapstructure:"warning_level" toml:"warning_level"`
	GeneralDiagnosticOption DiagnosticOption `mapstructure:"general_diagnostic_option" toml:"general_diagnostic_option"`
	// SpecificDiagnosticOptions is keyed by upper-case diagnostic id. Load
	// upper-cases the keys viper lower-cases.
	SpecificDiagnosticOptions map[string]DiagnosticOption `mapstructure:"specific_diagnostic_options" toml:"specific_diagnostic_options"`
	RenameRules               RenameRules                 `mapstructure:"rename_rules" toml:"rename_rules"`
	SymbolTableOverrides      []Override                  `mapstructure:"symbol_table_overrides" toml:"symbol_table_overrides"`
	Emit                      EmitOptions                 `mapstructure:"emit" toml:"emit"`
	CacheDir                  string                      `mapstructure:"cache_dir" toml:"cache_dir,omitempty"`
	Jobs                      int                         `mapstructure:"jobs" toml:"jobs,omitempty"`
}

// Default returns the options used when no manifest exists.
func Default() *CompilerOptions {
	return &CompilerOptions{
		WarningLevel:            4,
		GeneralDiagnosticOption: OptionDefault,
		RenameRules: RenameRules{
			EnumMembers: LowerCaseFirstChar,
			Fields:      DollarPrefixOnlyForDuplicateName,
			Members:     LowerCaseFirstChar,
		},
		Emit: EmitOptions{
			Newline:         "lf",
			Indentation:     "  ",
			SingleLineJsDoc: true,
		},
	}
}

// Clone deep-copies o.
func (o *CompilerOptions) Clone() *CompilerOptions {
	cp := *o
	cp.SpecificDiagnosticOptions = maps.Clone(o.SpecificDiagnosticOptions)
	cp.SymbolTableOverrides = slices.Clone(o.SymbolTableOverrides)
	return &cp
}

// WithOutputPath returns a copy writing to path.
func (o *CompilerOptions) WithOutputPath(path string) *CompilerOptions {
	cp := o.Clone()
	cp.OutputPath = path
	return cp
}

// WithWarningsAsErrors escalates every configurable warning.
func (o *CompilerOptions) WithWarningsAsErrors() *CompilerOptions {
	cp := o.Clone()
	cp.GeneralDiagnosticOption = OptionError
	return cp
}

// WithJobs returns a copy running at most n tasks at once; n <= 0 means GOMAXPROCS.
func (o *CompilerOptions) WithJobs(n int) *CompilerOptions {
	cp := o.Clone()
	cp.Jobs = n
	return cp
}

// WithOverride adds or replaces the override for ov.Symbol.
func (o *CompilerOptions) WithOverride(ov Override) *CompilerOptions {
	cp := o.Clone()
	cp.SymbolTableOverrides = slices.DeleteFunc(cp.SymbolTableOverrides, func(x Override) bool { return x.Symbol == ov.Symbol })
	cp.SymbolTableOverrides = append(cp.SymbolTableOverrides, ov)
	return cp
}

// WithDiagnosticOption sets the option of one diagnostic id.
func (o *CompilerOptions) WithDiagnosticOption(id string, opt DiagnosticOption) *CompilerOptions {
	cp := o.Clone()
	if cp.SpecificDiagnosticOptions == nil {
		cp.SpecificDiagnosticOptions = make(map[string]DiagnosticOption)
	}
	cp.SpecificDiagnosticOptions[strings.ToUpper(id)] = opt
	return cp
}

// normalizeDiagnosticIDs upper-cases the keys of SpecificDiagnosticOptions.
// Validate has already rejected keys that differ only in case.
func (o *CompilerOptions) normalizeDiagnosticIDs() {
	if len(o.SpecificDiagnosticOptions) == 0 {
		return
	}
	ids := make(map[string]DiagnosticOption, len(o.SpecificDiagnosticOptions))
	for id, opt := range o.SpecificDiagnosticOptions {
		ids[strings.ToUpper(id)] = opt
	}
	o.SpecificDiagnosticOptions = ids
}

// Overrides indexes SymbolTableOverrides by symbol key; later entries win.
func (o *CompilerOptions) Overrides() map[string]Override {
	out := make(map[string]Override, len(o.SymbolTableOverrides))
	for _, ov := range o.SymbolTableOverrides {
		out[ov.Symbol] = ov
	}
	return out
}

// EmitterOptions converts the emit section for the emitter.
func (o *CompilerOptions) EmitterOptions() emit.Options {
	opt := emit.DefaultOptions()
	if nl, ok := emit.NewlineByName(o.Emit.Newline); ok {
		opt.Newline = nl
	}
	if o.Emit.Indentation != "" {
		opt.IndentationPrefix = o.Emit.Indentation
	}
	opt.SingleLineJsDocCommentsOnOneLine = o.Emit.SingleLineJsDoc
	return opt
}

// Validate reports the first invalid setting.
func (o *CompilerOptions) Validate() error {
	if o.WarningLevel < 0 || o.WarningLevel > 4 {
		return errors.WithHint(errors.Newf("warning_level %d out of range", o.WarningLevel), "use a value between 0 and 4")
	}
	if !o.GeneralDiagnosticOption.valid() {
		return invalidOption("general_diagnostic_option", string(o.GeneralDiagnosticOption))
	}
	seen := make(map[string]string, len(o.SpecificDiagnosticOptions))
	for _, id := range slices.Sorted(maps.Keys(o.SpecificDiagnosticOptions)) {
		if opt := o.SpecificDiagnosticOptions[id]; !opt.valid() {
			return invalidOption("specific_diagnostic_options."+id, string(opt))
		}
		upper := strings.ToUpper(id)
		if prev, dup := seen[upper]; dup {
			return errors.WithHint(errors.Newf("diagnostic id %s is configured as both %s and %s", upper, prev, id), "keep one spelling")
		}
		seen[upper] = id
	}
	switch o.RenameRules.Members {
	case LowerCaseFirstChar, MatchCSharpName:
	default:
		return errors.WithHint(errors.Newf("unknown member rename rule %q", o.RenameRules.Members), "use LowerCaseFirstChar or MatchCSharpName")
	}
	switch o.RenameRules.EnumMembers {
	case LowerCaseFirstChar, MatchCSharpName:
	default:
		return errors.WithHint(errors.Newf("unknown enum member rename rule %q", o.RenameRules.EnumMembers), "use LowerCaseFirstChar or MatchCSharpName")
	}
	switch o.RenameRules.Fields {
	case FieldLowerCaseFirstChar, PrivateDollarPrefix, DollarPrefixOnlyForDuplicateName:
	default:
		return errors.WithHint(errors.Newf("unknown field rename rule %q", o.RenameRules.Fields),
			"use LowerCaseFirstChar, PrivateDollarPrefix or DollarPrefixOnlyForDuplicateName")
	}
	if _, ok := emit.NewlineByName(o.Emit.Newline); !ok {
		return errors.WithHint(errors.Newf("unknown newline %q", o.Emit.Newline), "use lf or crlf")
	}
	if strings.Trim(o.Emit.Indentation, " \t") != "" {
		return errors.WithHint(errors.Newf("indentation %q is not whitespace", o.Emit.Indentation), "use spaces or a tab")
	}
	for i, ov := range o.SymbolTableOverrides {
		if ov.Symbol == "" {
			return errors.Newf("symbol_table_overrides[%d]: symbol is empty", i)
		}
		if ov.ScriptName == "" && ov.InlineCode == "" {
			return errors.WithHint(errors.Newf("symbol_table_overrides[%d] (%s) overrides nothing", i, ov.Symbol),
				"set script_name or inline_code")
		}
	}
	if o.Jobs < 0 {
		return errors.Newf("jobs %d is negative", o.Jobs)
	}
	return nil
}

func invalidOption(key, value string) error {
	return errors.WithHint(errors.Newf("%s: unknown diagnostic option %q", key, value),
		"use default, error, warn, info, hidden or suppress")
}
