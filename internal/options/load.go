package options

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides: CS2TS_OUTPUT_PATH, CS2TS_EMIT_NEWLINE, ...
const EnvPrefix = "CS2TS"

// SetDefaults registers every default with v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("output_path", d.OutputPath)
	v.SetDefault("warning_level", d.WarningLevel)
	v.SetDefault("general_diagnostic_option", string(d.GeneralDiagnosticOption))
	v.SetDefault("rename_rules.enum_members", string(d.RenameRules.EnumMembers))
	v.SetDefault("rename_rules.fields", string(d.RenameRules.Fields))
	v.SetDefault("rename_rules.members", string(d.RenameRules.Members))
	v.SetDefault("emit.newline", d.Emit.Newline)
	v.SetDefault("emit.indentation", d.Emit.Indentation)
	v.SetDefault("emit.single_line_jsdoc", d.Emit.SingleLineJsDoc)
	v.SetDefault("cache_dir", d.CacheDir)
	v.SetDefault("jobs", d.Jobs)
}

// NewViper builds a viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads the manifest at path (empty for defaults only), applies
// environment overrides and validates the result.
func Load(path string) (*CompilerOptions, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}
	opts, err := LoadWithViper(v)
	if err != nil {
		if path != "" {
			return nil, errors.Wrapf(err, "%s", path)
		}
		return nil, err
	}
	return opts, nil
}

// LoadWithViper decodes and validates options from a prepared viper instance.
func LoadWithViper(v *viper.Viper) (*CompilerOptions, error) {
	var opts CompilerOptions
	if err := v.Unmarshal(&opts); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts.normalizeDiagnosticIDs()
	return &opts, nil
}

// FindManifest walks up from startDir to locate cs2ts.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, errors.Wrap(err, "failed to resolve start directory")
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, errors.Wrapf(err, "failed to stat %q", candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// WriteManifest writes opts as TOML. An existing file is not overwritten.
func WriteManifest(path string, opts *CompilerOptions) error {
	// #nosec G304 -- path is chosen by the user
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return errors.WithHint(errors.Newf("%s already exists", path), "edit it or remove it first")
		}
		return errors.Wrapf(err, "create %s", path)
	}
	enc := toml.NewEncoder(f)
	enc.Indent = ""
	if err := enc.Encode(opts); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "encode %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
