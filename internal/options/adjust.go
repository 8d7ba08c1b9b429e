package options

import (
	"strings"

	"cs2ts/internal/diag"
)

// DiagnosticOption is the configured reaction to a diagnostic id.
type DiagnosticOption string

const (
	OptionDefault  DiagnosticOption = "default"
	OptionError    DiagnosticOption = "error"
	OptionWarn     DiagnosticOption = "warn"
	OptionInfo     DiagnosticOption = "info"
	OptionHidden   DiagnosticOption = "hidden"
	OptionSuppress DiagnosticOption = "suppress"
)

func (o DiagnosticOption) valid() bool {
	switch o {
	case "", OptionDefault, OptionError, OptionWarn, OptionInfo, OptionHidden, OptionSuppress:
		return true
	}
	return false
}

// Adjust applies the severity options to d. It returns false when d is
// suppressed. Diagnostics whose severity is not configurable pass unchanged.
//
// A specific option for d's id beats the general option and the warning
// level; the general option only touches warnings.
func (o *CompilerOptions) Adjust(d *diag.Diagnostic) (*diag.Diagnostic, bool) {
	if d == nil || !d.IsSeverityConfigurable {
		return d, d != nil
	}
	sev := d.DefaultSeverity
	if specific, ok := o.specific(d.ID); ok && specific != OptionDefault && specific != "" {
		if specific == OptionSuppress {
			return nil, false
		}
		return withSeverity(d, specific.severity()), true
	}
	if sev == diag.SevWarning && d.WarningLevel > o.WarningLevel {
		return nil, false
	}
	if sev == diag.SevWarning {
		switch o.GeneralDiagnosticOption {
		case OptionSuppress:
			return nil, false
		case OptionError:
			sev = diag.SevError
		}
	}
	return withSeverity(d, sev), true
}

func (o *CompilerOptions) specific(id string) (DiagnosticOption, bool) {
	if len(o.SpecificDiagnosticOptions) == 0 {
		return "", false
	}
	if opt, ok := o.SpecificDiagnosticOptions[id]; ok {
		return opt, true
	}
	opt, ok := o.SpecificDiagnosticOptions[strings.ToUpper(id)]
	return opt, ok
}

func (o DiagnosticOption) severity() diag.Severity {
	switch o {
	case OptionError:
		return diag.SevError
	case OptionWarn:
		return diag.SevWarning
	case OptionInfo:
		return diag.SevInfo
	}
	return diag.SevHidden
}

func withSeverity(d *diag.Diagnostic, sev diag.Severity) *diag.Diagnostic {
	if d.Severity == sev {
		return d
	}
	return d.WithSeverity(sev)
}

var _ diag.Adjuster = (*CompilerOptions)(nil)
