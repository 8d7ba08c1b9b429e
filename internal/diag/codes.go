package diag

import "fmt"

// Code is a compiler-owned diagnostic identifier.
type Code uint16

const (
	UnknownCode Code = 0

	// Pipeline / project
	PrjNoDocuments       Code = 1001
	PrjReadFailed        Code = 1002
	PrjFrontEndFailed    Code = 1003
	PrjWriteFailed       Code = 1004
	PrjNoTypeDeclaration Code = 1005
	PrjSymbolCacheFailed Code = 1006

	// Translation
	TrUnresolvedSymbol     Code = 2001
	TrUnsupportedSyntax    Code = 2002
	TrInlineCodeInvalid    Code = 2003
	TrUnknownType          Code = 2004
	TrEmitFailed           Code = 2005
	TrImportedTypeSkipped  Code = 2006
	TrAmbiguousInvocation  Code = 2007
	TrUnsupportedParameter Code = 2008

	// Validation
	ValPartialTypeSplit      Code = 3001
	ValDuplicateScriptName   Code = 3002
	ValStructAsClass         Code = 3003
	ValUnsupportedOperator   Code = 3004
	ValNestedTypeFlattened   Code = 3005
	ValGenericConstraintLost Code = 3006

	// Symbol tables
	SymAlternateWithoutMain   Code = 4001
	SymAlternateMultipleMain  Code = 4002
	SymAlternateParamMismatch Code = 4003
	SymInvalidScriptName      Code = 4004
	SymReservedWordRenamed    Code = 4005
	SymOverrideUnknownSymbol  Code = 4006
)

// descriptor holds the defaults for one code.
type descriptor struct {
	title        string
	category     Category
	severity     Severity
	warningLevel int
	configurable bool
}

var descriptors = map[Code]descriptor{
	UnknownCode: {"unknown diagnostic", CategoryPipeline, SevError, 0, false},

	PrjNoDocuments:       {"project contains no C# documents", CategoryPipeline, SevWarning, 1, true},
	PrjReadFailed:        {"cannot read document", CategoryIO, SevError, 0, false},
	PrjFrontEndFailed:    {"front-end failed to analyse document", CategoryFrontEnd, SevError, 0, false},
	PrjWriteFailed:       {"cannot write output file", CategoryIO, SevError, 0, false},
	PrjNoTypeDeclaration: {"document declares no types and is not translated", CategoryPipeline, SevHidden, 4, true},
	PrjSymbolCacheFailed: {"symbol table cache unavailable", CategoryIO, SevInfo, 3, true},

	TrUnresolvedSymbol:     {"unresolved symbol", CategoryTranslation, SevError, 0, false},
	TrUnsupportedSyntax:    {"construct cannot be translated", CategoryTranslation, SevError, 0, false},
	TrInlineCodeInvalid:    {"invalid inline code template", CategoryTranslation, SevError, 0, false},
	TrUnknownType:          {"type has no TypeScript equivalent, using any", CategoryTranslation, SevWarning, 2, true},
	TrEmitFailed:           {"cannot emit TypeScript text", CategoryTranslation, SevError, 0, false},
	TrImportedTypeSkipped:  {"imported type is not emitted", CategoryTranslation, SevInfo, 4, true},
	TrAmbiguousInvocation:  {"invocation resolved to the first matching overload", CategoryTranslation, SevWarning, 3, true},
	TrUnsupportedParameter: {"parameter modifier cannot be translated", CategoryTranslation, SevError, 0, false},

	ValPartialTypeSplit:      {"partial type is split across documents", CategoryValidation, SevError, 0, false},
	ValDuplicateScriptName:   {"members share a script name", CategoryValidation, SevError, 0, false},
	ValStructAsClass:         {"struct is translated as a class", CategoryValidation, SevWarning, 2, true},
	ValUnsupportedOperator:   {"user-defined operator cannot be translated", CategoryValidation, SevError, 0, false},
	ValNestedTypeFlattened:   {"nested type is hoisted to module scope", CategoryValidation, SevInfo, 4, true},
	ValGenericConstraintLost: {"generic constraint is not translated", CategoryValidation, SevWarning, 4, true},

	SymAlternateWithoutMain:   {"alternate signature has no implementation", CategorySymbols, SevError, 0, false},
	SymAlternateMultipleMain:  {"method group has more than one implementation", CategorySymbols, SevError, 0, false},
	SymAlternateParamMismatch: {"alternate signature parameter has no counterpart", CategorySymbols, SevError, 0, false},
	SymInvalidScriptName:      {"script name is not a valid identifier", CategorySymbols, SevError, 0, false},
	SymReservedWordRenamed:    {"name is reserved in TypeScript and was prefixed", CategorySymbols, SevInfo, 4, true},
	SymOverrideUnknownSymbol:  {"symbol table override does not match any symbol", CategorySymbols, SevWarning, 1, true},
}

// ID renders the code as CST followed by four digits.
func (c Code) ID() string {
	return fmt.Sprintf("CST%04d", int(c))
}

// Title returns the short description of the code.
func (c Code) Title() string {
	if d, ok := descriptors[c]; ok {
		return d.title
	}
	return descriptors[UnknownCode].title
}

// String returns the ID.
func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

func (c Code) descriptor() descriptor {
	if d, ok := descriptors[c]; ok {
		return d
	}
	return descriptors[UnknownCode]
}

// DefaultSeverity is the severity before option adjustment.
func (c Code) DefaultSeverity() Severity {
	return c.descriptor().severity
}

// Category is the coarse origin of a diagnostic.
type Category string

const (
	CategoryFrontEnd    Category = "FrontEnd"
	CategoryPipeline    Category = "Pipeline"
	CategoryIO          Category = "IO"
	CategorySymbols     Category = "Symbols"
	CategoryValidation  Category = "Validation"
	CategoryTranslation Category = "Translation"
)
