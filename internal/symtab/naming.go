package symtab

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"cs2ts/internal/frontend"
	"cs2ts/internal/options"
)

// reserved are the words a TypeScript identifier may not be.
var reserved = map[string]struct{}{
	"break": {}, "case": {}, "catch": {}, "class": {}, "const": {}, "continue": {},
	"debugger": {}, "default": {}, "delete": {}, "do": {}, "else": {}, "enum": {},
	"export": {}, "extends": {}, "false": {}, "finally": {}, "for": {}, "function": {},
	"if": {}, "import": {}, "in": {}, "instanceof": {}, "new": {}, "null": {},
	"return": {}, "super": {}, "switch": {}, "this": {}, "throw": {}, "true": {},
	"try": {}, "typeof": {}, "var": {}, "void": {}, "while": {}, "with": {},
	"implements": {}, "interface": {}, "let": {}, "package": {}, "private": {},
	"protected": {}, "public": {}, "static": {}, "yield": {}, "await": {},
	"arguments": {}, "eval": {}, "undefined": {},
}

// IsReserved reports whether name cannot be used as a TypeScript identifier.
func IsReserved(name string) bool {
	_, ok := reserved[name]
	return ok
}

// Escape prefixes reserved words with $. Locals and parameters, which have
// no table entry, go through it.
func Escape(name string) string {
	if IsReserved(name) {
		return "$" + name
	}
	return name
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Pc, r)):
		default:
			return false
		}
	}
	return true
}

// validScriptName accepts identifiers; types may also use dotted paths
// such as "Intl.NumberFormat".
func validScriptName(s string, kind frontend.SymbolKind) bool {
	if !kind.IsType() {
		return isIdentifier(s)
	}
	for part := range strings.SplitSeq(s, ".") {
		if !isIdentifier(part) {
			return false
		}
	}
	return true
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || !unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func applyMemberRule(rule options.MemberRule, name string) string {
	if rule == options.MatchCSharpName {
		return name
	}
	return lowerFirst(name)
}
