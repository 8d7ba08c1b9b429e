package translate

import (
	"cs2ts/internal/diag"
	"cs2ts/internal/frontend"
	"cs2ts/internal/tsast"
)

const listKey = "T:System.Collections.Generic.List`1"

var primitives = map[string]string{
	"T:System.Byte":    "number",
	"T:System.Int16":   "number",
	"T:System.Int32":   "number",
	"T:System.Int64":   "number",
	"T:System.Single":  "number",
	"T:System.Double":  "number",
	"T:System.Decimal": "number",
	"T:System.Char":    "string",
	"T:System.String":  "string",
	"T:System.Boolean": "boolean",
	"T:System.Object":  "any",
	"T:System.Void":    "void",
}

var integral = map[string]bool{
	"T:System.Byte":  true,
	"T:System.Int16": true,
	"T:System.Int32": true,
	"T:System.Int64": true,
}

// typeOf maps a C# type use to TypeScript. Unknown types become any with
// a warning at at.
func (t *translator) typeOf(r *frontend.TypeRef, at *frontend.SyntaxNode) tsast.Type {
	switch {
	case r == nil:
		return tsast.VoidType()
	case r.Elem != nil:
		return &tsast.ArrayType{Element: t.typeOf(r.Elem, at)}
	case r.IsTypeParameter:
		return tsast.Ref(r.Name)
	case r.Symbol == nil:
		t.report(diag.TrUnknownType, at, "type '%s' is not known, using any", r.Name)
		return tsast.AnyType()
	}
	key := r.Symbol.Key
	if p, ok := primitives[key]; ok {
		return tsast.Predefined(p)
	}
	if key == listKey && len(r.Args) == 1 {
		return &tsast.ArrayType{Element: t.typeOf(r.Args[0], at)}
	}
	args := make([]tsast.Type, 0, len(r.Args))
	for _, a := range r.Args {
		args = append(args, t.typeOf(a, at))
	}
	return tsast.Ref(t.typeName(r.Symbol), args...)
}

// defaultValue is the value C# gives an uninitialised field of type r.
func (t *translator) defaultValue(r *frontend.TypeRef) tsast.Expression {
	if r == nil || r.Symbol == nil || r.Elem != nil {
		return nil
	}
	switch primitives[r.Symbol.Key] {
	case "number":
		return tsast.Num("0")
	case "boolean":
		return tsast.Bool(false)
	}
	return nil
}

func isIntegral(r *frontend.TypeRef) bool {
	return r != nil && r.Symbol != nil && integral[r.Symbol.Key]
}
