package bcl

import (
	"cs2ts/internal/frontend"
)

type typeSpec struct {
	ns, name string
	kind     frontend.SymbolKind
	arity    int
	static   bool
	attrs    []frontend.Attribute
	members  func(b *builder)
}

func attr(name string, args ...string) frontend.Attribute {
	return frontend.Attribute{Name: name, Args: args}
}

var catalogue = []typeSpec{
	{ns: "System", name: "Object", kind: frontend.SymClass, members: func(b *builder) {
		b.ctor()
		b.method("ToString", "string")
		b.method("Equals", "bool", param("other", "object")).attrs(attr(frontend.AttrInlineCode, "{this} === {other}"))
		b.method("GetHashCode", "int")
	}},
	{ns: "System", name: "Void", kind: frontend.SymStruct},
	{ns: "System", name: "Boolean", kind: frontend.SymStruct},
	{ns: "System", name: "Char", kind: frontend.SymStruct},
	{ns: "System", name: "Byte", kind: frontend.SymStruct},
	{ns: "System", name: "Int16", kind: frontend.SymStruct},
	{ns: "System", name: "Int32", kind: frontend.SymStruct, members: func(b *builder) {
		b.field("MaxValue", "int", frontend.ModConst|frontend.ModStatic).attrs(attr(frontend.AttrInlineCode, "2147483647"))
		b.field("MinValue", "int", frontend.ModConst|frontend.ModStatic).attrs(attr(frontend.AttrInlineCode, "-2147483648"))
		b.static("Parse", "int", param("s", "string")).attrs(attr(frontend.AttrInlineCode, "parseInt({s}, 10)"))
	}},
	{ns: "System", name: "Int64", kind: frontend.SymStruct},
	{ns: "System", name: "Single", kind: frontend.SymStruct},
	{ns: "System", name: "Double", kind: frontend.SymStruct, members: func(b *builder) {
		b.static("Parse", "double", param("s", "string")).attrs(attr(frontend.AttrInlineCode, "parseFloat({s})"))
	}},
	{ns: "System", name: "Decimal", kind: frontend.SymStruct},
	{ns: "System", name: "String", kind: frontend.SymClass, members: func(b *builder) {
		b.field("Empty", "string", frontend.ModStatic|frontend.ModReadOnly).attrs(attr(frontend.AttrInlineCode, "''"))
		b.property("Length", "int").attrs(attr(frontend.AttrScriptName, "length"))
		b.method("ToUpper", "string").attrs(attr(frontend.AttrScriptName, "toUpperCase"))
		b.method("ToLower", "string").attrs(attr(frontend.AttrScriptName, "toLowerCase"))
		b.method("Trim", "string")
		b.method("Contains", "bool", param("value", "string")).attrs(attr(frontend.AttrScriptName, "includes"))
		b.method("Substring", "string", param("startIndex", "int"), param("length", "int")).attrs(attr(frontend.AttrScriptName, "substr"))
		b.static("IsNullOrEmpty", "bool", param("value", "string")).attrs(attr(frontend.AttrInlineCode, "!{value}"))
		b.static("Concat", "string", param("a", "string"), param("b", "string")).attrs(attr(frontend.AttrInlineCode, "{a} + {b}"))
		b.static("Join", "string", param("separator", "string"), params("values", "string")).
			attrs(attr(frontend.AttrInlineCode, "[{*values}].join({separator})"))
	}},
	{ns: "System", name: "Array", kind: frontend.SymClass, members: func(b *builder) {
		b.property("Length", "int").attrs(attr(frontend.AttrScriptName, "length"))
	}},
	{ns: "System", name: "Exception", kind: frontend.SymClass, attrs: []frontend.Attribute{attr(frontend.AttrScriptName, "Error")}, members: func(b *builder) {
		b.ctor()
		b.ctor(param("message", "string"))
		b.property("Message", "string")
	}},
	{ns: "System", name: "Console", kind: frontend.SymClass, static: true, attrs: []frontend.Attribute{attr(frontend.AttrScriptName, "console")}, members: func(b *builder) {
		b.static("WriteLine", "void").attrs(attr(frontend.AttrInlineCode, "console.log()"))
		b.static("WriteLine", "void", param("value", "string")).attrs(attr(frontend.AttrInlineCode, "console.log({value})"))
		b.static("WriteLine", "void", param("value", "object")).attrs(attr(frontend.AttrInlineCode, "console.log({value})"))
		b.static("WriteLine", "void", param("format", "string"), params("args", "object")).
			attrs(attr(frontend.AttrInlineCode, "console.log({format}, {*args})"))
	}},
	{ns: "System", name: "Math", kind: frontend.SymClass, static: true, attrs: []frontend.Attribute{attr(frontend.AttrScriptName, "Math")}, members: func(b *builder) {
		b.field("PI", "double", frontend.ModConst|frontend.ModStatic).attrs(attr(frontend.AttrScriptName, "PI"))
		b.static("Abs", "double", param("value", "double"))
		b.static("Max", "double", param("a", "double"), param("b", "double"))
		b.static("Min", "double", param("a", "double"), param("b", "double"))
		b.static("Sqrt", "double", param("d", "double"))
		b.static("Floor", "double", param("d", "double"))
		b.static("Round", "double", param("d", "double"))
		b.static("Pow", "double", param("x", "double"), param("y", "double"))
	}},
	{ns: "System.Collections.Generic", name: "List", kind: frontend.SymClass, arity: 1, members: func(b *builder) {
		b.ctor().attrs(attr(frontend.AttrInlineCode, "[]"))
		b.property("Count", "int").attrs(attr(frontend.AttrScriptName, "length"))
		b.method("Add", "void", param("item", "T")).attrs(attr(frontend.AttrScriptName, "push"))
		b.method("Contains", "bool", param("item", "T")).attrs(attr(frontend.AttrScriptName, "includes"))
		b.method("IndexOf", "int", param("item", "T"))
		b.method("Clear", "void").attrs(attr(frontend.AttrInlineCode, "{this}.length = 0"))
	}},
}

var keywords = map[string]string{
	"object":  "System.Object",
	"void":    "System.Void",
	"bool":    "System.Boolean",
	"char":    "System.Char",
	"byte":    "System.Byte",
	"short":   "System.Int16",
	"int":     "System.Int32",
	"long":    "System.Int64",
	"float":   "System.Single",
	"double":  "System.Double",
	"decimal": "System.Decimal",
	"string":  "System.String",
}
