package symtab

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"cs2ts/internal/diag"
	"cs2ts/internal/frontend"
	"cs2ts/internal/options"
	"cs2ts/internal/source"
)

// Config tunes Build.
type Config struct {
	// Jobs bounds the per-document fan-out; zero means GOMAXPROCS.
	Jobs int
	// Strings interns script names; nil allocates a private interner.
	Strings *source.Interner
}

// Build discovers the symbols of every unit in parallel and computes the
// four tables. Discovery results are merged in unit order, so the same
// units always give the same tables whatever the scheduling.
func Build(ctx context.Context, units []frontend.Unit, opts *options.CompilerOptions, cfg Config) diag.Result[*Tables] {
	if opts == nil {
		opts = options.Default()
	}
	found, err := discoverAll(ctx, units, cfg.Jobs)
	if err != nil {
		if ctx.Err() != nil {
			return diag.CancelledResult[*Tables]()
		}
		return diag.Failed[*Tables](diag.New(diag.PrjFrontEndFailed, nil, "symbol discovery failed: %v", err))
	}
	if err := ctx.Err(); err != nil {
		return diag.CancelledResult[*Tables]()
	}

	b := newBuilder(opts, cfg.Strings)
	b.merge(found)
	tables := b.build()
	diag.Sort(b.diags)
	return diag.NewResult(tables, b.diags...)
}

type builder struct {
	opts      *options.CompilerOptions
	overrides map[string]options.Override
	strings   *source.Interner

	symbols    []*frontend.Symbol
	byKey      map[string]*frontend.Symbol
	members    map[string][]*frontend.Symbol // by container key
	declaredIn map[string]string             // type key to document path

	names     map[string]string
	busy      map[string]bool
	grouped   map[string]bool
	overloads map[string]int
	alts      map[string]Alternate
	diags     []*diag.Diagnostic
}

func newBuilder(opts *options.CompilerOptions, strings *source.Interner) *builder {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &builder{
		opts:       opts,
		overrides:  opts.Overrides(),
		strings:    strings,
		byKey:      make(map[string]*frontend.Symbol),
		members:    make(map[string][]*frontend.Symbol),
		declaredIn: make(map[string]string),
		names:      make(map[string]string),
		busy:       make(map[string]bool),
		grouped:    make(map[string]bool),
		overloads:  make(map[string]int),
		alts:       make(map[string]Alternate),
	}
}

func (b *builder) merge(found []*discovery) {
	for _, d := range found {
		for _, key := range d.declared {
			if _, ok := b.declaredIn[key]; !ok {
				b.declaredIn[key] = d.path
			}
		}
		for _, s := range d.symbols {
			if _, ok := b.byKey[s.Key]; ok {
				continue
			}
			b.byKey[s.Key] = s
			b.symbols = append(b.symbols, s)
			if s.Kind.IsMember() && s.Container != nil {
				b.members[s.Container.Key] = append(b.members[s.Container.Key], s)
			}
		}
	}
}

func (b *builder) build() *Tables {
	for _, s := range b.symbols {
		b.nameOf(s)
	}
	inline := b.inlineTable()
	imports := b.importTable()
	for _, key := range slices.Sorted(maps.Keys(b.overrides)) {
		if _, ok := b.byKey[key]; !ok {
			b.diags = append(b.diags, diag.New(diag.SymOverrideUnknownSymbol, nil,
				"symbol table override %s does not match any symbol used by the project", key))
		}
	}
	return newTables(imports, b.names, inline, b.alts)
}

func (b *builder) report(code diag.Code, s *frontend.Symbol, format string, args ...any) {
	b.diags = append(b.diags, diag.New(code, s.Location(), format, args...))
}

// nameOf assigns script names lazily: an override takes its base member's
// name and a nested type its container's, whatever order symbols come in.
func (b *builder) nameOf(s *frontend.Symbol) string {
	if name, ok := b.names[s.Key]; ok {
		return name
	}
	if b.busy[s.Key] {
		return s.Name
	}
	b.busy[s.Key] = true
	name := b.strings.Canonical(b.assign(s))
	delete(b.busy, s.Key)
	b.names[s.Key] = name
	return name
}

func (b *builder) assign(s *frontend.Symbol) string {
	if name, ok := b.explicit(s, true); ok {
		return name
	}
	if s.Kind.IsType() {
		name := s.Name
		if outer := s.ContainingType(); outer != nil {
			name = b.nameOf(outer) + "$" + s.Name
		}
		return b.escape(s, name)
	}
	if s.Kind == frontend.SymConstructor {
		return "constructor"
	}
	if s.Overridden != nil {
		return b.nameOf(s.Overridden)
	}
	if s.Kind == frontend.SymMethod {
		if alt, ok := b.alternate(s); ok {
			if main := b.byKey[alt.Canonical]; main != nil {
				return b.nameOf(main)
			}
		}
	}
	if s.HasAttribute(frontend.AttrPreserveName) {
		return s.Name
	}
	name := b.ruleName(s)
	if i := b.overloadIndex(s); i > 0 {
		name += "$" + strconv.Itoa(i)
	}
	return b.escape(s, name)
}

// explicit returns a configured or attributed name. Invalid names are
// reported when report is set and otherwise ignored.
func (b *builder) explicit(s *frontend.Symbol, report bool) (string, bool) {
	name, from := "", ""
	if ov, ok := b.overrides[s.Key]; ok && ov.ScriptName != "" {
		name, from = ov.ScriptName, "symbol table override"
	} else if a, ok := s.Attribute(frontend.AttrScriptName); ok {
		name, _ = a.Arg(0)
		from = "[ScriptName]"
	}
	if from == "" {
		return "", false
	}
	if !validScriptName(name, s.Kind) {
		if report {
			b.report(diag.SymInvalidScriptName, s, "%s of %s: %q is not a valid identifier", from, s.FullName(), name)
		}
		return "", false
	}
	return name, true
}

func (b *builder) escape(s *frontend.Symbol, name string) string {
	if !IsReserved(name) {
		return name
	}
	if !s.External {
		b.report(diag.SymReservedWordRenamed, s, "%s is emitted as $%s", name, name)
	}
	return "$" + name
}

// ruleName applies the rename rules, without overload suffixes.
func (b *builder) ruleName(s *frontend.Symbol) string {
	if s.HasAttribute(frontend.AttrPreserveCase) {
		return s.Name
	}
	rules := b.opts.RenameRules
	switch s.Kind {
	case frontend.SymEnumMember:
		return applyMemberRule(rules.EnumMembers, s.Name)
	case frontend.SymField:
		name := lowerFirst(s.Name)
		if s.External || s.Access != frontend.AccessPrivate {
			return name
		}
		switch rules.Fields {
		case options.PrivateDollarPrefix:
			return "$" + name
		case options.DollarPrefixOnlyForDuplicateName:
			if b.collides(s, name) {
				return "$" + name
			}
		}
		return name
	}
	return applyMemberRule(rules.Members, s.Name)
}

// collides reports whether another member of s's type would take name.
func (b *builder) collides(s *frontend.Symbol, name string) bool {
	for _, m := range b.members[s.Container.Key] {
		if m == s || m.Kind == frontend.SymConstructor {
			continue
		}
		if b.plainName(m) == name {
			return true
		}
	}
	return false
}

func (b *builder) plainName(m *frontend.Symbol) string {
	if name, ok := b.explicit(m, false); ok {
		return name
	}
	switch {
	case m.Overridden != nil:
		return b.nameOf(m.Overridden)
	case m.HasAttribute(frontend.AttrPreserveName), m.HasAttribute(frontend.AttrPreserveCase):
		return m.Name
	case m.Kind == frontend.SymField:
		return lowerFirst(m.Name)
	}
	return b.ruleName(m)
}

func (b *builder) overloadIndex(s *frontend.Symbol) int {
	if s.Kind != frontend.SymMethod || s.Container == nil {
		return 0
	}
	b.group(s.Container.Key)
	return b.overloads[s.Key]
}

func (b *builder) alternate(s *frontend.Symbol) (Alternate, bool) {
	if s.Container == nil {
		return Alternate{}, false
	}
	b.group(s.Container.Key)
	alt, ok := b.alts[s.Key]
	return alt, ok
}

// group resolves the method groups of one type: alternate signatures fold
// into their implementation, remaining overloads are numbered by
// declaration order.
func (b *builder) group(container string) {
	if b.grouped[container] {
		return
	}
	b.grouped[container] = true

	groups := make(map[string][]*frontend.Symbol)
	var order []string
	for _, m := range b.members[container] {
		if m.Kind != frontend.SymMethod || m.External {
			continue
		}
		if _, ok := groups[m.Name]; !ok {
			order = append(order, m.Name)
		}
		groups[m.Name] = append(groups[m.Name], m)
	}
	for _, name := range order {
		methods := groups[name]
		b.resolveAlternates(methods)

		var numbered []*frontend.Symbol
		for _, m := range methods {
			if _, ok := b.alts[m.Key]; ok || m.Overridden != nil || m.HasAttribute(frontend.AttrPreserveName) {
				continue
			}
			if _, ok := b.explicit(m, false); ok {
				continue
			}
			numbered = append(numbered, m)
		}
		slices.SortStableFunc(numbered, declarationOrder)
		for i, m := range numbered {
			b.overloads[m.Key] = i
		}
	}
}

func declarationOrder(x, y *frontend.Symbol) int {
	var xp, yp string
	var xo, yo uint32
	if l := x.Location(); l != nil {
		xp, xo = l.Path, l.Span.Start
	}
	if l := y.Location(); l != nil {
		yp, yo = l.Path, l.Span.Start
	}
	return cmp.Or(strings.Compare(xp, yp), cmp.Compare(xo, yo), strings.Compare(x.Key, y.Key))
}

func (b *builder) resolveAlternates(methods []*frontend.Symbol) {
	var alts, mains []*frontend.Symbol
	for _, m := range methods {
		if m.HasAttribute(frontend.AttrAlternateSignature) {
			alts = append(alts, m)
		} else {
			mains = append(mains, m)
		}
	}
	if len(alts) == 0 {
		return
	}
	switch {
	case len(mains) == 0:
		b.report(diag.SymAlternateWithoutMain, alts[0], "%s has alternate signatures but no implementation", alts[0].FullName())
		return
	case len(mains) > 1:
		slices.SortStableFunc(mains, declarationOrder)
		b.report(diag.SymAlternateMultipleMain, mains[1], "%s has %d implementations next to its alternate signatures", mains[0].FullName(), len(mains))
		return
	}
	main := mains[0]
	for _, alt := range alts {
		perm, err := permutation(alt, main)
		if err != nil {
			b.report(diag.SymAlternateParamMismatch, alt, "alternate signature %s: %v", alt.Key, err)
			continue
		}
		b.alts[alt.Key] = Alternate{Canonical: main.Key, Permutation: perm}
	}
}

// permutation matches each alternate parameter to an implementation
// parameter, by name first and then by the first unused one of the same type.
func permutation(alt, main *frontend.Symbol) ([]int, error) {
	used := make([]bool, len(main.Parameters))
	perm := make([]int, len(alt.Parameters))
	for i, p := range alt.Parameters {
		j := slices.IndexFunc(main.Parameters, func(q *frontend.Symbol) bool { return q.Name == p.Name })
		if j >= 0 && used[j] {
			j = -1
		}
		if j < 0 {
			for k, q := range main.Parameters {
				if !used[k] && p.Type.String() == q.Type.String() {
					j = k
					break
				}
			}
		}
		if j < 0 {
			return nil, errors.Newf("parameter %s %s has no counterpart in %s", p.Type, p.Name, main.Key)
		}
		used[j] = true
		perm[i] = j
	}
	return perm, nil
}

func (b *builder) inlineTable() map[string]*Template {
	out := make(map[string]*Template)
	for _, s := range b.symbols {
		if !s.Kind.IsMember() {
			continue
		}
		src, ok := b.inlineSource(s)
		if !ok {
			continue
		}
		if strings.TrimSpace(src) == "" {
			b.report(diag.TrInlineCodeInvalid, s, "%s: inline code is empty", s.FullName())
			continue
		}
		tpl, err := ParseTemplate(src, signatureOf(s))
		if err == nil {
			err = tpl.resolveTypes(func(key string) (string, bool) {
				t, ok := b.byKey[key]
				if !ok {
					return "", false
				}
				return b.nameOf(t), true
			})
		}
		if err != nil {
			b.report(diag.TrInlineCodeInvalid, s, "%s: %v", s.FullName(), err)
			continue
		}
		out[s.Key] = tpl
	}
	return out
}

func (b *builder) inlineSource(s *frontend.Symbol) (string, bool) {
	if ov, ok := b.overrides[s.Key]; ok && ov.InlineCode != "" {
		return ov.InlineCode, true
	}
	if a, ok := s.Attribute(frontend.AttrInlineCode); ok {
		return a.Arg(0)
	}
	if s.HasAttribute(frontend.AttrScriptSkip) {
		if !s.Is(frontend.ModStatic) && s.Kind != frontend.SymConstructor {
			return "{this}", true
		}
		if len(s.Parameters) > 0 {
			return "{" + s.Parameters[0].Name + "}", true
		}
		return "", true
	}
	return "", false
}

func signatureOf(s *frontend.Symbol) Signature {
	sig := Signature{Static: s.Is(frontend.ModStatic) || s.Kind == frontend.SymConstructor}
	for _, p := range s.Parameters {
		sig.Params = append(sig.Params, p.Name)
		if p.Is(frontend.ModParams) {
			sig.Spread = p.Name
		}
	}
	return sig
}

func (b *builder) importTable() map[string]Origin {
	out := make(map[string]Origin)
	for _, s := range b.symbols {
		if !s.Kind.IsType() {
			continue
		}
		o := Origin{Name: b.nameOf(s)}
		switch {
		case !s.External && !s.HasAttribute(frontend.AttrImported):
			o.Path = b.declaredIn[s.Key]
			if o.Path == "" && s.Location() != nil {
				o.Path = s.Location().Path
			}
			if o.Path == "" {
				continue
			}
		default:
			o.Module = moduleOf(s)
			if o.Module == "" {
				continue
			}
		}
		out[s.Key] = o
	}
	return out
}

// moduleOf reads [ModuleName] from the type or its outermost container.
func moduleOf(s *frontend.Symbol) string {
	for t := s; t != nil; t = t.ContainingType() {
		if a, ok := t.Attribute(frontend.AttrModuleName); ok {
			m, _ := a.Arg(0)
			return m
		}
	}
	return ""
}
