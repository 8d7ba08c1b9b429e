package symtab

import (
	"context"
	"runtime"
	"slices"
	"strconv"

	"golang.org/x/sync/errgroup"

	"cs2ts/internal/frontend"
	"cs2ts/internal/trace"
)

// discovery is what one document contributes: the types and members it
// declares or uses, in first-seen order.
type discovery struct {
	path     string
	symbols  []*frontend.Symbol
	declared []string // keys of the types declared here
}

type collector struct {
	seen map[string]bool
	out  []*frontend.Symbol
}

func (c *collector) add(s *frontend.Symbol) {
	if s == nil || s.Key == "" || !(s.Kind.IsType() || s.Kind.IsMember()) || c.seen[s.Key] {
		return
	}
	c.seen[s.Key] = true
	c.add(s.ContainingType())
	c.out = append(c.out, s)
	c.addType(s.Type)
	for _, p := range s.Parameters {
		c.addType(p.Type)
	}
	c.addType(s.BaseType)
	for _, t := range s.Interfaces {
		c.addType(t)
	}
	c.add(s.Overridden)
}

func (c *collector) addType(t *frontend.TypeRef) {
	if t == nil {
		return
	}
	c.add(t.Symbol)
	for _, a := range t.Args {
		c.addType(a)
	}
	c.addType(t.Elem)
}

func discover(u frontend.Unit) *discovery {
	d := &discovery{path: u.Doc.Path}
	c := &collector{seen: make(map[string]bool)}
	u.Tree.Walk(func(n *frontend.SyntaxNode) bool {
		if s := u.Model.DeclaredSymbol(n); s != nil {
			switch {
			case s.Kind.IsType():
				if !slices.Contains(d.declared, s.Key) {
					d.declared = append(d.declared, s.Key)
				}
				c.add(s)
			case s.Kind.IsMember():
				c.add(s)
			default:
				c.addType(s.Type)
			}
		}
		c.add(u.Model.ReferencedSymbol(n))
		c.addType(u.Model.TypeOf(n))
		return true
	})
	d.symbols = c.out
	return d
}

// discoverAll fans out over units. The result slice is in unit order.
func discoverAll(ctx context.Context, units []frontend.Unit, jobs int) ([]*discovery, error) {
	out := make([]*discovery, len(units))
	if len(units) == 0 {
		return out, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(units)))
	for i, u := range units {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			span := trace.Begin(tracer, trace.ScopeNode, "symbols:"+u.Doc.Path, parent)
			out[i] = discover(u)
			span.WithExtra("symbols", strconv.Itoa(len(out[i].symbols))).End("")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
