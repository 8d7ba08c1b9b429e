package csharp

import (
	"context"
	"runtime"
	"strconv"
	"sync"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"cs2ts/internal/diag"
	"cs2ts/internal/frontend"
	"cs2ts/internal/frontend/bcl"
	"cs2ts/internal/source"
	"cs2ts/internal/trace"
)

// Service is the C# front-end over one FileSet. The project is parsed and
// declared on the first query; each document is bound on its first
// semantic query. All methods are safe for concurrent use.
type Service struct {
	lib  *bcl.Library
	docs []*frontend.Document
	byID map[source.FileID]int

	mu      sync.Mutex
	project *project
	bound   []*binding
}

type binding struct {
	once  sync.Once
	model *model
	diags []*diag.Diagnostic
}

var _ frontend.Service = (*Service)(nil)

// New creates a front-end for the latest version of every file in fs.
// A nil lib uses the default catalogue.
func New(fs *source.FileSet, lib *bcl.Library) *Service {
	if lib == nil {
		lib = bcl.Default()
	}
	s := &Service{lib: lib, docs: frontend.DocumentsOf(fs), byID: make(map[source.FileID]int)}
	for i, d := range s.docs {
		s.byID[d.ID] = i
	}
	return s
}

// Documents returns the documents in FileSet order.
func (s *Service) Documents() []*frontend.Document { return s.docs }

// load parses and declares the project once. A failed or cancelled load
// is retried by the next query.
func (s *Service) load(ctx context.Context) (*project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project != nil {
		return s.project, nil
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "csharp:load", trace.CurrentSpan(ctx).SpanID).
		WithExtra("documents", strconv.Itoa(len(s.docs)))
	defer span.End("")

	trees := make([]*tree, len(s.docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(runtime.GOMAXPROCS(0), max(len(s.docs), 1)))
	for i, doc := range s.docs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			ds := trace.Begin(tracer, trace.ScopeNode, "csharp:parse", span.ID()).WithExtra("path", doc.Path)
			defer ds.End("")
			t, err := parse(gctx, doc)
			if err != nil {
				return err
			}
			trees[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := newProject(s.lib, trees)
	declare(p)
	s.project = p
	s.bound = make([]*binding, len(trees))
	for i := range s.bound {
		s.bound[i] = &binding{}
	}
	return p, nil
}

func (s *Service) lookup(ctx context.Context, id source.FileID) (*project, int, error) {
	i, ok := s.byID[id]
	if !ok {
		return nil, 0, errors.Newf("unknown document %d", id)
	}
	p, err := s.load(ctx)
	if err != nil {
		return nil, 0, err
	}
	return p, i, nil
}

// SyntaxTree returns the parsed tree of id. The whole project is parsed on first use.
func (s *Service) SyntaxTree(ctx context.Context, id source.FileID) (*frontend.SyntaxNode, error) {
	p, i, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.trees[i].root, nil
}

func (s *Service) bind(ctx context.Context, p *project, i int) *binding {
	s.mu.Lock()
	b := s.bound[i]
	s.mu.Unlock()
	b.once.Do(func() {
		span := trace.Begin(trace.FromContext(ctx), trace.ScopeNode, "csharp:bind", trace.CurrentSpan(ctx).SpanID).
			WithExtra("path", p.trees[i].doc.Path)
		b.model, b.diags = bind(p, p.trees[i])
		span.End("")
	})
	return b
}

// SemanticModel binds id on first use and returns its model.
func (s *Service) SemanticModel(ctx context.Context, id source.FileID) (frontend.SemanticModel, error) {
	p, i, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.bind(ctx, p, i).model, nil
}

// Diagnostics reports syntax errors, declaration conflicts and binding
// findings of one document.
func (s *Service) Diagnostics(ctx context.Context, id source.FileID) ([]*diag.Diagnostic, error) {
	p, i, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	t := p.trees[i]
	out := make([]*diag.Diagnostic, 0, len(t.diags))
	out = append(out, t.diags...)
	out = append(out, p.diags[id]...)
	out = append(out, s.bind(ctx, p, i).diags...)
	return out, nil
}
