package pipeline

import (
	"github.com/cockroachdb/errors"
)

type tag struct {
	name string
}

// Tag names the values of type T exchanged between stages. Two tags are
// compatible only if they are the same tag or a Graph connects them, even
// when they share T.
type Tag[T any] struct {
	t *tag
}

// NewTag returns a tag distinct from every other tag, even one with the same name.
func NewTag[T any](name string) Tag[T] {
	return Tag[T]{t: &tag{name: name}}
}

// Name returns the name the tag was created with.
func (t Tag[T]) Name() string {
	if t.t == nil {
		return "<nil>"
	}
	return t.t.name
}

// String returns the tag name.
func (t Tag[T]) String() string { return t.Name() }

type convertFunc func(any) any

func identity(v any) any { return v }

type edge struct {
	to      *tag
	convert convertFunc
}

// Graph holds the conversion edges between tags. It is filled while
// pipelines are assembled and read-only afterwards.
type Graph struct {
	edges map[*tag][]edge
}

// NewGraph returns a graph without conversion edges.
func NewGraph() *Graph {
	return &Graph{edges: make(map[*tag][]edge)}
}

// Connect lets a value tagged from satisfy a stage that consumes to.
func Connect[From, To any](g *Graph, from Tag[From], to Tag[To], convert func(From) To) {
	if from.t == nil || to.t == nil {
		panic(errors.AssertionFailedf("pipeline: connect %s -> %s: zero tag", from, to))
	}
	g.edges[from.t] = append(g.edges[from.t], edge{
		to:      to.t,
		convert: func(v any) any { return convert(v.(From)) },
	})
}

// path finds the conversion from have to want, following edges
// breadth-first so the shortest chain wins.
func (g *Graph) path(have, want *tag) (convertFunc, bool) {
	if have == want {
		return identity, true
	}
	if g == nil {
		return nil, false
	}
	type step struct {
		at   *tag
		conv convertFunc
	}
	seen := map[*tag]bool{have: true}
	queue := []step{{at: have, conv: identity}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range g.edges[cur.at] {
			if seen[e.to] {
				continue
			}
			seen[e.to] = true
			prev, next := cur.conv, e.convert
			conv := func(v any) any { return next(prev(v)) }
			if e.to == want {
				return conv, true
			}
			queue = append(queue, step{at: e.to, conv: conv})
		}
	}
	return nil, false
}
