package graph

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mocabe-yave/yave/uid"
)

func newTestGraph() *Graph {
	return New(zerolog.Nop())
}

func TestAddExists(t *testing.T) {
	g := newTestGraph()
	n := g.Add("Int", nil, []string{"value"}, Normal)
	require.True(t, g.Exists(n))

	g.Remove(n)
	require.False(t, g.Exists(n))
}

func TestConnectDisconnectRoundTrip(t *testing.T) {
	g := newTestGraph()
	a := g.Add("a", nil, []string{"o"}, Normal)
	b := g.Add("b", []string{"i"}, nil, Normal)

	aOut := g.Sockets(a, Output)[0]
	bIn := g.Sockets(b, Input)[0]

	c := g.Connect(aOut, bIn)
	require.True(t, g.Exists(c))
	require.True(t, g.HasConnection(bIn))

	ok := g.Disconnect(c)
	require.True(t, ok)
	require.False(t, g.HasConnection(bIn))
	require.False(t, g.Exists(c))
}

func TestCycleRejected(t *testing.T) {
	g := newTestGraph()
	n1 := g.Add("n1", []string{"i"}, []string{"o"}, Normal)
	n2 := g.Add("n2", []string{"i"}, []string{"o"}, Normal)

	n1o := g.Sockets(n1, Output)[0]
	n2i := g.Sockets(n2, Input)[0]
	c1 := g.Connect(n1o, n2i)
	require.True(t, g.Exists(c1))

	n2o := g.Sockets(n2, Output)[0]
	n1i := g.Sockets(n1, Input)[0]

	before := g.HasConnection(n1i)
	c2 := g.Connect(n2o, n1i)
	require.False(t, g.Exists(c2))
	require.Equal(t, before, g.HasConnection(n1i))
}

func TestInputSocketSingleConnection(t *testing.T) {
	g := newTestGraph()
	a := g.Add("a", nil, []string{"o"}, Normal)
	b := g.Add("b", nil, []string{"o"}, Normal)
	c := g.Add("c", []string{"i"}, nil, Normal)

	aOut := g.Sockets(a, Output)[0]
	bOut := g.Sockets(b, Output)[0]
	cIn := g.Sockets(c, Input)[0]

	h1 := g.Connect(aOut, cIn)
	require.True(t, g.Exists(h1))

	h2 := g.Connect(bOut, cIn)
	require.False(t, g.Exists(h2))
}

func TestRootsAndWalk(t *testing.T) {
	g := newTestGraph()
	a := g.Add("a", nil, []string{"o"}, Normal)
	b := g.Add("b", []string{"i"}, []string{"o"}, Normal)
	c := g.Add("c", []string{"i"}, nil, Normal)

	g.Connect(g.Sockets(a, Output)[0], g.Sockets(b, Input)[0])
	g.Connect(g.Sockets(b, Output)[0], g.Sockets(c, Input)[0])

	roots := g.Roots()
	require.Len(t, roots, 1)
	require.Equal(t, c, roots[0])

	var visited []uid.Handle
	g.Walk(a, func(h uid.Handle) {
		visited = append(visited, h)
	})
	require.Len(t, visited, 3)
}
