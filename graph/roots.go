package graph

import "github.com/mocabe-yave/yave/uid"

// Roots returns every live node that has no outgoing connection on
// any output socket, i.e. nothing consumes its results.
func (g *Graph) Roots() []uid.Handle {
	var out []uid.Handle
	for i := range g.nodes {
		if !g.nodes[i].alive {
			continue
		}
		if len(g.successors(i)) == 0 {
			out = append(out, g.nodeHandle(i))
		}
	}
	return out
}

// RootOf walks forward from n along output connections until reaching
// a node with no further outgoing connections, following the first
// outgoing edge at each step. Cycles cannot occur (Connect rejects
// them), so this always terminates.
func (g *Graph) RootOf(n uid.Handle) uid.Handle {
	i := g.nodeIndex(n)
	if i < 0 {
		return uid.Zero
	}
	seen := map[int]bool{}
	for {
		if seen[i] {
			return g.nodeHandle(i)
		}
		seen[i] = true
		succs := g.successors(i)
		if len(succs) == 0 {
			return g.nodeHandle(i)
		}
		i = succs[0]
	}
}

// Walk performs a DFS from n's output sockets forward, visiting each
// node at most once, calling visit for each reached node.
func (g *Graph) Walk(n uid.Handle, visit func(uid.Handle)) {
	i := g.nodeIndex(n)
	if i < 0 {
		return
	}
	seen := map[int]bool{}
	var rec func(int)
	rec = func(cur int) {
		if seen[cur] {
			return
		}
		seen[cur] = true
		visit(g.nodeHandle(cur))
		for _, next := range g.successors(cur) {
			rec(next)
		}
	}
	rec(i)
}
