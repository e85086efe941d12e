package node

import (
	"github.com/mocabe-yave/yave/graph"
	"github.com/mocabe-yave/yave/uid"
)

// InputSockets / OutputSockets return a node's sockets in declaration
// order — the same underlying basic-graph sockets a call mirrors from
// its definition.
func (g *Graph) InputSockets(n uid.Handle) []uid.Handle {
	return g.basic.Sockets(n, graph.Input)
}

func (g *Graph) OutputSockets(n uid.Handle) []uid.Handle {
	return g.basic.Sockets(n, graph.Output)
}

// Connections returns the connections touching socket s.
func (g *Graph) Connections(s uid.Handle) []uid.Handle {
	return g.basic.Connections(s)
}

// HasConnection reports whether s has at least one connection.
func (g *Graph) HasConnection(s uid.Handle) bool {
	return g.basic.HasConnection(s)
}

// SocketName returns a socket's display name.
func (g *Graph) SocketName(s uid.Handle) (string, bool) {
	return g.basic.SocketName(s)
}

// GetData / SetData carry arbitrary node/socket metadata (e.g. a
// default-argument payload).
func (g *Graph) GetData(h uid.Handle) interface{}          { return g.basic.GetData(h) }
func (g *Graph) SetData(h uid.Handle, v interface{}) bool  { return g.basic.SetData(h, v) }

// NodeOf returns the node that owns socket s.
func (g *Graph) NodeOf(s uid.Handle) (uid.Handle, bool) {
	return g.basic.Node(s)
}

// GetIndex returns s's position within its owning node's same-kind
// socket list.
func (g *Graph) GetIndex(s uid.Handle) (int, bool) {
	owner, ok := g.NodeOf(s)
	if !ok {
		return 0, false
	}
	isInput := g.basic.IsInputSocket(s)
	var list []uid.Handle
	if isInput {
		list = g.InputSockets(owner)
	} else {
		list = g.OutputSockets(owner)
	}
	for i, h := range list {
		if h == s {
			return i, true
		}
	}
	return 0, false
}

// ConnInfo describes one connection from the consumer's point of
// view: which upstream node/socket feeds the given downstream socket.
type ConnInfo struct {
	Conn      uid.Handle
	SrcNode   uid.Handle
	SrcSocket uid.Handle
	DstSocket uid.Handle
}

// InputConnections returns, for each connected input socket of n, the
// upstream (node, socket) feeding it.
func (g *Graph) InputConnections(n uid.Handle) []ConnInfo {
	var out []ConnInfo
	for _, s := range g.InputSockets(n) {
		conns := g.Connections(s)
		if len(conns) == 0 {
			continue
		}
		c := conns[0]
		src, dst, ok := g.basic.ConnectionInfo(c)
		if !ok {
			continue
		}
		srcNode, _ := g.NodeOf(src)
		out = append(out, ConnInfo{Conn: c, SrcNode: srcNode, SrcSocket: src, DstSocket: dst})
	}
	return out
}

// Connect / Disconnect delegate straight to the basic graph: the
// structured layer adds no extra edge bookkeeping beyond membership,
// which is tracked at node-creation time instead.
func (g *Graph) Connect(out, in uid.Handle) uid.Handle { return g.basic.Connect(out, in) }
func (g *Graph) Disconnect(c uid.Handle) bool          { return g.basic.Disconnect(c) }
