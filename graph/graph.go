// Package graph implements the basic node graph: a multigraph of
// nodes, input/output sockets and directed connections, with
// interface nodes that borrow sockets owned elsewhere and loop
// detection on every connect.
package graph

import (
	"github.com/rs/zerolog"

	"github.com/mocabe-yave/yave/uid"
)

// SocketKind distinguishes an input socket from an output socket.
type SocketKind int

const (
	Input SocketKind = iota
	Output
)

// NodeKind distinguishes an owning node from an interface node that
// only borrows sockets owned elsewhere.
type NodeKind int

const (
	Normal NodeKind = iota
	Interface
)

type nodeSlot struct {
	id      uid.UID
	gen     uint64
	alive   bool
	name    string
	kind    NodeKind
	inputs  []int // socket slot indices, insertion order
	outputs []int
	data    interface{}
}

type socketSlot struct {
	id         uid.UID
	gen        uint64
	alive      bool
	name       string
	kind       SocketKind
	owner      int   // owning node slot index
	interfaces []int // borrowing interface-node slot indices
	srcEdges   []int // outgoing connections (Output sockets), insertion order
	dstEdge    int   // incoming connection (Input sockets), -1 if none
	data       interface{}
}

type connSlot struct {
	id    uid.UID
	gen   uint64
	alive bool
	src   int // output socket slot index
	dst   int // input socket slot index
}

// Graph is a basic node multigraph. The zero value is not usable; use
// New.
type Graph struct {
	log zerolog.Logger

	nodes    []nodeSlot
	sockets  []socketSlot
	conns    []connSlot
	freeNode []int
	freeSock []int
	freeConn []int
}

// New returns an empty graph. A zero logger disables logging.
func New(log zerolog.Logger) *Graph {
	return &Graph{log: log}
}

func (g *Graph) nodeHandle(i int) uid.Handle {
	n := &g.nodes[i]
	return uid.NewNodeHandle(i, n.gen, n.id)
}

func (g *Graph) socketHandle(i int) uid.Handle {
	s := &g.sockets[i]
	return uid.NewSocketHandle(i, s.gen, s.id)
}

func (g *Graph) connHandle(i int) uid.Handle {
	c := &g.conns[i]
	return uid.NewConnectionHandle(i, c.gen, c.id)
}

// nodeIndex resolves a handle to a live node slot index, or -1.
func (g *Graph) nodeIndex(h uid.Handle) int {
	if h.Kind() != uid.KindNode {
		return -1
	}
	i := h.Index()
	if i < 0 || i >= len(g.nodes) {
		return -1
	}
	n := &g.nodes[i]
	if !n.alive || n.gen != h.Gen() || n.id != h.ID() {
		return -1
	}
	return i
}

func (g *Graph) socketIndex(h uid.Handle) int {
	if h.Kind() != uid.KindSocket {
		return -1
	}
	i := h.Index()
	if i < 0 || i >= len(g.sockets) {
		return -1
	}
	s := &g.sockets[i]
	if !s.alive || s.gen != h.Gen() || s.id != h.ID() {
		return -1
	}
	return i
}

func (g *Graph) connIndex(h uid.Handle) int {
	if h.Kind() != uid.KindConnection {
		return -1
	}
	i := h.Index()
	if i < 0 || i >= len(g.conns) {
		return -1
	}
	c := &g.conns[i]
	if !c.alive || c.gen != h.Gen() || c.id != h.ID() {
		return -1
	}
	return i
}

// Exists reports whether a handle is valid for this graph: its uid
// must equal the one currently stored at its descriptor.
func (g *Graph) Exists(h uid.Handle) bool {
	switch h.Kind() {
	case uid.KindNode:
		return g.nodeIndex(h) >= 0
	case uid.KindSocket:
		return g.socketIndex(h) >= 0
	case uid.KindConnection:
		return g.connIndex(h) >= 0
	default:
		return false
	}
}

func (g *Graph) allocNode() int {
	if n := len(g.freeNode); n > 0 {
		i := g.freeNode[n-1]
		g.freeNode = g.freeNode[:n-1]
		return i
	}
	g.nodes = append(g.nodes, nodeSlot{})
	return len(g.nodes) - 1
}

func (g *Graph) allocSocket() int {
	if n := len(g.freeSock); n > 0 {
		i := g.freeSock[n-1]
		g.freeSock = g.freeSock[:n-1]
		return i
	}
	g.sockets = append(g.sockets, socketSlot{})
	return len(g.sockets) - 1
}

func (g *Graph) allocConn() int {
	if n := len(g.freeConn); n > 0 {
		i := g.freeConn[n-1]
		g.freeConn = g.freeConn[:n-1]
		return i
	}
	g.conns = append(g.conns, connSlot{})
	return len(g.conns) - 1
}

// Add creates a node of the given kind with freshly-created owned
// sockets for each of the named inputs/outputs. It returns the zero
// handle if attaching a socket partway through fails (rolled back).
func (g *Graph) Add(name string, inputs, outputs []string, kind NodeKind) uid.Handle {
	ni := g.allocNode()
	id := uid.New()
	g.nodes[ni] = nodeSlot{id: id, gen: g.nodes[ni].gen + 1, alive: true, name: name, kind: kind}

	rollback := func() {
		for _, si := range g.nodes[ni].inputs {
			g.freeSocketSlot(si)
		}
		for _, si := range g.nodes[ni].outputs {
			g.freeSocketSlot(si)
		}
		g.nodes[ni].alive = false
		g.freeNode = append(g.freeNode, ni)
	}

	for _, sname := range inputs {
		si := g.addOwnedSocket(ni, sname, Input)
		if si < 0 {
			rollback()
			return uid.Zero
		}
		g.nodes[ni].inputs = append(g.nodes[ni].inputs, si)
	}
	for _, sname := range outputs {
		si := g.addOwnedSocket(ni, sname, Output)
		if si < 0 {
			rollback()
			return uid.Zero
		}
		g.nodes[ni].outputs = append(g.nodes[ni].outputs, si)
	}

	g.log.Info().Str("node", name).Msg("graph: add")
	return g.nodeHandle(ni)
}

func (g *Graph) addOwnedSocket(owner int, name string, kind SocketKind) int {
	si := g.allocSocket()
	g.sockets[si] = socketSlot{
		id: uid.New(), gen: g.sockets[si].gen + 1, alive: true,
		name: name, kind: kind, owner: owner, dstEdge: -1,
	}
	return si
}

func (g *Graph) freeSocketSlot(si int) {
	g.sockets[si].alive = false
	g.sockets[si].interfaces = nil
	g.sockets[si].srcEdges = nil
	g.sockets[si].dstEdge = -1
	g.freeSock = append(g.freeSock, si)
}

// Remove detaches all sockets owned by n, drops any connections that
// touch them, and destroys the node.
func (g *Graph) Remove(n uid.Handle) bool {
	ni := g.nodeIndex(n)
	if ni < 0 {
		return false
	}
	nd := &g.nodes[ni]
	for _, si := range append(append([]int(nil), nd.inputs...), nd.outputs...) {
		g.detachSocket(si)
		g.freeSocketSlot(si)
	}
	nd.alive = false
	nd.inputs = nil
	nd.outputs = nil
	g.freeNode = append(g.freeNode, ni)
	g.log.Info().Msg("graph: remove node")
	return true
}

func (g *Graph) detachSocket(si int) {
	s := &g.sockets[si]
	switch s.kind {
	case Output:
		for _, ci := range append([]int(nil), s.srcEdges...) {
			g.removeConnSlot(ci)
		}
	case Input:
		if s.dstEdge >= 0 {
			g.removeConnSlot(s.dstEdge)
		}
	}
}

func (g *Graph) removeConnSlot(ci int) {
	c := &g.conns[ci]
	if !c.alive {
		return
	}
	src := &g.sockets[c.src]
	for i, e := range src.srcEdges {
		if e == ci {
			src.srcEdges = append(src.srcEdges[:i], src.srcEdges[i+1:]...)
			break
		}
	}
	dst := &g.sockets[c.dst]
	if dst.dstEdge == ci {
		dst.dstEdge = -1
	}
	c.alive = false
	g.freeConn = append(g.freeConn, ci)
}

// AttachInterface idempotently records that an interface node borrows
// socket. If the attachment already exists its handle is returned.
func (g *Graph) AttachInterface(iface, socket uid.Handle) uid.Handle {
	ni := g.nodeIndex(iface)
	si := g.socketIndex(socket)
	if ni < 0 || si < 0 || g.nodes[ni].kind != Interface {
		return uid.Zero
	}
	s := &g.sockets[si]
	for _, existing := range s.interfaces {
		if existing == ni {
			return socket
		}
	}
	s.interfaces = append(s.interfaces, ni)
	switch s.kind {
	case Input:
		g.nodes[ni].inputs = append(g.nodes[ni].inputs, si)
	case Output:
		g.nodes[ni].outputs = append(g.nodes[ni].outputs, si)
	}
	return socket
}

// Connect wires out (an output socket) to in (an input socket). It
// fails — returning the zero handle — if either socket has the wrong
// direction, the input already has a connection to a *different*
// source, or the edge would create a cycle. An identical existing edge
// returns its handle rather than duplicating it.
func (g *Graph) Connect(out, in uid.Handle) uid.Handle {
	oi := g.socketIndex(out)
	ii := g.socketIndex(in)
	if oi < 0 || ii < 0 {
		return uid.Zero
	}
	if g.sockets[oi].kind != Output || g.sockets[ii].kind != Input {
		return uid.Zero
	}
	if d := g.sockets[ii].dstEdge; d >= 0 {
		if g.conns[d].src == oi {
			return g.connHandle(d)
		}
		return uid.Zero
	}

	ci := g.allocConn()
	g.conns[ci] = connSlot{id: uid.New(), gen: g.conns[ci].gen + 1, alive: true, src: oi, dst: ii}
	g.sockets[oi].srcEdges = append(g.sockets[oi].srcEdges, ci)
	g.sockets[ii].dstEdge = ci

	if g.hasCycle() {
		g.removeConnSlot(ci)
		g.log.Warn().Msg("graph: connect rejected, would create cycle")
		return uid.Zero
	}

	g.log.Info().Msg("graph: connect")
	return g.connHandle(ci)
}

// AddSocket appends a freshly-created socket of the given kind to an
// existing node, returning its handle (or the zero handle if owner
// does not exist). Used by the structured layer to grow a group's
// exposed interface or a macro call's arity.
func (g *Graph) AddSocket(owner uid.Handle, name string, kind SocketKind) uid.Handle {
	ni := g.nodeIndex(owner)
	if ni < 0 {
		return uid.Zero
	}
	si := g.addOwnedSocket(ni, name, kind)
	if kind == Input {
		g.nodes[ni].inputs = append(g.nodes[ni].inputs, si)
	} else {
		g.nodes[ni].outputs = append(g.nodes[ni].outputs, si)
	}
	return g.socketHandle(si)
}

// RemoveSocket detaches and destroys a socket, dropping any
// connection through it.
func (g *Graph) RemoveSocket(s uid.Handle) bool {
	si := g.socketIndex(s)
	if si < 0 {
		return false
	}
	g.detachSocket(si)
	owner := g.sockets[si].owner
	nd := &g.nodes[owner]
	list := &nd.inputs
	if g.sockets[si].kind == Output {
		list = &nd.outputs
	}
	for i, idx := range *list {
		if idx == si {
			*list = append((*list)[:i], (*list)[i+1:]...)
			break
		}
	}
	g.freeSocketSlot(si)
	return true
}

// RenameSocket changes a socket's display name in place.
func (g *Graph) RenameSocket(s uid.Handle, name string) bool {
	si := g.socketIndex(s)
	if si < 0 {
		return false
	}
	g.sockets[si].name = name
	return true
}

// Disconnect removes an edge.
func (g *Graph) Disconnect(c uid.Handle) bool {
	ci := g.connIndex(c)
	if ci < 0 {
		return false
	}
	g.removeConnSlot(ci)
	return true
}

// SetData attaches an arbitrary user payload to a node or socket.
func (g *Graph) SetData(h uid.Handle, data interface{}) bool {
	switch h.Kind() {
	case uid.KindNode:
		if i := g.nodeIndex(h); i >= 0 {
			g.nodes[i].data = data
			return true
		}
	case uid.KindSocket:
		if i := g.socketIndex(h); i >= 0 {
			g.sockets[i].data = data
			return true
		}
	}
	return false
}

// GetData reads back a node or socket's user payload.
func (g *Graph) GetData(h uid.Handle) interface{} {
	switch h.Kind() {
	case uid.KindNode:
		if i := g.nodeIndex(h); i >= 0 {
			return g.nodes[i].data
		}
	case uid.KindSocket:
		if i := g.socketIndex(h); i >= 0 {
			return g.sockets[i].data
		}
	}
	return nil
}

// Clear drops every node, socket and connection.
func (g *Graph) Clear() {
	g.nodes = nil
	g.sockets = nil
	g.conns = nil
	g.freeNode = nil
	g.freeSock = nil
	g.freeConn = nil
}

// NodeName returns a node's name.
func (g *Graph) NodeName(n uid.Handle) (string, bool) {
	i := g.nodeIndex(n)
	if i < 0 {
		return "", false
	}
	return g.nodes[i].name, true
}

// SocketName returns a socket's name.
func (g *Graph) SocketName(s uid.Handle) (string, bool) {
	i := g.socketIndex(s)
	if i < 0 {
		return "", false
	}
	return g.sockets[i].name, true
}

// Sockets returns a node's sockets of the given kind, in insertion
// order.
func (g *Graph) Sockets(n uid.Handle, kind SocketKind) []uid.Handle {
	i := g.nodeIndex(n)
	if i < 0 {
		return nil
	}
	var idxs []int
	if kind == Input {
		idxs = g.nodes[i].inputs
	} else {
		idxs = g.nodes[i].outputs
	}
	out := make([]uid.Handle, 0, len(idxs))
	for _, si := range idxs {
		out = append(out, g.socketHandle(si))
	}
	return out
}

// IsInputSocket reports whether s is an input socket.
func (g *Graph) IsInputSocket(s uid.Handle) bool {
	i := g.socketIndex(s)
	return i >= 0 && g.sockets[i].kind == Input
}

// Connections returns the connections touching socket s, insertion
// order.
func (g *Graph) Connections(s uid.Handle) []uid.Handle {
	i := g.socketIndex(s)
	if i < 0 {
		return nil
	}
	sk := &g.sockets[i]
	if sk.kind == Output {
		out := make([]uid.Handle, 0, len(sk.srcEdges))
		for _, ci := range sk.srcEdges {
			out = append(out, g.connHandle(ci))
		}
		return out
	}
	if sk.dstEdge >= 0 {
		return []uid.Handle{g.connHandle(sk.dstEdge)}
	}
	return nil
}

// HasConnection reports whether s has at least one connection.
func (g *Graph) HasConnection(s uid.Handle) bool {
	return len(g.Connections(s)) > 0
}

// Interfaces returns the interface nodes that borrow socket s.
func (g *Graph) Interfaces(s uid.Handle) []uid.Handle {
	i := g.socketIndex(s)
	if i < 0 {
		return nil
	}
	out := make([]uid.Handle, 0, len(g.sockets[i].interfaces))
	for _, ni := range g.sockets[i].interfaces {
		out = append(out, g.nodeHandle(ni))
	}
	return out
}

// ConnectionInfo reports a connection's endpoints.
func (g *Graph) ConnectionInfo(c uid.Handle) (src, dst uid.Handle, ok bool) {
	i := g.connIndex(c)
	if i < 0 {
		return uid.Zero, uid.Zero, false
	}
	return g.socketHandle(g.conns[i].src), g.socketHandle(g.conns[i].dst), true
}

// SocketOwner returns the node that owns socket s.
func (g *Graph) SocketOwner(s uid.Handle) (uid.Handle, bool) {
	i := g.socketIndex(s)
	if i < 0 {
		return uid.Zero, false
	}
	return g.nodeHandle(g.sockets[i].owner), true
}

// Node returns the owning node of socket s (alias for SocketOwner,
// matching the source's ng.node(socket) accessor).
func (g *Graph) Node(s uid.Handle) (uid.Handle, bool) {
	return g.SocketOwner(s)
}
