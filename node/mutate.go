package node

import (
	"github.com/mocabe-yave/yave/graph"
	"github.com/mocabe-yave/yave/uid"
)

// mutable reports whether defn's sockets/name may be edited: permitted
// on group definitions and macros, rejected on calls and function
// definitions (spec: "Renames and socket-count edits are rejected on
// calls and on function definitions").
func (g *Graph) mutable(defn uid.Handle) bool {
	m := g.get(defn)
	if m == nil {
		return false
	}
	if m.skind == KindGroup {
		return m.ctype == Definition
	}
	if m.skind == KindMacro {
		return true // macro calls may diverge freely
	}
	return false
}

// AddInputSocket adds a named input socket to a group definition or a
// macro; on a group it is mirrored onto the group_input interior's
// matching output socket.
func (g *Graph) AddInputSocket(defn uid.Handle, name string) (uid.Handle, bool) {
	if !g.mutable(defn) {
		return uid.Zero, false
	}
	m := g.get(defn)
	s := g.basic.AddSocket(defn, name, graph.Input)
	if m.skind == KindGroup {
		g.basic.AddSocket(g.meta[m.groupInput].handle, name, graph.Output)
	}
	return s, true
}

// AddOutputSocket is the output-socket analog of AddInputSocket.
func (g *Graph) AddOutputSocket(defn uid.Handle, name string) (uid.Handle, bool) {
	if !g.mutable(defn) {
		return uid.Zero, false
	}
	m := g.get(defn)
	s := g.basic.AddSocket(defn, name, graph.Output)
	if m.skind == KindGroup {
		g.basic.AddSocket(g.meta[m.groupOutput].handle, name, graph.Input)
	}
	return s, true
}

// RemoveSocket removes socket s from its owning group definition or
// macro, mirroring the removal onto the group's interior and
// destroying any connection through it or its mirror.
func (g *Graph) RemoveSocket(s uid.Handle) bool {
	owner, ok := g.NodeOf(s)
	if !ok || !g.mutable(owner) {
		return false
	}
	m := g.get(owner)
	name, _ := g.basic.SocketName(s)
	kind := graph.Output
	if g.basic.IsInputSocket(s) {
		kind = graph.Input
	}

	if m.skind == KindGroup {
		var mirrorOwner uid.Handle
		var mirrorKind graph.SocketKind
		if kind == graph.Input {
			mirrorOwner = g.meta[m.groupInput].handle
			mirrorKind = graph.Output
		} else {
			mirrorOwner = g.meta[m.groupOutput].handle
			mirrorKind = graph.Input
		}
		var sockets []uid.Handle
		if mirrorKind == graph.Output {
			sockets = g.OutputSockets(mirrorOwner)
		} else {
			sockets = g.InputSockets(mirrorOwner)
		}
		for _, cand := range sockets {
			if n, _ := g.basic.SocketName(cand); n == name {
				g.basic.RemoveSocket(cand)
				break
			}
		}
	}

	return g.basic.RemoveSocket(s)
}

// SetName renames a group definition or macro. Calls and function
// definitions reject the rename.
func (g *Graph) SetName(defn uid.Handle, name string) bool {
	if !g.mutable(defn) {
		return false
	}
	g.meta[defn.ID()].name = name
	return true
}

// SetSocketName renames a socket belonging to a group definition or
// macro, mirroring onto the group interior's matching socket.
func (g *Graph) SetSocketName(s uid.Handle, name string) bool {
	owner, ok := g.NodeOf(s)
	if !ok || !g.mutable(owner) {
		return false
	}
	old, _ := g.basic.SocketName(s)
	if !g.basic.RenameSocket(s, name) {
		return false
	}

	m := g.get(owner)
	if m.skind == KindGroup {
		var mirrorOwner uid.Handle
		if g.basic.IsInputSocket(s) {
			mirrorOwner = g.meta[m.groupInput].handle
			for _, cand := range g.OutputSockets(mirrorOwner) {
				if n, _ := g.basic.SocketName(cand); n == old {
					g.basic.RenameSocket(cand, name)
					break
				}
			}
		} else {
			mirrorOwner = g.meta[m.groupOutput].handle
			for _, cand := range g.InputSockets(mirrorOwner) {
				if n, _ := g.basic.SocketName(cand); n == old {
					g.basic.RenameSocket(cand, name)
					break
				}
			}
		}
	}
	return true
}
