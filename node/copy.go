package node

import (
	"github.com/mocabe-yave/yave/graph"
	"github.com/mocabe-yave/yave/uid"
)

// CreateCopy makes a shallow copy of a function/macro/group call (or
// definition) as a new call in parent, sharing the source's socket
// pattern. It fails if source is the root, or if parent is source or
// a descendant of it (which would self-parent).
func (g *Graph) CreateCopy(parent, source uid.Handle) (uid.Handle, bool) {
	if source.ID() == g.root {
		return uid.Zero, false
	}
	sm := g.get(source)
	pm := g.get(parent)
	if sm == nil || pm == nil {
		return uid.Zero, false
	}
	if parent.ID() == source.ID() || g.IsParentOf(source, parent) {
		return uid.Zero, false
	}

	inputs := namesOf(g.InputSockets(source), g)
	outputs := namesOf(g.OutputSockets(source), g)

	h := g.basic.Add(sm.name, inputs, outputs, graph.Normal)
	def, _ := g.GetDefinition(source)
	g.meta[h.ID()] = &meta{
		handle: h, skind: sm.skind, ctype: Call,
		parent: parent.ID(), name: sm.name, z: g.nextZ(),
		definitionOf: def.ID(),
	}
	pm.members = append(pm.members, h.ID())
	return h, true
}

// CreateClone deep-copies a group's interior recursively (members,
// internal connections) as a brand new group definition in parent;
// for a function/macro call it degenerates to CreateCopy since there
// is no interior to duplicate.
func (g *Graph) CreateClone(parent, source uid.Handle) (uid.Handle, bool) {
	sm := g.get(source)
	if sm == nil {
		return uid.Zero, false
	}
	if sm.skind != KindGroup {
		return g.CreateCopy(parent, source)
	}
	if source.ID() == g.root {
		return uid.Zero, false
	}

	newGroup, ok := g.CreateGroup(parent, nil)
	if !ok {
		return uid.Zero, false
	}
	ngm := g.meta[newGroup.ID()]

	// clone exposed sockets.
	for _, s := range g.InputSockets(source) {
		name, _ := g.basic.SocketName(s)
		g.basic.AddSocket(newGroup, name, graph.Input)
		g.basic.AddSocket(g.meta[ngm.groupInput].handle, name, graph.Output)
	}
	for _, s := range g.OutputSockets(source) {
		name, _ := g.basic.SocketName(s)
		g.basic.AddSocket(newGroup, name, graph.Output)
		g.basic.AddSocket(g.meta[ngm.groupOutput].handle, name, graph.Input)
	}

	// clone members: nested groups are deep-cloned by recursing into
	// CreateClone, everything else is copied with CreateCopy.
	idMap := map[uid.UID]uid.UID{}
	for _, member := range g.GetGroupMembers(source) {
		var cloned uid.Handle
		if g.IsGroup(member) {
			cloned, _ = g.CreateClone(newGroup, member)
		} else {
			cloned, _ = g.CreateCopy(newGroup, member)
		}
		idMap[member.ID()] = cloned.ID()
	}

	// reconnect internal edges between cloned members using matching
	// socket indices (name-based correspondence).
	for _, member := range g.GetGroupMembers(source) {
		clonedMember := g.meta[idMap[member.ID()]].handle
		for i, s := range g.InputSockets(member) {
			conns := g.Connections(s)
			if len(conns) == 0 {
				continue
			}
			src, _, _ := g.basic.ConnectionInfo(conns[0])
			srcOwner, _ := g.NodeOf(src)
			srcIdx, _ := g.GetIndex(src)
			if clonedSrcID, ok := idMap[srcOwner.ID()]; ok {
				clonedSrc := g.meta[clonedSrcID].handle
				outs := g.OutputSockets(clonedSrc)
				if srcIdx < len(outs) {
					ins := g.InputSockets(clonedMember)
					if i < len(ins) {
						g.basic.Connect(outs[srcIdx], ins[i])
					}
				}
			}
		}
	}

	return newGroup, true
}

func namesOf(hs []uid.Handle, g *Graph) []string {
	out := make([]string, 0, len(hs))
	for _, h := range hs {
		n, _ := g.basic.SocketName(h)
		out = append(out, n)
	}
	return out
}
