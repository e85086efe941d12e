package node

import (
	"fmt"

	"github.com/mocabe-yave/yave/graph"
	"github.com/mocabe-yave/yave/uid"
)

var groupCounter int

func nextGroupName() string {
	groupCounter++
	return fmt.Sprintf("group%d", groupCounter)
}

// CreateGroup allocates a new group under parent. If members is
// non-empty they are spliced into the new group's interior and any
// connection crossing the new boundary is rewired through a freshly
// exposed socket on the group and its matching group_input/
// group_output mirror, preserving arities and order.
func (g *Graph) CreateGroup(parent uid.Handle, members []uid.Handle) (uid.Handle, bool) {
	pm := g.get(parent)
	if pm == nil {
		return uid.Zero, false
	}

	groupH := g.newGroupDefinition(parent.ID(), nextGroupName())
	gm := g.meta[groupH.ID()]
	pm.members = append(pm.members, groupH.ID())

	if len(members) == 0 {
		return groupH, true
	}

	memberSet := make(map[uid.UID]bool, len(members))
	for _, m := range members {
		memberSet[m.ID()] = true
	}

	for _, m := range members {
		mm := g.get(m)
		if mm == nil {
			continue
		}
		removeID(&pm.members, m.ID())
		mm.parent = groupH.ID()
		gm.members = append(gm.members, m.ID())
	}

	giH := g.meta[gm.groupInput].handle
	goH := g.meta[gm.groupOutput].handle

	for _, m := range members {
		for _, s := range g.InputSockets(m) {
			conns := g.Connections(s)
			if len(conns) == 0 {
				continue
			}
			c := conns[0]
			src, _, ok := g.basic.ConnectionInfo(c)
			if !ok {
				continue
			}
			srcOwner, _ := g.NodeOf(src)
			if memberSet[srcOwner.ID()] {
				continue // internal edge, untouched
			}
			name, _ := g.basic.SocketName(s)
			g.basic.Disconnect(c)
			groupIn := g.basic.AddSocket(groupH, name, graph.Input)
			giOut := g.basic.AddSocket(giH, name, graph.Output)
			g.basic.Connect(src, groupIn)
			g.basic.Connect(giOut, s)
		}

		for _, s := range g.OutputSockets(m) {
			var external []uid.Handle
			for _, c := range g.Connections(s) {
				_, dst, ok := g.basic.ConnectionInfo(c)
				if !ok {
					continue
				}
				dstOwner, _ := g.NodeOf(dst)
				if memberSet[dstOwner.ID()] {
					continue
				}
				external = append(external, dst)
				g.basic.Disconnect(c)
			}
			if len(external) == 0 {
				continue
			}
			name, _ := g.basic.SocketName(s)
			groupOut := g.basic.AddSocket(groupH, name, graph.Output)
			goIn := g.basic.AddSocket(goH, name, graph.Input)
			g.basic.Connect(s, goIn)
			for _, dst := range external {
				g.basic.Connect(groupOut, dst)
			}
		}
	}

	return groupH, true
}

// Ungroup is the inverse of CreateGroup: it splices a group's members
// back out to the parent, reconnecting edges around the removed
// interface sockets, and destroys the now-empty group.
func (g *Graph) Ungroup(group uid.Handle) bool {
	gm := g.get(group)
	if gm == nil || gm.skind != KindGroup || group.ID() == g.root {
		return false
	}
	parentM, ok := g.GetParentGroup(group)
	if !ok {
		return false
	}
	pm := g.get(parentM)

	// Reconnect: for each exposed group input socket, find the single
	// internal destination(s) fed by its group_input mirror and wire
	// the original external source straight to them.
	for _, groupIn := range g.InputSockets(group) {
		name, _ := g.basic.SocketName(groupIn)
		conns := g.Connections(groupIn)
		var extSrc uid.Handle
		if len(conns) > 0 {
			extSrc, _, _ = g.basic.ConnectionInfo(conns[0])
		}
		giH := g.meta[gm.groupInput].handle
		for _, giOut := range g.OutputSockets(giH) {
			n2, _ := g.basic.SocketName(giOut)
			if n2 != name {
				continue
			}
			for _, c := range g.Connections(giOut) {
				_, dst, _ := g.basic.ConnectionInfo(c)
				if extSrc != uid.Zero {
					g.basic.Disconnect(c)
					g.basic.Connect(extSrc, dst)
				}
			}
		}
	}
	for _, groupOut := range g.OutputSockets(group) {
		name, _ := g.basic.SocketName(groupOut)
		var extDsts []uid.Handle
		for _, c := range g.Connections(groupOut) {
			_, dst, _ := g.basic.ConnectionInfo(c)
			extDsts = append(extDsts, dst)
			g.basic.Disconnect(c)
		}
		goH := g.meta[gm.groupOutput].handle
		for _, goIn := range g.InputSockets(goH) {
			n2, _ := g.basic.SocketName(goIn)
			if n2 != name {
				continue
			}
			conns := g.Connections(goIn)
			if len(conns) == 0 {
				continue
			}
			intSrc, _, _ := g.basic.ConnectionInfo(conns[0])
			for _, dst := range extDsts {
				g.basic.Connect(intSrc, dst)
			}
		}
	}

	for _, id := range gm.members {
		if mm, ok := g.meta[id]; ok {
			mm.parent = parentM.ID()
			pm.members = append(pm.members, id)
		}
	}

	g.basic.Remove(g.meta[gm.groupInput].handle)
	g.basic.Remove(g.meta[gm.groupOutput].handle)
	g.basic.Remove(group)
	delete(g.meta, gm.groupInput)
	delete(g.meta, gm.groupOutput)
	delete(g.meta, group.ID())
	removeID(&pm.members, group.ID())
	return true
}

func removeID(list *[]uid.UID, id uid.UID) {
	for i, v := range *list {
		if v == id {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return
		}
	}
}
