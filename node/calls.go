package node

import (
	"github.com/mocabe-yave/yave/graph"
	"github.com/mocabe-yave/yave/uid"
)

// CreateFunctionCall instantiates a lightweight call of a registered
// function prototype inside parent. The call's sockets are copied
// from the prototype's current declaration; unlike group/macro calls
// (which mirror live edits to an in-graph definition), a function
// prototype lives in the registry, not the graph, so later registry
// edits are not retroactively mirrored onto existing calls.
func (g *Graph) CreateFunctionCall(parent uid.Handle, reg *Registry, path string) (uid.Handle, bool) {
	decl, ok := reg.Get(path)
	if !ok {
		return uid.Zero, false
	}
	pm := g.get(parent)
	if pm == nil {
		return uid.Zero, false
	}

	h := g.basic.Add(decl.Path, decl.Inputs, decl.Outputs, graph.Normal)
	g.meta[h.ID()] = &meta{
		handle: h, skind: KindFunction, ctype: Call,
		parent: parent.ID(), name: decl.Path, z: g.nextZ(),
	}
	pm.members = append(pm.members, h.ID())
	return h, true
}

// CreateMacroCall instantiates a macro call, which unlike a function
// call is permitted to diverge in socket count from the prototype.
func (g *Graph) CreateMacroCall(parent uid.Handle, name string, inputs, outputs []string) (uid.Handle, bool) {
	pm := g.get(parent)
	if pm == nil {
		return uid.Zero, false
	}
	h := g.basic.Add(name, inputs, outputs, graph.Normal)
	g.meta[h.ID()] = &meta{
		handle: h, skind: KindMacro, ctype: Call,
		parent: parent.ID(), name: name, z: g.nextZ(),
	}
	pm.members = append(pm.members, h.ID())
	return h, true
}
