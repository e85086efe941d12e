// Package node implements the structured node graph layered atop
// package graph: groups (with definitions and calls), functions,
// macros, the synthetic group_input/group_output interior nodes, path
// naming, a property tree, and the mirroring of a group definition's
// socket edits onto its group_input/group_output interior nodes.
// Socket edits are not propagated to existing calls of a definition.
package node

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mocabe-yave/yave/graph"
	"github.com/mocabe-yave/yave/uid"
)

// StructuredKind classifies a structured node beyond the basic
// normal/interface distinction.
type StructuredKind int

const (
	KindFunction StructuredKind = iota
	KindGroup
	KindGroupInput
	KindGroupOutput
	KindMacro
)

// CallType distinguishes a definition from a lightweight call of one.
type CallType int

const (
	Definition CallType = iota
	Call
)

type meta struct {
	handle uid.Handle
	skind  StructuredKind
	ctype  CallType

	parent uid.UID // zero for the root group

	// for a Call: the id of the Definition node it refers to.
	// for a Definition: its own id.
	definitionOf uid.UID
	calls        []uid.UID // Definition only; no code path records calls here

	groupInput  uid.UID // Group Definition only
	groupOutput uid.UID // Group Definition only
	members     []uid.UID // Group Definition only: direct children, insertion order

	name       string
	properties *PropertyNode
	z          int
}

// Graph is the structured node graph.
type Graph struct {
	log   zerolog.Logger
	basic *graph.Graph
	meta  map[uid.UID]*meta
	root  uid.UID
	zctr  int
}

// New creates an empty structured graph with a distinguished root
// group that has no parent and cannot be destroyed or cloned.
func New(log zerolog.Logger) *Graph {
	g := &Graph{log: log, basic: graph.New(log), meta: map[uid.UID]*meta{}}
	root := g.newGroupDefinition(uid.Nil, "root")
	g.root = root.ID()
	return g
}

// Root returns the handle of the distinguished root group.
func (g *Graph) Root() uid.Handle {
	return g.meta[g.root].handle
}

func (g *Graph) get(h uid.Handle) *meta {
	if !g.basic.Exists(h) {
		return nil
	}
	m, ok := g.meta[h.ID()]
	if !ok {
		return nil
	}
	return m
}

// Exists reports whether h is a live structured node handle.
func (g *Graph) Exists(h uid.Handle) bool {
	return g.get(h) != nil
}

func (g *Graph) nextZ() int {
	g.zctr++
	return g.zctr
}

// newGroupDefinition allocates the basic node plus its group_input and
// group_output interior nodes, with no exposed sockets yet.
func (g *Graph) newGroupDefinition(parent uid.UID, name string) uid.Handle {
	h := g.basic.Add(name, nil, nil, graph.Normal)
	gi := g.basic.Add(name+".group_input", nil, nil, graph.Normal)
	go_ := g.basic.Add(name+".group_output", nil, nil, graph.Normal)

	g.meta[h.ID()] = &meta{
		handle: h, skind: KindGroup, ctype: Definition,
		parent: parent, name: name, z: g.nextZ(),
		groupInput: gi.ID(), groupOutput: go_.ID(),
	}
	g.meta[gi.ID()] = &meta{handle: gi, skind: KindGroupInput, ctype: Definition, parent: h.ID(), name: "group_input"}
	g.meta[go_.ID()] = &meta{handle: go_, skind: KindGroupOutput, ctype: Definition, parent: h.ID(), name: "group_output"}
	g.meta[h.ID()].definitionOf = h.ID()
	return h
}

// IsGroup, IsFunction, IsMacro, IsGroupInput, IsGroupOutput classify a
// structured node.
func (g *Graph) IsGroup(h uid.Handle) bool       { m := g.get(h); return m != nil && m.skind == KindGroup }
func (g *Graph) IsFunction(h uid.Handle) bool    { m := g.get(h); return m != nil && m.skind == KindFunction }
func (g *Graph) IsMacro(h uid.Handle) bool       { m := g.get(h); return m != nil && m.skind == KindMacro }
func (g *Graph) IsGroupInput(h uid.Handle) bool  { m := g.get(h); return m != nil && m.skind == KindGroupInput }
func (g *Graph) IsGroupOutput(h uid.Handle) bool { m := g.get(h); return m != nil && m.skind == KindGroupOutput }

// IsGroupMember reports whether h is a normal member of some group
// (i.e. not a group_input/group_output interior node).
func (g *Graph) IsGroupMember(h uid.Handle) bool {
	m := g.get(h)
	return m != nil && m.skind != KindGroupInput && m.skind != KindGroupOutput
}

func (g *Graph) IsDefinition(h uid.Handle) bool {
	m := g.get(h)
	return m != nil && m.ctype == Definition
}

func (g *Graph) IsCall(h uid.Handle) bool {
	m := g.get(h)
	return m != nil && m.ctype == Call
}

// GetDefinition returns the definition a call refers to (itself, if h
// is already a definition).
func (g *Graph) GetDefinition(h uid.Handle) (uid.Handle, bool) {
	m := g.get(h)
	if m == nil {
		return uid.Zero, false
	}
	if m.ctype == Definition {
		return h, true
	}
	dm, ok := g.meta[m.definitionOf]
	if !ok {
		return uid.Zero, false
	}
	return dm.handle, true
}

// GetGroupInput / GetGroupOutput return a group definition's synthetic
// interior nodes.
func (g *Graph) GetGroupInput(group uid.Handle) (uid.Handle, bool) {
	m := g.get(group)
	if m == nil || m.skind != KindGroup {
		return uid.Zero, false
	}
	return g.meta[m.groupInput].handle, true
}

func (g *Graph) GetGroupOutput(group uid.Handle) (uid.Handle, bool) {
	m := g.get(group)
	if m == nil || m.skind != KindGroup {
		return uid.Zero, false
	}
	return g.meta[m.groupOutput].handle, true
}

// GetParentGroup returns the group a node lives directly under.
func (g *Graph) GetParentGroup(h uid.Handle) (uid.Handle, bool) {
	m := g.get(h)
	if m == nil || m.parent == uid.Nil {
		return uid.Zero, false
	}
	pm, ok := g.meta[m.parent]
	if !ok {
		return uid.Zero, false
	}
	return pm.handle, true
}

// GetGroupMembers returns a group definition's direct children
// (excluding the group_input/group_output interior nodes), in
// z-order.
func (g *Graph) GetGroupMembers(group uid.Handle) []uid.Handle {
	m := g.get(group)
	if m == nil || m.skind != KindGroup {
		return nil
	}
	out := make([]uid.Handle, 0, len(m.members))
	for _, id := range m.members {
		if mm, ok := g.meta[id]; ok {
			out = append(out, mm.handle)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return g.meta[out[i].ID()].z < g.meta[out[j].ID()].z
	})
	return out
}

// GetGroupNodes returns a group's members plus its two synthetic
// interface nodes.
func (g *Graph) GetGroupNodes(group uid.Handle) []uid.Handle {
	m := g.get(group)
	if m == nil || m.skind != KindGroup {
		return nil
	}
	out := append(g.GetGroupMembers(group), g.meta[m.groupInput].handle, g.meta[m.groupOutput].handle)
	return out
}

// IsParentOf reports whether ancestor transitively contains h (used
// by diagnostics to surface a message attached to an interior node
// when querying a containing group).
func (g *Graph) IsParentOf(ancestor, h uid.Handle) bool {
	cur := g.get(h)
	for cur != nil && cur.parent != uid.Nil {
		if cur.parent == ancestor.ID() {
			return true
		}
		cur = g.meta[cur.parent]
	}
	return false
}

// GetPath returns a slash-separated path from the root to h.
func (g *Graph) GetPath(h uid.Handle) string {
	var parts []string
	cur := g.get(h)
	for cur != nil {
		parts = append([]string{cur.name}, parts...)
		if cur.parent == uid.Nil {
			break
		}
		cur = g.meta[cur.parent]
	}
	return "/" + strings.Join(parts, "/")
}

// SearchPath resolves a slash-separated path to a handle, or the zero
// handle if no such path exists.
func (g *Graph) SearchPath(path string) uid.Handle {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	cur := g.meta[g.root]
	if cur == nil {
		return uid.Zero
	}
	if len(parts) == 1 && parts[0] == cur.name {
		return cur.handle
	}
	for _, part := range parts[1:] {
		found := false
		for _, id := range cur.members {
			if mm, ok := g.meta[id]; ok && mm.name == part {
				cur = mm
				found = true
				break
			}
		}
		if !found {
			return uid.Zero
		}
	}
	return cur.handle
}

// Name returns a node's declared name (a function's registry path, a
// group/macro's own name, or the synthetic group_input/group_output
// name).
func (g *Graph) Name(h uid.Handle) (string, bool) {
	m := g.get(h)
	if m == nil {
		return "", false
	}
	return m.name, true
}

// BringFront moves a node to the end of its parent's z-order.
func (g *Graph) BringFront(h uid.Handle) bool {
	m := g.get(h)
	if m == nil {
		return false
	}
	m.z = g.nextZ()
	return true
}

func (g *Graph) String() string {
	return fmt.Sprintf("structured graph rooted at %s", g.GetPath(g.Root()))
}
