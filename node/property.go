package node

import "github.com/mocabe-yave/yave/uid"

// PropertyKind tags a PropertyNode's payload.
type PropertyKind int

const (
	PropInt PropertyKind = iota
	PropFloat
	PropString
	PropBool
	PropInner // a nominal inner node of some type constructor
)

// PropertyNode is a recursive tagged tree of named, typed values used
// for editor-facing node metadata (position, display name, arbitrary
// per-node settings). Leaves carry Int/Float/String/Bool values; inner
// nodes carry a type name (so serialization round-trips with the same
// nominal type) and children.
type PropertyNode struct {
	Name     string
	Kind     PropertyKind
	IntV     int64
	FloatV   float64
	StringV  string
	BoolV    bool
	TypeName string // PropInner only
	Children []*PropertyNode
}

func NewIntProp(name string, v int64) *PropertyNode {
	return &PropertyNode{Name: name, Kind: PropInt, IntV: v}
}

func NewFloatProp(name string, v float64) *PropertyNode {
	return &PropertyNode{Name: name, Kind: PropFloat, FloatV: v}
}

func NewStringProp(name string, v string) *PropertyNode {
	return &PropertyNode{Name: name, Kind: PropString, StringV: v}
}

func NewBoolProp(name string, v bool) *PropertyNode {
	return &PropertyNode{Name: name, Kind: PropBool, BoolV: v}
}

func NewInnerProp(name, typeName string, children ...*PropertyNode) *PropertyNode {
	return &PropertyNode{Name: name, Kind: PropInner, TypeName: typeName, Children: children}
}

// Find returns the named direct child of an inner node, if present.
func (p *PropertyNode) Find(name string) (*PropertyNode, bool) {
	if p == nil {
		return nil, false
	}
	for _, c := range p.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Vec2 is the position type used by SetPos.
type Vec2 struct{ X, Y float64 }

// SetPos stores an editor-facing position as a property.
func (g *Graph) SetPos(h uid.Handle, v Vec2) bool {
	return g.SetProperty(h, "pos", NewInnerProp("pos", "Vec2",
		NewFloatProp("x", v.X), NewFloatProp("y", v.Y)))
}

// SetProperty attaches a named property value onto a node's property
// tree, creating the tree if absent. Socket handles are not accepted:
// it returns false for them.
func (g *Graph) SetProperty(h uid.Handle, name string, value *PropertyNode) bool {
	m := g.get(h)
	if m == nil {
		return false
	}
	if m.properties == nil {
		m.properties = &PropertyNode{Kind: PropInner}
	}
	for i, c := range m.properties.Children {
		if c.Name == name {
			m.properties.Children[i] = value
			value.Name = name
			return true
		}
	}
	value.Name = name
	m.properties.Children = append(m.properties.Children, value)
	return true
}

// GetProperty reads back a node's named property; for a socket handle
// it reports false.
func (g *Graph) GetProperty(h uid.Handle, name string) (*PropertyNode, bool) {
	m := g.get(h)
	if m == nil || m.properties == nil {
		return nil, false
	}
	return m.properties.Find(name)
}
