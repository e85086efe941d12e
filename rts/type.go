package rts

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	yuid "github.com/mocabe-yave/yave/uid"
)

// Kind classifies a type constructor's arity.
type Kind int

const (
	KindStar   Kind = iota // *
	KindStarFn             // *→*
)

// tag discriminates the Type variant.
type tag int

const (
	tagValue tag = iota
	tagVar
	tagArrow
	tagList
	tagCon
	tagApp
)

var varCounter uint64

// Type is a small tagged variant over the HM type algebra: nominal
// value types, meta-variables, arrows, lists, and kinded type
// constructor application.
type Type struct {
	tag tag

	// tagValue / tagCon
	uuid yuid.UID
	name string
	kind Kind // tagCon only

	// tagVar
	varID uint64

	// tagArrow
	captured *Type
	returns  *Type

	// tagList
	elem *Type

	// tagApp
	con *Type
	arg *Type
}

// listUUID is the fixed, well-known uuid of the list type constructor.
var listUUID = yuid.UID(uuid.MustParse("d14b9346-dead-4dad-8a1c-000000000001"))

// ValueType returns the nominal singleton type for a uuid/name pair.
func ValueType(id yuid.UID, name string) *Type {
	return &Type{tag: tagValue, uuid: id, name: name}
}

// GenVar returns a fresh rigid meta-variable.
func GenVar() *Type {
	id := atomic.AddUint64(&varCounter, 1)
	return &Type{tag: tagVar, varID: id}
}

// Arrow builds a right-associative function type a -> b.
func Arrow(captured, returns *Type) *Type {
	return &Type{tag: tagArrow, captured: captured, returns: returns}
}

// ListOf builds the unary list type constructor applied to t.
func ListOf(t *Type) *Type {
	return &Type{tag: tagList, elem: t}
}

// Con builds a nominal type constructor of the given kind.
func Con(id yuid.UID, name string, k Kind) *Type {
	return &Type{tag: tagCon, uuid: id, name: name, kind: k}
}

// App applies a type constructor to an argument type.
func App(con, arg *Type) *Type {
	return &Type{tag: tagApp, con: con, arg: arg}
}

func (t *Type) IsValue() bool { return t.tag == tagValue }
func (t *Type) IsVar() bool   { return t.tag == tagVar }
func (t *Type) IsArrow() bool { return t.tag == tagArrow }
func (t *Type) IsList() bool  { return t.tag == tagList }
func (t *Type) IsCon() bool   { return t.tag == tagCon }
func (t *Type) IsApp() bool   { return t.tag == tagApp }

func (t *Type) Captured() *Type { return t.captured }
func (t *Type) Returns() *Type  { return t.returns }
func (t *Type) Elem() *Type     { return t.elem }
func (t *Type) ConOf() *Type    { return t.con }
func (t *Type) Arg() *Type      { return t.arg }
func (t *Type) UUID() yuid.UID { return t.uuid }
func (t *Type) Name() string   { return t.name }
func (t *Type) VarID() uint64  { return t.varID }
func (t *Type) ConKind() Kind  { return t.kind }

// ListUUID returns the well-known id of the list type constructor.
// Types built by ListOf do not store it; they are identified by
// their list tag.
func ListUUID() yuid.UID { return listUUID }

// SameType is structural equality: pointer-equal short circuits,
// otherwise each variant compares its payload recursively.
func SameType(a, b *Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.tag != b.tag {
		return false
	}
	switch a.tag {
	case tagValue:
		return a.uuid == b.uuid
	case tagVar:
		return a.varID == b.varID
	case tagArrow:
		return SameType(a.captured, b.captured) && SameType(a.returns, b.returns)
	case tagList:
		return SameType(a.elem, b.elem)
	case tagCon:
		return a.uuid == b.uuid
	case tagApp:
		return SameType(a.con, b.con) && SameType(a.arg, b.arg)
	default:
		panic("rts: unreachable type tag in SameType")
	}
}

// CopyType deep-copies a type, preserving variable ids (it does not
// freshen them — that is Genpoly's job).
func CopyType(t *Type) *Type {
	if t == nil {
		return nil
	}
	switch t.tag {
	case tagValue, tagCon:
		cp := *t
		return &cp
	case tagVar:
		return &Type{tag: tagVar, varID: t.varID}
	case tagArrow:
		return Arrow(CopyType(t.captured), CopyType(t.returns))
	case tagList:
		return ListOf(CopyType(t.elem))
	case tagApp:
		return App(CopyType(t.con), CopyType(t.arg))
	default:
		panic("rts: unreachable type tag in CopyType")
	}
}

// String renders a type for diagnostics; not intended to round-trip.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.tag {
	case tagValue:
		return t.name
	case tagVar:
		return fmt.Sprintf("v%d", t.varID)
	case tagArrow:
		return fmt.Sprintf("(%s -> %s)", t.captured, t.returns)
	case tagList:
		return fmt.Sprintf("[%s]", t.elem)
	case tagCon:
		return t.name
	case tagApp:
		return fmt.Sprintf("(%s %s)", t.con, t.arg)
	default:
		return "<?>"
	}
}
