// Package uid provides stable, totally-ordered, random-generated
// identifiers and generic opaque handles over them.
package uid

import (
	"github.com/google/uuid"
)

// UID is a 128-bit totally ordered identifier. The zero value is
// distinct from every generated UID.
type UID uuid.UUID

// Nil is the zero UID; no call to New ever produces it.
var Nil UID

// New generates a fresh random UID.
func New() UID {
	return UID(uuid.New())
}

// Compare gives a total order over UIDs (lexicographic on bytes).
func (u UID) Compare(o UID) int {
	for i := range u {
		if u[i] != o[i] {
			if u[i] < o[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// String renders the canonical hyphenated form.
func (u UID) String() string {
	return uuid.UUID(u).String()
}

// Kind tags the domain of a Handle (node, socket or connection).
type Kind int

const (
	KindNode Kind = iota
	KindSocket
	KindConnection
)

// desc is the opaque internal descriptor a Handle carries alongside
// its UID — an index into whatever slot table owns the referent, plus
// a generation so a reused slot does not alias a stale handle.
type desc struct {
	index int
	gen   uint64
}

// Handle is an opaque reference to a node, socket or connection. Two
// handles compare valid-for-a-graph only through that graph's own
// lookup: equality of Handle values alone does not imply validity.
type Handle struct {
	kind Kind
	d    desc
	id   UID
}

// Zero handles are never valid for any graph.
var Zero Handle

// newHandle is used by the owning slot table only.
func newHandle(kind Kind, index int, gen uint64, id UID) Handle {
	return Handle{kind: kind, d: desc{index: index, gen: gen}, id: id}
}

// NewNodeHandle constructs a node handle from its owning slot table's
// descriptor fields. Exported for use by package graph/node, which own
// the slot tables.
func NewNodeHandle(index int, gen uint64, id UID) Handle {
	return newHandle(KindNode, index, gen, id)
}

// NewSocketHandle is the socket analog of NewNodeHandle.
func NewSocketHandle(index int, gen uint64, id UID) Handle {
	return newHandle(KindSocket, index, gen, id)
}

// NewConnectionHandle is the connection analog of NewNodeHandle.
func NewConnectionHandle(index int, gen uint64, id UID) Handle {
	return newHandle(KindConnection, index, gen, id)
}

func (h Handle) Kind() Kind { return h.kind }
func (h Handle) ID() UID    { return h.id }

// Index and Gen expose the descriptor to the owning package only by
// convention: callers outside graph/node should treat a Handle as
// opaque and use the owning graph's Exists instead.
func (h Handle) Index() int    { return h.d.index }
func (h Handle) Gen() uint64   { return h.d.gen }
func (h Handle) IsZero() bool { return h == Zero }

func (h Handle) String() string { return h.id.String() }
