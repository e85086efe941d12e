// Package diagnostics implements the tagged-variant compile-time
// message type and the map that collects, filters, and surfaces it to
// callers, including ancestor-group-aware lookup by node handle.
package diagnostics

import (
	"fmt"

	"github.com/mocabe-yave/yave/rts"
	"github.com/mocabe-yave/yave/uid"
)

// Kind enumerates the bit-exact diagnostic kinds named by the
// taxonomy table: every compile-time message the parser or compiler
// can emit is one of these.
type Kind int

const (
	InternalCompileError Kind = iota
	UnexpectedParseError
	MissingInput
	MissingOutput
	IsLambdaNode
	HasDefaultArgument
	HasInputConnection
	HasOutputConnection
	UnexpectedTypeError
	NoValidOverloading
	TypeMissmatch
	UnsolvableConstraints
	InvalidOutputType
)

// Category is the coarse error/info/warning split used for filtering.
type Category int

const (
	CategoryError Category = iota
	CategoryInfo
	CategoryWarning
)

func (k Kind) Category() Category {
	switch k {
	case IsLambdaNode, HasDefaultArgument, HasInputConnection, HasOutputConnection:
		return CategoryInfo
	default:
		return CategoryError
	}
}

// Message is a single compile-time diagnostic. Only the fields
// relevant to its Kind are populated; see the field-by-kind table in
// the accompanying specification.
type Message struct {
	Kind Kind

	Node   uid.Handle
	Socket uid.Handle

	// TypeMissmatch / UnsolvableConstraints
	ExpectedSocket uid.Handle
	ProvidedSocket uid.Handle
	Expected       *rts.Type
	Provided       *rts.Type

	// InvalidOutputType
	ExpectedType *rts.Type
	ProvidedType *rts.Type

	// string-carrying kinds
	Text string
}

// String renders a message for the editor/CLI, matching the source's
// per-kind field ordering exactly (e.g. type mismatch renders
// expected-type, expected-socket, provided-type, provided-socket, in
// that order).
func (m Message) String() string {
	switch m.Kind {
	case InternalCompileError:
		return fmt.Sprintf("internal compile error: %s", m.Text)
	case UnexpectedParseError:
		return fmt.Sprintf("unexpected parse error: %s", m.Text)
	case MissingInput:
		return fmt.Sprintf("missing input: node=%s socket=%s", m.Node, m.Socket)
	case MissingOutput:
		return fmt.Sprintf("missing output: node=%s socket=%s", m.Node, m.Socket)
	case IsLambdaNode:
		return fmt.Sprintf("lambda node: node=%s", m.Node)
	case HasDefaultArgument:
		return fmt.Sprintf("has default argument: node=%s socket=%s", m.Node, m.Socket)
	case HasInputConnection:
		return fmt.Sprintf("has input connection: node=%s socket=%s", m.Node, m.Socket)
	case HasOutputConnection:
		return fmt.Sprintf("has output connection: node=%s socket=%s", m.Node, m.Socket)
	case UnexpectedTypeError:
		return fmt.Sprintf("unexpected type error: %s", m.Text)
	case NoValidOverloading:
		return fmt.Sprintf("no valid overloading: socket=%s", m.Socket)
	case TypeMissmatch:
		return fmt.Sprintf("type missmatch: expected=%s s=%s, provided=%s s=%s",
			m.Expected, m.ExpectedSocket, m.Provided, m.ProvidedSocket)
	case UnsolvableConstraints:
		return fmt.Sprintf("unsolvable constraints: lhs=%s s=%s, rhs=%s s=%s",
			m.Expected, m.ExpectedSocket, m.Provided, m.ProvidedSocket)
	case InvalidOutputType:
		return fmt.Sprintf("invalid output type: expected=%s, provided=%s", m.ExpectedType, m.ProvidedType)
	default:
		return "<unknown diagnostic>"
	}
}

// ancestorChecker lets Map.ForNode walk containing groups without
// diagnostics depending on package node.
type ancestorChecker interface {
	IsParentOf(ancestor, h uid.Handle) bool
}

// Map collects messages and supports kind/category filtering and
// ancestor-group-aware node lookup.
type Map struct {
	messages []Message
}

func (m *Map) Add(msg Message) {
	m.messages = append(m.messages, msg)
}

func (m *Map) All() []Message {
	return m.messages
}

func (m *Map) HasError() bool {
	for _, msg := range m.messages {
		if msg.Kind.Category() == CategoryError {
			return true
		}
	}
	return false
}

func (m *Map) ByCategory(c Category) []Message {
	var out []Message
	for _, msg := range m.messages {
		if msg.Kind.Category() == c {
			out = append(out, msg)
		}
	}
	return out
}

func (m *Map) ByKind(k Kind) []Message {
	var out []Message
	for _, msg := range m.messages {
		if msg.Kind == k {
			out = append(out, msg)
		}
	}
	return out
}

// ForNode returns every message attached to n directly, or to any
// node n transitively contains (so a message on an interior node
// surfaces when querying the containing group).
func (m *Map) ForNode(ng ancestorChecker, n uid.Handle) []Message {
	var out []Message
	for _, msg := range m.messages {
		if msg.Node == n || (ng != nil && ng.IsParentOf(n, msg.Node)) {
			out = append(out, msg)
		}
	}
	return out
}

// ForSocket returns every message attached exactly to socket s (no
// ancestor walk, matching the source's exact-match socket lookup).
func (m *Map) ForSocket(s uid.Handle) []Message {
	var out []Message
	for _, msg := range m.messages {
		if msg.Socket == s {
			out = append(out, msg)
		}
	}
	return out
}
