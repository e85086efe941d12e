// Package compiler lowers a parsed node graph into a runtime
// rts.Object term: a memoized, per-socket recursive compile with
// overload resolution, never failing fast — every per-socket error is
// accumulated and reported together at the end, mirroring the
// original compiler's verbose, collect-everything diagnostics.
package compiler

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/mocabe-yave/yave/diagnostics"
	"github.com/mocabe-yave/yave/node"
	"github.com/mocabe-yave/yave/rts"
	"github.com/mocabe-yave/yave/uid"
)

// BindInfo is one candidate overload for a function path: its
// argument pattern (by socket name, for diagnostics), its fully
// generalized declared type, and a factory producing the runtime
// primitive once all arguments are ready to bind.
type BindInfo struct {
	Path           string
	InputPattern   []string
	OutputSocket   string
	DeclaredType   func() *rts.Type // returns a fresh generalized type (fresh vars each call)
	Instantiate    func() *rts.Object
}

// BindRegistry maps a function path to its overload set.
type BindRegistry map[string][]BindInfo

// Executable is the compiled result: a runtime term for the
// requested root socket, plus the inferred type of that term.
type Executable struct {
	Term *rts.Object
	Type *rts.Type
}

type compiler struct {
	log   zerolog.Logger
	g     *node.Graph
	binds BindRegistry
	msgs  *diagnostics.Map

	mu        sync.Mutex
	memo      map[uid.UID]*rts.Object
	groupArgs map[uid.UID]*rts.Object
	group     singleflight.Group
}

var varIDCounter uint64

func nextVarID() uint64 {
	return atomic.AddUint64(&varIDCounter, 1)
}

// Compile lowers the graph reachable from rootSocket into a runtime
// term. It never returns early on a per-node failure: every socket
// that fails to compile contributes a diagnostic, and the full set is
// returned. The Executable is nil whenever any error-category
// diagnostic was collected.
func Compile(log zerolog.Logger, g *node.Graph, rootSocket uid.Handle, binds BindRegistry) (*Executable, *diagnostics.Map) {
	c := &compiler{log: log, g: g, binds: binds, msgs: &diagnostics.Map{}, memo: map[uid.UID]*rts.Object{}}

	term := c.compileSocket(rootSocket)
	if term == nil || c.msgs.HasError() {
		return nil, c.msgs
	}

	t, err := rts.TypeOf(term)
	if err != nil {
		c.msgs.Add(diagnostics.Message{Kind: diagnostics.InternalCompileError, Socket: rootSocket, Text: err.Error()})
		return nil, c.msgs
	}

	return &Executable{Term: term, Type: t}, c.msgs
}

// compileSocket compiles the term feeding an output socket, memoized
// per socket id so a value shared by multiple consumers is only
// built once; concurrent requests for the same socket collapse via
// singleflight the way compile() deduplicates re-entrant node visits.
func (c *compiler) compileSocket(s uid.Handle) *rts.Object {
	c.mu.Lock()
	if o, ok := c.memo[s.ID()]; ok {
		c.mu.Unlock()
		return o
	}
	c.mu.Unlock()

	v, _, _ := c.group.Do(s.ID().String(), func() (interface{}, error) {
		obj := c.compileSocketUncached(s)
		c.mu.Lock()
		c.memo[s.ID()] = obj
		c.mu.Unlock()
		return obj, nil
	})
	if v == nil {
		return nil
	}
	return v.(*rts.Object)
}

func (c *compiler) compileSocketUncached(s uid.Handle) *rts.Object {
	owner, ok := c.g.NodeOf(s)
	if !ok {
		c.msgs.Add(diagnostics.Message{Kind: diagnostics.InternalCompileError, Socket: s, Text: "socket has no owning node"})
		return nil
	}

	if c.g.IsGroupInput(owner) {
		return c.compileGroupInputSocket(s)
	}

	if c.g.IsGroup(owner) {
		return c.compileGroupOutput(owner, s)
	}

	return c.compileFunctionOutput(owner, s)
}

// compileGroupInputSocket resolves an output socket on a group_input
// interior node: it is whatever feeds the matching exposed input
// socket on the enclosing group, which must already be bound in the
// enclosing group's own compile (tracked via groupArgs).
func (c *compiler) compileGroupInputSocket(s uid.Handle) *rts.Object {
	args := c.lookupGroupArg(s)
	if args == nil {
		c.msgs.Add(diagnostics.Message{Kind: diagnostics.InternalCompileError, Socket: s, Text: "unbound group_input socket"})
		return nil
	}
	return args
}

// lookupGroupArg reads back the term bound to a group_input output
// socket by bindGroupInputs — either the caller-supplied argument, or
// a fresh Variable when the group is being compiled as a lambda.
func (c *compiler) lookupGroupArg(s uid.Handle) *rts.Object {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.groupArgs[s.ID()]
}

// compileGroupOutput compiles a group node's requested output socket:
// find the matching group_output input socket, compile whatever
// feeds it (inside the group's interior, with group_input sockets
// bound to either connected external sources or fresh lambda
// variables), and — if this group was classified as a lambda node by
// the parser — wrap the body in nested rts.Lambda binders.
func (c *compiler) compileGroupOutput(group, s uid.Handle) *rts.Object {
	name, _ := c.g.Name(group)
	goH, ok := c.g.GetGroupOutput(group)
	if !ok {
		c.msgs.Add(diagnostics.Message{Kind: diagnostics.InternalCompileError, Node: group, Text: name + ": missing group_output"})
		return nil
	}
	sockName, _ := c.g.SocketName(s)
	var goIn uid.Handle
	for _, in := range c.g.InputSockets(goH) {
		if n, _ := c.g.SocketName(in); n == sockName {
			goIn = in
			break
		}
	}
	if goIn.IsZero() {
		c.msgs.Add(diagnostics.Message{Kind: diagnostics.InvalidOutputType, Node: group, Socket: s})
		return nil
	}

	giH, _ := c.g.GetGroupInput(group)
	isLambda := c.bindGroupInputs(group, giH)

	conns := c.g.InputConnections(goH)
	var feeding *node.ConnInfo
	for i := range conns {
		if conns[i].DstSocket.ID() == goIn.ID() {
			feeding = &conns[i]
			break
		}
	}
	if feeding == nil {
		c.msgs.Add(diagnostics.Message{Kind: diagnostics.MissingOutput, Node: group, Socket: s})
		return nil
	}

	body := c.compileSocket(feeding.SrcSocket)
	if body == nil {
		return nil
	}

	if isLambda {
		for _, v := range c.lambdaParams(giH) {
			body = rts.NewLambda(v, body)
		}
	}
	return body
}

// bindGroupInputs populates groupArgs for every output socket of the
// group_input interior, binding it either to whatever externally
// feeds the group's matching exposed input, or — if no external
// connection exists — to a fresh rts.Variable, treating the group as
// a lambda over its unconnected inputs. It returns true if at least
// one such fresh variable was introduced.
func (c *compiler) bindGroupInputs(group, giH uid.Handle) bool {
	isLambda := false
	for _, giOut := range c.g.OutputSockets(giH) {
		name, _ := c.g.SocketName(giOut)
		var groupIn uid.Handle
		for _, in := range c.g.InputSockets(group) {
			if n, _ := c.g.SocketName(in); n == name {
				groupIn = in
				break
			}
		}

		var term *rts.Object
		if !groupIn.IsZero() {
			conns := c.g.InputConnections(c.ownerOf(groupIn))
			for _, ci := range conns {
				if ci.DstSocket.ID() == groupIn.ID() {
					term = c.compileSocket(ci.SrcSocket)
				}
			}
		}
		if term == nil {
			isLambda = true
			v := rts.NewVariable(nextVarID())
			term = v
		}

		c.mu.Lock()
		if c.groupArgs == nil {
			c.groupArgs = map[uid.UID]*rts.Object{}
		}
		c.groupArgs[giOut.ID()] = term
		c.mu.Unlock()
	}
	return isLambda
}

func (c *compiler) ownerOf(s uid.Handle) uid.Handle {
	owner, _ := c.g.NodeOf(s)
	return owner
}

// lambdaParams returns the fresh Variable objects bound to giH's
// output sockets, in socket order, for use as nested Lambda params.
func (c *compiler) lambdaParams(giH uid.Handle) []*rts.Object {
	var out []*rts.Object
	for _, giOut := range c.g.OutputSockets(giH) {
		c.mu.Lock()
		v := c.groupArgs[giOut.ID()]
		c.mu.Unlock()
		if v != nil && v.IsVariable() {
			out = append(out, v)
		}
	}
	return out
}

// compileFunctionOutput resolves a function/macro call node's
// requested output socket: gather its input terms, resolve the best
// overload by unifying each candidate's declared input types against
// the compiled arguments' inferred types, and apply the winner.
func (c *compiler) compileFunctionOutput(owner, s uid.Handle) *rts.Object {
	path, _ := c.g.Name(owner)
	candidates := c.binds[path]
	if len(candidates) == 0 {
		c.msgs.Add(diagnostics.Message{Kind: diagnostics.NoValidOverloading, Node: owner, Socket: s})
		return nil
	}

	inputs := c.g.InputSockets(owner)
	args := make([]*rts.Object, len(inputs))
	argTypes := make([]*rts.Type, len(inputs))
	argSrc := make([]uid.Handle, len(inputs))
	failed := false
	for i, in := range inputs {
		conns := c.g.InputConnections(owner)
		var found bool
		for _, ci := range conns {
			if ci.DstSocket.ID() == in.ID() {
				args[i] = c.compileSocket(ci.SrcSocket)
				argSrc[i] = ci.SrcSocket
				found = true
			}
		}
		if !found {
			c.msgs.Add(diagnostics.Message{Kind: diagnostics.MissingInput, Node: owner, Socket: in})
			failed = true
			continue
		}
		if args[i] == nil {
			failed = true
			continue
		}
		t, err := rts.TypeOf(args[i])
		if err != nil {
			c.msgs.Add(diagnostics.Message{Kind: diagnostics.UnexpectedTypeError, Node: owner, Socket: in, Text: err.Error()})
			failed = true
			continue
		}
		argTypes[i] = t
	}
	if failed {
		return nil
	}

	best, _, mismatch, err := resolveOverload(candidates, argTypes)
	if err != nil {
		c.msgs.Add(diagnostics.Message{Kind: diagnostics.NoValidOverloading, Node: owner, Socket: s})
		return nil
	}
	if mismatch != nil {
		c.msgs.Add(diagnostics.Message{
			Kind:           diagnostics.TypeMissmatch,
			Node:           owner,
			Socket:         s,
			ExpectedSocket: inputs[mismatch.argIndex],
			ProvidedSocket: argSrc[mismatch.argIndex],
			Expected:       mismatch.expected,
			Provided:       mismatch.provided,
		})
		return nil
	}

	term := best.Instantiate()
	for _, a := range args {
		term, err = term.Apply1(a)
		if err != nil {
			c.msgs.Add(diagnostics.Message{Kind: diagnostics.UnexpectedTypeError, Node: owner, Socket: s, Text: err.Error()})
			return nil
		}
	}
	return term
}

// overloadMismatch pins a type mismatch down to the specific argument
// that caused it, for a candidate whose arity otherwise matched.
type overloadMismatch struct {
	argIndex           int
	expected, provided *rts.Type
}

// resolveOverload unifies each candidate's generalized argument types
// against the compiled arguments' inferred types, picking the first
// candidate whose constraints solve; specialization ties are broken
// by declaration order (first match wins), matching the source's
// deterministic candidate-ordering tie-break.
//
// When exactly one candidate's arity matches the call site but its
// constraints fail to unify, the first argument whose type alone
// fails to unify against that candidate's declared type is reported
// back as a type_missmatch rather than collapsing into
// no_valid_overloading. no_valid_overloading is returned for call
// sites with zero arity-matching candidates, with several that all
// fail, or with one whose arguments each unify alone but not together.
func resolveOverload(candidates []BindInfo, argTypes []*rts.Type) (BindInfo, *rts.Type, *overloadMismatch, error) {
	type arityMatch struct {
		cand     BindInfo
		declared *rts.Type
		captured []*rts.Type
	}
	var matched []arityMatch

	for _, cand := range candidates {
		declared := cand.DeclaredType()
		captured := make([]*rts.Type, 0, len(argTypes))
		cur := declared
		for range argTypes {
			if !cur.IsArrow() {
				break
			}
			captured = append(captured, cur.Captured())
			cur = cur.Returns()
		}
		if len(captured) != len(argTypes) {
			continue
		}
		matched = append(matched, arityMatch{cand: cand, declared: declared, captured: captured})

		var cs []rts.Constr
		for i, at := range argTypes {
			cs = append(cs, rts.Constr{T1: captured[i], T2: at})
		}
		if _, err := rts.Unify(cs); err == nil {
			return cand, declared, nil, nil
		}
	}

	if len(matched) == 1 {
		only := matched[0]
		for i, at := range argTypes {
			if _, err := rts.Unify([]rts.Constr{{T1: only.captured[i], T2: at}}); err != nil {
				return BindInfo{}, nil, &overloadMismatch{argIndex: i, expected: only.captured[i], provided: at}, nil
			}
		}
	}

	return BindInfo{}, nil, nil, fmt.Errorf("no overload of %d candidates unifies", len(candidates))
}
