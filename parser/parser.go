// Package parser classifies a structured node graph's sockets ahead
// of compilation: which inputs are connected, defaulted, or missing,
// and whether a node should be treated as a lambda (a node whose
// inputs are all left unconnected, to be compiled as a closure over
// fresh variables rather than failing outright). Parse never mutates
// its input graph.
package parser

import (
	"github.com/rs/zerolog"

	"github.com/mocabe-yave/yave/diagnostics"
	"github.com/mocabe-yave/yave/node"
	"github.com/mocabe-yave/yave/uid"
)

// Result is the outcome of a parse: the graph that was checked (for
// ancestor-aware diagnostic lookup) plus the diagnostics collected.
type Result struct {
	Graph *node.Graph
	Msgs  *diagnostics.Map
}

// Success reports whether the parse raised no error-category message.
func (r *Result) Success() bool {
	return !r.Msgs.HasError()
}

// Parser runs the classification pass over a fixed graph, memoizing
// per-(node, socket) visits so shared subgraphs are only checked once.
type Parser struct {
	log  zerolog.Logger
	g    *node.Graph
	msgs *diagnostics.Map

	// memo[node] is the set of socket ids already classified for that
	// node, mirroring check()'s memo map keyed by node id.
	memo map[uid.UID]map[uid.UID]bool
}

// Parse classifies the node graph reachable from outSocket's owning
// node, returning every connected/defaulted/missing verdict and
// lambda-node determination as diagnostics.
func Parse(log zerolog.Logger, g *node.Graph, outSocket uid.Handle) *Result {
	p := &Parser{log: log, g: g, msgs: &diagnostics.Map{}, memo: map[uid.UID]map[uid.UID]bool{}}
	owner, ok := g.NodeOf(outSocket)
	if !ok {
		p.msgs.Add(diagnostics.Message{Kind: diagnostics.UnexpectedParseError, Text: "output socket has no owning node"})
		return &Result{Graph: g, Msgs: p.msgs}
	}
	p.checkNode(owner)
	return &Result{Graph: g, Msgs: p.msgs}
}

func (p *Parser) visited(n, s uid.Handle) bool {
	set := p.memo[n.ID()]
	return set != nil && set[s.ID()]
}

func (p *Parser) markVisited(n, s uid.Handle) {
	set := p.memo[n.ID()]
	if set == nil {
		set = map[uid.UID]bool{}
		p.memo[n.ID()] = set
	}
	set[s.ID()] = true
}

// checkNode recursively classifies n's input sockets, then its own
// output sockets, memoizing as it goes.
func (p *Parser) checkNode(n uid.Handle) {
	if p.g.IsGroupInput(n) || p.g.IsGroupOutput(n) {
		p.checkIO(n)
		return
	}

	if p.g.IsGroup(n) {
		p.checkGroup(n)
	}

	inputs := p.g.InputSockets(n)
	missing := make([]uid.Handle, 0, len(inputs))
	connected := map[uid.UID]bool{}
	for _, ci := range p.g.InputConnections(n) {
		connected[ci.DstSocket.ID()] = true
	}

	for _, s := range inputs {
		if p.visited(n, s) {
			continue
		}
		p.markVisited(n, s)

		switch {
		case connected[s.ID()]:
			for _, ci := range p.g.InputConnections(n) {
				if ci.DstSocket.ID() == s.ID() {
					p.checkNode(ci.SrcNode)
				}
			}
			p.msgs.Add(diagnostics.Message{Kind: diagnostics.HasInputConnection, Node: n, Socket: s})
		case p.g.GetData(s) != nil:
			p.msgs.Add(diagnostics.Message{Kind: diagnostics.HasDefaultArgument, Node: n, Socket: s})
		default:
			missing = append(missing, s)
		}
	}

	// is_lambda_node is emitted instead of per-socket missing_input only
	// when there is at least one input and every one of them is missing
	// (the "all missing" case); a mixed case of some-connected/
	// some-missing instead emits missing_input per missing socket.
	if len(missing) > 0 && len(missing) == len(inputs) {
		p.msgs.Add(diagnostics.Message{Kind: diagnostics.IsLambdaNode, Node: n})
	} else {
		for _, s := range missing {
			p.msgs.Add(diagnostics.Message{Kind: diagnostics.MissingInput, Node: n, Socket: s})
		}
	}

	for _, s := range p.g.OutputSockets(n) {
		if p.g.HasConnection(s) {
			p.msgs.Add(diagnostics.Message{Kind: diagnostics.HasOutputConnection, Node: n, Socket: s})
		}
	}
}

// checkGroup dives into a group's interior before classifying its own
// sockets, mirroring rec_g: locate the group's group_output node and
// recurse into it (which in turn recurses into whatever feeds each of
// its input sockets), so every interior node is classified exactly as
// if it sat directly in the enclosing graph.
func (p *Parser) checkGroup(n uid.Handle) {
	goH, ok := p.g.GetGroupOutput(n)
	if !ok {
		p.msgs.Add(diagnostics.Message{Kind: diagnostics.UnexpectedParseError, Node: n, Text: "group missing group_output"})
		return
	}
	p.checkNode(goH)
}

// checkIO handles a group_input/group_output interior node: each
// group_input output socket that feeds something inside the group is
// reported as has_output_connection, and an unused one is not
// reported at all; a group_output input socket is checked like a
// normal input, except that an unconnected one is always
// missing_input.
func (p *Parser) checkIO(n uid.Handle) {
	if p.g.IsGroupInput(n) {
		for _, s := range p.g.OutputSockets(n) {
			if p.g.HasConnection(s) {
				p.msgs.Add(diagnostics.Message{Kind: diagnostics.HasOutputConnection, Node: n, Socket: s})
			}
		}
		return
	}

	conns := p.g.InputConnections(n)
	bySocket := map[uid.UID]node.ConnInfo{}
	for _, ci := range conns {
		bySocket[ci.DstSocket.ID()] = ci
	}

	for _, s := range p.g.InputSockets(n) {
		if p.visited(n, s) {
			continue
		}
		p.markVisited(n, s)

		ci, ok := bySocket[s.ID()]
		if !ok {
			p.msgs.Add(diagnostics.Message{Kind: diagnostics.MissingInput, Node: n, Socket: s})
			continue
		}
		p.checkNode(ci.SrcNode)
		p.msgs.Add(diagnostics.Message{Kind: diagnostics.HasInputConnection, Node: n, Socket: s})
	}
}
