package node

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mocabe-yave/yave/uid"
)

func newTestGraph() *Graph {
	return New(zerolog.Nop())
}

func TestRootGroupExists(t *testing.T) {
	g := newTestGraph()
	require.True(t, g.Exists(g.Root()))
	require.True(t, g.IsGroup(g.Root()))
	require.Equal(t, "/root", g.GetPath(g.Root()))
}

func TestFunctionCallViaRegistry(t *testing.T) {
	g := newTestGraph()
	reg := NewRegistry()
	require.NoError(t, reg.Declare(FunctionDecl{
		Path: "math.add", Inputs: []string{"lhs", "rhs"}, Outputs: []string{"out"},
	}))

	call, ok := g.CreateFunctionCall(g.Root(), reg, "math.add")
	require.True(t, ok)
	require.True(t, g.IsFunction(call))
	require.True(t, g.IsCall(call))
	require.Len(t, g.InputSockets(call), 2)
	require.Len(t, g.OutputSockets(call), 1)
}

func TestImmutableFunctionCallRejectsRenameAndSocketEdits(t *testing.T) {
	g := newTestGraph()
	reg := NewRegistry()
	require.NoError(t, reg.Declare(FunctionDecl{Path: "f", Inputs: []string{"a"}, Outputs: []string{"b"}}))
	call, _ := g.CreateFunctionCall(g.Root(), reg, "f")

	require.False(t, g.SetName(call, "renamed"))
	_, ok := g.AddInputSocket(call, "extra")
	require.False(t, ok)
}

func TestMacroCallIsMutable(t *testing.T) {
	g := newTestGraph()
	m, ok := g.CreateMacroCall(g.Root(), "my_macro", []string{"a"}, []string{"b"})
	require.True(t, ok)
	require.True(t, g.SetName(m, "renamed_macro"))
	s, ok := g.AddInputSocket(m, "extra")
	require.True(t, ok)
	require.True(t, g.Exists(s))
}

// TestGroupingPreservesConnections exercises the structured-graph
// analog of the basic-graph grouping scenario: with n1 -> n2 -> n3,
// grouping {n2} leaves exactly one connection feeding the new group
// from n1 and exactly one connection leaving it to n3.
func TestGroupingPreservesConnections(t *testing.T) {
	g := newTestGraph()
	reg := NewRegistry()
	require.NoError(t, reg.Declare(FunctionDecl{Path: "src", Outputs: []string{"out"}}))
	require.NoError(t, reg.Declare(FunctionDecl{Path: "mid", Inputs: []string{"in"}, Outputs: []string{"out"}}))
	require.NoError(t, reg.Declare(FunctionDecl{Path: "sink", Inputs: []string{"in"}}))

	n1, _ := g.CreateFunctionCall(g.Root(), reg, "src")
	n2, _ := g.CreateFunctionCall(g.Root(), reg, "mid")
	n3, _ := g.CreateFunctionCall(g.Root(), reg, "sink")

	n1Out := g.OutputSockets(n1)[0]
	n2In := g.InputSockets(n2)[0]
	n2Out := g.OutputSockets(n2)[0]
	n3In := g.InputSockets(n3)[0]

	require.False(t, g.Connect(n1Out, n2In).IsZero())
	require.False(t, g.Connect(n2Out, n3In).IsZero())

	group, ok := g.CreateGroup(g.Root(), []uid.Handle{n2})
	require.True(t, ok)
	require.True(t, g.IsGroup(group))

	groupIns := g.InputSockets(group)
	groupOuts := g.OutputSockets(group)
	require.Len(t, groupIns, 1)
	require.Len(t, groupOuts, 1)

	require.Len(t, g.Connections(groupIns[0]), 1)
	require.Len(t, g.Connections(groupOuts[0]), 1)

	members := g.GetGroupMembers(group)
	require.Len(t, members, 1)
	require.Equal(t, n2.ID(), members[0].ID())
}

func TestUngroupIsInverseOfGroup(t *testing.T) {
	g := newTestGraph()
	reg := NewRegistry()
	require.NoError(t, reg.Declare(FunctionDecl{Path: "src", Outputs: []string{"out"}}))
	require.NoError(t, reg.Declare(FunctionDecl{Path: "mid", Inputs: []string{"in"}, Outputs: []string{"out"}}))
	require.NoError(t, reg.Declare(FunctionDecl{Path: "sink", Inputs: []string{"in"}}))

	n1, _ := g.CreateFunctionCall(g.Root(), reg, "src")
	n2, _ := g.CreateFunctionCall(g.Root(), reg, "mid")
	n3, _ := g.CreateFunctionCall(g.Root(), reg, "sink")

	g.Connect(g.OutputSockets(n1)[0], g.InputSockets(n2)[0])
	g.Connect(g.OutputSockets(n2)[0], g.InputSockets(n3)[0])

	group, _ := g.CreateGroup(g.Root(), []uid.Handle{n2})
	require.True(t, g.Ungroup(group))
	require.False(t, g.Exists(group))

	require.Len(t, g.Connections(g.InputSockets(n2)[0]), 1)
	require.Len(t, g.Connections(g.OutputSockets(n2)[0]), 1)

	members := g.GetGroupMembers(g.Root())
	require.Contains(t, memberIDs(members), n2.ID())
}

func memberIDs(hs []uid.Handle) []uid.UID {
	out := make([]uid.UID, 0, len(hs))
	for _, h := range hs {
		out = append(out, h.ID())
	}
	return out
}

func TestPathRoundTrip(t *testing.T) {
	g := newTestGraph()
	group, _ := g.CreateGroup(g.Root(), nil)
	g.SetName(group, "mygroup")
	path := g.GetPath(group)
	require.Equal(t, "/root/mygroup", path)
	require.Equal(t, group.ID(), g.SearchPath(path).ID())
}

func TestCreateCopyRejectsSelfParent(t *testing.T) {
	g := newTestGraph()
	group, _ := g.CreateGroup(g.Root(), nil)
	inner, _ := g.CreateGroup(group, nil)
	_, ok := g.CreateCopy(inner, group)
	require.False(t, ok)
}

func TestCreateCloneDuplicatesGroupInterior(t *testing.T) {
	g := newTestGraph()
	reg := NewRegistry()
	require.NoError(t, reg.Declare(FunctionDecl{Path: "src", Outputs: []string{"out"}}))
	require.NoError(t, reg.Declare(FunctionDecl{Path: "sink", Inputs: []string{"in"}}))

	n1, _ := g.CreateFunctionCall(g.Root(), reg, "src")
	n2, _ := g.CreateFunctionCall(g.Root(), reg, "sink")
	g.Connect(g.OutputSockets(n1)[0], g.InputSockets(n2)[0])

	group, _ := g.CreateGroup(g.Root(), []uid.Handle{n1, n2})
	clone, ok := g.CreateClone(g.Root(), group)
	require.True(t, ok)
	require.NotEqual(t, group.ID(), clone.ID())
	require.Len(t, g.GetGroupMembers(clone), 2)
}
