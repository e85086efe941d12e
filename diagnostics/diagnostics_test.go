package diagnostics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mocabe-yave/yave/uid"
)

func TestKindCategory(t *testing.T) {
	require.Equal(t, CategoryInfo, IsLambdaNode.Category())
	require.Equal(t, CategoryInfo, HasDefaultArgument.Category())
	require.Equal(t, CategoryInfo, HasInputConnection.Category())
	require.Equal(t, CategoryInfo, HasOutputConnection.Category())
	require.Equal(t, CategoryError, MissingInput.Category())
	require.Equal(t, CategoryError, TypeMissmatch.Category())
}

func TestMapHasErrorOnlyWithErrorCategory(t *testing.T) {
	var m Map
	require.False(t, m.HasError())

	m.Add(Message{Kind: IsLambdaNode, Node: uid.NewNodeHandle(0, 0, uid.New())})
	require.False(t, m.HasError())

	m.Add(Message{Kind: MissingInput, Node: uid.NewNodeHandle(0, 0, uid.New())})
	require.True(t, m.HasError())
}

func TestMapByCategoryAndByKind(t *testing.T) {
	var m Map
	n1 := uid.NewNodeHandle(0, 0, uid.New())
	n2 := uid.NewNodeHandle(0, 0, uid.New())
	m.Add(Message{Kind: HasDefaultArgument, Node: n1})
	m.Add(Message{Kind: MissingInput, Node: n2})
	m.Add(Message{Kind: MissingInput, Node: n1})

	require.Len(t, m.ByCategory(CategoryInfo), 1)
	require.Len(t, m.ByCategory(CategoryError), 2)
	require.Len(t, m.ByKind(MissingInput), 2)
	require.Empty(t, m.ByKind(NoValidOverloading))
}

type fakeAncestry map[uid.Handle]uid.Handle // child -> parent

func (f fakeAncestry) IsParentOf(ancestor, h uid.Handle) bool {
	for cur := h; ; {
		p, ok := f[cur]
		if !ok {
			return false
		}
		if p == ancestor {
			return true
		}
		cur = p
	}
}

func TestMapForNodeWalksAncestors(t *testing.T) {
	group := uid.NewNodeHandle(0, 0, uid.New())
	interior := uid.NewNodeHandle(0, 0, uid.New())
	unrelated := uid.NewNodeHandle(0, 0, uid.New())
	ancestry := fakeAncestry{interior: group}

	var m Map
	m.Add(Message{Kind: MissingInput, Node: interior})
	m.Add(Message{Kind: MissingInput, Node: unrelated})

	found := m.ForNode(ancestry, group)
	require.Len(t, found, 1)
	require.Equal(t, interior, found[0].Node)

	require.Len(t, m.ForNode(ancestry, interior), 1)
	direct := m.ForNode(ancestry, unrelated)
	require.Len(t, direct, 1)
	require.Equal(t, unrelated, direct[0].Node)
}

func TestMapForSocketIsExactMatchOnly(t *testing.T) {
	group := uid.NewNodeHandle(0, 0, uid.New())
	s1 := uid.NewNodeHandle(0, 0, uid.New())
	s2 := uid.NewNodeHandle(0, 0, uid.New())

	var m Map
	m.Add(Message{Kind: MissingInput, Node: group, Socket: s1})
	m.Add(Message{Kind: MissingInput, Node: group, Socket: s2})

	require.Len(t, m.ForSocket(s1), 1)
	require.Len(t, m.ForSocket(s2), 1)
	require.Empty(t, m.ForSocket(uid.NewNodeHandle(0, 0, uid.New())))
}

func TestMessageStringRendersTypeMissmatchFieldOrder(t *testing.T) {
	msg := Message{
		Kind:           TypeMissmatch,
		ExpectedSocket: uid.NewNodeHandle(0, 0, uid.New()),
		ProvidedSocket: uid.NewNodeHandle(0, 0, uid.New()),
	}
	s := msg.String()
	require.Contains(t, s, "expected=")
	require.Contains(t, s, "provided=")
	require.Less(t, strings.Index(s, "expected="), strings.Index(s, "provided="))
}
