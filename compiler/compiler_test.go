package compiler

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mocabe-yave/yave/diagnostics"
	"github.com/mocabe-yave/yave/node"
	"github.com/mocabe-yave/yave/rts"
	"github.com/mocabe-yave/yave/uid"
)

var intTypeID = uid.New()

func intType() *rts.Type { return rts.ValueType(intTypeID, "Int") }

func intBinds() BindRegistry {
	return BindRegistry{
		"one": {{
			Path:         "one",
			DeclaredType: func() *rts.Type { return intType() },
			Instantiate:  func() *rts.Object { return rts.NewValue(1, intType()) },
		}},
		"add": {{
			Path:         "add",
			DeclaredType: func() *rts.Type { return rts.Arrow(intType(), rts.Arrow(intType(), intType())) },
			Instantiate: func() *rts.Object {
				return rts.NewClosure(2, rts.Arrow(intType(), rts.Arrow(intType(), intType())), func(args []*rts.Object) (*rts.Object, error) {
					a := args[1].Value().(int)
					b := args[0].Value().(int)
					return rts.NewValue(a+b, intType()), nil
				})
			},
		}},
	}
}

func TestCompileSinglePrimitive(t *testing.T) {
	g := node.New(zerolog.Nop())
	reg := node.NewRegistry()
	require.NoError(t, reg.Declare(node.FunctionDecl{Path: "one", Outputs: []string{"out"}}))
	one, _ := g.CreateFunctionCall(g.Root(), reg, "one")

	exe, msgs := Compile(zerolog.Nop(), g, g.OutputSockets(one)[0], intBinds())
	require.Empty(t, msgs.All())
	require.NotNil(t, exe)
	require.True(t, exe.Term.IsValue())
	require.Equal(t, 1, exe.Term.Value())
}

func TestCompileOverloadApplication(t *testing.T) {
	g := node.New(zerolog.Nop())
	reg := node.NewRegistry()
	require.NoError(t, reg.Declare(node.FunctionDecl{Path: "one", Outputs: []string{"out"}}))
	require.NoError(t, reg.Declare(node.FunctionDecl{Path: "add", Inputs: []string{"lhs", "rhs"}, Outputs: []string{"out"}}))

	o1, _ := g.CreateFunctionCall(g.Root(), reg, "one")
	o2, _ := g.CreateFunctionCall(g.Root(), reg, "one")
	add, _ := g.CreateFunctionCall(g.Root(), reg, "add")
	g.Connect(g.OutputSockets(o1)[0], g.InputSockets(add)[0])
	g.Connect(g.OutputSockets(o2)[0], g.InputSockets(add)[1])

	exe, msgs := Compile(zerolog.Nop(), g, g.OutputSockets(add)[0], intBinds())
	require.Empty(t, msgs.All())
	require.NotNil(t, exe)
	require.True(t, exe.Term.IsValue())
	require.Equal(t, 2, exe.Term.Value())
}

var doubleTypeID = uid.New()

func doubleType() *rts.Type { return rts.ValueType(doubleTypeID, "Double") }

func TestCompileOverloadTypeMismatch(t *testing.T) {
	g := node.New(zerolog.Nop())
	reg := node.NewRegistry()
	require.NoError(t, reg.Declare(node.FunctionDecl{Path: "one", Outputs: []string{"out"}}))
	require.NoError(t, reg.Declare(node.FunctionDecl{Path: "one_point_five", Outputs: []string{"out"}}))
	require.NoError(t, reg.Declare(node.FunctionDecl{Path: "add", Inputs: []string{"lhs", "rhs"}, Outputs: []string{"out"}}))

	binds := intBinds()
	binds["one_point_five"] = []BindInfo{{
		Path:         "one_point_five",
		DeclaredType: func() *rts.Type { return doubleType() },
		Instantiate:  func() *rts.Object { return rts.NewValue(1.5, doubleType()) },
	}}

	lhs, _ := g.CreateFunctionCall(g.Root(), reg, "one_point_five")
	rhs, _ := g.CreateFunctionCall(g.Root(), reg, "one")
	add, _ := g.CreateFunctionCall(g.Root(), reg, "add")
	g.Connect(g.OutputSockets(lhs)[0], g.InputSockets(add)[0])
	g.Connect(g.OutputSockets(rhs)[0], g.InputSockets(add)[1])

	exe, msgs := Compile(zerolog.Nop(), g, g.OutputSockets(add)[0], binds)
	require.Nil(t, exe)
	require.True(t, msgs.HasError())

	mismatches := msgs.ByKind(diagnostics.TypeMissmatch)
	require.Len(t, mismatches, 1)
	require.True(t, rts.SameType(mismatches[0].Expected, intType()))
	require.True(t, rts.SameType(mismatches[0].Provided, doubleType()))
	require.Equal(t, add.ID(), mismatches[0].Node.ID())
	require.Equal(t, g.InputSockets(add)[0].ID(), mismatches[0].ExpectedSocket.ID())
	require.Equal(t, g.OutputSockets(lhs)[0].ID(), mismatches[0].ProvidedSocket.ID())

	require.Empty(t, msgs.ByKind(diagnostics.NoValidOverloading))
}

func TestCompileNoValidOverloading(t *testing.T) {
	g := node.New(zerolog.Nop())
	reg := node.NewRegistry()
	require.NoError(t, reg.Declare(node.FunctionDecl{Path: "unknown_fn", Outputs: []string{"out"}}))
	call, _ := g.CreateFunctionCall(g.Root(), reg, "unknown_fn")

	exe, msgs := Compile(zerolog.Nop(), g, g.OutputSockets(call)[0], intBinds())
	require.Nil(t, exe)
	require.True(t, msgs.HasError())
	require.NotEmpty(t, msgs.ByKind(diagnostics.NoValidOverloading))
}
