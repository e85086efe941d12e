package rts

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mocabe-yave/yave/uid"
)

func intClosure(name string, t *Type) *Object {
	return NewClosure(0, t, func(args []*Object) (*Object, error) {
		return NewValue(name, t), nil
	})
}

func TestTypeOfValueLeaf(t *testing.T) {
	intT := ValueType(uid.New(), "Int")
	v := NewValue(42, intT)

	ty, err := TypeOf(v)
	require.NoError(t, err)
	require.True(t, SameType(ty, intT))
}

func TestTypeOfApplyUnifiesArrow(t *testing.T) {
	intT := ValueType(uid.New(), "Int")
	strT := ValueType(uid.New(), "String")

	fn := intClosure("show", Arrow(intT, strT))
	app := NewApply(fn, NewValue(1, intT))

	ty, err := TypeOf(app)
	require.NoError(t, err)
	require.True(t, SameType(ty, strT))
}

func TestTypeOfApplyMismatch(t *testing.T) {
	intT := ValueType(uid.New(), "Int")
	strT := ValueType(uid.New(), "String")

	fn := intClosure("show", Arrow(intT, strT))
	app := NewApply(fn, NewValue("nope", strT))

	_, err := TypeOf(app)
	require.Error(t, err)
}

func TestTypeOfLambda(t *testing.T) {
	intT := ValueType(uid.New(), "Int")

	id := uint64(7)
	param := NewVariable(id)
	body := param
	lam := NewLambda(param, body)

	ty, err := TypeOf(lam)
	require.NoError(t, err)
	require.True(t, ty.IsArrow())
	require.True(t, SameType(ty.Captured(), ty.Returns()))
	_ = intT
}

func TestTypeOfLambdaAppliesSubstitutionToParam(t *testing.T) {
	intT := ValueType(uid.New(), "Int")
	f := intClosure("inc", Arrow(intT, intT))

	param := NewVariable(11)
	body := NewApply(f, param)
	lam := NewLambda(param, body)

	ty, err := TypeOf(lam)
	require.NoError(t, err)
	require.True(t, ty.IsArrow())
	require.True(t, SameType(ty.Captured(), intT), "param type should resolve to Int, not the unsubstituted fresh var")
	require.True(t, SameType(ty.Returns(), intT))
}

func TestTypeOfUnboundVariable(t *testing.T) {
	_, err := TypeOf(NewVariable(99))
	require.Error(t, err)
}
