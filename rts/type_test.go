package rts

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mocabe-yave/yave/uid"
)

func TestSameTypeCopyType(t *testing.T) {
	intT := ValueType(uid.New(), "Int")
	arrow := Arrow(intT, ListOf(intT))

	require.True(t, SameType(CopyType(arrow), arrow))
}

func TestUnifyVarAgainstType(t *testing.T) {
	intT := ValueType(uid.New(), "Int")
	v := GenVar()

	s, err := Unify([]Constr{{T1: v, T2: intT}})
	require.NoError(t, err)
	require.True(t, SameType(ApplySubst(s, v), intT))
}

func TestUnifySound(t *testing.T) {
	intT := ValueType(uid.New(), "Int")
	v1, v2 := GenVar(), GenVar()

	a := Arrow(v1, intT)
	b := Arrow(intT, v2)

	s, err := Unify([]Constr{{T1: a, T2: b}})
	require.NoError(t, err)
	require.True(t, SameType(ApplySubst(s, a), ApplySubst(s, b)))
}

func TestOccursCheck(t *testing.T) {
	v := GenVar()
	self := Arrow(v, v)

	require.True(t, Occurs(v, self))

	_, err := Unify([]Constr{{T1: v, T2: self}})
	require.Error(t, err)
	terr, ok := err.(*TypeError)
	require.True(t, ok)
	require.Equal(t, ErrCircularConstraint, terr.Kind)
}

func TestUnifyMismatch(t *testing.T) {
	intT := ValueType(uid.New(), "Int")
	strT := ValueType(uid.New(), "String")

	_, err := Unify([]Constr{{T1: intT, T2: strT}})
	require.Error(t, err)
	terr, ok := err.(*TypeError)
	require.True(t, ok)
	require.Equal(t, ErrTypeMismatch, terr.Kind)
}
