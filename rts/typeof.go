package rts

import "fmt"

// ErrUnboundVariable is raised by TypeOf when a Variable object has no
// binding in the current environment.
type ErrUnboundVariable struct {
	VarUID uint64
}

func (e *ErrUnboundVariable) Error() string {
	return fmt.Sprintf("rts: unbound variable $%d", e.VarUID)
}

// TypeOf computes the type of a runtime term, threading a single
// substitution environment through the recursion (§4.6). The top-level
// entry starts with a fresh environment; recursive calls share and
// mutate it. A Lambda binds its parameter only while its body is
// typed; the substitution is not snapshotted or restored, so
// constraints solved in one subtree stay in effect for its siblings.
func TypeOf(obj *Object) (*Type, error) {
	return typeOf(obj, NewEnv())
}

func typeOf(obj *Object, env *Env) (*Type, error) {
	switch {
	case obj.IsApply():
		return typeOfApply(obj, env)
	case obj.IsLambda():
		return typeOfLambda(obj, env)
	case obj.IsVariable():
		t, ok := env.LookupVariable(obj.VarUID())
		if !ok {
			return nil, &ErrUnboundVariable{VarUID: obj.VarUID()}
		}
		return t, nil
	case obj.IsClosure():
		if obj.Remaining() < obj.Arity() {
			// partial application: type of the root apply node, i.e. the
			// closure's own declared type (no outer Apply context here to
			// recover, so the declared type stands in for it).
			return obj.DeclaredType(), nil
		}
		return obj.DeclaredType(), nil
	default:
		// value / var / list atoms: their attached type.
		return obj.DeclaredType(), nil
	}
}

func typeOfApply(obj *Object, env *Env) (*Type, error) {
	if obj.IsResult() {
		return typeOf(obj.GetResult(), env)
	}

	t1, err := typeOf(obj.Fn(), env)
	if err != nil {
		return nil, err
	}
	t1 = Genpoly(t1, env)

	t2, err := typeOf(obj.Arg(), env)
	if err != nil {
		return nil, err
	}

	v := GenVar()
	s, err := Unify([]Constr{{T1: env.Apply(t1), T2: Arrow(t2, v)}})
	if err != nil {
		return nil, err
	}
	for _, e := range s {
		env.Extend(e.from, e.to)
	}
	return env.Apply(v), nil
}

func typeOfLambda(obj *Object, env *Env) (*Type, error) {
	param := obj.Param()
	vt := GenVar()
	env.BindVariable(param.VarUID(), vt)
	defer env.UnbindVariable(param.VarUID())

	bt, err := typeOf(obj.Body(), env)
	if err != nil {
		return nil, err
	}
	pt, _ := env.LookupVariable(param.VarUID())
	return Arrow(env.Apply(pt), bt), nil
}
