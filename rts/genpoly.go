package rts

// Env is the substitution environment threaded through TypeOf; it
// also doubles as the set of "currently bound" variables Genpoly must
// not freshen.
type Env struct {
	s    Subst
	vars map[uint64]*Type // bound-variable-id -> its var_type
}

func NewEnv() *Env { return &Env{vars: map[uint64]*Type{}} }

// Clone takes a snapshot so a caller can restore it after typing a
// subtree independently of sibling subtrees (spec: function entry
// preserves and restores env).
func (e *Env) Clone() *Env {
	cp := make(Subst, len(e.s))
	copy(cp, e.s)
	vars := make(map[uint64]*Type, len(e.vars))
	for k, v := range e.vars {
		vars[k] = v
	}
	return &Env{s: cp, vars: vars}
}

// BindVariable records the var_type standing for a Lambda-bound
// Variable id, so Variable lookups in TypeOf can find it.
func (e *Env) BindVariable(id uint64, t *Type) {
	e.vars[id] = t
}

// LookupVariable returns the var_type bound to a Variable id, if any.
func (e *Env) LookupVariable(id uint64) (*Type, bool) {
	t, ok := e.vars[id]
	return t, ok
}

// UnbindVariable removes a Lambda binding on scope exit.
func (e *Env) UnbindVariable(id uint64) {
	delete(e.vars, id)
}

// Bound reports whether v is a var already bound in the environment.
func (e *Env) Bound(v *Type) bool {
	for _, entry := range e.s {
		if SameType(entry.from, v) {
			return true
		}
	}
	return false
}

func (e *Env) Extend(from, to *Type) {
	e.s = ComposeSubst(e.s, substEntry{from: from, to: to})
}

func (e *Env) Apply(t *Type) *Type {
	return ApplySubst(e.s, t)
}

// Erase drops any entry whose from equals v, used when a Lambda
// binding goes out of scope.
func (e *Env) Erase(v *Type) {
	out := e.s[:0:0]
	for _, entry := range e.s {
		if !SameType(entry.from, v) {
			out = append(out, entry)
		}
	}
	e.s = out
}

// Genpoly freshens every free type variable of tp that is not bound in
// env, implementing let-polymorphism at application sites. Non-arrow
// types are returned unchanged.
func Genpoly(tp *Type, env *Env) *Type {
	if !tp.IsArrow() {
		return tp
	}
	out := tp
	for _, v := range Vars(tp) {
		if env.Bound(v) {
			continue
		}
		out = subst1(v, GenVar(), out)
	}
	return out
}
