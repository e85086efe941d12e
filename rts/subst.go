package rts

// Arrow substitution: a single var-to-type binding in a larger Subst.
// Named after the arrow_type the source represents a substitution
// entry with (from type variable, to replacement type).
type substEntry struct {
	from *Type // always a var
	to   *Type
}

// Subst is a finite map var -> type, applied left to right.
type Subst []substEntry

// Single builds a one-entry substitution.
func Single(from, to *Type) Subst {
	return Subst{{from: from, to: to}}
}

// subst1 replaces every occurrence of from in t with to, preserving
// structural sharing: if nothing changed, the original pointer is
// returned so callers can cheaply detect a no-op substitution.
func subst1(from, to, t *Type) *Type {
	if t == nil {
		return nil
	}
	if SameType(t, from) {
		return to
	}
	switch t.tag {
	case tagValue, tagVar, tagCon:
		return t
	case tagArrow:
		c := subst1(from, to, t.captured)
		r := subst1(from, to, t.returns)
		if c == t.captured && r == t.returns {
			return t
		}
		return Arrow(c, r)
	case tagList:
		e := subst1(from, to, t.elem)
		if e == t.elem {
			return t
		}
		return ListOf(e)
	case tagApp:
		c := subst1(from, to, t.con)
		a := subst1(from, to, t.arg)
		if c == t.con && a == t.arg {
			return t
		}
		return App(c, a)
	default:
		panic("rts: unreachable type tag in subst1")
	}
}

// ApplySubst applies every entry of Σ to T in sequence.
func ApplySubst(s Subst, t *Type) *Type {
	for _, e := range s {
		t = subst1(e.from, e.to, t)
	}
	return t
}

// ComposeSubst post-composes a onto Σ: every existing target in Σ has
// a substituted through it, then a itself is appended unless some
// existing entry already shares its from.
func ComposeSubst(s Subst, a substEntry) Subst {
	out := make(Subst, 0, len(s)+1)
	found := false
	for _, e := range s {
		e.to = subst1(a.from, a.to, e.to)
		if SameType(e.from, a.from) {
			found = true
		}
		out = append(out, e)
	}
	if !found {
		out = append(out, a)
	}
	return out
}

// Occurs is the standard occurs check over the full type algebra.
func Occurs(x, t *Type) bool {
	if t == nil {
		return false
	}
	if SameType(x, t) {
		return true
	}
	switch t.tag {
	case tagValue, tagVar, tagCon:
		return false
	case tagArrow:
		return Occurs(x, t.captured) || Occurs(x, t.returns)
	case tagList:
		return Occurs(x, t.elem)
	case tagApp:
		return Occurs(x, t.con) || Occurs(x, t.arg)
	default:
		panic("rts: unreachable type tag in Occurs")
	}
}

// Vars returns the free type variables of t, deduplicated.
func Vars(t *Type) []*Type {
	var out []*Type
	var rec func(*Type)
	rec = func(t *Type) {
		if t == nil {
			return
		}
		switch t.tag {
		case tagVar:
			for _, v := range out {
				if SameType(v, t) {
					return
				}
			}
			out = append(out, t)
		case tagArrow:
			rec(t.captured)
			rec(t.returns)
		case tagList:
			rec(t.elem)
		case tagApp:
			rec(t.con)
			rec(t.arg)
		}
	}
	rec(t)
	return out
}
