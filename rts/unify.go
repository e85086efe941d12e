package rts

import "fmt"

// ErrKind classifies a TypeError.
type ErrKind int

const (
	ErrTypeMismatch ErrKind = iota
	ErrCircularConstraint
)

// TypeError is raised by Unify and by TypeOf.
type TypeError struct {
	Kind   ErrKind
	T1, T2 *Type
}

func (e *TypeError) Error() string {
	switch e.Kind {
	case ErrCircularConstraint:
		return fmt.Sprintf("circular constraint: %s occurs in %s", e.T1, e.T2)
	default:
		return fmt.Sprintf("type mismatch: %s vs %s", e.T1, e.T2)
	}
}

// Constr is one equation t1 ≡ t2 in a unification worklist.
type Constr struct {
	T1, T2 *Type
}

// Unify solves a conjunction of type equations, returning the most
// general substitution or the first TypeError encountered. The
// worklist pops from the back; variable-side equations prefer c.T2
// per the source's tie-breaking, but either side is attempted.
func Unify(cs []Constr) (Subst, error) {
	var result Subst
	work := append([]Constr(nil), cs...)

	for len(work) > 0 {
		c := work[len(work)-1]
		work = work[:len(work)-1]

		if SameType(c.T1, c.T2) {
			continue
		}

		switch {
		case c.T2.IsVar() && !Occurs(c.T2, c.T1):
			e := substEntry{from: c.T2, to: c.T1}
			work = substWorklist(work, e)
			result = ComposeSubst(result, e)

		case c.T1.IsVar() && !Occurs(c.T1, c.T2):
			e := substEntry{from: c.T1, to: c.T2}
			work = substWorklist(work, e)
			result = ComposeSubst(result, e)

		case c.T1.IsVar() || c.T2.IsVar():
			// the variable occurs in the other side: circular.
			var v, t *Type
			if c.T1.IsVar() {
				v, t = c.T1, c.T2
			} else {
				v, t = c.T2, c.T1
			}
			return nil, &TypeError{Kind: ErrCircularConstraint, T1: v, T2: t}

		case c.T1.IsArrow() && c.T2.IsArrow():
			work = append(work, Constr{c.T1.Captured(), c.T2.Captured()})
			work = append(work, Constr{c.T1.Returns(), c.T2.Returns()})

		case c.T1.IsList() && c.T2.IsList():
			work = append(work, Constr{c.T1.Elem(), c.T2.Elem()})

		case c.T1.IsApp() && c.T2.IsApp():
			work = append(work, Constr{c.T1.ConOf(), c.T2.ConOf()})
			work = append(work, Constr{c.T1.Arg(), c.T2.Arg()})

		default:
			return nil, &TypeError{Kind: ErrTypeMismatch, T1: c.T1, T2: c.T2}
		}
	}

	return result, nil
}

// substWorklist applies one freshly solved substitution entry across
// the remaining equations, the way compose_subst does for the result.
func substWorklist(work []Constr, e substEntry) []Constr {
	for i, c := range work {
		work[i] = Constr{
			T1: subst1(e.from, e.to, c.T1),
			T2: subst1(e.from, e.to, c.T2),
		}
	}
	return work
}
