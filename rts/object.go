package rts

import "fmt"

// objTag discriminates the Object variant.
type objTag int

const (
	objValue objTag = iota
	objApply
	objLambda
	objVariable
	objException
	objClosure
	objFix
)

// Object is the runtime term representation: a reference-bearing cell
// whose payload depends on its tag. Unlike the source's intrusively
// refcounted object_ptr<T>, sharing and lifetime here ride on the Go
// garbage collector; Clone gives the explicit "fresh cell" operation
// the compiler needs without any refcount bookkeeping.
type Object struct {
	tag objTag

	// objValue
	value interface{}
	typ   *Type // declared type of a value/closure leaf

	// objApply
	fn       *Object
	arg      *Object
	memoized bool
	result   *Object

	// objLambda
	param *Object // a Variable object
	body  *Object

	// objVariable
	varUID uint64

	// objException
	message string
	payload *Object

	// objClosure
	arity   int
	remain  int
	args    []*Object // filled back-to-front
	code    func(args []*Object) (*Object, error)
	clType  *Type

	// objFix
	fixBody *Object
}

// NewValue wraps a Go value as a leaf Object of the given declared
// type, analogous to make_object<T>(args...) for a value cell.
func NewValue(v interface{}, t *Type) *Object {
	return &Object{tag: objValue, value: v, typ: t}
}

// NewApply builds an unevaluated application cell. arg must not be
// nil, mirroring the source invariant Apply.arg is never null.
func NewApply(fn, arg *Object) *Object {
	if arg == nil {
		panic("rts: Apply.arg must not be nil")
	}
	return &Object{tag: objApply, fn: fn, arg: arg}
}

// NewVariable allocates a bound-variable placeholder keyed by the
// caller-supplied id. Variable ids are a namespace of their own,
// separate from type variable ids; the caller keeps them unique.
func NewVariable(id uint64) *Object {
	return &Object{tag: objVariable, varUID: id}
}

// NewLambda builds var -> body.
func NewLambda(param, body *Object) *Object {
	if param.tag != objVariable {
		panic("rts: Lambda param must be a Variable")
	}
	return &Object{tag: objLambda, param: param, body: body}
}

// NewException wraps a message and optional payload. message must not
// be empty, mirroring Exception.message is never null.
func NewException(message string, payload *Object) *Object {
	if message == "" {
		panic("rts: Exception.message must not be empty")
	}
	return &Object{tag: objException, message: message, payload: payload}
}

// NewClosure builds a primitive function cell of the given arity and
// declared type; code runs once arity args have accumulated.
func NewClosure(arity int, clType *Type, code func(args []*Object) (*Object, error)) *Object {
	return &Object{tag: objClosure, arity: arity, remain: arity, clType: clType, code: code}
}

// NewFix builds the fixed-point combinator cell used to compile
// recursive group calls.
func NewFix(body *Object) *Object {
	return &Object{tag: objFix, fixBody: body}
}

func (o *Object) IsValue() bool     { return o.tag == objValue }
func (o *Object) IsApply() bool     { return o.tag == objApply }
func (o *Object) IsLambda() bool    { return o.tag == objLambda }
func (o *Object) IsVariable() bool  { return o.tag == objVariable }
func (o *Object) IsException() bool { return o.tag == objException }
func (o *Object) IsClosure() bool   { return o.tag == objClosure }
func (o *Object) IsFix() bool       { return o.tag == objFix }

func (o *Object) Value() interface{} { return o.value }
func (o *Object) DeclaredType() *Type {
	if o.tag == objClosure {
		return o.clType
	}
	return o.typ
}
func (o *Object) Fn() *Object      { return o.fn }
func (o *Object) Arg() *Object     { return o.arg }
func (o *Object) Param() *Object   { return o.param }
func (o *Object) Body() *Object    { return o.body }
func (o *Object) VarUID() uint64   { return o.varUID }
func (o *Object) Message() string  { return o.message }
func (o *Object) Payload() *Object { return o.payload }
func (o *Object) Arity() int       { return o.arity }
func (o *Object) Remaining() int   { return o.remain }

// IsResult reports whether this Apply cell has memoized its reduced
// result.
func (o *Object) IsResult() bool { return o.tag == objApply && o.memoized }

// GetResult returns the memoized result; callers must check IsResult
// first.
func (o *Object) GetResult() *Object { return o.result }

// SetResult memoizes the reduction of an Apply cell.
func (o *Object) SetResult(r *Object) {
	if o.tag != objApply {
		panic("rts: SetResult on a non-Apply object")
	}
	o.memoized = true
	o.result = r
}

// Apply1 partially (or fully) applies a Closure to one more argument,
// filling the argument buffer back-to-front as the source specifies.
// When remaining reaches zero, code runs and the result (or a tagged
// exception) is returned instead of a further Closure.
func (o *Object) Apply1(arg *Object) (*Object, error) {
	if o.tag != objClosure {
		panic("rts: Apply1 on a non-Closure object")
	}
	next := &Object{
		tag:    objClosure,
		arity:  o.arity,
		remain: o.remain - 1,
		args:   append(append([]*Object(nil), arg), o.args...),
		code:   o.code,
		clType: o.clType,
	}
	if next.remain > 0 {
		return next, nil
	}
	res, err := next.code(next.args)
	if err != nil {
		return NewException(err.Error(), nil), nil
	}
	return res, nil
}

// Clone dispatches a fresh copy of the cell, analogous to the info
// table's clone function pointer; the new cell shares no mutable
// memoization state with the original.
func (o *Object) Clone() *Object {
	cp := *o
	cp.memoized = false
	cp.result = nil
	return &cp
}

func (o *Object) String() string {
	switch o.tag {
	case objValue:
		return fmt.Sprintf("%v", o.value)
	case objApply:
		return fmt.Sprintf("(%s %s)", o.fn, o.arg)
	case objLambda:
		return fmt.Sprintf("(\\%s -> %s)", o.param, o.body)
	case objVariable:
		return fmt.Sprintf("$%d", o.varUID)
	case objException:
		return fmt.Sprintf("<exception: %s>", o.message)
	case objClosure:
		return fmt.Sprintf("<closure %d/%d>", o.arity-o.remain, o.arity)
	case objFix:
		return "<fix>"
	default:
		return "<?>"
	}
}
