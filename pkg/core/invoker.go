// pkg/core/invoker.go
package core

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/joeydtaylor/steeze-dispatch/pkg/erased"
)

// Invoker presents one handler through a uniform call shape. The parameter
// list is fixed when the Invoker is built and never rediscovered.
type Invoker struct {
	fn   reflect.Value
	sig  Signature
	recv []reflect.Value // bound receiver, prepended to every call
}

// NewInvoker wraps a free-standing func (method values included).
func NewInvoker(fn any) (*Invoker, error) {
	fv, err := funcValue(fn)
	if err != nil {
		return nil, err
	}
	sig, err := SignatureOf(fv.Type(), 0)
	if err != nil {
		return nil, err
	}
	return &Invoker{fn: fv, sig: sig}, nil
}

// NewBoundInvoker binds receiver to fn's first parameter, method-expression
// style: NewBoundInvoker((*Counter).Add, c).
func NewBoundInvoker(fn any, receiver any) (*Invoker, error) {
	fv, err := funcValue(fn)
	if err != nil {
		return nil, err
	}
	sig, err := SignatureOf(fv.Type(), 1)
	if err != nil {
		return nil, err
	}
	want := fv.Type().In(0)
	rv := reflect.ValueOf(receiver)
	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: nil receiver for %s", ErrReceiverMismatch, want)
	}
	if !rv.Type().AssignableTo(want) {
		return nil, fmt.Errorf("%w: have %s, want %s", ErrReceiverMismatch, rv.Type(), want)
	}
	if rv.Type() != want {
		conv := reflect.New(want).Elem()
		conv.Set(rv)
		rv = conv
	}
	return &Invoker{fn: fv, sig: sig, recv: []reflect.Value{rv}}, nil
}

// NewMethodInvoker binds the exported method named name on receiver.
func NewMethodInvoker(receiver any, name string) (*Invoker, error) {
	rv := reflect.ValueOf(receiver)
	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: nil receiver", ErrReceiverMismatch)
	}
	m := rv.MethodByName(name)
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %s has no method %q", ErrMethodNotFound, rv.Type(), name)
	}
	return NewInvoker(m.Interface())
}

func funcValue(fn any) (reflect.Value, error) {
	if fn == nil {
		return reflect.Value{}, ErrNilHandler
	}
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func {
		return reflect.Value{}, fmt.Errorf("%w: got %T", ErrNotAFunction, fn)
	}
	if fv.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: %T", ErrNilHandler, fn)
	}
	return fv, nil
}

func (iv *Invoker) Arity() int { return iv.sig.Arity() }

// Signature returns a copy; the invoker's own parameter list never changes.
func (iv *Invoker) Signature() Signature {
	return Signature{
		Params:       append([]reflect.Type(nil), iv.sig.Params...),
		ReturnsError: iv.sig.ReturnsError,
	}
}

// Invoke slices p to the handler's arity, recovers each slot as the declared
// parameter type and calls the handler. Nothing escapes as a panic.
func (iv *Invoker) Invoke(p erased.Pack) Outcome {
	n := iv.sig.Arity()
	if p.Len() > n {
		return fail(KindArityMismatch, nil, "got %d arguments, %s takes %d", p.Len(), iv.sig, n)
	}
	slots, err := p.Slice(n)
	if err != nil {
		return fail(KindArityMismatch, err, "slice %d", n)
	}
	args, out := iv.recoverArgs(slots)
	if !out.OK() {
		return out
	}
	return iv.call(args)
}

func (iv *Invoker) recoverArgs(slots []erased.Value) ([]reflect.Value, Outcome) {
	args := make([]reflect.Value, 0, len(iv.recv)+len(slots))
	args = append(args, iv.recv...)
	for i, s := range slots {
		v, err := s.As(iv.sig.Params[i])
		switch {
		case errors.Is(err, erased.ErrEmptySlot):
			return nil, fail(KindArityMismatch, err, "argument %d of %s missing", i+1, iv.sig)
		case err != nil:
			return nil, fail(KindTypeMismatch, err, "argument %d of %s", i+1, iv.sig)
		}
		args = append(args, v)
	}
	return args, success()
}

// call runs the handler. A panic or a non-nil trailing error is a fault.
func (iv *Invoker) call(args []reflect.Value) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			out = fail(KindHandlerFault, cause, "%s panicked", iv.sig)
		}
	}()
	res := iv.fn.Call(args)
	if iv.sig.ReturnsError {
		if last := res[len(res)-1]; !last.IsNil() {
			return fail(KindHandlerFault, last.Interface().(error), "%s returned error", iv.sig)
		}
	}
	return success()
}
