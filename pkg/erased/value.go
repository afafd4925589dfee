// pkg/erased/value.go
package erased

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrEmptySlot    = errors.New("erased: empty slot")
	ErrTypeMismatch = errors.New("erased: type mismatch")
)

// Value holds one argument of a type unknown to the holder.
// The zero Value is empty.
type Value struct {
	rv  reflect.Value
	set bool
}

// Of erases v. An untyped nil is a set slot with no type.
func Of(v any) Value {
	return Value{rv: reflect.ValueOf(v), set: true}
}

// Empty returns the padding slot.
func Empty() Value { return Value{} }

func (v Value) IsEmpty() bool { return !v.set }

// Type reports the stored type, nil for empty slots and untyped nil.
func (v Value) Type() reflect.Type {
	if !v.set || !v.rv.IsValid() {
		return nil
	}
	return v.rv.Type()
}

// Interface returns the stored value, nil when empty.
func (v Value) Interface() any {
	if !v.set || !v.rv.IsValid() {
		return nil
	}
	return v.rv.Interface()
}

func (v Value) String() string {
	switch {
	case !v.set:
		return "<empty>"
	case !v.rv.IsValid():
		return "<nil>"
	default:
		return v.rv.Type().String()
	}
}

// As recovers the slot as t. Concrete targets need an identical stored type;
// interface targets accept any stored type implementing them.
func (v Value) As(t reflect.Type) (reflect.Value, error) {
	if !v.set {
		return reflect.Value{}, ErrEmptySlot
	}
	if !v.rv.IsValid() {
		if nilable(t) {
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: have nil, want %s", ErrTypeMismatch, t)
	}
	st := v.rv.Type()
	if st == t {
		return v.rv, nil
	}
	if t.Kind() == reflect.Interface && st.Implements(t) {
		out := reflect.New(t).Elem()
		out.Set(v.rv)
		return out, nil
	}
	return reflect.Value{}, fmt.Errorf("%w: have %s, want %s", ErrTypeMismatch, st, t)
}

// RecoverAs is the typed form of As.
func RecoverAs[T any](v Value) (T, error) {
	var zero T
	rv, err := v.As(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return zero, err
	}
	// nil interface targets fail the assertion; zero is the right answer then.
	out, _ := rv.Interface().(T)
	return out, nil
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return true
	}
	return false
}
