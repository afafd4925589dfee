// pkg/core/signature.go
package core

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/joeydtaylor/steeze-dispatch/pkg/erased"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Signature is a handler's parameter list as seen by callers (receiver excluded
// for bound handlers).
type Signature struct {
	Params []reflect.Type
	// ReturnsError is set when the last result is error; a non-nil value is a fault.
	ReturnsError bool
}

func (s Signature) Arity() int { return len(s.Params) }

func (s Signature) String() string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = p.String()
	}
	return "func(" + strings.Join(parts, ", ") + ")"
}

// SignatureOf derives the parameter list of a func type. skip drops leading
// parameters that are bound at registration.
func SignatureOf(ft reflect.Type, skip int) (Signature, error) {
	if ft == nil || ft.Kind() != reflect.Func {
		return Signature{}, fmt.Errorf("%w: %v", ErrNotAFunction, ft)
	}
	if ft.IsVariadic() {
		return Signature{}, fmt.Errorf("%w: %s", ErrVariadicHandler, ft)
	}
	if ft.NumIn() < skip {
		return Signature{}, fmt.Errorf("%w: %s takes no receiver parameter", ErrReceiverMismatch, ft)
	}
	n := ft.NumIn() - skip
	if n > erased.Capacity {
		return Signature{}, fmt.Errorf("%w: %s has %d parameters, max %d", ErrArityExceeded, ft, n, erased.Capacity)
	}
	params := make([]reflect.Type, n)
	for i := range params {
		params[i] = ft.In(i + skip)
	}
	out := ft.NumOut()
	return Signature{
		Params:       params,
		ReturnsError: out > 0 && ft.Out(out-1) == errorType,
	}, nil
}
