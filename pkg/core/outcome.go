// pkg/core/outcome.go
package core

import (
	"errors"
	"fmt"
)

// Registration errors.
var (
	ErrNilHandler       = errors.New("dispatch: nil handler")
	ErrNotAFunction     = errors.New("dispatch: handler is not a function")
	ErrVariadicHandler  = errors.New("dispatch: variadic handlers are not supported")
	ErrArityExceeded    = errors.New("dispatch: handler arity exceeds maximum")
	ErrReceiverMismatch = errors.New("dispatch: receiver does not match handler")
	ErrMethodNotFound   = errors.New("dispatch: method not found")
)

// Dispatch errors, one per failing Kind.
var (
	ErrKeyNotFound   = errors.New("dispatch: key not found")
	ErrArityMismatch = errors.New("dispatch: arity mismatch")
	ErrTypeMismatch  = errors.New("dispatch: type mismatch")
	ErrHandlerFault  = errors.New("dispatch: handler fault")
)

// Kind discriminates an Outcome.
type Kind uint8

// The zero Kind is KindUnset, so an Outcome that was never filled in is not OK.
const (
	KindUnset Kind = iota
	KindOK
	KindKeyNotFound
	KindArityMismatch
	KindTypeMismatch
	KindHandlerFault
)

func (k Kind) String() string {
	switch k {
	case KindUnset:
		return "unset"
	case KindOK:
		return "ok"
	case KindKeyNotFound:
		return "key_not_found"
	case KindArityMismatch:
		return "arity_mismatch"
	case KindTypeMismatch:
		return "type_mismatch"
	case KindHandlerFault:
		return "handler_fault"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindKeyNotFound:
		return ErrKeyNotFound
	case KindArityMismatch:
		return ErrArityMismatch
	case KindTypeMismatch:
		return ErrTypeMismatch
	case KindHandlerFault:
		return ErrHandlerFault
	}
	return nil
}

// Outcome is the result of one dispatch.
type Outcome struct {
	Kind    Kind
	Message string
	// Err is nil on success. Otherwise it wraps the Kind's sentinel and, when
	// there is one, the underlying cause.
	Err error
}

func (o Outcome) OK() bool { return o.Kind == KindOK }

func (o Outcome) String() string {
	if o.Message == "" {
		return o.Kind.String()
	}
	return o.Kind.String() + ": " + o.Message
}

func success() Outcome { return Outcome{Kind: KindOK, Message: "OK"} }

// fail builds a failing Outcome. cause may be nil.
func fail(k Kind, cause error, format string, args ...any) Outcome {
	msg := fmt.Sprintf(format, args...)
	var err error
	if cause != nil {
		err = fmt.Errorf("%w: %s: %w", k.sentinel(), msg, cause)
	} else {
		err = fmt.Errorf("%w: %s", k.sentinel(), msg)
	}
	return Outcome{Kind: k, Message: msg, Err: err}
}
