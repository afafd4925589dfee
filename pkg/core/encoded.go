// pkg/core/encoded.go
package core

import (
	"time"

	"github.com/joeydtaylor/steeze-dispatch/pkg/codec"
	"github.com/joeydtaylor/steeze-dispatch/pkg/erased"
)

// DispatchEncoded decodes each raw argument into the handler's declared
// parameter type at that position, then dispatches as Dispatch does.
// A decode failure is a type mismatch.
func (r *Registry[K]) DispatchEncoded(key K, c codec.Codec, args ...[]byte) Outcome {
	start := time.Now()
	out := r.dispatchEncoded(key, c, args)
	r.observe(key, out, time.Since(start))
	return out
}

func (r *Registry[K]) dispatchEncoded(key K, c codec.Codec, raw [][]byte) Outcome {
	if len(raw) > erased.Capacity {
		return fail(KindArityMismatch, erased.ErrCapacityExceeded, "dispatch %v: %d arguments", key, len(raw))
	}
	inv, ok := r.lookup(key)
	if !ok {
		return fail(KindKeyNotFound, nil, "%v", key)
	}
	sig := inv.Signature()
	if len(raw) != sig.Arity() {
		return fail(KindArityMismatch, nil, "got %d encoded arguments, %s takes %d", len(raw), sig, sig.Arity())
	}
	vals := make([]erased.Value, len(raw))
	for i, data := range raw {
		v, err := codec.DecodeAs(c, data, sig.Params[i])
		if err != nil {
			return fail(KindTypeMismatch, err, "argument %d of %s", i+1, sig)
		}
		vals[i] = erased.Of(v.Interface())
	}
	p, err := erased.PackOf(vals...)
	if err != nil {
		return fail(KindArityMismatch, err, "dispatch %v", key)
	}
	return inv.Invoke(p)
}
