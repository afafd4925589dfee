// pkg/core/registry.go
package core

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joeydtaylor/steeze-dispatch/pkg/erased"
	"go.uber.org/zap"
)

// Handle identifies one registration. It is returned by Register* and stays
// valid until the registration is replaced or removed.
type Handle struct{ id uuid.UUID }

func (h Handle) IsZero() bool   { return h.id == uuid.Nil }
func (h Handle) String() string { return h.id.String() }

// Observer receives per-dispatch telemetry. Implementations must be safe for
// concurrent use.
type Observer interface {
	ObserveDispatch(key, outcome string, d time.Duration)
	SetRegistered(n int)
}

// ---------- Options ----------

type options struct {
	log *zap.Logger
	obs Observer
}

type Option func(*options)

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func WithObserver(obs Observer) Option { return func(o *options) { o.obs = obs } }

// ---------- Registry ----------

type entry struct {
	handle Handle
	inv    *Invoker
}

// Registry maps keys to invokers. Dispatch may run concurrently; Register and
// Unregister take exclusive access. Handlers run without the lock held, so they
// may call back into the registry.
//
// When K is an interface type, keys passed to Register* and Unregister must be
// hashable. Dispatch and the lookups report an unhashable key as not found.
type Registry[K comparable] struct {
	mu      sync.RWMutex
	entries map[K]entry
	keys    map[Handle]K

	log *zap.Logger
	obs Observer
}

func NewRegistry[K comparable](opts ...Option) *Registry[K] {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry[K]{
		entries: make(map[K]entry),
		keys:    make(map[Handle]K),
		log:     o.log,
		obs:     o.obs,
	}
}

// Register stores fn under key, replacing any previous registration.
func (r *Registry[K]) Register(key K, fn any) (Handle, error) {
	inv, err := NewInvoker(fn)
	if err != nil {
		return Handle{}, r.rejected(key, err)
	}
	return r.store(key, inv), nil
}

// RegisterBound binds receiver to fn's first parameter and stores the result.
// The registry references receiver; keep it alive while registered.
func (r *Registry[K]) RegisterBound(key K, fn any, receiver any) (Handle, error) {
	inv, err := NewBoundInvoker(fn, receiver)
	if err != nil {
		return Handle{}, r.rejected(key, err)
	}
	return r.store(key, inv), nil
}

// RegisterMethod stores receiver's exported method named method.
func (r *Registry[K]) RegisterMethod(key K, receiver any, method string) (Handle, error) {
	inv, err := NewMethodInvoker(receiver, method)
	if err != nil {
		return Handle{}, r.rejected(key, err)
	}
	return r.store(key, inv), nil
}

func (r *Registry[K]) rejected(key K, err error) error {
	r.log.Warn("handler rejected", zap.Any("key", key), zap.Error(err))
	return fmt.Errorf("register %v: %w", key, err)
}

func (r *Registry[K]) store(key K, inv *Invoker) Handle {
	h := Handle{id: uuid.New()}

	r.mu.Lock()
	old, replaced := r.entries[key]
	if replaced {
		delete(r.keys, old.handle)
	}
	r.entries[key] = entry{handle: h, inv: inv}
	r.keys[h] = key
	n := len(r.entries)
	r.mu.Unlock()

	r.log.Info("handler registered",
		zap.Any("key", key),
		zap.Stringer("handle", h),
		zap.Stringer("signature", inv.Signature()),
		zap.Bool("replaced", replaced),
	)
	r.setRegistered(n)
	return h
}

// Unregister removes key. It reports whether anything was removed.
func (r *Registry[K]) Unregister(key K) bool {
	r.mu.Lock()
	e, ok := r.entries[key]
	if ok {
		delete(r.entries, key)
		delete(r.keys, e.handle)
	}
	n := len(r.entries)
	r.mu.Unlock()

	if ok {
		r.log.Info("handler unregistered", zap.Any("key", key), zap.Stringer("handle", e.handle))
		r.setRegistered(n)
	}
	return ok
}

// UnregisterHandle removes the registration h was issued for, if it is still
// current.
func (r *Registry[K]) UnregisterHandle(h Handle) bool {
	r.mu.Lock()
	key, ok := r.keys[h]
	if ok {
		delete(r.keys, h)
		delete(r.entries, key)
	}
	n := len(r.entries)
	r.mu.Unlock()

	if ok {
		r.log.Info("handler unregistered", zap.Any("key", key), zap.Stringer("handle", h))
		r.setRegistered(n)
	}
	return ok
}

// ReverseKey returns the key h is registered under.
func (r *Registry[K]) ReverseKey(h Handle) (K, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.keys[h]
	return k, ok
}

// Dispatch calls the handler under key with args. It never panics; every
// failure is reported in the returned Outcome.
func (r *Registry[K]) Dispatch(key K, args ...any) Outcome {
	start := time.Now()
	out := r.dispatch(key, args)
	r.observe(key, out, time.Since(start))
	return out
}

func (r *Registry[K]) dispatch(key K, args []any) Outcome {
	p, err := erased.MakePack(args...)
	if err != nil {
		return fail(KindArityMismatch, err, "dispatch %v", key)
	}
	inv, ok := r.lookup(key)
	if !ok {
		return fail(KindKeyNotFound, nil, "%v", key)
	}
	return inv.Invoke(p)
}

// lookup treats a key whose dynamic type cannot be hashed as absent.
func (r *Registry[K]) lookup(key K) (inv *Invoker, ok bool) {
	defer func() {
		if recover() != nil {
			inv, ok = nil, false
		}
	}()
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[key]
	return e.inv, ok
}

func (r *Registry[K]) observe(key K, out Outcome, d time.Duration) {
	if !out.OK() {
		r.log.Warn("dispatch failed",
			zap.Any("key", key),
			zap.Stringer("outcome", out.Kind),
			zap.Error(out.Err),
		)
	}
	if r.obs != nil {
		r.obs.ObserveDispatch(fmt.Sprint(key), out.Kind.String(), d)
	}
}

func (r *Registry[K]) setRegistered(n int) {
	if r.obs != nil {
		r.obs.SetRegistered(n)
	}
}

// ---------- Introspection ----------

func (r *Registry[K]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Keys returns the registered keys in unspecified order.
func (r *Registry[K]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]K, 0, len(r.entries))
	for k := range r.entries {
		out = append(out, k)
	}
	return out
}

func (r *Registry[K]) Signature(key K) (Signature, bool) {
	inv, ok := r.lookup(key)
	if !ok {
		return Signature{}, false
	}
	return inv.Signature(), true
}

func (r *Registry[K]) Arity(key K) (int, bool) {
	inv, ok := r.lookup(key)
	if !ok {
		return 0, false
	}
	return inv.Arity(), true
}
