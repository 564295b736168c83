package auth

import (
	"context"
	"sync/atomic"
)

type contextKey struct{ name string }

var (
	principalCtxKey = &contextKey{"principal"}
	slotCtxKey      = &contextKey{"principal-slot"}
)

type principal struct {
	identity any
	subject  string
}

func withPrincipal(ctx context.Context, identity any, subject string) context.Context {
	if s, ok := ctx.Value(slotCtxKey).(*Slot); ok {
		s.subject.Store(&subject)
	}
	return context.WithValue(ctx, principalCtxKey, principal{identity: identity, subject: subject})
}

// IdentityFrom returns the identity attached by the delegate's middleware.
func IdentityFrom[T any](ctx context.Context) (T, bool) {
	p, ok := ctx.Value(principalCtxKey).(principal)
	if !ok {
		var zero T
		return zero, false
	}
	id, ok := p.identity.(T)
	return id, ok
}

func SubjectFrom(ctx context.Context) string {
	if p, ok := ctx.Value(principalCtxKey).(principal); ok {
		return p.subject
	}
	return ""
}

func IsAuthenticated(ctx context.Context) bool {
	_, ok := ctx.Value(principalCtxKey).(principal)
	return ok
}

// Slot lets middleware that runs outside the auth middleware see who was
// authorized further down the chain once the handler has returned.
type Slot struct {
	subject atomic.Pointer[string]
}

// WithSlot installs a slot, reusing one already present in ctx.
func WithSlot(ctx context.Context) (context.Context, *Slot) {
	if s, ok := ctx.Value(slotCtxKey).(*Slot); ok {
		return ctx, s
	}
	s := &Slot{}
	return context.WithValue(ctx, slotCtxKey, s), s
}

func (s *Slot) Subject() string {
	if p := s.subject.Load(); p != nil {
		return *p
	}
	return ""
}

func (s *Slot) Authenticated() bool { return s.subject.Load() != nil }
