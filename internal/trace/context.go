package trace

import "context"

// ctxKey is the key type for storing a hook Func in context.
type ctxKey struct{}

// FromContext extracts the hook from context, or nil if absent.
func FromContext(ctx context.Context) Func {
	if ctx == nil {
		return nil
	}
	if fn, ok := ctx.Value(ctxKey{}).(Func); ok {
		return fn
	}
	return nil
}

// WithHook attaches a hook Func to context so command plumbing can hand
// it to whatever interpreter it ends up constructing.
func WithHook(ctx context.Context, fn Func) context.Context {
	return context.WithValue(ctx, ctxKey{}, fn)
}
