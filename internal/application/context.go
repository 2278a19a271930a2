package application

import "context"

type callerKey struct{}

// WithCaller tags ctx with the identity presented on the guarded transfer
// path. The rate-limit engine only honors Check calls whose ctx carries the
// ledger identity it was constructed with.
func WithCaller(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

func CallerFrom(ctx context.Context) string {
	caller, _ := ctx.Value(callerKey{}).(string)
	return caller
}

type checkKey struct{}

func markCheckInFlight(ctx context.Context) context.Context {
	return context.WithValue(ctx, checkKey{}, true)
}

// CheckInFlight reports whether ctx is already inside a guard-chain
// invocation. Hosts refuse transfers carrying such a ctx so a module can
// never re-enter the transfer path from its own check.
func CheckInFlight(ctx context.Context) bool {
	inFlight, _ := ctx.Value(checkKey{}).(bool)
	return inFlight
}
