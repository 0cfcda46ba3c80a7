package logging

import "context"

type ctxKey struct{}

// ContextWith returns a copy of ctx carrying args as key-value pairs. Both
// logger implementations prepend them to every record logged with that
// context.
func ContextWith(ctx context.Context, args ...any) context.Context {
	prev := argsFrom(ctx)
	merged := make([]any, 0, len(prev)+len(args))
	merged = append(merged, prev...)
	merged = append(merged, args...)
	return context.WithValue(ctx, ctxKey{}, merged)
}

func argsFrom(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	args, _ := ctx.Value(ctxKey{}).([]any)
	return args
}

func withContextArgs(ctx context.Context, args []any) []any {
	scoped := argsFrom(ctx)
	if len(scoped) == 0 {
		return args
	}
	return append(scoped[:len(scoped):len(scoped)], args...)
}
