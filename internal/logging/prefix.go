package logging

import "context"

type prefixKey struct{}

// WithPrefix returns a child of ctx whose prefix is the prefix of ctx followed
// by text.
func WithPrefix(ctx context.Context, text string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if text == "" {
		return ctx
	}
	return context.WithValue(ctx, prefixKey{}, Prefix(ctx)+text)
}

// Prefix returns the prefix carried by ctx, or "" when there is none.
func Prefix(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if prefix, ok := ctx.Value(prefixKey{}).(string); ok {
		return prefix
	}
	return ""
}

// Scoped runs fn with a context extended by text. The caller's context is
// never modified, so the previous prefix is in effect again once fn returns,
// fails or panics.
func Scoped(ctx context.Context, text string, fn func(context.Context) error) error {
	return fn(WithPrefix(ctx, text))
}
