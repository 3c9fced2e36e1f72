package app

import "context"

type ctxKey struct{}

// GetAppFromContext returns the App carried by ctx, or nil when absent.
func GetAppFromContext(ctx context.Context) *App {
	a, _ := ctx.Value(ctxKey{}).(*App)
	return a
}

// SetAppInContext returns a child context carrying the App.
func SetAppInContext(ctx context.Context, a *App) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}
