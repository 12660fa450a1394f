// Package httpserver wraps net/http with graceful shutdown, environment-driven
// timeouts, and lifecycle hooks.
//
// Run blocks until the context is cancelled, an interrupt or TERM signal
// arrives, or the listener fails. Shutdown drains in-flight requests within
// the configured deadline and then fires the registered stop hooks, which is
// where callers drain background workers such as the outbound email queue.
//
//	srv := httpserver.New(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook(func(*slog.Logger) { mailer.Wait() }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", slog.Any("error", err))
//	}
//
// Readiness returns a probe handler that runs dependency checks, typically a
// database ping, and reports READY or NOT_READY.
package httpserver
