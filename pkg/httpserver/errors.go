package httpserver

import "errors"

var (
	// ErrStart wraps listener and startup failures.
	ErrStart = errors.New("httpserver: start failed")
	// ErrShutdown wraps graceful shutdown failures.
	ErrShutdown = errors.New("httpserver: shutdown failed")
)
