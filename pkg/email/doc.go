// Package email sends transactional mail. Two senders are provided: a
// Postmark-backed client for production and a filesystem sender for local
// development. Dispatcher wraps any sender to make delivery fire-and-forget:
// the send runs on its own goroutine with a bounded timeout, and failures are
// logged and swallowed so an email outage never changes the outcome of the
// request that triggered it.
package email
