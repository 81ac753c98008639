// Package server runs the HTTP transport: it binds the listener, serves the
// router built by the handler package and shuts down gracefully when the
// run context is cancelled.
package server
