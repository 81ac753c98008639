package server

import "errors"

var (
	ErrNoHTTPHandler = errors.New("no HTTP handler configured")
	ErrListen        = errors.New("HTTP server listen failed")
	ErrShutdown      = errors.New("HTTP server graceful shutdown failed")
)
