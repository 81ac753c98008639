package server

import "context"

// Server defines the lifecycle contract for the transport server.
type Server interface {
	// RunServer serves requests until ctx is cancelled, then shuts down
	// gracefully. It returns early with an error if the listener cannot be
	// opened or serving fails.
	RunServer(ctx context.Context) error
}
