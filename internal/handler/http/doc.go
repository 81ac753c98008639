// Package http implements the REST surface of the auth service.
//
// It wires the chi router, the request-scoped middleware chain (panic
// recovery, trace ids, access logging, request timeouts, bearer
// authentication and role checks) and the handlers for the /auth endpoints.
// Every handler funnels failures through writeError, which maps the service
// error taxonomy onto HTTP status codes and never leaks internal details.
package http
