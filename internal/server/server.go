package server

import "net/http"

// Middleware decorates a handler, e.g. with [Logging].
type Middleware func(http.Handler) http.Handler

// Handler is an endpoint group that knows its own mux patterns ("GET /torrents").
type Handler interface {
	http.Handler
	Routes() []string
}

// Router registers endpoints behind a shared middleware stack.
type Router interface {
	Use(middleware ...Middleware)
	Handle(method, path string, handler http.Handler)
	Handler(handler Handler)
	http.Handler
}

var _ Router = (*BasicRouter)(nil)
