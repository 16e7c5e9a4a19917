package middleware

import (
	"chat-relay/pkg/log"
)

// Middleware holds the gin middlewares shared by every route.
type Middleware struct {
	l         log.Logger
	skipPaths map[string]struct{}
}

// New creates the middleware set. Requests to skipPaths are not access-logged.
func New(l log.Logger, skipPaths ...string) Middleware {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}
	return Middleware{
		l:         l,
		skipPaths: skip,
	}
}
