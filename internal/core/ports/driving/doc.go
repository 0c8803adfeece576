// Package driving holds the interfaces through which external actors
// (the CLI, the directory watcher) invoke core behaviour. In hexagonal
// terms these are the primary ports: the outside world drives the
// application through them.
//
// The implementations live in internal/core/services.
package driving
