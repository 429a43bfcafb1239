// Package notifications delivers optional push notifications about project
// and export activity via ntfy.
//
// When no topic is configured the constructor returns a noop implementation,
// so callers can publish unconditionally. Delivery failures are returned to
// the caller but are never treated as fatal anywhere in the system.
package notifications
