// Package store defines the session store and its implementations.
//
// Sessions are keyed by their opaque token. The store is the only holder of
// session state; losing it logs every connection out, which is acceptable
// for this service ("unique per process start" when memory-backed).
package store
