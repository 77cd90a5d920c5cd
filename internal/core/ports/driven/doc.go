// Package driven defines the outbound ports of the core: the index
// engine and the config store. Services depend on these interfaces so
// they can run against the real bleve-backed adapters in production and
// the in-memory fakes in tests.
package driven
