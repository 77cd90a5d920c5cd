// Package domain contains the core types of the scour search pipeline:
// configuration, documents, ingestion reports, search results, and the
// sentinel errors shared across services and adapters.
//
// The package is dependency-free so that every adapter can import it.
package domain
