// Package connectors groups the document-source implementations.
// The only source scour ingests from is the local filesystem, which
// lives in the filesystem subpackage.
package connectors
