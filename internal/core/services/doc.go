// Package services implements the driving port interfaces: index
// lifecycle, the ingestion pipeline, and query rendering. Services
// orchestrate calls to the driven ports (config store, index engine).
package services
