package domain

import "time"

// AppConfig is the persisted installation state: which directory is
// indexed and where the index lives. Exactly one config exists per
// scour home directory.
type AppConfig struct {
	// Root is the canonical absolute directory being indexed.
	Root string

	// IndexDir is the absolute path of the persistent index store.
	IndexDir string

	// LastIndexed is the completion time of the last successful
	// ingestion pass. Nil until the first pass commits.
	LastIndexed *time.Time
}

// InitResult summarises what `scour init` did.
type InitResult struct {
	// Root is the canonicalised root directory.
	Root string

	// IndexDir is where the index was created or reused.
	IndexDir string

	// ConfigPath is the config file location.
	ConfigPath string

	// Reused is true when an existing, schema-compatible index was kept.
	Reused bool
}
