// Package file persists the scour installation config as a TOML file
// inside the scour home directory (default ~/.scour, overridable with
// SCOUR_HOME). The index store lives next to it.
package file
