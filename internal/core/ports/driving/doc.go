// Package driving defines the inbound use-case ports exposed to the
// CLI adapter.
package driving
