// Package history provides SQLite-based persistence for completed
// authenticity reports.
//
// Each analysis produces one immutable report; the store keeps them so the
// CLI can show past verdicts and operators can audit what the service
// decided. Reports are stored as JSON documents with a few indexed columns
// (filename, label, score, timestamp) denormalized for listing without
// deserialization.
//
// The database lives in the XDG data directory by default and is created on
// first use. Persistence is optional: the server and the scan command both
// run without a store when history is disabled.
package history
