// Package production defines the on-disk production record: the output
// directory layout, the typed artifact-completion checks that make every
// pipeline stage resumable, and a SQLite ledger indexing past runs for the
// CLI.
//
// Artifact presence on disk IS the completion signal for a stage. The ledger
// is an index for listing and export; it is never consulted to decide whether
// work can be skipped.
package production
