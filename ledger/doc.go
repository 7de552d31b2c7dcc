// Package ledger keeps an optional local SQLite history of runs.
//
// The store is append-only observability: the converter writes one row per
// run plus one per job, and only `watbuild history` reads it back. The
// conversion path never consults the ledger, so no skip logic can leak in.
package ledger
