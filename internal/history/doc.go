// Package history records alignment runs in a SQLite database.
//
// Every `slidesync align` invocation inserts a running row before the
// aligner starts and finalizes it as succeeded or failed afterwards, so a
// failed run keeps the slide index, score, and error kind that stopped it.
// The schema is versioned; a mismatched database must be deleted.
package history
