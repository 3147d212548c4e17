// Package sqlnode provides a concrete change-source node backed by a
// SQLite table, standing in for the "external database client"
// collaborator that a change-source node consults in the incremental
// processing engine's contract.
//
// A TableSource polls a monotonic row_version column against the
// watermark it last observed and reports Updated when any row has
// advanced (or been marked deleted) since then. The engine does not
// know or care that the source happens to be SQLite; it only ever
// sees the Updated/Unchanged states TableSource.Run returns.
//
// Uses database/sql with github.com/mattn/go-sqlite3 as the driver, in
// WAL mode for concurrent reads during writes.
package sqlnode
