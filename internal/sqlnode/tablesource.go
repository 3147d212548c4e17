package sqlnode

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/netfab/ctrlgraph/internal/engine"
	"github.com/netfab/ctrlgraph/internal/ir"
)

// TableSource wraps a SQLite table and exposes the engine's
// change-source contract: Run polls a monotonic row_version column
// against the last-seen watermark and returns Updated if any row's
// version advanced, or was marked deleted, since then.
//
// Up to ir.MaxSecondaryIndexes secondary index names may be attached
// for callers that want to record which indexes a source's rows
// participate in; TableSource itself does not create them.
type TableSource struct {
	db               *sql.DB
	table            string
	versionColumn    string
	deletedColumn    string
	secondaryIndexes []string
}

// Option configures a TableSource at construction time.
type Option func(*TableSource)

// WithVersionColumn overrides the default "row_version" column name.
func WithVersionColumn(name string) Option {
	return func(t *TableSource) { t.versionColumn = name }
}

// WithDeletedColumn overrides the default "deleted" column name.
func WithDeletedColumn(name string) Option {
	return func(t *TableSource) { t.deletedColumn = name }
}

// WithSecondaryIndexes attaches up to ir.MaxSecondaryIndexes index
// names to the source, for diagnostics. New returns an error if more
// than the limit are supplied.
func WithSecondaryIndexes(names ...string) Option {
	return func(t *TableSource) {
		t.secondaryIndexes = names
	}
}

// New creates a TableSource over db's table. Returns an error if more
// than ir.MaxSecondaryIndexes secondary indexes were requested via
// WithSecondaryIndexes.
func New(db *sql.DB, table string, opts ...Option) (*TableSource, error) {
	t := &TableSource{
		db:            db,
		table:         table,
		versionColumn: "row_version",
		deletedColumn: "deleted",
	}
	for _, opt := range opts {
		opt(t)
	}
	if len(t.secondaryIndexes) > ir.MaxSecondaryIndexes {
		return nil, fmt.Errorf("sqlnode: table %q declares %d secondary indexes, exceeds limit of %d",
			table, len(t.secondaryIndexes), ir.MaxSecondaryIndexes)
	}
	return t, nil
}

// SecondaryIndexes returns the index names attached at construction.
func (t *TableSource) SecondaryIndexes() []string {
	return t.secondaryIndexes
}

// watermark is the per-node data a TableSource stores between
// iterations: the highest row_version observed so far, plus the number
// of rows currently flagged deleted. A soft delete does not always bump
// row_version, so the deleted count is tracked separately to still
// surface it as a change.
type watermark struct {
	lastVersion int64
	lastDeleted int64
}

// Init implements engine.InitFunc: it allocates the zero watermark.
func (t *TableSource) Init(arg any) (any, error) {
	return &watermark{}, nil
}

// Cleanup implements engine.CleanupFunc. TableSource does not own the
// *sql.DB it was given, so there is nothing to release here.
func (t *TableSource) Cleanup(data any) {}

// Run implements engine.RunFunc: it polls MAX(row_version) and the
// count of rows flagged deleted, and compares both against the stored
// watermark.
func (t *TableSource) Run(n *engine.Node, data any) ir.NodeState {
	wm := data.(*watermark)

	query := fmt.Sprintf(
		"SELECT COALESCE(MAX(%s), 0), COALESCE(SUM(CASE WHEN %s THEN 1 ELSE 0 END), 0) FROM %s",
		t.versionColumn, t.deletedColumn, t.table)
	var maxVersion, deletedCount int64
	if err := t.db.QueryRowContext(context.Background(), query).Scan(&maxVersion, &deletedCount); err != nil {
		// A query failure surfaces as no observed change; the node's
		// own data (the watermark) is left untouched so the next
		// iteration retries against the same baseline.
		return ir.Unchanged
	}

	if maxVersion > wm.lastVersion || deletedCount != wm.lastDeleted {
		wm.lastVersion = maxVersion
		wm.lastDeleted = deletedCount
		return ir.Updated
	}
	return ir.Unchanged
}
