// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-lms-sync/internal/logger"
)

type entryState int

const (
	stateInserted entryState = iota
	stateTracked
	stateDeleted
)

type entry struct {
	record   Record
	state    entryState
	snapshot []driver.Value
}

// Tx is a unit of work over the local cache.
//
// Records fetched or inserted through a Tx are tracked in an identity map:
// fetching the same row twice yields the same pointer. Mutations are made
// directly on the returned models and are written to the open SQL
// transaction before every fetch (so predicates observe them) and on Save.
// Only records whose values changed since they were last written are
// updated.
//
// A Tx is not safe for concurrent use.
type Tx struct {
	tx       *sql.Tx
	identity map[identityKey]*entry
	index    map[Record]*entry
	entries  []*entry
	closed   bool
}

func newTx(sqlTx *sql.Tx) *Tx {
	return &Tx{
		tx:       sqlTx,
		identity: make(map[identityKey]*entry),
		index:    make(map[Record]*entry),
	}
}

// Fetch returns every M matching predicate, in orderBy order (row_id when
// empty). A nil predicate matches every row. Pending changes are flushed
// first.
func Fetch[M any, PM Model[M]](ctx context.Context, tx *Tx, predicate sq.Sqlizer, orderBy ...string) ([]PM, error) {
	log := logger.FromContext(ctx)

	if tx.closed {
		return nil, ErrTxClosed
	}
	if err := tx.flush(ctx); err != nil {
		return nil, err
	}

	query, args, err := buildSelectQuery(PM(new(M)), predicate, orderBy)
	if err != nil {
		log.Err(err).Str("func", "store.Fetch").Msg("failed to build select query")
		return nil, err
	}

	rows, err := tx.tx.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "store.Fetch").Str("query", query).Msg("failed to execute select query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var result []PM
	for rows.Next() {
		model, err := scanModel[M, PM](rows)
		if err != nil {
			log.Err(err).Str("func", "store.Fetch").Msg("failed to scan row")
			return nil, err
		}

		if e, ok := tx.identity[keyOf(model)]; ok {
			result = append(result, e.record.(PM))
			continue
		}

		snap, err := snapshot(model)
		if err != nil {
			return nil, err
		}
		e := &entry{record: model, state: stateTracked, snapshot: snap}
		tx.register(e)
		tx.identity[keyOf(model)] = e
		result = append(result, model)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "store.Fetch").Msg("error iterating rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return result, nil
}

// Insert creates a new tracked M. It is written on the next flush, after
// which its primary key is set.
func Insert[M any, PM Model[M]](tx *Tx) (PM, error) {
	if tx.closed {
		return nil, ErrTxClosed
	}

	model := PM(new(M))
	tx.register(&entry{record: model, state: stateInserted})
	return model, nil
}

// Delete marks a tracked record for deletion. Deleting a record that was
// inserted and never flushed simply discards it. Deleting twice is a no-op.
func (t *Tx) Delete(r Record) error {
	if t.closed {
		return ErrTxClosed
	}

	e, ok := t.index[r]
	if !ok {
		return ErrRecordNotTracked
	}
	e.state = stateDeleted
	return nil
}

// Save flushes pending changes and commits. The Tx is closed afterwards,
// whether or not Save succeeds.
func (t *Tx) Save(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if t.closed {
		return ErrTxClosed
	}

	if err := t.flush(ctx); err != nil {
		t.closed = true
		t.tx.Rollback()
		return err
	}

	t.closed = true
	if err := t.tx.Commit(); err != nil {
		log.Err(err).Str("func", "Tx.Save").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Debug().Str("func", "Tx.Save").Int("tracked", len(t.entries)).Msg("transaction committed")
	return nil
}

// Rollback discards every change. Rolling back a closed Tx is a no-op, so
// it is safe to defer right after Begin.
func (t *Tx) Rollback() error {
	if t.closed {
		return nil
	}
	t.closed = true
	return t.tx.Rollback()
}

func (t *Tx) register(e *entry) {
	t.entries = append(t.entries, e)
	t.index[e.record] = e
}

func (t *Tx) flush(ctx context.Context) error {
	log := logger.FromContext(ctx)

	live := t.entries[:0]
	for _, e := range t.entries {
		switch e.state {
		case stateInserted:
			if err := t.insert(ctx, e); err != nil {
				log.Err(err).Str("func", "Tx.flush").Str("table", e.record.TableName()).Msg("failed to insert record")
				return err
			}
		case stateTracked:
			if err := t.update(ctx, e); err != nil {
				log.Err(err).Str("func", "Tx.flush").
					Str("table", e.record.TableName()).
					Int64("row_id", e.record.PrimaryKey()).
					Msg("failed to update record")
				return err
			}
		case stateDeleted:
			if err := t.delete(ctx, e); err != nil {
				log.Err(err).Str("func", "Tx.flush").
					Str("table", e.record.TableName()).
					Int64("row_id", e.record.PrimaryKey()).
					Msg("failed to delete record")
				return err
			}
			continue
		}
		live = append(live, e)
	}

	clear(t.entries[len(live):])
	t.entries = live
	return nil
}

func (t *Tx) insert(ctx context.Context, e *entry) error {
	snap, err := snapshot(e.record)
	if err != nil {
		return err
	}

	query, args, err := buildInsertQuery(e.record)
	if err != nil {
		return err
	}

	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	e.record.SetPrimaryKey(id)
	e.state = stateTracked
	e.snapshot = snap
	t.identity[keyOf(e.record)] = e
	return nil
}

func (t *Tx) update(ctx context.Context, e *entry) error {
	snap, err := snapshot(e.record)
	if err != nil {
		return err
	}
	if sameValues(snap, e.snapshot) {
		return nil
	}

	query, args, err := buildUpdateQuery(e.record)
	if err != nil {
		return err
	}
	if _, err = t.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	e.snapshot = snap
	return nil
}

func (t *Tx) delete(ctx context.Context, e *entry) error {
	delete(t.index, e.record)
	if e.record.PrimaryKey() == 0 {
		return nil
	}
	delete(t.identity, keyOf(e.record))

	query, args, err := buildDeleteQuery(e.record)
	if err != nil {
		return err
	}
	if _, err = t.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanModel[M any, PM Model[M]](rows rowScanner) (PM, error) {
	model := PM(new(M))

	var rowID int64
	if err := rows.Scan(append([]any{&rowID}, model.ScanTargets()...)...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	model.SetPrimaryKey(rowID)

	return model, nil
}

// snapshot converts the record's values the way the driver would see them,
// so that pointer fields compare by value.
func snapshot(r Record) ([]driver.Value, error) {
	values := r.Values()
	snap := make([]driver.Value, len(values))
	for i, v := range values {
		dv, err := driver.DefaultParameterConverter.ConvertValue(v)
		if err != nil {
			return nil, fmt.Errorf("%w: column %s: %w", ErrBuildingSQLQuery, r.Columns()[i], err)
		}
		snap[i] = dv
	}
	return snap, nil
}

func sameValues(a, b []driver.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		switch x := a[i].(type) {
		case time.Time:
			y, ok := b[i].(time.Time)
			if !ok || !x.Equal(y) {
				return false
			}
		case []byte:
			y, ok := b[i].([]byte)
			if !ok || !bytes.Equal(x, y) {
				return false
			}
		default:
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}
