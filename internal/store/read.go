package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-lms-sync/internal/logger"
)

// Query reads every M matching predicate outside of a unit of work. The
// returned models are detached: changing them has no effect on the store.
func Query[M any, PM Model[M]](ctx context.Context, db *DB, predicate sq.Sqlizer, orderBy ...string) ([]PM, error) {
	log := logger.FromContext(ctx)

	if db == nil {
		return nil, ErrNilDB
	}

	query, args, err := buildSelectQuery(PM(new(M)), predicate, orderBy)
	if err != nil {
		log.Err(err).Str("func", "store.Query").Msg("failed to build select query")
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "store.Query").Str("query", query).Msg("failed to execute select query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var result []PM
	for rows.Next() {
		model, err := scanModel[M, PM](rows)
		if err != nil {
			log.Err(err).Str("func", "store.Query").Msg("failed to scan row")
			return nil, err
		}
		result = append(result, model)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "store.Query").Msg("error iterating rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return result, nil
}

// First returns the first M matching predicate, or nil when nothing matches.
func First[M any, PM Model[M]](ctx context.Context, db *DB, predicate sq.Sqlizer, orderBy ...string) (PM, error) {
	models, err := Query[M, PM](ctx, db, predicate, orderBy...)
	if err != nil || len(models) == 0 {
		return nil, err
	}
	return models[0], nil
}

// Count returns the number of rows of table matching predicate.
func Count(ctx context.Context, db *DB, table string, predicate sq.Sqlizer) (int, error) {
	log := logger.FromContext(ctx)

	if db == nil {
		return 0, ErrNilDB
	}

	query, args, err := buildCountQuery(table, predicate)
	if err != nil {
		log.Err(err).Str("func", "store.Count").Msg("failed to build count query")
		return 0, err
	}

	var count int
	if err = db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "store.Count").Str("table", table).Msg("failed to count rows")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}
