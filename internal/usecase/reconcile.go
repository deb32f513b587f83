package usecase

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/multierr"

	"github.com/MKhiriev/go-lms-sync/internal/logger"
	"github.com/MKhiriev/go-lms-sync/internal/store"
)

// Reconciler is the per-entity part of a reconciliation pass. None of its
// methods have a default; every entity kind implements all three.
type Reconciler[Item, M any] interface {
	// Scope selects the local models owned by the pass. A nil predicate
	// selects every model of the table.
	Scope() sq.Sqlizer

	// ItemPredicate selects the local model that represents item.
	ItemPredicate(item Item) sq.Sqlizer

	// UpdateModel applies item onto model. An error marks the item as
	// failed; changes already made to model are kept.
	UpdateModel(ctx context.Context, model *M, item Item, tx *store.Tx) error
}

// Result summarises one reconciliation pass.
type Result struct {
	// ItemErrors holds one [*ItemError] per item whose update failed.
	ItemErrors []error

	Inserted int
	Updated  int
	Deleted  int
}

// Err combines ItemErrors into a single error, or nil.
func (r Result) Err() error {
	return multierr.Combine(r.ItemErrors...)
}

// Reconcile makes the models matching r.Scope() mirror items, within tx. It
// does not commit.
//
// Items are processed in order. The local model for an item is found with
// r.ItemPredicate or inserted, then updated. Pre-existing models that were
// updated successfully are kept; all others in scope are deleted, including
// a pre-existing model whose update failed. When two items share an identity
// the second updates the model created or matched by the first, so the last
// one wins.
//
// Only store failures are returned as an error; item failures go to Result.
func Reconcile[Item, M any, PM store.Model[M]](ctx context.Context, tx *store.Tx, r Reconciler[Item, M], items []Item) (Result, error) {
	log := logger.FromContext(ctx)

	existing, err := store.Fetch[M, PM](ctx, tx, r.Scope())
	if err != nil {
		log.Err(err).Str("func", "usecase.Reconcile").Msg("failed to load models in scope")
		return Result{}, fmt.Errorf("%w: %w", ErrLoadingScope, err)
	}

	// tracked by pointer: two distinct models may hold equal fields
	stale := make(map[*M]struct{}, len(existing))
	for _, model := range existing {
		stale[(*M)(model)] = struct{}{}
	}

	var (
		result   Result
		itemErrs error
	)
	for i, item := range items {
		model, inserted, err := findOrInsert[M, PM](ctx, tx, r.ItemPredicate(item))
		if err != nil {
			return Result{}, err
		}
		if inserted {
			result.Inserted++
		}

		if err = r.UpdateModel(ctx, (*M)(model), item, tx); err != nil {
			log.Warn().Err(err).Str("func", "usecase.Reconcile").Int("index", i).Msg("failed to update model")
			itemErrs = multierr.Append(itemErrs, &ItemError{Index: i, Err: err})
			continue
		}

		if _, ok := stale[(*M)(model)]; ok {
			delete(stale, (*M)(model))
			result.Updated++
		}
	}

	for _, model := range existing {
		if _, ok := stale[(*M)(model)]; !ok {
			continue
		}
		if err = tx.Delete(model); err != nil {
			return Result{}, err
		}
		result.Deleted++
	}

	result.ItemErrors = multierr.Errors(itemErrs)
	log.Debug().
		Str("func", "usecase.Reconcile").
		Int("items", len(items)).
		Int("inserted", result.Inserted).
		Int("updated", result.Updated).
		Int("deleted", result.Deleted).
		Int("failed", len(result.ItemErrors)).
		Msg("reconciliation pass finished")

	return result, nil
}

func findOrInsert[M any, PM store.Model[M]](ctx context.Context, tx *store.Tx, predicate sq.Sqlizer) (PM, bool, error) {
	matches, err := store.Fetch[M, PM](ctx, tx, predicate)
	if err != nil {
		return nil, false, err
	}
	if len(matches) > 0 {
		return matches[0], false, nil
	}

	model, err := store.Insert[M, PM](tx)
	if err != nil {
		return nil, false, err
	}
	return model, true, nil
}
