package usecase

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-lms-sync/internal/logger"
	"github.com/MKhiriev/go-lms-sync/internal/store"
)

//go:generate mockgen -source=collection.go -destination=../mock/usecase_mock.go -package=mock

// Storage opens units of work on the local cache. [*store.DB] implements it.
type Storage interface {
	Begin(ctx context.Context) (*store.Tx, error)
}

// FetchFunc loads a remote collection.
type FetchFunc[Item any] func(ctx context.Context) ([]Item, error)

// CollectionUseCase fetches a remote collection and reconciles it with the
// local cache in a single transaction.
type CollectionUseCase[Item, M any, PM store.Model[M]] struct {
	name       string
	storage    Storage
	fetch      FetchFunc[Item]
	reconciler Reconciler[Item, M]
}

// NewCollectionUseCase assembles a use case. name is only used in logs.
func NewCollectionUseCase[Item, M any, PM store.Model[M]](
	name string,
	storage Storage,
	fetch FetchFunc[Item],
	reconciler Reconciler[Item, M],
) *CollectionUseCase[Item, M, PM] {
	return &CollectionUseCase[Item, M, PM]{
		name:       name,
		storage:    storage,
		fetch:      fetch,
		reconciler: reconciler,
	}
}

// Name returns the use case name used in logs.
func (u *CollectionUseCase[Item, M, PM]) Name() string {
	return u.name
}

// Run fetches the remote collection and reconciles it. When the fetch fails
// nothing is written and the error wraps [ErrFetchingCollection].
func (u *CollectionUseCase[Item, M, PM]) Run(ctx context.Context) (Result, error) {
	log := logger.FromContext(ctx)

	items, err := u.fetch(ctx)
	if err != nil {
		log.Err(err).Str("func", "CollectionUseCase.Run").Str("use_case", u.name).Msg("failed to fetch remote collection")
		return Result{}, fmt.Errorf("%s: %w: %w", u.name, ErrFetchingCollection, err)
	}

	return u.Save(ctx, items)
}

// Save reconciles an already fetched collection and commits the pass.
// Item failures are returned in Result and do not prevent the commit; a
// failed commit is returned as an error wrapping [ErrSavingChanges].
func (u *CollectionUseCase[Item, M, PM]) Save(ctx context.Context, items []Item) (Result, error) {
	log := logger.FromContext(ctx)

	tx, err := u.storage.Begin(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", u.name, err)
	}
	defer tx.Rollback()

	result, err := Reconcile[Item, M, PM](ctx, tx, u.reconciler, items)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", u.name, err)
	}

	if err = tx.Save(ctx); err != nil {
		log.Err(err).Str("func", "CollectionUseCase.Save").Str("use_case", u.name).Msg("failed to commit reconciliation")
		return result, fmt.Errorf("%s: %w: %w", u.name, ErrSavingChanges, err)
	}

	if len(result.ItemErrors) > 0 {
		log.Warn().
			Str("func", "CollectionUseCase.Save").
			Str("use_case", u.name).
			Int("failed", len(result.ItemErrors)).
			Err(result.Err()).
			Msg("some items could not be reconciled")
	}

	return result, nil
}
