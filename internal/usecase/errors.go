package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrFetchingCollection wraps a failed remote fetch. The local cache is
	// left untouched in that case.
	ErrFetchingCollection = errors.New("error fetching remote collection")

	// ErrLoadingScope wraps a failure to read the models in scope.
	ErrLoadingScope = errors.New("error loading local models in scope")

	// ErrSavingChanges wraps a failed commit of a reconciliation pass.
	ErrSavingChanges = errors.New("error saving reconciled models")

	// ErrMissingID is reported for remote items without a server id.
	ErrMissingID = errors.New("remote item has no id")
)

// ItemError is the failure of a single remote item during reconciliation.
type ItemError struct {
	// Index is the position of the item in the fetched collection.
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}
