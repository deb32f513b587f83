package store

import "errors"

// Sentinel errors returned by the unit of work to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrTxClosed is returned when a [Tx] is used after Save or Rollback.
	ErrTxClosed = errors.New("transaction is already closed")

	// ErrRecordNotTracked is returned when deleting a record that was neither
	// fetched nor inserted through the same [Tx].
	ErrRecordNotTracked = errors.New("record is not tracked by transaction")

	// ErrNilDB is returned when a nil database handle is passed to a helper.
	ErrNilDB = errors.New("database is nil")
)

// Low-level database operation errors. These are returned (or wrapped) when a
// SQL-level operation fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query from a
	// predicate fails (e.g. an unsupported squirrel expression).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a result
	// row into a model fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when row iteration fails mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
