package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-lms-sync/internal/logger"
	"github.com/MKhiriev/go-lms-sync/models"
)

const selectColorsSQL = "SELECT row_id, canvas_context_id, hex FROM colors ORDER BY row_id"

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewDB(conn, logger.Nop()), mock
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func colorRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"row_id", "canvas_context_id", "hex"}).
		AddRow(int64(1), "course_1", "#ff0000")
}

// ── Begin / Save ────────────────────────────────────────────────────────────

func TestDB_Begin_Error(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin().WillReturnError(errors.New("locked"))

	tx, err := db.Begin(testContext())

	require.ErrorIs(t, err, ErrBeginningTransaction)
	assert.Nil(t, tx)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_Save_CommitError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("disk full"))

	tx, err := db.Begin(testContext())
	require.NoError(t, err)

	err = tx.Save(testContext())
	require.ErrorIs(t, err, ErrCommitingTransaction)
	require.ErrorIs(t, tx.Save(testContext()), ErrTxClosed)
	require.NoError(t, mock.ExpectationsWereMet())
}

// ── Change tracking ─────────────────────────────────────────────────────────

func TestTx_Save_UnchangedRecordIsNotUpdated(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectColorsSQL)).WillReturnRows(colorRows())
	mock.ExpectCommit()

	ctx := testContext()
	tx, err := db.Begin(ctx)
	require.NoError(t, err)

	colors, err := Fetch[models.Color](ctx, tx, nil)
	require.NoError(t, err)
	require.Len(t, colors, 1)

	// same value written back
	colors[0].Hex = "#ff0000"

	require.NoError(t, tx.Save(ctx))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_Save_ChangedRecordIsUpdated(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectColorsSQL)).WillReturnRows(colorRows())
	mock.ExpectExec(regexp.QuoteMeta("UPDATE colors SET canvas_context_id = ?, hex = ? WHERE row_id = ?")).
		WithArgs("course_1", "#00ff00", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ctx := testContext()
	tx, err := db.Begin(ctx)
	require.NoError(t, err)

	colors, err := Fetch[models.Color](ctx, tx, nil)
	require.NoError(t, err)
	colors[0].Hex = "#00ff00"

	require.NoError(t, tx.Save(ctx))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_Fetch_FlushesPendingInsertFirst(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO colors (canvas_context_id,hex) VALUES (?,?)")).
		WithArgs("course_2", "#0000ff").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT row_id, canvas_context_id, hex FROM colors WHERE canvas_context_id = ? ORDER BY row_id")).
		WithArgs("course_2").
		WillReturnRows(sqlmock.NewRows([]string{"row_id", "canvas_context_id", "hex"}).
			AddRow(int64(7), "course_2", "#0000ff"))
	mock.ExpectRollback()

	ctx := testContext()
	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	color, err := Insert[models.Color](tx)
	require.NoError(t, err)
	color.CanvasContextID = "course_2"
	color.Hex = "#0000ff"

	found, err := Fetch[models.Color](ctx, tx, sq.Eq{"canvas_context_id": "course_2"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Same(t, color, found[0])
	assert.Equal(t, int64(7), color.RowID)

	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_Fetch_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectColorsSQL)).WillReturnError(errors.New("no such table"))
	mock.ExpectRollback()

	ctx := testContext()
	tx, err := db.Begin(ctx)
	require.NoError(t, err)

	_, err = Fetch[models.Color](ctx, tx, nil)
	require.ErrorIs(t, err, ErrExecutingQuery)

	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_Save_FlushErrorRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO colors")).WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	ctx := testContext()
	tx, err := db.Begin(ctx)
	require.NoError(t, err)

	_, err = Insert[models.Color](tx)
	require.NoError(t, err)

	require.ErrorIs(t, tx.Save(ctx), ErrExecutingStatement)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_Reset_ExecError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assignments")).WillReturnError(errors.New("busy"))
	mock.ExpectRollback()

	err := db.Reset(testContext())
	require.ErrorIs(t, err, ErrExecutingStatement)
	require.NoError(t, mock.ExpectationsWereMet())
}
