package store

import (
	"context"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-lms-sync/internal/config"
	"github.com/MKhiriev/go-lms-sync/internal/logger"
	"github.com/MKhiriev/go-lms-sync/models"
)

func newMemoryDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewClientStorage(context.Background(), config.ClientStorage{DB: config.ClientDB{DSN: ":memory:"}}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedCourses(t *testing.T, db *DB, ids ...string) {
	t.Helper()
	ctx := testContext()

	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	for _, id := range ids {
		course, err := Insert[models.Course](tx)
		require.NoError(t, err)
		course.ID = id
		course.Name = "Course " + id
	}
	require.NoError(t, tx.Save(ctx))
}

func TestTx_InsertAndSave(t *testing.T) {
	db := newMemoryDB(t)
	ctx := testContext()

	tx, err := db.Begin(ctx)
	require.NoError(t, err)

	course, err := Insert[models.Course](tx)
	require.NoError(t, err)
	course.ID = "1"
	course.Name = "Biology"
	url := "https://example.com/bio.png"
	course.ImageDownloadURL = &url

	require.NoError(t, tx.Save(ctx))
	assert.NotZero(t, course.RowID)

	courses, err := Query[models.Course](ctx, db, nil)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, course.RowID, courses[0].RowID)
	assert.Equal(t, "Biology", courses[0].Name)
	require.NotNil(t, courses[0].ImageDownloadURL)
	assert.Equal(t, url, *courses[0].ImageDownloadURL)
}

func TestTx_IdentityMap(t *testing.T) {
	db := newMemoryDB(t)
	seedCourses(t, db, "1", "2")
	ctx := testContext()

	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	all, err := Fetch[models.Course](ctx, tx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	one, err := Fetch[models.Course](ctx, tx, sq.Eq{"id": "2"})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Same(t, all[1], one[0])
}

func TestTx_PredicatesObservePendingChanges(t *testing.T) {
	db := newMemoryDB(t)
	seedCourses(t, db, "1")
	ctx := testContext()

	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	courses, err := Fetch[models.Course](ctx, tx, nil)
	require.NoError(t, err)
	courses[0].Name = "Renamed"

	renamed, err := Fetch[models.Course](ctx, tx, sq.Eq{"name": "Renamed"})
	require.NoError(t, err)
	require.Len(t, renamed, 1)
	assert.Same(t, courses[0], renamed[0])

	fresh, err := Insert[models.Course](tx)
	require.NoError(t, err)
	fresh.ID = "9"

	found, err := Fetch[models.Course](ctx, tx, sq.Eq{"id": "9"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Same(t, fresh, found[0])
}

func TestTx_Delete(t *testing.T) {
	db := newMemoryDB(t)
	seedCourses(t, db, "1", "2")
	ctx := testContext()

	tx, err := db.Begin(ctx)
	require.NoError(t, err)

	courses, err := Fetch[models.Course](ctx, tx, sq.Eq{"id": "1"})
	require.NoError(t, err)
	require.NoError(t, tx.Delete(courses[0]))
	require.NoError(t, tx.Delete(courses[0]))

	// deleted rows are no longer visible inside the same transaction
	remaining, err := Fetch[models.Course](ctx, tx, nil)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "2", remaining[0].ID)

	require.NoError(t, tx.Save(ctx))

	count, err := Count(ctx, db, models.CoursesTable, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestTx_DeleteUnflushedInsert(t *testing.T) {
	db := newMemoryDB(t)
	ctx := testContext()

	tx, err := db.Begin(ctx)
	require.NoError(t, err)

	course, err := Insert[models.Course](tx)
	require.NoError(t, err)
	require.NoError(t, tx.Delete(course))
	require.NoError(t, tx.Save(ctx))

	count, err := Count(ctx, db, models.CoursesTable, nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestTx_DeleteUntracked(t *testing.T) {
	db := newMemoryDB(t)
	ctx := testContext()

	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	require.ErrorIs(t, tx.Delete(&models.Course{RowID: 1}), ErrRecordNotTracked)
}

func TestTx_Rollback(t *testing.T) {
	db := newMemoryDB(t)
	seedCourses(t, db, "1")
	ctx := testContext()

	tx, err := db.Begin(ctx)
	require.NoError(t, err)

	courses, err := Fetch[models.Course](ctx, tx, nil)
	require.NoError(t, err)
	courses[0].Name = "Changed"
	_, err = Insert[models.Course](tx)
	require.NoError(t, err)
	_, err = Fetch[models.Course](ctx, tx, nil)
	require.NoError(t, err)

	require.NoError(t, tx.Rollback())
	require.NoError(t, tx.Rollback())

	stored, err := Query[models.Course](ctx, db, nil)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Course 1", stored[0].Name)
}

func TestTx_ClosedTransaction(t *testing.T) {
	db := newMemoryDB(t)
	ctx := testContext()

	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Save(ctx))

	_, err = Fetch[models.Course](ctx, tx, nil)
	assert.ErrorIs(t, err, ErrTxClosed)
	_, err = Insert[models.Course](tx)
	assert.ErrorIs(t, err, ErrTxClosed)
	assert.ErrorIs(t, tx.Delete(&models.Course{}), ErrTxClosed)
	assert.ErrorIs(t, tx.Save(ctx), ErrTxClosed)
}

func TestQueryFirstAndCount(t *testing.T) {
	db := newMemoryDB(t)
	seedCourses(t, db, "1", "2", "3")
	ctx := testContext()

	course, err := First[models.Course](ctx, db, sq.Eq{"id": "2"})
	require.NoError(t, err)
	require.NotNil(t, course)
	assert.Equal(t, "Course 2", course.Name)

	missing, err := First[models.Course](ctx, db, sq.Eq{"id": "404"})
	require.NoError(t, err)
	assert.Nil(t, missing)

	count, err := Count(ctx, db, models.CoursesTable, sq.NotEq{"id": "1"})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = Count(ctx, nil, models.CoursesTable, nil)
	assert.ErrorIs(t, err, ErrNilDB)
}

func TestDB_Reset(t *testing.T) {
	db := newMemoryDB(t)
	seedCourses(t, db, "1", "2")
	ctx := testContext()

	require.NoError(t, db.Reset(ctx))

	for _, table := range entityTables {
		count, err := Count(ctx, db, table, nil)
		require.NoError(t, err)
		assert.Zero(t, count, table)
	}
}
