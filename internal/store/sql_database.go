// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-lms-sync/internal/logger"
	"github.com/MKhiriev/go-lms-sync/migrations"
	"github.com/MKhiriev/go-lms-sync/models"
)

// entityTables lists every cached entity table, in the order Reset wipes them.
var entityTables = []string{
	models.AssignmentsTable,
	models.QuizzesTable,
	models.ColorsTable,
	models.CoursesTable,
}

// DB is the local cache database.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// NewDB wraps an already opened connection. It is mainly useful in tests
// that construct the connection through sqlmock.
func NewDB(conn *sql.DB, log *logger.Logger) *DB {
	return &DB{DB: conn, logger: log}
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// Begin opens a new unit of work. Each Tx holds the single pool connection
// until it is saved or rolled back, so concurrent units of work serialize.
func (db *DB) Begin(ctx context.Context) (*Tx, error) {
	log := logger.FromContext(ctx)

	sqlTx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "DB.Begin").Msg("failed to begin transaction")
		return nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	return newTx(sqlTx), nil
}

// Reset deletes every cached entity in one transaction.
func (db *DB) Reset(ctx context.Context) error {
	log := logger.FromContext(ctx)

	sqlTx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "DB.Reset").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer sqlTx.Rollback()

	for _, table := range entityTables {
		query, args, err := builder.Delete(table).ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = sqlTx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Str("func", "DB.Reset").Str("table", table).Msg("failed to wipe table")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = sqlTx.Commit(); err != nil {
		log.Err(err).Str("func", "DB.Reset").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Debug().Str("func", "DB.Reset").Msg("local cache wiped")
	return nil
}
