package uow

import (
	"context"
	"database/sql"
	"errors"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/preference"
	"remindbot/internal/core/domain/reminder"
	uow "remindbot/internal/core/domain/unit_of_work"
	dbpreference "remindbot/internal/db/preference"
	dbreminder "remindbot/internal/db/reminder"
)

type sqliteUnitOfWorkContext struct {
	tx *sql.Tx
}

func newSQLiteUnitOfWorkContext(tx *sql.Tx) *sqliteUnitOfWorkContext {
	return &sqliteUnitOfWorkContext{
		tx: tx,
	}
}

func (c *sqliteUnitOfWorkContext) Commit(ctx context.Context) error {
	if err := c.tx.Commit(); err != nil {
		return e.NewStorageError("commit", err)
	}
	return nil
}

// Rollback after a successful Commit is a no-op.
func (c *sqliteUnitOfWorkContext) Rollback(ctx context.Context) error {
	err := c.tx.Rollback()
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		return e.NewStorageError("rollback", err)
	}
	return nil
}

func (c *sqliteUnitOfWorkContext) Reminders() reminder.Repository {
	return dbreminder.NewSQLiteReminderRepository(c.tx)
}

func (c *sqliteUnitOfWorkContext) Preferences() preference.Repository {
	return dbpreference.NewSQLitePreferenceRepository(c.tx)
}

type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &SQLiteUnitOfWork{db: db}
}

func (u *SQLiteUnitOfWork) Begin(ctx context.Context) (uow.Context, error) {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, e.NewStorageError("begin", err)
	}
	return newSQLiteUnitOfWorkContext(tx), nil
}
