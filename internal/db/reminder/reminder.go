package reminder

import (
	"context"
	"database/sql"
	"errors"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/db"
	"strings"
	"time"
)

const columns = "id, chat_id, user_id, body, at, tz, status, created_at, delivered_at, cancelled_at"

type SQLiteReminderRepository struct {
	db db.DBTX
}

func NewSQLiteReminderRepository(dbtx db.DBTX) *SQLiteReminderRepository {
	if dbtx == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &SQLiteReminderRepository{db: dbtx}
}

func (r *SQLiteReminderRepository) Create(
	ctx context.Context,
	input reminder.CreateInput,
) (rem reminder.Reminder, err error) {
	row := r.db.QueryRowContext(
		ctx,
		`INSERT INTO reminders (chat_id, user_id, body, at, tz, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+columns,
		int64(input.ChatID),
		int64(input.UserID),
		input.Body,
		db.EncodeTime(input.At),
		input.Timezone,
		reminder.StatusPending.String(),
		db.EncodeTime(input.CreatedAt),
	)
	rem, err = scanReminder(row)
	if err != nil {
		return rem, e.NewStorageError("create reminder", err)
	}
	return rem, nil
}

func (r *SQLiteReminderRepository) GetByID(ctx context.Context, id reminder.ID) (rem reminder.Reminder, err error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+columns+" FROM reminders WHERE id = ?", int64(id))
	rem, err = scanReminder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return rem, reminder.ErrReminderNotFound
	}
	if err != nil {
		return rem, e.NewStorageError("get reminder", err)
	}
	return rem, nil
}

func (r *SQLiteReminderRepository) ListPending(
	ctx context.Context,
	input reminder.ListPendingInput,
) (reminders []reminder.Reminder, err error) {
	var query strings.Builder
	args := []interface{}{reminder.StatusPending.String()}
	query.WriteString("SELECT " + columns + " FROM reminders WHERE status = ?")
	if input.UserID.IsPresent {
		query.WriteString(" AND user_id = ?")
		args = append(args, int64(input.UserID.Value))
	}
	query.WriteString(" ORDER BY at ASC, id ASC")
	if input.Limit.IsPresent {
		query.WriteString(" LIMIT ?")
		args = append(args, int64(input.Limit.Value))
	}

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, e.NewStorageError("list pending reminders", err)
	}
	defer rows.Close()

	reminders = make([]reminder.Reminder, 0)
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, e.NewStorageError("list pending reminders", err)
		}
		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, e.NewStorageError("list pending reminders", err)
	}
	return reminders, nil
}

func (r *SQLiteReminderRepository) MarkDelivered(
	ctx context.Context,
	id reminder.ID,
	at time.Time,
) (reminder.Reminder, error) {
	return r.finish(ctx, "mark reminder delivered", "delivered_at", reminder.StatusDelivered, id, at)
}

func (r *SQLiteReminderRepository) Cancel(
	ctx context.Context,
	id reminder.ID,
	at time.Time,
) (reminder.Reminder, error) {
	return r.finish(ctx, "cancel reminder", "cancelled_at", reminder.StatusCancelled, id, at)
}

func (r *SQLiteReminderRepository) Release(ctx context.Context, id reminder.ID) (rem reminder.Reminder, err error) {
	row := r.db.QueryRowContext(
		ctx,
		"UPDATE reminders SET status = ?, delivered_at = NULL WHERE id = ? AND status = ? RETURNING "+columns,
		reminder.StatusPending.String(),
		int64(id),
		reminder.StatusDelivered.String(),
	)
	rem, err = scanReminder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return rem, reminder.ErrReminderNotFound
	}
	if err != nil {
		return rem, e.NewStorageError("release reminder", err)
	}
	return rem, nil
}

// finish moves a pending reminder to a terminal status. The status condition
// makes concurrent finishes of the same reminder yield exactly one winner.
func (r *SQLiteReminderRepository) finish(
	ctx context.Context,
	op string,
	column string,
	status reminder.Status,
	id reminder.ID,
	at time.Time,
) (rem reminder.Reminder, err error) {
	row := r.db.QueryRowContext(
		ctx,
		"UPDATE reminders SET status = ?, "+column+" = ? WHERE id = ? AND status = ? RETURNING "+columns,
		status.String(),
		db.EncodeTime(at),
		int64(id),
		reminder.StatusPending.String(),
	)
	rem, err = scanReminder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return rem, reminder.ErrReminderNotFound
	}
	if err != nil {
		return rem, e.NewStorageError(op, err)
	}
	return rem, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReminder(row scanner) (rem reminder.Reminder, err error) {
	var (
		id          int64
		chatID      int64
		userID      int64
		at          int64
		status      string
		createdAt   int64
		deliveredAt sql.NullInt64
		cancelledAt sql.NullInt64
	)
	err = row.Scan(&id, &chatID, &userID, &rem.Body, &at, &rem.Timezone, &status, &createdAt, &deliveredAt, &cancelledAt)
	if err != nil {
		return rem, err
	}

	rem.ID = reminder.ID(id)
	rem.ChatID = user.ChatID(chatID)
	rem.UserID = user.ID(userID)
	rem.At = db.DecodeTime(at)
	rem.CreatedAt = db.DecodeTime(createdAt)
	rem.DeliveredAt = db.DecodeOptionalTime(deliveredAt)
	rem.CancelledAt = db.DecodeOptionalTime(cancelledAt)
	rem.Status, err = reminder.ParseStatus(status)
	if err != nil {
		return rem, err
	}
	if err := rem.Validate(); err != nil {
		return rem, err
	}
	return rem, nil
}

var _ reminder.Repository = (*SQLiteReminderRepository)(nil)
