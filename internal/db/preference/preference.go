package preference

import (
	"context"
	"database/sql"
	"errors"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/preference"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/db"
)

const columns = "user_id, chat_id, tz, lang, updated_at"

type SQLitePreferenceRepository struct {
	db db.DBTX
}

func NewSQLitePreferenceRepository(dbtx db.DBTX) *SQLitePreferenceRepository {
	if dbtx == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &SQLitePreferenceRepository{db: dbtx}
}

func (r *SQLitePreferenceRepository) Get(ctx context.Context, userID user.ID) (p preference.Preference, err error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+columns+" FROM preferences WHERE user_id = ?", int64(userID))
	p, err = scanPreference(row)
	if errors.Is(err, sql.ErrNoRows) {
		return p, preference.ErrPreferenceNotFound
	}
	if err != nil {
		return p, e.NewStorageError("get preference", err)
	}
	return p, nil
}

func (r *SQLitePreferenceRepository) Ensure(
	ctx context.Context,
	input preference.EnsureInput,
) (p preference.Preference, err error) {
	_, err = r.db.ExecContext(
		ctx,
		`INSERT INTO preferences (user_id, chat_id, tz, lang, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO NOTHING`,
		int64(input.UserID),
		int64(input.ChatID),
		input.Defaults.Timezone.Name(),
		input.Defaults.Language.String(),
		db.EncodeTime(input.CreatedAt),
		db.EncodeTime(input.CreatedAt),
	)
	if err != nil {
		return p, e.NewStorageError("ensure preference", err)
	}
	return r.Get(ctx, input.UserID)
}

func (r *SQLitePreferenceRepository) SetTimezone(
	ctx context.Context,
	input preference.SetTimezoneInput,
) (p preference.Preference, err error) {
	row := r.db.QueryRowContext(
		ctx,
		`INSERT INTO preferences (user_id, chat_id, tz, lang, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			chat_id    = excluded.chat_id,
			tz         = excluded.tz,
			updated_at = excluded.updated_at
		RETURNING `+columns,
		int64(input.UserID),
		int64(input.ChatID),
		input.Timezone.Name(),
		input.Defaults.Language.String(),
		db.EncodeTime(input.UpdatedAt),
		db.EncodeTime(input.UpdatedAt),
	)
	p, err = scanPreference(row)
	if err != nil {
		return p, e.NewStorageError("set timezone", err)
	}
	return p, nil
}

func (r *SQLitePreferenceRepository) SetLanguage(
	ctx context.Context,
	input preference.SetLanguageInput,
) (p preference.Preference, err error) {
	row := r.db.QueryRowContext(
		ctx,
		`INSERT INTO preferences (user_id, chat_id, tz, lang, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			chat_id    = excluded.chat_id,
			lang       = excluded.lang,
			updated_at = excluded.updated_at
		RETURNING `+columns,
		int64(input.UserID),
		int64(input.ChatID),
		input.Defaults.Timezone.Name(),
		input.Language.String(),
		db.EncodeTime(input.UpdatedAt),
		db.EncodeTime(input.UpdatedAt),
	)
	p, err = scanPreference(row)
	if err != nil {
		return p, e.NewStorageError("set language", err)
	}
	return p, nil
}

func scanPreference(row *sql.Row) (p preference.Preference, err error) {
	var (
		userID    int64
		chatID    int64
		tz        string
		lang      string
		updatedAt int64
	)
	if err := row.Scan(&userID, &chatID, &tz, &lang, &updatedAt); err != nil {
		return p, err
	}

	p.UserID = user.ID(userID)
	p.ChatID = user.ChatID(chatID)
	p.UpdatedAt = db.DecodeTime(updatedAt)
	// Zones are stored by name and resolved again on read.
	p.Timezone, err = preference.ParseTimezone(tz)
	if err != nil {
		return p, err
	}
	p.Language, err = preference.ParseLanguage(lang)
	if err != nil {
		return p, err
	}
	return p, nil
}

var _ preference.Repository = (*SQLitePreferenceRepository)(nil)
