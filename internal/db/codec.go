package db

import (
	"database/sql"
	c "remindbot/internal/core/domain/common"
	"time"
)

// Times are stored as unix seconds in UTC.

func EncodeTime(t time.Time) int64 {
	return t.UTC().Unix()
}

func DecodeTime(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func DecodeOptionalTime(sec sql.NullInt64) c.Optional[time.Time] {
	if !sec.Valid {
		return c.Optional[time.Time]{}
	}
	return c.NewOptional(DecodeTime(sec.Int64), true)
}
