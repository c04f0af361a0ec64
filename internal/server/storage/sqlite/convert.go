package sqlite

import (
	"database/sql"
	"time"
)

// Время хранится в БД как UNIX seconds (UTC)

func toUnix(t time.Time) int64 {
	return t.Unix()
}

func fromUnix(v int64) time.Time {
	return time.Unix(v, 0).UTC()
}

func nullTimePtr(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := fromUnix(v.Int64)
	return &t
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// stringArg превращает *string в аргумент запроса (nil -> NULL)
func stringArg(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
