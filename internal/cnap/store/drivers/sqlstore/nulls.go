package sqlstore

import (
	"database/sql"
	"time"

	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
)

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		t := nt.Time
		return &t
	}
	return nil
}

func mapOptionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func mapNullCents(ni sql.NullInt64) *domain.Cents {
	if ni.Valid {
		c := domain.Cents(ni.Int64)
		return &c
	}
	return nil
}

func mapOptionalCents(c *domain.Cents) sql.NullInt64 {
	if c == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*c), Valid: true}
}

func now() time.Time { return time.Now().UTC() }

// stamp returns t in UTC, or the current time when t is zero.
func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return now()
	}
	return t.UTC()
}
