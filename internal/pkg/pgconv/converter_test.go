//go:build unit

package pgconv

import (
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestDateRoundTrip(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	in := time.Date(2030, 6, 14, 23, 30, 0, 0, loc)

	pd := DateToPgtype(in)
	assert.True(t, pd.Valid)
	assert.Equal(t, time.Date(2030, 6, 14, 0, 0, 0, 0, time.UTC), DateFromPgtype(pd))
}

func TestOptionalText(t *testing.T) {
	assert.False(t, OptionalText("").Valid)

	txt := OptionalText("fade")
	assert.True(t, txt.Valid)
	assert.Equal(t, "fade", *StringPtrFromPgtype(txt))
	assert.Nil(t, StringPtrFromPgtype(OptionalText("")))
}

func TestErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}
	exclusion := &pgconn.PgError{Code: "23P01"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.True(t, IsExclusionViolation(exclusion))
	assert.True(t, IsNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.False(t, IsNoRows(unique))
}
