package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/buen-sabor-api/internal/domain"
)

func TestLockError_TimeoutEsConflicto(t *testing.T) {
	for _, code := range []string{"55P03", "57014"} {
		err := lockError(&pgconn.PgError{Code: code})
		assert.ErrorIs(t, err, domain.ErrConflict, "código %s", code)
	}
	err := lockError(errors.New("conexión cerrada"))
	assert.NotErrorIs(t, err, domain.ErrConflict)
}

func TestPgErrorCodes(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isCheckViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, isCheckViolation(errors.New("x")))
}
