package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestMetadataFor(t *testing.T) {
	testCases := []struct {
		code       Code
		wantStatus int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeConflict, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeInternal, http.StatusInternalServerError},
		{CodeDependency, http.StatusServiceUnavailable},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(string(tc.code), func(t *testing.T) {
			assert.Equal(t, tc.wantStatus, MetadataFor(tc.code).HTTPStatus)
		})
	}
}

func TestAsFindsWrappedError(t *testing.T) {
	base := New(CodeNotFound, "category not found")
	wrapped := fmt.Errorf("loading: %w", base)

	typed := As(wrapped)
	assert.NotNil(t, typed)
	assert.Equal(t, CodeNotFound, typed.Code())
	assert.True(t, HasCode(wrapped, CodeNotFound))
	assert.False(t, HasCode(wrapped, CodeConflict))
	assert.Nil(t, As(stdErrors.New("plain")))
	assert.Nil(t, As(nil))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stdErrors.New("connection reset")
	err := Wrap(CodeInternal, cause, "list categories")

	assert.True(t, stdErrors.Is(err, cause))
	assert.Equal(t, "list categories", err.Message())
	assert.Contains(t, err.Error(), "connection reset")
}

func TestDumpExtractsPostgresDiagnostics(t *testing.T) {
	pgxErr := &pgconn.PgError{Code: "23505", ConstraintName: "categories_name_lower_key", TableName: "categories"}
	d := Dump(Wrap(CodeConflict, pgxErr, "duplicate"))
	assert.Equal(t, CodeConflict, d.Code)
	assert.Equal(t, "23505", d.PGCode)
	assert.Equal(t, "categories_name_lower_key", d.PGConstraint)
	assert.Len(t, d.Chain, 2)

	pqErr := &pq.Error{Code: "23503", Table: "products", Constraint: "products_category_id_fkey"}
	d = Dump(fmt.Errorf("insert: %w", pqErr))
	assert.Equal(t, "23503", d.PGCode)
	assert.Equal(t, "products", d.PGTable)

	fields := d.Fields()
	assert.Equal(t, "products_category_id_fkey", fields["pg_constraint"])
	_, hasColumn := fields["pg_column"]
	assert.False(t, hasColumn)
}
