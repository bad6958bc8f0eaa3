package cerr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/momeni/txscope/pkg/core/cerr"
	"github.com/momeni/txscope/pkg/core/orm"
	"github.com/stretchr/testify/assert"
)

func TestFromORM(t *testing.T) {
	assert.NoError(t, cerr.FromORM(nil))

	for _, tc := range []struct {
		name string
		err  error
		code int
	}{
		{"not found", fmt.Errorf("fetch: %w", orm.ErrNotFound), http.StatusNotFound},
		{"no rows deleted", orm.ErrNoRowsDeleted, http.StatusNotFound},
		{"conflict", fmt.Errorf("save: %w", orm.ErrConflict), http.StatusConflict},
		{"resolution", &orm.ResolutionError{Kind: "model", Name: "X"}, http.StatusBadRequest},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := cerr.FromORM(tc.err)
			var ce *cerr.Error
			if assert.ErrorAs(t, err, &ce) {
				assert.Equal(t, tc.code, ce.HTTPStatusCode)
			}
			assert.ErrorIs(t, err, tc.err)
		})
	}

	other := errors.New("other")
	assert.Same(t, other, cerr.FromORM(other))
}
