package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/backoffice/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestFailureReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("bad line: %w", apperrors.ErrValidation), "validation"},
		{apperrors.ErrNotFound, "not_found"},
		{apperrors.ErrInvalidState, "invalid_state"},
		{fmt.Errorf("insert: %w", apperrors.ErrDuplicate), "duplicate"},
		{apperrors.ErrIntegrity, "integrity"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FailureReason(tt.err), tt.err.Error())
	}
}
