package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf_WrappedError(t *testing.T) {
	err := fmt.Errorf("create request: %w", Authorization("only the recipient can update the status"))
	require.Equal(t, KindAuthorization, KindOf(err))
	require.Equal(t, "only the recipient can update the status", MessageOf(err))
}

func TestKindOf_Unclassified(t *testing.T) {
	err := errors.New("boom")
	require.Equal(t, KindInternal, KindOf(err))
	require.Equal(t, "internal server error", MessageOf(err))
}

func TestInternal_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal(cause)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "internal server error", MessageOf(err))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:     http.StatusBadRequest,
		KindConflict:       http.StatusConflict,
		KindAuthentication: http.StatusUnauthorized,
		KindAuthorization:  http.StatusForbidden,
		KindNotFound:       http.StatusNotFound,
		KindInternal:       http.StatusInternalServerError,
	}
	for k, want := range cases {
		require.Equal(t, want, HTTPStatus(k), k.String())
	}
}
