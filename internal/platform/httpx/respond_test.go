package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) ProblemDetail {
	t.Helper()
	var pd ProblemDetail
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&pd))
	return pd
}

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", fmt.Errorf("transaction 9: %w", ErrNotFound), http.StatusNotFound},
		{"duplicate", fmt.Errorf("code X-1: %w", ErrDuplicate), http.StatusConflict},
		{"conflict", ErrConflict, http.StatusConflict},
		{"validation", ErrValidation, http.StatusBadRequest},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondError(rec, tc.err)
			require.Equal(t, tc.status, rec.Code)
			pd := decodeProblem(t, rec)
			require.Equal(t, tc.status, pd.Status)
		})
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, fmt.Errorf("dsn=postgres://secret"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	pd := decodeProblem(t, rec)
	require.Empty(t, pd.Detail)
}

func TestDecodeJSONLimitsBody(t *testing.T) {
	big := strings.NewReader(`{"name":"` + strings.Repeat("a", maxBodyBytes+10) + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/", big)
	var target struct {
		Name string `json:"name"`
	}
	err := DecodeJSON(req, &target)
	require.ErrorIs(t, err, ErrBodyTooLarge)
}

func TestJSONSetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"status": "ok"})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
