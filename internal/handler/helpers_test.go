package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Chelosky-O/soyElectronico/internal/middleware"
	"github.com/Chelosky-O/soyElectronico/internal/policy"
	"github.com/Chelosky-O/soyElectronico/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var testCodec = token.NewCodec("handler_test_secret_32_characters!", time.Hour)

// newTestEngine builds a gin engine with the same auth pipeline the routers
// use, minus logging and rate limiting noise.
func newTestEngine(table *policy.Table) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Authenticate(testCodec))
	r.Use(middleware.Authorize(table))
	return r
}

func issueToken(t *testing.T, userID uuid.UUID, email, rol string) string {
	t.Helper()
	tok, err := testCodec.Issue(userID, email, rol, time.Now())
	require.NoError(t, err)
	return tok
}

func doJSON(r *gin.Engine, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}
