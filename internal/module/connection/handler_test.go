package connection

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildmate/server/internal/shared/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter authenticates each request as the user in the X-Test-User header.
func newTestRouter(t *testing.T, guards ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	f := setup(t)

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		if id, err := uuid.Parse(c.GetHeader("X-Test-User")); err == nil {
			c.Set(middleware.UserIDKey, id)
		}
	})
	NewHandler(f.svc).RegisterRoutes(api, guards...)
	return router
}

func call(router *gin.Engine, method, path string, user uuid.UUID, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != uuid.Nil {
		req.Header.Set("X-Test-User", user.String())
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_RequestLifecycle(t *testing.T) {
	router := newTestRouter(t)
	alice, bob, eve := uuid.New(), uuid.New(), uuid.New()

	w := call(router, http.MethodPost, "/api/v1/connections", alice, SubmitRequest{ToID: bob})
	require.Equal(t, http.StatusCreated, w.Code)
	var created Request
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, StatusPending, created.Status)

	w = call(router, http.MethodPost, "/api/v1/connections", alice, SubmitRequest{ToID: bob})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(router, http.MethodGet, "/api/v1/connections/incoming", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var incoming RequestsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &incoming))
	require.Len(t, incoming.Requests, 1)
	assert.Equal(t, created.ID, incoming.Requests[0].ID)

	acceptPath := "/api/v1/connections/" + created.ID.String() + "/accept"
	w = call(router, http.MethodPost, acceptPath, eve, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(router, http.MethodPost, acceptPath, bob, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = call(router, http.MethodPost, "/api/v1/connections/"+created.ID.String()+"/reject", bob, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(router, http.MethodGet, "/api/v1/connections", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var conns ConnectionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conns))
	require.Len(t, conns.Connections, 1)
	assert.Equal(t, bob, conns.Connections[0].PeerID)
}

func TestHandler_BadInput(t *testing.T) {
	router := newTestRouter(t)
	alice := uuid.New()

	tests := []struct {
		name   string
		method string
		path   string
		user   uuid.UUID
		body   any
		want   int
	}{
		{"missing recipient", http.MethodPost, "/api/v1/connections", alice, map[string]string{}, http.StatusBadRequest},
		{"self request", http.MethodPost, "/api/v1/connections", alice, SubmitRequest{ToID: alice}, http.StatusBadRequest},
		{"bad request id", http.MethodPost, "/api/v1/connections/nope/accept", alice, nil, http.StatusBadRequest},
		{"unknown request", http.MethodPost, "/api/v1/connections/" + uuid.NewString() + "/accept", alice, nil, http.StatusNotFound},
		{"bad status filter", http.MethodGet, "/api/v1/connections/outgoing?status=maybe", alice, nil, http.StatusBadRequest},
		{"unauthenticated", http.MethodGet, "/api/v1/connections", uuid.Nil, nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(router, tt.method, tt.path, tt.user, tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHandler_SubmitGuards(t *testing.T) {
	guard := func(c *gin.Context) {
		c.AbortWithStatus(http.StatusTooManyRequests)
	}
	router := newTestRouter(t, guard)

	w := call(router, http.MethodPost, "/api/v1/connections", uuid.New(), SubmitRequest{ToID: uuid.New()})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = call(router, http.MethodGet, "/api/v1/connections/incoming", uuid.New(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
