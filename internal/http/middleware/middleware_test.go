package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"expertqa/internal/db"
	"expertqa/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubStore struct {
	name string
	err  error
}

func (s stubStore) Get(*gin.Context) (string, error) { return s.name, s.err }
func (s stubStore) Set(*gin.Context, string) error   { return nil }
func (s stubStore) Clear(*gin.Context) error         { return nil }

type stubResolver map[string]*models.User

func (r stubResolver) Resolve(_ context.Context, name string) (*models.User, error) {
	return r[name], nil
}

func whoami(c *gin.Context) {
	if user := CurrentUser(c); user != nil {
		c.String(http.StatusOK, user.Name)
		return
	}
	c.String(http.StatusOK, "anonymous")
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdentity(t *testing.T) {
	users := stubResolver{"bob": {ID: 2, Name: "bob", IsExpert: true}}

	tests := []struct {
		name  string
		store stubStore
		want  string
	}{
		{"no session", stubStore{}, "anonymous"},
		{"known user", stubStore{name: "bob"}, "bob"},
		{"stale session", stubStore{name: "ghost"}, "anonymous"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(Identity(tt.store, users))
			r.GET("/", whoami)

			w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestIdentity_StoreFailure(t *testing.T) {
	r := gin.New()
	r.Use(Identity(stubStore{err: errors.New("redis down")}, stubResolver{}))
	r.GET("/", whoami)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "anonymous")
}

type fakeConn struct{ released int }

func (f *fakeConn) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("SELECT 1"), nil
}
func (f *fakeConn) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }
func (f *fakeConn) QueryRow(context.Context, string, ...any) pgx.Row        { return nil }
func (f *fakeConn) Release()                                                { f.released++ }

func TestDBLease(t *testing.T) {
	conn := &fakeConn{}
	acquired := 0
	acquire := func(context.Context) (db.Conn, error) {
		acquired++
		return conn, nil
	}

	r := gin.New()
	r.Use(DBLease(acquire))
	r.GET("/query", func(c *gin.Context) {
		q, err := db.QuerierFrom(c.Request.Context(), nil)
		require.NoError(t, err)
		_, err = q.Exec(c.Request.Context(), "SELECT 1")
		require.NoError(t, err)
		c.Status(http.StatusNoContent)
	})
	r.GET("/static", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/panic", func(c *gin.Context) {
		_, _ = db.QuerierFrom(c.Request.Context(), nil)
		panic("boom")
	})

	serve(r, httptest.NewRequest(http.MethodGet, "/static", nil))
	assert.Equal(t, 0, acquired)

	serve(r, httptest.NewRequest(http.MethodGet, "/query", nil))
	assert.Equal(t, 1, acquired)
	assert.Equal(t, 1, conn.released)

	assert.Panics(t, func() {
		serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil))
	})
	assert.Equal(t, 2, acquired)
	assert.Equal(t, 2, conn.released)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, RequestIDFrom(c.Request.Context())) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	tests := []struct {
		name   string
		header string
		kept   bool
	}{
		{"plain id", "abc-123", true},
		{"dotted id", "req_1.2", true},
		{"newline injection", "abc\nlevel=ERROR", false},
		{"spaces", "a b", false},
		{"too long", strings.Repeat("x", maxRequestIDLen+1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, tt.header)
			w := serve(r, req)

			got := w.Header().Get(RequestIDHeader)
			if tt.kept {
				assert.Equal(t, tt.header, got)
			} else {
				assert.NotEqual(t, tt.header, got)
				assert.NotEmpty(t, got)
			}
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(RequestID(), Logger(log))
	r.GET("/ok", func(c *gin.Context) {
		c.Set(currentUserKey, &models.User{ID: 7, Name: "carol"})
		c.Status(http.StatusOK)
	})
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("query failed"))
		c.Status(http.StatusInternalServerError)
	})

	serve(r, httptest.NewRequest(http.MethodGet, "/ok", nil))
	line := buf.String()
	assert.Contains(t, line, `"level":"INFO"`)
	assert.Contains(t, line, `"user_id":7`)
	assert.Contains(t, line, `"status":200`)

	buf.Reset()
	serve(r, httptest.NewRequest(http.MethodGet, "/fail", nil))
	line = buf.String()
	assert.Contains(t, line, `"level":"ERROR"`)
	assert.Contains(t, line, "query failed")
}
