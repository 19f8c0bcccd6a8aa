package middleware

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type authorizerStub struct {
	fn func(context.Context, int64) (bool, error)
}

func (s authorizerStub) IsAuthorized(ctx context.Context, userID int64) (bool, error) {
	if s.fn != nil {
		return s.fn(ctx, userID)
	}
	return true, nil
}

func newAuthTestRouter(auth Authorizer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(AuthRequired(auth))
	engine.GET("/ping", func(c *gin.Context) {
		id, _ := c.Get(SenderIDContextKey)
		c.JSON(http.StatusOK, gin.H{"sender": id})
	})
	return engine
}

func TestAuthRequired(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		auth     Authorizer
		wantCode int
	}{
		{
			name:     "authorized sender passes",
			header:   "42",
			auth:     authorizerStub{},
			wantCode: http.StatusOK,
		},
		{
			name:     "missing header rejected",
			header:   "",
			auth:     authorizerStub{},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "non-numeric header rejected",
			header:   "abc",
			auth:     authorizerStub{},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "unauthorized sender rejected",
			header: "42",
			auth: authorizerStub{fn: func(context.Context, int64) (bool, error) {
				return false, nil
			}},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "lookup failure is a server error",
			header: "42",
			auth: authorizerStub{fn: func(context.Context, int64) (bool, error) {
				return false, errors.New("store down")
			}},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthTestRouter(tt.auth)
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set(SenderIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestAuthRequiredExposesSenderID(t *testing.T) {
	var seen int64
	router := newAuthTestRouter(authorizerStub{fn: func(_ context.Context, id int64) (bool, error) {
		seen = id
		return true, nil
	}})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(SenderIDHeader, "42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if seen != 42 {
		t.Errorf("authorizer saw %d, want 42", seen)
	}
}

func TestDecompressRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(DecompressRequest())
	engine.POST("/echo", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(body))
	})

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte("payload")); err != nil {
		t.Fatalf("compress: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/echo", &buf)
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "payload" {
		t.Errorf("body = %q, want decompressed payload", rec.Body.String())
	}
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	engine := gin.New()
	engine.Use(RequestLogger(logger))
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if !bytes.Contains(buf.Bytes(), []byte("/ping")) {
		t.Errorf("log misses request path: %s", buf.String())
	}
}
