package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	echo := func(c *gin.Context) {
		b, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too large")
			return
		}
		c.String(http.StatusOK, string(b))
	}
	r.POST("/test", echo)
	r.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func TestMaxBodySize(t *testing.T) {
	tests := []struct {
		name     string
		limit    int64
		body     string
		wantCode int
	}{
		{"within limit", 1024, "hello world", http.StatusOK},
		{"exact limit", 5, "12345", http.StatusOK},
		{"exceeded", 16, strings.Repeat("A", 100), http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader([]byte(tt.body)))
			echoRouter(MaxBodySize(tt.limit)).ServeHTTP(w, req)

			require.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestMaxBodySize_NilBody(t *testing.T) {
	w := httptest.NewRecorder()
	echoRouter(MaxBodySize(1024)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireJSON(t *testing.T) {
	router := echoRouter(RequireJSON())

	tests := []struct {
		name        string
		method      string
		contentType string
		wantCode    int
	}{
		{"json", http.MethodPost, "application/json", http.StatusOK},
		{"json with charset", http.MethodPost, "application/json; charset=utf-8", http.StatusOK},
		{"form", http.MethodPost, "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
		{"missing", http.MethodPost, "", http.StatusUnsupportedMediaType},
		{"get ignored", http.MethodGet, "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/test", strings.NewReader(`{}`))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
