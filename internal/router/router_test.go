package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"quill/internal/config"
	"quill/internal/handler"
)

func newTestRouter() *echo.Echo {
	e := echo.New()
	cfg := &config.Config{JWTSecret: "test-secret"}
	Register(e, cfg, handler.NewAuthHandler(nil), handler.NewPostHandler(nil), handler.NewSeedHandler(nil, nil))
	return e
}

func TestSecuredRoutesUnauthenticated(t *testing.T) {
	e := newTestRouter()

	tests := []struct {
		name         string
		method       string
		path         string
		headers      map[string]string
		wantStatus   int
		wantLocation string
	}{
		{
			name:       "json content type gets 401",
			method:     http.MethodPost,
			path:       "/posts",
			headers:    map[string]string{echo.HeaderContentType: echo.MIMEApplicationJSON},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "json accept gets 401",
			method:     http.MethodDelete,
			path:       "/posts/1",
			headers:    map[string]string{echo.HeaderAccept: echo.MIMEApplicationJSON},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "vendored json accept gets 401",
			method:     http.MethodPut,
			path:       "/posts/1",
			headers:    map[string]string{echo.HeaderAccept: "application/vnd.api+json"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:         "browser accept is redirected to login",
			method:       http.MethodGet,
			path:         "/posts/create",
			headers:      map[string]string{echo.HeaderAccept: "text/html,application/xhtml+xml"},
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
		},
		{
			name:         "no negotiation headers treated as browser",
			method:       http.MethodGet,
			path:         "/posts/1/edit",
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get(echo.HeaderLocation))
			}
		})
	}
}

func TestWantsJSON(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    bool
	}{
		{name: "json accept", headers: map[string]string{echo.HeaderAccept: echo.MIMEApplicationJSON}, want: true},
		{name: "json accept among others", headers: map[string]string{echo.HeaderAccept: "text/html, application/json;q=0.9"}, want: true},
		{name: "structured json suffix", headers: map[string]string{echo.HeaderAccept: "application/vnd.api+json"}, want: true},
		{name: "json content type", headers: map[string]string{echo.HeaderContentType: echo.MIMEApplicationJSON}, want: true},
		{name: "html accept", headers: map[string]string{echo.HeaderAccept: "text/html"}, want: false},
		{name: "no headers", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}
			assert.Equal(t, tt.want, wantsJSON(req))
		})
	}
}
