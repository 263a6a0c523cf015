package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPing(t *testing.T) {
	t.Parallel()

	srv := NewServer(nil, ":0", nil)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status code: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestDefaultAddr(t *testing.T) {
	t.Parallel()

	srv := NewServer(nil, "", nil)
	if srv.addr != ":8080" {
		t.Fatalf("addr = %q", srv.addr)
	}
}
