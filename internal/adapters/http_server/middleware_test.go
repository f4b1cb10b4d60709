package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatusWriter_KeepsFirstStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rr}
	if sw.Status() != http.StatusOK {
		t.Fatalf("default status: %d", sw.Status())
	}
	sw.WriteHeader(http.StatusNotModified)
	sw.WriteHeader(http.StatusInternalServerError)
	if sw.Status() != http.StatusNotModified {
		t.Fatalf("status: %d", sw.Status())
	}
}

func TestRemoteIP(t *testing.T) {
	cases := []struct {
		name   string
		header map[string]string
		want   string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, "10.0.0.1"},
		{"real ip", map[string]string{"X-Real-IP": "10.0.0.9"}, "10.0.0.9"},
		{"remote addr", nil, "192.0.2.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tc.header {
				r.Header.Set(k, v)
			}
			if got := remoteIP(r); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}
