package testutil

import (
	"fmt"
	"net/http"
	"testing"
)

// recordingTB captures failures instead of failing the real test.
type recordingTB struct {
	testing.TB
	failures []string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(format string, args ...any) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func (r *recordingTB) Fatalf(format string, args ...any) {
	r.Errorf(format, args...)
}

func TestAssertStatusCode(t *testing.T) {
	rec := &recordingTB{TB: t}
	AssertStatusCode(rec, http.StatusOK, http.StatusOK)
	if len(rec.failures) != 0 {
		t.Fatalf("unexpected failures: %v", rec.failures)
	}
	AssertStatusCode(rec, http.StatusOK, http.StatusBadRequest)
	if len(rec.failures) != 1 {
		t.Fatalf("failures = %v, want one", rec.failures)
	}
}

func TestAssertNear(t *testing.T) {
	tests := []struct {
		got, want, tol float64
		ok             bool
	}{
		{1.0, 1.0, 0, true},
		{1.0, 1.0 + 1e-10, DefaultTolerance, true},
		{1.0, 1.1, DefaultTolerance, false},
		{-3, -3.05, 0.1, true},
	}
	for _, tt := range tests {
		rec := &recordingTB{TB: t}
		AssertNear(rec, tt.got, tt.want, tt.tol)
		if ok := len(rec.failures) == 0; ok != tt.ok {
			t.Errorf("AssertNear(%v, %v, %g) ok = %v, want %v", tt.got, tt.want, tt.tol, ok, tt.ok)
		}
	}
}

func TestAssertAllNear(t *testing.T) {
	rec := &recordingTB{TB: t}
	AssertAllNear(rec, []float64{1, 2}, []float64{1, 2}, 0)
	AssertAllNear(rec, []float64{1}, []float64{1, 2}, 0)
	AssertAllNear(rec, []float64{1, 2.5}, []float64{1, 2}, 0.1)
	if len(rec.failures) != 2 {
		t.Errorf("failures = %v, want two", rec.failures)
	}
}

func TestServeAndDecode(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"method":%q,"path":%q}`, r.Method, r.URL.Path)
	})

	rec := Serve(h, http.MethodGet, "/tags/3")
	AssertStatusCode(t, rec.Code, http.StatusOK)
	got := DecodeJSON[map[string]string](t, rec)
	if got["method"] != "GET" || got["path"] != "/tags/3" {
		t.Errorf("got %v", got)
	}

	bad := &recordingTB{TB: t}
	DecodeJSON[map[string]string](bad, Serve(http.NotFoundHandler(), http.MethodGet, "/"))
	if len(bad.failures) != 1 {
		t.Errorf("failures = %v, want one", bad.failures)
	}
}
