// Package testutil provides shared test helpers for HTTP handlers and
// floating point comparisons.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

// DefaultTolerance is the absolute tolerance used for lengths in meters.
const DefaultTolerance = 1e-9

// AssertStatusCode checks that the response status code matches expected.
func AssertStatusCode(t testing.TB, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status code = %d, want %d", got, want)
	}
}

// AssertNear fails the test if got and want differ by more than tol.
func AssertNear(t testing.TB, got, want, tol float64) {
	t.Helper()
	if !scalar.EqualWithinAbs(got, want, tol) {
		t.Errorf("got %v, want %v (±%g)", got, want, tol)
	}
}

// AssertAllNear compares two sequences element-wise with AssertNear.
func AssertAllNear(t testing.TB, got, want []float64, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("len = %d, want %d", len(got), len(want))
		return
	}
	for i := range got {
		if !scalar.EqualWithinAbs(got[i], want[i], tol) {
			t.Errorf("[%d] got %v, want %v (±%g)", i, got[i], want[i], tol)
		}
	}
}

// Serve runs one request against h and returns the recorded response.
func Serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

// DecodeJSON decodes the recorded body into a T, failing the test on error.
func DecodeJSON[T any](t testing.TB, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return v
}
