// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package testhelper provides shared helpers for package tests.
package testhelper

import (
	"bytes"
	"io"
	stdhttp "net/http"
	"os"
	"testing"
)

// TestOnlineAPIURL is a public endpoint used by tests that need a real network round trip.
const TestOnlineAPIURL = "https://overpass-api.de/api/status"

// MockRoundTripper is a http.RoundTripper that delegates to Fn.
type MockRoundTripper struct {
	Fn func(*stdhttp.Request) (*stdhttp.Response, error)
}

func (m MockRoundTripper) RoundTrip(req *stdhttp.Request) (*stdhttp.Response, error) {
	return m.Fn(req)
}

// PerformIntegrationTests skips the calling test unless PERFORM_INTEGRATION_TESTS is set.
func PerformIntegrationTests(t *testing.T) {
	t.Helper()
	if os.Getenv("PERFORM_INTEGRATION_TESTS") == "" {
		t.Skip("skipping integration test, set PERFORM_INTEGRATION_TESTS to run")
	}
}

// FileResponder returns a round trip function that answers every request with the given file.
func FileResponder(t *testing.T, file string) func(*stdhttp.Request) (*stdhttp.Response, error) {
	t.Helper()
	return func(*stdhttp.Request) (*stdhttp.Response, error) {
		data, err := os.Open(file)
		if err != nil {
			t.Errorf("failed to open JSON response file: %s", err)
			return nil, err
		}
		return &stdhttp.Response{
			StatusCode: stdhttp.StatusOK,
			Body:       data,
			Header:     make(stdhttp.Header),
		}, nil
	}
}

// StringResponder returns a round trip function that answers every request with body and status.
func StringResponder(status int, body string) func(*stdhttp.Request) (*stdhttp.Response, error) {
	return func(*stdhttp.Request) (*stdhttp.Response, error) {
		return &stdhttp.Response{
			StatusCode: status,
			Body:       io.NopCloser(bytes.NewBufferString(body)),
			Header:     make(stdhttp.Header),
		}, nil
	}
}
