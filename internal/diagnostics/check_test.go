package diagnostics

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"github.com/bobmcallan/youtube138-mcp/internal/common"
	"github.com/bobmcallan/youtube138-mcp/internal/config"
	"github.com/bobmcallan/youtube138-mcp/internal/youtube"
)

func testConfig(baseURL, key string) *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.API.BaseURL = baseURL
	cfg.API.Key = key
	cfg.API.TimeoutSeconds = 5
	cfg.Check.DelayMS = 0
	return cfg
}

// newUpstream answers /home/ with homeStatus and every other path with 200.
func newUpstream(t *testing.T, homeStatus int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/home/" {
			w.WriteHeader(homeStatus)
		}
		w.Write([]byte(`{"path":"` + r.URL.Path + `"}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func runCheck(t *testing.T, cfg *config.Config) (int, string) {
	t.Helper()
	var out bytes.Buffer
	d := youtube.NewDispatcher(cfg.API, common.NewSilentLogger())
	code := NewChecker(cfg, d, &out).Run(t.Context())
	return code, out.String()
}

func TestRun_AllPass(t *testing.T) {
	srv, calls := newUpstream(t, http.StatusOK)
	code, out := runCheck(t, testConfig(srv.URL, "0123456789abcdef"))

	if code != ExitOK {
		t.Errorf("expected exit code 0, got %d\n%s", code, out)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 upstream calls, got %d", calls.Load())
	}
	if !strings.Contains(out, "Passed: 3") {
		t.Errorf("expected summary with 3 passed, got:\n%s", out)
	}
	if !strings.Contains(out, "0123456789...") {
		t.Error("expected masked API key in output")
	}
	if strings.Contains(out, "abcdef") {
		t.Error("API key must not be printed in full")
	}
}

func TestRun_OneFailure(t *testing.T) {
	srv, calls := newUpstream(t, http.StatusTooManyRequests)
	code, out := runCheck(t, testConfig(srv.URL, "test-key"))

	if code != ExitFailed {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if calls.Load() != 3 {
		t.Errorf("expected all 3 cases to run, got %d calls", calls.Load())
	}
	if !strings.Contains(out, "Failed: 1") {
		t.Errorf("expected summary with 1 failure, got:\n%s", out)
	}
	if !strings.Contains(out, "429") {
		t.Errorf("expected status code in failure details, got:\n%s", out)
	}
}

func TestRun_MissingCredential(t *testing.T) {
	srv, calls := newUpstream(t, http.StatusOK)
	code, out := runCheck(t, testConfig(srv.URL, ""))

	if code != ExitFailed {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if calls.Load() != 0 {
		t.Errorf("expected 0 upstream calls, got %d", calls.Load())
	}
	if !strings.Contains(out, "export RAPIDAPI_KEY") {
		t.Errorf("expected setup instructions, got:\n%s", out)
	}
}

func TestRun_TruncatesLongResponses(t *testing.T) {
	long := strings.Repeat("x", 3000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"blob":"` + long + `"}`))
	}))
	defer srv.Close()

	code, out := runCheck(t, testConfig(srv.URL, "test-key"))
	if code != ExitOK {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(out, "truncated, showing first 1000 characters") {
		t.Error("expected truncation notice")
	}
	if strings.Contains(out, long) {
		t.Error("expected long response to be truncated")
	}
}

func TestRun_TruncatesMultiByteResponses(t *testing.T) {
	long := strings.Repeat("é", 2000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// An odd-length prefix puts byte 1000 in the middle of a character.
		w.Write([]byte(`{"tt":"` + long + `"}`))
	}))
	defer srv.Close()

	code, out := runCheck(t, testConfig(srv.URL, "test-key"))
	if code != ExitOK {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !utf8.ValidString(out) {
		t.Error("expected report to be valid UTF-8")
	}
	if !strings.Contains(out, "truncated, showing first 1000 characters") {
		t.Error("expected truncation notice")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in        string
		n         int
		want      string
		truncated bool
	}{
		{"abc", 5, "abc", false},
		{"abcdef", 3, "abc", true},
		{"ééé", 3, "ééé", false},
		{"éééé", 3, "ééé", true},
		{"", 0, "", false},
	}
	for _, tt := range tests {
		got, truncated := truncate(tt.in, tt.n)
		if got != tt.want || truncated != tt.truncated {
			t.Errorf("truncate(%q, %d) = %q, %v; want %q, %v", tt.in, tt.n, got, truncated, tt.want, tt.truncated)
		}
	}
}

func TestRun_CancelledContext(t *testing.T) {
	srv, calls := newUpstream(t, http.StatusOK)
	cfg := testConfig(srv.URL, "test-key")

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	var out bytes.Buffer
	d := youtube.NewDispatcher(cfg.API, common.NewSilentLogger())
	code := NewChecker(cfg, d, &out).Run(ctx)

	if code != ExitFailed {
		t.Errorf("expected exit code 1 for cancelled run, got %d", code)
	}
	if calls.Load() != 0 {
		t.Errorf("expected 0 upstream calls, got %d", calls.Load())
	}
}

func TestReport_ExitCode(t *testing.T) {
	if (Report{}).ExitCode() != ExitFailed {
		t.Error("empty report should fail")
	}
	r := Report{Results: []CaseResult{{Passed: true}, {Passed: true}}}
	if r.ExitCode() != ExitOK {
		t.Error("all-pass report should exit 0")
	}
	r.Results = append(r.Results, CaseResult{})
	if r.ExitCode() != ExitFailed {
		t.Error("report with a failure should exit 1")
	}
}

func TestMaskKey(t *testing.T) {
	if got := maskKey("0123456789abcdef"); got != "0123456789..." {
		t.Errorf("expected 0123456789..., got %s", got)
	}
	if got := maskKey("short"); got != "short..." {
		t.Errorf("expected short..., got %s", got)
	}
}
