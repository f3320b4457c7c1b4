package httpapi

import "testing"

func TestShouldTraceRequest(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz", " /healthz "} {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for path %q", path)
		}
	}
	for _, path := range []string{"/v1/matches", "/v1/leaderboard", "/", "/docs"} {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for path %q", path)
		}
	}
}

func TestNormalizeIP(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"203.0.113.7":              "203.0.113.7",
		"203.0.113.7:5123":         "203.0.113.7",
		" 198.51.100.2, 10.0.0.1 ": "198.51.100.2",
		"[2001:db8::1]:443":        "2001:db8::1",
		"not-an-ip":                "",
		"":                         "",
	}
	for in, want := range tests {
		if got := normalizeIP(in); got != want {
			t.Fatalf("normalizeIP(%q)=%q want %q", in, got, want)
		}
	}
}
