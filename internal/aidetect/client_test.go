package aidetect

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/veridoc/veridoc/internal/imaging"
)

func testRaster() *imaging.Raster {
	pix := make([]uint8, 8*8*3)
	for i := range pix {
		pix[i] = uint8(i * 7)
	}
	return imaging.NewTestRaster(8, 8, pix, "PNG", imaging.EXIFInfo{})
}

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// TestProbabilitySuccess tests a successful detection round trip.
func TestProbabilitySuccess(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("unexpected Content-Type %q", r.Header.Get("Content-Type"))
		}

		file, _, err := r.FormFile("image")
		if err != nil {
			t.Errorf("missing image form file: %v", err)
		} else {
			_ = file.Close()
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ai_probability": 0.87}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", WithLogger(quietLogger()))

	got := client.Probability(context.Background(), testRaster())
	if got != 0.87 {
		t.Errorf("Probability() = %v, want 0.87", got)
	}
}

// TestProbabilityFailureModes tests that every failure path resolves to the
// neutral probability instead of an error.
func TestProbabilityFailureModes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed response body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
		},
		{
			name: "probability out of range",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"ai_probability": 7.5}`))
			},
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(server.URL, "key", WithLogger(quietLogger()))

			if got := client.Probability(context.Background(), testRaster()); got != NeutralProbability {
				t.Errorf("Probability() = %v, want neutral %v", got, NeutralProbability)
			}
		})
	}
}

// TestProbabilityUnreachable tests the network-error path.
func TestProbabilityUnreachable(t *testing.T) {
	t.Parallel()

	// Port 0 is never routable.
	client := NewClient("http://127.0.0.1:0/detect", "key", WithLogger(quietLogger()))

	if got := client.Probability(context.Background(), testRaster()); got != NeutralProbability {
		t.Errorf("Probability() = %v, want neutral %v", got, NeutralProbability)
	}
}

// TestProbabilityTimeout tests that a slow service resolves to neutral
// within the timeout budget.
func TestProbabilityTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		_, _ = w.Write([]byte(`{"ai_probability": 0.1}`))
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, "key",
		WithLogger(quietLogger()),
		WithTimeout(50*time.Millisecond),
	)

	start := time.Now()
	got := client.Probability(context.Background(), testRaster())
	elapsed := time.Since(start)

	if got != NeutralProbability {
		t.Errorf("Probability() = %v, want neutral %v", got, NeutralProbability)
	}
	if elapsed > 5*time.Second {
		t.Errorf("timeout not enforced: took %v", elapsed)
	}
}

// TestBreakerOpensAfterConsecutiveFailures tests that the circuit breaker
// eventually short-circuits a persistently failing service.
func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", WithLogger(quietLogger()))

	// Drive the breaker past its failure threshold, then some more.
	for i := 0; i < breakerFailureThreshold+3; i++ {
		if got := client.Probability(context.Background(), testRaster()); got != NeutralProbability {
			t.Fatalf("Probability() = %v, want neutral %v", got, NeutralProbability)
		}
	}

	if hits > breakerFailureThreshold {
		t.Errorf("breaker did not open: service saw %d requests, want at most %d",
			hits, breakerFailureThreshold)
	}
}
