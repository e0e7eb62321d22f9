package aidetect

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/veridoc/veridoc/internal/imaging"
)

// NeutralProbability is returned whenever the external signal cannot be
// obtained. It expresses "no opinion" to the score combiner.
const NeutralProbability = 0.5

// Default client tuning.
const (
	// DefaultTimeout bounds each detection request. The engine runs the
	// external call concurrently with the heuristic analyzers, so this is
	// the longest an analysis can wait on the network.
	DefaultTimeout = 15 * time.Second

	// maxResponseBytes limits how much of the service response is read.
	// Detection verdicts are small JSON documents; anything larger is
	// malformed.
	maxResponseBytes = 1 << 20

	// breakerFailureThreshold is the number of consecutive failures after
	// which the circuit opens and requests resolve to neutral immediately.
	breakerFailureThreshold = 5

	// breakerOpenTimeout is how long the circuit stays open before probing
	// the service again.
	breakerOpenTimeout = 30 * time.Second
)

// detectionResponse is the JSON document returned by the detection service.
type detectionResponse struct {
	// AIProbability is the probability in [0,1] that the submitted image
	// was synthetically generated.
	AIProbability float64 `json:"ai_probability"`
}

// Client talks to the external AI-generation detection service.
// It satisfies the engine's ProbabilityProvider contract: Probability never
// returns an error and never blocks past the configured timeout.
type Client struct {
	// endpoint is the detection service URL.
	endpoint string

	// apiKey authenticates requests. Injected via configuration; never
	// embedded in source and never logged.
	apiKey string

	// httpClient performs the requests. Its Timeout is the request budget.
	httpClient *http.Client

	// breaker short-circuits requests while the service is failing.
	breaker *gobreaker.CircuitBreaker[float64]

	// logger records failures at warn level; successes at debug.
	logger *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client. Intended for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a detection service client.
func NewClient(endpoint, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	c.breaker = gobreaker.NewCircuitBreaker[float64](gobreaker.Settings{
		Name:    "ai-detection",
		Timeout: breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
	})

	return c
}

// Name returns the provider name for logging.
func (c *Client) Name() string {
	return "ai-detection"
}

// Probability submits the raster to the detection service and returns the
// reported probability that it is AI generated.
//
// A single attempt is made per call. Any failure resolves to the neutral
// probability; the caller cannot distinguish a failed request from a
// genuinely uncertain verdict, which is exactly the contract the combiner
// relies on.
func (c *Client) Probability(ctx context.Context, raster *imaging.Raster) float64 {
	probability, err := c.breaker.Execute(func() (float64, error) {
		return c.request(ctx, raster)
	})
	if err != nil {
		c.logger.Warn("external detection unavailable, using neutral probability",
			"provider", c.Name(),
			"error", err,
		)
		return NeutralProbability
	}

	c.logger.Debug("external detection verdict",
		"provider", c.Name(),
		"probability", probability,
	)
	return probability
}

// request performs one detection request and validates the response.
func (c *Client) request(ctx context.Context, raster *imaging.Raster) (float64, error) {
	payload, err := imaging.EncodeJPEG(raster)
	if err != nil {
		return 0, fmt.Errorf("payload encoding failed: %w", err)
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("image", "image.jpg")
	if err != nil {
		return 0, fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := part.Write(payload); err != nil {
		return 0, fmt.Errorf("failed to write form payload: %w", err)
	}
	if err := form.Close(); err != nil {
		return 0, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("detection request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("detection service returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	var verdict detectionResponse
	if err := json.Unmarshal(data, &verdict); err != nil {
		return 0, fmt.Errorf("malformed detection response: %w", err)
	}

	if verdict.AIProbability < 0 || verdict.AIProbability > 1 {
		return 0, fmt.Errorf("probability %v out of range", verdict.AIProbability)
	}

	return verdict.AIProbability, nil
}
