// Package scoring talks to the external claim scoring service over HTTP.
// It returns raw reply bodies; normalisation lives in package parser.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/helmcode/claimsafe/pkg/model"
	"github.com/helmcode/claimsafe/pkg/resilience"
)

// DefaultBaseURL is where the scoring service listens in development.
const DefaultBaseURL = "http://localhost:5000/api"

const (
	uploadPath  = "/policy/upload-pdf"
	analyzePath = "/claim/analyze"
	// maxReplyBytes bounds how much of a reply is read.
	maxReplyBytes = 1 << 20
)

// Service is the scoring service contract.
type Service interface {
	// UploadPolicy sends a policy PDF and returns the raw reply body.
	UploadPolicy(ctx context.Context, filename string, pdf []byte) ([]byte, error)
	// Analyze submits a claim and returns the raw reply body.
	Analyze(ctx context.Context, req model.AnalyzeRequest) ([]byte, error)
}

// StatusError is a non-200 reply.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("scoring: %s: status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// Option configures the client.
type Option func(*httpClient)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout bounds every single request, including reading the reply.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRateLimit caps outbound requests per second. A zero limit disables it.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *httpClient) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a scoring service client rooted at baseURL, e.g.
// "http://localhost:5000/api".
func NewClient(baseURL string, opts ...Option) Service {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) UploadPolicy(ctx context.Context, filename string, pdf []byte) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, eris.Wrap(err, "scoring: create form file")
	}
	if _, err := part.Write(pdf); err != nil {
		return nil, eris.Wrap(err, "scoring: write form file")
	}
	if err := mw.Close(); err != nil {
		return nil, eris.Wrap(err, "scoring: close multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, &body)
	if err != nil {
		return nil, eris.Wrap(err, "scoring: create upload request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	return c.do(ctx, "upload policy", req)
}

func (c *httpClient) Analyze(ctx context.Context, ar model.AnalyzeRequest) ([]byte, error) {
	payload, err := json.Marshal(ar)
	if err != nil {
		return nil, eris.Wrap(err, "scoring: marshal analyze request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, bytes.NewReader(payload))
	if err != nil {
		return nil, eris.Wrap(err, "scoring: create analyze request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(ctx, "analyze claim", req)
}

// do sends req. Network failures and retryable statuses come back as
// *resilience.TransientError; other statuses as *StatusError.
func (c *httpClient) do(ctx context.Context, op string, req *http.Request) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrapf(err, "scoring: %s: rate limit wait", op)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, resilience.NewTransientError(eris.Wrapf(err, "scoring: %s", op), 0)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return nil, resilience.NewTransientError(eris.Wrapf(err, "scoring: %s: read reply", op), resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		se := &StatusError{Operation: op, StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(se, resp.StatusCode)
		}
		return nil, se
	}
	return body, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
