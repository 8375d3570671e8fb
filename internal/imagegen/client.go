package imagegen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/five82/dreamwall/internal/failure"
)

// Fetcher downloads a generated image for a prompt.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	Fetch(ctx context.Context, prompt string, width, height int) ([]byte, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// HTTPError reports a non-success response from the image service.
type HTTPError struct {
	Status int
	URL    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("image service returned status %d", e.Status)
}

// Options configure a Client.
type Options struct {
	Endpoint string
	Model    string
	Timeout  time.Duration
	Token    string // optional bearer token
}

// Client talks to a pollinations-style text-to-image HTTP API where the
// prompt is the last path segment.
type Client struct {
	endpoint  *url.URL
	model     string
	token     string
	http      *http.Client
	userAgent string
	seed      func() int
}

const (
	defaultEndpoint  = "https://image.pollinations.ai/prompt/"
	defaultModel     = "flux"
	defaultUserAgent = "dreamwall/0.1"
	defaultTimeout   = 90 * time.Second
	promptSuffix     = ", style realistic, aspect ratio 16:9"
	maxImageBytes    = 64 << 20
)

// NewClient builds a Client from opts, filling in defaults.
func NewClient(opts Options) (*Client, error) {
	base, err := parseEndpoint(opts.Endpoint)
	if err != nil {
		return nil, err
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint: base,
		model:    model,
		token:    strings.TrimSpace(opts.Token),
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
		seed:      randomSeed,
	}, nil
}

// URL returns the request URL for prompt at the given size. Every call picks
// a fresh seed so identical prompts are not served from the service's cache.
func (c *Client) URL(prompt string, width, height int) string {
	values := url.Values{}
	values.Set("width", strconv.Itoa(width))
	values.Set("height", strconv.Itoa(height))
	values.Set("seed", strconv.Itoa(c.seed()))
	values.Set("model", c.model)
	values.Set("nologo", "true")
	values.Set("private", "false")
	values.Set("enhance", "false")
	values.Set("safe", "true")

	base := strings.TrimSuffix(c.endpoint.String(), "/")
	return base + "/" + url.PathEscape(prompt+promptSuffix) + "?" + values.Encode()
}

// Fetch downloads the image bytes for prompt.
func (c *Client) Fetch(ctx context.Context, prompt string, width, height int) ([]byte, error) {
	if c == nil {
		return nil, failure.Wrap(failure.Network, "fetch image", errors.New("client is nil"))
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, failure.Wrap(failure.PromptResolution, "fetch image", errors.New("prompt is empty"))
	}
	if width <= 0 || height <= 0 {
		return nil, failure.Wrap(failure.Network, "fetch image", fmt.Errorf("invalid size %dx%d", width, height))
	}

	reqURL := c.URL(prompt, width, height)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "image/*")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, failure.Wrap(failure.Network, "execute request", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, failure.Wrap(failure.Network, "fetch image", &HTTPError{Status: resp.StatusCode, URL: reqURL})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, failure.Wrap(failure.Network, "read image", err)
	}
	if len(body) > maxImageBytes {
		return nil, failure.Wrap(failure.Network, "read image", fmt.Errorf("image larger than %d bytes", maxImageBytes))
	}
	if len(body) == 0 {
		return nil, failure.Wrap(failure.Network, "read image", fmt.Errorf("empty response body"))
	}
	return body, nil
}

func randomSeed() int {
	return 10000 + rand.IntN(90000)
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = defaultEndpoint
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse endpoint %q: missing host", endpoint)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
